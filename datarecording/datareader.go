package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/fatih/structs"
)

// QueryParams encapsulates all query parameters
type QueryParams struct {
	// Where holds the WHERE clause without the "WHERE" keyword
	// Example: "Type = ?"
	Where string

	// Args holds the arguments for the placeholders in Where
	Args []any

	// Limit is the maximum number of records to return (pagination)
	// Set to 0 for no limit
	Limit int

	// Offset is the number of records to skip (pagination)
	Offset int

	// OrderBy specifies sorting, without the "ORDER BY" keywords
	// Example: "CreatedAt DESC"
	OrderBy string
}

// DataReader reads recorded problems.
type DataReader interface {
	// Find returns the record with the given ID.
	Find(ctx context.Context, id string) (ProblemRecord, error)

	// Query returns the records that match the parameters, and the number
	// of matching records without the limit and offset applied.
	Query(ctx context.Context, params QueryParams) (
		results []ProblemRecord,
		totalCount int,
		err error,
	)
}

// Find returns the record with the given ID. Buffered records are flushed
// first.
func (s *sqliteStore) Find(
	ctx context.Context,
	id string,
) (ProblemRecord, error) {
	records, _, err := s.Query(ctx, QueryParams{
		Where: "ID = ?",
		Args:  []any{id},
		Limit: 1,
	})
	if err != nil {
		return ProblemRecord{}, err
	}

	if len(records) == 0 {
		return ProblemRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	return records[0], nil
}

// Query returns the records that match the parameters. Buffered records are
// flushed first.
func (s *sqliteStore) Query(
	ctx context.Context,
	params QueryParams,
) ([]ProblemRecord, int, error) {
	s.Flush()

	columns := structs.Names(ProblemRecord{})
	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(columns, ", "), problemTable)

	if params.Where != "" {
		query += " WHERE " + params.Where
	}

	if params.OrderBy != "" {
		query += " ORDER BY " + params.OrderBy
	}

	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
		if params.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", params.Offset)
		}
	}

	totalCount, err := s.queryTotalCount(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.QueryContext(ctx, query, params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := scanRecords(rows, len(columns))
	if err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

func (s *sqliteStore) queryTotalCount(
	ctx context.Context,
	params QueryParams,
) (int, error) {
	var totalCount int

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", problemTable)

	if params.Where != "" {
		countQuery += " WHERE " + params.Where
	}

	err := s.QueryRowContext(ctx, countQuery, params.Args...).Scan(&totalCount)
	if err != nil {
		return 0, err
	}

	return totalCount, nil
}

// scanRecords fills the fields of a record in declaration order.
func scanRecords(rows *sql.Rows, numFields int) ([]ProblemRecord, error) {
	records := []ProblemRecord{}

	for rows.Next() {
		var rec ProblemRecord

		recVal := reflect.ValueOf(&rec).Elem()
		scanTargets := make([]any, numFields)
		for i := range scanTargets {
			scanTargets[i] = recVal.Field(i).Addr().Interface()
		}

		err := rows.Scan(scanTargets...)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
