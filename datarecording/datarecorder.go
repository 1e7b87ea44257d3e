// Package datarecording stores generated problems in a SQLite database.
package datarecording

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// InMemory is the path that keeps the database in memory.
const InMemory = ":memory:"

const problemTable = "problems"

// ErrRecordNotFound is returned when no problem has the requested ID.
var ErrRecordNotFound = errors.New("problem record not found")

// A ProblemRecord is a generated problem as stored in the database. Seeds and
// problems are stored as JSON.
type ProblemRecord struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Seed      string `json:"seed"`
	Problem   string `json:"problem"`
	Hidden    string `json:"hidden"`
	CreatedAt int64  `json:"created_at"`
}

// A HiddenReporter is a problem that can list its hidden values.
type HiddenReporter interface {
	HiddenNames() []string
}

// NewRecord creates a record with a new ID for a generated problem.
func NewRecord(typeName string, seed, problem any) (ProblemRecord, error) {
	seedJSON, err := json.Marshal(seed)
	if err != nil {
		return ProblemRecord{}, fmt.Errorf("encode seed: %w", err)
	}

	problemJSON, err := json.Marshal(problem)
	if err != nil {
		return ProblemRecord{}, fmt.Errorf("encode problem: %w", err)
	}

	rec := ProblemRecord{
		ID:        xid.New().String(),
		Type:      typeName,
		Seed:      string(seedJSON),
		Problem:   string(problemJSON),
		CreatedAt: time.Now().Unix(),
	}

	if r, ok := problem.(HiddenReporter); ok {
		rec.Hidden = strings.Join(r.HiddenNames(), ",")
	}

	return rec, nil
}

// DataRecorder buffers problem records and writes them in batches.
type DataRecorder interface {
	// Record buffers a record.
	Record(rec ProblemRecord)

	// Flush writes all the buffered records into the database.
	Flush()
}

// A Store records problems and reads them back.
type Store interface {
	DataRecorder
	DataReader

	Close() error
}

// New opens the database at path + ".sqlite3", creating it if needed. An
// empty path creates a new database with a unique name. InMemory keeps the
// database in memory.
func New(path string) Store {
	w := &sqliteStore{
		batchSize: 1000,
	}

	w.open(path)
	w.createTable()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewWithDB creates a Store on an opened database.
func NewWithDB(db *sql.DB) Store {
	w := &sqliteStore{
		DB:        db,
		batchSize: 1000,
	}

	w.createTable()

	atexit.Register(func() { w.Flush() })

	return w
}

// sqliteStore writes records into a SQLite database.
type sqliteStore struct {
	*sql.DB

	lock      sync.Mutex
	entries   []ProblemRecord
	batchSize int
	closed    bool
}

func (s *sqliteStore) open(path string) {
	if path == InMemory {
		db, err := sql.Open("sqlite3", InMemory)
		if err != nil {
			panic(err)
		}

		// Every connection to ":memory:" is a different database.
		db.SetMaxOpenConns(1)
		s.DB = db

		return
	}

	if path == "" {
		path = "vmquiz_problems_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	_, err := os.Stat(filename)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	s.DB = db
}

func (s *sqliteStore) createTable() {
	fields := strings.Join(structs.Names(ProblemRecord{}), ", \n\t")

	createTableSQL := `CREATE TABLE IF NOT EXISTS ` + problemTable +
		` (` + "\n\t" + fields + "\n" + `);`
	s.mustExecute(createTableSQL)
}

// Record buffers a record. The buffer is flushed when it is full.
func (s *sqliteStore) Record(rec ProblemRecord) {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		panic("record on a closed store")
	}
	s.entries = append(s.entries, rec)
	full := len(s.entries) >= s.batchSize
	s.lock.Unlock()

	if full {
		s.Flush()
	}
}

// Flush writes the buffered records into the database.
func (s *sqliteStore) Flush() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.flushLocked()
}

func (s *sqliteStore) flushLocked() {
	if s.closed || len(s.entries) == 0 {
		return
	}

	tx, err := s.Begin()
	if err != nil {
		panic(err)
	}

	stmt, err := tx.Prepare(insertSQL())
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, rec := range s.entries {
		_, err := stmt.Exec(structs.Values(rec)...)
		if err != nil {
			panic(err)
		}
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	s.entries = nil
}

// Close flushes the store and closes the database. The exit handler
// registered by New stays registered and does nothing once the store is
// closed.
func (s *sqliteStore) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return nil
	}

	s.flushLocked()
	s.closed = true

	return s.DB.Close()
}

func (s *sqliteStore) mustExecute(query string) sql.Result {
	res, err := s.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func insertSQL() string {
	n := structs.Names(ProblemRecord{})
	for i := range n {
		n[i] = "?"
	}

	return "INSERT INTO " + problemTable +
		" VALUES (" + strings.Join(n, ", ") + ")"
}
