package sampling

import (
	"errors"
	"fmt"
)

// ErrInfeasibleSplit is returned when a total cannot be split into the
// requested number of terms within the requested range.
var ErrInfeasibleSplit = errors.New("infeasible split")

// DefaultTermRange returns the term range SplitSum uses. The range is centered
// on the even share total/parts: the minimum is half the share rounded down
// (but at least 1) and the maximum is 1.5 times the share rounded up.
func DefaultTermRange(total, parts int) (minTerm, maxTerm int) {
	if parts < 1 {
		return 1, total
	}

	minTerm = total / (2 * parts)
	if minTerm < 1 {
		minTerm = 1
	}

	maxTerm = (3*total + 2*parts - 1) / (2 * parts)

	return minTerm, maxTerm
}

// SplitSum splits total into parts positive terms that sum to total, using
// the range given by DefaultTermRange.
func SplitSum(src Source, total, parts int) ([]int, error) {
	minTerm, maxTerm := DefaultTermRange(total, parts)
	return SplitSumInRange(src, total, parts, minTerm, maxTerm)
}

// SplitSumInRange splits total into parts terms that sum to total, each in
// [minTerm, maxTerm].
//
// Terms are drawn in order. Each draw is limited so that the terms still to
// be drawn can reach the total without leaving [minTerm, maxTerm]. The last
// term takes whatever remains.
func SplitSumInRange(
	src Source,
	total, parts, minTerm, maxTerm int,
) ([]int, error) {
	err := splitMustBeFeasible(total, parts, minTerm, maxTerm)
	if err != nil {
		return nil, err
	}

	terms := make([]int, 0, parts)
	remaining := total

	for left := parts; left > 1; left-- {
		low := max(minTerm, remaining-maxTerm*(left-1))
		high := min(maxTerm, remaining-minTerm*(left-1))

		term := UniformInt(src, low, high+1)
		terms = append(terms, term)
		remaining -= term
	}

	terms = append(terms, remaining)

	return terms, nil
}

func splitMustBeFeasible(total, parts, minTerm, maxTerm int) error {
	switch {
	case parts < 1:
		return fmt.Errorf("%w: %d parts", ErrInfeasibleSplit, parts)
	case minTerm < 1:
		return fmt.Errorf("%w: minimum term %d is not positive",
			ErrInfeasibleSplit, minTerm)
	case minTerm > maxTerm:
		return fmt.Errorf("%w: term range [%d, %d] is empty",
			ErrInfeasibleSplit, minTerm, maxTerm)
	case minTerm*parts > total || maxTerm*parts < total:
		return fmt.Errorf("%w: %d cannot be split into %d terms in [%d, %d]",
			ErrInfeasibleSplit, total, parts, minTerm, maxTerm)
	}

	return nil
}
