package sampling

import "fmt"

// UniformInt returns a number in [min, max). It panics if max <= min.
func UniformInt(src Source, min, max int) int {
	if max <= min {
		panic(fmt.Sprintf("empty range [%d, %d)", min, max))
	}

	return min + src.Intn(max-min)
}

// Chance returns true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Choose returns a uniformly selected element of items. Repeating an element
// raises its weight. It panics if items is empty.
func Choose[T any](src Source, items []T) T {
	return items[UniformInt(src, 0, len(items))]
}
