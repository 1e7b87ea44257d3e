// Package problem defines how problem types are registered and listed.
//
// A problem type turns a random seed into a problem and renders the problem,
// optionally with its solution. The Catalog keeps problem types of different
// seed and problem types behind one uniform Entry so that tools can list and
// use them without knowing their concrete types.
package problem

import "io"

// A Type is a kind of problem that can be generated and rendered.
type Type[S, P any] interface {
	// Name is the human-readable name that identifies the type.
	Name() string

	// RandomSeed returns a new random seed.
	RandomSeed() S

	// Generate derives a problem from a seed.
	Generate(seed S) P

	// Render writes the problem to the target. Hidden values are only
	// written if showSolution is true.
	Render(target io.Writer, problem P, showSolution bool) error
}

// A SeedValidator can check seeds that did not come from RandomSeed.
type SeedValidator interface {
	Validate() error
}
