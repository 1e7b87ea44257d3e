// Package vms generates hierarchical virtual memory sizing problems.
//
// A problem describes a multi-level paging system: address lengths, page
// size, page table levels, entry sizes and the resulting page table
// footprint. Some of the values are hidden, and the learner derives them from
// the ones that are shown.
package vms

import (
	"io"

	"github.com/sarchlab/vmquiz/sampling"
)

// Name is the name of the problem type.
const Name = "Hierarchical VM sizes"

// Type generates and renders virtual memory sizing problems. It implements
// problem.Type[Seed, Problem].
type Type struct {
	seedGenerator *SeedGenerator
	selector      *VisibilitySelector
}

// Name returns the name of the problem type.
func (t *Type) Name() string {
	return Name
}

// RandomSeed creates a new random seed.
func (t *Type) RandomSeed() Seed {
	return t.seedGenerator.Generate()
}

// Generate derives the problem from the seed and selects the hidden
// attributes. The derived values only depend on the seed, but the hidden
// attributes are chosen anew on every call.
func (t *Type) Generate(seed Seed) Problem {
	p := Derive(seed)
	p.HiddenEntries = t.selector.Select()

	return p
}

// Render writes the problem to the target.
func (t *Type) Render(target io.Writer, p Problem, showSolution bool) error {
	return Render(target, p, showSolution)
}

// A Builder can build problem types.
type Builder struct {
	src  sampling.Source
	seed int64
}

// MakeBuilder creates a new Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithSource sets the random source used for seeds and hidden attributes.
func (b Builder) WithSource(src sampling.Source) Builder {
	b.src = src
	return b
}

// WithSeed sets the seed of the random source. It is ignored if a source is
// given with WithSource.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// Build creates a new problem type.
func (b Builder) Build() *Type {
	src := b.src
	if src == nil {
		src = sampling.NewSource(b.seed)
	}

	return &Type{
		seedGenerator: NewSeedGenerator(src),
		selector:      NewVisibilitySelector(src, RelationGroups),
	}
}
