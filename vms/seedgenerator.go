package vms

import (
	"github.com/sarchlab/vmquiz/sampling"
)

// Repeating 1 biases the choice towards byte-addressable systems.
var addressUnits = []int{1, 1, 1, 1, 1, 2, 4}

// A SeedGenerator creates random seeds. The sampling ranges keep every
// generated seed valid, so no seed is ever rejected.
type SeedGenerator struct {
	src sampling.Source
}

// NewSeedGenerator creates a SeedGenerator that draws from src.
func NewSeedGenerator(src sampling.Source) *SeedGenerator {
	return &SeedGenerator{src: src}
}

// Generate creates a new random seed.
func (g *SeedGenerator) Generate() Seed {
	addressUnit := sampling.Choose(g.src, addressUnits)

	physAddrLen := sampling.UniformInt(g.src, 16, 33)

	// The virtual space may be slightly smaller than the physical memory or
	// up to twice as many bits.
	virtAddrLen := sampling.UniformInt(g.src, physAddrLen-2, physAddrLen*2)

	pageOffsetLen := sampling.UniformInt(g.src, 2, (physAddrLen+1)/2)

	numLevels := sampling.UniformInt(g.src, 1, 5)
	levelOffsetLens, err := sampling.SplitSum(
		g.src, virtAddrLen-pageOffsetLen, numLevels)
	if err != nil {
		panic(err)
	}

	controlBitCount := sampling.UniformInt(g.src, 3, 9)

	return Seed{
		AddressUnit:           addressUnit,
		VirtualAddressLength:  virtAddrLen,
		PhysicalAddressLength: physAddrLen,
		PageOffsetLength:      pageOffsetLen,
		LevelOffsetLengths:    levelOffsetLens,
		ControlBitCount:       controlBitCount,
	}
}
