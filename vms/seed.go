package vms

import (
	"errors"
	"fmt"
)

// ErrInvalidSeed is returned when a seed does not describe a coherent paging
// system.
var ErrInvalidSeed = errors.New("invalid seed")

// maxAddressLength bounds address lengths accepted from outside the
// generator.
const maxAddressLength = 64

// A Seed is the minimal set of independent parameters that completely
// defines a paging system. Lengths are in bits.
type Seed struct {
	// AddressUnit is the number of bytes per address. Byte-addressable
	// systems use 1.
	AddressUnit           int   `json:"addressUnit"`
	VirtualAddressLength  int   `json:"virtualAddressLength"`
	PhysicalAddressLength int   `json:"physicalAddressLength"`
	PageOffsetLength      int   `json:"pageOffsetLength"`
	LevelOffsetLengths    []int `json:"levelOffsetLengths"`
	ControlBitCount       int   `json:"controlBitCount"`
}

// Validate checks that the seed describes a coherent paging system. Seeds
// produced by a SeedGenerator are always valid.
func (s Seed) Validate() error {
	switch s.AddressUnit {
	case 1, 2, 4:
	default:
		return fmt.Errorf("%w: address unit %d is not 1, 2 or 4",
			ErrInvalidSeed, s.AddressUnit)
	}

	err := s.addressLengthsMustBeValid()
	if err != nil {
		return err
	}

	err = s.levelsMustBeValid()
	if err != nil {
		return err
	}

	if s.ControlBitCount < 0 || s.ControlBitCount > maxAddressLength {
		return fmt.Errorf("%w: control bit count %d out of range",
			ErrInvalidSeed, s.ControlBitCount)
	}

	return nil
}

func (s Seed) addressLengthsMustBeValid() error {
	if s.PhysicalAddressLength < 1 ||
		s.PhysicalAddressLength > maxAddressLength {
		return fmt.Errorf("%w: physical address length %d out of range",
			ErrInvalidSeed, s.PhysicalAddressLength)
	}

	if s.VirtualAddressLength < 1 ||
		s.VirtualAddressLength > maxAddressLength {
		return fmt.Errorf("%w: virtual address length %d out of range",
			ErrInvalidSeed, s.VirtualAddressLength)
	}

	if s.VirtualAddressLength < s.PhysicalAddressLength-2 {
		return fmt.Errorf(
			"%w: virtual address length %d is too short for physical "+
				"address length %d",
			ErrInvalidSeed, s.VirtualAddressLength, s.PhysicalAddressLength)
	}

	if s.PageOffsetLength < 0 ||
		s.PageOffsetLength >= s.PhysicalAddressLength ||
		s.PageOffsetLength >= s.VirtualAddressLength {
		return fmt.Errorf(
			"%w: page offset length %d must be shorter than both addresses",
			ErrInvalidSeed, s.PageOffsetLength)
	}

	return nil
}

func (s Seed) levelsMustBeValid() error {
	if len(s.LevelOffsetLengths) == 0 {
		return fmt.Errorf("%w: no page table levels", ErrInvalidSeed)
	}

	total := 0
	for i, l := range s.LevelOffsetLengths {
		if l < 1 {
			return fmt.Errorf("%w: level %d offset length %d is not positive",
				ErrInvalidSeed, i, l)
		}

		total += l
	}

	vpnLength := s.VirtualAddressLength - s.PageOffsetLength
	if total != vpnLength {
		return fmt.Errorf(
			"%w: level offset lengths sum to %d, want %d",
			ErrInvalidSeed, total, vpnLength)
	}

	return nil
}
