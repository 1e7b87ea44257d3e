package vms

import (
	"math/big"
	"slices"
)

// A Problem is a paging system with every derivable value filled in, along
// with the attributes hidden from the learner.
//
// Values that may not fit in 64 bits are stored as *big.Int. A Problem must
// not be modified after it is created.
type Problem struct {
	Seed

	NumPageTableLevels  int      `json:"numPageTableLevels"`
	VirtualSpaceBytes   *big.Int `json:"virtualSpaceBytes"`
	PhysicalMemoryBytes *big.Int `json:"physicalMemoryBytes"`
	PPNLength           int      `json:"ppnLength"`
	PageBytes           *big.Int `json:"pageBytes"`

	// Per-level values, root level first.
	PageTableBytes       []*big.Int `json:"pageTableBytes"`
	PageTableEntryCounts []*big.Int `json:"pageTableEntryCounts"`
	PageTablePages       []*big.Int `json:"pageTablePages"`

	PageTableEntryBytes int `json:"pageTableEntryBytes"`

	MinPageTableCount int      `json:"minPageTableCount"`
	MinPageTableBytes *big.Int `json:"minPageTableBytes"`
	MaxPageTableCount *big.Int `json:"maxPageTableCount"`
	MaxPageTableBytes *big.Int `json:"maxPageTableBytes"`

	HiddenEntries []Attribute `json:"hiddenEntries"`
}

// IsHidden tells if the attribute is withheld from the learner.
func (p Problem) IsHidden(attr Attribute) bool {
	return slices.Contains(p.HiddenEntries, attr)
}

// Value returns the value of an attribute. Per-level attributes return a
// slice. It returns nil for unknown attributes.
func (p Problem) Value(attr Attribute) any {
	switch attr {
	case AddressUnit:
		return p.AddressUnit
	case VirtualAddressLength:
		return p.VirtualAddressLength
	case PhysicalAddressLength:
		return p.PhysicalAddressLength
	case PageOffsetLength:
		return p.PageOffsetLength
	case LevelOffsetLengths:
		return p.LevelOffsetLengths
	case ControlBitCount:
		return p.ControlBitCount
	case NumPageTableLevels:
		return p.NumPageTableLevels
	case VirtualSpaceBytes:
		return p.VirtualSpaceBytes
	case PhysicalMemoryBytes:
		return p.PhysicalMemoryBytes
	case PPNLength:
		return p.PPNLength
	case PageBytes:
		return p.PageBytes
	case PageTableEntryCounts:
		return p.PageTableEntryCounts
	case PageTableEntryBytes:
		return p.PageTableEntryBytes
	case PageTableBytes:
		return p.PageTableBytes
	case PageTablePages:
		return p.PageTablePages
	case MinPageTableCount:
		return p.MinPageTableCount
	case MinPageTableBytes:
		return p.MinPageTableBytes
	case MaxPageTableCount:
		return p.MaxPageTableCount
	case MaxPageTableBytes:
		return p.MaxPageTableBytes
	default:
		return nil
	}
}

// HiddenNames returns the names of the hidden attributes.
func (p Problem) HiddenNames() []string {
	names := make([]string, len(p.HiddenEntries))
	for i, attr := range p.HiddenEntries {
		names[i] = string(attr)
	}

	return names
}
