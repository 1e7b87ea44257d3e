package vms

// An Attribute names one value of a Problem. Attribute names match the JSON
// field names of Problem.
type Attribute string

// Attributes of a problem.
const (
	AddressUnit           Attribute = "addressUnit"
	VirtualAddressLength  Attribute = "virtualAddressLength"
	PhysicalAddressLength Attribute = "physicalAddressLength"
	PageOffsetLength      Attribute = "pageOffsetLength"
	LevelOffsetLengths    Attribute = "levelOffsetLengths"
	ControlBitCount       Attribute = "controlBitCount"
	NumPageTableLevels    Attribute = "numPageTableLevels"
	VirtualSpaceBytes     Attribute = "virtualSpaceBytes"
	PhysicalMemoryBytes   Attribute = "physicalMemoryBytes"
	PPNLength             Attribute = "ppnLength"
	PageBytes             Attribute = "pageBytes"
	PageTableEntryCounts  Attribute = "pageTableEntryCounts"
	PageTableEntryBytes   Attribute = "pageTableEntryBytes"
	PageTableBytes        Attribute = "pageTableBytes"
	PageTablePages        Attribute = "pageTablePages"
	MinPageTableCount     Attribute = "minPageTableCount"
	MinPageTableBytes     Attribute = "minPageTableBytes"
	MaxPageTableCount     Attribute = "maxPageTableCount"
	MaxPageTableBytes     Attribute = "maxPageTableBytes"
)

// AllAttributes lists every attribute in display order.
var AllAttributes = []Attribute{
	AddressUnit,
	PhysicalAddressLength,
	PhysicalMemoryBytes,
	VirtualAddressLength,
	VirtualSpaceBytes,
	PageOffsetLength,
	PageBytes,
	PPNLength,
	ControlBitCount,
	PageTableEntryBytes,
	NumPageTableLevels,
	LevelOffsetLengths,
	PageTableEntryCounts,
	PageTableBytes,
	PageTablePages,
	MinPageTableCount,
	MinPageTableBytes,
	MaxPageTableCount,
	MaxPageTableBytes,
}

var attributeLabels = map[Attribute]string{
	AddressUnit:           "Addressable unit (bytes)",
	VirtualAddressLength:  "Virtual address length (bits)",
	PhysicalAddressLength: "Physical address length (bits)",
	PageOffsetLength:      "Page offset length (bits)",
	LevelOffsetLengths:    "VPN length per level (bits)",
	ControlBitCount:       "Control bits per PTE",
	NumPageTableLevels:    "Page table levels",
	VirtualSpaceBytes:     "Virtual address space (bytes)",
	PhysicalMemoryBytes:   "Physical memory (bytes)",
	PPNLength:             "PPN length (bits)",
	PageBytes:             "Page size (bytes)",
	PageTableEntryCounts:  "PTEs per page table",
	PageTableEntryBytes:   "PTE size (bytes)",
	PageTableBytes:        "Page table size per level (bytes)",
	PageTablePages:        "Page table size per level (pages)",
	MinPageTableCount:     "Min page tables",
	MinPageTableBytes:     "Min page table footprint (bytes)",
	MaxPageTableCount:     "Max page tables",
	MaxPageTableBytes:     "Max page table footprint (bytes)",
}

// Label returns the human-readable description of the attribute.
func (a Attribute) Label() string {
	label, found := attributeLabels[a]
	if !found {
		return string(a)
	}

	return label
}

// isSize tells if the attribute is a size in bytes.
func (a Attribute) isSize() bool {
	switch a {
	case VirtualSpaceBytes, PhysicalMemoryBytes, PageBytes,
		PageTableBytes, MinPageTableBytes, MaxPageTableBytes:
		return true
	default:
		return false
	}
}
