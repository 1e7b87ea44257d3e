package vms

import "math/big"

// Derive computes every value of the paging system described by the seed.
// The returned problem hides nothing. The seed must be valid.
func Derive(seed Seed) Problem {
	unit := big.NewInt(int64(seed.AddressUnit))

	ppnLength := seed.PhysicalAddressLength - seed.PageOffsetLength
	pteBytes := ceilDiv(seed.ControlBitCount+ppnLength, 8)
	pageBytes := mul(pow2(seed.PageOffsetLength), unit)

	numLevels := len(seed.LevelOffsetLengths)
	entryCounts := make([]*big.Int, numLevels)
	tableBytes := make([]*big.Int, numLevels)
	tablePages := make([]*big.Int, numLevels)

	for i, offsetLength := range seed.LevelOffsetLengths {
		entryCounts[i] = pow2(offsetLength)

		// A page table always occupies whole pages.
		rawBytes := mul(entryCounts[i], big.NewInt(int64(pteBytes)))
		tablePages[i] = ceilDivBig(rawBytes, pageBytes)
		tableBytes[i] = mul(tablePages[i], pageBytes)
	}

	maxCount, maxBytes := maxFootprint(entryCounts, tablePages, pageBytes)

	return Problem{
		Seed:                 seed,
		NumPageTableLevels:   numLevels,
		VirtualSpaceBytes:    mul(pow2(seed.VirtualAddressLength), unit),
		PhysicalMemoryBytes:  mul(pow2(seed.PhysicalAddressLength), unit),
		PPNLength:            ppnLength,
		PageBytes:            pageBytes,
		PageTableBytes:       tableBytes,
		PageTableEntryCounts: entryCounts,
		PageTablePages:       tablePages,
		PageTableEntryBytes:  pteBytes,
		MinPageTableCount:    1,
		MinPageTableBytes:    new(big.Int).Set(tableBytes[0]),
		MaxPageTableCount:    maxCount,
		MaxPageTableBytes:    maxBytes,
		HiddenEntries:        []Attribute{},
	}
}

// maxFootprint counts the page tables of a fully populated hierarchy. A level
// can have as many tables as there are entries in all the tables of the
// level above it.
func maxFootprint(
	entryCounts, tablePages []*big.Int,
	pageBytes *big.Int,
) (count, bytes *big.Int) {
	count = new(big.Int)
	bytes = new(big.Int)

	tablesAtLevel := big.NewInt(1)
	for i := range entryCounts {
		count.Add(count, tablesAtLevel)

		levelBytes := mul(mul(tablesAtLevel, tablePages[i]), pageBytes)
		bytes.Add(bytes, levelBytes)

		tablesAtLevel = mul(tablesAtLevel, entryCounts[i])
	}

	return count, bytes
}

func pow2(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

func mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func ceilDivBig(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}

	return q
}
