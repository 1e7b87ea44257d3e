package vms

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Render", func() {
	var (
		p   Problem
		buf *bytes.Buffer
	)

	BeforeEach(func() {
		p = Derive(Seed{
			AddressUnit:           1,
			VirtualAddressLength:  32,
			PhysicalAddressLength: 30,
			PageOffsetLength:      12,
			LevelOffsetLengths:    []int{10, 10},
			ControlBitCount:       4,
		})
		p.HiddenEntries = []Attribute{PageBytes, PageTableEntryCounts}
		buf = new(bytes.Buffer)
	})

	It("should mask hidden attributes", func() {
		Expect(Render(buf, p, false)).To(Succeed())

		out := buf.String()
		Expect(out).To(MatchRegexp(`Page size \(bytes\)\s+\?\n`))
		Expect(out).To(MatchRegexp(`PTEs per page table\s+\?\n`))
		Expect(out).To(MatchRegexp(`PPN length \(bits\)\s+18\n`))
		Expect(out).To(ContainSubstring("[10, 10]"))
		Expect(out).NotTo(ContainSubstring("*"))
	})

	It("should reveal and mark hidden attributes in the solution", func() {
		Expect(Render(buf, p, true)).To(Succeed())

		out := buf.String()
		Expect(out).To(MatchRegexp(`Page size \(bytes\)\s+4096 \(4\.0 KiB\) \*\n`))
		Expect(out).To(MatchRegexp(`PTEs per page table\s+\[1024, 1024\] \*\n`))
		Expect(out).NotTo(ContainSubstring("?"))
	})

	It("should write one line per attribute", func() {
		Expect(Render(buf, p, true)).To(Succeed())

		Expect(bytes.Count(buf.Bytes(), []byte("\n"))).To(
			Equal(len(AllAttributes)))
	})
})
