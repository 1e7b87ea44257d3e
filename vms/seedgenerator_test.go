package vms

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/vmquiz/sampling"
	"go.uber.org/mock/gomock"
)

var _ = Describe("SeedGenerator", func() {
	It("should only generate valid seeds within the sampling ranges", func() {
		gen := NewSeedGenerator(sampling.NewSource(9))

		for i := 0; i < 1000; i++ {
			seed := gen.Generate()

			Expect(seed.Validate()).To(Succeed())
			Expect([]int{1, 2, 4}).To(ContainElement(seed.AddressUnit))
			Expect(seed.PhysicalAddressLength).To(BeNumerically(">=", 16))
			Expect(seed.PhysicalAddressLength).To(BeNumerically("<=", 32))
			Expect(seed.VirtualAddressLength).To(
				BeNumerically(">=", seed.PhysicalAddressLength-2))
			Expect(seed.VirtualAddressLength).To(
				BeNumerically("<", 2*seed.PhysicalAddressLength))
			Expect(seed.PageOffsetLength).To(BeNumerically(">=", 2))
			Expect(len(seed.LevelOffsetLengths)).To(BeNumerically(">=", 1))
			Expect(len(seed.LevelOffsetLengths)).To(BeNumerically("<=", 4))
			Expect(seed.ControlBitCount).To(BeNumerically(">=", 3))
			Expect(seed.ControlBitCount).To(BeNumerically("<", 9))

			total := 0
			for _, l := range seed.LevelOffsetLengths {
				Expect(l).To(BeNumerically(">", 0))
				total += l
			}
			Expect(total).To(Equal(
				seed.VirtualAddressLength - seed.PageOffsetLength))
		}
	})

	It("should be reproducible with the same source seed", func() {
		a := NewSeedGenerator(sampling.NewSource(21))
		b := NewSeedGenerator(sampling.NewSource(21))

		for i := 0; i < 10; i++ {
			Expect(a.Generate()).To(Equal(b.Generate()))
		}
	})

	It("should take the lowest value of every range", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		src := NewMockSource(mockCtrl)
		src.EXPECT().Intn(gomock.Any()).Return(0).AnyTimes()

		seed := NewSeedGenerator(src).Generate()

		Expect(seed).To(Equal(Seed{
			AddressUnit:           1,
			VirtualAddressLength:  14,
			PhysicalAddressLength: 16,
			PageOffsetLength:      2,
			LevelOffsetLengths:    []int{12},
			ControlBitCount:       3,
		}))
	})
})

var _ = Describe("Seed", func() {
	var seed Seed

	BeforeEach(func() {
		seed = Seed{
			AddressUnit:           1,
			VirtualAddressLength:  32,
			PhysicalAddressLength: 30,
			PageOffsetLength:      12,
			LevelOffsetLengths:    []int{10, 10},
			ControlBitCount:       4,
		}
	})

	It("should accept a coherent seed", func() {
		Expect(seed.Validate()).To(Succeed())
	})

	DescribeTable("incoherent seeds",
		func(modify func(s *Seed)) {
			modify(&seed)
			Expect(seed.Validate()).To(MatchError(ErrInvalidSeed))
		},
		Entry("address unit", func(s *Seed) { s.AddressUnit = 3 }),
		Entry("physical length", func(s *Seed) { s.PhysicalAddressLength = 0 }),
		Entry("virtual length", func(s *Seed) { s.VirtualAddressLength = 65 }),
		Entry("virtual much shorter than physical", func(s *Seed) {
			s.PhysicalAddressLength = 40
		}),
		Entry("page offset too long", func(s *Seed) {
			s.PageOffsetLength = 30
			s.LevelOffsetLengths = []int{2}
		}),
		Entry("no levels", func(s *Seed) { s.LevelOffsetLengths = nil }),
		Entry("zero-length level", func(s *Seed) {
			s.LevelOffsetLengths = []int{20, 0}
		}),
		Entry("levels not covering the VPN", func(s *Seed) {
			s.LevelOffsetLengths = []int{10, 9}
		}),
		Entry("negative control bits", func(s *Seed) { s.ControlBitCount = -1 }),
	)
})
