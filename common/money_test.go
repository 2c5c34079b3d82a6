package common_test

import (
	"bneibrit/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Money", func() {
	Describe("Round", func() {
		It("should round half up to the given places", func() {
			Expect(common.Round(50, 2)).To(Equal(50.0))
			Expect(common.Round(12.345, 2)).To(Equal(12.35))
			Expect(common.Round(4.04, 1)).To(Equal(4.0))
			Expect(common.Round(4.05, 1)).To(Equal(4.1))
		})
	})

	Describe("RoundWhole", func() {
		It("should round to the nearest whole unit", func() {
			Expect(common.RoundWhole(243.8333)).To(Equal(int64(244)))
			Expect(common.RoundWhole(227.5)).To(Equal(int64(228)))
			Expect(common.RoundWhole(0)).To(Equal(int64(0)))
		})
	})

	Describe("FloorTenth", func() {
		It("should truncate to 0.1 increments", func() {
			Expect(common.FloorTenth(7.19)).To(Equal(7.1))
			Expect(common.FloorTenth(90)).To(Equal(90.0))
			Expect(common.FloorTenth(0.05)).To(Equal(0.0))
		})
	})
})
