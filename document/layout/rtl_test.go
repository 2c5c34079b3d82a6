package layout_test

import (
	"bneibrit/document/layout"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReverseRTL", func() {
	It("should reverse text without digits character by character", func() {
		Expect(layout.ReverseRTL("שלום עולם")).To(Equal("םלוע םולש"))
		Expect(layout.ReverseRTL("abc")).To(Equal("cba"))
		Expect(layout.ReverseRTL("")).To(Equal(""))
	})

	It("should keep pure numbers unchanged", func() {
		Expect(layout.ReverseRTL("12345")).To(Equal("12345"))
		Expect(layout.ReverseRTL("12.5")).To(Equal("12.5"))
		Expect(layout.ReverseRTL("6.5%")).To(Equal("6.5%"))
	})

	It("should reverse run order and keep numbers readable", func() {
		Expect(layout.ReverseRTL("ab 12 cd")).To(Equal("dc 12 ba"))
		Expect(layout.ReverseRTL("הפרשת מעסיק 6.5%")).To(Equal("6.5% קיסעמ תשרפה"))
		Expect(layout.ReverseRTL("עמוד 2")).To(Equal("2 דומע"))
		Expect(layout.ReverseRTL("10/2026")).To(Equal("2026/10"))
	})

	It("should not restore mixed text when applied twice", func() {
		once := layout.ReverseRTL("1.2.3")
		Expect(once).To(Equal("3.1.2"))
		Expect(layout.ReverseRTL(once)).To(Equal("2.3.1"))
	})
})
