package layout_test

import (
	"bneibrit/document/layout"
	"bneibrit/testinfra"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var fonts = layout.Fonts{Locale: "Locale", Hebrew: "Hebrew", Base: "Base"}

var footerText = layout.FooterText{LocalePage: "Page", HebrewPage: "עמוד", LocaleBrand: "Bnei Brit", HebrewBrand: "בני ברית"}

func textsOnPage(r *testinfra.Recorder, page int) []testinfra.Op {
	var out []testinfra.Op
	for _, op := range r.Texts() {
		if op.Page == page {
			out = append(out, op)
		}
	}
	return out
}

var _ = Describe("Layout", func() {
	var rec *testinfra.Recorder

	BeforeEach(func() {
		rec = testinfra.NewRecorder()
	})

	It("should start on the first page at the top margin", func() {
		l := layout.New(rec, fonts, layout.Options{Footer: footerText})
		Expect(rec.Pages()).To(Equal(1))
		Expect(l.Page()).To(Equal(1))
		Expect(l.Y()).To(Equal(layout.Margin))
		Expect(layout.MaxContentY()).To(Equal(267.0))
	})

	Describe("LabelValue", func() {
		It("should draw the locale column left to right and the Hebrew column right aligned", func() {
			l := layout.New(rec, fonts, layout.Options{Footer: footerText})
			l.LabelValue("Total", "אבג", "12")

			texts := rec.Texts()
			Expect(texts).To(HaveLen(4))

			Expect(texts[0].Text).To(Equal("Total: "))
			Expect(texts[0].Font).To(Equal("Locale"))
			Expect(texts[0].X).To(Equal(layout.Margin))
			Expect(texts[1].Text).To(Equal("12"))
			Expect(texts[1].Font).To(Equal("Base"))
			Expect(texts[1].X).To(BeNumerically("~", 15+7*9*0.2, 1e-9))

			Expect(texts[2].Text).To(Equal("12 :"))
			Expect(texts[2].Font).To(Equal("Base"))
			Expect(texts[2].X).To(BeNumerically("~", 195-7*9*0.2, 1e-9))
			Expect(texts[3].Text).To(Equal("גבא"))
			Expect(texts[3].Font).To(Equal("Hebrew"))
			Expect(texts[3].X).To(BeNumerically("~", 195-3*9*0.2, 1e-9))

			for _, op := range texts {
				Expect(op.Y).To(Equal(layout.Margin))
				Expect(op.Size).To(Equal(layout.BodySize))
			}
			Expect(l.Y()).To(Equal(layout.Margin + layout.LineHeight))
		})

		It("should right align an RTL locale at the left column edge", func() {
			l := layout.New(rec, fonts, layout.Options{LocaleRTL: true, Footer: footerText})
			l.LabelValue("ابت", "אבג", "5")

			texts := rec.Texts()
			Expect(texts).To(HaveLen(4))
			Expect(texts[0].Text).To(Equal("5 :"))
			Expect(texts[1].Text).To(Equal("تبا"))
			Expect(texts[1].Font).To(Equal("Locale"))
			Expect(texts[1].X + rec.StringWidth(texts[1].Text)).To(BeNumerically("~", layout.Margin+layout.ColumnWidth, 1e-9))
		})

		It("should draw once in single column mode", func() {
			l := layout.New(rec, fonts, layout.Options{SingleColumn: true, Footer: footerText})
			Expect(l.SingleColumn()).To(BeTrue())
			l.LabelValue("ignored", "ימים 3", "1")

			texts := rec.Texts()
			Expect(texts).To(HaveLen(2))
			Expect(texts[1].Text).To(Equal("3 םימי"))
			Expect(texts[1].X + rec.StringWidth(texts[1].Text)).To(BeNumerically("~", 195, 1e-9))
		})
	})

	Describe("StatusRow", func() {
		It("should draw translated values in the column script", func() {
			l := layout.New(rec, fonts, layout.Options{Footer: footerText})
			l.StatusRow("Status", "סטטוס", "Overdue", "באיחור")

			texts := rec.Texts()
			Expect(texts).To(HaveLen(2))
			Expect(texts[0].Text).To(Equal("Status: Overdue"))
			Expect(texts[1].Text).To(Equal("רוחיאב :סוטטס"))
			Expect(texts[1].Font).To(Equal("Hebrew"))
		})
	})

	Describe("Title", func() {
		It("should draw title, subtitle and divider", func() {
			l := layout.New(rec, fonts, layout.Options{Footer: footerText})
			l.Title("Summary", "סיכום", "October 2026", "10/2026")

			texts := rec.Texts()
			Expect(texts).To(HaveLen(4))
			Expect(texts[0].Size).To(Equal(layout.TitleSize))
			Expect(texts[2].Color).To(Equal(layout.Color{100, 100, 100}))
			Expect(texts[3].Text).To(Equal("2026/10"))

			lines := 0
			for _, op := range rec.Ops {
				if op.Kind == testinfra.OpLine {
					lines++
					Expect(op.Y).To(Equal(layout.Margin + 9 + 7))
				}
			}
			Expect(lines).To(Equal(1))
			Expect(l.Y()).To(Equal(layout.Margin + 9 + 7 + 4))
		})
	})

	Describe("pagination", func() {
		It("should break the page before a block overflows", func() {
			l := layout.New(rec, fonts, layout.Options{Footer: footerText})
			for i := 0; i < 36; i++ {
				l.LabelValue("a", "ב", "1")
			}
			Expect(l.Page()).To(Equal(1))
			Expect(l.Y()).To(Equal(layout.Margin + 36*layout.LineHeight))

			l.LabelValue("a", "ב", "1")
			Expect(l.Page()).To(Equal(2))
			Expect(rec.Pages()).To(Equal(2))
			Expect(l.Y()).To(Equal(layout.Margin + layout.LineHeight))

			footer := []string{}
			for _, op := range textsOnPage(rec, 1) {
				if op.Y == layout.PageHeight-layout.Margin {
					footer = append(footer, op.Text)
				}
			}
			Expect(footer).To(Equal([]string{"Page 1", " / ", "1 דומע", "Bnei Brit", " / ", "תירב ינב"}))
		})

		It("should reserve room for a section title", func() {
			l := layout.New(rec, fonts, layout.Options{Footer: footerText})
			l.Spacing(267 - 15 - 3*layout.LineHeight)
			l.SectionTitle("Section", "סעיף")
			Expect(l.Page()).To(Equal(1))
			Expect(l.Y()).To(Equal(257.0))

			l.SectionTitle("Section", "סעיף")
			Expect(l.Page()).To(Equal(2))
			Expect(l.Y()).To(Equal(layout.Margin + 3 + layout.LineHeight + 1))
		})

		It("should keep dividers out of the footer", func() {
			l := layout.New(rec, fonts, layout.Options{Footer: footerText})
			l.Spacing(layout.MaxContentY() - layout.Margin)
			l.Divider()
			Expect(l.Page()).To(Equal(1))

			l.Spacing(1)
			l.Divider()
			Expect(l.Page()).To(Equal(2))
			Expect(l.Y()).To(Equal(layout.Margin + 4))

			dividers := []float64{}
			for _, op := range rec.Ops {
				if op.Kind == testinfra.OpLine && op.Color == (layout.Color{200, 200, 200}) && op.Y != layout.PageHeight-layout.Margin-5 {
					Expect(op.Y).To(BeNumerically("<=", layout.MaxContentY()))
					dividers = append(dividers, op.Y)
				}
			}
			Expect(dividers).To(Equal([]float64{layout.MaxContentY(), layout.Margin}))
		})

		It("should draw the last footer on finalize", func() {
			l := layout.New(rec, fonts, layout.Options{SingleColumn: true, Footer: footerText})
			l.EmployerHeader("Employer", "מעסיק", "Dana")
			l.Finalize()

			texts := rec.Texts()
			Expect(texts).To(HaveLen(3))
			Expect(texts[0].Text).To(Equal(layout.ReverseRTL("--- מעסיק: Dana ---")))
			Expect(texts[1].Text).To(Equal("1 דומע"))
			Expect(texts[1].X).To(Equal(layout.Margin))
			Expect(texts[2].Text).To(Equal("תירב ינב"))
			Expect(texts[2].Color).To(Equal(layout.Color{120, 120, 120}))
		})
	})
})
