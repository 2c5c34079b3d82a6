package layout

import "strconv"

// A4 portrait, millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 15.0
	ColumnWidth  = 85.0
	Gap          = 10.0
	LineHeight   = 7.0
	FooterHeight = 15.0

	TitleSize   = 16.0
	SectionSize = 11.0
	BodySize    = 9.0
	FooterSize  = 8.0
)

var (
	black   = Color{0, 0, 0}
	divider = Color{200, 200, 200}
	muted   = Color{100, 100, 100}
	footer  = Color{120, 120, 120}
	header  = Color{60, 60, 60}
	accent  = Color{0, 128, 128}
)

// Fonts names the registered font families. Base carries Latin digits and symbols.
type Fonts struct {
	Locale string
	Hebrew string
	Base   string
}

type Options struct {
	// SingleColumn draws Hebrew only.
	SingleColumn bool
	// LocaleRTL marks the locale column as right to left.
	LocaleRTL bool
	Footer    FooterText
}

type FooterText struct {
	LocalePage  string
	HebrewPage  string
	LocaleBrand string
	HebrewBrand string
}

type column struct {
	left, right float64
	rtl         bool
	font        string
}

type segment struct {
	text string
	font string
}

// Layout places blocks top to bottom on a Canvas and breaks pages before a block would overflow.
type Layout struct {
	canvas  Canvas
	fonts   Fonts
	opts    Options
	y       float64
	page    int
	columns []column
}

// New starts the first page.
func New(canvas Canvas, fonts Fonts, opts Options) *Layout {
	l := &Layout{canvas: canvas, fonts: fonts, opts: opts, y: Margin, page: 1}
	hebrew := column{left: Margin, right: PageWidth - Margin, rtl: true, font: fonts.Hebrew}
	if opts.SingleColumn {
		l.columns = []column{hebrew}
	} else {
		hebrew.left = Margin + ColumnWidth + Gap
		l.columns = []column{
			{left: Margin, right: Margin + ColumnWidth, rtl: opts.LocaleRTL, font: fonts.Locale},
			hebrew,
		}
	}
	canvas.AddPage()
	return l
}

func (l *Layout) Y() float64 {
	return l.y
}

func (l *Layout) Page() int {
	return l.page
}

func (l *Layout) SingleColumn() bool {
	return l.opts.SingleColumn
}

// MaxContentY is the lowest cursor position a block may reach.
func MaxContentY() float64 {
	return PageHeight - Margin - FooterHeight
}

func (l *Layout) ensure(height float64) {
	if l.y+height > MaxContentY() {
		l.drawFooter()
		l.canvas.AddPage()
		l.page++
		l.y = Margin
	}
}

func (l *Layout) setTextColor(c Color) {
	l.canvas.SetTextColor(c[0], c[1], c[2])
}

func (l *Layout) setDrawColor(c Color) {
	l.canvas.SetDrawColor(c[0], c[1], c[2])
}

// run draws segments in visual order, starting at x or ending at x when alignRight is set.
func (l *Layout) run(x, y, size float64, alignRight bool, segs ...segment) {
	if alignRight {
		for _, s := range segs {
			l.canvas.SetFont(s.font, size)
			x -= l.canvas.StringWidth(s.text)
		}
	}
	for _, s := range segs {
		l.canvas.SetFont(s.font, size)
		l.canvas.Text(x, y, s.text)
		x += l.canvas.StringWidth(s.text)
	}
}

func (c column) text(s string) segment {
	if c.rtl {
		return segment{text: ReverseRTL(s), font: c.font}
	}
	return segment{text: s, font: c.font}
}

func (l *Layout) drawIn(c column, size float64, segs ...segment) {
	if c.rtl {
		l.run(c.right, l.y, size, true, segs...)
	} else {
		l.run(c.left, l.y, size, false, segs...)
	}
}

// texts picks the per-column strings; the locale text comes first.
func (l *Layout) texts(locale, hebrew string) []string {
	if l.opts.SingleColumn {
		return []string{hebrew}
	}
	return []string{locale, hebrew}
}

func (l *Layout) drawLine(localeText, hebrewText string, size float64) {
	for i, s := range l.texts(localeText, hebrewText) {
		c := l.columns[i]
		l.drawIn(c, size, c.text(s))
	}
}

// Title draws the document title and a muted subtitle line, then a divider.
func (l *Layout) Title(localeTitle, hebrewTitle, localeSubtitle, hebrewSubtitle string) {
	l.drawLine(localeTitle, hebrewTitle, TitleSize)
	l.y += LineHeight + 2

	l.setTextColor(muted)
	l.drawLine(localeSubtitle, hebrewSubtitle, BodySize)
	l.setTextColor(black)
	l.y += LineHeight

	l.Divider()
}

func (l *Layout) Divider() {
	l.ensure(0)
	l.setDrawColor(divider)
	l.canvas.Line(Margin, l.y, PageWidth-Margin, l.y)
	l.y += 4
}

func (l *Layout) SectionTitle(localeText, hebrewText string) {
	l.ensure(LineHeight * 3)
	l.y += 3
	l.setTextColor(accent)
	l.drawLine(localeText, hebrewText, SectionSize)
	l.setTextColor(black)
	l.y += LineHeight + 1
}

func (l *Layout) EmployerHeader(localeLabel, hebrewLabel, name string) {
	l.ensure(LineHeight * 2)
	l.y += 2
	l.setTextColor(header)
	l.drawLine("--- "+localeLabel+": "+name+" ---", "--- "+hebrewLabel+": "+name+" ---", BodySize+1)
	l.setTextColor(black)
	l.y += LineHeight + 1
}

// LabelValue draws a label in the column script and the value in the base font.
func (l *Layout) LabelValue(localeLabel, hebrewLabel, value string) {
	l.ensure(LineHeight)
	for i, label := range l.texts(localeLabel, hebrewLabel) {
		c := l.columns[i]
		if c.rtl {
			l.drawIn(c, BodySize, segment{text: value + " :", font: l.fonts.Base}, c.text(label))
		} else {
			l.drawIn(c, BodySize, segment{text: label + ": ", font: c.font}, segment{text: value, font: l.fonts.Base})
		}
	}
	l.y += LineHeight
}

// StatusRow draws a label and a translated value, both in the column script.
func (l *Layout) StatusRow(localeLabel, hebrewLabel, localeValue, hebrewValue string) {
	l.ensure(LineHeight)
	labels := l.texts(localeLabel, hebrewLabel)
	values := l.texts(localeValue, hebrewValue)
	for i := range labels {
		c := l.columns[i]
		l.drawIn(c, BodySize, c.text(labels[i]+": "+values[i]))
	}
	l.y += LineHeight
}

func (l *Layout) Spacing(mm float64) {
	l.y += mm
}

func (l *Layout) drawFooter() {
	y := PageHeight - Margin
	l.setDrawColor(divider)
	l.canvas.Line(Margin, y-5, PageWidth-Margin, y-5)

	f := l.opts.Footer
	number := strconv.Itoa(l.page)
	hebrew := l.columns[len(l.columns)-1]
	hebrewPage := hebrew.text(f.HebrewPage + " " + number)
	hebrewBrand := hebrew.text(f.HebrewBrand)
	separator := segment{text: " / ", font: l.fonts.Base}

	l.setTextColor(footer)
	if l.opts.SingleColumn {
		l.run(Margin, y, FooterSize, false, hebrewPage)
		l.run(PageWidth-Margin, y, FooterSize, true, hebrewBrand)
	} else {
		locale := l.columns[0]
		l.run(Margin, y, FooterSize, false, locale.text(f.LocalePage+" "+number), separator, hebrewPage)
		l.run(PageWidth-Margin, y, FooterSize, true, locale.text(f.LocaleBrand), separator, hebrewBrand)
	}
	l.setTextColor(black)
}

// Finalize draws the footer of the last page.
func (l *Layout) Finalize() {
	l.drawFooter()
}
