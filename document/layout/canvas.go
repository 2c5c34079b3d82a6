package layout

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Color is an RGB triple.
type Color [3]int

// Canvas is the drawing surface of a layout. Coordinates are millimetres from the top left corner.
type Canvas interface {
	AddPage()
	SetFont(family string, size float64)
	SetTextColor(r, g, b int)
	SetDrawColor(r, g, b int)
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	StringWidth(s string) float64
}

// PDFCanvas draws onto an A4 portrait PDF document.
type PDFCanvas struct {
	pdf *fpdf.Fpdf
}

func NewPDFCanvas(title string, now time.Time) *PDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("bneibrit", true)
	pdf.SetCreationDate(now)
	return &PDFCanvas{pdf: pdf}
}

// RegisterFont adds a TrueType font under family.
func (c *PDFCanvas) RegisterFont(family string, ttf []byte) error {
	c.pdf.AddUTF8FontFromBytes(family, "", ttf)
	return c.pdf.Error()
}

func (c *PDFCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *PDFCanvas) SetFont(family string, size float64) {
	c.pdf.SetFont(family, "", size)
}

func (c *PDFCanvas) SetTextColor(r, g, b int) {
	c.pdf.SetTextColor(r, g, b)
}

func (c *PDFCanvas) SetDrawColor(r, g, b int) {
	c.pdf.SetDrawColor(r, g, b)
}

func (c *PDFCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, s)
}

func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *PDFCanvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(s)
}

// Output writes the document, or returns the first error recorded while drawing.
func (c *PDFCanvas) Output(w io.Writer) error {
	if err := c.pdf.Error(); err != nil {
		return err
	}
	return c.pdf.Output(w)
}
