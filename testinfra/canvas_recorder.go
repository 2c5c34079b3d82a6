package testinfra

import (
	"unicode/utf8"

	"bneibrit/document/layout"
)

type OpKind string

const (
	OpPage OpKind = "page"
	OpText OpKind = "text"
	OpLine OpKind = "line"
)

// Op is one recorded drawing call with the state it was drawn in.
type Op struct {
	Kind  OpKind
	Page  int
	X, Y  float64
	X2    float64
	Y2    float64
	Text  string
	Font  string
	Size  float64
	Color layout.Color
}

// Recorder is a test Canvas that keeps the drawing calls instead of rendering them.
// Glyph width is a fixed fraction of the font size.
type Recorder struct {
	Ops []Op

	WidthFactor     float64
	RegisteredFonts map[string]int

	page      int
	font      string
	size      float64
	textColor layout.Color
	drawColor layout.Color
}

func NewRecorder() *Recorder {
	return &Recorder{WidthFactor: 0.2, RegisteredFonts: map[string]int{}}
}

func (r *Recorder) RegisterFont(family string, ttf []byte) error {
	r.RegisteredFonts[family] = len(ttf)
	return nil
}

func (r *Recorder) AddPage() {
	r.page++
	r.Ops = append(r.Ops, Op{Kind: OpPage, Page: r.page})
}

func (r *Recorder) SetFont(family string, size float64) {
	r.font, r.size = family, size
}

func (r *Recorder) SetTextColor(red, green, blue int) {
	r.textColor = layout.Color{red, green, blue}
}

func (r *Recorder) SetDrawColor(red, green, blue int) {
	r.drawColor = layout.Color{red, green, blue}
}

func (r *Recorder) Text(x, y float64, s string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Page: r.page, X: x, Y: y, Text: s, Font: r.font, Size: r.size, Color: r.textColor})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Page: r.page, X: x1, Y: y1, X2: x2, Y2: y2, Color: r.drawColor})
}

func (r *Recorder) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * r.WidthFactor
}

func (r *Recorder) Pages() int {
	return r.page
}

// Texts returns the text calls in drawing order.
func (r *Recorder) Texts() []Op {
	var texts []Op
	for _, op := range r.Ops {
		if op.Kind == OpText {
			texts = append(texts, op)
		}
	}
	return texts
}
