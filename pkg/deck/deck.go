package deck

import "slices"

// EMU is a length in English Metric Units.
type EMU int64

const (
	// EMUPerCm is the number of EMU in one centimetre.
	EMUPerCm = 360000
	// EMUPerInch is the number of EMU in one inch.
	EMUPerInch = 914400
	// EMUPerPx is the number of EMU in one pixel at 96 dpi.
	EMUPerPx = EMUPerInch / 96
)

// Cm converts centimetres to EMU, rounding to the nearest unit.
func Cm(v float64) EMU {
	if v < 0 {
		return EMU(v*EMUPerCm - 0.5)
	}
	return EMU(v*EMUPerCm + 0.5)
}

// Px converts a pixel count at 96 dpi to EMU.
func Px(n int) EMU {
	return EMU(n) * EMUPerPx
}

// Rect is the position (top-left corner) and size of an element on a slide.
type Rect struct {
	X, Y EMU
	W, H EMU
}

// Font describes how a text run is drawn. A zero Size or empty Name leaves
// the choice to the renderer.
type Font struct {
	Name   string
	Size   float64 // points
	Bold   bool
	Italic bool
	Color  string // RRGGBB hex, empty for the default
}

// Run is a span of text with a single font.
type Run struct {
	Text string
	Font Font
}

// Element is anything that can be placed on a slide.
type Element interface {
	Bounds() Rect
}

// Document is an ordered collection of slides.
type Document struct {
	Title   string
	Creator string
	// RunID identifies the generation run that produced the document.
	RunID string

	Slides []*Slide
}

// New returns an empty document with the given title.
func New(title string) *Document {
	return &Document{Title: title}
}

// AddSlide appends a new empty slide and returns it.
func (d *Document) AddSlide() *Slide {
	s := &Slide{}
	d.Slides = append(d.Slides, s)
	return s
}

// Slide holds the elements of one page in insertion order.
type Slide struct {
	Elements []Element
}

// Add appends e to the slide.
func (s *Slide) Add(e Element) {
	s.Elements = append(s.Elements, e)
}

// Tables returns the tables on the slide in insertion order.
func (s *Slide) Tables() []*Table { return elementsOf[*Table](s) }

// Charts returns the charts on the slide in insertion order.
func (s *Slide) Charts() []*Chart { return elementsOf[*Chart](s) }

// TextBoxes returns the text boxes on the slide in insertion order.
func (s *Slide) TextBoxes() []*TextBox { return elementsOf[*TextBox](s) }

// Pictures returns the pictures on the slide in insertion order.
func (s *Slide) Pictures() []*Picture { return elementsOf[*Picture](s) }

func elementsOf[T Element](s *Slide) []T {
	var out []T
	for _, e := range s.Elements {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Cell is one table cell. An empty Runs slice renders as a blank cell.
type Cell struct {
	Runs []Run
}

// Text returns the concatenated text of the cell.
func (c Cell) Text() string {
	switch len(c.Runs) {
	case 0:
		return ""
	case 1:
		return c.Runs[0].Text
	}
	var n int
	for _, r := range c.Runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range c.Runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// Table is a fixed-size grid of text cells.
type Table struct {
	Rect
	// ColWidths holds explicit widths for the leading columns. Columns
	// without an entry share the remaining width equally.
	ColWidths []EMU

	cells [][]Cell
}

// NewTable returns an empty rows x cols table. It panics if either dimension
// is not positive.
func NewTable(r Rect, rows, cols int, colWidths ...EMU) *Table {
	if rows <= 0 || cols <= 0 {
		panic("deck: table dimensions must be positive")
	}
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Table{Rect: r, ColWidths: slices.Clone(colWidths), cells: cells}
}

// Bounds implements [Element].
func (t *Table) Bounds() Rect { return t.Rect }

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.cells) }

// Cols returns the number of columns.
func (t *Table) Cols() int { return len(t.cells[0]) }

// Cell returns the cell at (row, col).
func (t *Table) Cell(row, col int) Cell { return t.cells[row][col] }

// Text returns the text of the cell at (row, col).
func (t *Table) Text(row, col int) string { return t.cells[row][col].Text() }

// SetText replaces the content of the cell at (row, col) with a single run in
// the default font. An empty text clears the cell.
func (t *Table) SetText(row, col int, text string) {
	if text == "" {
		t.cells[row][col].Runs = nil
		return
	}
	t.cells[row][col].Runs = []Run{{Text: text}}
}

// SetRow fills row from column 0 onwards. Extra values are ignored.
func (t *Table) SetRow(row int, values ...string) {
	for col, v := range values {
		if col >= t.Cols() {
			break
		}
		t.SetText(row, col, v)
	}
}

// ColumnWidths returns the width of every column, filling the columns
// without an explicit width with an equal share of what remains.
func (t *Table) ColumnWidths() []EMU {
	cols := t.Cols()
	out := make([]EMU, cols)
	var used EMU
	n := min(len(t.ColWidths), cols)
	for i := 0; i < n; i++ {
		out[i] = t.ColWidths[i]
		used += t.ColWidths[i]
	}
	if rest := cols - n; rest > 0 {
		share := max(t.W-used, 0) / EMU(rest)
		for i := n; i < cols; i++ {
			out[i] = share
		}
	}
	return out
}

// NormalizeFont sets every run in every cell to the given point size.
func (t *Table) NormalizeFont(size float64) {
	for r := range t.cells {
		for c := range t.cells[r] {
			runs := t.cells[r][c].Runs
			for i := range runs {
				runs[i].Font.Size = size
			}
		}
	}
}

// ChartKind selects the chart type.
type ChartKind int

const (
	// ChartPie is a single-series pie chart.
	ChartPie ChartKind = iota
	// ChartColumn is a clustered vertical bar chart.
	ChartColumn
)

func (k ChartKind) String() string {
	switch k {
	case ChartPie:
		return "pie"
	case ChartColumn:
		return "column"
	default:
		return "unknown"
	}
}

// LegendPosition places the chart legend.
type LegendPosition int

const (
	// LegendNone hides the legend.
	LegendNone LegendPosition = iota
	LegendBottom
	LegendRight
)

// Chart is a single-series chart. Categories and Values have equal length.
type Chart struct {
	Rect
	Kind       ChartKind
	Title      string
	SeriesName string
	Categories []string
	Values     []float64

	Legend LegendPosition
	// LegendOverlay reports whether the legend may overlap the plot area.
	LegendOverlay bool
	// ShowPercent labels every slice with its share of the total.
	ShowPercent bool
}

// NewChart returns a chart holding copies of categories and values. It
// panics if their lengths differ.
func NewChart(r Rect, kind ChartKind, title string, categories []string, values []float64) *Chart {
	if len(categories) != len(values) {
		panic("deck: chart categories and values differ in length")
	}
	return &Chart{
		Rect:       r,
		Kind:       kind,
		Title:      title,
		Categories: slices.Clone(categories),
		Values:     slices.Clone(values),
	}
}

// Bounds implements [Element].
func (c *Chart) Bounds() Rect { return c.Rect }

// Sum returns the total of all values.
func (c *Chart) Sum() float64 {
	var s float64
	for _, v := range c.Values {
		s += v
	}
	return s
}

// TextBox is a free-floating block of text.
type TextBox struct {
	Rect
	Runs []Run
	// Wrap enables word wrap inside the box.
	Wrap bool
}

// NewTextBox returns a text box containing runs.
func NewTextBox(r Rect, runs ...Run) *TextBox {
	return &TextBox{Rect: r, Runs: runs, Wrap: true}
}

// Bounds implements [Element].
func (b *TextBox) Bounds() Rect { return b.Rect }

// Text returns the concatenated text of all runs.
func (b *TextBox) Text() string {
	return Cell{Runs: b.Runs}.Text()
}

// Picture is an embedded raster image.
type Picture struct {
	Rect
	Data []byte
	MIME string
}

// Bounds implements [Element].
func (p *Picture) Bounds() Rect { return p.Rect }

// Stats counts the elements of a document by type.
type Stats struct {
	Slides    int
	Tables    int
	Charts    int
	TextBoxes int
	Pictures  int
}

// Stats returns element counts across all slides.
func (d *Document) Stats() Stats {
	st := Stats{Slides: len(d.Slides)}
	for _, s := range d.Slides {
		for _, e := range s.Elements {
			switch e.(type) {
			case *Table:
				st.Tables++
			case *Chart:
				st.Charts++
			case *TextBox:
				st.TextBoxes++
			case *Picture:
				st.Pictures++
			}
		}
	}
	return st
}
