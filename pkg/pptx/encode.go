package pptx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/influencerdeck/influencerdeck/pkg/deck"
)

// ErrEmptyDocument is returned when encoding a document without slides.
var ErrEmptyDocument = errors.New("document has no slides")

// Encode writes doc to w as a .pptx file.
func Encode(w io.Writer, doc *deck.Document) error {
	p, err := Build(doc)
	if err != nil {
		return err
	}
	wr, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	pw, ok := wr.(*ppt.PPTXWriter)
	if !ok {
		return fmt.Errorf("unexpected writer type %T", wr)
	}

	var buf bytes.Buffer
	if err := pw.WriteTo(&buf); err != nil {
		return fmt.Errorf("writing presentation: %w", err)
	}
	data, err := setColumnWidths(buf.Bytes(), doc)
	if err != nil {
		return fmt.Errorf("setting column widths: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Build converts doc into a GoPPT presentation.
func Build(doc *deck.Document) (*ppt.Presentation, error) {
	if doc == nil || len(doc.Slides) == 0 {
		return nil, ErrEmptyDocument
	}

	p := ppt.New()
	props := p.GetDocumentProperties()
	props.Title = doc.Title
	props.Creator = doc.Creator

	for i, s := range doc.Slides {
		// A new presentation starts with one empty slide.
		slide := p.GetActiveSlide()
		if i > 0 {
			slide = p.CreateSlide()
		}
		for j, e := range s.Elements {
			if err := addElement(slide, e); err != nil {
				return nil, fmt.Errorf("slide %d element %d: %w", i+1, j+1, err)
			}
		}
	}
	return p, nil
}

func addElement(slide *ppt.Slide, e deck.Element) error {
	switch v := e.(type) {
	case *deck.Table:
		addTable(slide, v)
	case *deck.Chart:
		return addChart(slide, v)
	case *deck.TextBox:
		addTextBox(slide, v)
	case *deck.Picture:
		return addPicture(slide, v)
	default:
		return fmt.Errorf("unsupported element %T", e)
	}
	return nil
}

func addTextBox(slide *ppt.Slide, b *deck.TextBox) {
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(int64(b.X)).SetOffsetY(int64(b.Y))
	shape.SetWidth(int64(b.W)).SetHeight(int64(b.H))
	for _, run := range b.Runs {
		tr := shape.CreateTextRun(run.Text)
		applyFont(tr.GetFont(), run.Font)
	}
}

func addPicture(slide *ppt.Slide, pic *deck.Picture) error {
	if len(pic.Data) == 0 {
		return errors.New("picture has no data")
	}
	shape := slide.CreateDrawingShape()
	shape.SetImageData(pic.Data, pic.MIME)
	shape.SetOffsetX(int64(pic.X)).SetOffsetY(int64(pic.Y))
	shape.SetWidth(int64(pic.W)).SetHeight(int64(pic.H))
	return nil
}

// applyFont copies the set fields of f onto the GoPPT font.
func applyFont(dst *ppt.Font, f deck.Font) {
	if f.Size > 0 {
		dst.SetSize(int(f.Size + 0.5))
	}
	if f.Bold {
		dst.SetBold(true)
	}
	if f.Color != "" {
		dst.SetColor(ppt.NewColor("FF" + f.Color))
	}
	if f.Name != "" {
		dst.Name = f.Name
	}
	dst.Italic = f.Italic
}
