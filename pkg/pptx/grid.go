package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/influencerdeck/influencerdeck/pkg/deck"
)

var tblGridRe = regexp.MustCompile(`(?s)<a:tblGrid>.*?</a:tblGrid>`)

// setColumnWidths rewrites the table grids in the package data with the
// column widths of the matching deck tables. GoPPT splits every table into
// equal columns and writes the tables of a slide in element order, so the
// n-th grid of slide i belongs to the n-th table of doc.Slides[i].
func setColumnWidths(data []byte, doc *deck.Document) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading package: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		i, ok := slideIndex(f.Name)
		var tables []*deck.Table
		if ok && i < len(doc.Slides) {
			tables = slideTables(doc.Slides[i])
		}
		if len(tables) == 0 {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copying %s: %w", f.Name, err)
			}
			continue
		}

		part, err := readPart(f)
		if err != nil {
			return nil, err
		}
		part, err = rewriteGrids(part, tables)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method, Modified: f.Modified})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(part); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// slideIndex maps "ppt/slides/slideN.xml" to N-1.
func slideIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "ppt/slides/slide")
	if !ok {
		return 0, false
	}
	num, ok := strings.CutSuffix(rest, ".xml")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func slideTables(s *deck.Slide) []*deck.Table {
	var out []*deck.Table
	for _, e := range s.Elements {
		if t, ok := e.(*deck.Table); ok {
			out = append(out, t)
		}
	}
	return out
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func rewriteGrids(part []byte, tables []*deck.Table) ([]byte, error) {
	locs := tblGridRe.FindAllIndex(part, -1)
	if len(locs) != len(tables) {
		return nil, fmt.Errorf("found %d table grids, want %d", len(locs), len(tables))
	}
	var out bytes.Buffer
	last := 0
	for i, loc := range locs {
		out.Write(part[last:loc[0]])
		out.WriteString("<a:tblGrid>")
		for _, w := range tables[i].ColumnWidths() {
			fmt.Fprintf(&out, `<a:gridCol w="%d"/>`, int64(w))
		}
		out.WriteString("</a:tblGrid>")
		last = loc[1]
	}
	out.Write(part[last:])
	return out.Bytes(), nil
}
