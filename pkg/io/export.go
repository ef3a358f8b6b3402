package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/influencerdeck/influencerdeck/pkg/deck"
	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/pptx"
)

// OutputFileMode is the permission of a written deck.
const OutputFileMode = 0644

// WritePPTX encodes doc as a PowerPoint file and writes it to w.
func WritePPTX(doc *deck.Document, w io.Writer) error {
	if err := pptx.Encode(w, doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPPTX writes doc to a .pptx file at path and returns the number of
// bytes written. The file is written under a temporary name and renamed into
// place, so a failed run never leaves a truncated deck behind.
func ExportPPTX(doc *deck.Document, path string) (int64, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return 0, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()
	cw := &countingWriter{w: f}
	if err := WritePPTX(doc, cw); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, err
	}
	if err := f.Chmod(OutputFileMode); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("rename %s: %w", path, err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
