package io

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/tabula/xlsx"

	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/record"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a header row and data rows from r. Rows may have fewer or
// more cells than the header. ReadCSV does not close r.
func ReadCSV(r io.Reader) (record.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return record.Table{}, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return record.Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed CSV")
	}
	return toTable(rows)
}

// ReadXLSX reads the first worksheet of the workbook at path.
func ReadXLSX(path string) (record.Table, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return record.Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook %s", path)
	}
	defer r.Close()

	sheet, err := r.Sheet(0)
	if err != nil {
		return record.Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "workbook %s", path)
	}

	rows := make([][]string, 0, sheet.RowCount())
	for _, cells := range sheet.Rows {
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = cellText(c)
		}
		rows = append(rows, row)
	}
	return toTable(rows)
}

// cellText prefers the stored value of numeric cells over the formatted one,
// so that "1,500" or "12%" style formats do not leak into parsing.
func cellText(c xlsx.Cell) string {
	if c.Type == xlsx.CellTypeNumber && c.RawValue != "" {
		return c.RawValue
	}
	return c.Value
}

func toTable(rows [][]string) (record.Table, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return record.Table{}, errors.New(errors.ErrCodeInvalidInput, "input has no header row")
	}
	t := record.Table{Header: rows[0]}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadTable reads the file at path as CSV or XLSX depending on its extension.
func ReadTable(path string) (record.Table, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return record.Table{}, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return record.Table{}, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
		}
		return record.Table{}, fmt.Errorf("stat %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return record.Table{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	}
}

// ImportRecords reads and validates the influencer file at path.
func ImportRecords(path string) ([]*record.Influencer, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return record.Parse(t)
}
