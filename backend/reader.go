package backend

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV reads a table from CSV data. The first record holds the
// headings. Rows whose x cell is empty or not a number are skipped.
//
// A last line without a newline is only used when it has a cell for
// every column, since the file may still be written to.
func ReadCSV(r io.Reader) (*Table, error) {
	lines := NewLineReader(r)
	records, err := readRecords(lines)
	if err != nil {
		return nil, err
	}
	if rest := lines.Partial(); len(rest) > 0 && len(records) > 0 {
		last, err := readRecords(bytes.NewReader(rest))
		if err == nil && len(last) == 1 && len(last[0]) == len(records[0]) {
			records = append(records, last[0])
		}
	}
	return tableFromRecords(records)
}

func readRecords(r io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed reading CSV data: %w", err)
		}
		records = append(records, rec)
	}
}

// ReadXLSX reads a table from a sheet of a workbook. The first sheet is
// used if sheet is empty.
func ReadXLSX(path, sheet string) (_ *Table, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening workbook: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %q has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed reading sheet %q: %w", sheet, err)
	}
	return tableFromRecords(rows)
}

// ReadFile reads a CSV or XLSX file, depending on its extension.
func ReadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, "")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening %q: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no headings")
	}
	t, err := NewTable(records[0])
	if err != nil {
		return nil, err
	}
	cells := make([]float64, len(t.Series))
	present := make([]bool, len(t.Series))
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			t.Skipped++
			continue
		}
		for i := range cells {
			cells[i], present[i] = 0, false
			if i+1 >= len(rec) {
				continue
			}
			cell := strings.TrimSpace(rec[i+1])
			if len(cell) < 1 {
				// Skip null cells.
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			cells[i], present[i] = v, true
		}
		if err := t.insertRow(x, cells, present); err != nil {
			return nil, fmt.Errorf("failed reading row %d: %w", t.Len()+t.Skipped+2, err)
		}
	}
	return t, nil
}

// lineReader is a specialized reader that ensures only entire newline-delimited lines are
// read at a time. This is useful when attempting to parse a file that is being actively
// written to as a CSV, as you don't actually attempt to parse any partial lines.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
	// pending is the rest of a line which did not fit into the last read.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) > 0 {
		n := copy(b, l.pending)
		l.pending = l.pending[n:]
		return n, nil
	}
	data, err := l.r.ReadBytes(byte('\n'))
	if err != nil {
		l.partial = append(l.partial, data...)
		return 0, io.EOF
	}
	if len(l.partial) > 0 {
		data = append(l.partial, data...)
		l.partial = nil
	}
	n := copy(b, data)
	l.pending = data[n:]
	return n, nil
}

// Partial returns the unterminated line which is held back.
func (l *lineReader) Partial() []byte {
	return l.partial
}
