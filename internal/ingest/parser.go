package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseError indicates the uploaded file could not be decoded. Any partial
// result accumulated before the failure is discarded by the caller.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile dispatches to the parser variant for the file's extension and
// returns the validated records plus the number of rows dropped by the
// name+phone requirement.
func ParseFile(path, originalName string) ([]Record, int, error) {
	switch strings.ToLower(filepath.Ext(originalName)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, &ParseError{Format: "csv", Err: err}
		}
		defer f.Close()
		return ParseCSV(f)
	case ".xlsx", ".xls":
		return ParseWorkbook(path)
	default:
		return nil, 0, ErrUnsupportedFormat
	}
}

// ParseCSV streams a delimited file row by row; the whole file is never held
// in memory. The first row is the header. A read error mid-stream aborts the
// parse with no partial result.
func ParseCSV(r io.Reader) ([]Record, int, error) {
	reader := csv.NewReader(bufio.NewReaderSize(r, 64*1024))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, &ParseError{Format: "csv", Err: err}
	}

	mapping := mapColumns(header)

	var records []Record
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, &ParseError{Format: "csv", Err: err}
		}

		rec, ok := buildRecord(mapping, row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}

// ParseWorkbook reads the first sheet of a spreadsheet in full. Spreadsheets
// are capped by the upload size limit, so eager reading is fine here.
func ParseWorkbook(path string) ([]Record, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, &ParseError{Format: "workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, &ParseError{Format: "workbook", Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, &ParseError{Format: "workbook", Err: err}
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	mapping := mapColumns(rows[0])

	var records []Record
	skipped := 0
	for _, row := range rows[1:] {
		rec, ok := buildRecord(mapping, row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}
