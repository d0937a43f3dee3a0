package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func writeTempWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("Failed to set sheet row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestParseCSV_ValidFile(t *testing.T) {
	csv := `FirstName,Phone,Notes
John,555-0101,First contact
Jane,555-0102,
Bob,555-0103,Call back`

	records, skipped, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	want := Record{Name: "John", Phone: "555-0101", Notes: "First contact"}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
	if records[1].Notes != "" {
		t.Errorf("records[1].Notes = %q, want empty", records[1].Notes)
	}
}

func TestParseCSV_HeaderVariants(t *testing.T) {
	csv := `first_name,Mobile Number,comments
Alice,555-0201,hello`

	records, _, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	want := Record{Name: "Alice", Phone: "555-0201", Notes: "hello"}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
}

func TestParseCSV_SkipsInvalidRows(t *testing.T) {
	csv := `FirstName,Phone
John,555-0101
,555-0102
Jane,
Bob,555-0103`

	records, skipped, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
}

func TestParseCSV_RaggedRows(t *testing.T) {
	// Rows shorter or longer than the header are tolerated.
	csv := `FirstName,Phone,Notes
John,555-0101
Jane,555-0102,note,extra`

	records, skipped, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
}

func TestParseCSV_EmptyFile(t *testing.T) {
	records, skipped, err := ParseCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	records, skipped, err := ParseCSV(strings.NewReader("FirstName,Phone\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
}

func TestParseCSV_NoRecognizedColumns(t *testing.T) {
	csv := `Email,Address
a@example.com,1 Main St
b@example.com,2 Main St`

	records, skipped, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
}

func TestParseWorkbook_ValidFile(t *testing.T) {
	path := writeTempWorkbook(t, [][]interface{}{
		{"FirstName", "Phone", "Notes"},
		{"John", "555-0101", "vip"},
		{"Jane", "555-0102", nil},
		{nil, "555-0103", "orphan"},
	})

	records, skipped, err := ParseWorkbook(path)
	if err != nil {
		t.Fatalf("ParseWorkbook() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	want := Record{Name: "John", Phone: "555-0101", Notes: "vip"}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
}

func TestParseWorkbook_CorruptFile(t *testing.T) {
	path := writeTempFile(t, "broken.xlsx", "this is not a spreadsheet")

	_, _, err := ParseWorkbook(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ParseWorkbook() error = %v, want *ParseError", err)
	}
}

func TestParseFile_DispatchesByExtension(t *testing.T) {
	csvPath := writeTempFile(t, "upload.csv", "FirstName,Phone\nJohn,555-0101\n")

	records, _, err := ParseFile(csvPath, "Contacts.CSV")
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "upload.txt", "FirstName,Phone\nJohn,555-0101\n")

	_, _, err := ParseFile(path, "upload.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFile() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseFile_MissingCSV(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.csv"), "missing.csv")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ParseFile() error = %v, want *ParseError", err)
	}
}
