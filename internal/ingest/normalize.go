package ingest

import "strings"

// Field is the logical schema slot a source column maps to.
type Field int

const (
	FieldUnmapped Field = iota
	FieldName
	FieldPhone
	FieldNotes
)

// fieldRules maps each logical field to the header keywords that select it.
// Evaluation order matters: name, then phone, then notes; the first matching
// rule wins. Unmatched headers are ignored for every row.
var fieldRules = []struct {
	field    Field
	keywords []string
}{
	{FieldName, []string{"firstname", "first_name", "first name"}},
	{FieldPhone, []string{"phone", "mobile", "number"}},
	{FieldNotes, []string{"notes", "note", "comments"}},
}

// ClassifyHeader maps a single source column header to a logical field using
// case-insensitive substring matching.
func ClassifyHeader(header string) Field {
	normalized := strings.ToLower(strings.TrimSpace(header))
	for _, rule := range fieldRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.field
			}
		}
	}
	return FieldUnmapped
}

// mapColumns resolves a header row into a column-index → field mapping,
// classifying each header once per file.
func mapColumns(header []string) map[int]Field {
	mapping := make(map[int]Field, len(header))
	for i, h := range header {
		if field := ClassifyHeader(h); field != FieldUnmapped {
			mapping[i] = field
		}
	}
	return mapping
}

// buildRecord assembles a Record from one data row using a resolved column
// mapping. Columns are applied in index order, so when two columns map to the
// same field the later column wins. Returns false if the row fails the
// name+phone requirement.
func buildRecord(mapping map[int]Field, row []string) (Record, bool) {
	var rec Record
	for i, value := range row {
		field, ok := mapping[i]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch field {
		case FieldName:
			rec.Name = value
		case FieldPhone:
			rec.Phone = value
		case FieldNotes:
			rec.Notes = value
		}
	}
	if rec.Name == "" || rec.Phone == "" {
		return Record{}, false
	}
	return rec, true
}
