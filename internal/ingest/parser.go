// Package ingest turns freeform pasted spreadsheet-like text into structured
// records. Detection order for delimiters is tab, then semicolon, then comma;
// a header row is recognized by name-matching, otherwise columns map
// positionally to the caller's field order.
package ingest

import (
	"strconv"
	"strings"
)

// Field describes one expected column of the pasted block.
type Field struct {
	// Name is the canonical record key and the primary header label.
	Name string
	// Aliases are alternative header labels, matched case-insensitively.
	Aliases []string
}

// Options configures a parse run.
type Options struct {
	// Fields gives the expected columns in positional order.
	Fields []Field
	// MinFields is the minimum number of cells a row needs to be kept.
	// Zero means every field is required.
	MinFields int
}

// Record maps canonical field names to cell values. Numeric cells are
// float64, everything else is a trimmed string.
type Record map[string]any

// Result is the outcome of one parse run.
type Result struct {
	Records []Record
	Valid   int
	Skipped int
}

// FormatError reports an unusable pasted block.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string { return e.msg }

// Parse converts a pasted block of text into records. Parsing the same text
// twice yields identical output.
func Parse(text string, opts Options) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &FormatError{msg: "no data provided"}
	}
	if len(opts.Fields) == 0 {
		return nil, &FormatError{msg: "no expected fields configured"}
	}
	minFields := opts.MinFields
	if minFields <= 0 {
		minFields = len(opts.Fields)
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	res := &Result{}
	columns := positionalColumns(opts.Fields)

	first := splitCells(lines[0])
	if isHeaderRow(first) {
		columns = headerColumns(first, opts.Fields)
		lines = lines[1:]
	}

	for _, line := range lines {
		cells := splitCells(line)
		if len(cells) < minFields {
			res.Skipped++
			continue
		}
		rec := Record{}
		for i, cell := range cells {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			rec[columns[i]] = coerce(cell)
		}
		res.Records = append(res.Records, rec)
	}

	res.Valid = len(res.Records)
	if res.Valid == 0 {
		return nil, &FormatError{msg: "no valid rows; expected columns: " + fieldNames(opts.Fields)}
	}
	return res, nil
}

// isHeaderRow reports whether a row looks like a header. Data rows carry at
// least one numeric cell (amounts); a row with none is taken as labels.
func isHeaderRow(cells []string) bool {
	for _, c := range cells {
		if _, ok := parseNumber(c); ok {
			return false
		}
	}
	return true
}

// positionalColumns maps cell index -> canonical name in caller order.
func positionalColumns(fields []Field) []string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return cols
}

// headerColumns maps cell index -> canonical name by matching header labels
// against each field's name and alias chain, case-insensitively. Unmatched
// columns are dropped.
func headerColumns(header []string, fields []Field) []string {
	cols := make([]string, len(header))
	for i, label := range header {
		cols[i] = matchField(label, fields)
	}
	return cols
}

func matchField(label string, fields []Field) string {
	needle := strings.ToLower(strings.TrimSpace(label))
	for _, f := range fields {
		if strings.ToLower(f.Name) == needle {
			return f.Name
		}
		for _, a := range f.Aliases {
			if strings.ToLower(a) == needle {
				return f.Name
			}
		}
	}
	return ""
}

// coerce returns the cell as float64 when fully numeric, else as text.
func coerce(cell string) any {
	if v, ok := parseNumber(cell); ok {
		return v
	}
	return cell
}

func parseNumber(cell string) (float64, bool) {
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Number extracts a numeric field from a record, coercing anything that is
// not a number to 0.
func (r Record) Number(name string) float64 {
	if v, ok := r[name].(float64); ok {
		return v
	}
	return 0
}

// Text extracts a string field from a record. Numbers are formatted back to
// text.
func (r Record) Text(name string) string {
	switch v := r[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func fieldNames(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return strings.Join(names, "; ")
}
