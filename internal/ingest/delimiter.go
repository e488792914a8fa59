package ingest

import "strings"

// Delimiters in priority order. The first one present in a line wins.
var delimiters = []rune{'\t', ';', ','}

// DetectDelimiter returns the highest-priority delimiter present in line.
// ok is false when none is present, in which case the line is split on
// whitespace.
func DetectDelimiter(line string) (rune, bool) {
	for _, d := range delimiters {
		if strings.ContainsRune(line, d) {
			return d, true
		}
	}
	return 0, false
}

// splitCells splits a line on its detected delimiter, trims each cell and
// strips one pair of surrounding quotes.
func splitCells(line string) []string {
	var parts []string
	if d, ok := DetectDelimiter(line); ok {
		parts = strings.Split(line, string(d))
	} else {
		parts = strings.Fields(line)
	}
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, stripQuotes(strings.TrimSpace(p)))
	}
	return cells
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
