package model

import (
	"encoding/csv"
	"html"
	"strings"
)

// ExtractedTable is a table recovered from a page's positioned text.
// Tables are computed on demand per invocation and never cached.
type ExtractedTable struct {
	ID               string
	PageNum          int
	Headers          []string   // Row 0 of the grid
	Rows             [][]string // Data rows (grid rows 1..n)
	RawGrid          [][]string // Full grid including the header row
	ColumnPositions  []float64  // Fixed column positions, ascending
	BBox             BBox       // Union of every constituent item
	ExtractionMethod string
}

// RowCount returns the number of data rows (excluding headers).
func (t *ExtractedTable) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t *ExtractedTable) ColCount() int {
	return len(t.ColumnPositions)
}

// ToCSV renders the table as CSV, headers first. Cells containing commas,
// quotes, or newlines are quoted per RFC 4180.
func (t *ExtractedTable) ToCSV() (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if len(t.Headers) > 0 {
		if err := w.Write(t.Headers); err != nil {
			return "", err
		}
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ToHTML renders the table as an HTML <table> with a <thead> header row and
// <tbody> data rows. Cell text is escaped.
func (t *ExtractedTable) ToHTML() string {
	var sb strings.Builder

	sb.WriteString("<table>\n")

	if len(t.Headers) > 0 {
		sb.WriteString("<thead>\n<tr>")
		for _, h := range t.Headers {
			sb.WriteString("<th>")
			sb.WriteString(html.EscapeString(h))
			sb.WriteString("</th>")
		}
		sb.WriteString("</tr>\n</thead>\n")
	}

	sb.WriteString("<tbody>\n")
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>")
			sb.WriteString(html.EscapeString(cell))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>")

	return sb.String()
}

// ToMarkdown converts the table to markdown format
func (t *ExtractedTable) ToMarkdown() string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header row
	for _, h := range t.Headers {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(h, "\n", " "))
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")

	// Separator
	for range t.Headers {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	// Data rows
	for _, row := range t.Rows {
		for _, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}
