package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values. Cells may already be styled.
type Row []string

// Table renders a plain column table with a header and a divider.
type Table struct {
	columns []Column
	rows    []Row
}

// NewTable creates a new table.
func NewTable(cols []Column) *Table {
	return &Table{columns: cols}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(r Row) {
	t.rows = append(t.rows, r)
}

// Render returns the table as a string. Cells are padded by display
// width, so styled cells and wide runes line up.
func (t *Table) Render() string {
	var sb strings.Builder

	header := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	line := func(cell func(i int, col Column) string) {
		parts := make([]string, len(t.columns))
		for i, col := range t.columns {
			parts[i] = padR(cell(i, col), col.Width)
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, " "), " "))
		sb.WriteString("\n")
	}

	line(func(_ int, col Column) string { return header.Render(col.Title) })
	line(func(_ int, col Column) string { return StyleMeta.Render(strings.Repeat("-", col.Width)) })
	for _, row := range t.rows {
		line(func(i int, _ Column) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		})
	}
	return sb.String()
}

// KeyValueBlock renders a set of key-value pairs in a bordered box.
func KeyValueBlock(title string, pairs [][2]string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fmt.Sprintf("%-20s", p[0]+":"))
		sb.WriteString("  " + key + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(sb.String())
}
