package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column describes one sortable column of rows of type R.
type Column[R any] struct {
	Name   string
	Header string
	// Desc sorts the column highest first when it is selected.
	Desc       bool
	RightAlign bool
	Compare    func(a, b R) int
	Cell       func(r R) string
}

// Field builds a column from a value getter and a comparator for the value.
func Field[R, V any](name, header string, get func(R) V, c func(a, b V) int, cell func(V) string) Column[R] {
	return Column[R]{
		Name:   name,
		Header: header,
		Compare: func(a, b R) int {
			return c(get(a), get(b))
		},
		Cell: func(r R) string {
			return cell(get(r))
		},
	}
}

// Table is a set of columns and the current sort selection.
type Table[R any] struct {
	Columns []Column[R]
	SortBy  string
	// Flip inverts the selected column's default direction.
	Flip bool
}

// Column returns the named column.
func (t *Table[R]) Column(name string) (Column[R], bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column[R]{}, false
}

// Sort orders rows in place by the selected column. Ties keep their input
// order.
func (t *Table[R]) Sort(rows []R) error {
	if t.SortBy == "" {
		return nil
	}
	col, ok := t.Column(t.SortBy)
	if !ok {
		return fmt.Errorf("unknown sort column %q", t.SortBy)
	}
	desc := col.Desc != t.Flip
	slices.SortStableFunc(rows, func(a, b R) int {
		if desc {
			return col.Compare(b, a)
		}
		return col.Compare(a, b)
	})
	return nil
}

// Render formats a header line and one line per row with aligned columns.
func (t *Table[R]) Render(rows []R) []string {
	headers := make([]string, len(t.Columns))
	rightAlign := map[int]bool{}
	for i, c := range t.Columns {
		headers[i] = c.Header
		if c.RightAlign {
			rightAlign[i] = true
		}
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			line[i] = c.Cell(r)
		}
		cells = append(cells, line)
	}
	return formatTable(headers, cells, rightAlign)
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if rightAlignCols[i] {
			b.WriteString(runewidth.FillLeft(cell, widths[i]))
		} else {
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
