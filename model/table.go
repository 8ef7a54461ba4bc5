package model

// TableCell addresses one cell of a table shape: 0-based row and column
// plus the cell's text. The same form serves the structure record (current
// content) and the update record (replacement content).
type TableCell struct {
	Row    int
	Column int
	Text   string
}

// TableData holds the grid content of a table shape. Cells lists only the
// non-empty cells, in row-major order.
type TableData struct {
	Rows    int
	Columns int
	Cells   []TableCell
}

// CellText returns the text of the cell at (row, column), or "" when the
// cell is empty or out of range.
func (t *TableData) CellText(row, column int) string {
	for _, c := range t.Cells {
		if c.Row == row && c.Column == column {
			return c.Text
		}
	}
	return ""
}

// InRange reports whether (row, column) addresses a cell of the grid.
func (t *TableData) InRange(row, column int) bool {
	return row >= 0 && row < t.Rows && column >= 0 && column < t.Columns
}

// CharacterCount returns the total text length across all cells.
func (t *TableData) CharacterCount() int {
	total := 0
	for _, c := range t.Cells {
		total += len(c.Text)
	}
	return total
}
