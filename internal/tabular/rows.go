package tabular

// Rows is an ordered sequence of rows, as returned by [Table.Select] and
// [Table.Rows]. Elements reference the table's own rows; mutating them
// mutates the table.
type Rows []*Row

// First returns the first row, or nil when the sequence is empty.
func (rs Rows) First() *Row {
	if len(rs) == 0 {
		return nil
	}
	return rs[0]
}

// Limit returns at most n rows from the front of the sequence.
func (rs Rows) Limit(n int) Rows {
	if n < 0 {
		n = 0
	}
	if n > len(rs) {
		n = len(rs)
	}
	return rs[:n]
}
