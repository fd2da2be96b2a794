// Implements the optional value-to-row index.

package tabular

// Lookup returns the row whose index-field value equals the given value, or
// nil when no index was built or no row matches. Dates and numbers match by
// normalized key, so int 3 finds a row holding float64 3.
func (t *Table) Lookup(value any) *Row {
	if t.index == nil {
		return nil
	}
	return t.index[normKey(value)]
}

// IndexField returns the field the index was built on, or "".
func (t *Table) IndexField() string {
	return t.indexField
}

// RebuildIndex recomputes the index from the live rows. Only [Table.Add]
// maintains the index incrementally; deletions and sorts leave it stale, so
// callers that delete indexed rows and keep using [Table.Lookup] should
// rebuild explicitly.
func (t *Table) RebuildIndex() {
	if t.indexField == "" {
		return
	}
	t.index = make(map[any]*Row, len(t.rows))
	for _, r := range t.rows {
		// Later duplicates overwrite earlier entries.
		t.index[normKey(r.fields[t.indexField].Value)] = r
	}
}
