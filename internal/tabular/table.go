// Implements the table: header, ordered row collection, backing-region
// bookkeeping and the commit protocol.

package tabular

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/gridtab/gridtab/internal/grid"
)

// Table is an in-memory, mutable view over a rectangular backing region.
// Line 0 of the region is the header; every following line materializes as
// one [Row]. Mutations are invisible to the store until a commit.
//
// A table is meant to be owned by a single goroutine; it does no locking.
type Table struct {
	store  grid.Store
	region grid.Region
	// initial is the region snapshot cleared on commit, so lines left over
	// from a shrink since the last commit get erased.
	initial grid.Region

	header []string
	cols   map[string]int
	rows   Rows

	indexField string
	index      map[any]*Row
}

// New builds a table from the given backing region.
func New(store grid.Store, region grid.Region) (*Table, error) {
	return NewIndexed(store, region, "")
}

// NewIndexed builds a table and eagerly indexes rows by the given field for
// O(1) [Table.Lookup]. Duplicate index values are not rejected; the later
// row silently wins.
func NewIndexed(store grid.Store, region grid.Region, indexField string) (*Table, error) {
	if region.Height < 1 || region.Width < 1 {
		return nil, fmt.Errorf("region %s has no header line", region)
	}
	block, err := store.ReadBlock(region)
	if err != nil {
		return nil, fmt.Errorf("failed to read region %s: %w", region, err)
	}

	// Trim trailing fully-empty lines so the working extent reflects only
	// populated rows. The header line is never trimmed.
	height := region.Height
	for height > 1 && lineEmpty(block, height-1) {
		height--
	}
	region = region.Resize(height, region.Width)

	t := &Table{
		store:      store,
		region:     region,
		initial:    region,
		cols:       make(map[string]int, region.Width),
		indexField: indexField,
	}
	t.header = make([]string, region.Width)
	for j, v := range block.Values[0] {
		label := toString(v)
		t.header[j] = label
		t.cols[label] = j
	}

	t.rows = make(Rows, 0, height-1)
	for i := 1; i < height; i++ {
		r := newRow(t)
		for j, label := range t.header {
			r.AddField(label, Field{
				Value:      block.Values[i][j],
				Note:       block.Notes[i][j],
				Background: block.Backgrounds[i][j],
				FontColor:  block.FontColors[i][j],
				Formula:    block.Formulas[i][j],
			})
		}
		r.pos = i - 1
		t.rows = append(t.rows, r)
	}

	if indexField != "" {
		if _, ok := t.cols[indexField]; !ok {
			return nil, &FieldNotFoundError{Field: indexField, Region: region.String()}
		}
		t.RebuildIndex()
	}
	slog.Debug("table loaded", "region", region.String(), "rows", len(t.rows))
	return t, nil
}

// ForSheet builds a table over the full extent of a sheet, with the header
// on the given 1-based row (0 means the default of 1).
func ForSheet(store grid.Store, sheet string, headerRow int) (*Table, error) {
	region, err := grid.FullRegion(store, sheet, headerRow)
	if err != nil {
		return nil, err
	}
	return New(store, region)
}

// ForName builds a table over a named region.
func ForName(store grid.Store, name string) (*Table, error) {
	region, err := store.Resolve(name)
	if err != nil {
		return nil, err
	}
	return New(store, region)
}

func lineEmpty(b *grid.Block, i int) bool {
	for j := range b.Values[i] {
		if v := b.Values[i][j]; v != nil && v != "" {
			return false
		}
		if b.Formulas[i][j] != "" || b.Notes[i][j] != "" {
			return false
		}
	}
	return true
}

// Header returns a copy of the field labels in column order.
func (t *Table) Header() []string {
	return slices.Clone(t.header)
}

// Len returns the number of live rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the live rows in order. The elements are the table's own
// rows, not copies.
func (t *Table) Rows() Rows {
	return slices.Clone(t.rows)
}

// Region returns the current backing-region coordinates.
func (t *Table) Region() grid.Region {
	return t.region
}

func (t *Table) colIndex(label string) int {
	return t.cols[label]
}

// Select returns the ordered subset of live rows matching every clause.
// Rows are not copied; mutating a selected row mutates the table.
func (t *Table) Select(clauses ...Clause) (Rows, error) {
	var out Rows
	for _, r := range t.rows {
		ok, err := matchRow(r, clauses)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Add appends a new row built from a field-to-value record. Fields absent
// from the record default to the empty string; a key absent from the header
// is a [FieldNotFoundError].
func (t *Table) Add(record map[string]any) (*Row, error) {
	r := newRow(t)
	for label, v := range record {
		if err := r.SetValue(label, v); err != nil {
			return nil, err
		}
	}
	t.appendRow(r)
	return r, nil
}

// AddRow appends a copy of an existing row, keeping the planes of every
// field label shared with this table's header. The returned row belongs to
// this table.
func (t *Table) AddRow(src *Row) *Row {
	r := newRow(t)
	for _, label := range t.header {
		if f, ok := src.fields[label]; ok {
			r.AddField(label, *f)
		}
	}
	t.appendRow(r)
	return r
}

func (t *Table) appendRow(r *Row) {
	r.table = t
	r.pos = len(t.rows)
	r.canCommit = true
	t.rows = append(t.rows, r)
	t.region = t.region.Resize(len(t.rows)+1, t.region.Width)
	if t.index != nil {
		t.index[normKey(r.fields[t.indexField].Value)] = r
	}
}

// Delete removes a single row from the live collection.
func (t *Table) Delete(r *Row) error {
	return t.DeleteRows(Rows{r})
}

// DeleteAt removes the row at the given live position.
func (t *Table) DeleteAt(pos int) error {
	if pos < 0 || pos >= len(t.rows) {
		return &BoundsError{Pos: pos, Len: len(t.rows)}
	}
	return t.DeleteRows(Rows{t.rows[pos]})
}

// DeleteRows removes a set of rows. Targets are first revoked from
// row-level commits, then spliced out from the highest position down so the
// remaining rows renumber to a dense 0..n-1. The backing region shrinks by
// the deleted count. The index is not updated (see [Table.RebuildIndex]).
func (t *Table) DeleteRows(rows Rows) error {
	if len(rows) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(rows))
	positions := make([]int, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.pos < 0 || r.pos >= len(t.rows) || t.rows[r.pos] != r {
			pos := -1
			if r != nil {
				pos = r.pos
			}
			return &BoundsError{Pos: pos, Len: len(t.rows)}
		}
		r.canCommit = false
		if seen[r.pos] {
			continue
		}
		seen[r.pos] = true
		positions = append(positions, r.pos)
	}
	if len(positions) == len(t.rows) {
		t.deleteAll()
		return nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))
	for _, pos := range positions {
		t.rows = slices.Delete(t.rows, pos, pos+1)
	}
	for i, r := range t.rows {
		r.pos = i
	}
	t.region = t.region.Resize(len(t.rows)+1, t.region.Width)
	return nil
}

// DeleteAll empties the live collection and collapses the backing region to
// the header line alone.
func (t *Table) DeleteAll() {
	t.deleteAll()
}

func (t *Table) deleteAll() {
	for _, r := range t.rows {
		r.canCommit = false
	}
	t.rows = nil
	t.region = t.region.Resize(1, t.region.Width)
}

// SortBy orders the rows by a field. Values parseable as dates order by
// date ordinality, everything else by natural ordering; ties keep their
// relative order. Every row's position is reassigned and row-level commits
// are revoked until the table itself is committed.
func (t *Table) SortBy(field string, ascending bool) error {
	if _, ok := t.cols[field]; !ok {
		return &FieldNotFoundError{Field: field, Region: t.region.String()}
	}
	slices.SortStableFunc(t.rows, func(a, b *Row) int {
		c := compareForSort(a.fields[field].Value, b.fields[field].Value)
		if !ascending {
			c = -c
		}
		return c
	})
	for i, r := range t.rows {
		r.pos = i
		r.canCommit = false
	}
	return nil
}

// Distinct returns the unique values of a field across all live rows in
// first-seen order.
func (t *Table) Distinct(field string) ([]any, error) {
	if _, ok := t.cols[field]; !ok {
		return nil, &FieldNotFoundError{Field: field, Region: t.region.String()}
	}
	seen := make(map[any]bool)
	var out []any
	for _, r := range t.rows {
		v := r.fields[field].Value
		key := normKey(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out, nil
}

// Commit writes the full in-memory state back to the backing store: the
// initial region is cleared (erasing lines left over from a shrink), the
// header is rewritten, then every plane is block-written for exactly the
// live rows. Afterwards the initial-region snapshot resets to the current
// region and rows may be committed individually again.
//
// The plane writes are independent; a failure partway through leaves the
// region in a mixed state.
func (t *Table) Commit() error {
	return t.commit(true)
}

// CommitValues is like [Table.Commit] but writes only the value/formula
// plane. Rows stay revoked from row-level commits because the remaining
// planes may still mismatch the store.
func (t *Table) CommitValues() error {
	return t.commit(false)
}

func (t *Table) commit(allPlanes bool) error {
	n := len(t.rows)
	w := t.region.Width
	if err := t.store.ClearRegion(t.initial); err != nil {
		return fmt.Errorf("failed to clear region %s: %w", t.initial, err)
	}
	headerLine := make([]any, w)
	for j, label := range t.header {
		headerLine[j] = label
	}
	if err := t.store.WriteValues(t.region.Line(0), [][]any{headerLine}); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", t.region, err)
	}

	// A zero-height block write is invalid against the backing store, so an
	// empty table commits the header alone.
	if n > 0 {
		values := make([][]any, n)
		notes := make([][]string, n)
		backgrounds := make([][]string, n)
		wraps := make([][]bool, n)
		fontColors := make([][]string, n)
		for i, r := range t.rows {
			values[i] = make([]any, w)
			notes[i] = make([]string, w)
			backgrounds[i] = make([]string, w)
			wraps[i] = make([]bool, w)
			fontColors[i] = make([]string, w)
			for j, label := range t.header {
				f := r.fields[label]
				values[i][j] = f.writeValue()
				notes[i][j] = f.Note
				backgrounds[i][j] = f.Background
				fontColors[i][j] = f.FontColor
			}
		}
		data := grid.Region{
			Sheet:  t.region.Sheet,
			Row:    t.region.Row + 1,
			Col:    t.region.Col,
			Height: n,
			Width:  w,
		}
		if err := t.store.WriteValues(data, values); err != nil {
			return fmt.Errorf("failed to write values of %s: %w", data, err)
		}
		if allPlanes {
			if err := t.store.WriteNotes(data, notes); err != nil {
				return fmt.Errorf("failed to write notes of %s: %w", data, err)
			}
			if err := t.store.WriteBackgrounds(data, backgrounds); err != nil {
				return fmt.Errorf("failed to write backgrounds of %s: %w", data, err)
			}
			if err := t.store.WriteWraps(data, wraps); err != nil {
				return fmt.Errorf("failed to write wraps of %s: %w", data, err)
			}
			if err := t.store.WriteFontColors(data, fontColors); err != nil {
				return fmt.Errorf("failed to write font colors of %s: %w", data, err)
			}
		}
	}

	t.initial = t.region
	if allPlanes {
		for _, r := range t.rows {
			r.canCommit = true
		}
	}
	slog.Debug("table committed", "region", t.region.String(), "rows", n, "all_planes", allPlanes)
	return nil
}
