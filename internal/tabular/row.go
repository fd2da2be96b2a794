// Implements the row record: one field plane per header label, positional
// bookkeeping and row-level commits.

package tabular

import "github.com/gridtab/gridtab/internal/grid"

// Field holds the five parallel attributes of a single cell. Unset
// attributes are the empty string.
type Field struct {
	Value      any
	Note       string
	Background string
	FontColor  string
	Formula    string
}

// Row is a live record of a [Table]. It references its owning table for the
// header and the backing-region coordinates; the table is the sole owner of
// positional truth.
type Row struct {
	table     *Table
	fields    map[string]*Field
	pos       int
	canCommit bool
}

func newRow(t *Table) *Row {
	r := &Row{
		table:     t,
		fields:    make(map[string]*Field, len(t.header)),
		canCommit: true,
	}
	for _, label := range t.header {
		r.fields[label] = &Field{Value: ""}
	}
	return r
}

// AddField stores one field plane under the given label, normalizing a nil
// value to the empty string.
func (r *Row) AddField(label string, f Field) {
	if f.Value == nil {
		f.Value = ""
	}
	r.fields[label] = &f
}

// Pos returns the row's zero-based position among currently live rows. This
// is not a backing-store row number; the header line and region origin are
// added at commit time.
func (r *Row) Pos() int {
	return r.pos
}

// CanCommit reports whether the row may still be committed individually.
// The table revokes this when it reorders or deletes rows, and grants it
// back when the table itself is committed.
func (r *Row) CanCommit() bool {
	return r.canCommit
}

func (r *Row) field(label string) (*Field, error) {
	f, ok := r.fields[label]
	if !ok {
		return nil, &FieldNotFoundError{Field: label, Region: r.table.region.String()}
	}
	return f, nil
}

// Value returns the field's value.
func (r *Row) Value(label string) (any, error) {
	f, err := r.field(label)
	if err != nil {
		return nil, err
	}
	return f.Value, nil
}

// SetValue sets the field's value. A value write supersedes any prior
// formula, so the field's formula is cleared.
func (r *Row) SetValue(label string, v any) error {
	f, err := r.field(label)
	if err != nil {
		return err
	}
	if v == nil {
		v = ""
	}
	f.Value = v
	f.Formula = ""
	return nil
}

// Note returns the field's note.
func (r *Row) Note(label string) (string, error) {
	f, err := r.field(label)
	if err != nil {
		return "", err
	}
	return f.Note, nil
}

// SetNote sets the field's note.
func (r *Row) SetNote(label, note string) error {
	f, err := r.field(label)
	if err != nil {
		return err
	}
	f.Note = note
	return nil
}

// Background returns the field's background color.
func (r *Row) Background(label string) (string, error) {
	f, err := r.field(label)
	if err != nil {
		return "", err
	}
	return f.Background, nil
}

// SetBackground sets the field's background color.
func (r *Row) SetBackground(label, color string) error {
	f, err := r.field(label)
	if err != nil {
		return err
	}
	f.Background = color
	return nil
}

// FontColor returns the field's font color.
func (r *Row) FontColor(label string) (string, error) {
	f, err := r.field(label)
	if err != nil {
		return "", err
	}
	return f.FontColor, nil
}

// SetFontColor sets the field's font color.
func (r *Row) SetFontColor(label, color string) error {
	f, err := r.field(label)
	if err != nil {
		return err
	}
	f.FontColor = color
	return nil
}

// Formula returns the field's formula text.
func (r *Row) Formula(label string) (string, error) {
	f, err := r.field(label)
	if err != nil {
		return "", err
	}
	return f.Formula, nil
}

// SetFormula sets the field's formula text. On commit the formula wins over
// the field's value.
func (r *Row) SetFormula(label, formula string) error {
	f, err := r.field(label)
	if err != nil {
		return err
	}
	f.Formula = formula
	return nil
}

// writeValue is the value written back for a field: the formula text when a
// formula is set, the literal value otherwise.
func (f *Field) writeValue() any {
	if f.Formula != "" {
		return f.Formula
	}
	return f.Value
}

// lineRegion is the single backing-store line this row writes to, derived
// from the row's current position plus the header offset.
func (r *Row) lineRegion() grid.Region {
	return r.table.region.Line(r.pos + 1)
}

func (r *Row) checkCommit() error {
	if !r.canCommit {
		return &StaleRowError{Region: r.table.region.String(), Pos: r.pos}
	}
	return nil
}

// Commit writes every plane of the full row to the backing store. Each
// plane is an independent write; there is no rollback if one fails partway.
func (r *Row) Commit() error {
	if err := r.checkCommit(); err != nil {
		return err
	}
	values := make([]any, len(r.table.header))
	notes := make([]string, len(r.table.header))
	backgrounds := make([]string, len(r.table.header))
	fontColors := make([]string, len(r.table.header))
	for i, label := range r.table.header {
		f := r.fields[label]
		values[i] = f.writeValue()
		notes[i] = f.Note
		backgrounds[i] = f.Background
		fontColors[i] = f.FontColor
	}
	line := r.lineRegion()
	store := r.table.store
	if err := store.WriteValues(line, [][]any{values}); err != nil {
		return err
	}
	if err := store.WriteNotes(line, [][]string{notes}); err != nil {
		return err
	}
	if err := store.WriteBackgrounds(line, [][]string{backgrounds}); err != nil {
		return err
	}
	return store.WriteFontColors(line, [][]string{fontColors})
}

// CommitValues writes only the value/formula plane of the full row.
func (r *Row) CommitValues() error {
	if err := r.checkCommit(); err != nil {
		return err
	}
	values := make([]any, len(r.table.header))
	for i, label := range r.table.header {
		values[i] = r.fields[label].writeValue()
	}
	return r.table.store.WriteValues(r.lineRegion(), [][]any{values})
}

// CommitBackgrounds writes only the background plane of the full row.
func (r *Row) CommitBackgrounds() error {
	if err := r.checkCommit(); err != nil {
		return err
	}
	backgrounds := make([]string, len(r.table.header))
	for i, label := range r.table.header {
		backgrounds[i] = r.fields[label].Background
	}
	return r.table.store.WriteBackgrounds(r.lineRegion(), [][]string{backgrounds})
}

// CommitField writes every plane of a single field's cell.
func (r *Row) CommitField(label string) error {
	if err := r.checkCommit(); err != nil {
		return err
	}
	f, err := r.field(label)
	if err != nil {
		return err
	}
	cell := r.lineRegion().Cell(0, r.table.colIndex(label))
	store := r.table.store
	if err := store.WriteValues(cell, [][]any{{f.writeValue()}}); err != nil {
		return err
	}
	if err := store.WriteNotes(cell, [][]string{{f.Note}}); err != nil {
		return err
	}
	if err := store.WriteBackgrounds(cell, [][]string{{f.Background}}); err != nil {
		return err
	}
	return store.WriteFontColors(cell, [][]string{{f.FontColor}})
}

// CommitFieldValue writes only the value/formula plane of a single field's
// cell.
func (r *Row) CommitFieldValue(label string) error {
	if err := r.checkCommit(); err != nil {
		return err
	}
	f, err := r.field(label)
	if err != nil {
		return err
	}
	cell := r.lineRegion().Cell(0, r.table.colIndex(label))
	return r.table.store.WriteValues(cell, [][]any{{f.writeValue()}})
}
