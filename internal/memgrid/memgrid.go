// Package memgrid provides an in-memory implementation of the grid store
// contract.
//
// It backs tests and serves as the working model for filegrid. Sheets grow
// on demand when a write lands outside the allocated area, mirroring how
// hosted spreadsheets autoexpand. A string value with a leading "=" is
// routed to the formula plane, the way spreadsheet value writes behave.
package memgrid

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gridtab/gridtab/internal/grid"
)

// Store is an in-memory grid store. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	sheets map[string]*sheet
	names  map[string]grid.Region
}

type sheet struct {
	rows, cols  int
	values      [][]any
	notes       [][]string
	backgrounds [][]string
	fontColors  [][]string
	formulas    [][]string
	wraps       [][]bool
}

// New returns an empty store with no sheets.
func New() *Store {
	return &Store{
		sheets: make(map[string]*sheet),
		names:  make(map[string]grid.Region),
	}
}

// AddSheet creates a sheet with the given allocated extent. Re-adding an
// existing sheet only grows it.
func (s *Store) AddSheet(name string, rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh := s.sheets[name]
	if sh == nil {
		sh = &sheet{}
		s.sheets[name] = sh
	}
	sh.grow(rows, cols)
}

// DefineName registers a named region.
func (s *Store) DefineName(name string, r grid.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[name] = r
}

// SheetNames returns all sheet names in sorted order.
func (s *Store) SheetNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.sheets))
	for name := range s.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names returns a copy of the named region registry.
func (s *Store) Names() map[string]grid.Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]grid.Region, len(s.names))
	for k, v := range s.names {
		out[k] = v
	}
	return out
}

func (sh *sheet) grow(rows, cols int) {
	if rows > sh.rows {
		for len(sh.values) < rows {
			sh.values = append(sh.values, make([]any, sh.cols))
			sh.notes = append(sh.notes, make([]string, sh.cols))
			sh.backgrounds = append(sh.backgrounds, make([]string, sh.cols))
			sh.fontColors = append(sh.fontColors, make([]string, sh.cols))
			sh.formulas = append(sh.formulas, make([]string, sh.cols))
			sh.wraps = append(sh.wraps, make([]bool, sh.cols))
		}
		sh.rows = rows
	}
	if cols > sh.cols {
		for i := range sh.values {
			sh.values[i] = append(sh.values[i], make([]any, cols-len(sh.values[i]))...)
			sh.notes[i] = append(sh.notes[i], make([]string, cols-len(sh.notes[i]))...)
			sh.backgrounds[i] = append(sh.backgrounds[i], make([]string, cols-len(sh.backgrounds[i]))...)
			sh.fontColors[i] = append(sh.fontColors[i], make([]string, cols-len(sh.fontColors[i]))...)
			sh.formulas[i] = append(sh.formulas[i], make([]string, cols-len(sh.formulas[i]))...)
			sh.wraps[i] = append(sh.wraps[i], make([]bool, cols-len(sh.wraps[i]))...)
		}
		sh.cols = cols
	}
}

func (s *Store) sheetFor(name string) (*sheet, error) {
	sh := s.sheets[name]
	if sh == nil {
		return nil, &grid.SheetNotFoundError{Sheet: name}
	}
	return sh, nil
}

// ReadBlock implements [grid.Store]. Cells outside the allocated area read
// as defaults (empty string value, empty attribute strings).
func (s *Store) ReadBlock(r grid.Region) (*grid.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheetFor(r.Sheet)
	if err != nil {
		return nil, err
	}
	b := &grid.Block{
		Values:      make([][]any, r.Height),
		Notes:       make([][]string, r.Height),
		Backgrounds: make([][]string, r.Height),
		FontColors:  make([][]string, r.Height),
		Formulas:    make([][]string, r.Height),
	}
	for i := range r.Height {
		b.Values[i] = make([]any, r.Width)
		b.Notes[i] = make([]string, r.Width)
		b.Backgrounds[i] = make([]string, r.Width)
		b.FontColors[i] = make([]string, r.Width)
		b.Formulas[i] = make([]string, r.Width)
		row := r.Row + i
		for j := range r.Width {
			col := r.Col + j
			if row >= sh.rows || col >= sh.cols {
				b.Values[i][j] = ""
				continue
			}
			v := sh.values[row][col]
			if v == nil {
				v = ""
			}
			b.Values[i][j] = v
			b.Notes[i][j] = sh.notes[row][col]
			b.Backgrounds[i][j] = sh.backgrounds[row][col]
			b.FontColors[i][j] = sh.fontColors[row][col]
			b.Formulas[i][j] = sh.formulas[row][col]
		}
	}
	return b, nil
}

func checkExtent(r grid.Region, rows, cols int) error {
	if r.Empty() {
		return fmt.Errorf("write to empty region %s", r)
	}
	if rows != r.Height || cols != r.Width {
		return fmt.Errorf("data is %dx%d, region %s wants %dx%d", rows, cols, r, r.Height, r.Width)
	}
	return nil
}

func dataExtent[T any](data [][]T) (rows, cols int) {
	rows = len(data)
	if rows > 0 {
		cols = len(data[0])
	}
	return rows, cols
}

// WriteValues implements [grid.Store]. String values with a leading "=" land
// in the formula plane; any other write clears the cell's formula.
func (s *Store) WriteValues(r grid.Region, data [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheetFor(r.Sheet)
	if err != nil {
		return err
	}
	rows, cols := dataExtent(data)
	if err := checkExtent(r, rows, cols); err != nil {
		return err
	}
	sh.grow(r.Row+r.Height, r.Col+r.Width)
	for i, line := range data {
		for j, v := range line {
			row, col := r.Row+i, r.Col+j
			if str, ok := v.(string); ok && strings.HasPrefix(str, "=") {
				sh.formulas[row][col] = str
				sh.values[row][col] = ""
				continue
			}
			sh.values[row][col] = v
			sh.formulas[row][col] = ""
		}
	}
	return nil
}

func writeStrings(s *Store, r grid.Region, data [][]string, pick func(*sheet) [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheetFor(r.Sheet)
	if err != nil {
		return err
	}
	rows, cols := dataExtent(data)
	if err := checkExtent(r, rows, cols); err != nil {
		return err
	}
	sh.grow(r.Row+r.Height, r.Col+r.Width)
	plane := pick(sh)
	for i, line := range data {
		copy(plane[r.Row+i][r.Col:], line)
	}
	return nil
}

// WriteNotes implements [grid.Store].
func (s *Store) WriteNotes(r grid.Region, data [][]string) error {
	return writeStrings(s, r, data, func(sh *sheet) [][]string { return sh.notes })
}

// WriteBackgrounds implements [grid.Store].
func (s *Store) WriteBackgrounds(r grid.Region, data [][]string) error {
	return writeStrings(s, r, data, func(sh *sheet) [][]string { return sh.backgrounds })
}

// WriteFontColors implements [grid.Store].
func (s *Store) WriteFontColors(r grid.Region, data [][]string) error {
	return writeStrings(s, r, data, func(sh *sheet) [][]string { return sh.fontColors })
}

// WriteWraps implements [grid.Store].
func (s *Store) WriteWraps(r grid.Region, data [][]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheetFor(r.Sheet)
	if err != nil {
		return err
	}
	rows, cols := dataExtent(data)
	if err := checkExtent(r, rows, cols); err != nil {
		return err
	}
	sh.grow(r.Row+r.Height, r.Col+r.Width)
	for i, line := range data {
		copy(sh.wraps[r.Row+i][r.Col:], line)
	}
	return nil
}

// ClearRegion implements [grid.Store].
func (s *Store) ClearRegion(r grid.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheetFor(r.Sheet)
	if err != nil {
		return err
	}
	for i := range r.Height {
		row := r.Row + i
		if row >= sh.rows {
			break
		}
		for j := range r.Width {
			col := r.Col + j
			if col >= sh.cols {
				break
			}
			sh.values[row][col] = nil
			sh.notes[row][col] = ""
			sh.backgrounds[row][col] = ""
			sh.fontColors[row][col] = ""
			sh.formulas[row][col] = ""
			sh.wraps[row][col] = false
		}
	}
	return nil
}

// SheetExtent implements [grid.Store].
func (s *Store) SheetExtent(name string) (rows, cols int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheetFor(name)
	if err != nil {
		return 0, 0, err
	}
	return sh.rows, sh.cols, nil
}

// Resolve implements [grid.Store].
func (s *Store) Resolve(name string) (grid.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.names[name]
	if !ok {
		return grid.Region{}, &grid.NotFoundError{Name: name}
	}
	return r, nil
}

// SetValue writes a single cell value, growing the sheet as needed. Mostly
// useful when seeding a store by hand.
func (s *Store) SetValue(sheetName string, row, col int, v any) {
	s.set(sheetName, row, col, func(sh *sheet) {
		if str, ok := v.(string); ok && strings.HasPrefix(str, "=") {
			sh.formulas[row][col] = str
			sh.values[row][col] = ""
			return
		}
		sh.values[row][col] = v
		sh.formulas[row][col] = ""
	})
}

// SetNote writes a single cell note, growing the sheet as needed.
func (s *Store) SetNote(sheetName string, row, col int, note string) {
	s.set(sheetName, row, col, func(sh *sheet) { sh.notes[row][col] = note })
}

// SetBackground writes a single cell background, growing the sheet as needed.
func (s *Store) SetBackground(sheetName string, row, col int, color string) {
	s.set(sheetName, row, col, func(sh *sheet) { sh.backgrounds[row][col] = color })
}

// SetFontColor writes a single cell font color, growing the sheet as needed.
func (s *Store) SetFontColor(sheetName string, row, col int, color string) {
	s.set(sheetName, row, col, func(sh *sheet) { sh.fontColors[row][col] = color })
}

func (s *Store) set(sheetName string, row, col int, fn func(*sheet)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh := s.sheets[sheetName]
	if sh == nil {
		sh = &sheet{}
		s.sheets[sheetName] = sh
	}
	sh.grow(row+1, col+1)
	fn(sh)
}
