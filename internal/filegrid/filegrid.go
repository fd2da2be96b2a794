// Package filegrid persists a grid store as a single YAML workbook file.
//
// The file holds every sheet's planes plus the named-region registry and a
// revision stamp. The whole workbook is rewritten after each mutating call,
// so the last writer wins; there is no partial-write recovery. Cell wrap
// state is presentation-only and is not persisted.
package filegrid

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gridtab/gridtab/internal/grid"
	"github.com/gridtab/gridtab/internal/memgrid"
	"github.com/maruel/ksid"
	"gopkg.in/yaml.v3"
)

// document is the on-disk workbook shape.
type document struct {
	Revision string               `yaml:"revision,omitempty"`
	Sheets   map[string]*sheetDoc `yaml:"sheets"`
	Names    map[string]regionDoc `yaml:"names,omitempty"`
}

type sheetDoc struct {
	Values      [][]any    `yaml:"values,omitempty"`
	Notes       [][]string `yaml:"notes,omitempty"`
	Backgrounds [][]string `yaml:"backgrounds,omitempty"`
	FontColors  [][]string `yaml:"font_colors,omitempty"`
	Formulas    [][]string `yaml:"formulas,omitempty"`
}

type regionDoc struct {
	Sheet  string `yaml:"sheet"`
	Row    int    `yaml:"row"`
	Col    int    `yaml:"col"`
	Height int    `yaml:"height"`
	Width  int    `yaml:"width"`
}

// Store is a file-backed grid store. Safe for concurrent use.
type Store struct {
	path string

	mu       sync.Mutex
	mem      *memgrid.Store
	revision string
}

// Open loads the workbook at path. A missing file yields an empty workbook;
// the file is created on the first mutating call.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mem = memgrid.New()
			s.revision = ""
			return nil
		}
		return fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse workbook %s: %w", s.path, err)
	}
	mem := memgrid.New()
	for name, sh := range doc.Sheets {
		rows, cols := sheetDocExtent(sh)
		mem.AddSheet(name, rows, cols)
		for i, line := range sh.Values {
			for j, v := range line {
				if v != nil && v != "" {
					mem.SetValue(name, i, j, v)
				}
			}
		}
		setStrings(sh.Notes, mem.SetNote, name)
		setStrings(sh.Backgrounds, mem.SetBackground, name)
		setStrings(sh.FontColors, mem.SetFontColor, name)
		// Formula text routes through the value write path.
		setStrings(sh.Formulas, func(sheet string, r, c int, v string) {
			mem.SetValue(sheet, r, c, v)
		}, name)
	}
	for name, r := range doc.Names {
		mem.DefineName(name, grid.Region{
			Sheet:  r.Sheet,
			Row:    r.Row,
			Col:    r.Col,
			Height: r.Height,
			Width:  r.Width,
		})
	}
	s.mem = mem
	s.revision = doc.Revision
	return nil
}

func setStrings(plane [][]string, set func(sheet string, row, col int, v string), sheet string) {
	for i, line := range plane {
		for j, v := range line {
			if v != "" {
				set(sheet, i, j, v)
			}
		}
	}
}

func sheetDocExtent(sh *sheetDoc) (rows, cols int) {
	for _, plane := range [][][]string{sh.Notes, sh.Backgrounds, sh.FontColors, sh.Formulas} {
		if len(plane) > rows {
			rows = len(plane)
		}
		for _, line := range plane {
			if len(line) > cols {
				cols = len(line)
			}
		}
	}
	if len(sh.Values) > rows {
		rows = len(sh.Values)
	}
	for _, line := range sh.Values {
		if len(line) > cols {
			cols = len(line)
		}
	}
	return rows, cols
}

// Revision returns the stamp written by the most recent save, or the one
// loaded from disk. Revisions are K-sortable, so later saves compare greater.
func (s *Store) Revision() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *Store) save() error {
	doc := document{
		Revision: ksid.NewID().String(),
		Sheets:   make(map[string]*sheetDoc),
		Names:    make(map[string]regionDoc),
	}
	for _, name := range s.mem.SheetNames() {
		rows, cols, err := s.mem.SheetExtent(name)
		if err != nil {
			return err
		}
		sh := &sheetDoc{}
		if rows > 0 && cols > 0 {
			b, err := s.mem.ReadBlock(grid.Region{Sheet: name, Height: rows, Width: cols})
			if err != nil {
				return err
			}
			sh.Values = b.Values
			sh.Notes = b.Notes
			sh.Backgrounds = b.Backgrounds
			sh.FontColors = b.FontColors
			sh.Formulas = b.Formulas
		}
		doc.Sheets[name] = sh
	}
	for name, r := range s.mem.Names() {
		doc.Names[name] = regionDoc{Sheet: r.Sheet, Row: r.Row, Col: r.Col, Height: r.Height, Width: r.Width}
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal workbook: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", s.path, err)
	}
	s.revision = doc.Revision
	slog.Debug("workbook saved", "path", s.path, "revision", s.revision)
	return nil
}

// AddSheet creates or grows a sheet and persists the workbook.
func (s *Store) AddSheet(name string, rows, cols int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.AddSheet(name, rows, cols)
	return s.save()
}

// DefineName registers a named region and persists the workbook.
func (s *Store) DefineName(name string, r grid.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.DefineName(name, r)
	return s.save()
}

// ReadBlock implements [grid.Store].
func (s *Store) ReadBlock(r grid.Region) (*grid.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.ReadBlock(r)
}

// WriteValues implements [grid.Store].
func (s *Store) WriteValues(r grid.Region, data [][]any) error {
	return s.mutate(func() error { return s.mem.WriteValues(r, data) })
}

// WriteNotes implements [grid.Store].
func (s *Store) WriteNotes(r grid.Region, data [][]string) error {
	return s.mutate(func() error { return s.mem.WriteNotes(r, data) })
}

// WriteBackgrounds implements [grid.Store].
func (s *Store) WriteBackgrounds(r grid.Region, data [][]string) error {
	return s.mutate(func() error { return s.mem.WriteBackgrounds(r, data) })
}

// WriteFontColors implements [grid.Store].
func (s *Store) WriteFontColors(r grid.Region, data [][]string) error {
	return s.mutate(func() error { return s.mem.WriteFontColors(r, data) })
}

// WriteWraps implements [grid.Store]. Wraps are kept in memory only.
func (s *Store) WriteWraps(r grid.Region, data [][]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.WriteWraps(r, data)
}

// ClearRegion implements [grid.Store].
func (s *Store) ClearRegion(r grid.Region) error {
	return s.mutate(func() error { return s.mem.ClearRegion(r) })
}

func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	return s.save()
}

// SheetExtent implements [grid.Store].
func (s *Store) SheetExtent(sheet string) (rows, cols int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.SheetExtent(sheet)
}

// Resolve implements [grid.Store].
func (s *Store) Resolve(name string) (grid.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.Resolve(name)
}
