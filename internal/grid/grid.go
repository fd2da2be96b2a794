// Package grid defines the capability contract for rectangular cell stores.
//
// A Store persists sheets of cells where every cell carries several parallel
// attributes (planes): a value, a note, a background color, a font color and
// a formula. Consumers read and write rectangular blocks addressed by a
// [Region]. The package does not implement persistence itself; see memgrid
// and filegrid for implementations.
package grid

import "fmt"

// Region addresses a rectangular area of cells on a sheet.
//
// Row and Col are the zero-based origin. Regions are plain values; deriving a
// new extent or origin returns a new Region and never touches the store.
type Region struct {
	Sheet  string
	Row    int
	Col    int
	Height int
	Width  int
}

// Origin returns the zero-based row and column of the top-left cell.
func (r Region) Origin() (row, col int) {
	return r.Row, r.Col
}

// Extent returns the height and width of the region in cells.
func (r Region) Extent() (height, width int) {
	return r.Height, r.Width
}

// Resize returns a region with the same origin and the given extent.
func (r Region) Resize(height, width int) Region {
	r.Height = height
	r.Width = width
	return r
}

// Offset returns a region shifted by the given number of rows and columns,
// keeping the extent.
func (r Region) Offset(rows, cols int) Region {
	r.Row += rows
	r.Col += cols
	return r
}

// Line returns the single-row subregion at the given zero-based row offset.
func (r Region) Line(i int) Region {
	r.Row += i
	r.Height = 1
	return r
}

// Cell returns the single-cell subregion at the given zero-based offsets.
func (r Region) Cell(row, col int) Region {
	r.Row += row
	r.Col += col
	r.Height = 1
	r.Width = 1
	return r
}

// Empty reports whether the region covers zero cells.
func (r Region) Empty() bool {
	return r.Height <= 0 || r.Width <= 0
}

// String formats the region for error messages and logs.
func (r Region) String() string {
	return fmt.Sprintf("%s!r%dc%d+%dx%d", r.Sheet, r.Row, r.Col, r.Height, r.Width)
}

// Block holds the readable planes of a rectangular area. Each plane is a
// Height x Width matrix aligned to the region it was read from.
type Block struct {
	Values      [][]any
	Notes       [][]string
	Backgrounds [][]string
	FontColors  [][]string
	Formulas    [][]string
}

// Store is the capability contract a backing grid must provide.
//
// Implementations must be safe for use from multiple goroutines; the tabular
// layer itself is single-owner and adds no locking of its own.
type Store interface {
	// ReadBlock reads all readable planes for a region in one pass.
	ReadBlock(r Region) (*Block, error)

	// Per-plane block writes. The data matrix must match the region extent.
	WriteValues(r Region, data [][]any) error
	WriteNotes(r Region, data [][]string) error
	WriteBackgrounds(r Region, data [][]string) error
	WriteFontColors(r Region, data [][]string) error
	WriteWraps(r Region, data [][]bool) error

	// ClearRegion resets every plane of the region to its default.
	ClearRegion(r Region) error

	// SheetExtent returns the allocated height and width of a sheet.
	SheetExtent(sheet string) (rows, cols int, err error)

	// Resolve maps a region name to its coordinates. Returns a
	// [NotFoundError] when the name is unknown.
	Resolve(name string) (Region, error)
}

// FullRegion computes the full-extent region of a sheet starting at the given
// 1-based header row. headerRow 0 means the default of 1.
func FullRegion(s Store, sheet string, headerRow int) (Region, error) {
	if headerRow <= 0 {
		headerRow = 1
	}
	rows, cols, err := s.SheetExtent(sheet)
	if err != nil {
		return Region{}, fmt.Errorf("full region of %s: %w", sheet, err)
	}
	top := headerRow - 1
	height := rows - top
	if height < 0 {
		height = 0
	}
	return Region{Sheet: sheet, Row: top, Col: 0, Height: height, Width: cols}, nil
}
