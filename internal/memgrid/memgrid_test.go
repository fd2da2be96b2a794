package memgrid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gridtab/gridtab/internal/grid"
)

func TestReadWriteRoundTrip(t *testing.T) {
	s := New()
	s.AddSheet("S", 2, 2)
	r := grid.Region{Sheet: "S", Height: 2, Width: 2}

	if err := s.WriteValues(r, [][]any{{"a", 1}, {2.5, true}}); err != nil {
		t.Fatalf("WriteValues: %v", err)
	}
	if err := s.WriteNotes(r, [][]string{{"n1", ""}, {"", "n4"}}); err != nil {
		t.Fatalf("WriteNotes: %v", err)
	}
	if err := s.WriteBackgrounds(r, [][]string{{"#fff", ""}, {"", "#000"}}); err != nil {
		t.Fatalf("WriteBackgrounds: %v", err)
	}
	if err := s.WriteFontColors(r, [][]string{{"", "#f00"}, {"", ""}}); err != nil {
		t.Fatalf("WriteFontColors: %v", err)
	}
	if err := s.WriteWraps(r, [][]bool{{true, false}, {false, false}}); err != nil {
		t.Fatalf("WriteWraps: %v", err)
	}

	b, err := s.ReadBlock(r)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if diff := cmp.Diff([][]any{{"a", 1}, {2.5, true}}, b.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if b.Notes[0][0] != "n1" || b.Notes[1][1] != "n4" {
		t.Errorf("notes mismatch: %v", b.Notes)
	}
	if b.Backgrounds[0][0] != "#fff" || b.FontColors[0][1] != "#f00" {
		t.Errorf("attributes mismatch: %v / %v", b.Backgrounds, b.FontColors)
	}
}

func TestFormulaRouting(t *testing.T) {
	s := New()
	s.AddSheet("S", 1, 2)
	r := grid.Region{Sheet: "S", Height: 1, Width: 2}

	if err := s.WriteValues(r, [][]any{{"=SUM(A1:A3)", "plain"}}); err != nil {
		t.Fatalf("WriteValues: %v", err)
	}
	b, err := s.ReadBlock(r)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if b.Formulas[0][0] != "=SUM(A1:A3)" {
		t.Errorf("formula not routed: %q", b.Formulas[0][0])
	}
	if b.Values[0][0] != "" {
		t.Errorf("formula cell should read an empty value, got %v", b.Values[0][0])
	}
	if b.Values[0][1] != "plain" || b.Formulas[0][1] != "" {
		t.Errorf("plain cell corrupted: %v / %q", b.Values[0][1], b.Formulas[0][1])
	}

	// A plain write over a formula cell clears the formula.
	if err := s.WriteValues(r.Resize(1, 1), [][]any{{"now plain"}}); err != nil {
		t.Fatalf("WriteValues: %v", err)
	}
	b, err = s.ReadBlock(r)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if b.Formulas[0][0] != "" || b.Values[0][0] != "now plain" {
		t.Errorf("formula not cleared: %q / %v", b.Formulas[0][0], b.Values[0][0])
	}
}

func TestGrowOnWrite(t *testing.T) {
	s := New()
	s.AddSheet("S", 1, 1)
	r := grid.Region{Sheet: "S", Row: 4, Col: 3, Height: 1, Width: 2}
	if err := s.WriteValues(r, [][]any{{"x", "y"}}); err != nil {
		t.Fatalf("WriteValues: %v", err)
	}
	rows, cols, err := s.SheetExtent("S")
	if err != nil {
		t.Fatalf("SheetExtent: %v", err)
	}
	if rows != 5 || cols != 5 {
		t.Errorf("extent = %dx%d, want 5x5", rows, cols)
	}
	b, err := s.ReadBlock(grid.Region{Sheet: "S", Height: 5, Width: 5})
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if b.Values[4][3] != "x" || b.Values[4][4] != "y" {
		t.Errorf("grown cells mismatch: %v", b.Values[4])
	}
	if b.Values[0][0] != "" {
		t.Errorf("untouched cell should read empty, got %v", b.Values[0][0])
	}
}

func TestReadBeyondExtent(t *testing.T) {
	s := New()
	s.AddSheet("S", 1, 1)
	s.SetValue("S", 0, 0, "only")
	b, err := s.ReadBlock(grid.Region{Sheet: "S", Height: 3, Width: 3})
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if b.Values[0][0] != "only" {
		t.Errorf("allocated cell mismatch: %v", b.Values[0][0])
	}
	if b.Values[2][2] != "" || b.Notes[2][2] != "" {
		t.Errorf("out-of-extent cells should read defaults")
	}
}

func TestWriteExtentMismatch(t *testing.T) {
	s := New()
	s.AddSheet("S", 2, 2)
	r := grid.Region{Sheet: "S", Height: 2, Width: 2}
	if err := s.WriteValues(r, [][]any{{"too", "wide", "by one"}, {1, 2, 3}}); err == nil {
		t.Error("expected extent mismatch error")
	}
	if err := s.WriteValues(grid.Region{Sheet: "S"}, nil); err == nil {
		t.Error("expected empty region error")
	}
}

func TestClearRegion(t *testing.T) {
	s := New()
	s.AddSheet("S", 2, 2)
	r := grid.Region{Sheet: "S", Height: 2, Width: 2}
	if err := s.WriteValues(r, [][]any{{"a", "b"}, {"c", "=D1"}}); err != nil {
		t.Fatalf("WriteValues: %v", err)
	}
	s.SetNote("S", 0, 0, "keep out")
	if err := s.ClearRegion(grid.Region{Sheet: "S", Height: 1, Width: 2}); err != nil {
		t.Fatalf("ClearRegion: %v", err)
	}
	b, err := s.ReadBlock(r)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if b.Values[0][0] != "" || b.Notes[0][0] != "" {
		t.Errorf("first line not cleared: %v / %q", b.Values[0][0], b.Notes[0][0])
	}
	if b.Values[1][0] != "c" || b.Formulas[1][1] != "=D1" {
		t.Errorf("second line should survive: %v / %q", b.Values[1][0], b.Formulas[1][1])
	}
}

func TestNames(t *testing.T) {
	s := New()
	s.AddSheet("S", 3, 3)
	want := grid.Region{Sheet: "S", Row: 1, Col: 1, Height: 2, Width: 2}
	s.DefineName("block", want)

	got, err := s.Resolve("block")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %v, want %v", got, want)
	}

	_, err = s.Resolve("missing")
	var nf *grid.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUnknownSheet(t *testing.T) {
	s := New()
	var snf *grid.SheetNotFoundError
	if _, err := s.ReadBlock(grid.Region{Sheet: "nope", Height: 1, Width: 1}); !errors.As(err, &snf) {
		t.Errorf("ReadBlock: expected SheetNotFoundError, got %v", err)
	}
	if err := s.WriteValues(grid.Region{Sheet: "nope", Height: 1, Width: 1}, [][]any{{1}}); !errors.As(err, &snf) {
		t.Errorf("WriteValues: expected SheetNotFoundError, got %v", err)
	}
	if _, _, err := s.SheetExtent("nope"); !errors.As(err, &snf) {
		t.Errorf("SheetExtent: expected SheetNotFoundError, got %v", err)
	}
}

func TestSheetNames(t *testing.T) {
	s := New()
	s.AddSheet("zeta", 1, 1)
	s.AddSheet("alpha", 1, 1)
	if diff := cmp.Diff([]string{"alpha", "zeta"}, s.SheetNames()); diff != "" {
		t.Errorf("sheet names mismatch (-want +got):\n%s", diff)
	}
}
