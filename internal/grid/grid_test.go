package grid

import (
	"errors"
	"testing"
	"time"
)

func TestRegion(t *testing.T) {
	r := Region{Sheet: "S", Row: 2, Col: 3, Height: 4, Width: 5}

	t.Run("derivations", func(t *testing.T) {
		if row, col := r.Origin(); row != 2 || col != 3 {
			t.Errorf("Origin = %d,%d", row, col)
		}
		if h, w := r.Extent(); h != 4 || w != 5 {
			t.Errorf("Extent = %dx%d", h, w)
		}
		if got := r.Resize(1, 2); got.Height != 1 || got.Width != 2 || got.Row != 2 {
			t.Errorf("Resize = %v", got)
		}
		if got := r.Offset(1, -1); got.Row != 3 || got.Col != 2 || got.Height != 4 {
			t.Errorf("Offset = %v", got)
		}
		if got := r.Line(2); got.Row != 4 || got.Height != 1 || got.Width != 5 {
			t.Errorf("Line = %v", got)
		}
		if got := r.Cell(1, 1); got.Row != 3 || got.Col != 4 || got.Height != 1 || got.Width != 1 {
			t.Errorf("Cell = %v", got)
		}
		// The receiver is untouched.
		if r.Height != 4 || r.Row != 2 {
			t.Errorf("receiver mutated: %v", r)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if r.Empty() {
			t.Error("non-empty region reported empty")
		}
		if !(Region{Sheet: "S", Width: 5}).Empty() {
			t.Error("zero-height region should be empty")
		}
		if !(Region{Sheet: "S", Height: 5}).Empty() {
			t.Error("zero-width region should be empty")
		}
	})

	t.Run("string", func(t *testing.T) {
		if got := r.String(); got != "S!r2c3+4x5" {
			t.Errorf("String = %q", got)
		}
	})
}

// extentStore stubs out everything but SheetExtent.
type extentStore struct {
	Store
	rows, cols int
	err        error
}

func (s *extentStore) SheetExtent(string) (int, int, error) {
	return s.rows, s.cols, s.err
}

func TestFullRegion(t *testing.T) {
	s := &extentStore{rows: 10, cols: 4}

	t.Run("default header row", func(t *testing.T) {
		r, err := FullRegion(s, "S", 0)
		if err != nil {
			t.Fatalf("FullRegion: %v", err)
		}
		want := Region{Sheet: "S", Row: 0, Col: 0, Height: 10, Width: 4}
		if r != want {
			t.Errorf("FullRegion = %v, want %v", r, want)
		}
	})

	t.Run("offset header row", func(t *testing.T) {
		r, err := FullRegion(s, "S", 3)
		if err != nil {
			t.Fatalf("FullRegion: %v", err)
		}
		if r.Row != 2 || r.Height != 8 {
			t.Errorf("FullRegion = %v", r)
		}
	})

	t.Run("header row past extent", func(t *testing.T) {
		r, err := FullRegion(s, "S", 20)
		if err != nil {
			t.Fatalf("FullRegion: %v", err)
		}
		if r.Height != 0 {
			t.Errorf("height should clamp to 0, got %d", r.Height)
		}
	})

	t.Run("store error", func(t *testing.T) {
		bad := &extentStore{err: &SheetNotFoundError{Sheet: "S"}}
		_, err := FullRegion(bad, "S", 1)
		var snf *SheetNotFoundError
		if !errors.As(err, &snf) {
			t.Fatalf("expected SheetNotFoundError, got %v", err)
		}
	})
}

// countingStore records how many mutating calls reached the wrapped store.
type countingStore struct {
	Store
	writes int
}

func (s *countingStore) WriteValues(Region, [][]any) error {
	s.writes++
	return nil
}

func (s *countingStore) ClearRegion(Region) error {
	s.writes++
	return nil
}

func (s *countingStore) ReadBlock(Region) (*Block, error) {
	return &Block{}, nil
}

func TestThrottled(t *testing.T) {
	t.Run("passes calls through", func(t *testing.T) {
		inner := &countingStore{}
		th := NewThrottled(inner, 1000, 10)
		r := Region{Sheet: "S", Height: 1, Width: 1}
		if err := th.WriteValues(r, [][]any{{1}}); err != nil {
			t.Fatalf("WriteValues: %v", err)
		}
		if err := th.ClearRegion(r); err != nil {
			t.Fatalf("ClearRegion: %v", err)
		}
		if _, err := th.ReadBlock(r); err != nil {
			t.Fatalf("ReadBlock: %v", err)
		}
		if inner.writes != 2 {
			t.Errorf("writes = %d, want 2", inner.writes)
		}
	})

	t.Run("paces past the burst", func(t *testing.T) {
		inner := &countingStore{}
		th := NewThrottled(inner, 50, 1)
		r := Region{Sheet: "S", Height: 1, Width: 1}
		start := time.Now()
		for range 3 {
			if err := th.WriteValues(r, [][]any{{1}}); err != nil {
				t.Fatalf("WriteValues: %v", err)
			}
		}
		// Burst 1 at 50/s means the two extra writes wait ~20ms each.
		if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
			t.Errorf("writes not paced: took %v", elapsed)
		}
	})
}
