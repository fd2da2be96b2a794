package lookup

import (
	"testing"
	"time"
)

func column(values ...any) [][]any {
	out := make([][]any, len(values))
	for i, v := range values {
		out[i] = []any{v}
	}
	return out
}

func TestIndexOf2D(t *testing.T) {
	col := column("alpha", "beta", "gamma", "beta")

	t.Run("first occurrence", func(t *testing.T) {
		if got := IndexOf2D(col, "beta"); got != 1 {
			t.Errorf("IndexOf2D = %d, want 1", got)
		}
	})

	t.Run("absent", func(t *testing.T) {
		if got := IndexOf2D(col, "delta"); got != NotFound {
			t.Errorf("IndexOf2D = %d, want NotFound", got)
		}
	})

	t.Run("numbers across int and float", func(t *testing.T) {
		if got := IndexOf2D(column(10, 20, 30), float64(20)); got != 1 {
			t.Errorf("IndexOf2D = %d, want 1", got)
		}
	})

	t.Run("dates by instant", func(t *testing.T) {
		base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		col := column(base, base.Add(24*time.Hour))
		target := base.Add(24 * time.Hour).In(time.FixedZone("X", -3600))
		if got := IndexOf2D(col, target); got != 1 {
			t.Errorf("IndexOf2D = %d, want 1", got)
		}
	})

	t.Run("empty lines skipped", func(t *testing.T) {
		col := [][]any{{}, {"x"}}
		if got := IndexOf2D(col, "x"); got != 1 {
			t.Errorf("IndexOf2D = %d, want 1", got)
		}
	})

	t.Run("empty column", func(t *testing.T) {
		if got := IndexOf2D(nil, "x"); got != NotFound {
			t.Errorf("IndexOf2D = %d, want NotFound", got)
		}
	})
}

func TestBinaryIndexOf(t *testing.T) {
	col := column(1, 3, 5, 7, 9)

	t.Run("present", func(t *testing.T) {
		for i, v := range []any{1, 3, 5, 7, 9} {
			if got := BinaryIndexOf(col, v); got != i {
				t.Errorf("BinaryIndexOf(%v) = %d, want %d", v, got, i)
			}
		}
	})

	t.Run("absent between", func(t *testing.T) {
		if got := BinaryIndexOf(col, 4); got != NotFound {
			t.Errorf("BinaryIndexOf = %d, want NotFound", got)
		}
	})

	t.Run("absent outside", func(t *testing.T) {
		if got := BinaryIndexOf(col, 0); got != NotFound {
			t.Errorf("BinaryIndexOf = %d, want NotFound", got)
		}
		if got := BinaryIndexOf(col, 10); got != NotFound {
			t.Errorf("BinaryIndexOf = %d, want NotFound", got)
		}
	})

	t.Run("strings", func(t *testing.T) {
		col := column("ant", "bee", "cat")
		if got := BinaryIndexOf(col, "bee"); got != 1 {
			t.Errorf("BinaryIndexOf = %d, want 1", got)
		}
	})

	t.Run("single element", func(t *testing.T) {
		if got := BinaryIndexOf(column(5), 5); got != 0 {
			t.Errorf("BinaryIndexOf = %d, want 0", got)
		}
	})

	t.Run("empty column", func(t *testing.T) {
		if got := BinaryIndexOf(nil, 5); got != NotFound {
			t.Errorf("BinaryIndexOf = %d, want NotFound", got)
		}
	})
}
