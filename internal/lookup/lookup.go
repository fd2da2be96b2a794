// Package lookup provides single-value searches over a raw column block.
//
// Both helpers work directly on the two-dimensional value matrix a grid
// store returns for a one-column region, so a single lookup against a very
// large region avoids materializing a full table. Positions are zero-based
// row offsets within the block.
package lookup

import (
	"cmp"
	"fmt"
	"time"
)

// NotFound is returned when the target value is absent from the column.
const NotFound = -1

// IndexOf2D scans the column top to bottom and returns the position of the
// first cell equal to target, or [NotFound]. Dates compare by instant.
func IndexOf2D(column [][]any, target any) int {
	for i, line := range column {
		if len(line) == 0 {
			continue
		}
		if equal(line[0], target) {
			return i
		}
	}
	return NotFound
}

// BinaryIndexOf searches a column the caller asserts is sorted ascending.
// Returns the position of target or [NotFound]. Behavior is undefined when
// the column is not sorted.
func BinaryIndexOf(column [][]any, target any) int {
	min, max := 0, len(column)-1
	for min <= max {
		mid := (min + max) / 2
		var v any
		if len(column[mid]) > 0 {
			v = column[mid][0]
		}
		switch c := compare(v, target); {
		case c < 0:
			min = mid + 1
		case c > 0:
			max = mid - 1
		default:
			return mid
		}
	}
	return NotFound
}

func equal(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
	}
	return compare(a, b) == 0
}

// compare orders two cell values naturally: numbers numerically, strings
// lexically, dates by instant, mixed types by string representation.
func compare(a, b any) int {
	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return cmp.Compare(va, vb)
		}
	case float64:
		if vb, ok := toFloat(b); ok {
			return cmp.Compare(va, vb)
		}
	case int:
		if vb, ok := toFloat(b); ok {
			return cmp.Compare(float64(va), vb)
		}
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Compare(vb)
		}
	}
	return cmp.Compare(toString(a), toString(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
