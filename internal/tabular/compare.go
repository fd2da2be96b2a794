// Provides value equality, ordering and key normalization for cell scalars.

package tabular

import (
	"cmp"
	"fmt"
	"time"
)

// dateLayouts are tried in order when deciding whether a string denotes a
// date. Matches the formats hosted spreadsheets round-trip through text.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// dateValue reports whether v denotes a date, either as a time.Time or as a
// string in a recognized layout.
func dateValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// equalValues compares two cell values for equality. Dates compare by
// instant, numbers across int/float64, everything else natively.
func equalValues(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
		return false
	}
	return compareValues(a, b) == 0
}

// compareValues orders two cell values, returning -1, 0, or 1.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
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
	case bool:
		if vb, ok := b.(bool); ok {
			if va == vb {
				return 0
			}
			if !va {
				return -1
			}
			return 1
		}
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Compare(vb)
		}
	}
	// Fallback: compare string representations.
	return cmp.Compare(toString(a), toString(b))
}

// compareForSort orders values for SortBy: anything parseable as a date
// sorts by date ordinality, everything else by natural ordering.
func compareForSort(a, b any) int {
	da, aok := dateValue(a)
	db, bok := dateValue(b)
	if aok && bok {
		return da.Compare(db)
	}
	return compareValues(a, b)
}

// timeKey tags normalized date keys so they never collide with numbers.
type timeKey int64

// normKey normalizes a value for use as a map key, so that values that
// compare equal share a key. Dates key by instant, numbers as float64.
func normKey(v any) any {
	switch t := v.(type) {
	case time.Time:
		return timeKey(t.UnixNano())
	case int:
		return float64(t)
	case float64, string, bool, nil:
		return v
	}
	return toString(v)
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
