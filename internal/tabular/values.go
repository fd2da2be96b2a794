// Provides typed access to row values.

package tabular

import "time"

// String returns the field's value as a string, or "" when the field is
// missing or holds another type.
func (r *Row) String(label string) string {
	v, err := r.Value(label)
	if err != nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Number returns the field's value as a float64, or 0 when the field is
// missing or not numeric.
func (r *Row) Number(label string) float64 {
	v, err := r.Value(label)
	if err != nil {
		return 0
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return 0
}

// Time returns the field's value as a date, or the zero time when the field
// is missing or does not denote a date.
func (r *Row) Time(label string) time.Time {
	v, err := r.Value(label)
	if err != nil {
		return time.Time{}
	}
	if t, ok := dateValue(v); ok {
		return t
	}
	return time.Time{}
}

// Map returns a snapshot of the row's values keyed by field label. The
// snapshot is detached; mutating it does not affect the row.
func (r *Row) Map() map[string]any {
	out := make(map[string]any, len(r.table.header))
	for _, label := range r.table.header {
		out[label] = r.fields[label].Value
	}
	return out
}
