package tabular

import "fmt"

// FieldNotFoundError is returned when a field label is absent from the
// table header. It identifies the field and the owning backing region so a
// typo surfaces before anything is written to the wrong column.
type FieldNotFoundError struct {
	Field  string
	Region string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found in table %s", e.Field, e.Region)
}

// StaleRowError is returned when a row-level commit is attempted after the
// table reordered or deleted rows. The row's cached position no longer
// matches the backing store, so writing through it would overwrite an
// unrelated line.
type StaleRowError struct {
	Region string
	Pos    int
}

func (e *StaleRowError) Error() string {
	return fmt.Sprintf("row %d of table %s is stale; commit the table instead", e.Pos, e.Region)
}

// InvalidCriteriaError is returned when a selection clause has a shape the
// selector does not support.
type InvalidCriteriaError struct {
	Reason string
}

func (e *InvalidCriteriaError) Error() string {
	return "invalid criteria: " + e.Reason
}

// BoundsError is returned when a delete targets a position outside the live
// row collection.
type BoundsError struct {
	Pos int
	Len int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("row position %d out of bounds for %d live rows", e.Pos, e.Len)
}
