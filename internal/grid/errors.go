package grid

import "fmt"

// NotFoundError is returned when a named region cannot be resolved.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("named region %q not found", e.Name)
}

// SheetNotFoundError is returned when a sheet name is unknown to the store.
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found", e.Sheet)
}
