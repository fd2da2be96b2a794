// Handles header derivation from Go struct types via JSON Schema reflection.

package tabular

import (
	"fmt"
	"reflect"
	"time"

	"github.com/gridtab/gridtab/internal/grid"
	"github.com/invopop/jsonschema"
)

// ColumnType classifies what a header column holds.
type ColumnType string

const (
	// ColumnText holds plain text values.
	ColumnText ColumnType = "text"
	// ColumnNumber holds numeric values.
	ColumnNumber ColumnType = "number"
	// ColumnBool holds boolean values.
	ColumnBool ColumnType = "bool"
	// ColumnDate holds date values.
	ColumnDate ColumnType = "date"
)

// Column describes one header column derived from a struct field.
type Column struct {
	Name        string
	Type        ColumnType
	Required    bool
	Description string
}

// Columns extracts column definitions from a struct type using JSON Schema
// reflection. Field names come from `json` tags, descriptions from
// `jsonschema:"description=..."` tags.
func Columns[T any]() ([]Column, error) {
	t := reflect.TypeFor[T]()
	structType := t
	if t.Kind() == reflect.Pointer {
		structType = t.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type must be a struct or pointer to struct, got %s", t.Kind())
	}

	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	schema := r.ReflectFromType(structType)

	required := make(map[string]bool)
	for _, name := range schema.Required {
		required[name] = true
	}

	var columns []Column
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		colType := ColumnText
		for i := range structType.NumField() {
			field := structType.Field(i)
			if jsonFieldName(&field) == name {
				colType = goTypeToColumnType(field.Type)
				break
			}
		}
		columns = append(columns, Column{
			Name:        name,
			Type:        colType,
			Required:    required[name],
			Description: pair.Value.Description,
		})
	}
	return columns, nil
}

// HeaderFor returns the header labels a struct type maps to, in field order.
func HeaderFor[T any]() ([]string, error) {
	columns, err := Columns[T]()
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(columns))
	for i, c := range columns {
		labels[i] = c.Name
	}
	return labels, nil
}

// CreateForType writes a header derived from a struct type at the top of an
// existing sheet and returns the empty table over it.
func CreateForType[T any](store grid.Store, sheet string) (*Table, error) {
	labels, err := HeaderFor[T]()
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("type has no columns")
	}
	region := grid.Region{Sheet: sheet, Height: 1, Width: len(labels)}
	line := make([]any, len(labels))
	for i, label := range labels {
		line[i] = label
	}
	if err := store.WriteValues(region, [][]any{line}); err != nil {
		return nil, fmt.Errorf("failed to write header on %s: %w", sheet, err)
	}
	return New(store, region)
}

// jsonFieldName returns the JSON field name for a struct field.
func jsonFieldName(field *reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	for i, c := range tag {
		if c == ',' {
			if i == 0 {
				return field.Name
			}
			return tag[:i]
		}
	}
	return tag
}

// goTypeToColumnType maps Go types to column types.
func goTypeToColumnType(t reflect.Type) ColumnType {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeFor[time.Time]() {
		return ColumnDate
	}
	switch t.Kind() {
	case reflect.Bool:
		return ColumnBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ColumnNumber
	default:
		return ColumnText
	}
}
