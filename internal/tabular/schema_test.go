package tabular

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gridtab/gridtab/internal/memgrid"
)

type inventoryItem struct {
	Name     string    `json:"name" jsonschema:"required,description=Item name"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
	Stocked  bool      `json:"stocked"`
	Added    time.Time `json:"added"`
	Internal string    `json:"-"`
}

func TestColumns(t *testing.T) {
	columns, err := Columns[inventoryItem]()
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	want := []Column{
		{Name: "name", Type: ColumnText, Required: true, Description: "Item name"},
		{Name: "quantity", Type: ColumnNumber, Required: true},
		{Name: "price", Type: ColumnNumber, Required: true},
		{Name: "stocked", Type: ColumnBool, Required: true},
		{Name: "added", Type: ColumnDate, Required: true},
	}
	if diff := cmp.Diff(want, columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnsPointer(t *testing.T) {
	a, err := Columns[inventoryItem]()
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	b, err := Columns[*inventoryItem]()
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("pointer type should yield the same columns (-value +pointer):\n%s", diff)
	}
}

func TestColumnsNonStruct(t *testing.T) {
	if _, err := Columns[int](); err == nil {
		t.Error("expected error for non-struct type")
	}
}

func TestHeaderFor(t *testing.T) {
	labels, err := HeaderFor[inventoryItem]()
	if err != nil {
		t.Fatalf("HeaderFor: %v", err)
	}
	want := []string{"name", "quantity", "price", "stocked", "added"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateForType(t *testing.T) {
	s := memgrid.New()
	s.AddSheet("Inventory", 1, 5)
	table, err := CreateForType[inventoryItem](s, "Inventory")
	if err != nil {
		t.Fatalf("CreateForType: %v", err)
	}
	want := []string{"name", "quantity", "price", "stocked", "added"}
	if diff := cmp.Diff(want, table.Header()); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if table.Len() != 0 {
		t.Errorf("new table should be empty, got %d rows", table.Len())
	}

	if _, err := table.Add(map[string]any{"name": "bolts", "quantity": 40}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := table.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	again, err := ForSheet(s, "Inventory", 0)
	if err != nil {
		t.Fatalf("ForSheet: %v", err)
	}
	if again.Len() != 1 || again.Rows().First().String("name") != "bolts" {
		t.Errorf("committed row lost")
	}
}
