package engine

import (
	"errors"
	"testing"

	"tdb/internal/table"
)

// TestQueryDispatch drives a full session through Query alone, the way a
// command log replay would, and checks each response kind.
func TestQueryDispatch(t *testing.T) {
	db := New()

	expectIndex := func(in table.Instruction, want int) {
		t.Helper()
		resp, err := db.Query(in)
		if err != nil {
			t.Fatalf("%s failed: %v", in, err)
		}
		if resp.Kind != ResponseIndex {
			t.Fatalf("%s: expected an index response, got kind %d", in, resp.Kind)
		}
		if resp.Index != want {
			t.Fatalf("%s: expected index %d, got %d", in, want, resp.Index)
		}
	}

	expectIndex(table.AppendColumn("id", table.TypeInt32), 0)
	expectIndex(table.AppendColumn("name", table.TypeText), 1)
	expectIndex(table.AppendRow(
		table.Value{Kind: table.KindInt32, I32: 1},
		table.Value{Kind: table.KindText, S: "Alice"},
	), 0)
	expectIndex(table.AppendRow(
		table.Value{Kind: table.KindInt32, I32: 2},
		table.Value{Kind: table.KindText, S: "Bob"},
	), 1)

	// Fetch returns a value-kind response.
	resp, err := db.Query(table.Fetch(1, 1))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if resp.Kind != ResponseValue {
		t.Fatalf("expected a value response, got kind %d", resp.Kind)
	}
	if resp.Value.S != "Bob" {
		t.Fatalf("expected %q, got %s", "Bob", resp.Value)
	}

	// Deletes by name and by index both route correctly.
	expectIndex(table.DeleteColumn(table.NameID("id")), 0)
	expectIndex(table.DeleteColumn(table.IndexID(0)), 0)
	expectIndex(table.AppendColumn("n", table.TypeInt32), 0)
	expectIndex(table.DeleteRow(0), 0)

	if db.NumRows() != 1 {
		t.Fatalf("expected 1 row left, got %d", db.NumRows())
	}
}

// TestQueryErrorsPassThrough verifies that Query surfaces the same typed
// errors as the direct methods.
func TestQueryErrorsPassThrough(t *testing.T) {
	db := New()

	if _, err := db.Query(table.DeleteColumn(table.NameID("missing"))); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.Query(table.DeleteRow(0)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if _, err := db.Query(table.AppendRow(table.Value{Kind: table.KindNull})); !errors.Is(err, ErrDataMismatch) {
		t.Fatalf("expected ErrDataMismatch, got %v", err)
	}
	if _, err := db.Query(table.Fetch(0, 0)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}

	if _, err := db.Query(table.Instruction{Op: table.Op(99)}); err == nil {
		t.Fatalf("expected an error for an unknown op")
	}
}
