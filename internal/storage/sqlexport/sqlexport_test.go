package sqlexport

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"tdb/internal/engine"
	"tdb/internal/table"
)

func buildSample(t *testing.T) *engine.DB {
	t.Helper()
	db := engine.New()

	if _, err := db.AppendColumn("id", table.TypeInt32); err != nil {
		t.Fatalf("AppendColumn failed: %v", err)
	}
	if _, err := db.AppendColumn("name", table.TypeText); err != nil {
		t.Fatalf("AppendColumn failed: %v", err)
	}
	if _, err := db.AppendColumn("score", table.TypeFloat64); err != nil {
		t.Fatalf("AppendColumn failed: %v", err)
	}

	rows := []table.Row{
		{
			{Kind: table.KindInt32, I32: 1},
			{Kind: table.KindText, S: "Alice"},
			{Kind: table.KindFloat64, F64: 9.5},
		},
		{
			{Kind: table.KindInt32, I32: 2},
			{Kind: table.KindNull},
			{Kind: table.KindFloat64, F64: -1},
		},
	}
	for i, r := range rows {
		if _, err := db.AppendRow(r); err != nil {
			t.Fatalf("AppendRow %d failed: %v", i, err)
		}
	}
	return db
}

func TestExport(t *testing.T) {
	db := buildSample(t)
	path := filepath.Join(t.TempDir(), "out.sqlite")

	if err := Export(context.Background(), db, path, "people"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Read the file back with plain database/sql.
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM "people"`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	var (
		id    int64
		name  sql.NullString
		score float64
	)
	if err := conn.QueryRow(`SELECT "id", "name", "score" FROM "people" WHERE "id" = 1`).Scan(&id, &name, &score); err != nil {
		t.Fatalf("row query failed: %v", err)
	}
	if !name.Valid || name.String != "Alice" || score != 9.5 {
		t.Fatalf("row 1 mismatch: name=%v score=%v", name, score)
	}

	// The null value exports as SQL NULL.
	if err := conn.QueryRow(`SELECT "name" FROM "people" WHERE "id" = 2`).Scan(&name); err != nil {
		t.Fatalf("null row query failed: %v", err)
	}
	if name.Valid {
		t.Fatalf("expected NULL name, got %q", name.String)
	}
}

// TestExportReplacesTable verifies the drop-and-recreate behavior on a
// second export to the same file.
func TestExportReplacesTable(t *testing.T) {
	db := buildSample(t)
	path := filepath.Join(t.TempDir(), "out.sqlite")

	if err := Export(context.Background(), db, path, "people"); err != nil {
		t.Fatalf("first Export failed: %v", err)
	}
	if _, err := db.DeleteRowByIndex(0); err != nil {
		t.Fatalf("DeleteRowByIndex failed: %v", err)
	}
	if err := Export(context.Background(), db, path, "people"); err != nil {
		t.Fatalf("second Export failed: %v", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM "people"`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after re-export, got %d", count)
	}
}

func TestExportColumnNameFixups(t *testing.T) {
	db := engine.New()
	// Duplicate and empty names are legal in the engine but not in SQL.
	for _, name := range []string{"X", "X", ""} {
		if _, err := db.AppendColumn(name, table.TypeInt32); err != nil {
			t.Fatalf("AppendColumn failed: %v", err)
		}
	}
	if _, err := db.AppendRow(table.Row{
		{Kind: table.KindInt32, I32: 1},
		{Kind: table.KindInt32, I32: 2},
		{Kind: table.KindInt32, I32: 3},
	}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.sqlite")
	if err := Export(context.Background(), db, path, "t"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer conn.Close()

	var a, b, c int64
	if err := conn.QueryRow(`SELECT "X", "X_1", "col_2" FROM "t"`).Scan(&a, &b, &c); err != nil {
		t.Fatalf("renamed column query failed: %v", err)
	}
	if a != 1 || b != 2 || c != 3 {
		t.Fatalf("expected (1, 2, 3), got (%d, %d, %d)", a, b, c)
	}
}

func TestExportEmptyTableName(t *testing.T) {
	if err := Export(context.Background(), engine.New(), filepath.Join(t.TempDir(), "x.sqlite"), " "); err == nil {
		t.Fatalf("expected an error for a blank table name")
	}
}
