// Package sqlexport writes a snapshot of a database into a SQLite file,
// so the data can be inspected with ordinary SQL tooling. The export is
// one-way: the binary file format stays the source of truth.
package sqlexport

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"tdb/internal/engine"
	"tdb/internal/table"
)

// Export creates (or replaces) tableName inside the SQLite database at
// path and inserts every row of db into it, in row order, inside a single
// transaction.
//
// Column names need adjusting for SQL: the engine permits duplicate and
// empty names, SQLite does not. Empty names become col_<i>; duplicates
// get a _<i> suffix. Data is unaffected.
func Export(ctx context.Context, db *engine.DB, path, tableName string) (retErr error) {
	if strings.TrimSpace(tableName) == "" {
		return fmt.Errorf("table name must not be empty")
	}

	cols := db.Columns()
	if len(cols) == 0 {
		// SQL cannot express a zero-column table.
		return fmt.Errorf("nothing to export: table has no columns")
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		if cerr := conn.Close(); retErr == nil && cerr != nil {
			retErr = errors.Wrap(cerr, "close")
		}
	}()

	names := sqlColumnNames(cols)

	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(names[i]), sqlType(c.Restriction()))
	}

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(tableName))); err != nil {
		return errors.Wrap(err, "drop table")
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tableName), strings.Join(defs, ", "))
	if _, err := conn.ExecContext(ctx, ddl); err != nil {
		return errors.Wrap(err, "create table")
	}

	rows := db.Rows()
	if len(rows) == 0 {
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(tableName), placeholders))
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for i, row := range rows {
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = sqlValue(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return errors.Wrapf(err, "insert row %d", i)
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}

// sqlColumnNames maps engine column names onto unique, non-empty SQL
// column names, preserving order.
func sqlColumnNames(cols []table.Column) []string {
	names := make([]string, len(cols))
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		name := c.Name()
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		if seen[name] {
			name = fmt.Sprintf("%s_%d", name, i)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func sqlType(t table.DataType) string {
	switch t {
	case table.TypeInt32, table.TypeInt64:
		return "INTEGER"
	case table.TypeFloat32, table.TypeFloat64:
		return "REAL"
	default:
		return "TEXT"
	}
}

func sqlValue(v table.Value) any {
	switch v.Kind {
	case table.KindInt32:
		return int64(v.I32)
	case table.KindInt64:
		return v.I64
	case table.KindFloat32:
		return float64(v.F32)
	case table.KindFloat64:
		return v.F64
	case table.KindText:
		return v.S
	default:
		return nil
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
