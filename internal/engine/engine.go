package engine

import (
	"fmt"

	"tdb/internal/table"
)

// DB is an in-memory table: an ordered schema of columns plus the rows
// holding the data. All data lives in the rows; the columns exist for type
// checking and name lookup.
//
// A DB is always fully valid between calls: every row is exactly as wide
// as the schema, and operations that fail change nothing. It is not safe
// for concurrent use; callers needing that must serialize access around
// the whole DB.
type DB struct {
	columns []table.Column
	rows    []table.Row
}

// New returns an empty database: zero columns, zero rows.
func New() *DB {
	return &DB{}
}

// FromParts reconstructs a database from a decoded column and row set,
// as the file codec produces them. It enforces the shape invariant but
// deliberately does not re-check values against column restrictions:
// column defaults are stamped in unchecked, so stored rows may legally
// carry values a fresh AppendRow would reject.
func FromParts(cols []table.Column, rows []table.Row) (*DB, error) {
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values, schema has %d columns", i, len(r), len(cols))
		}
	}
	return &DB{columns: cols, rows: rows}, nil
}

// NumColumns returns the current column count.
func (db *DB) NumColumns() int { return len(db.columns) }

// NumRows returns the current row count.
func (db *DB) NumRows() int { return len(db.rows) }

// Columns returns a copy of the schema in column order.
func (db *DB) Columns() []table.Column {
	out := make([]table.Column, len(db.columns))
	copy(out, db.columns)
	return out
}

// Rows returns a deep copy of all rows in row order, so callers cannot
// mutate stored data.
func (db *DB) Rows() []table.Row {
	out := make([]table.Row, len(db.rows))
	for i, r := range db.rows {
		out[i] = r.Clone()
	}
	return out
}

// AppendColumn appends a new column with the given name and type
// restriction, filling the new position in every existing row with null.
// It returns the new column's index and cannot fail: column names carry
// no uniqueness constraint, duplicates included.
func (db *DB) AppendColumn(name string, restriction table.DataType) (int, error) {
	return db.AppendColumnDefault(name, restriction, table.Value{Kind: table.KindNull})
}

// AppendColumnDefault is AppendColumn with an explicit default, stamped
// into every existing row at the new position. The default is stored
// as-is and is not checked against the restriction; only AppendRow
// enforces restrictions.
func (db *DB) AppendColumnDefault(name string, restriction table.DataType, def table.Value) (int, error) {
	db.columns = append(db.columns, table.NewColumn(name, restriction))

	for i := range db.rows {
		db.rows[i] = append(db.rows[i], def)
	}
	return len(db.columns) - 1, nil
}

// AppendRow validates values against the schema and appends them as a new
// row, returning its index.
//
// The value count is checked first: a wrong count is always
// ErrDataMismatch, never a type error. Types are then checked in column
// order, failing fast on the first mismatch.
func (db *DB) AppendRow(values table.Row) (int, error) {
	if len(values) != len(db.columns) {
		return 0, ErrDataMismatch
	}
	for i, v := range values {
		restriction := db.columns[i].Restriction()
		if restriction != v.Type() {
			return 0, &TypeMismatchError{Expected: restriction, Actual: v.Type()}
		}
	}
	db.rows = append(db.rows, values.Clone())
	return len(db.rows) - 1, nil
}

// DeleteColumnByName removes the first column whose name exactly equals
// name, and the value at that position from every row. It returns the
// removed column's former index, or ErrNotFound if nothing matched.
// Matching is case-sensitive with no normalization.
func (db *DB) DeleteColumnByName(name string) (int, error) {
	for i, col := range db.columns {
		if col.Name() == name {
			db.removeColumn(i)
			return i, nil
		}
	}
	return 0, ErrNotFound
}

// DeleteColumnByIndex removes the column at index and the value at that
// position from every row, returning index.
func (db *DB) DeleteColumnByIndex(index int) (int, error) {
	if index < 0 || index >= len(db.columns) {
		return 0, ErrIndexOutOfBounds
	}
	db.removeColumn(index)
	return index, nil
}

// DeleteRowByIndex removes the row at index, returning index.
func (db *DB) DeleteRowByIndex(index int) (int, error) {
	if index < 0 || index >= len(db.rows) {
		return 0, ErrIndexOutOfBounds
	}
	db.rows = append(db.rows[:index], db.rows[index+1:]...)
	return index, nil
}

// FetchValue returns the single value at (rowIndex, colIndex). The row
// index is checked against the row count (ErrIndexOutOfBounds) and the
// column index against that row's width (ErrDataOutOfBounds).
func (db *DB) FetchValue(rowIndex, colIndex int) (table.Value, error) {
	if rowIndex < 0 || rowIndex >= len(db.rows) {
		return table.Value{}, ErrIndexOutOfBounds
	}
	row := db.rows[rowIndex]
	if colIndex < 0 || colIndex >= len(row) {
		return table.Value{}, ErrDataOutOfBounds
	}
	return row[colIndex], nil
}

// removeColumn drops column i from the schema and position i from every
// row, keeping the two in lockstep.
func (db *DB) removeColumn(i int) {
	db.columns = append(db.columns[:i], db.columns[i+1:]...)
	for r := range db.rows {
		db.rows[r] = append(db.rows[r][:i], db.rows[r][i+1:]...)
	}
}
