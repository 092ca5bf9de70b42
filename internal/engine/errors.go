package engine

import (
	"errors"
	"fmt"

	"tdb/internal/table"
)

// The closed set of failures an operation can return. All of them are
// recoverable: a failed operation leaves the table untouched.
var (
	// ErrIndexOutOfBounds means a row or column index argument exceeds
	// the current count.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrDataOutOfBounds means a value position is invalid relative to a
	// row's width, as opposed to the row/column counts.
	ErrDataOutOfBounds = errors.New("data out of bounds")

	// ErrNotFound means a name lookup matched nothing.
	ErrNotFound = errors.New("item not found")

	// ErrDataMismatch means the number of values supplied to an append
	// does not equal the number of columns.
	ErrDataMismatch = errors.New("data does not fit column shape")
)

// TypeMismatchError reports a value whose type does not satisfy its
// column's restriction. It carries both sides for diagnostics.
type TypeMismatchError struct {
	Expected table.DataType
	Actual   table.DataType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}
