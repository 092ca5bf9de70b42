package storage

import (
	"fmt"

	"tdb/internal/engine"
)

// Codec turns a database into bytes and back. Implementations must be
// deterministic and order-preserving: Decode(Encode(db)) is structurally
// equal to db for every valid database, and Decode fails with a
// Malformed-kind LoadError on bytes that are not a valid encoding.
//
// Different implementations are possible:
//   - the binary file format (filestore)
//   - a textual format for debugging
//   - a network wire format in the future
type Codec interface {
	Encode(db *engine.DB) ([]byte, error)
	Decode(data []byte) (*engine.DB, error)
}

// LoadErrorKind classifies why loading a database failed. The split
// matters to callers: an IO failure is worth retrying, a malformed file
// is corrupt and is not.
type LoadErrorKind uint8

const (
	// LoadIO means the underlying byte source could not be read at all.
	LoadIO LoadErrorKind = iota
	// LoadMalformed means the bytes were read but do not parse as a
	// valid database.
	LoadMalformed
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadIO:
		return "io"
	case LoadMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("LoadErrorKind(%d)", uint8(k))
	}
}

// LoadError is the error produced when a database cannot be loaded from a
// byte source.
type LoadError struct {
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Malformed wraps err as a content error.
func Malformed(err error) *LoadError {
	return &LoadError{Kind: LoadMalformed, Err: err}
}

// IO wraps err as a byte-source error.
func IO(err error) *LoadError {
	return &LoadError{Kind: LoadIO, Err: err}
}
