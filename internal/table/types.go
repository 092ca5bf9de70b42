package table

import "fmt"

// DataType is the logical type a column can restrict its values to.
type DataType uint8

const (
	TypeInt32 DataType = iota
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeText
)

func (t DataType) String() string {
	switch t {
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeText:
		return "text"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(t))
	}
}

// ParseDataType parses the textual form produced by DataType.String.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "int32":
		return TypeInt32, nil
	case "int64":
		return TypeInt64, nil
	case "float32":
		return TypeFloat32, nil
	case "float64":
		return TypeFloat64, nil
	case "text":
		return TypeText, nil
	default:
		return 0, fmt.Errorf("unknown data type %q", s)
	}
}

// Kind tags the payload stored in a Value. Unlike DataType it includes
// KindNull, which is a value variant but not a schema type.
type Kind uint8

const (
	KindInt32 Kind = iota
	KindInt64
	KindFloat32
	KindFloat64
	KindText
	KindNull
)

// Value is a single cell: a tagged union over the supported payloads.
// Only the field matching Kind should be read; the others stay at their
// zero values. Values are never mutated after construction.
type Value struct {
	Kind Kind

	I32 int32   // for KindInt32
	I64 int64   // for KindInt64
	F32 float32 // for KindFloat32
	F64 float64 // for KindFloat64
	S   string  // for KindText
}

// Type projects a value onto the schema type it satisfies.
//
// A null value projects to TypeText. That mirrors the behavior of already
// persisted data (nulls are only accepted by text columns), so it is kept
// rather than treating null as typeless.
func (v Value) Type() DataType {
	switch v.Kind {
	case KindInt32:
		return TypeInt32
	case KindInt64:
		return TypeInt64
	case KindFloat32:
		return TypeFloat32
	case KindFloat64:
		return TypeFloat64
	default:
		// KindText and KindNull
		return TypeText
	}
}

// Equal reports structural equality: same kind, same payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt32:
		return v.I32 == o.I32
	case KindInt64:
		return v.I64 == o.I64
	case KindFloat32:
		return v.F32 == o.F32
	case KindFloat64:
		return v.F64 == o.F64
	case KindText:
		return v.S == o.S
	default:
		return true // null == null
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt32:
		return fmt.Sprintf("%dint32", v.I32)
	case KindInt64:
		return fmt.Sprintf("%dint64", v.I64)
	case KindFloat32:
		return fmt.Sprintf("%gfloat32", v.F32)
	case KindFloat64:
		return fmt.Sprintf("%gfloat64", v.F64)
	case KindText:
		return fmt.Sprintf("`%s`text", v.S)
	default:
		return "NULL"
	}
}

// Row is one record: a slice of Values, one per column, in column order.
type Row []Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Column describes one schema slot: a display name plus the type every
// value in that position must satisfy. Both are fixed at construction;
// columns are replaced wholesale by table operations, never edited.
type Column struct {
	name        string
	restriction DataType
}

// NewColumn builds a column with the given name and type restriction.
// Names are not required to be unique; name lookups resolve to the first
// match in column order.
func NewColumn(name string, restriction DataType) Column {
	return Column{name: name, restriction: restriction}
}

func (c Column) Name() string { return c.name }

func (c Column) Restriction() DataType { return c.restriction }

func (c Column) String() string {
	return fmt.Sprintf("[`%s`|%s]", c.name, c.restriction)
}
