package table

import (
	"fmt"
	"strings"
)

// Op selects which database operation an Instruction describes.
type Op uint8

const (
	OpDeleteColumn Op = iota
	OpDeleteRow
	OpAppendRow
	OpAppendColumn
	OpFetch
)

// ColumnID identifies a column either by its name (first match wins) or
// by its position in the schema.
type ColumnID struct {
	ByName bool
	Name   string
	Index  int
}

// NameID identifies a column by name.
func NameID(name string) ColumnID {
	return ColumnID{ByName: true, Name: name}
}

// IndexID identifies a column by position.
func IndexID(i int) ColumnID {
	return ColumnID{Index: i}
}

func (id ColumnID) String() string {
	if id.ByName {
		return fmt.Sprintf("`%s`", id.Name)
	}
	return fmt.Sprintf("(%d)", id.Index)
}

// Instruction is a single database operation as a value. It is inert data:
// it carries no reference to the table it will be applied to, which is what
// makes instructions loggable and replayable.
//
// Only the fields relevant to Op are set; the rest stay at zero values,
// the same layout convention Value uses.
type Instruction struct {
	Op Op

	Target ColumnID // OpDeleteColumn
	Index  int      // OpDeleteRow

	Values Row // OpAppendRow

	Name        string   // OpAppendColumn
	Restriction DataType // OpAppendColumn

	Row, Col int // OpFetch
}

// DeleteColumn describes removing the column identified by id.
func DeleteColumn(id ColumnID) Instruction {
	return Instruction{Op: OpDeleteColumn, Target: id}
}

// DeleteRow describes removing the row at index.
func DeleteRow(index int) Instruction {
	return Instruction{Op: OpDeleteRow, Index: index}
}

// AppendRow describes appending one row with the given values.
func AppendRow(values ...Value) Instruction {
	return Instruction{Op: OpAppendRow, Values: values}
}

// AppendColumn describes appending a column with a null default.
func AppendColumn(name string, restriction DataType) Instruction {
	return Instruction{Op: OpAppendColumn, Name: name, Restriction: restriction}
}

// Fetch describes reading the single value at (row, col).
func Fetch(row, col int) Instruction {
	return Instruction{Op: OpFetch, Row: row, Col: col}
}

// String renders the instruction in the uppercase command form used by the
// CLI echo and logs.
func (in Instruction) String() string {
	switch in.Op {
	case OpDeleteColumn:
		return fmt.Sprintf("DELETE_COL @%s", in.Target)
	case OpDeleteRow:
		return fmt.Sprintf("DELETE_ROW @(%d)", in.Index)
	case OpAppendRow:
		parts := make([]string, len(in.Values))
		for i, v := range in.Values {
			parts[i] = v.String()
		}
		return fmt.Sprintf("APPEND_ROW [%s]", strings.Join(parts, ", "))
	case OpAppendColumn:
		return fmt.Sprintf("APPEND_COL `%s` OF %s", in.Name, in.Restriction)
	case OpFetch:
		return fmt.Sprintf("FETCH @(%d,%d)", in.Row, in.Col)
	default:
		return fmt.Sprintf("Op(%d)", uint8(in.Op))
	}
}
