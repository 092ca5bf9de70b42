package table

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInstruction parses one command line into an Instruction.
//
// Supported forms:
//
//	append_col <name> <type>
//	append_row <value> [<value> ...]
//	delete_col <name> | delete_col @<index>
//	delete_row <index>
//	fetch <row> <col>
//
// Type names are the DataType.String forms (int32, int64, float32,
// float64, text). See ParseValue for value literals.
func ParseInstruction(line string) (Instruction, error) {
	fields, err := splitFields(line)
	if err != nil {
		return Instruction{}, err
	}
	if len(fields) == 0 {
		return Instruction{}, fmt.Errorf("empty instruction")
	}

	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "append_col":
		if len(args) != 2 {
			return Instruction{}, fmt.Errorf("append_col wants <name> <type>, got %d args", len(args))
		}
		t, err := ParseDataType(strings.ToLower(args[1]))
		if err != nil {
			return Instruction{}, err
		}
		return AppendColumn(unquote(args[0]), t), nil

	case "append_row":
		if len(args) == 0 {
			return Instruction{}, fmt.Errorf("append_row wants at least one value")
		}
		values := make(Row, len(args))
		for i, a := range args {
			v, err := ParseValue(a)
			if err != nil {
				return Instruction{}, fmt.Errorf("value %d: %w", i, err)
			}
			values[i] = v
		}
		return AppendRow(values...), nil

	case "delete_col":
		if len(args) != 1 {
			return Instruction{}, fmt.Errorf("delete_col wants <name> or @<index>")
		}
		if strings.HasPrefix(args[0], "@") {
			i, err := strconv.Atoi(args[0][1:])
			if err != nil {
				return Instruction{}, fmt.Errorf("bad column index %q", args[0][1:])
			}
			return DeleteColumn(IndexID(i)), nil
		}
		return DeleteColumn(NameID(unquote(args[0]))), nil

	case "delete_row":
		if len(args) != 1 {
			return Instruction{}, fmt.Errorf("delete_row wants <index>")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return Instruction{}, fmt.Errorf("bad row index %q", args[0])
		}
		return DeleteRow(i), nil

	case "fetch":
		if len(args) != 2 {
			return Instruction{}, fmt.Errorf("fetch wants <row> <col>")
		}
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return Instruction{}, fmt.Errorf("bad row index %q", args[0])
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return Instruction{}, fmt.Errorf("bad column index %q", args[1])
		}
		return Fetch(row, col), nil

	default:
		return Instruction{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// ParseValue parses a single value literal.
//
// Supports:
//   - null:      null / NULL
//   - int32:     42, -7
//   - int64:     42l (trailing 'l')
//   - float64:   3.14, 1e3
//   - float32:   3.14f (trailing 'f')
//   - text:      `hello world`  (backticks, may contain spaces)
//
// Anything that is none of the above is taken as plain text, so bare words
// work without quoting.
func ParseValue(tok string) (Value, error) {
	s := strings.TrimSpace(tok)
	if s == "" {
		return Value{}, fmt.Errorf("empty value literal")
	}

	if s == "null" || s == "NULL" {
		return Value{Kind: KindNull}, nil
	}

	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return Value{Kind: KindText, S: s[1 : len(s)-1]}, nil
	}

	// Suffixed numerics first, so "5l" does not fall through to text.
	if len(s) > 1 {
		switch s[len(s)-1] {
		case 'l':
			if i, err := strconv.ParseInt(s[:len(s)-1], 10, 64); err == nil {
				return Value{Kind: KindInt64, I64: i}, nil
			}
		case 'f':
			if f, err := strconv.ParseFloat(s[:len(s)-1], 32); err == nil {
				return Value{Kind: KindFloat32, F32: float32(f)}, nil
			}
		}
	}

	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return Value{Kind: KindInt32, I32: int32(i)}, nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Value{Kind: KindFloat64, F64: f}, nil
	}

	return Value{Kind: KindText, S: s}, nil
}

// splitFields splits a command line on whitespace while keeping
// backtick-quoted text together.
func splitFields(line string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuote := false

	for _, r := range line {
		switch {
		case r == '`':
			inQuote = !inQuote
			cur.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t'):
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated ` quote")
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return s[1 : len(s)-1]
	}
	return s
}
