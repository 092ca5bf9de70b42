package filestore

import (
	"encoding/binary"
	"fmt"
	"io"

	"tdb/internal/table"
)

const (
	fileMagic     = "TDB1" // 4 bytes magic
	formatVersion = 1
)

// Layout:
//
//	[header][rows][checksum]
//
// Header:
//
//	magic:    4 bytes "TDB1"
//	version:  uint8 (currently 1)
//	numCols:  uint16
//	per column:
//	  nameLen:     uint16
//	  name:        nameLen bytes (UTF-8)
//	  restriction: uint8 (table.DataType)
//
// Rows:
//
//	numRows: uint32
//	For each row, for each column:
//	  kind: uint8 (table.Kind, distinguishes NULL from typed payloads)
//	  payload (depends on kind):
//	    INT32:   int32 (little endian)
//	    INT64:   int64 (little endian)
//	    FLOAT32: float32 (little endian)
//	    FLOAT64: float64 (little endian)
//	    TEXT:    uint32 length + bytes
//	    NULL:    no payload
//
// Checksum:
//
//	xxh3 64-bit hash of header+rows, little endian.

// writeHeader writes the schema to the beginning of the encoding.
func writeHeader(w io.Writer, cols []table.Column) error {
	if len(cols) > 0xFFFF {
		return fmt.Errorf("too many columns: %d", len(cols))
	}
	if _, err := w.Write([]byte(fileMagic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(formatVersion)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(cols))); err != nil {
		return err
	}

	for _, c := range cols {
		nameBytes := []byte(c.Name())
		if len(nameBytes) > 0xFFFF {
			return fmt.Errorf("column name too long: %s", c.Name())
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(nameBytes))); err != nil {
			return err
		}
		if _, err := w.Write(nameBytes); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(c.Restriction())); err != nil {
			return err
		}
	}

	return nil
}

// readHeader reads the schema and leaves the reader positioned at the row
// count.
func readHeader(r io.Reader) ([]table.Column, error) {
	magicBuf := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(r, magicBuf); err != nil {
		return nil, fmt.Errorf("truncated magic: %w", err)
	}
	if string(magicBuf) != fileMagic {
		return nil, fmt.Errorf("invalid file magic %q", magicBuf)
	}

	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("truncated version: %w", err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", version)
	}

	var numCols uint16
	if err := binary.Read(r, binary.LittleEndian, &numCols); err != nil {
		return nil, fmt.Errorf("truncated column count: %w", err)
	}

	cols := make([]table.Column, numCols)
	for i := 0; i < int(numCols); i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, fmt.Errorf("column %d: truncated name length: %w", i, err)
		}

		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return nil, fmt.Errorf("column %d: truncated name: %w", i, err)
		}

		var t uint8
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return nil, fmt.Errorf("column %d: truncated restriction: %w", i, err)
		}
		if t > uint8(table.TypeText) {
			return nil, fmt.Errorf("column %d: unknown data type tag %d", i, t)
		}

		cols[i] = table.NewColumn(string(nameBytes), table.DataType(t))
	}

	return cols, nil
}

// writeRow encodes a row as a sequence of kind-tagged values.
func writeRow(w io.Writer, row table.Row) error {
	for _, v := range row {
		if err := binary.Write(w, binary.LittleEndian, uint8(v.Kind)); err != nil {
			return err
		}

		switch v.Kind {
		case table.KindInt32:
			if err := binary.Write(w, binary.LittleEndian, v.I32); err != nil {
				return err
			}
		case table.KindInt64:
			if err := binary.Write(w, binary.LittleEndian, v.I64); err != nil {
				return err
			}
		case table.KindFloat32:
			if err := binary.Write(w, binary.LittleEndian, v.F32); err != nil {
				return err
			}
		case table.KindFloat64:
			if err := binary.Write(w, binary.LittleEndian, v.F64); err != nil {
				return err
			}
		case table.KindText:
			b := []byte(v.S)
			if uint64(len(b)) > 0xFFFFFFFF {
				return fmt.Errorf("text value too long: %d bytes", len(b))
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
				return err
			}
			if _, err := w.Write(b); err != nil {
				return err
			}
		case table.KindNull:
			// nothing else to write
		default:
			return fmt.Errorf("unsupported value kind %d", v.Kind)
		}
	}

	return nil
}

// readRow decodes a row with the given number of columns.
func readRow(r io.Reader, numCols int) (table.Row, error) {
	row := make(table.Row, numCols)

	for i := 0; i < numCols; i++ {
		var k uint8
		if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
			return nil, fmt.Errorf("value %d: truncated kind: %w", i, err)
		}

		switch table.Kind(k) {
		case table.KindInt32:
			var v int32
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("value %d: truncated int32: %w", i, err)
			}
			row[i] = table.Value{Kind: table.KindInt32, I32: v}

		case table.KindInt64:
			var v int64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("value %d: truncated int64: %w", i, err)
			}
			row[i] = table.Value{Kind: table.KindInt64, I64: v}

		case table.KindFloat32:
			var v float32
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("value %d: truncated float32: %w", i, err)
			}
			row[i] = table.Value{Kind: table.KindFloat32, F32: v}

		case table.KindFloat64:
			var v float64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("value %d: truncated float64: %w", i, err)
			}
			row[i] = table.Value{Kind: table.KindFloat64, F64: v}

		case table.KindText:
			var l uint32
			if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
				return nil, fmt.Errorf("value %d: truncated text length: %w", i, err)
			}
			buf := make([]byte, l)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("value %d: truncated text: %w", i, err)
			}
			row[i] = table.Value{Kind: table.KindText, S: string(buf)}

		case table.KindNull:
			row[i] = table.Value{Kind: table.KindNull}

		default:
			return nil, fmt.Errorf("value %d: unknown kind tag %d", i, k)
		}
	}

	return row, nil
}
