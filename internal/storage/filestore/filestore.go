package filestore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"tdb/internal/engine"
	"tdb/internal/storage"
	"tdb/internal/table"
)

// Codec is the binary whole-table codec. Encoding is deterministic and
// order-preserving, so Decode(Encode(db)) reproduces db exactly.
type Codec struct{}

var _ storage.Codec = Codec{}

// Encode serializes db, appending an xxh3 checksum so corruption is
// detected on decode instead of producing a scrambled table.
func (Codec) Encode(db *engine.DB) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeHeader(&buf, db.Columns()); err != nil {
		return nil, err
	}

	rows := db.Rows()
	if uint64(len(rows)) > 0xFFFFFFFF {
		return nil, fmt.Errorf("too many rows: %d", len(rows))
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(rows))); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writeRow(&buf, row); err != nil {
			return nil, err
		}
	}

	sum := xxh3.Hash(buf.Bytes())
	if err := binary.Write(&buf, binary.LittleEndian, sum); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses an encoded table. Every failure is a *storage.LoadError
// of kind Malformed: by the time Decode runs, the bytes have already been
// read, so nothing here is retry-worthy.
func (Codec) Decode(data []byte) (*engine.DB, error) {
	if len(data) < 8 {
		return nil, storage.Malformed(fmt.Errorf("too short: %d bytes", len(data)))
	}

	payload := data[:len(data)-8]
	want := binary.LittleEndian.Uint64(data[len(data)-8:])
	if got := xxh3.Hash(payload); got != want {
		return nil, storage.Malformed(fmt.Errorf("checksum mismatch: computed %016x, stored %016x", got, want))
	}

	r := bytes.NewReader(payload)

	cols, err := readHeader(r)
	if err != nil {
		return nil, storage.Malformed(err)
	}

	var numRows uint32
	if err := binary.Read(r, binary.LittleEndian, &numRows); err != nil {
		return nil, storage.Malformed(fmt.Errorf("truncated row count: %w", err))
	}

	out := make([]table.Row, 0, numRows)
	for i := 0; i < int(numRows); i++ {
		row, err := readRow(r, len(cols))
		if err != nil {
			return nil, storage.Malformed(fmt.Errorf("row %d: %w", i, err))
		}
		out = append(out, row)
	}

	if r.Len() != 0 {
		return nil, storage.Malformed(fmt.Errorf("%d trailing bytes after last row", r.Len()))
	}

	db, err := engine.FromParts(cols, out)
	if err != nil {
		return nil, storage.Malformed(err)
	}
	return db, nil
}

// Save encodes db and overwrites path with it. Persistence is whole-file:
// there is no incremental or append mode.
func Save(path string, db *engine.DB) error {
	data, err := Codec{}.Encode(db)
	if err != nil {
		return errors.Wrap(err, "encode")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// Load reads path and decodes it. Read failures come back as IO-kind
// load errors (worth retrying), decode failures as Malformed (not).
func Load(path string) (*engine.DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, storage.IO(err)
	}
	return Codec{}.Decode(data)
}
