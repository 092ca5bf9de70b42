package engine

import (
	"fmt"

	"tdb/internal/table"
)

// ResponseKind tags the payload of a successful operation.
type ResponseKind uint8

const (
	// ResponseIndex carries the index an append or delete acted on.
	ResponseIndex ResponseKind = iota
	// ResponseValue carries the single value a fetch returned.
	ResponseValue
)

// Response is the success payload of Query, tagged by the operation kind.
type Response struct {
	Kind  ResponseKind
	Index int
	Value table.Value
}

func (r Response) String() string {
	if r.Kind == ResponseValue {
		return fmt.Sprintf("returned single value: %s", r.Value)
	}
	return fmt.Sprintf("ok at index %d", r.Index)
}

// Query applies one instruction to the database. It is the uniform entry
// point every operation is reachable through, which is what a layer that
// wants to log, replay, or transmit operations would hook.
func (db *DB) Query(in table.Instruction) (Response, error) {
	switch in.Op {
	case table.OpDeleteColumn:
		var (
			i   int
			err error
		)
		if in.Target.ByName {
			i, err = db.DeleteColumnByName(in.Target.Name)
		} else {
			i, err = db.DeleteColumnByIndex(in.Target.Index)
		}
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: ResponseIndex, Index: i}, nil

	case table.OpDeleteRow:
		i, err := db.DeleteRowByIndex(in.Index)
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: ResponseIndex, Index: i}, nil

	case table.OpAppendRow:
		i, err := db.AppendRow(in.Values)
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: ResponseIndex, Index: i}, nil

	case table.OpAppendColumn:
		i, err := db.AppendColumn(in.Name, in.Restriction)
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: ResponseIndex, Index: i}, nil

	case table.OpFetch:
		v, err := db.FetchValue(in.Row, in.Col)
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: ResponseValue, Value: v}, nil

	default:
		return Response{}, fmt.Errorf("unknown instruction op %d", in.Op)
	}
}
