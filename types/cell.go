package types

import "encoding/json"

// Cell is a cell as returned by cell queries. It has exactly the shape
// of a CellOutput.
type Cell = CellOutput

// CellIncludingOutPoint is a cell projection that carries the cell's
// location instead of its type script.
type CellIncludingOutPoint struct {
	Capacity Uint
	Lock     Script
	OutPoint Option[OutPoint]
}

// ProjectCell builds a CellIncludingOutPoint from a cell and where it
// lives. Nothing absent from the inputs is filled in.
func ProjectCell(c Cell, at Option[OutPoint]) CellIncludingOutPoint {
	return CellIncludingOutPoint{Capacity: c.Capacity, Lock: c.Lock, OutPoint: at}
}

type cellIncludingOutPointWire struct {
	Capacity *string         `json:"capacity" validate:"required"`
	Lock     json.RawMessage `json:"lock" validate:"required"`
	OutPoint json.RawMessage `json:"outPoint"`
}

func decodeCellIncludingOutPoint(data []byte) (CellIncludingOutPoint, error) {
	var w cellIncludingOutPointWire
	r := readWire("CellIncludingOutPoint", data, &w)
	c := CellIncludingOutPoint{
		Capacity: r.uint("capacity", w.Capacity),
		Lock:     object(r, "lock", w.Lock, decodeScript),
		OutPoint: optional(r, "outPoint", w.OutPoint, decodeOutPoint),
	}
	if r.err != nil {
		return CellIncludingOutPoint{}, r.err
	}
	return c, nil
}

func (c *CellIncludingOutPoint) UnmarshalJSON(data []byte) error {
	return assign(c, decodeCellIncludingOutPoint, data)
}

func (c CellIncludingOutPoint) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, cellIncludingOutPointWire{
		Capacity: hexUint(c.Capacity),
		Lock:     w.raw(c.Lock),
		OutPoint: rawOption(&w, c.OutPoint),
	})
}

// LiveCellByLockHash is a live cell found through its lock hash index.
type LiveCellByLockHash struct {
	CellOutput CellOutput
	CreatedBy  TransactionPoint
}

type liveCellByLockHashWire struct {
	CellOutput json.RawMessage `json:"cellOutput" validate:"required"`
	CreatedBy  json.RawMessage `json:"createdBy" validate:"required"`
}

func decodeLiveCellByLockHash(data []byte) (LiveCellByLockHash, error) {
	var w liveCellByLockHashWire
	r := readWire("LiveCellByLockHash", data, &w)
	c := LiveCellByLockHash{
		CellOutput: object(r, "cellOutput", w.CellOutput, decodeCellOutput),
		CreatedBy:  object(r, "createdBy", w.CreatedBy, decodeTransactionPoint),
	}
	if r.err != nil {
		return LiveCellByLockHash{}, r.err
	}
	return c, nil
}

func (c *LiveCellByLockHash) UnmarshalJSON(data []byte) error {
	return assign(c, decodeLiveCellByLockHash, data)
}

func (c LiveCellByLockHash) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, liveCellByLockHashWire{
		CellOutput: w.raw(c.CellOutput),
		CreatedBy:  w.raw(c.CreatedBy),
	})
}

// Located projects the cell together with the out point it was
// created at.
func (c LiveCellByLockHash) Located() CellIncludingOutPoint {
	return ProjectCell(c.CellOutput, Some(c.CreatedBy.OutPoint()))
}

// CellWithStatus is the result of a live cell lookup. Cell is None
// unless Status is live.
type CellWithStatus struct {
	Cell   Option[Cell]
	Status CellStatus
}

type cellWithStatusWire struct {
	Cell   json.RawMessage `json:"cell"`
	Status *string         `json:"status" validate:"required"`
}

func decodeCellWithStatus(data []byte) (CellWithStatus, error) {
	var w cellWithStatusWire
	r := readWire("CellWithStatus", data, &w)
	c := CellWithStatus{
		Cell:   optional(r, "cell", w.Cell, decodeCellOutput),
		Status: r.cellStatus("status", w.Status),
	}
	if r.err != nil {
		return CellWithStatus{}, r.err
	}
	return c, nil
}

func (c *CellWithStatus) UnmarshalJSON(data []byte) error {
	return assign(c, decodeCellWithStatus, data)
}

func (c CellWithStatus) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, cellWithStatusWire{
		Cell:   rawOption(&w, c.Cell),
		Status: w.enum("CellWithStatus", "status", c.Status),
	})
}
