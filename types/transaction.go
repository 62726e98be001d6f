package types

import (
	"encoding/json"

	"github.com/blockberries/ckb"
)

// OutPoint identifies a cell by the transaction that created it and
// the output position inside that transaction.
type OutPoint struct {
	TxHash Hash
	Index  Uint
}

type outPointWire struct {
	TxHash *string `json:"txHash" validate:"required"`
	Index  *string `json:"index" validate:"required"`
}

func decodeOutPoint(data []byte) (OutPoint, error) {
	var w outPointWire
	r := readWire("OutPoint", data, &w)
	o := OutPoint{
		TxHash: r.hash("txHash", w.TxHash),
		Index:  r.uint("index", w.Index),
	}
	if r.err != nil {
		return OutPoint{}, r.err
	}
	return o, nil
}

func (o *OutPoint) UnmarshalJSON(data []byte) error { return assign(o, decodeOutPoint, data) }

func (o OutPoint) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, outPointWire{
		TxHash: hexHash(o.TxHash),
		Index:  hexUint(o.Index),
	})
}

// CellInput consumes a live cell. PreviousOutput is None only for the
// cellbase input.
type CellInput struct {
	PreviousOutput Option[OutPoint]
	Since          Uint
}

type cellInputWire struct {
	PreviousOutput json.RawMessage `json:"previousOutput"`
	Since          *string         `json:"since" validate:"required"`
}

func decodeCellInput(data []byte) (CellInput, error) {
	var w cellInputWire
	r := readWire("CellInput", data, &w)
	in := CellInput{
		PreviousOutput: optional(r, "previousOutput", w.PreviousOutput, decodeOutPoint),
		Since:          r.uintOrZero("since", w.Since),
	}
	if r.err != nil {
		return CellInput{}, r.err
	}
	return in, nil
}

func (in *CellInput) UnmarshalJSON(data []byte) error { return assign(in, decodeCellInput, data) }

func (in CellInput) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, cellInputWire{
		PreviousOutput: rawOption(&w, in.PreviousOutput),
		Since:          hexUint(in.Since),
	})
}

// DecodeSince interprets the input's since field.
func (in CellInput) DecodeSince() (Since, error) {
	s, err := DecodeSince(in.Since)
	if err != nil {
		return Since{}, ckb.Locate(err, "CellInput", "since")
	}
	return s, nil
}

// CellOutput creates a cell holding Capacity shannons, owned by Lock.
type CellOutput struct {
	Capacity Uint
	Lock     Script
	Type     Option[Script]
}

type cellOutputWire struct {
	Capacity *string         `json:"capacity" validate:"required"`
	Lock     json.RawMessage `json:"lock" validate:"required"`
	Type     json.RawMessage `json:"type"`
}

func decodeCellOutput(data []byte) (CellOutput, error) {
	var w cellOutputWire
	r := readWire("CellOutput", data, &w)
	out := CellOutput{
		Capacity: r.uint("capacity", w.Capacity),
		Lock:     object(r, "lock", w.Lock, decodeScript),
		Type:     optional(r, "type", w.Type, decodeScript),
	}
	if r.err != nil {
		return CellOutput{}, r.err
	}
	return out, nil
}

func (out *CellOutput) UnmarshalJSON(data []byte) error {
	return assign(out, decodeCellOutput, data)
}

func (out CellOutput) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, cellOutputWire{
		Capacity: hexUint(out.Capacity),
		Lock:     w.raw(out.Lock),
		Type:     rawOption(&w, out.Type),
	})
}

// CellDep makes a cell's data (or, for a dep group, the cells it
// lists) available to the transaction's scripts.
type CellDep struct {
	OutPoint   Option[OutPoint]
	IsDepGroup bool
}

type cellDepWire struct {
	OutPoint   json.RawMessage `json:"outPoint"`
	IsDepGroup *bool           `json:"isDepGroup" validate:"required"`
}

func decodeCellDep(data []byte) (CellDep, error) {
	var w cellDepWire
	r := readWire("CellDep", data, &w)
	d := CellDep{
		OutPoint:   optional(r, "outPoint", w.OutPoint, decodeOutPoint),
		IsDepGroup: r.boolean("isDepGroup", w.IsDepGroup),
	}
	if r.err != nil {
		return CellDep{}, r.err
	}
	return d, nil
}

func (d *CellDep) UnmarshalJSON(data []byte) error { return assign(d, decodeCellDep, data) }

func (d CellDep) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, cellDepWire{
		OutPoint:   rawOption(&w, d.OutPoint),
		IsDepGroup: ptr(d.IsDepGroup),
	})
}

// Witness carries the unlocking data for one input.
type Witness struct {
	Data []Bytes
}

type witnessWire struct {
	Data []string `json:"data" validate:"required"`
}

func decodeWitness(data []byte) (Witness, error) {
	var w witnessWire
	r := readWire("Witness", data, &w)
	wit := Witness{Data: r.bytesList("data", w.Data)}
	if r.err != nil {
		return Witness{}, r.err
	}
	return wit, nil
}

func (wit *Witness) UnmarshalJSON(data []byte) error { return assign(wit, decodeWitness, data) }

func (wit Witness) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, witnessWire{Data: hexBytesList(wit.Data)})
}

// RawTransaction is the transaction body without its identity. The
// order of every list is significant.
type RawTransaction struct {
	Version     Uint
	CellDeps    []CellDep
	HeaderDeps  []Hash
	Inputs      []CellInput
	Outputs     []CellOutput
	Witnesses   []Witness
	OutputsData []Bytes
}

type rawTransactionWire struct {
	Version     *string           `json:"version" validate:"required"`
	CellDeps    []json.RawMessage `json:"cellDeps" validate:"required"`
	HeaderDeps  []string          `json:"headerDeps" validate:"required"`
	Inputs      []json.RawMessage `json:"inputs" validate:"required"`
	Outputs     []json.RawMessage `json:"outputs" validate:"required"`
	Witnesses   []json.RawMessage `json:"witnesses" validate:"required"`
	OutputsData []string          `json:"outputsData" validate:"required"`
}

func (r *reader) rawTransaction(w *rawTransactionWire) RawTransaction {
	return RawTransaction{
		Version:     r.uint("version", w.Version),
		CellDeps:    list(r, "cellDeps", w.CellDeps, decodeCellDep),
		HeaderDeps:  r.hashList("headerDeps", w.HeaderDeps),
		Inputs:      list(r, "inputs", w.Inputs, decodeCellInput),
		Outputs:     list(r, "outputs", w.Outputs, decodeCellOutput),
		Witnesses:   list(r, "witnesses", w.Witnesses, decodeWitness),
		OutputsData: r.bytesList("outputsData", w.OutputsData),
	}
}

func (w *writer) rawTransaction(tx RawTransaction) rawTransactionWire {
	return rawTransactionWire{
		Version:     hexUint(tx.Version),
		CellDeps:    rawList(w, tx.CellDeps),
		HeaderDeps:  hexHashList(tx.HeaderDeps),
		Inputs:      rawList(w, tx.Inputs),
		Outputs:     rawList(w, tx.Outputs),
		Witnesses:   rawList(w, tx.Witnesses),
		OutputsData: hexBytesList(tx.OutputsData),
	}
}

func decodeRawTransaction(data []byte) (RawTransaction, error) {
	var w rawTransactionWire
	r := readWire("RawTransaction", data, &w)
	tx := r.rawTransaction(&w)
	if r.err != nil {
		return RawTransaction{}, r.err
	}
	return tx, nil
}

func (tx *RawTransaction) UnmarshalJSON(data []byte) error {
	return assign(tx, decodeRawTransaction, data)
}

func (tx RawTransaction) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, w.rawTransaction(tx))
}

// TxHasher derives a transaction's identity from its body.
type TxHasher interface {
	TransactionHash(tx RawTransaction) (Hash, error)
}

// Transaction is a RawTransaction together with its hash. The hash is
// either read from the wire or derived by NewTransaction; it cannot be
// set independently of the body.
type Transaction struct {
	RawTransaction
	hash Hash
}

// NewTransaction derives the hash of raw with h.
func NewTransaction(raw RawTransaction, h TxHasher) (Transaction, error) {
	if h == nil {
		return Transaction{}, invalid("Transaction", "hash", "no hasher")
	}
	hash, err := h.TransactionHash(raw)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{RawTransaction: raw, hash: hash}, nil
}

// Hash returns the transaction hash.
func (tx Transaction) Hash() Hash { return tx.hash }

// Raw returns the transaction body.
func (tx Transaction) Raw() RawTransaction { return tx.RawTransaction }

type transactionWire struct {
	rawTransactionWire
	Hash *string `json:"hash" validate:"required"`
}

func decodeTransaction(data []byte) (Transaction, error) {
	var w transactionWire
	r := readWire("Transaction", data, &w)
	tx := Transaction{RawTransaction: r.rawTransaction(&w.rawTransactionWire)}
	tx.hash = r.hash("hash", w.Hash)
	if r.err != nil {
		return Transaction{}, r.err
	}
	return tx, nil
}

func (tx *Transaction) UnmarshalJSON(data []byte) error {
	return assign(tx, decodeTransaction, data)
}

func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, transactionWire{
		rawTransactionWire: w.rawTransaction(tx.RawTransaction),
		Hash:               hexHash(tx.hash),
	})
}

// TxStatus is a transaction's pool or chain status. BlockHash is set
// once the transaction is committed.
type TxStatus struct {
	BlockHash Option[Hash]
	Status    TransactionStatus
}

type txStatusWire struct {
	BlockHash *string `json:"blockHash"`
	Status    *string `json:"status" validate:"required"`
}

func decodeTxStatus(data []byte) (TxStatus, error) {
	var w txStatusWire
	r := readWire("TxStatus", data, &w)
	s := TxStatus{
		BlockHash: r.optionalHash("blockHash", w.BlockHash),
		Status:    r.txStatus("status", w.Status),
	}
	if r.err != nil {
		return TxStatus{}, r.err
	}
	return s, nil
}

func (s *TxStatus) UnmarshalJSON(data []byte) error { return assign(s, decodeTxStatus, data) }

func (s TxStatus) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, txStatusWire{
		BlockHash: optionalHex(s.BlockHash),
		Status:    w.enum("TxStatus", "status", s.Status),
	})
}

// TransactionWithStatus is the result of a transaction lookup.
type TransactionWithStatus struct {
	Transaction Transaction
	TxStatus    TxStatus
}

type transactionWithStatusWire struct {
	Transaction json.RawMessage `json:"transaction" validate:"required"`
	TxStatus    json.RawMessage `json:"txStatus" validate:"required"`
}

func decodeTransactionWithStatus(data []byte) (TransactionWithStatus, error) {
	var w transactionWithStatusWire
	r := readWire("TransactionWithStatus", data, &w)
	v := TransactionWithStatus{
		Transaction: object(r, "transaction", w.Transaction, decodeTransaction),
		TxStatus:    object(r, "txStatus", w.TxStatus, decodeTxStatus),
	}
	if r.err != nil {
		return TransactionWithStatus{}, r.err
	}
	return v, nil
}

func (v *TransactionWithStatus) UnmarshalJSON(data []byte) error {
	return assign(v, decodeTransactionWithStatus, data)
}

func (v TransactionWithStatus) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, transactionWithStatusWire{
		Transaction: w.raw(v.Transaction),
		TxStatus:    w.raw(v.TxStatus),
	})
}

// TransactionPoint locates a transaction output on chain.
type TransactionPoint struct {
	BlockNumber Uint
	Index       Uint
	TxHash      Hash
}

type transactionPointWire struct {
	BlockNumber *string `json:"blockNumber" validate:"required"`
	Index       *string `json:"index" validate:"required"`
	TxHash      *string `json:"txHash" validate:"required"`
}

func decodeTransactionPoint(data []byte) (TransactionPoint, error) {
	var w transactionPointWire
	r := readWire("TransactionPoint", data, &w)
	p := TransactionPoint{
		BlockNumber: r.uint("blockNumber", w.BlockNumber),
		Index:       r.uint("index", w.Index),
		TxHash:      r.hash("txHash", w.TxHash),
	}
	if r.err != nil {
		return TransactionPoint{}, r.err
	}
	return p, nil
}

func (p *TransactionPoint) UnmarshalJSON(data []byte) error {
	return assign(p, decodeTransactionPoint, data)
}

func (p TransactionPoint) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, transactionPointWire{
		BlockNumber: hexUint(p.BlockNumber),
		Index:       hexUint(p.Index),
		TxHash:      hexHash(p.TxHash),
	})
}

// OutPoint returns the cell the point refers to.
func (p TransactionPoint) OutPoint() OutPoint {
	return OutPoint{TxHash: p.TxHash, Index: p.Index}
}

// TransactionByLockHash records where a cell owned by a lock was
// created and, if spent, consumed.
type TransactionByLockHash struct {
	ConsumedBy Option[TransactionPoint]
	CreatedBy  TransactionPoint
}

type transactionByLockHashWire struct {
	ConsumedBy json.RawMessage `json:"consumedBy"`
	CreatedBy  json.RawMessage `json:"createdBy" validate:"required"`
}

func decodeTransactionByLockHash(data []byte) (TransactionByLockHash, error) {
	var w transactionByLockHashWire
	r := readWire("TransactionByLockHash", data, &w)
	v := TransactionByLockHash{
		ConsumedBy: optional(r, "consumedBy", w.ConsumedBy, decodeTransactionPoint),
		CreatedBy:  object(r, "createdBy", w.CreatedBy, decodeTransactionPoint),
	}
	if r.err != nil {
		return TransactionByLockHash{}, r.err
	}
	return v, nil
}

func (v *TransactionByLockHash) UnmarshalJSON(data []byte) error {
	return assign(v, decodeTransactionByLockHash, data)
}

func (v TransactionByLockHash) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, transactionByLockHashWire{
		ConsumedBy: rawOption(&w, v.ConsumedBy),
		CreatedBy:  w.raw(v.CreatedBy),
	})
}
