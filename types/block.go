package types

import (
	"encoding/json"

	"github.com/blockberries/ckb"
)

// Seal is the proof-of-work solution of a header.
type Seal struct {
	Nonce Uint
	Proof Bytes
}

type sealWire struct {
	Nonce *string `json:"nonce" validate:"required"`
	Proof *string `json:"proof" validate:"required"`
}

func decodeSeal(data []byte) (Seal, error) {
	var w sealWire
	r := readWire("Seal", data, &w)
	s := Seal{
		Nonce: r.uint("nonce", w.Nonce),
		Proof: r.bytes("proof", w.Proof),
	}
	if r.err != nil {
		return Seal{}, r.err
	}
	return s, nil
}

func (s *Seal) UnmarshalJSON(data []byte) error { return assign(s, decodeSeal, data) }

func (s Seal) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, sealWire{
		Nonce: hexUint(s.Nonce),
		Proof: hexBytes(s.Proof),
	})
}

// BlockHeader is the metadata of a block. Ordering between headers is
// a chain rule and is not checked here.
type BlockHeader struct {
	Dao              Bytes
	Difficulty       Uint
	Epoch            Uint
	Hash             Hash
	Number           Uint
	ParentHash       Hash
	ProposalsHash    Hash
	Seal             Seal
	Timestamp        Uint
	TransactionsRoot Hash
	UnclesCount      Uint
	UnclesHash       Hash
	WitnessesRoot    Hash
	Version          Uint
}

type blockHeaderWire struct {
	Dao              *string         `json:"dao" validate:"required"`
	Difficulty       *string         `json:"difficulty" validate:"required"`
	Epoch            *string         `json:"epoch" validate:"required"`
	Hash             *string         `json:"hash" validate:"required"`
	Number           *string         `json:"number" validate:"required"`
	ParentHash       *string         `json:"parentHash" validate:"required"`
	ProposalsHash    *string         `json:"proposalsHash" validate:"required"`
	Seal             json.RawMessage `json:"seal" validate:"required"`
	Timestamp        *string         `json:"timestamp" validate:"required"`
	TransactionsRoot *string         `json:"transactionsRoot" validate:"required"`
	UnclesCount      *string         `json:"unclesCount" validate:"required"`
	UnclesHash       *string         `json:"unclesHash" validate:"required"`
	WitnessesRoot    *string         `json:"witnessesRoot" validate:"required"`
	Version          *string         `json:"version" validate:"required"`
}

func decodeBlockHeader(data []byte) (BlockHeader, error) {
	var w blockHeaderWire
	r := readWire("BlockHeader", data, &w)
	h := BlockHeader{
		Dao:              r.bytes("dao", w.Dao),
		Difficulty:       r.uint("difficulty", w.Difficulty),
		Epoch:            r.uint("epoch", w.Epoch),
		Hash:             r.hash("hash", w.Hash),
		Number:           r.uint("number", w.Number),
		ParentHash:       r.hash("parentHash", w.ParentHash),
		ProposalsHash:    r.hash("proposalsHash", w.ProposalsHash),
		Seal:             object(r, "seal", w.Seal, decodeSeal),
		Timestamp:        r.uint("timestamp", w.Timestamp),
		TransactionsRoot: r.hash("transactionsRoot", w.TransactionsRoot),
		UnclesCount:      r.uint("unclesCount", w.UnclesCount),
		UnclesHash:       r.hash("unclesHash", w.UnclesHash),
		WitnessesRoot:    r.hash("witnessesRoot", w.WitnessesRoot),
		Version:          r.uint("version", w.Version),
	}
	if r.err != nil {
		return BlockHeader{}, r.err
	}
	return h, nil
}

func (h *BlockHeader) UnmarshalJSON(data []byte) error {
	return assign(h, decodeBlockHeader, data)
}

func (h BlockHeader) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, blockHeaderWire{
		Dao:              hexBytes(h.Dao),
		Difficulty:       hexUint(h.Difficulty),
		Epoch:            hexUint(h.Epoch),
		Hash:             hexHash(h.Hash),
		Number:           hexUint(h.Number),
		ParentHash:       hexHash(h.ParentHash),
		ProposalsHash:    hexHash(h.ProposalsHash),
		Seal:             w.raw(h.Seal),
		Timestamp:        hexUint(h.Timestamp),
		TransactionsRoot: hexHash(h.TransactionsRoot),
		UnclesCount:      hexUint(h.UnclesCount),
		UnclesHash:       hexHash(h.UnclesHash),
		WitnessesRoot:    hexHash(h.WitnessesRoot),
		Version:          hexUint(h.Version),
	})
}

// EpochFraction unpacks the header's epoch field.
func (h BlockHeader) EpochFraction() (EpochNumberWithFraction, error) {
	v, ok := h.Epoch.Uint64()
	if !ok {
		return EpochNumberWithFraction{}, invalid("BlockHeader", "epoch", "wider than 64 bits")
	}
	return DecodeEpoch(v), nil
}

// UncleBlock is a stale block referenced by a later one.
type UncleBlock struct {
	Header    BlockHeader
	Proposals []ProposalShortID
}

type uncleBlockWire struct {
	Header    json.RawMessage `json:"header" validate:"required"`
	Proposals []string        `json:"proposals" validate:"required"`
}

func decodeUncleBlock(data []byte) (UncleBlock, error) {
	var w uncleBlockWire
	r := readWire("UncleBlock", data, &w)
	u := UncleBlock{
		Header:    object(r, "header", w.Header, decodeBlockHeader),
		Proposals: r.shortIDList("proposals", w.Proposals),
	}
	if r.err != nil {
		return UncleBlock{}, r.err
	}
	return u, nil
}

func (u *UncleBlock) UnmarshalJSON(data []byte) error { return assign(u, decodeUncleBlock, data) }

func (u UncleBlock) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, uncleBlockWire{
		Header:    w.raw(u.Header),
		Proposals: shortIDHexList(u.Proposals),
	})
}

// Block is a header with its uncles, transactions and proposals.
// Transactions[0] is the cellbase.
type Block struct {
	Header       BlockHeader
	Uncles       []UncleBlock
	Transactions []Transaction
	Proposals    []ProposalShortID
}

type blockWire struct {
	Header       json.RawMessage   `json:"header" validate:"required"`
	Uncles       []json.RawMessage `json:"uncles" validate:"required"`
	Transactions []json.RawMessage `json:"transactions" validate:"required"`
	Proposals    []string          `json:"proposals" validate:"required"`
}

func decodeBlock(data []byte) (Block, error) {
	var w blockWire
	r := readWire("Block", data, &w)
	b := Block{
		Header:       object(r, "header", w.Header, decodeBlockHeader),
		Uncles:       list(r, "uncles", w.Uncles, decodeUncleBlock),
		Transactions: list(r, "transactions", w.Transactions, decodeTransaction),
		Proposals:    r.shortIDList("proposals", w.Proposals),
	}
	if r.err != nil {
		return Block{}, r.err
	}
	return b, nil
}

func (b *Block) UnmarshalJSON(data []byte) error { return assign(b, decodeBlock, data) }

func (b Block) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, blockWire{
		Header:       w.raw(b.Header),
		Uncles:       rawList(&w, b.Uncles),
		Transactions: rawList(&w, b.Transactions),
		Proposals:    shortIDHexList(b.Proposals),
	})
}

// Cellbase returns the block's first transaction.
func (b Block) Cellbase() (Transaction, bool) {
	if len(b.Transactions) == 0 {
		return Transaction{}, false
	}
	return b.Transactions[0], true
}

// TransactionByHash finds a transaction of the block by its hash.
func (b Block) TransactionByHash(h Hash) (Transaction, error) {
	for _, tx := range b.Transactions {
		if tx.Hash() == h {
			return tx, nil
		}
	}
	return Transaction{}, ckb.NewError(ckb.KindValidation, h.Hex(), "transaction not in block")
}

func shortIDHexList(ids []ProposalShortID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
