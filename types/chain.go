package types

import "encoding/json"

// Chain-state records returned by node queries.

// AlertMessage is a network alert relayed by the node.
type AlertMessage struct {
	ID          Uint
	Priority    Uint
	NoticeUntil Uint
	Message     string
}

type alertMessageWire struct {
	ID          *string `json:"id" validate:"required"`
	Priority    *string `json:"priority" validate:"required"`
	NoticeUntil *string `json:"noticeUntil" validate:"required"`
	Message     *string `json:"message" validate:"required"`
}

func decodeAlertMessage(data []byte) (AlertMessage, error) {
	var w alertMessageWire
	r := readWire("AlertMessage", data, &w)
	a := AlertMessage{
		ID:          r.uint("id", w.ID),
		Priority:    r.uint("priority", w.Priority),
		NoticeUntil: r.uint("noticeUntil", w.NoticeUntil),
		Message:     r.str("message", w.Message),
	}
	if r.err != nil {
		return AlertMessage{}, r.err
	}
	return a, nil
}

func (a *AlertMessage) UnmarshalJSON(data []byte) error {
	return assign(a, decodeAlertMessage, data)
}

func (a AlertMessage) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, alertMessageWire{
		ID:          hexUint(a.ID),
		Priority:    hexUint(a.Priority),
		NoticeUntil: hexUint(a.NoticeUntil),
		Message:     ptr(a.Message),
	})
}

// BlockchainInfo summarizes the node's view of the chain.
type BlockchainInfo struct {
	IsInitialBlockDownload bool
	Epoch                  Uint
	Difficulty             Uint
	MedianTime             Uint
	Chain                  string
	Alerts                 []AlertMessage
}

type blockchainInfoWire struct {
	IsInitialBlockDownload *bool             `json:"isInitialBlockDownload" validate:"required"`
	Epoch                  *string           `json:"epoch" validate:"required"`
	Difficulty             *string           `json:"difficulty" validate:"required"`
	MedianTime             *string           `json:"medianTime" validate:"required"`
	Chain                  *string           `json:"chain" validate:"required"`
	Alerts                 []json.RawMessage `json:"alerts" validate:"required"`
}

func decodeBlockchainInfo(data []byte) (BlockchainInfo, error) {
	var w blockchainInfoWire
	r := readWire("BlockchainInfo", data, &w)
	info := BlockchainInfo{
		IsInitialBlockDownload: r.boolean("isInitialBlockDownload", w.IsInitialBlockDownload),
		Epoch:                  r.uint("epoch", w.Epoch),
		Difficulty:             r.uint("difficulty", w.Difficulty),
		MedianTime:             r.uint("medianTime", w.MedianTime),
		Chain:                  r.str("chain", w.Chain),
		Alerts:                 list(r, "alerts", w.Alerts, decodeAlertMessage),
	}
	if r.err != nil {
		return BlockchainInfo{}, r.err
	}
	return info, nil
}

func (info *BlockchainInfo) UnmarshalJSON(data []byte) error {
	return assign(info, decodeBlockchainInfo, data)
}

func (info BlockchainInfo) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, blockchainInfoWire{
		IsInitialBlockDownload: ptr(info.IsInitialBlockDownload),
		Epoch:                  hexUint(info.Epoch),
		Difficulty:             hexUint(info.Difficulty),
		MedianTime:             hexUint(info.MedianTime),
		Chain:                  ptr(info.Chain),
		Alerts:                 rawList(&w, info.Alerts),
	})
}

// NodeAddress is one advertised address of a node with its score.
type NodeAddress struct {
	Address string
	Score   Uint
}

type nodeAddressWire struct {
	Address *string `json:"address" validate:"required"`
	Score   *string `json:"score" validate:"required"`
}

func decodeNodeAddress(data []byte) (NodeAddress, error) {
	var w nodeAddressWire
	r := readWire("NodeAddress", data, &w)
	a := NodeAddress{
		Address: r.str("address", w.Address),
		Score:   r.uint("score", w.Score),
	}
	if r.err != nil {
		return NodeAddress{}, r.err
	}
	return a, nil
}

func (a *NodeAddress) UnmarshalJSON(data []byte) error {
	return assign(a, decodeNodeAddress, data)
}

func (a NodeAddress) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, nodeAddressWire{
		Address: ptr(a.Address),
		Score:   hexUint(a.Score),
	})
}

// NodeInfo describes the local node or one of its peers. IsOutbound is
// None for the local node.
type NodeInfo struct {
	Version    string
	NodeID     string
	Addresses  []NodeAddress
	IsOutbound Option[bool]
}

type nodeInfoWire struct {
	Version    *string           `json:"version" validate:"required"`
	NodeID     *string           `json:"nodeId" validate:"required"`
	Addresses  []json.RawMessage `json:"addresses" validate:"required"`
	IsOutbound *bool             `json:"isOutbound"`
}

func decodeNodeInfo(data []byte) (NodeInfo, error) {
	var w nodeInfoWire
	r := readWire("NodeInfo", data, &w)
	n := NodeInfo{
		Version:    r.str("version", w.Version),
		NodeID:     r.str("nodeId", w.NodeID),
		Addresses:  list(r, "addresses", w.Addresses, decodeNodeAddress),
		IsOutbound: r.optionalBool(w.IsOutbound),
	}
	if r.err != nil {
		return NodeInfo{}, r.err
	}
	return n, nil
}

func (n *NodeInfo) UnmarshalJSON(data []byte) error { return assign(n, decodeNodeInfo, data) }

func (n NodeInfo) MarshalJSON() ([]byte, error) {
	var w writer
	wire := nodeInfoWire{
		Version:   ptr(n.Version),
		NodeID:    ptr(n.NodeID),
		Addresses: rawList(&w, n.Addresses),
	}
	if v, ok := n.IsOutbound.Get(); ok {
		wire.IsOutbound = &v
	}
	return finish(&w, wire)
}

// PeersState is the sync state of one peer.
type PeersState struct {
	LastUpdated    Uint
	BlocksInFlight Uint
	Peer           Uint
}

type peersStateWire struct {
	LastUpdated    *string `json:"lastUpdated" validate:"required"`
	BlocksInFlight *string `json:"blocksInFlight" validate:"required"`
	Peer           *string `json:"peer" validate:"required"`
}

func decodePeersState(data []byte) (PeersState, error) {
	var w peersStateWire
	r := readWire("PeersState", data, &w)
	p := PeersState{
		LastUpdated:    r.uint("lastUpdated", w.LastUpdated),
		BlocksInFlight: r.uint("blocksInFlight", w.BlocksInFlight),
		Peer:           r.uint("peer", w.Peer),
	}
	if r.err != nil {
		return PeersState{}, r.err
	}
	return p, nil
}

func (p *PeersState) UnmarshalJSON(data []byte) error { return assign(p, decodePeersState, data) }

func (p PeersState) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, peersStateWire{
		LastUpdated:    hexUint(p.LastUpdated),
		BlocksInFlight: hexUint(p.BlocksInFlight),
		Peer:           hexUint(p.Peer),
	})
}

// TxPoolInfo summarizes the transaction pool.
type TxPoolInfo struct {
	Orphan           Uint
	Pending          Uint
	Proposed         Uint
	LastTxsUpdatedAt Uint
	TotalTxCycles    Uint
	TotalTxSize      Uint
}

type txPoolInfoWire struct {
	Orphan           *string `json:"orphan" validate:"required"`
	Pending          *string `json:"pending" validate:"required"`
	Proposed         *string `json:"proposed" validate:"required"`
	LastTxsUpdatedAt *string `json:"lastTxsUpdatedAt" validate:"required"`
	TotalTxCycles    *string `json:"totalTxCycles" validate:"required"`
	TotalTxSize      *string `json:"totalTxSize" validate:"required"`
}

func decodeTxPoolInfo(data []byte) (TxPoolInfo, error) {
	var w txPoolInfoWire
	r := readWire("TxPoolInfo", data, &w)
	p := TxPoolInfo{
		Orphan:           r.uint("orphan", w.Orphan),
		Pending:          r.uint("pending", w.Pending),
		Proposed:         r.uint("proposed", w.Proposed),
		LastTxsUpdatedAt: r.uint("lastTxsUpdatedAt", w.LastTxsUpdatedAt),
		TotalTxCycles:    r.uint("totalTxCycles", w.TotalTxCycles),
		TotalTxSize:      r.uint("totalTxSize", w.TotalTxSize),
	}
	if r.err != nil {
		return TxPoolInfo{}, r.err
	}
	return p, nil
}

func (p *TxPoolInfo) UnmarshalJSON(data []byte) error { return assign(p, decodeTxPoolInfo, data) }

func (p TxPoolInfo) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, txPoolInfoWire{
		Orphan:           hexUint(p.Orphan),
		Pending:          hexUint(p.Pending),
		Proposed:         hexUint(p.Proposed),
		LastTxsUpdatedAt: hexUint(p.LastTxsUpdatedAt),
		TotalTxCycles:    hexUint(p.TotalTxCycles),
		TotalTxSize:      hexUint(p.TotalTxSize),
	})
}

// Epoch describes one epoch of the chain.
type Epoch struct {
	Difficulty  Uint
	Length      Uint
	Number      Uint
	StartNumber Uint
}

type epochWire struct {
	Difficulty  *string `json:"difficulty" validate:"required"`
	Length      *string `json:"length" validate:"required"`
	Number      *string `json:"number" validate:"required"`
	StartNumber *string `json:"startNumber" validate:"required"`
}

func decodeEpochInfo(data []byte) (Epoch, error) {
	var w epochWire
	r := readWire("Epoch", data, &w)
	e := Epoch{
		Difficulty:  r.uint("difficulty", w.Difficulty),
		Length:      r.uint("length", w.Length),
		Number:      r.uint("number", w.Number),
		StartNumber: r.uint("startNumber", w.StartNumber),
	}
	if r.err != nil {
		return Epoch{}, r.err
	}
	return e, nil
}

func (e *Epoch) UnmarshalJSON(data []byte) error { return assign(e, decodeEpochInfo, data) }

func (e Epoch) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, epochWire{
		Difficulty:  hexUint(e.Difficulty),
		Length:      hexUint(e.Length),
		Number:      hexUint(e.Number),
		StartNumber: hexUint(e.StartNumber),
	})
}

// RunDryResult is the cost of a transaction executed without commit.
type RunDryResult struct {
	Cycles Uint
}

type runDryResultWire struct {
	Cycles *string `json:"cycles" validate:"required"`
}

func decodeRunDryResult(data []byte) (RunDryResult, error) {
	var w runDryResultWire
	r := readWire("RunDryResult", data, &w)
	res := RunDryResult{Cycles: r.uint("cycles", w.Cycles)}
	if r.err != nil {
		return RunDryResult{}, r.err
	}
	return res, nil
}

func (res *RunDryResult) UnmarshalJSON(data []byte) error {
	return assign(res, decodeRunDryResult, data)
}

func (res RunDryResult) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, runDryResultWire{Cycles: hexUint(res.Cycles)})
}

// LockHashIndexState is how far the node has indexed one lock hash.
type LockHashIndexState struct {
	BlockHash   Hash
	BlockNumber Uint
	LockHash    Hash
}

type lockHashIndexStateWire struct {
	BlockHash   *string `json:"blockHash" validate:"required"`
	BlockNumber *string `json:"blockNumber" validate:"required"`
	LockHash    *string `json:"lockHash" validate:"required"`
}

func decodeLockHashIndexState(data []byte) (LockHashIndexState, error) {
	var w lockHashIndexStateWire
	r := readWire("LockHashIndexState", data, &w)
	s := LockHashIndexState{
		BlockHash:   r.hash("blockHash", w.BlockHash),
		BlockNumber: r.uint("blockNumber", w.BlockNumber),
		LockHash:    r.hash("lockHash", w.LockHash),
	}
	if r.err != nil {
		return LockHashIndexState{}, r.err
	}
	return s, nil
}

func (s *LockHashIndexState) UnmarshalJSON(data []byte) error {
	return assign(s, decodeLockHashIndexState, data)
}

func (s LockHashIndexState) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, lockHashIndexStateWire{
		BlockHash:   hexHash(s.BlockHash),
		BlockNumber: hexUint(s.BlockNumber),
		LockHash:    hexHash(s.LockHash),
	})
}

// BannedAddress is one entry of the node's ban list.
type BannedAddress struct {
	Address   string
	BanReason string
	BanUntil  Uint
	CreatedAt Uint
}

type bannedAddressWire struct {
	Address   *string `json:"address" validate:"required"`
	BanReason *string `json:"banReason" validate:"required"`
	BanUntil  *string `json:"banUntil" validate:"required"`
	CreatedAt *string `json:"createdAt" validate:"required"`
}

func decodeBannedAddress(data []byte) (BannedAddress, error) {
	var w bannedAddressWire
	r := readWire("BannedAddress", data, &w)
	b := BannedAddress{
		Address:   r.str("address", w.Address),
		BanReason: r.str("banReason", w.BanReason),
		BanUntil:  r.uint("banUntil", w.BanUntil),
		CreatedAt: r.uint("createdAt", w.CreatedAt),
	}
	if r.err != nil {
		return BannedAddress{}, r.err
	}
	return b, nil
}

func (b *BannedAddress) UnmarshalJSON(data []byte) error {
	return assign(b, decodeBannedAddress, data)
}

func (b BannedAddress) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, bannedAddressWire{
		Address:   ptr(b.Address),
		BanReason: ptr(b.BanReason),
		BanUntil:  hexUint(b.BanUntil),
		CreatedAt: hexUint(b.CreatedAt),
	})
}

// CellbaseOutputCapacityDetails breaks a cellbase reward into its parts.
type CellbaseOutputCapacityDetails struct {
	Primary        Uint
	ProposalReward Uint
	Secondary      Uint
	Total          Uint
	TxFee          Uint
}

type cellbaseOutputCapacityDetailsWire struct {
	Primary        *string `json:"primary" validate:"required"`
	ProposalReward *string `json:"proposalReward" validate:"required"`
	Secondary      *string `json:"secondary" validate:"required"`
	Total          *string `json:"total" validate:"required"`
	TxFee          *string `json:"txFee" validate:"required"`
}

func decodeCellbaseOutputCapacityDetails(data []byte) (CellbaseOutputCapacityDetails, error) {
	var w cellbaseOutputCapacityDetailsWire
	r := readWire("CellbaseOutputCapacityDetails", data, &w)
	d := CellbaseOutputCapacityDetails{
		Primary:        r.uint("primary", w.Primary),
		ProposalReward: r.uint("proposalReward", w.ProposalReward),
		Secondary:      r.uint("secondary", w.Secondary),
		Total:          r.uint("total", w.Total),
		TxFee:          r.uint("txFee", w.TxFee),
	}
	if r.err != nil {
		return CellbaseOutputCapacityDetails{}, r.err
	}
	return d, nil
}

func (d *CellbaseOutputCapacityDetails) UnmarshalJSON(data []byte) error {
	return assign(d, decodeCellbaseOutputCapacityDetails, data)
}

func (d CellbaseOutputCapacityDetails) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, cellbaseOutputCapacityDetailsWire{
		Primary:        hexUint(d.Primary),
		ProposalReward: hexUint(d.ProposalReward),
		Secondary:      hexUint(d.Secondary),
		Total:          hexUint(d.Total),
		TxFee:          hexUint(d.TxFee),
	})
}

// TraceEntry is one step in a transaction's trace through the pool.
type TraceEntry struct {
	Action string
	Info   string
	Time   Uint
}

// TransactionTrace is the ordered trace of a transaction.
type TransactionTrace []TraceEntry

type traceEntryWire struct {
	Action *string `json:"action" validate:"required"`
	Info   *string `json:"info" validate:"required"`
	Time   *string `json:"time" validate:"required"`
}

func decodeTraceEntry(data []byte) (TraceEntry, error) {
	var w traceEntryWire
	r := readWire("TraceEntry", data, &w)
	e := TraceEntry{
		Action: r.str("action", w.Action),
		Info:   r.str("info", w.Info),
		Time:   r.uint("time", w.Time),
	}
	if r.err != nil {
		return TraceEntry{}, r.err
	}
	return e, nil
}

func (e *TraceEntry) UnmarshalJSON(data []byte) error { return assign(e, decodeTraceEntry, data) }

func (e TraceEntry) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, traceEntryWire{
		Action: ptr(e.Action),
		Info:   ptr(e.Info),
		Time:   hexUint(e.Time),
	})
}

func decodeTransactionTrace(data []byte) (TransactionTrace, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, syntaxError("TransactionTrace", err)
	}
	r := &reader{entity: "TransactionTrace"}
	if raws == nil {
		raws = []json.RawMessage{}
	}
	trace := list(r, "", raws, decodeTraceEntry)
	if r.err != nil {
		return nil, r.err
	}
	return TransactionTrace(trace), nil
}

func (t *TransactionTrace) UnmarshalJSON(data []byte) error {
	return assign(t, decodeTransactionTrace, data)
}

func (t TransactionTrace) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, rawList(&w, []TraceEntry(t)))
}
