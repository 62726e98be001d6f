package types_test

import (
	"strings"
	"testing"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/types"
)

func TestCellOutput_WireScenario(t *testing.T) {
	wire := `{"capacity":"0x1dcd6500","lock":{"args":[],"codeHash":"` + zeroHash + `","hashType":"Data"},"type":null}`
	out := reencode[types.CellOutput](t, wire)

	if !out.Capacity.Equal(types.NewUint(500000000)) {
		t.Fatalf("capacity: got %s", out.Capacity)
	}
	if out.Lock.HashType != types.HashTypeData {
		t.Fatalf("hashType: got %s", out.Lock.HashType)
	}
	if len(out.Lock.Args) != 0 || !out.Lock.CodeHash.IsZero() {
		t.Fatalf("unexpected lock %+v", out.Lock)
	}
	if out.Type.IsSome() {
		t.Fatal("type should be absent")
	}
}

func TestEntities_ReEncode(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{"Script", func(t *testing.T) { reencode[types.Script](t, scriptJSON) }},
		{"OutPoint", func(t *testing.T) { reencode[types.OutPoint](t, outPointJSON) }},
		{"CellInput", func(t *testing.T) { reencode[types.CellInput](t, cellInputJSON) }},
		{"CellInput_cellbase", func(t *testing.T) { reencode[types.CellInput](t, cellbaseInput) }},
		{"CellOutput", func(t *testing.T) { reencode[types.CellOutput](t, cellOutJSON) }},
		{"CellOutput_typed", func(t *testing.T) {
			reencode[types.CellOutput](t, `{"capacity":"0x0","lock":`+scriptJSON+`,"type":`+scriptJSON+`}`)
		}},
		{"CellDep", func(t *testing.T) { reencode[types.CellDep](t, cellDepJSON) }},
		{"Witness", func(t *testing.T) { reencode[types.Witness](t, witnessJSON) }},
		{"RawTransaction", func(t *testing.T) { reencode[types.RawTransaction](t, rawTxJSON) }},
		{"Transaction", func(t *testing.T) { reencode[types.Transaction](t, txJSON) }},
		{"Seal", func(t *testing.T) { reencode[types.Seal](t, sealJSON) }},
		{"BlockHeader", func(t *testing.T) { reencode[types.BlockHeader](t, headerJSON) }},
		{"UncleBlock", func(t *testing.T) { reencode[types.UncleBlock](t, uncleJSON) }},
		{"Block", func(t *testing.T) { reencode[types.Block](t, blockJSON) }},
		{"TransactionPoint", func(t *testing.T) { reencode[types.TransactionPoint](t, txPointJSON) }},
		{"TransactionByLockHash", func(t *testing.T) {
			reencode[types.TransactionByLockHash](t, `{"consumedBy":null,"createdBy":`+txPointJSON+`}`)
		}},
		{"TransactionWithStatus", func(t *testing.T) {
			reencode[types.TransactionWithStatus](t,
				`{"transaction":`+txJSON+`,"txStatus":{"blockHash":"`+hashA+`","status":"committed"}}`)
		}},
		{"CellIncludingOutPoint", func(t *testing.T) {
			reencode[types.CellIncludingOutPoint](t, `{"capacity":"0x1","lock":`+scriptJSON+`,"outPoint":null}`)
		}},
		{"LiveCellByLockHash", func(t *testing.T) {
			reencode[types.LiveCellByLockHash](t, `{"cellOutput":`+cellOutJSON+`,"createdBy":`+txPointJSON+`}`)
		}},
		{"CellWithStatus", func(t *testing.T) {
			reencode[types.CellWithStatus](t, `{"cell":null,"status":"unknown"}`)
		}},
		{"BlockchainInfo", func(t *testing.T) {
			reencode[types.BlockchainInfo](t, `{"isInitialBlockDownload":false,"epoch":"0x1","difficulty":"0x100",`+
				`"medianTime":"0x16e70e6985c","chain":"ckb_testnet","alerts":[`+
				`{"id":"0x1","priority":"0x2","noticeUntil":"0x16e70e6985c","message":"upgrade"}]}`)
		}},
		{"NodeInfo", func(t *testing.T) {
			reencode[types.NodeInfo](t, `{"version":"0.20.0","nodeId":"QmNode","addresses":`+
				`[{"address":"/ip4/127.0.0.1/tcp/8115","score":"0x1"}],"isOutbound":true}`)
		}},
		{"PeersState", func(t *testing.T) {
			reencode[types.PeersState](t, `{"lastUpdated":"0x16e70e6985c","blocksInFlight":"0x56","peer":"0x1"}`)
		}},
		{"TxPoolInfo", func(t *testing.T) {
			reencode[types.TxPoolInfo](t, `{"orphan":"0x0","pending":"0x1","proposed":"0x0",`+
				`"lastTxsUpdatedAt":"0x0","totalTxCycles":"0x0","totalTxSize":"0x0"}`)
		}},
		{"Epoch", func(t *testing.T) {
			reencode[types.Epoch](t, `{"difficulty":"0x3e8","length":"0x3e8","number":"0x0","startNumber":"0x0"}`)
		}},
		{"RunDryResult", func(t *testing.T) { reencode[types.RunDryResult](t, `{"cycles":"0x7b"}`) }},
		{"LockHashIndexState", func(t *testing.T) {
			reencode[types.LockHashIndexState](t, `{"blockHash":"`+hashA+`","blockNumber":"0x400","lockHash":"`+hashB+`"}`)
		}},
		{"BannedAddress", func(t *testing.T) {
			reencode[types.BannedAddress](t, `{"address":"192.168.0.2/32","banReason":"spam",`+
				`"banUntil":"0x1ac89236180","createdAt":"0x16bde533338"}`)
		}},
		{"CellbaseOutputCapacityDetails", func(t *testing.T) {
			reencode[types.CellbaseOutputCapacityDetails](t, `{"primary":"0x10","proposalReward":"0x1",`+
				`"secondary":"0x2","total":"0x16","txFee":"0x3"}`)
		}},
		{"TransactionTrace", func(t *testing.T) {
			reencode[types.TransactionTrace](t, `[{"action":"AddPending","info":"unknown tx, add to pending","time":"0x16e70e6985c"}]`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestDecode_OptionalAbsentAndNull(t *testing.T) {
	absent := `{"capacity":"0x1","lock":` + scriptJSON + `}`
	out, err := types.Decode[types.CellOutput]([]byte(absent))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Type.IsSome() {
		t.Fatal("absent type should be None")
	}
	enc, err := out.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if !strings.HasSuffix(string(enc), `"type":null}`) {
		t.Fatalf("None should encode as null, got %s", enc)
	}

	dep, err := types.Decode[types.CellDep]([]byte(`{"isDepGroup":false}`))
	if err != nil || dep.OutPoint.IsSome() {
		t.Fatalf("absent outPoint: got %+v, %v", dep, err)
	}

	info, err := types.Decode[types.NodeInfo]([]byte(`{"version":"1","nodeId":"x","addresses":[],"isOutbound":null}`))
	if err != nil || info.IsOutbound.IsSome() {
		t.Fatalf("null isOutbound: got %+v, %v", info, err)
	}
}

func TestDecode_Errors(t *testing.T) {
	badLock := `{"args":[],"hashType":"Data"}`
	tests := []struct {
		name   string
		decode func() error
		kind   ckb.Kind
		entity string
		field  string
	}{
		{
			name:   "missing_lock",
			decode: decodeErr[types.CellOutput](`{"capacity":"0x1","type":null}`),
			kind:   ckb.KindMissingField, entity: "CellOutput", field: "lock",
		},
		{
			name:   "null_lock",
			decode: decodeErr[types.CellOutput](`{"capacity":"0x1","lock":null}`),
			kind:   ckb.KindMissingField, entity: "CellOutput", field: "lock",
		},
		{
			name:   "missing_capacity",
			decode: decodeErr[types.CellOutput](`{"lock":` + scriptJSON + `}`),
			kind:   ckb.KindMissingField, entity: "CellOutput", field: "capacity",
		},
		{
			name:   "empty_capacity",
			decode: decodeErr[types.CellOutput](`{"capacity":"","lock":` + scriptJSON + `}`),
			kind:   ckb.KindEmptyField, entity: "CellOutput", field: "capacity",
		},
		{
			name:   "bad_capacity_digit",
			decode: decodeErr[types.CellOutput](`{"capacity":"0x1g","lock":` + scriptJSON + `}`),
			kind:   ckb.KindMalformedHex, entity: "CellOutput", field: "capacity",
		},
		{
			name:   "numeric_capacity",
			decode: decodeErr[types.CellOutput](`{"capacity":500,"lock":` + scriptJSON + `}`),
			kind:   ckb.KindSyntax, entity: "CellOutput", field: "capacity",
		},
		{
			name:   "wrong_case_key",
			decode: decodeErr[types.CellOutput](`{"CAPACITY":"0x1dcd6500","lock":` + scriptJSON + `,"type":null}`),
			kind:   ckb.KindSyntax, entity: "CellOutput", field: "CAPACITY",
		},
		{
			name:   "wrong_case_nested_key",
			decode: decodeErr[types.CellOutput](`{"capacity":"0x1","lock":{"args":[],"CodeHash":"` + zeroHash + `","hashType":"Data"}}`),
			kind:   ckb.KindSyntax, entity: "Script", field: "lock.CodeHash",
		},
		{
			name:   "wrong_case_embedded_key",
			decode: decodeErr[types.Transaction](strings.Replace(txJSON, `"version"`, `"Version"`, 1)),
			kind:   ckb.KindSyntax, entity: "Transaction", field: "Version",
		},
		{
			name:   "duplicate_key",
			decode: decodeErr[types.CellOutput](`{"capacity":"0x1","capacity":"0x2","lock":` + scriptJSON + `,"type":null}`),
			kind:   ckb.KindSyntax, entity: "CellOutput", field: "capacity",
		},
		{
			name:   "wrong_case_hash_type",
			decode: decodeErr[types.Script](`{"args":[],"codeHash":"` + zeroHash + `","hashType":"data"}`),
			kind:   ckb.KindUnknownVariant, entity: "ScriptHashType", field: "hashType",
		},
		{
			name:   "short_code_hash",
			decode: decodeErr[types.Script](`{"args":[],"codeHash":"0x00","hashType":"Data"}`),
			kind:   ckb.KindValidation, entity: "Script", field: "codeHash",
		},
		{
			name:   "odd_arg",
			decode: decodeErr[types.Script](`{"args":["0x01","0xabc"],"codeHash":"` + zeroHash + `","hashType":"Data"}`),
			kind:   ckb.KindMalformedHex, entity: "Script", field: "args[1]",
		},
		{
			name: "nested_missing_code_hash",
			decode: decodeErr[types.RawTransaction](`{"version":"0x0","cellDeps":[],"headerDeps":[],"inputs":[],` +
				`"outputs":[` + cellOutJSON + `,{"capacity":"0x1","lock":` + badLock + `}],"witnesses":[],"outputsData":["0x","0x"]}`),
			kind: ckb.KindMissingField, entity: "Script", field: "outputs[1].lock.codeHash",
		},
		{
			name:   "bad_since",
			decode: decodeErr[types.CellInput](`{"previousOutput":null,"since":"0xzz"}`),
			kind:   ckb.KindMalformedHex, entity: "CellInput", field: "since",
		},
		{
			name:   "missing_hash",
			decode: decodeErr[types.Transaction](rawTxJSON),
			kind:   ckb.KindMissingField, entity: "Transaction", field: "hash",
		},
		{
			name:   "not_json",
			decode: decodeErr[types.Block](`{"header":`),
			kind:   ckb.KindSyntax, entity: "Block",
		},
		{
			name:   "unknown_status",
			decode: decodeErr[types.TxStatus](`{"blockHash":null,"status":"rejected"}`),
			kind:   ckb.KindUnknownVariant, entity: "TransactionStatus", field: "status",
		},
		{
			name:   "short_proposal_id",
			decode: decodeErr[types.UncleBlock](`{"header":` + headerJSON + `,"proposals":["0x01"]}`),
			kind:   ckb.KindValidation, entity: "UncleBlock", field: "proposals[0]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode()
			e, ok := ckb.AsError(err)
			if !ok {
				t.Fatalf("expected *ckb.Error, got %v", err)
			}
			if e.Kind != tt.kind || e.Entity != tt.entity || e.Field != tt.field {
				t.Fatalf("got %s at %s.%s, want %s at %s.%s (%v)",
					e.Kind, e.Entity, e.Field, tt.kind, tt.entity, tt.field, err)
			}
		})
	}
}

func decodeErr[T any, P interface {
	*T
	types.Entity
}](wire string) func() error {
	return func() error {
		_, err := types.Decode[T, P]([]byte(wire))
		return err
	}
}

func TestDecode_NoPartialValue(t *testing.T) {
	wire := `{"capacity":"0x1","lock":{"args":["0x01"],"codeHash":"0x00","hashType":"Data"}}`
	out, err := types.Decode[types.CellOutput]([]byte(wire))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !out.Capacity.IsZero() || out.Lock.Args != nil || out.Type.IsSome() {
		t.Fatalf("failed decode returned a partial value: %+v", out)
	}

	var into types.CellOutput
	into.Capacity = types.NewUint(9)
	if err := into.UnmarshalJSON([]byte(wire)); err == nil {
		t.Fatal("expected an error")
	}
	if !into.Capacity.Equal(types.NewUint(9)) {
		t.Fatal("UnmarshalJSON must leave the target untouched on failure")
	}
}

func TestCellInput_DecodeSince(t *testing.T) {
	in, err := types.Decode[types.CellInput]([]byte(`{"previousOutput":null,"since":"0x8000000000000064"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s, err := in.DecodeSince()
	if err != nil || !s.Relative || s.Value != 100 {
		t.Fatalf("got %+v, %v", s, err)
	}

	empty, err := types.Decode[types.CellInput]([]byte(`{"previousOutput":null,"since":""}`))
	if err != nil {
		t.Fatalf("empty since should decode as zero: %v", err)
	}
	if !empty.Since.IsZero() {
		t.Fatalf("got %s", empty.Since)
	}

	bad, _ := types.Decode[types.CellInput]([]byte(`{"previousOutput":null,"since":"0x6000000000000000"}`))
	if _, err := bad.DecodeSince(); !ckb.IsKind(err, ckb.KindInvalidSince) {
		t.Fatalf("expected InvalidSince, got %v", err)
	}
}

func TestBlockHeader_EpochFraction(t *testing.T) {
	h, err := types.Decode[types.BlockHeader]([]byte(headerJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	e, err := h.EpochFraction()
	if err != nil {
		t.Fatalf("EpochFraction: %v", err)
	}
	if e != (types.EpochNumberWithFraction{Number: 1024, Index: 5, Length: 1800}) {
		t.Fatalf("got %+v", e)
	}
}

func TestBlock_Lookup(t *testing.T) {
	b, err := types.Decode[types.Block]([]byte(blockJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cb, ok := b.Cellbase()
	if !ok || cb.Inputs[0].PreviousOutput.IsSome() {
		t.Fatalf("unexpected cellbase %+v", cb)
	}
	hash, _ := types.ParseHash(hashB)
	tx, err := b.TransactionByHash(hash)
	if err != nil || len(tx.Outputs) != 1 {
		t.Fatalf("TransactionByHash: %+v, %v", tx, err)
	}
	if _, err := b.TransactionByHash(types.Hash{}); err == nil {
		t.Fatal("expected lookup of unknown hash to fail")
	}
}

func TestLiveCell_Located(t *testing.T) {
	c, err := types.Decode[types.LiveCellByLockHash]([]byte(`{"cellOutput":` + cellOutJSON + `,"createdBy":` + txPointJSON + `}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	loc := c.Located()
	op, ok := loc.OutPoint.Get()
	if !ok || op.TxHash.Hex() != hashA || !op.Index.IsZero() {
		t.Fatalf("unexpected out point %+v", loc.OutPoint)
	}
	if !loc.Capacity.Equal(c.CellOutput.Capacity) || loc.Lock.CodeHash != c.CellOutput.Lock.CodeHash {
		t.Fatal("projection must carry the source cell's capacity and lock")
	}

	bare := types.ProjectCell(c.CellOutput, types.None[types.OutPoint]())
	if bare.OutPoint.IsSome() {
		t.Fatal("projection must not invent an out point")
	}
}

func TestDecode_UnknownKeysIgnored(t *testing.T) {
	wire := `{"capacity":"0x1","lock":` + scriptJSON + `,"type":null,"extra":{"capacity":"0x2"}}`
	out, err := types.Decode[types.CellOutput]([]byte(wire))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n, _ := out.Capacity.Uint64(); n != 1 {
		t.Fatalf("unexpected capacity %s", out.Capacity)
	}
}

func TestDecode_NonCanonicalNumberReencodesCanonically(t *testing.T) {
	wire := `{"capacity":"0x001DCD6500","lock":` + scriptJSON + `,"type":null}`
	out, err := types.Decode[types.CellOutput]([]byte(wire))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	enc, err := types.Encode(out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := `{"capacity":"0x1dcd6500","lock":` + scriptJSON + `,"type":null}`; string(enc) != want {
		t.Fatalf("got %s, want %s", enc, want)
	}
}
