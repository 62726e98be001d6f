package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/hexutil"
)

// Wire structs mirror the node's JSON. Scalars are *string so that a
// missing key is distinguishable from an empty one, nested objects are
// json.RawMessage so that null stays distinguishable from absence, and
// required keys carry a `validate:"required"` tag.

var validate = newWireValidator()

func newWireValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	return raw == nil || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// reader assembles one entity from its wire struct, keeping the first
// failure. Once failed, every accessor returns a zero value.
type reader struct {
	entity string
	err    error
}

// readWire parses data into wire and checks required keys.
func readWire(entity string, data []byte, wire any) *reader {
	r := &reader{entity: entity}
	if isNull(data) {
		r.err = &ckb.Error{Kind: ckb.KindMissingField, Entity: entity, Reason: "null object"}
		return r
	}
	if err := checkKeys(entity, data, wire); err != nil {
		r.err = err
		return r
	}
	if err := json.Unmarshal(data, wire); err != nil {
		r.err = syntaxError(entity, err)
		return r
	}
	if err := validate.Struct(wire); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			r.err = ckb.MissingField(entity, fieldErrs[0].Field())
		} else {
			r.err = &ckb.Error{Kind: ckb.KindSyntax, Entity: entity, Err: err}
		}
	}
	return r
}

// checkKeys rejects what encoding/json would silently accept: a key
// repeated within one object, and a key that matches a wire field only
// when case is ignored. Unknown keys pass. Malformed JSON is left for
// json.Unmarshal to report.
func checkKeys(entity string, data []byte, wire any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	fields := wireKeys(reflect.TypeOf(wire))
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		if _, dup := seen[key]; dup {
			return &ckb.Error{Kind: ckb.KindSyntax, Entity: entity, Field: key, Reason: "duplicate key"}
		}
		seen[key] = struct{}{}
		if _, exact := fields[key]; !exact {
			for name := range fields {
				if strings.EqualFold(key, name) {
					return &ckb.Error{Kind: ckb.KindSyntax, Entity: entity, Field: key,
						Reason: fmt.Sprintf("key must be spelled %q", name)}
				}
			}
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
	}
	return nil
}

var wireKeyCache sync.Map // reflect.Type -> map[string]struct{}

// wireKeys returns the JSON keys of a wire struct, including those of
// embedded structs.
func wireKeys(t reflect.Type) map[string]struct{} {
	if keys, ok := wireKeyCache.Load(t); ok {
		return keys.(map[string]struct{})
	}
	keys := make(map[string]struct{})
	collectKeys(t, keys)
	wireKeyCache.Store(t, keys)
	return keys
}

func collectKeys(t reflect.Type, keys map[string]struct{}) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch {
		case name == "-":
		case f.Anonymous && name == "":
			collectKeys(f.Type, keys)
		case f.IsExported():
			if name == "" {
				name = f.Name
			}
			keys[name] = struct{}{}
		}
	}
}

func syntaxError(entity string, err error) error {
	e := &ckb.Error{Kind: ckb.KindSyntax, Entity: entity, Err: err}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		e.Field = typeErr.Field
		e.Reason = fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value)
		e.Err = nil
	}
	return e
}

func (r *reader) fail(field string, err error) {
	if r.err == nil && err != nil {
		r.err = ckb.Locate(err, r.entity, field)
	}
}

func (r *reader) text(field string, s *string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	if s == nil {
		r.err = ckb.MissingField(r.entity, field)
		return "", false
	}
	return *s, true
}

func (r *reader) str(field string, s *string) string {
	v, _ := r.text(field, s)
	return v
}

func (r *reader) boolean(field string, b *bool) bool {
	if r.err != nil {
		return false
	}
	if b == nil {
		r.err = ckb.MissingField(r.entity, field)
		return false
	}
	return *b
}

func (r *reader) optionalBool(b *bool) Option[bool] {
	if r.err != nil || b == nil {
		return None[bool]()
	}
	return Some(*b)
}

func (r *reader) uint(field string, s *string) Uint {
	text, ok := r.text(field, s)
	if !ok {
		return Uint{}
	}
	n, err := hexutil.DecodeUint(text)
	if err != nil {
		r.fail(field, err)
		return Uint{}
	}
	return Uint{n: n}
}

// uintOrZero reads a numeric field whose schema defines empty as zero.
func (r *reader) uintOrZero(field string, s *string) Uint {
	text, ok := r.text(field, s)
	if !ok {
		return Uint{}
	}
	n, err := hexutil.DecodeUintOrZero(text)
	if err != nil {
		r.fail(field, err)
		return Uint{}
	}
	return Uint{n: n}
}

func (r *reader) hash(field string, s *string) Hash {
	text, ok := r.text(field, s)
	if !ok {
		return Hash{}
	}
	h, err := ParseHash(text)
	r.fail(field, err)
	return h
}

func (r *reader) optionalHash(field string, s *string) Option[Hash] {
	if r.err != nil || s == nil {
		return None[Hash]()
	}
	h := r.hash(field, s)
	if r.err != nil {
		return None[Hash]()
	}
	return Some(h)
}

func (r *reader) bytes(field string, s *string) Bytes {
	text, ok := r.text(field, s)
	if !ok {
		return nil
	}
	b, err := ParseBytes(text)
	r.fail(field, err)
	return b
}

func (r *reader) bytesList(field string, items []string) []Bytes {
	if r.err != nil {
		return nil
	}
	if items == nil {
		r.err = ckb.MissingField(r.entity, field)
		return nil
	}
	out := make([]Bytes, len(items))
	for i := range items {
		out[i] = r.bytes(indexed(field, i), &items[i])
	}
	return out
}

func (r *reader) hashList(field string, items []string) []Hash {
	if r.err != nil {
		return nil
	}
	if items == nil {
		r.err = ckb.MissingField(r.entity, field)
		return nil
	}
	out := make([]Hash, len(items))
	for i := range items {
		out[i] = r.hash(indexed(field, i), &items[i])
	}
	return out
}

func (r *reader) shortIDList(field string, items []string) []ProposalShortID {
	if r.err != nil {
		return nil
	}
	if items == nil {
		r.err = ckb.MissingField(r.entity, field)
		return nil
	}
	out := make([]ProposalShortID, len(items))
	for i := range items {
		text, _ := r.text(indexed(field, i), &items[i])
		id, err := ParseProposalShortID(text)
		r.fail(indexed(field, i), err)
		out[i] = id
	}
	return out
}

func (r *reader) scriptHashType(field string, s *string) ScriptHashType {
	text, ok := r.text(field, s)
	if !ok {
		return 0
	}
	t, err := ParseScriptHashType(text)
	r.fail(field, err)
	return t
}

func (r *reader) txStatus(field string, s *string) TransactionStatus {
	text, ok := r.text(field, s)
	if !ok {
		return 0
	}
	st, err := ParseTransactionStatus(text)
	r.fail(field, err)
	return st
}

func (r *reader) cellStatus(field string, s *string) CellStatus {
	text, ok := r.text(field, s)
	if !ok {
		return 0
	}
	st, err := ParseCellStatus(text)
	r.fail(field, err)
	return st
}

// object decodes a required nested entity.
func object[T any](r *reader, field string, raw json.RawMessage, decode func([]byte) (T, error)) T {
	var zero T
	if r.err != nil {
		return zero
	}
	if isNull(raw) {
		r.err = ckb.MissingField(r.entity, field)
		return zero
	}
	v, err := decode(raw)
	if err != nil {
		r.fail(field, err)
		return zero
	}
	return v
}

// optional decodes a nullable nested entity; null and absence are None.
func optional[T any](r *reader, field string, raw json.RawMessage, decode func([]byte) (T, error)) Option[T] {
	if r.err != nil || isNull(raw) {
		return None[T]()
	}
	v, err := decode(raw)
	if err != nil {
		r.fail(field, err)
		return None[T]()
	}
	return Some(v)
}

// list decodes a required array of entities, preserving order.
func list[T any](r *reader, field string, raws []json.RawMessage, decode func([]byte) (T, error)) []T {
	if r.err != nil {
		return nil
	}
	if raws == nil {
		r.err = ckb.MissingField(r.entity, field)
		return nil
	}
	out := make([]T, len(raws))
	for i, raw := range raws {
		out[i] = object(r, indexed(field, i), raw, decode)
		if r.err != nil {
			return nil
		}
	}
	return out
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

// writer builds a wire struct from an entity, keeping the first failure.
type writer struct {
	err error
}

func (w *writer) raw(v json.Marshaler) json.RawMessage {
	if w.err != nil {
		return nil
	}
	b, err := v.MarshalJSON()
	if err != nil {
		w.err = err
		return nil
	}
	return b
}

func (w *writer) enum(entity, field string, v interface{ MarshalText() ([]byte, error) }) *string {
	if w.err != nil {
		return nil
	}
	b, err := v.MarshalText()
	if err != nil {
		w.err = ckb.Locate(err, entity, field)
		return nil
	}
	s := string(b)
	return &s
}

func rawOption[T json.Marshaler](w *writer, o Option[T]) json.RawMessage {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return w.raw(v)
}

func rawList[T json.Marshaler](w *writer, items []T) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, v := range items {
		out = append(out, w.raw(v))
	}
	return out
}

func hexUint(u Uint) *string {
	s := u.Hex()
	return &s
}

func hexHash(h Hash) *string {
	s := h.Hex()
	return &s
}

func hexBytes(b Bytes) *string {
	s := b.Hex()
	return &s
}

func ptr[T any](v T) *T { return &v }

func hexBytesList(items []Bytes) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.Hex())
	}
	return out
}

func hexHashList(items []Hash) []string {
	out := make([]string, 0, len(items))
	for _, h := range items {
		out = append(out, h.Hex())
	}
	return out
}

func optionalHex(o Option[Hash]) *string {
	h, ok := o.Get()
	if !ok {
		return nil
	}
	return hexHash(h)
}

func finish(w *writer, wire any) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return json.Marshal(wire)
}
