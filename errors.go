package ckb

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a codec failure.
type Kind uint8

const (
	// KindMalformedHex: bad hex digit, odd-length byte string or missing 0x prefix.
	KindMalformedHex Kind = iota + 1
	// KindEmptyField: a required numeric or binary field was given as empty text.
	KindEmptyField
	// KindUnknownVariant: an enum tag outside its closed set.
	KindUnknownVariant
	// KindMissingField: a required structural field is absent or null.
	KindMissingField
	// KindInvalidSince: a since value with an unrecognized metric or reserved bits set.
	KindInvalidSince
	// KindPrecisionLoss: a capacity conversion that would need sub-shannon precision.
	KindPrecisionLoss
	// KindValidation: a post-assembly structural check failed.
	KindValidation
	// KindSyntax: the wire text is not JSON of the expected shape.
	KindSyntax
)

func (k Kind) String() string {
	switch k {
	case KindMalformedHex:
		return "MalformedHex"
	case KindEmptyField:
		return "EmptyField"
	case KindUnknownVariant:
		return "UnknownVariant"
	case KindMissingField:
		return "MissingField"
	case KindInvalidSince:
		return "InvalidSince"
	case KindPrecisionLoss:
		return "PrecisionLoss"
	case KindValidation:
		return "ValidationError"
	case KindSyntax:
		return "Syntax"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrMalformedHex   = errors.New("malformed hex")
	ErrEmptyField     = errors.New("empty field")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrMissingField   = errors.New("missing field")
	ErrInvalidSince   = errors.New("invalid since")
	ErrPrecisionLoss  = errors.New("precision loss")
	ErrValidation     = errors.New("validation failed")
	ErrSyntax         = errors.New("syntax error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMalformedHex:
		return ErrMalformedHex
	case KindEmptyField:
		return ErrEmptyField
	case KindUnknownVariant:
		return ErrUnknownVariant
	case KindMissingField:
		return ErrMissingField
	case KindInvalidSince:
		return ErrInvalidSince
	case KindPrecisionLoss:
		return ErrPrecisionLoss
	case KindValidation:
		return ErrValidation
	case KindSyntax:
		return ErrSyntax
	default:
		return nil
	}
}

// Error is the structured failure returned by every decode, convert
// and validate operation.
//
// Entity names the innermost schema type that rejected the value
// (for UnknownVariant it is the enum kind, e.g. "ScriptHashType").
// Field is the dotted path from the value the caller decoded down to
// the offending field, e.g. "outputs[1].lock.codeHash".
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	// Value is the offending wire text, if any.
	Value  string
	Reason string
	// Err is an underlying cause (e.g. a JSON syntax error).
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Entity != "" || e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Entity)
		if e.Field != "" {
			if e.Entity != "" && !strings.HasPrefix(e.Field, "[") {
				b.WriteByte('.')
			}
			b.WriteString(e.Field)
		}
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewError creates an Error with no location. Codec layers below the
// schema use it; the schema fills in Entity and Field via Locate.
func NewError(kind Kind, value, reason string) *Error {
	return &Error{Kind: kind, Value: value, Reason: reason}
}

// MissingField creates a MissingField error for entity.field.
func MissingField(entity, field string) *Error {
	return &Error{Kind: KindMissingField, Entity: entity, Field: field}
}

// UnknownVariant creates an UnknownVariant error for an enum kind.
func UnknownVariant(kind, text string) *Error {
	return &Error{Kind: KindUnknownVariant, Entity: kind, Value: text}
}

// Validation creates a ValidationError for entity.field.
func Validation(entity, field, reason string) *Error {
	return &Error{Kind: KindValidation, Entity: entity, Field: field, Reason: reason}
}

// AsError checks whether err is an *Error and returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

// Locate attaches entity and field to an error raised without a
// location. An error that already names an entity only gets field
// prepended to its path. Errors that are not *Error are returned as is.
// The input is never modified.
func Locate(err error, entity, field string) error {
	e, ok := AsError(err)
	if !ok {
		return err
	}
	c := *e
	if c.Entity == "" {
		c.Entity = entity
		c.Field = field
	} else {
		c.Field = JoinPath(field, c.Field)
	}
	return &c
}

// Prefix prepends path to the field path of err.
func Prefix(err error, path string) error {
	e, ok := AsError(err)
	if !ok || path == "" {
		return err
	}
	c := *e
	c.Field = JoinPath(path, c.Field)
	return &c
}

// JoinPath joins two field path segments. Index segments ("[3]")
// attach without a dot.
func JoinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}
