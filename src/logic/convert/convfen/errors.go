package convfen

import (
	"errors"
	"fmt"
)

// ErrInvalidFEN is matched by every parse failure through errors.Is.
var ErrInvalidFEN = errors.New("invalid FEN")

type FieldName string

const (
	FieldFEN         FieldName = "fen"
	FieldPlacement   FieldName = "piece placement"
	FieldActiveColor FieldName = "active color"
	FieldCastling    FieldName = "castling"
	FieldEnPassant   FieldName = "en passant"
	FieldHalfmove    FieldName = "halfmove clock"
	FieldFullmove    FieldName = "fullmove number"
)

type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	KindWrongFieldCount
	KindWrongRankCount
	KindRowOverflow
	KindRowUnderflow
	KindMalformedDigit
	KindInvalidPieceCode
	KindBadActiveColor
	KindBadCastlingChar
	KindDuplicateCastlingChar
	KindBadEPLength
	KindBadEPSquare
	KindBadHalfmove
	KindBadFullmoveFormat
	KindBadFullmoveRange
)

var kindNames = map[ErrorKind]string{
	KindWrongFieldCount:       "wrong-field-count",
	KindWrongRankCount:        "wrong-rank-count",
	KindRowOverflow:           "row-overflow",
	KindRowUnderflow:          "row-underflow",
	KindMalformedDigit:        "malformed-digit",
	KindInvalidPieceCode:      "invalid-piece-code",
	KindBadActiveColor:        "bad-active-color",
	KindBadCastlingChar:       "bad-castling-char",
	KindDuplicateCastlingChar: "duplicate-castling-char",
	KindBadEPLength:           "bad-ep-length",
	KindBadEPSquare:           "bad-ep-square",
	KindBadHalfmove:           "bad-halfmove",
	KindBadFullmoveFormat:     "bad-fullmove-format",
	KindBadFullmoveRange:      "bad-fullmove-range",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets the kind travel as its hyphenated name in JSON.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ErrorKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	*k = KindUnknown
	return nil
}

// Error describes the first rule a FEN string broke.
type Error struct {
	Field   FieldName
	Kind    ErrorKind
	Message string
}

func newError(field FieldName, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Field: field, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidFEN, or another *Error with the same kind. A target
// with a non-empty Field must match the field as well.
func (e *Error) Is(target error) bool {
	if target == ErrInvalidFEN {
		return true
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// KindOf returns the kind of a parse failure, KindUnknown for other errors.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
