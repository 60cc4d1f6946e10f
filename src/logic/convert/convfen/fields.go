package convfen

import (
	"errors"
	"fenview/src/base"
	"math"
	"strconv"
	"unicode/utf8"
)

func ParseActiveColor(field string) (base.Color, error) {
	switch field {
	case "w":
		return base.White, nil
	case "b":
		return base.Black, nil
	default:
		return base.White, newError(FieldActiveColor, KindBadActiveColor,
			"must be 'w' or 'b', got %q", field)
	}
}

// ParseCastling accepts "-" or any order of K, Q, k, q without repeats.
func ParseCastling(field string) (base.StatusCasting, error) {
	var cast base.StatusCasting
	if field == "-" {
		return cast, nil
	}

	for _, ch := range field {
		var seen *bool
		switch ch {
		case 'K':
			seen = &cast.WK
		case 'Q':
			seen = &cast.WQ
		case 'k':
			seen = &cast.BK
		case 'q':
			seen = &cast.BQ
		default:
			return base.StatusCasting{}, newError(FieldCastling, KindBadCastlingChar,
				"invalid character '%c', only K, Q, k, q or '-' are allowed", ch)
		}
		if *seen {
			return base.StatusCasting{}, newError(FieldCastling, KindDuplicateCastlingChar,
				"duplicate castling letter '%c'", ch)
		}
		*seen = true
	}
	return cast, nil
}

// ParseEnPassant accepts "-" or a square on rank 3 or 6.
func ParseEnPassant(field string) (base.EnPassantTarget, error) {
	if field == "-" {
		return base.NoEnPassant, nil
	}
	if utf8.RuneCountInString(field) != 2 {
		return base.NoEnPassant, newError(FieldEnPassant, KindBadEPLength,
			"must be '-' or a square such as 'e3', got %q", field)
	}
	file, rank := field[0], field[1]
	if len(field) != 2 || file < 'a' || file > 'h' || (rank != '3' && rank != '6') {
		return base.NoEnPassant, newError(FieldEnPassant, KindBadEPSquare,
			"must be file a-h and rank 3 or 6, got %q", field)
	}
	idx, err := base.SquareFromAlgebraic(field)
	if err != nil {
		return base.NoEnPassant, newError(FieldEnPassant, KindBadEPSquare, "%v", err)
	}
	return base.EnPassantTarget(idx), nil
}

func ParseHalfmove(field string) (int, error) {
	if !isDigits(field) {
		return 0, newError(FieldHalfmove, KindBadHalfmove,
			"must be a non-negative integer, got %q", field)
	}
	return atoiDigits(field), nil
}

func ParseFullmove(field string) (int, error) {
	if !isDigits(field) {
		return 0, newError(FieldFullmove, KindBadFullmoveFormat,
			"must be a positive integer, got %q", field)
	}
	n := atoiDigits(field)
	if n < 1 {
		return 0, newError(FieldFullmove, KindBadFullmoveRange, "must be >= 1, got %d", n)
	}
	return n, nil
}

// atoiDigits converts a string that passed isDigits. Values past the int
// range saturate at math.MaxInt.
func atoiDigits(s string) int {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return n
}

// isDigits reports whether s is non-empty and all ASCII decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
