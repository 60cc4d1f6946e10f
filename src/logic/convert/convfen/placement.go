package convfen

import (
	"fenview/src/base"
	"strings"
)

// ParsePlacement turns the first FEN field into a board, rank 8 first.
func ParsePlacement(field string) (base.Board, error) {
	var board base.Board

	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return board, newError(FieldPlacement, KindWrongRankCount,
			"must be 8 ranks separated by '/', but there are %d", len(ranks))
	}

	for r, token := range ranks {
		if token == "8" {
			board[r] = base.EmptyRow()
			continue
		}
		row, err := expandRow(token, r)
		if err != nil {
			return board, err
		}
		board[r] = row
	}
	return board, nil
}

// ExpandRow expands one rank token such as "3Pp3" into its 8 squares.
func ExpandRow(token string) ([8]base.Square, error) {
	if token == "8" {
		return base.EmptyRow(), nil
	}
	return expandRow(token, -1)
}

// index is the rank position inside the placement field, -1 when unknown.
func expandRow(token string, index int) ([8]base.Square, error) {
	var row [8]base.Square
	where := "row"
	if index >= 0 {
		where = "rank " + string(rune('8'-index))
	}

	count := 0
	for _, ch := range token {
		if ch >= '0' && ch <= '9' {
			empty := int(ch - '0')
			// 8 is only legal as the whole token
			if empty < 1 || empty > 7 {
				return row, newError(FieldPlacement, KindMalformedDigit,
					"invalid digit '%c' in %s (must be 1..7, '8' only as the whole rank)", ch, where)
			}
			for i := 0; i < empty; i++ {
				if count < 8 {
					row[count] = base.EmptySquare
				}
				count++
			}
		} else {
			sq := base.ConvertSquareFromRune(ch)
			if sq == base.InvalidSquare {
				return row, newError(FieldPlacement, KindInvalidPieceCode,
					"invalid piece code '%c' in %s", ch, where)
			}
			if count < 8 {
				row[count] = sq
			}
			count++
		}
		if count > 8 {
			return row, newError(FieldPlacement, KindRowOverflow,
				"%s %q has more than 8 squares", where, token)
		}
	}
	if count != 8 {
		return row, newError(FieldPlacement, KindRowUnderflow,
			"%s %q has %d squares, must be exactly 8", where, token, count)
	}
	return row, nil
}
