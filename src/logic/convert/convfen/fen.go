package convfen

import (
	"fenview/src/base"
	"strconv"
	"strings"
)

// ConvertFENToPosition validates all six FEN fields left to right and stops
// at the first failure, which is always a *Error.
func ConvertFENToPosition(fen string) (*base.Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, newError(FieldFEN, KindWrongFieldCount,
			"must be exactly 6 fields, but there are %d", len(parts))
	}

	pos := &base.Position{}
	var err error

	// pieces
	if pos.Board, err = ParsePlacement(parts[0]); err != nil {
		return nil, err
	}

	// side to move
	if pos.ActiveColor, err = ParseActiveColor(parts[1]); err != nil {
		return nil, err
	}

	// castling
	if pos.Castling, err = ParseCastling(parts[2]); err != nil {
		return nil, err
	}

	// en passant
	if pos.EnPassant, err = ParseEnPassant(parts[3]); err != nil {
		return nil, err
	}

	// moves
	if pos.Halfmove, err = ParseHalfmove(parts[4]); err != nil {
		return nil, err
	}
	if pos.Fullmove, err = ParseFullmove(parts[5]); err != nil {
		return nil, err
	}

	return pos, nil
}

// ConvertPositionToFEN writes the canonical FEN of pos.
func ConvertPositionToFEN(pos base.Position) string {
	var b strings.Builder
	b.WriteString(ConvertBoardToPlacement(pos.Board))

	b.WriteByte(' ')
	b.WriteString(pos.ActiveColor.Letter())
	b.WriteByte(' ')
	b.WriteString(pos.Castling.String())
	b.WriteByte(' ')
	b.WriteString(pos.EnPassant.String())
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.Halfmove))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.Fullmove))

	return b.String()
}

// ConvertBoardToPlacement writes only the piece placement field.
func ConvertBoardToPlacement(board base.Board) string {
	var b strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for c := 0; c < 8; c++ {
			sq := board[r][c]
			if sq.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(byte(sq))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if r < 7 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
