package base

import "fmt"

// Forsyth–Edwards Notation
const (
	FEN_START_POSITION string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	FEN_EMPTY_BOARD    string = "8/8/8/8/8/8/8/8 w - - 0 1"
)

// Square holds the FEN symbol of one board cell.
type Square byte

const (
	WKing         Square = 'K'
	WQueen        Square = 'Q'
	WRook         Square = 'R'
	WBishop       Square = 'B'
	WKnight       Square = 'N'
	WPawn         Square = 'P'
	BKing         Square = 'k'
	BQueen        Square = 'q'
	BRook         Square = 'r'
	BBishop       Square = 'b'
	BKnight       Square = 'n'
	BPawn         Square = 'p'
	EmptySquare   Square = '.'
	InvalidSquare Square = 0
)

func (s Square) String() string {
	if s == InvalidSquare {
		return "?"
	}
	return string(rune(s))
}

func (s Square) IsEmpty() bool {
	return s == EmptySquare
}

func SquareIsWhite(s Square) bool {
	switch s {
	case WKing, WQueen, WRook, WBishop, WKnight, WPawn:
		return true
	}
	return false
}

func SquareIsBlack(s Square) bool {
	switch s {
	case BKing, BQueen, BRook, BBishop, BKnight, BPawn:
		return true
	}
	return false
}

// ConvertSquareFromRune maps one of the 12 FEN piece letters to its square
// value. Anything else, '.' included, is InvalidSquare.
func ConvertSquareFromRune(r rune) Square {
	switch r {
	case 'K', 'Q', 'R', 'B', 'N', 'P', 'k', 'q', 'r', 'b', 'n', 'p':
		return Square(r)
	default:
		return InvalidSquare
	}
}

// Glyph returns the unicode chess symbol, a blank for an empty square.
func (s Square) Glyph() string {
	switch s {
	case WKing:
		return "♔"
	case WQueen:
		return "♕"
	case WRook:
		return "♖"
	case WBishop:
		return "♗"
	case WKnight:
		return "♘"
	case WPawn:
		return "♙"
	case BKing:
		return "♚"
	case BQueen:
		return "♛"
	case BRook:
		return "♜"
	case BBishop:
		return "♝"
	case BKnight:
		return "♞"
	case BPawn:
		return "♟"
	case EmptySquare:
		return " "
	default:
		return "?"
	}
}

// ---- Board ----

// Row 0 is rank 8, column 0 is file 'a'.
type Board [8][8]Square

func EmptyBoard() Board {
	var b Board
	for r := range b {
		b[r] = EmptyRow()
	}
	return b
}

func EmptyRow() [8]Square {
	return [8]Square{EmptySquare, EmptySquare, EmptySquare, EmptySquare, EmptySquare, EmptySquare, EmptySquare, EmptySquare}
}

func (b Board) String() string {
	buf := make([]byte, 0, 72)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			buf = append(buf, byte(b[r][c]))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ---- Side to move ----

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Letter is the FEN form of the color.
func (c Color) Letter() string {
	if c == Black {
		return "b"
	}
	return "w"
}

// ---- Castling ----

type StatusCasting struct {
	WK bool
	WQ bool
	BK bool
	BQ bool
}

func (sc StatusCasting) IsEmpty() bool {
	return !(sc.WK || sc.WQ || sc.BK || sc.BQ)
}

// String writes the rights in KQkq order, "-" when none.
func (sc StatusCasting) String() string {
	cast := ""
	if sc.WK {
		cast += "K"
	}
	if sc.WQ {
		cast += "Q"
	}
	if sc.BK {
		cast += "k"
	}
	if sc.BQ {
		cast += "q"
	}
	if cast == "" {
		cast = "-"
	}
	return cast
}

// ---- En passant ----

// EnPassantTarget is a mailbox index (a1 = 0, h8 = 63) or NoEnPassant.
type EnPassantTarget int

const NoEnPassant EnPassantTarget = -1

func (ep EnPassantTarget) IsNone() bool {
	return ep == NoEnPassant
}

func (ep EnPassantTarget) String() string {
	if ep.IsNone() {
		return "-"
	}
	s, err := AlgebraicFromSquare(int(ep))
	if err != nil {
		return "-"
	}
	return s
}

// ---- Position ----

type Position struct {
	Board       Board
	ActiveColor Color
	Castling    StatusCasting
	EnPassant   EnPassantTarget
	Halfmove    int
	Fullmove    int
}

// ---- Coordinates ----

func SquareFromAlgebraic(pos string) (int, error) {
	// 'a' ~ 'h' to number
	// '1' ~ '8' to 0-7
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return -1, fmt.Errorf("invalid position %q", pos)
	}
	return int(pos[1]-'1')*8 + int(pos[0]-'a'), nil
}

func AlgebraicFromSquare(index int) (string, error) {
	if index < 0 || index >= 64 {
		return "", fmt.Errorf("invalid square index %d", index)
	}
	return string([]rune{rune(index%8 + 'a'), rune(index/8 + '1')}), nil
}
