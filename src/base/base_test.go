package base

import "testing"

func TestConvertSquareFromRune(t *testing.T) {
	for _, r := range "KQRBNPkqrbnp" {
		if got := ConvertSquareFromRune(r); got != Square(r) {
			t.Errorf("ConvertSquareFromRune(%q) = %v, want %v", r, got, Square(r))
		}
	}
	for _, r := range ".xX1 -ñ" {
		if got := ConvertSquareFromRune(r); got != InvalidSquare {
			t.Errorf("ConvertSquareFromRune(%q) = %v, want InvalidSquare", r, got)
		}
	}
}

func TestSquareColor(t *testing.T) {
	if !SquareIsWhite(WQueen) || SquareIsBlack(WQueen) {
		t.Errorf("Q should be white")
	}
	if !SquareIsBlack(BPawn) || SquareIsWhite(BPawn) {
		t.Errorf("p should be black")
	}
	if SquareIsWhite(EmptySquare) || SquareIsBlack(EmptySquare) {
		t.Errorf("empty square has no color")
	}
}

func TestEmptyBoard(t *testing.T) {
	b := EmptyBoard()
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if !b[r][c].IsEmpty() {
				t.Fatalf("square %d,%d = %v, want empty", r, c, b[r][c])
			}
		}
	}
}

func TestStatusCastingString(t *testing.T) {
	cases := []struct {
		sc   StatusCasting
		want string
	}{
		{StatusCasting{}, "-"},
		{StatusCasting{WK: true, WQ: true, BK: true, BQ: true}, "KQkq"},
		{StatusCasting{BQ: true, WK: true}, "Kq"},
	}
	for _, c := range cases {
		if got := c.sc.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.sc, got, c.want)
		}
	}
}

func TestEnPassantString(t *testing.T) {
	if NoEnPassant.String() != "-" {
		t.Errorf("NoEnPassant.String() = %q", NoEnPassant.String())
	}
	idx, err := SquareFromAlgebraic("e3")
	if err != nil {
		t.Fatal(err)
	}
	if got := EnPassantTarget(idx).String(); got != "e3" {
		t.Errorf("String() = %q, want e3", got)
	}
}
