package convfen

import (
	"fenview/src/base"
	"math"
	"testing"
)

func TestExpandRow(t *testing.T) {
	cases := []struct {
		token    string
		want     string
		wantKind ErrorKind
	}{
		{token: "8", want: "........"},
		{token: "rnbqkbnr", want: "rnbqkbnr"},
		{token: "3Pp3", want: "...Pp..."},
		{token: "44", want: "........"},
		{token: "1p1p1p1p", want: ".p.p.p.p"},
		{token: "7K", want: ".......K"},
		{token: "p7", want: "p......."},

		{token: "08", wantKind: KindMalformedDigit},
		{token: "0", wantKind: KindMalformedDigit},
		{token: "k8", wantKind: KindMalformedDigit},
		{token: "9", wantKind: KindMalformedDigit},
		{token: "p9", wantKind: KindMalformedDigit},
		{token: "7x", wantKind: KindInvalidPieceCode},
		{token: "7.", wantKind: KindInvalidPieceCode},
		{token: "ñ7", wantKind: KindInvalidPieceCode},
		{token: "ppppppppp", wantKind: KindRowOverflow},
		{token: "7pp", wantKind: KindRowOverflow},
		{token: "4p4", wantKind: KindRowOverflow},
		{token: "7", wantKind: KindRowUnderflow},
		{token: "ppp", wantKind: KindRowUnderflow},
		{token: "", wantKind: KindRowUnderflow},
		// overflow is caught before the bad letter that follows it
		{token: "7ppx", wantKind: KindRowOverflow},
	}

	for _, c := range cases {
		t.Run(c.token, func(t *testing.T) {
			row, err := ExpandRow(c.token)
			if c.wantKind != KindUnknown {
				if KindOf(err) != c.wantKind {
					t.Fatalf("ExpandRow(%q) error = %v, want kind %s", c.token, err, c.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandRow(%q): %v", c.token, err)
			}
			for i := 0; i < 8; i++ {
				if row[i] != base.Square(c.want[i]) {
					t.Errorf("ExpandRow(%q)[%d] = %v, want %c", c.token, i, row[i], c.want[i])
				}
			}
		})
	}
}

func TestParsePlacementRankLabel(t *testing.T) {
	_, err := ParsePlacement("8/8/8/8/8/8/8/7")
	if err == nil {
		t.Fatal("want error")
	}
	want := `piece placement: rank 1 "7" has 7 squares, must be exactly 8`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestParseCastling(t *testing.T) {
	// every subset of KQkq in every order is accepted
	letters := []rune{'K', 'Q', 'k', 'q'}
	var perms func(prefix []rune, rest []rune)
	perms = func(prefix []rune, rest []rune) {
		if len(prefix) > 0 {
			s := string(prefix)
			cast, err := ParseCastling(s)
			if err != nil {
				t.Errorf("ParseCastling(%q): %v", s, err)
			}
			for _, r := range prefix {
				var has bool
				switch r {
				case 'K':
					has = cast.WK
				case 'Q':
					has = cast.WQ
				case 'k':
					has = cast.BK
				case 'q':
					has = cast.BQ
				}
				if !has {
					t.Errorf("ParseCastling(%q) lost %c", s, r)
				}
			}
		}
		for i := range rest {
			next := append([]rune{}, rest[:i]...)
			next = append(next, rest[i+1:]...)
			perms(append(append([]rune{}, prefix...), rest[i]), next)
		}
	}
	perms(nil, letters)

	cast, err := ParseCastling("-")
	if err != nil || !cast.IsEmpty() {
		t.Errorf("ParseCastling(-) = %+v, %v", cast, err)
	}

	bad := map[string]ErrorKind{
		"KK":    KindDuplicateCastlingChar,
		"KQkqK": KindDuplicateCastlingChar,
		"qq":    KindDuplicateCastlingChar,
		"KX":    KindBadCastlingChar,
		"--":    KindBadCastlingChar,
		"K-":    KindBadCastlingChar,
		"A":     KindBadCastlingChar,
	}
	for field, kind := range bad {
		if _, err := ParseCastling(field); KindOf(err) != kind {
			t.Errorf("ParseCastling(%q) = %v, want %s", field, err, kind)
		}
	}
}

func TestParseEnPassant(t *testing.T) {
	for _, file := range "abcdefgh" {
		for _, rank := range "12345678" {
			field := string([]rune{file, rank})
			ep, err := ParseEnPassant(field)
			if rank == '3' || rank == '6' {
				if err != nil {
					t.Errorf("ParseEnPassant(%q): %v", field, err)
				} else if ep.String() != field {
					t.Errorf("ParseEnPassant(%q) = %v", field, ep)
				}
			} else if KindOf(err) != KindBadEPSquare {
				t.Errorf("ParseEnPassant(%q) = %v, want bad-ep-square", field, err)
			}
		}
	}

	ep, err := ParseEnPassant("-")
	if err != nil || !ep.IsNone() {
		t.Errorf("ParseEnPassant(-) = %v, %v", ep, err)
	}

	bad := map[string]ErrorKind{
		"e":   KindBadEPLength,
		"e33": KindBadEPLength,
		"--":  KindBadEPSquare,
		"i3":  KindBadEPSquare,
		"E3":  KindBadEPSquare,
		"3e":  KindBadEPSquare,
		"é3":  KindBadEPSquare,
	}
	for field, kind := range bad {
		if _, err := ParseEnPassant(field); KindOf(err) != kind {
			t.Errorf("ParseEnPassant(%q) = %v, want %s", field, err, kind)
		}
	}
}

func TestParseActiveColor(t *testing.T) {
	if c, err := ParseActiveColor("w"); err != nil || c != base.White {
		t.Errorf("w = %v, %v", c, err)
	}
	if c, err := ParseActiveColor("b"); err != nil || c != base.Black {
		t.Errorf("b = %v, %v", c, err)
	}
	for _, field := range []string{"W", "B", "white", "x", "-"} {
		if _, err := ParseActiveColor(field); KindOf(err) != KindBadActiveColor {
			t.Errorf("ParseActiveColor(%q) = %v", field, err)
		}
	}
}

func TestParseHalfmove(t *testing.T) {
	good := map[string]int{"0": 0, "1": 1, "49": 49, "007": 7}
	for field, want := range good {
		if n, err := ParseHalfmove(field); err != nil || n != want {
			t.Errorf("ParseHalfmove(%q) = %d, %v", field, n, err)
		}
	}
	huge := map[string]int{
		"99999999999999999999":     math.MaxInt,
		"00000000000000000000042":  42,
		"123456789012345678901234": math.MaxInt,
	}
	for field, want := range huge {
		if n, err := ParseHalfmove(field); err != nil || n != want {
			t.Errorf("ParseHalfmove(%q) = %d, %v, want %d", field, n, err, want)
		}
	}
	for _, field := range []string{"", "-1", "+1", "1a", "x", "1.5", "99999999999999999999x"} {
		if _, err := ParseHalfmove(field); KindOf(err) != KindBadHalfmove {
			t.Errorf("ParseHalfmove(%q) = %v", field, err)
		}
	}
}

func TestParseFullmove(t *testing.T) {
	if n, err := ParseFullmove("1"); err != nil || n != 1 {
		t.Errorf("ParseFullmove(1) = %d, %v", n, err)
	}
	if n, err := ParseFullmove("120"); err != nil || n != 120 {
		t.Errorf("ParseFullmove(120) = %d, %v", n, err)
	}
	for _, field := range []string{"99999999999999999999", "00000000000000000000001"} {
		n, err := ParseFullmove(field)
		if err != nil || n < 1 {
			t.Errorf("ParseFullmove(%q) = %d, %v, want accepted", field, n, err)
		}
	}
	for _, field := range []string{"0", "00", "00000000000000000000000"} {
		if _, err := ParseFullmove(field); KindOf(err) != KindBadFullmoveRange {
			t.Errorf("ParseFullmove(%q) = %v, want range", field, err)
		}
	}
	for _, field := range []string{"", "-1", "one", "1x"} {
		if _, err := ParseFullmove(field); KindOf(err) != KindBadFullmoveFormat {
			t.Errorf("ParseFullmove(%q) = %v, want format", field, err)
		}
	}
}
