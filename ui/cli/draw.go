package cli

import (
	"fenview/src/base"
	"fmt"
	"io"
)

// ANSI-code
const (
	reset   = "\033[0m"
	lightBg = "\033[47m"
	darkBg  = "\033[100m"
	whiteF  = "\033[97m"
	blackF  = "\033[30m"
	dimF    = "\033[90m"
)

type DrawFunc func(w io.Writer, b base.Board)

// PrintBoard draws the board with rank 8 on top.
func PrintBoard(w io.Writer, b base.Board) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	for row := 0; row < 8; row++ {
		rank := 8 - row
		fmt.Fprintf(w, "%d ", rank)
		for file := 0; file < 8; file++ {
			sq := b[row][file]
			g := sq.Glyph()

			lightSquare := (row+file)%2 == 0

			var bg, fg string
			if lightSquare {
				bg = lightBg
				if sq.IsEmpty() {
					fg = dimF
				} else {
					fg = blackF
				}
			} else {
				bg = darkBg
				if base.SquareIsWhite(sq) {
					fg = whiteF
				} else if base.SquareIsBlack(sq) {
					fg = blackF
				} else {
					fg = dimF
				}
			}

			fmt.Fprintf(w, "%s%s %s %s", bg, fg, g, reset)
		}
		fmt.Fprintf(w, " %d\n", rank)
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(w)
}

// PrintPlainBoard draws the board with FEN letters and no colors, for pipes.
func PrintPlainBoard(w io.Writer, b base.Board) {
	fmt.Fprintln(w, "  a b c d e f g h")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(w, "%d", 8-row)
		for file := 0; file < 8; file++ {
			fmt.Fprintf(w, " %s", b[row][file])
		}
		fmt.Fprintf(w, " %d\n", 8-row)
	}
	fmt.Fprintln(w, "  a b c d e f g h")
}
