package render

import (
	"fenview/src/base"
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
)

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SVG writes the board as a vector image. Pieces are unicode glyphs, left to
// the viewer's fonts.
func (r *Renderer) SVG(w io.Writer, board base.Board) error {
	return writeSVG(w, board, r.opts)
}

func RenderSVG(w io.Writer, board base.Board, opts Options) error {
	if opts.SquareSize <= 0 {
		opts.SquareSize = DefaultOptions().SquareSize
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = LightTheme
	}
	return writeSVG(w, board, opts)
}

func writeSVG(w io.Writer, board base.Board, opts Options) error {
	tam := opts.SquareSize
	th := opts.Theme
	ew := &errWriter{w: w}

	canvas := svg.New(ew)
	canvas.Start(tam*8, tam*8)
	canvas.Title("chess board")
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			fill := th.Dark
			if (row+col)%2 == 0 {
				fill = th.Light
			}
			canvas.Rect(col*tam, row*tam, tam, tam, "fill:"+hex(fill))

			sq := board[row][col]
			if sq.IsEmpty() || sq == base.InvalidSquare {
				continue
			}
			canvas.Text(col*tam+tam/2, row*tam+tam/2, sq.Glyph(),
				fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central;fill:%s", tam*3/4, hex(th.Outline)))
		}
	}
	if opts.Coordinates {
		style := fmt.Sprintf("font-size:%dpx;font-family:sans-serif;text-anchor:middle;dominant-baseline:central;fill:%s", tam/5, hex(th.Label))
		canvas.Gstyle(style)
		for i := 0; i < 8; i++ {
			canvas.Text(i*tam+tam/2, 8*tam-tam/8, string(rune('a'+i)))
			canvas.Text(tam/8, i*tam+tam/2, string(rune('8'-i)))
		}
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

// svgo ignores write errors, keep the first one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
