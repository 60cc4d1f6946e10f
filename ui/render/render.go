package render

import (
	"fenview/src/base"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/fogleman/gg"
)

// ---- Styles (palettes) ----

type Theme struct {
	Light      color.RGBA
	Dark       color.RGBA
	Label      color.RGBA
	WhitePiece color.RGBA
	BlackPiece color.RGBA
	Outline    color.RGBA
}

var LightTheme = Theme{
	Light:      color.RGBA{0xf0, 0xd9, 0xb5, 0xff},
	Dark:       color.RGBA{0xb5, 0x88, 0x63, 0xff},
	Label:      color.RGBA{0x22, 0x22, 0x22, 0xff},
	WhitePiece: color.RGBA{0xff, 0xff, 0xff, 0xff},
	BlackPiece: color.RGBA{0x22, 0x22, 0x22, 0xff},
	Outline:    color.RGBA{0x11, 0x11, 0x11, 0xff},
}

var DarkTheme = Theme{
	Light:      color.RGBA{0x8c, 0xa2, 0xad, 0xff},
	Dark:       color.RGBA{0x3e, 0x55, 0x67, 0xff},
	Label:      color.RGBA{0xee, 0xee, 0xee, 0xff},
	WhitePiece: color.RGBA{0xf5, 0xf5, 0xf5, 0xff},
	BlackPiece: color.RGBA{0x12, 0x12, 0x12, 0xff},
	Outline:    color.RGBA{0x00, 0x00, 0x00, 0xff},
}

func ThemeFromString(s string) Theme {
	if s == "dark" {
		return DarkTheme
	}
	return LightTheme
}

type Options struct {
	SquareSize  int
	Theme       Theme
	Coordinates bool
	FontPath    string
}

func DefaultOptions() Options {
	return Options{SquareSize: 60, Theme: LightTheme, Coordinates: true}
}

// Renderer draws board snapshots. Fonts are loaded once per renderer.
type Renderer struct {
	opts  Options
	fonts *Fonts
}

func NewRenderer(opts Options) (*Renderer, error) {
	if opts.SquareSize <= 0 {
		opts.SquareSize = DefaultOptions().SquareSize
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = LightTheme
	}
	fonts, err := LoadFonts(opts.FontPath, opts.SquareSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, fonts: fonts}, nil
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Size is the edge of the square image in pixels.
func (r *Renderer) Size() int {
	return r.opts.SquareSize * 8
}

func (r *Renderer) Close() error {
	return r.fonts.Close()
}

func (r *Renderer) Image(board base.Board) image.Image {
	return r.context(board).Image()
}

func (r *Renderer) PNG(w io.Writer, board base.Board) error {
	return r.context(board).EncodePNG(w)
}

func (r *Renderer) context(board base.Board) *gg.Context {
	tam := float64(r.opts.SquareSize)
	th := r.opts.Theme
	dc := gg.NewContext(r.Size(), r.Size())

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			x0, y0 := float64(col)*tam, float64(row)*tam
			if (row+col)%2 == 0 {
				dc.SetColor(th.Light)
			} else {
				dc.SetColor(th.Dark)
			}
			dc.DrawRectangle(x0, y0, tam, tam)
			dc.Fill()

			sq := board[row][col]
			if sq.IsEmpty() || sq == base.InvalidSquare {
				continue
			}
			r.drawPiece(dc, sq, x0+tam/2, y0+tam/2)
		}
	}

	if r.opts.Coordinates {
		dc.SetFontFace(r.fonts.Label)
		dc.SetColor(th.Label)
		for i := 0; i < 8; i++ {
			dc.DrawStringAnchored(string(rune('a'+i)), (float64(i)+0.5)*tam, 8*tam-tam/8, 0.5, 0.5)
			dc.DrawStringAnchored(string(rune('8'-i)), tam/8, (float64(i)+0.5)*tam, 0.5, 0.5)
		}
	}
	return dc
}

func (r *Renderer) drawPiece(dc *gg.Context, sq base.Square, cx, cy float64) {
	th := r.opts.Theme
	tam := float64(r.opts.SquareSize)
	dc.SetFontFace(r.fonts.Piece)

	if r.fonts.Glyphs {
		dc.SetColor(th.Outline)
		dc.DrawStringAnchored(sq.Glyph(), cx, cy, 0.5, 0.4)
		return
	}

	// no chess glyphs in the font: a disc with the piece letter
	fill, ink := th.WhitePiece, th.BlackPiece
	if base.SquareIsBlack(sq) {
		fill, ink = th.BlackPiece, th.WhitePiece
	}
	dc.DrawCircle(cx, cy, tam*0.36)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(th.Outline)
	dc.SetLineWidth(tam / 30)
	dc.Stroke()
	dc.SetColor(ink)
	dc.DrawStringAnchored(strings.ToUpper(sq.String()), cx, cy, 0.5, 0.35)
}

// ---- One-shot helpers ----

func RenderPNG(w io.Writer, board base.Board, opts Options) error {
	r, err := NewRenderer(opts)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.PNG(w, board)
}
