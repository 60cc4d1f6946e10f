package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Fonts used on the board. Glyphs is true when Piece can draw ♔..♟.
type Fonts struct {
	Piece  font.Face
	Label  font.Face
	Glyphs bool
}

// LoadFonts parses the ttf at path, or the bundled Go font when path is
// empty. Piece size follows the square size.
func LoadFonts(path string, squareSize int) (*Fonts, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data = goregular.TTF
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	fonts := &Fonts{Glyphs: hasChessGlyphs(f)}
	pieceSize := float64(squareSize) * 0.46
	if fonts.Glyphs {
		pieceSize = float64(squareSize) * 0.72
	}
	fonts.Piece, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    pieceSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	// coordinates
	fonts.Label, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(squareSize) * 0.2,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

func (f *Fonts) Close() error {
	if err := f.Piece.Close(); err != nil {
		return err
	}
	return f.Label.Close()
}

func hasChessGlyphs(f *opentype.Font) bool {
	var buf sfnt.Buffer
	for _, r := range "♔♕♖♗♘♙♚♛♜♝♞♟" {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			return false
		}
	}
	return true
}
