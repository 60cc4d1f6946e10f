package gctx

import (
	"fenview/src"
	"fenview/src/conf"
	"fenview/src/logx"
	"fenview/ui/gui/gbase"
	"fenview/ui/gui/ghelper/gfont"
	"fenview/ui/gui/tools/lang"
	"fenview/ui/render"
)

// ---- GUI Context ----

type GUIContext struct {
	Session  *src.Session
	Lang     *lang.GUILangWorker
	Fonts    *gfont.Fonts
	Renderer *render.Renderer
	Config   *conf.Config
	Theme    gbase.Palette
	Logx     logx.Logger

	Window struct{ W, H int }
}

func NewGUIContext(s *src.Session, c *conf.Config, l logx.Logger) (*GUIContext, error) {
	lw, err := lang.NewGUILangWorker(lang.LangTypeFromString(c.Lang))
	if err != nil {
		return nil, err
	}
	fonts, err := gfont.LoadFonts()
	if err != nil {
		return nil, err
	}
	r, err := render.NewRenderer(render.Options{
		SquareSize:  c.SquareSize,
		Theme:       render.ThemeFromString(c.Theme),
		Coordinates: true,
		FontPath:    c.FontPath,
	})
	if err != nil {
		return nil, err
	}

	ctx := &GUIContext{
		Session:  s,
		Lang:     lw,
		Fonts:    fonts,
		Renderer: r,
		Config:   c,
		Theme:    gbase.PaletteFromString(c.Theme),
		Logx:     l,
	}
	ctx.Window.W, ctx.Window.H = WindowSize(c.WindowW, c.WindowH, r.Size())
	return ctx, nil
}

// WindowSize grows the configured window so the board and controls fit.
func WindowSize(w, h, board int) (int, int) {
	minW := board + 2*Margin
	minH := BoardY + board + 2*Margin
	if w < minW {
		w = minW
	}
	if h < minH {
		h = minH
	}
	return w, h
}

const (
	Margin = 20
	BoardY = 200
)

func (ctx *GUIContext) Close() error {
	return ctx.Renderer.Close()
}
