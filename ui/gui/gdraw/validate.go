package gdraw

import (
	"errors"
	"fenview/src"
	"fenview/ui/cli"
	"fenview/ui/gui/gbase"
	"fenview/ui/gui/gctx"
	"fenview/ui/gui/ghelper"
	"fenview/ui/gui/ghelper/gdialog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// DefaultInput is shown in the entry box on start.
const DefaultInput = "2r3k1/p3bqp1/Q2p3p/3Pp3/P3N3/8/5PPP/5RK1 b - - 1 27"

const (
	inputY  = 45
	inputH  = 36
	buttonW = 150
	buttonH = 36
	infoY   = 170
)

type openResult struct {
	fen string
	err error
}

type GUIValidateDrawer struct {
	input    gbase.TextInput
	bValid   *gbase.Button
	bClear   *gbase.Button
	bOpen    *gbase.Button
	buttons  []*gbase.Button
	boardImg *ebiten.Image
	info     string

	opening bool
	opened  chan openResult

	// click tracking
	prevMouseDown bool
	prevTime      time.Time
}

func NewGUIValidateDrawer(ctx *gctx.GUIContext) *GUIValidateDrawer {
	vd := &GUIValidateDrawer{
		opened:   make(chan openResult, 1),
		prevTime: time.Now(),
	}
	vd.makeLayout(ctx)
	vd.input.SetText(DefaultInput)
	vd.input.Focused = true
	vd.refreshBoard(ctx)
	return vd
}

func (vd *GUIValidateDrawer) makeLayout(ctx *gctx.GUIContext) {
	w := ctx.Window.W
	inputW := w - 2*gctx.Margin - buttonW - 10

	vd.input.X, vd.input.Y, vd.input.W, vd.input.H = gctx.Margin, inputY, inputW, inputH
	vd.input.Image = ghelper.RenderRoundedRect(inputW, inputH, 8, ctx.Theme.InputFill, ctx.Theme.ButtonStroke, 2)

	bx := w - gctx.Margin - buttonW
	vd.bValid = &gbase.Button{Label: ctx.Lang.T("button.validate"), X: bx, Y: inputY, W: buttonW, H: buttonH}
	vd.bClear = &gbase.Button{Label: ctx.Lang.T("button.clear"), X: bx, Y: inputY + buttonH + 8, W: buttonW, H: buttonH}
	vd.bOpen = &gbase.Button{Label: ctx.Lang.T("button.open"), X: bx, Y: inputY + 2*(buttonH+8), W: buttonW, H: buttonH}
	vd.buttons = []*gbase.Button{vd.bValid, vd.bClear, vd.bOpen}
	vd.refreshButtons(ctx)
}

func (vd *GUIValidateDrawer) refreshButtons(ctx *gctx.GUIContext) {
	for _, b := range vd.buttons {
		b.Image = ghelper.RenderRoundedRect(b.W, b.H, 12, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 2)
		b.Scale, b.TargetScale = 1, 1
	}
}

func (vd *GUIValidateDrawer) refreshBoard(ctx *gctx.GUIContext) {
	vd.boardImg = ebiten.NewImageFromImage(ctx.Renderer.Image(ctx.Session.Board()))
	if pos, ok := ctx.Session.Current(); ok {
		vd.info = cli.FormatInfo(pos, ctx.Lang)
	} else {
		vd.info = ""
	}
}

func (vd *GUIValidateDrawer) Update(ctx *gctx.GUIContext) error {
	mx, my := ebiten.CursorPosition()
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justClicked := mouseDown && !vd.prevMouseDown
	justReleased := !mouseDown && vd.prevMouseDown
	vd.prevMouseDown = mouseDown

	now := time.Now()
	dt := now.Sub(vd.prevTime).Seconds()
	vd.prevTime = now

	select {
	case res := <-vd.opened:
		vd.opening = false
		vd.handleOpen(ctx, res)
	default:
	}

	// the only text field keeps focus unless the click lands on the background
	if justClicked {
		onButton := false
		for _, b := range vd.buttons {
			onButton = onButton || b.Contains(mx, my)
		}
		if !onButton {
			vd.input.Focused = vd.input.Contains(mx, my)
		}
	}
	vd.input.Update()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		vd.validate(ctx)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		vd.clear(ctx)
	}

	for _, b := range vd.buttons {
		if b.HandleInput(mx, my, justClicked, justReleased) {
			switch b {
			case vd.bValid:
				vd.validate(ctx)
			case vd.bClear:
				vd.clear(ctx)
			case vd.bOpen:
				vd.open(ctx)
			}
		}
		b.UpdateAnim(dt)
	}
	return nil
}

func (vd *GUIValidateDrawer) validate(ctx *gctx.GUIContext) {
	if _, err := ctx.Session.Validate(vd.input.String()); err != nil {
		// board stays as it was
		go gdialog.ShowError(ctx.Lang.T("dialog.error.title"), ctx.Lang.T("dialog.error.body")+":\n"+err.Error())
		return
	}
	vd.refreshBoard(ctx)
}

func (vd *GUIValidateDrawer) clear(ctx *gctx.GUIContext) {
	vd.input.SetText("")
	vd.input.Focused = true
	ctx.Session.Clear()
	vd.refreshBoard(ctx)
}

func (vd *GUIValidateDrawer) open(ctx *gctx.GUIContext) {
	if vd.opening {
		return
	}
	vd.opening = true
	title := ctx.Lang.T("dialog.open.title")
	go func() {
		r, err := gdialog.OpenFile(title)
		if err != nil {
			vd.opened <- openResult{err: err}
			return
		}
		fen, err := r.FirstLine()
		vd.opened <- openResult{fen: fen, err: err}
	}()
}

func (vd *GUIValidateDrawer) handleOpen(ctx *gctx.GUIContext, res openResult) {
	if errors.Is(res.err, gdialog.ErrCancelled) {
		return
	}
	if res.err != nil {
		ctx.Logx.Errorf("error open fen file: %v", res.err)
		go gdialog.ShowError(ctx.Lang.T("dialog.error.title"), res.err.Error())
		return
	}
	vd.input.SetText(res.fen)
	vd.validate(ctx)
}

func (vd *GUIValidateDrawer) statusLine(ctx *gctx.GUIContext) (string, bool) {
	switch ctx.Session.Status() {
	case src.StatusValid:
		return ctx.Lang.T("status.valid"), false
	case src.StatusInvalid:
		return ctx.Lang.T("status.error") + ": " + ctx.Session.LastError().Error(), true
	case src.StatusCleared:
		return ctx.Lang.T("status.cleared"), false
	default:
	}
	return ctx.Lang.T("status.waiting"), false
}

func (vd *GUIValidateDrawer) Draw(ctx *gctx.GUIContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)

	text.Draw(screen, ctx.Lang.T("label.input"), ctx.Fonts.Bold, gctx.Margin, inputY-12, ctx.Theme.MenuText)
	vd.input.Draw(screen, ctx.Fonts.Normal, ctx.Theme)
	for _, b := range vd.buttons {
		b.DrawAnimated(screen, ctx.Fonts.Normal, ctx.Theme)
	}

	text.Draw(screen, ctx.Lang.T("label.info"), ctx.Fonts.Bold, gctx.Margin, infoY-4, ctx.Theme.MenuText)
	text.Draw(screen, vd.info, ctx.Fonts.Small, gctx.Margin, infoY+16, ctx.Theme.MenuText)

	size := ctx.Renderer.Size()
	bx := (ctx.Window.W - size) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(bx), float64(gctx.BoardY))
	screen.DrawImage(vd.boardImg, op)

	status, failed := vd.statusLine(ctx)
	clr := ctx.Theme.MenuText
	if failed {
		clr = ctx.Theme.Error
	}
	text.Draw(screen, status, ctx.Fonts.Small, gctx.Margin, gctx.BoardY+size+gctx.Margin+4, clr)
}
