package gui

import (
	"fenview/src"
	"fenview/src/conf"
	"fenview/src/logx"
	"fenview/ui/gui/gctx"
	"fenview/ui/gui/gdraw"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIProcessing struct {
	current gdraw.Scene
	ctx     *gctx.GUIContext
}

func NewGUI(s *src.Session, c *conf.Config, logx logx.Logger) (*GUIProcessing, error) {
	ctx, err := gctx.NewGUIContext(s, c, logx)
	if err != nil {
		return nil, err
	}
	return &GUIProcessing{
		current: gdraw.NewGUIValidateDrawer(ctx),
		ctx:     ctx,
	}, nil
}

func (gp *GUIProcessing) Run() error {
	defer gp.ctx.Close()
	ebiten.SetWindowSize(gp.ctx.Window.W, gp.ctx.Window.H)
	ebiten.SetWindowTitle(gp.ctx.Lang.T("title"))
	gp.ctx.Logx.Infof("start gui %dx%d", gp.ctx.Window.W, gp.ctx.Window.H)
	return ebiten.RunGame(gp)
}

func (gp *GUIProcessing) Update() error {
	return gp.current.Update(gp.ctx)
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.current.Draw(gp.ctx, screen)
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gp.ctx.Window.W, gp.ctx.Window.H
}
