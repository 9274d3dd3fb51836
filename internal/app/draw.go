package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/anya"
	"github.com/phanxgames/anya/internal/config"
)

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	w, h := a.cfg.Window.Width, a.cfg.Window.Height
	screen.Fill(a.bgColor)
	if !a.minimal {
		a.drawBackground(screen, w, h)
	}

	layer := a.scenes.CurrentName()
	if layer == LayerMain {
		a.drawClock(screen, w, h)
	} else {
		a.ui.DrawDivider(screen, anya.Rect{Width: float64(w), Height: float64(h)}, a.panel)
	}
	for _, b := range a.ui.Buttons() {
		if b.Layer != layer || !b.Enabled {
			continue
		}
		a.ui.Draw(screen, b, a.label(b.Text), 0, 0)
	}
	if a.colorPicker != nil {
		if a.modal {
			r := a.colorPicker.Bounds
			a.ui.DrawDivider(screen, anya.Rect{X: r.X - 2, Y: r.Y - 2, Width: r.Width + 4, Height: r.Height + 4}, a.panel)
		}
		a.colorPicker.Draw(screen)
	}

	if a.fade > 0 {
		c := a.bgColor.WithAlpha(a.fade)
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), c, false)
	}
	a.debug.Draw(screen)

	if a.screenshot {
		a.screenshot = false
		path, err := anya.Screenshot(screen, a.cfg.Debug.ScreenshotDir, layer)
		if err != nil {
			a.logger.Warn("screenshot failed", "error", err)
		} else {
			a.logger.Info("saved screenshot", "path", path)
		}
	}
}

func (a *App) drawBackground(screen *ebiten.Image, w, h int) {
	switch a.bgMode {
	case config.BackgroundAnimation:
		if a.atlas != nil {
			a.anim.Draw(a.atlas.Texture, screen, 0, 0, a.cfg.Background.Scale)
		}
	case config.BackgroundImage:
		if a.bgImage == nil || a.bgImage.Width() == 0 || a.bgImage.Height() == 0 {
			return
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(w)/float64(a.bgImage.Width()), float64(h)/float64(a.bgImage.Height()))
		screen.DrawImage(a.bgImage.Image(), &op)
	}
}

func (a *App) drawClock(screen *ebiten.Image, w, h int) {
	t, err := a.textures.Label("label:clock", a.clock.Text(), a.clockFont)
	if err != nil {
		a.logger.Debug("failed to render clock", "error", err)
		return
	}
	x, y := clockPosition(w, h)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	screen.DrawImage(t.Image(), &op)
}

// label returns the cached white label texture for text.
func (a *App) label(text string) *anya.Texture {
	t, err := a.textures.Label("label:"+text, text, a.labelFont)
	if err != nil {
		a.logger.Debug("failed to render label", "text", text, "error", err)
		return nil
	}
	return t
}
