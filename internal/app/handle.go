package app

import (
	"errors"

	"github.com/phanxgames/anya"
	"github.com/phanxgames/anya/internal/config"
	"github.com/phanxgames/anya/internal/platform"
)

var (
	imagePatterns = []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.webp"}
	fontPatterns  = []string{"*.ttf", "*.otf"}
)

// handle feeds one event to the UI and runs whatever it clicked.
func (a *App) handle(ev anya.Event) {
	a.ui.Update(ev, 0)
	if ev.Type != anya.EventPointerDown || ev.Button != anya.MouseButtonLeft {
		return
	}

	if p := a.colorPicker; p != nil {
		pt := anya.Vec2{X: ev.X, Y: ev.Y}
		if p.Pick(pt) {
			a.applyColor(p.Color())
			return
		}
		if a.modal {
			a.closePicker()
			return
		}
	}

	b := a.ui.Dispatch(ev, a.scenes.CurrentName())
	if b == nil {
		return
	}
	if err := a.clicker.Play(a.cfg.Sound.Click); err != nil {
		a.logger.Debug("click sound failed", "error", err)
	}
	a.perform(b)
}

// perform runs the side effect attached to b.
func (a *App) perform(b *anya.Button) {
	a.logger.Debug("button clicked", "text", b.Text, "layer", b.Layer, "action", b.Action)
	switch b.Action {
	case anya.ActionQuit:
		a.quit = true
	case anya.ActionMinimize:
		a.window.Minimize()
	case anya.ActionNavigate:
		if err := a.scenes.Set(b.Target); err != nil {
			a.logger.Error("failed to switch layer", "target", b.Target, "error", err)
		}
	case anya.ActionOpenURL:
		if b.Target == "" {
			return
		}
		if err := a.opener.OpenURL(a.ctx, b.Target); err != nil {
			a.logger.Warn("failed to open url", "url", b.Target, "error", err)
		}
	case anya.ActionCommand:
		a.command(b.Target)
	}
}

func (a *App) command(name string) {
	switch name {
	case cmdToggleDate:
		a.clock.ShowDate = !a.clock.ShowDate
	case cmdToggleMinimal:
		a.minimal = !a.minimal
	case cmdToggleBackground:
		a.expanded = !a.expanded
		a.applyEnablement()
	case cmdOpenFile:
		a.pickBackground()
	case cmdPickColor:
		a.openPicker(cmdPickColor, modalPickerBounds, true)
	case cmdPickFont:
		a.pickFont()
	case cmdEditMenu, cmdEditButton, cmdEditOutline, cmdEditText:
		a.openPicker(name, editorPickerBounds, false)
	default:
		a.logger.Warn("unknown command", "command", name)
	}
}

// pickBackground asks for an image. GIFs become the animated background,
// anything else a static one.
func (a *App) pickBackground() {
	path, ok := a.pickFile("Select background", imagePatterns)
	if !ok {
		return
	}
	if isGIF(path) {
		if _, exists := a.textures.Pack(backgroundPack); exists {
			_ = a.textures.Remove(backgroundPack)
		}
		atlas, err := a.textures.CreatePackGIF(backgroundPack, path)
		if err != nil {
			a.logger.Warn("failed to load background gif", "path", path, "error", err)
			a.atlas = nil
			a.anim.SetFrames(nil)
			a.bgMode = config.BackgroundColor
			return
		}
		a.setAtlas(atlas)
		return
	}
	if err := a.setImage(path); err != nil {
		a.logger.Warn("failed to load background image", "path", path, "error", err)
	}
}

func (a *App) pickFont() {
	path, ok := a.pickFile("Select clock font", fontPatterns)
	if !ok {
		return
	}
	f, err := anya.LoadFontFile(path, a.cfg.Clock.Size)
	if err != nil {
		a.logger.Warn("failed to load font", "path", path, "error", err)
		return
	}
	a.clockFont = f
}

func (a *App) pickFile(title string, patterns []string) (string, bool) {
	path, err := a.picker.PickFile(a.ctx, title, patterns)
	switch {
	case errors.Is(err, platform.ErrCancelled):
		return "", false
	case err != nil:
		a.logger.Warn("file picker failed", "error", err)
		return "", false
	}
	return path, true
}

// openPicker shows the color picker for target, primed with its current
// color. A modal picker swallows clicks and closes on a click outside it.
func (a *App) openPicker(target string, bounds anya.Rect, modal bool) {
	a.closePicker()
	a.colorPicker = NewColorPicker(bounds)
	a.colorPicker.SetColor(a.targetColor(target))
	a.pickTarget = target
	a.modal = modal
}

func (a *App) closePicker() {
	if a.colorPicker != nil {
		a.colorPicker.Dispose()
	}
	a.colorPicker = nil
	a.pickTarget = ""
	a.modal = false
}

func (a *App) targetColor(target string) anya.Color {
	th := a.ui.Themes().Get(a.theme)
	switch target {
	case cmdPickColor:
		return a.bgColor
	case cmdEditMenu:
		return a.panel
	case cmdEditButton:
		return th.Background
	case cmdEditOutline:
		return th.Outline
	case cmdEditText:
		return th.Text
	}
	return anya.ColorWhite
}

// applyColor writes c to whatever the picker is editing.
func (a *App) applyColor(c anya.Color) {
	switch a.pickTarget {
	case cmdPickColor:
		a.bgColor = c
		a.bgMode = config.BackgroundColor
	case cmdEditMenu:
		a.panel = c
	case cmdEditButton:
		a.ui.Themes().Edit(a.theme, func(th *anya.Theme) { th.Background = c })
	case cmdEditOutline:
		a.ui.Themes().Edit(a.theme, func(th *anya.Theme) { th.Outline = c })
	case cmdEditText:
		a.ui.Themes().Edit(a.theme, func(th *anya.Theme) { th.Text = c })
	}
}
