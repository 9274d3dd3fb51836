// Package app is the widget shell. It boots the core subsystems from the
// configuration, wires buttons to layer switches and side effects, and runs
// them as an ebiten.Game.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/anya"
	"github.com/phanxgames/anya/internal/audio"
	"github.com/phanxgames/anya/internal/config"
	"github.com/phanxgames/anya/internal/platform"
	"github.com/phanxgames/anya/internal/themes"
)

// fadeMS is the length of the layer cross-fade.
const fadeMS = 150

// backgroundPack is the registry name of the animated background atlas.
const backgroundPack = "background"

// Clicker plays the button click sound.
type Clicker interface {
	Play(path string) error
}

// Options supplies the shell's collaborators. Zero fields get the desktop
// defaults.
type Options struct {
	Logger  *slog.Logger
	Window  platform.Window
	Opener  platform.URLOpener
	Picker  platform.FilePicker
	Clicker Clicker
	Now     func() time.Time
}

// App implements ebiten.Game.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
	dt     float64

	textures *anya.Registry
	scenes   *anya.SceneRegistry
	ui       *anya.UI
	input    *anya.Input
	debug    *anya.DebugOverlay

	window  platform.Window
	opener  platform.URLOpener
	picker  platform.FilePicker
	clicker Clicker
	player  *audio.Player // owned when the default clicker is used
	watcher *themes.Watcher

	anim      anya.Animation
	atlas     *anya.Atlas
	speed     float64
	bgMode    string
	bgColor   anya.Color
	bgImage   *anya.Texture
	panel     anya.Color
	minimal   bool
	clock     Clock
	clockFont *anya.Font
	labelFont *anya.Font
	theme     string

	collapsible []*anya.Button
	expanded    bool

	colorPicker *ColorPicker
	pickTarget  string // command that opened the picker
	modal       bool

	fade      float64
	fadeTween *anya.Tween

	screenshot bool
	quit       bool
}

// New builds the shell from cfg. Asset failures are logged and fall back to
// a solid background; only font, theme and layout errors are returned.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		dt:       cfg.DeltaMS(),
		textures: anya.NewRegistry(logger),
		scenes:   anya.NewSceneRegistry(),
		input:    anya.NewInput(),
		debug:    anya.NewDebugOverlay(logger),
		window:   opts.Window,
		opener:   opts.Opener,
		picker:   opts.Picker,
		clicker:  opts.Clicker,
		speed:    cfg.Background.FrameSpeedMS,
		bgMode:   cfg.Background.Mode,
		panel:    anya.ColorBlack,
		theme:    cfg.Themes.Active,
		clock: Clock{
			Format:     cfg.Clock.Format,
			DateFormat: cfg.Clock.DateFormat,
			ShowDate:   cfg.Clock.ShowDate,
			Now:        opts.Now,
		},
	}
	a.debug.Visible = cfg.Debug.Overlay

	if a.window == nil {
		a.window = platform.EbitenWindow{}
	}
	if a.opener == nil || a.picker == nil {
		desktop := platform.NewDesktop()
		if a.opener == nil {
			a.opener = desktop
		}
		if a.picker == nil {
			a.picker = desktop
		}
	}
	if a.clicker == nil {
		a.player = audio.NewPlayer(logger)
		a.player.SetVolume(cfg.Sound.Volume)
		a.clicker = a.player
	}

	bg, err := themes.ParseHex(cfg.Background.Color)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}
	a.bgColor = bg

	if err := a.loadFonts(); err != nil {
		return nil, err
	}
	if err := a.loadThemes(); err != nil {
		return nil, err
	}
	if err := buildLayers(a.scenes); err != nil {
		return nil, err
	}
	a.collapsible = buildButtons(a.ui, a.theme, cfg.Links.GitHub)

	a.loadBackground()
	if a.player != nil && cfg.Sound.Click != "" {
		if err := a.player.Preload(cfg.Sound.Click); err != nil {
			logger.Warn("click sound disabled", "path", cfg.Sound.Click, "error", err)
		}
	}

	a.scenes.OnChange = a.onLayerChange
	if err := a.scenes.Set(LayerMain); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) loadFonts() error {
	var err error
	if a.clockFont, err = loadFont(a.cfg.Clock.Font, a.cfg.Clock.Size); err != nil {
		return fmt.Errorf("clock font: %w", err)
	}
	if a.labelFont, err = loadFont(a.cfg.UI.Font, a.cfg.UI.LabelSize); err != nil {
		return fmt.Errorf("label font: %w", err)
	}
	return nil
}

func loadFont(path string, size float64) (*anya.Font, error) {
	if path == "" {
		return anya.DefaultFont(size)
	}
	return anya.LoadFontFile(path, size)
}

// loadThemes fills the shared theme table and starts the file watcher.
func (a *App) loadThemes() error {
	table := anya.NewThemeTable()
	loaded, err := themes.Load(a.cfg.Themes.File)
	if err != nil {
		return fmt.Errorf("load themes: %w", err)
	}
	table.Replace(loaded)
	if !table.Has(a.theme) {
		a.logger.Warn("unknown theme, using default", "theme", a.theme)
		a.theme = anya.DefaultThemeName
	}
	a.ui = anya.NewUI(table)

	if a.cfg.Themes.File == "" || !a.cfg.Themes.Watch {
		return nil
	}
	w, err := themes.NewWatcher(a.cfg.Themes.File, a.logger)
	if err != nil {
		a.logger.Warn("theme reload disabled", "error", err)
		return nil
	}
	if err := w.Start(a.ctx); err != nil {
		a.logger.Warn("theme reload disabled", "error", err)
		_ = w.Stop()
		return nil
	}
	a.watcher = w
	return nil
}

// loadBackground prepares the configured background. Any failure drops to
// color mode.
func (a *App) loadBackground() {
	bg := a.cfg.Background
	switch a.bgMode {
	case config.BackgroundAnimation:
		var (
			atlas *anya.Atlas
			err   error
		)
		switch {
		case bg.AtlasPNG != "" && bg.AtlasJSON != "":
			atlas, err = a.textures.LoadPack(backgroundPack, bg.AtlasPNG, bg.AtlasJSON)
		case bg.FramesDir != "":
			atlas, err = a.textures.CreatePack(backgroundPack, bg.FramesDir)
		case bg.GIF != "":
			atlas, err = a.textures.CreatePackGIF(backgroundPack, bg.GIF)
		default:
			err = errors.New("no frames_dir, gif or atlas configured")
		}
		if err != nil {
			a.logger.Warn("animated background unavailable", "error", err)
			a.bgMode = config.BackgroundColor
			return
		}
		a.setAtlas(atlas)
	case config.BackgroundImage:
		if err := a.setImage(bg.Image); err != nil {
			a.logger.Warn("background image unavailable", "path", bg.Image, "error", err)
			a.bgMode = config.BackgroundColor
		}
	}
}

func (a *App) setAtlas(atlas *anya.Atlas) {
	a.atlas = atlas
	a.anim.SetFrames(atlas.Frames())
	a.speed = a.cfg.Background.FrameSpeedMS
	if d := atlas.MeanDelay(); d > 0 {
		a.speed = float64(d.Milliseconds())
	}
	a.bgMode = config.BackgroundAnimation
}

func (a *App) setImage(path string) error {
	t, err := a.textures.Load(path)
	if err != nil {
		return err
	}
	a.bgImage = t
	a.bgMode = config.BackgroundImage
	return nil
}

// onLayerChange re-gates buttons, closes any modal picker and starts the
// cross-fade.
func (a *App) onLayerChange(from, to string) {
	a.logger.Debug("layer changed", "from", from, "to", to)
	a.closePicker()
	if to == LayerThemeEditor {
		a.openPicker(cmdEditButton, editorPickerBounds, false)
	}
	a.applyEnablement()
	if from != "" {
		a.fadeTween = anya.NewTweenFrom(&a.fade, 1, 0, fadeMS, ease.OutQuad)
	}
}

// applyEnablement enables the current layer's buttons, minus collapsed ones.
func (a *App) applyEnablement() {
	a.ui.SetEnabledForLayer(a.scenes.CurrentName())
	if a.expanded {
		return
	}
	for _, b := range a.collapsible {
		b.Enabled = false
	}
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.screenshot = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.debug.Toggle()
	}
	return a.tick(a.input.Poll())
}

// tick runs one fixed step over events.
func (a *App) tick(events []anya.Event) error {
	a.drainReloads()
	for _, ev := range events {
		a.handle(ev)
	}
	a.ui.Update(anya.Event{Type: anya.EventNone}, a.dt)
	if a.bgMode == config.BackgroundAnimation {
		a.anim.Update(a.speed, a.dt)
	}
	a.fadeTween.Update(float32(a.dt))
	a.debug.Update(a.dt, a.stats)
	if a.quit {
		return ebiten.Termination
	}
	return nil
}

func (a *App) stats() anya.DebugStats {
	return anya.DebugStats{
		Scene:    a.scenes.CurrentName(),
		Textures: a.textures.Len(),
		Packs:    a.textures.Packs(),
	}
}

// drainReloads applies every pending theme file reload.
func (a *App) drainReloads() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case r := <-a.watcher.Updates():
			if r.Err != nil {
				a.logger.Warn("theme reload failed", "error", r.Err)
				continue
			}
			a.ui.Themes().Replace(r.Themes)
			a.logger.Info("themes reloaded", "count", len(r.Themes))
		default:
			return
		}
	}
}

// Layout implements ebiten.Game.
func (a *App) Layout(_, _ int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Input returns the input source, for injecting synthetic clicks.
func (a *App) Input() *anya.Input {
	return a.input
}

// Scenes returns the layer registry.
func (a *App) Scenes() *anya.SceneRegistry {
	return a.scenes
}

// UI returns the button subsystem.
func (a *App) UI() *anya.UI {
	return a.ui
}

// Button returns the first button with text on layer.
func (a *App) Button(layer, text string) (*anya.Button, bool) {
	for _, b := range a.ui.Buttons() {
		if b.Layer == layer && b.Text == text {
			return b, true
		}
	}
	return nil, false
}

// Close stops the watcher and releases textures and audio.
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop theme watcher", "error", err)
		}
	}
	a.closePicker()
	a.textures.Close()
	if a.player != nil {
		a.player.Close()
	}
}

func isGIF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gif")
}
