package anya

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DefaultDebugInterval is how often, in milliseconds, the overlay text is
// refreshed.
const DefaultDebugInterval = 500.0

// DebugStats is the per-refresh snapshot shown by DebugOverlay.
type DebugStats struct {
	Scene    string
	Textures int
	Packs    int
}

// DebugOverlay prints FPS, TPS and shell state in the window corner. Text is
// rebuilt every Interval milliseconds rather than every tick.
type DebugOverlay struct {
	Visible  bool
	Interval float64

	elapsed float64
	text    string
	logger  *slog.Logger
}

// NewDebugOverlay creates a hidden overlay. Each refresh is also logged at
// debug level to logger when non-nil.
func NewDebugOverlay(logger *slog.Logger) *DebugOverlay {
	return &DebugOverlay{Interval: DefaultDebugInterval, logger: logger}
}

// Toggle flips visibility.
func (d *DebugOverlay) Toggle() {
	d.Visible = !d.Visible
}

// Update advances the refresh timer by dt and rebuilds the text when due.
// stats is only called on refresh.
func (d *DebugOverlay) Update(dt float64, stats func() DebugStats) {
	d.elapsed += dt
	if d.text != "" && d.elapsed < d.Interval {
		return
	}
	d.elapsed = 0

	fps, tps := ebiten.ActualFPS(), ebiten.ActualTPS()
	var s DebugStats
	if stats != nil {
		s = stats()
	}
	d.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nscene: %s\ntextures: %d\npacks: %d",
		fps, tps, s.Scene, s.Textures, s.Packs)
	if d.logger != nil {
		d.logger.Debug("frame stats", "fps", fps, "tps", tps,
			"scene", s.Scene, "textures", s.Textures, "packs", s.Packs)
	}
}

// Text returns the most recent overlay text.
func (d *DebugOverlay) Text() string {
	return d.text
}

// Draw prints the overlay onto dst when visible.
func (d *DebugOverlay) Draw(dst *ebiten.Image) {
	if !d.Visible || d.text == "" {
		return
	}
	ebitenutil.DebugPrintAt(dst, d.text, 2, 2)
}

// Packs returns the number of registered atlas packs.
func (r *Registry) Packs() int {
	return len(r.packs)
}
