package app

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/anya"
	"github.com/phanxgames/anya/internal/themes"
)

const (
	hueBarWidth = 10
	pickerGap   = 4
)

// ColorPicker is an HSV picker: a saturation/value square for the current hue
// and a vertical hue bar to its right.
type ColorPicker struct {
	Bounds anya.Rect

	Hue, Sat, Val float64 // hue in degrees [0, 360), sat and val in [0, 1]

	square    *anya.Texture
	squareHue float64
	bar       *anya.Texture
}

// NewColorPicker creates a picker at bounds showing opaque red.
func NewColorPicker(bounds anya.Rect) *ColorPicker {
	return &ColorPicker{Bounds: bounds, Sat: 1, Val: 1}
}

// SquareRect returns the saturation/value area.
func (p *ColorPicker) SquareRect() anya.Rect {
	return anya.Rect{
		X:      p.Bounds.X,
		Y:      p.Bounds.Y,
		Width:  p.Bounds.Width - hueBarWidth - pickerGap,
		Height: p.Bounds.Height,
	}
}

// HueRect returns the hue bar area.
func (p *ColorPicker) HueRect() anya.Rect {
	return anya.Rect{
		X:      p.Bounds.X + p.Bounds.Width - hueBarWidth,
		Y:      p.Bounds.Y,
		Width:  hueBarWidth,
		Height: p.Bounds.Height,
	}
}

// Contains reports whether pt is over the square or the hue bar.
func (p *ColorPicker) Contains(pt anya.Vec2) bool {
	return anya.CursorInBounds(p.SquareRect(), pt) || anya.CursorInBounds(p.HueRect(), pt)
}

// Pick updates the picker from a click at pt. A click on the square sets
// saturation (left to right) and value (top to bottom, bright first); a click
// on the bar sets the hue (top to bottom). It reports whether pt hit either.
func (p *ColorPicker) Pick(pt anya.Vec2) bool {
	if sq := p.SquareRect(); anya.CursorInBounds(sq, pt) {
		p.Sat = clampUnit((pt.X - sq.X) / sq.Width)
		p.Val = 1 - clampUnit((pt.Y-sq.Y)/sq.Height)
		return true
	}
	if bar := p.HueRect(); anya.CursorInBounds(bar, pt) {
		p.Hue = min(clampUnit((pt.Y-bar.Y)/bar.Height)*360, 359.999)
		return true
	}
	return false
}

// Color returns the selected color.
func (p *ColorPicker) Color() anya.Color {
	return themes.FromColorful(colorful.Hsv(p.Hue, p.Sat, p.Val))
}

// SetColor moves the picker to c.
func (p *ColorPicker) SetColor(c anya.Color) {
	p.Hue, p.Sat, p.Val = themes.ToColorful(c).Hsv()
}

// Draw renders the square, the bar and the two selection markers.
func (p *ColorPicker) Draw(dst *ebiten.Image) {
	sq, bar := p.SquareRect(), p.HueRect()
	if p.square == nil || p.squareHue != p.Hue {
		if p.square != nil {
			p.square.Dispose()
		}
		p.square = anya.NewTexture("picker:square", svImage(int(sq.Width), int(sq.Height), p.Hue))
		p.squareHue = p.Hue
	}
	if p.bar == nil {
		p.bar = anya.NewTexture("picker:hue", hueImage(int(bar.Width), int(bar.Height)))
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(sq.X, sq.Y)
	dst.DrawImage(p.square.Image(), &op)
	op.GeoM.Reset()
	op.GeoM.Translate(bar.X, bar.Y)
	dst.DrawImage(p.bar.Image(), &op)

	mx := float32(sq.X + p.Sat*sq.Width)
	my := float32(sq.Y + (1-p.Val)*sq.Height)
	vector.StrokeRect(dst, mx-2, my-2, 4, 4, 1, color.White, false)
	hy := float32(bar.Y + p.Hue/360*bar.Height)
	vector.StrokeLine(dst, float32(bar.X)-1, hy, float32(bar.X+bar.Width)+1, hy, 1, color.White, false)
}

// Dispose frees the picker's textures.
func (p *ColorPicker) Dispose() {
	if p.square != nil {
		p.square.Dispose()
		p.square = nil
	}
	if p.bar != nil {
		p.bar.Dispose()
		p.bar = nil
	}
}

// svImage renders the saturation/value plane for hue: saturation grows to
// the right and value falls toward the bottom.
func svImage(w, h int, hue float64) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		v := 1 - float64(y)/float64(max(h-1, 1))
		for x := range w {
			s := float64(x) / float64(max(w-1, 1))
			img.Set(x, y, colorful.Hsv(hue, s, v).Clamped())
		}
	}
	return img
}

// hueImage renders a vertical hue gradient from 0 to 360 degrees.
func hueImage(w, h int) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		c := colorful.Hsv(float64(y)/float64(h)*360, 1, 1).Clamped()
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
