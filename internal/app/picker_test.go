package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phanxgames/anya"
)

func TestColorPicker_Regions(t *testing.T) {
	p := NewColorPicker(anya.Rect{X: 10, Y: 10, Width: 100, Height: 50})
	sq, bar := p.SquareRect(), p.HueRect()

	assert.Equal(t, anya.Rect{X: 10, Y: 10, Width: 86, Height: 50}, sq)
	assert.Equal(t, anya.Rect{X: 100, Y: 10, Width: 10, Height: 50}, bar)
	assert.False(t, p.Contains(anya.Vec2{X: 98, Y: 20}), "gap between square and bar")
}

func TestColorPicker_PickSquare(t *testing.T) {
	p := NewColorPicker(anya.Rect{X: 0, Y: 0, Width: 114, Height: 100})
	sq := p.SquareRect()

	assert.True(t, p.Pick(anya.Vec2{X: sq.Width / 2, Y: sq.Height / 4}))
	assert.InDelta(t, 0.5, p.Sat, 1e-9)
	assert.InDelta(t, 0.75, p.Val, 1e-9)
}

func TestColorPicker_PickHue(t *testing.T) {
	p := NewColorPicker(anya.Rect{X: 0, Y: 0, Width: 114, Height: 100})
	bar := p.HueRect()

	assert.True(t, p.Pick(anya.Vec2{X: bar.X + 1, Y: 50}))
	assert.InDelta(t, 180, p.Hue, 1e-9)

	p.Pick(anya.Vec2{X: bar.X + 1, Y: 100})
	assert.Less(t, p.Hue, 360.0, "hue stays below 360")
}

func TestColorPicker_Miss(t *testing.T) {
	p := NewColorPicker(anya.Rect{X: 10, Y: 10, Width: 100, Height: 50})
	hue, sat, val := p.Hue, p.Sat, p.Val
	assert.False(t, p.Pick(anya.Vec2{X: 0, Y: 0}))
	assert.Equal(t, hue, p.Hue)
	assert.Equal(t, sat, p.Sat)
	assert.Equal(t, val, p.Val)
}

func TestColorPicker_SetColorRoundTrip(t *testing.T) {
	p := NewColorPicker(anya.Rect{Width: 100, Height: 100})
	want := anya.RGB(30, 144, 255)
	p.SetColor(want)
	got := p.Color()
	assert.InDelta(t, want.R, got.R, 1e-6)
	assert.InDelta(t, want.G, got.G, 1e-6)
	assert.InDelta(t, want.B, got.B, 1e-6)
	assert.Equal(t, 1.0, got.A)
}

func TestSVImage_Corners(t *testing.T) {
	img := svImage(8, 8, 0)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, rgbaAt(img.Pix, img.PixOffset(7, 0)), "top-right is the pure hue")
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, rgbaAt(img.Pix, img.PixOffset(0, 0)), "top-left is white")
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, rgbaAt(img.Pix, img.PixOffset(3, 7)), "bottom row is black")
}

func rgbaAt(pix []uint8, i int) [4]uint8 {
	return [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func TestClock_Format(t *testing.T) {
	at := func(h, m int) func() time.Time {
		return func() time.Time { return time.Date(2024, 1, 15, h, m, 0, 0, time.UTC) }
	}
	tests := []struct {
		name  string
		clock Clock
		want  string
	}{
		{"morning", Clock{Format: "03:04PM", Now: at(9, 5)}, "09:05AM"},
		{"noon", Clock{Format: "03:04PM", Now: at(12, 0)}, "12:00PM"},
		{"midnight", Clock{Format: "03:04PM", Now: at(0, 30)}, "12:30AM"},
		{"24h", Clock{Format: "15:04", Now: at(21, 7)}, "21:07"},
		{"date", Clock{Format: "03:04PM", DateFormat: "Mon Jan 2", ShowDate: true, Now: at(21, 7)}, "09:07PM\nMon Jan 15"},
		{"date hidden", Clock{Format: "03:04PM", DateFormat: "Mon Jan 2", Now: at(21, 7)}, "09:07PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clock.Text())
		})
	}
}

func TestClockPosition(t *testing.T) {
	x, y := clockPosition(148, 89)
	assert.Equal(t, 18.0, x)
	assert.Equal(t, 55.0, y)
}
