package anya

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// RGB returns an opaque Color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// RGBA implements color.Color, returning premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// CursorInBounds reports whether p lies inside the inclusive rectangle
// [r.X, r.X+r.Width] × [r.Y, r.Y+r.Height]. It is used for buttons and for
// ad-hoc interaction zones such as sliders and swatches.
func CursorInBounds(r Rect, p Vec2) bool {
	return r.Contains(p.X, p.Y)
}

// BlendMode selects a compositing operation.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// drawOp returns the CPU compositing operator for canvas draws.
func (b BlendMode) drawOp() draw.Op {
	if b == BlendNone {
		return draw.Src
	}
	return draw.Over
}

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventNone        EventType = iota // no input this tick; used to advance hover fades
	EventPointerMove                  // the pointer moved
	EventPointerDown                  // a pointer button was pressed
	EventPointerUp                    // a pointer button was released
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// toRGBA converts a Color to a premultiplied color.Color for fills.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// colorRGBA implements the color.Color interface for premultiplied values.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
