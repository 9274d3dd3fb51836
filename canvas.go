package anya

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Canvas is a CPU offscreen render target. The atlas packer composes frames
// into a Canvas and uploads the result once with Upload.
type Canvas struct {
	pix  *image.RGBA
	w, h int
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		pix: image.NewRGBA(image.Rect(0, 0, w, h)),
		w:   w,
		h:   h,
	}
}

// Image returns the backing RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.pix
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.w
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.h
}

// Clear fills the canvas with transparent black.
func (c *Canvas) Clear() {
	clear(c.pix.Pix)
}

// Fill fills the entire canvas with the given color.
func (c *Canvas) Fill(col Color) {
	draw.Draw(c.pix, c.pix.Bounds(), image.NewUniform(col.toRGBA()), image.Point{}, draw.Src)
}

// DrawImageAt draws src with its top-left corner at (x, y).
func (c *Canvas) DrawImageAt(src image.Image, x, y int, blend BlendMode) {
	sb := src.Bounds()
	dr := image.Rect(x, y, x+sb.Dx(), y+sb.Dy())
	draw.Draw(c.pix, dr, src, sb.Min, blend.drawOp())
}

// DrawImageScaled stretches src into dst using bilinear filtering.
func (c *Canvas) DrawImageScaled(src image.Image, dst image.Rectangle, blend BlendMode) {
	draw.ApproxBiLinear.Scale(c.pix, dst, src, src.Bounds(), blend.drawOp(), nil)
}

// SubImage returns the pixels inside r. The result shares memory with the canvas.
func (c *Canvas) SubImage(r image.Rectangle) *image.RGBA {
	return c.pix.SubImage(r).(*image.RGBA)
}

// Upload creates a texture from the canvas and keeps the CPU pixels on it.
func (c *Canvas) Upload(key string) *Texture {
	t := NewTexture(key, c.pix)
	t.pixels = c.pix
	return t
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.pix); err != nil {
		return fmt.Errorf("anya: encode canvas: %w", err)
	}
	return nil
}

// toRGBA returns img as *image.RGBA anchored at the origin, converting when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
