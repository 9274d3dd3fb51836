package anya

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func writeImagePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestCanvasFillAndClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Fill(RGB(255, 0, 0))
	if got := c.Image().RGBAAt(3, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("after Fill = %v, want red", got)
	}
	c.Clear()
	if got := c.Image().RGBAAt(3, 3); got != (color.RGBA{}) {
		t.Errorf("after Clear = %v, want transparent", got)
	}
}

func TestCanvasDrawImageAtBlend(t *testing.T) {
	half := image.NewRGBA(image.Rect(0, 0, 1, 1))
	half.SetRGBA(0, 0, color.RGBA{0, 0, 0, 0})

	c := NewCanvas(2, 1)
	c.Fill(RGB(0, 255, 0))
	c.DrawImageAt(half, 0, 0, BlendNormal)
	if got := c.Image().RGBAAt(0, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("Over with transparent src = %v, want green kept", got)
	}
	c.DrawImageAt(half, 1, 0, BlendNone)
	if got := c.Image().RGBAAt(1, 0); got != (color.RGBA{}) {
		t.Errorf("Src with transparent src = %v, want transparent", got)
	}
}

func TestCanvasDrawImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{0, 0, 255, 255})

	c := NewCanvas(8, 8)
	c.DrawImageScaled(src, image.Rect(0, 0, 8, 8), BlendNone)
	if got := c.Image().RGBAAt(7, 7); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("scaled pixel = %v, want blue", got)
	}
}

func TestCanvasEncodePNG(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Fill(RGB(9, 8, 7))
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}

func TestCanvasUploadKeepsPixels(t *testing.T) {
	c := NewCanvas(2, 2)
	tex := c.Upload("up")
	if tex.Pixels() != c.Image() {
		t.Error("Upload should keep the canvas pixels on the texture")
	}
	if tex.Key != "up" || tex.Width() != 2 {
		t.Errorf("Key = %q Width = %d", tex.Key, tex.Width())
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(5, 5, color.NRGBA{1, 2, 3, 255})
	got := toRGBA(img)
	if got.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v, want origin-anchored 2x1", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("pixel = %v", c)
	}
}
