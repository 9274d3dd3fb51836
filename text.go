package anya

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 for TrueType rendering at a fixed size.
type Font struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadFont loads a TrueType or OpenType font from raw data at the given size.
func LoadFont(data []byte, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("anya: font size %g must be positive", size)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("anya: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, size: size, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// LoadFontFile reads and loads the font at path.
func LoadFontFile(path string, size float64) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("anya: read font: %w", err)
	}
	return LoadFont(data, size)
}

// DefaultFont returns Go Regular at the given size.
func DefaultFont(size float64) (*Font, error) {
	return LoadFont(goregular.TTF, size)
}

// MeasureString returns the width and height of s laid out in f.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// Label returns a texture holding content rendered in white with f, stored
// under key. The texture is re-rendered only when content or f differs from
// the previous call for key; otherwise the cached texture is returned.
func (r *Registry) Label(key, content string, f *Font) (*Texture, error) {
	if f == nil {
		return nil, fmt.Errorf("anya: label %q: nil font", key)
	}
	if t, ok := r.textures[key]; ok {
		if t.font == f && t.source == content {
			return t, nil
		}
		if t.font == nil {
			return nil, fmt.Errorf("%w: %q is not a label", ErrTextureExists, key)
		}
		if err := r.Remove(key); err != nil {
			return nil, err
		}
	}

	mw, mh := f.MeasureString(content)
	w := max(int(math.Ceil(mw)), 1)
	h := max(int(math.Ceil(mh)), 1)
	img := ebiten.NewImage(w, h)
	if content != "" {
		op := &text.DrawOptions{}
		op.LineSpacing = f.lh
		text.Draw(img, content, f.face, op)
	}

	t := newImageTexture(key, img)
	t.source = content
	t.font = f
	if err := r.Add(key, t); err != nil {
		img.Deallocate()
		return nil, err
	}
	return t, nil
}
