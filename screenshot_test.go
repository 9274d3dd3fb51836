package anya

import (
	"image/color"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-click", "after-click"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"Settings/Themes", "Settings_Themes"},
		{"special!@#", "special___"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)

	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{255, 127, 0, 128}) {
		t.Errorf("half pixel = %v, want {255 127 0 128}", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	if got := img.NRGBAAt(2, 0); got != (color.NRGBA{}) {
		t.Errorf("transparent pixel = %v", got)
	}
}
