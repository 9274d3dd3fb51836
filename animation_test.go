package anya

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestAddAnimationFrameTable(t *testing.T) {
	var a Animation
	a.AddAnimation(4, 0, 0, 16, 24)

	if a.FrameCount() != 4 {
		t.Fatalf("FrameCount = %d, want 4", a.FrameCount())
	}
	for i := 0; i < 4; i++ {
		want := Frame{X: i * 16, Y: 0, Width: 16, Height: 24}
		if got := a.Frame(i); got != want {
			t.Errorf("Frame(%d) = %+v, want %+v", i, got, want)
		}
	}
}

func TestAddAnimationOrigin(t *testing.T) {
	var a Animation
	a.AddAnimation(2, 3, 7, 10, 10)

	if got := a.Frame(0); got.X != 30 || got.Y != 7 {
		t.Errorf("Frame(0) = %+v, want X=30 Y=7", got)
	}
	if got := a.Frame(1); got.X != 40 {
		t.Errorf("Frame(1).X = %d, want 40", got.X)
	}
}

func TestAddAnimationZeroFramesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero frames")
		}
	}()
	var a Animation
	a.AddAnimation(0, 0, 0, 16, 16)
}

func TestAddAnimationReplacesAndResets(t *testing.T) {
	var a Animation
	a.AddAnimation(4, 0, 0, 16, 16)
	a.Update(10, 10)
	a.Update(10, 10)
	if a.CurrentFrame() != 2 {
		t.Fatalf("CurrentFrame = %d, want 2", a.CurrentFrame())
	}

	a.AddAnimation(2, 0, 0, 8, 8)
	if a.FrameCount() != 2 {
		t.Errorf("FrameCount = %d, want 2", a.FrameCount())
	}
	if a.CurrentFrame() != 0 {
		t.Errorf("CurrentFrame = %d after replace, want 0", a.CurrentFrame())
	}
}

func TestAnimationAdvancesAtThreshold(t *testing.T) {
	var a Animation
	a.AddAnimation(3, 0, 0, 16, 16)

	a.Update(100, 50)
	if a.CurrentFrame() != 0 {
		t.Errorf("CurrentFrame = %d after 50ms, want 0", a.CurrentFrame())
	}
	a.Update(100, 50)
	if a.CurrentFrame() != 1 {
		t.Errorf("CurrentFrame = %d after 100ms, want 1", a.CurrentFrame())
	}
}

func TestAnimationWraps(t *testing.T) {
	var a Animation
	a.AddAnimation(4, 0, 0, 16, 16)
	for i := 0; i < 4; i++ {
		a.Update(100, 100)
	}
	if a.CurrentFrame() != 0 {
		t.Errorf("CurrentFrame = %d after full cycle, want 0", a.CurrentFrame())
	}
}

func TestAnimationDiscardsOvershoot(t *testing.T) {
	var a Animation
	a.AddAnimation(4, 0, 0, 16, 16)

	// A single large dt advances only one frame and the remainder is dropped.
	a.Update(100, 350)
	if a.CurrentFrame() != 1 {
		t.Fatalf("CurrentFrame = %d, want 1", a.CurrentFrame())
	}
	a.Update(100, 60)
	if a.CurrentFrame() != 1 {
		t.Errorf("CurrentFrame = %d, want 1 (overshoot must not carry)", a.CurrentFrame())
	}
}

func TestAnimationTickRate(t *testing.T) {
	var a Animation
	a.AddAnimation(8, 0, 0, 16, 16)

	// 60 ticks per second at speed 100ms advances once every 6 ticks.
	dt := 1000.0 / 60
	for i := 0; i < 60; i++ {
		a.Update(100, dt)
	}
	if a.CurrentFrame() != 10%8 {
		t.Errorf("CurrentFrame = %d, want %d", a.CurrentFrame(), 10%8)
	}
}

func TestAnimationIdle(t *testing.T) {
	var a Animation
	if a.Playing() {
		t.Error("zero Animation should not be playing")
	}
	a.Update(100, 1000)
	if a.CurrentFrame() != 0 {
		t.Errorf("CurrentFrame = %d, want 0", a.CurrentFrame())
	}
	a.Draw(nil, nil, 0, 0, 1)
}

func TestAnimationFrameOutOfRangePanics(t *testing.T) {
	var a Animation
	a.AddAnimation(2, 0, 0, 16, 16)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range frame")
		}
	}()
	a.Frame(2)
}

func TestAnimationDestRect(t *testing.T) {
	var a Animation
	a.AddAnimation(2, 0, 0, 20, 10)

	tests := []struct {
		scale float64
		want  image.Rectangle
	}{
		{1, image.Rect(5, 6, 25, 16)},
		{2, image.Rect(5, 6, 45, 26)},
		{0, image.Rect(5, 6, 25, 16)},
		{-1, image.Rect(5, 6, 25, 16)},
	}
	for _, tt := range tests {
		if got := a.destRect(5, 6, tt.scale); got != tt.want {
			t.Errorf("destRect(scale=%g) = %v, want %v", tt.scale, got, tt.want)
		}
	}
}

func TestAnimationDrawDoesNotPanic(t *testing.T) {
	var a Animation
	a.AddAnimation(4, 0, 0, 8, 8)
	atlas := newImageTexture("strip", ebiten.NewImage(32, 8))
	dst := ebiten.NewImage(64, 64)

	a.Draw(atlas, dst, 0, 0, 1)
	a.Update(1, 1)
	a.Draw(atlas, dst, 10, 10, 3)
}

func TestAnimationSetFramesFromAtlas(t *testing.T) {
	s := newStripSheet(3, 12, 4)
	var a Animation
	a.SetFrames(s.Frames())

	if a.FrameCount() != 3 {
		t.Fatalf("FrameCount = %d, want 3", a.FrameCount())
	}
	if got := a.Frame(2); got != (Frame{X: 24, Y: 0, Width: 12, Height: 4}) {
		t.Errorf("Frame(2) = %+v", got)
	}
}
