package anya

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Animation steps through a fixed-size frame table on a timer and draws the
// current clip from an atlas texture.
//
// An Animation with no frames is idle: Update and Draw do nothing. Once frames
// are set it plays forever, wrapping back to the first frame.
type Animation struct {
	frames  []Frame
	current int
	elapsed float64
}

// AddAnimation builds a frame table for a horizontal strip. Frame i clips
// {(i+originX)*cellW, originY, cellW, cellH}. It panics when frameCount is
// zero. Calling it again replaces the table and restarts playback.
func (a *Animation) AddAnimation(frameCount, originX, originY, cellW, cellH int) {
	if frameCount == 0 {
		panic("anya: AddAnimation with zero frames")
	}
	frames := make([]Frame, frameCount)
	for i := range frames {
		frames[i] = Frame{
			X:      (i + originX) * cellW,
			Y:      originY,
			Width:  cellW,
			Height: cellH,
		}
	}
	a.SetFrames(frames)
}

// SetFrames replaces the frame table, typically with Atlas.Frames, and
// restarts playback.
func (a *Animation) SetFrames(frames []Frame) {
	a.frames = frames
	a.Reset()
}

// Reset rewinds to the first frame and clears accumulated time.
func (a *Animation) Reset() {
	a.current = 0
	a.elapsed = 0
}

// Playing reports whether the animation has frames.
func (a *Animation) Playing() bool {
	return len(a.frames) > 0
}

// FrameCount returns the number of frames.
func (a *Animation) FrameCount() int {
	return len(a.frames)
}

// CurrentFrame returns the index of the frame being shown.
func (a *Animation) CurrentFrame() int {
	return a.current
}

// Frame returns the clip for frame i.
func (a *Animation) Frame(i int) Frame {
	if i < 0 || i >= len(a.frames) {
		panic(fmt.Sprintf("anya: frame %d out of range [0, %d)", i, len(a.frames)))
	}
	return a.frames[i]
}

// Update adds dt to the accumulated time. Once it reaches speed, the
// accumulator resets to zero and the animation advances one frame. speed is
// the per-frame dwell time in the same unit as dt.
func (a *Animation) Update(speed, dt float64) {
	if len(a.frames) == 0 {
		return
	}
	a.elapsed += dt
	if a.elapsed >= speed {
		a.elapsed = 0
		a.current = (a.current + 1) % len(a.frames)
	}
}

// Draw blits the current frame of atlas to dst at (x, y). A scale of zero or
// less draws at native size.
func (a *Animation) Draw(atlas *Texture, dst *ebiten.Image, x, y, scale float64) {
	if len(a.frames) == 0 || atlas == nil || atlas.image == nil {
		return
	}
	clip := a.frames[a.current]
	if clip.Width <= 0 || clip.Height <= 0 {
		return
	}
	sub := atlas.image.SubImage(clip.Rect()).(*ebiten.Image)
	dr := a.destRect(x, y, scale)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(dr.Dx())/float64(clip.Width), float64(dr.Dy())/float64(clip.Height))
	op.GeoM.Translate(float64(dr.Min.X), float64(dr.Min.Y))
	dst.DrawImage(sub, &op)
}

// destRect returns where Draw places the current frame.
func (a *Animation) destRect(x, y, scale float64) image.Rectangle {
	if len(a.frames) == 0 {
		return image.Rectangle{}
	}
	if scale <= 0 {
		scale = 1
	}
	clip := a.frames[a.current]
	w := int(float64(clip.Width) * scale)
	h := int(float64(clip.Height) * scale)
	return image.Rect(int(x), int(y), int(x)+w, int(y)+h)
}
