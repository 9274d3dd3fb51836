package anya

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates a single float64 field. Create one with NewTween and call
// Update(dt) each tick; the field is written on every update.
// Callers own and update their tweens; there is no global manager.
type Tween struct {
	tween *gween.Tween
	field *float64
	Done  bool
}

// NewTween animates *field from its current value to to over duration using
// the easing function. Duration and dt share one time unit.
func NewTween(field *float64, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return &Tween{
		tween: gween.New(float32(*field), float32(to), duration, fn),
		field: field,
	}
}

// NewTweenFrom sets *field to from and animates it to to.
func NewTweenFrom(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *Tween {
	*field = from
	return NewTween(field, to, duration, fn)
}

// Update advances the tween by dt and writes the value to the field.
// Updating a finished tween is a no-op.
func (t *Tween) Update(dt float32) {
	if t == nil || t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	*t.field = float64(val)
	t.Done = finished
}
