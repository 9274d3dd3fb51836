package anya

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UI owns every button, tracks the cursor, animates hover fades and draws
// button chrome. It knows nothing about layers beyond the names on buttons;
// the shell correlates them with the SceneRegistry.
type UI struct {
	buttons     []*Button
	cursor      Vec2
	cursorKnown bool
	themes      *ThemeTable
}

// NewUI creates an empty UI drawing with themes. A nil table gets a fresh
// NewThemeTable.
func NewUI(themes *ThemeTable) *UI {
	if themes == nil {
		themes = NewThemeTable()
	}
	return &UI{themes: themes}
}

// Themes returns the shared theme table.
func (u *UI) Themes() *ThemeTable {
	return u.themes
}

// CreateButton appends a disabled button at resting alpha. It panics on a
// non-positive size.
func (u *UI) CreateButton(opts ButtonOptions) *Button {
	checkButtonSize(opts.Text, opts.Width, opts.Height)
	theme := opts.Theme
	if theme == "" {
		theme = DefaultThemeName
	}
	b := &Button{
		Bounds:  Rect{X: opts.X, Y: opts.Y, Width: opts.Width, Height: opts.Height},
		Text:    opts.Text,
		Icon:    opts.Icon,
		Theme:   theme,
		Layer:   opts.Layer,
		Alpha:   HoverAlphaMin,
		Action:  opts.Action,
		Target:  opts.Target,
		OnClick: opts.OnClick,
	}
	u.buttons = append(u.buttons, b)
	return b
}

// Buttons returns the buttons in creation order. The returned slice MUST NOT
// be mutated.
func (u *UI) Buttons() []*Button {
	return u.buttons
}

// Cursor returns the last known pointer position.
func (u *UI) Cursor() Vec2 {
	return u.cursor
}

// Update records the pointer position carried by ev, then advances the hover
// fade of every button, enabled or not, by dt.
func (u *UI) Update(ev Event, dt float64) {
	switch ev.Type {
	case EventPointerMove, EventPointerDown, EventPointerUp:
		u.cursor = Vec2{ev.X, ev.Y}
		u.cursorKnown = true
	}
	for _, b := range u.buttons {
		b.updateAlpha(u.cursorKnown && b.Contains(u.cursor), dt)
	}
}

// Dispatch handles a left-button press: the first enabled button of layer
// under the pointer runs its OnClick and is returned. Other events and misses
// return nil.
func (u *UI) Dispatch(ev Event, layer string) *Button {
	if ev.Type != EventPointerDown || ev.Button != MouseButtonLeft {
		return nil
	}
	p := Vec2{ev.X, ev.Y}
	for _, b := range u.buttons {
		if !b.Enabled || b.Layer != layer || !b.Contains(p) {
			continue
		}
		if b.OnClick != nil {
			b.OnClick(b)
		}
		return b
	}
	return nil
}

// SetEnabledForLayer enables the buttons tagged with layer and disables the rest.
func (u *UI) SetEnabledForLayer(layer string) {
	for _, b := range u.buttons {
		b.Enabled = b.Layer == layer
	}
}

// Draw composites b onto dst: background fill, 1px inset outline, 2px outset
// outline, icon stretched to the box, then label centered in the box. label
// is expected to be white text; it is tinted with the theme's text color.
// sx and sy scale the box when both are non-zero.
func (u *UI) Draw(dst *ebiten.Image, b *Button, label *Texture, sx, sy float64) {
	x, y := b.Bounds.X, b.Bounds.Y
	w, h := b.Bounds.Width, b.Bounds.Height
	if sx != 0 && sy != 0 {
		w *= sx
		h *= sy
	}
	th := u.themes.Get(b.Theme)
	alpha := b.Alpha / 255
	outline := th.Outline.WithAlpha(alpha).toRGBA()

	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(dst, fx, fy, fw, fh, th.Background.WithAlpha(alpha).toRGBA(), false)
	vector.StrokeRect(dst, fx+0.5, fy+0.5, fw-1, fh-1, 1, outline, false)
	vector.StrokeRect(dst, fx-1, fy-1, fw+2, fh+2, 2, outline, false)

	if b.Icon != nil && b.Icon.image != nil && b.Icon.w > 0 && b.Icon.h > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(w/float64(b.Icon.w), h/float64(b.Icon.h))
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleAlpha(float32(alpha))
		dst.DrawImage(b.Icon.image, &op)
	}

	if label != nil && label.image != nil {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(x+(w-float64(label.w))/2, y+(h-float64(label.h))/2)
		c := th.Text.WithAlpha(alpha)
		op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
		dst.DrawImage(label.image, &op)
	}
}

// DrawDivider fills r with c, used to separate panels.
func (u *UI) DrawDivider(dst *ebiten.Image, r Rect, c Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.toRGBA(), false)
}
