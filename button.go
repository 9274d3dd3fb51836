package anya

import "fmt"

// Hover fade constants. Alpha values are on the 0-255 scale.
const (
	HoverAlphaMin = 191.25 // resting alpha, 75% of 255
	HoverAlphaMax = 255.0  // fully opaque while hovered
	HoverFadeRate = 0.35   // alpha units per unit of dt (milliseconds)
)

// Action is the click intent attached to a button when it is created. The
// shell interprets actions in one place instead of comparing button identities.
type Action uint8

const (
	ActionNone     Action = iota // no built-in behavior; OnClick only
	ActionQuit                   // exit the application
	ActionMinimize               // minimize the window
	ActionNavigate               // switch to the layer named by Target
	ActionOpenURL                // open the URL in Target
	ActionCommand                // shell command named by Target
)

var actionNames = [...]string{"none", "quit", "minimize", "navigate", "open-url", "command"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Button is an interactive rectangle tagged with the layer it belongs to.
type Button struct {
	Bounds Rect
	Text   string
	Icon   *Texture // optional, stretched to Bounds
	Theme  string   // id into the UI's ThemeTable
	Layer  string   // owning layer name; lookup only

	// Alpha is the hover-driven opacity in [HoverAlphaMin, HoverAlphaMax].
	Alpha   float64
	Enabled bool

	Action  Action
	Target  string
	OnClick func(*Button)

	hovered bool
}

// ButtonOptions configures UI.CreateButton.
type ButtonOptions struct {
	Text                string
	Icon                *Texture
	Theme               string
	Layer               string
	X, Y, Width, Height float64
	Action              Action
	Target              string
	OnClick             func(*Button)
}

// Hovered reports whether the cursor was over the button at the last update.
func (b *Button) Hovered() bool {
	return b.hovered
}

// CanQuit reports whether clicking the button exits the application.
func (b *Button) CanQuit() bool {
	return b.Action == ActionQuit
}

// CanMinimize reports whether clicking the button minimizes the window.
func (b *Button) CanMinimize() bool {
	return b.Action == ActionMinimize
}

// Contains reports whether p lies inside the button's inclusive bounds.
func (b *Button) Contains(p Vec2) bool {
	return CursorInBounds(b.Bounds, p)
}

// SetPosition moves the button.
func (b *Button) SetPosition(x, y float64) {
	b.Bounds.X, b.Bounds.Y = x, y
}

// SetSize resizes the button. It panics on a non-positive size.
func (b *Button) SetSize(w, h float64) {
	checkButtonSize(b.Text, w, h)
	b.Bounds.Width, b.Bounds.Height = w, h
}

// updateAlpha moves Alpha toward HoverAlphaMax while hovered and toward
// HoverAlphaMin otherwise, at HoverFadeRate per unit of dt.
func (b *Button) updateAlpha(hovered bool, dt float64) {
	b.hovered = hovered
	step := HoverFadeRate * dt
	if hovered {
		b.Alpha += step
	} else {
		b.Alpha -= step
	}
	b.Alpha = min(max(b.Alpha, HoverAlphaMin), HoverAlphaMax)
}

func checkButtonSize(text string, w, h float64) {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("anya: button %q has non-positive size %gx%g", text, w, h))
	}
}
