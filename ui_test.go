package anya

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func move(x, y float64) Event {
	return Event{Type: EventPointerMove, X: x, Y: y}
}

func press(x, y float64) Event {
	return Event{Type: EventPointerDown, X: x, Y: y, Button: MouseButtonLeft}
}

func TestCursorInBoundsInclusive(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{10, 10}, true},
		{Vec2{30, 20}, true},
		{Vec2{20, 15}, true},
		{Vec2{9.9, 15}, false},
		{Vec2{30.1, 15}, false},
		{Vec2{20, 20.5}, false},
	}
	for _, tt := range tests {
		if got := CursorInBounds(r, tt.p); got != tt.want {
			t.Errorf("CursorInBounds(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestCreateButtonDefaults(t *testing.T) {
	u := NewUI(nil)
	b := u.CreateButton(ButtonOptions{Text: "x", Layer: "Settings", X: 1, Y: 2, Width: 10, Height: 20})

	if b.Enabled {
		t.Error("new button should be disabled")
	}
	if b.Alpha != HoverAlphaMin {
		t.Errorf("Alpha = %f, want %f", b.Alpha, HoverAlphaMin)
	}
	if b.Theme != DefaultThemeName {
		t.Errorf("Theme = %q, want %q", b.Theme, DefaultThemeName)
	}
	if b.Bounds != (Rect{X: 1, Y: 2, Width: 10, Height: 20}) {
		t.Errorf("Bounds = %+v", b.Bounds)
	}
	if len(u.Buttons()) != 1 {
		t.Errorf("Buttons = %d, want 1", len(u.Buttons()))
	}
}

func TestCreateButtonNonPositiveSizePanics(t *testing.T) {
	for _, size := range [][2]float64{{0, 10}, {10, 0}, {-1, 5}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("size %v: expected panic", size)
				}
			}()
			NewUI(nil).CreateButton(ButtonOptions{Width: size[0], Height: size[1]})
		}()
	}
}

func TestHoverFadeIn(t *testing.T) {
	u := NewUI(nil)
	b := u.CreateButton(ButtonOptions{Width: 10, Height: 10})

	u.Update(move(5, 5), 0)
	if !b.Hovered() {
		t.Fatal("expected hovered")
	}
	u.Update(Event{}, 100)
	want := HoverAlphaMin + HoverFadeRate*100
	if math.Abs(b.Alpha-want) > 1e-9 {
		t.Errorf("Alpha = %f, want %f", b.Alpha, want)
	}
	u.Update(Event{}, 1000)
	if b.Alpha != HoverAlphaMax {
		t.Errorf("Alpha = %f, want clamp at %f", b.Alpha, HoverAlphaMax)
	}
}

func TestHoverFadeOut(t *testing.T) {
	u := NewUI(nil)
	b := u.CreateButton(ButtonOptions{Width: 10, Height: 10})
	b.Alpha = HoverAlphaMax

	u.Update(move(50, 50), 50)
	want := HoverAlphaMax - HoverFadeRate*50
	if math.Abs(b.Alpha-want) > 1e-9 {
		t.Errorf("Alpha = %f, want %f", b.Alpha, want)
	}
	u.Update(Event{}, 1000)
	if b.Alpha != HoverAlphaMin {
		t.Errorf("Alpha = %f, want clamp at %f", b.Alpha, HoverAlphaMin)
	}
}

func TestHoverFadeIgnoresEnabled(t *testing.T) {
	u := NewUI(nil)
	b := u.CreateButton(ButtonOptions{Width: 10, Height: 10})
	u.Update(move(1, 1), 100)
	if b.Alpha <= HoverAlphaMin {
		t.Errorf("disabled button should still fade, Alpha = %f", b.Alpha)
	}
}

func TestHoverNeedsKnownCursor(t *testing.T) {
	u := NewUI(nil)
	b := u.CreateButton(ButtonOptions{X: -2, Y: -15, Width: 25, Height: 50})
	u.Update(Event{}, 100)
	if b.Hovered() || b.Alpha != HoverAlphaMin {
		t.Errorf("button hovered before any pointer event, Alpha = %f", b.Alpha)
	}
}

func TestDispatchSelectsEnabledButtonOfLayer(t *testing.T) {
	u := NewUI(nil)
	var clicked []string
	onClick := func(b *Button) { clicked = append(clicked, b.Text) }
	main := u.CreateButton(ButtonOptions{Text: "+", Layer: "Main", Width: 20, Height: 20, OnClick: onClick})
	set := u.CreateButton(ButtonOptions{Text: "x", Layer: "Settings", Width: 20, Height: 20, OnClick: onClick})

	u.SetEnabledForLayer("Main")
	if !main.Enabled || set.Enabled {
		t.Fatal("SetEnabledForLayer should enable only Main buttons")
	}

	if got := u.Dispatch(press(5, 5), "Main"); got != main {
		t.Errorf("Dispatch = %v, want main button", got)
	}
	if got := u.Dispatch(press(5, 5), "Settings"); got != nil {
		t.Errorf("disabled button dispatched: %v", got.Text)
	}
	if len(clicked) != 1 || clicked[0] != "+" {
		t.Errorf("clicked = %v, want [+]", clicked)
	}
}

func TestDispatchIgnoresNonPress(t *testing.T) {
	u := NewUI(nil)
	b := u.CreateButton(ButtonOptions{Layer: "Main", Width: 20, Height: 20})
	b.Enabled = true

	if u.Dispatch(move(5, 5), "Main") != nil {
		t.Error("move should not dispatch")
	}
	if u.Dispatch(Event{Type: EventPointerDown, X: 5, Y: 5, Button: MouseButtonRight}, "Main") != nil {
		t.Error("right press should not dispatch")
	}
	if u.Dispatch(press(50, 50), "Main") != nil {
		t.Error("miss should not dispatch")
	}
}

func TestDispatchFirstInCreationOrder(t *testing.T) {
	u := NewUI(nil)
	a := u.CreateButton(ButtonOptions{Text: "a", Layer: "L", Width: 20, Height: 20})
	u.CreateButton(ButtonOptions{Text: "b", Layer: "L", Width: 20, Height: 20})
	u.SetEnabledForLayer("L")
	if got := u.Dispatch(press(1, 1), "L"); got != a {
		t.Errorf("Dispatch = %q, want a", got.Text)
	}
}

func TestButtonActions(t *testing.T) {
	u := NewUI(nil)
	quit := u.CreateButton(ButtonOptions{Width: 1, Height: 1, Action: ActionQuit})
	minimize := u.CreateButton(ButtonOptions{Width: 1, Height: 1, Action: ActionMinimize})
	if !quit.CanQuit() || quit.CanMinimize() {
		t.Error("quit button flags wrong")
	}
	if !minimize.CanMinimize() || minimize.CanQuit() {
		t.Error("minimize button flags wrong")
	}
	if ActionOpenURL.String() != "open-url" || Action(99).String() != "Action(99)" {
		t.Errorf("String = %q, %q", ActionOpenURL.String(), Action(99).String())
	}
}

func TestButtonSetSize(t *testing.T) {
	u := NewUI(nil)
	b := u.CreateButton(ButtonOptions{Width: 1, Height: 1})
	b.SetSize(30, 40)
	b.SetPosition(5, 6)
	if b.Bounds != (Rect{X: 5, Y: 6, Width: 30, Height: 40}) {
		t.Errorf("Bounds = %+v", b.Bounds)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero size")
		}
	}()
	b.SetSize(0, 1)
}

func TestUIDrawDoesNotPanic(t *testing.T) {
	u := NewUI(nil)
	icon := newImageTexture("icon", ebiten.NewImage(4, 4))
	label := newImageTexture("label", ebiten.NewImage(8, 6))
	b := u.CreateButton(ButtonOptions{Width: 20, Height: 10, Icon: icon})
	dst := ebiten.NewImage(64, 64)

	u.Draw(dst, b, label, 0, 0)
	u.Draw(dst, b, nil, 2, 2)
	u.DrawDivider(dst, Rect{X: 0, Y: 30, Width: 64, Height: 1}, ColorBlack)
}
