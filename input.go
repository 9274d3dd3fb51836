package anya

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Event is a single pointer event in window coordinates.
type Event struct {
	Type   EventType
	X, Y   float64
	Button MouseButton
}

var polledButtons = [...]struct {
	button MouseButton
	ebiten ebiten.MouseButton
}{
	{MouseButtonLeft, ebiten.MouseButtonLeft},
	{MouseButtonRight, ebiten.MouseButtonRight},
	{MouseButtonMiddle, ebiten.MouseButtonMiddle},
}

// Input turns ebiten's polled mouse state into discrete events. Synthetic
// events queued with Inject take precedence over real input: while the queue
// is non-empty, Poll delivers one injected event per tick and ignores the
// mouse.
type Input struct {
	queue []Event
	buf   []Event

	lastX, lastY int
	seen         bool
}

// NewInput creates an Input with an empty queue.
func NewInput() *Input {
	return &Input{}
}

// Inject queues a synthetic event for a later Poll.
func (in *Input) Inject(ev Event) {
	in.queue = append(in.queue, ev)
}

// InjectClick queues a move, a left press and a left release at (x, y).
// Consumes three ticks.
func (in *Input) InjectClick(x, y float64) {
	in.Inject(Event{Type: EventPointerMove, X: x, Y: y})
	in.Inject(Event{Type: EventPointerDown, X: x, Y: y, Button: MouseButtonLeft})
	in.Inject(Event{Type: EventPointerUp, X: x, Y: y, Button: MouseButtonLeft})
}

// Pending returns the number of queued synthetic events.
func (in *Input) Pending() int {
	return len(in.queue)
}

// Poll returns this tick's events. The returned slice is reused by the next
// call.
func (in *Input) Poll() []Event {
	in.buf = in.buf[:0]
	if len(in.queue) > 0 {
		in.buf = append(in.buf, in.queue[0])
		copy(in.queue, in.queue[1:])
		in.queue = in.queue[:len(in.queue)-1]
		return in.buf
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if !in.seen || mx != in.lastX || my != in.lastY {
		in.lastX, in.lastY, in.seen = mx, my, true
		in.buf = append(in.buf, Event{Type: EventPointerMove, X: x, Y: y})
	}
	for _, pb := range polledButtons {
		if inpututil.IsMouseButtonJustPressed(pb.ebiten) {
			in.buf = append(in.buf, Event{Type: EventPointerDown, X: x, Y: y, Button: pb.button})
		}
		if inpututil.IsMouseButtonJustReleased(pb.ebiten) {
			in.buf = append(in.buf, Event{Type: EventPointerUp, X: x, Y: y, Button: pb.button})
		}
	}
	return in.buf
}
