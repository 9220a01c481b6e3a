package sigpad

import "fmt"

// PointerKind identifies the phase of a pointer event.
type PointerKind uint8

// Pointer event kinds.
const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
	PointerCancel
)

// String returns the DOM-style name of the kind.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case PointerCancel:
		return "pointercancel"
	default:
		return fmt.Sprintf("PointerKind(%d)", uint8(k))
	}
}

// PointerEvent is one pointer dispatch. X and Y are relative to the
// container's top-left corner, in CSS pixels.
type PointerEvent struct {
	ID   int
	Kind PointerKind
	X, Y float64
}

// Point returns the event position.
func (e PointerEvent) Point() Point {
	return Point{X: e.X, Y: e.Y}
}

// PointerCapturer is the platform primitive that routes all events of a
// pointer to the surface while it draws, e.g. Element.setPointerCapture.
type PointerCapturer interface {
	SetPointerCapture(id int)
	ReleasePointerCapture(id int)
}

// HandlePointer routes a pointer event to the stroke operations and
// reports whether the surface consumed it.
//
// The first pointer to go down owns the surface until it goes up or is
// cancelled; events of any other pointer are ignored meanwhile, so two
// fingers never interleave points into one stroke.
func (s *Surface) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		if s.active {
			return false
		}
		if err := s.beginStroke(ev.ID, ev.Point()); err != nil {
			return false
		}
		return s.active
	case PointerMove:
		if !s.owns(ev.ID) {
			return false
		}
		s.ExtendStroke(ev.Point())
		return true
	case PointerUp:
		if !s.owns(ev.ID) {
			return false
		}
		s.EndStrokeAt(ev.Point())
		return true
	case PointerCancel:
		if !s.owns(ev.ID) {
			return false
		}
		s.CancelStroke()
		return true
	}
	return false
}

func (s *Surface) owns(id int) bool {
	return s.active && s.owner == id
}
