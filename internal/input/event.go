package input

import "fmt"

// Kind identifies a classified event.
type Kind uint8

const (
	Ignored        Kind = iota // not relevant to the trackball
	ButtonPressed              // a pointer button went down
	ButtonReleased             // a pointer button went up
	CursorMoved                // the pointer moved to Event.Pos
	CloseRequested             // the window (or terminal session) asked to close
	KeyPressed                 // a recognized key went down
	ResetRequested             // the host returned every object to identity
)

func (k Kind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case ButtonPressed:
		return "button_pressed"
	case ButtonReleased:
		return "button_released"
	case CursorMoved:
		return "cursor_moved"
	case CloseRequested:
		return "close_requested"
	case KeyPressed:
		return "key_pressed"
	case ResetRequested:
		return "reset_requested"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := Ignored; k <= ResetRequested; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return Ignored, fmt.Errorf("input: unknown event kind %q", s)
}

// Button identifies a pointer button.
type Button uint8

const (
	ButtonNone   Button = iota // no button (motion, keys)
	ButtonLeft                 // primary button
	ButtonRight                // secondary button
	ButtonMiddle               // wheel click
)

// Key identifies a keyboard key. Only keys the host reacts to are named.
type Key uint8

const (
	KeyNone   Key = iota // no key or an unrecognized key
	KeyEscape            // escape
)

// Point is a cursor position in host coordinates (pixels or terminal cells).
type Point struct {
	X, Y float64
}

// Event is a classified input event.
type Event struct {
	Kind   Kind
	Button Button
	Key    Key
	Pos    Point
}

// Pressed returns a ButtonPressed event for b.
func Pressed(b Button) Event { return Event{Kind: ButtonPressed, Button: b} }

// Released returns a ButtonReleased event for b.
func Released(b Button) Event { return Event{Kind: ButtonReleased, Button: b} }

// Moved returns a CursorMoved event at (x, y).
func Moved(x, y float64) Event { return Event{Kind: CursorMoved, Pos: Point{x, y}} }

// Close returns a CloseRequested event.
func Close() Event { return Event{Kind: CloseRequested} }

// Escape returns a KeyPressed(Escape) event.
func Escape() Event { return Event{Kind: KeyPressed, Key: KeyEscape} }

// Reset returns a ResetRequested event. Classifiers never produce it; hosts
// emit it through the registry so recordings see the reset.
func Reset() Event { return Event{Kind: ResetRequested} }

// Quits reports whether the host should stop its loop on this event.
func (e Event) Quits() bool {
	return e.Kind == CloseRequested || (e.Kind == KeyPressed && e.Key == KeyEscape)
}

func (e Event) String() string {
	switch e.Kind {
	case ButtonPressed, ButtonReleased:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Button)
	case CursorMoved:
		return fmt.Sprintf("%s(%.1f,%.1f)", e.Kind, e.Pos.X, e.Pos.Y)
	case KeyPressed:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Key)
	default:
		return e.Kind.String()
	}
}
