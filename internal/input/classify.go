package input

import tea "github.com/charmbracelet/bubbletea"

// RawKind identifies a platform-neutral window event.
type RawKind uint8

const (
	RawUnknown        RawKind = iota
	RawMouseButton            // Button changed state; Pressed tells which way
	RawCursorMoved            // pointer at (X, Y)
	RawKey                    // Key changed state; Pressed tells which way
	RawCloseRequested         // window close button / WM close
	RawScroll                 // wheel delta in (X, Y)
	RawFocus                  // focus gained (Pressed) or lost
	RawResize                 // new size in (X, Y)
)

// RawEvent is a window event before classification.
type RawEvent struct {
	Kind    RawKind
	Button  Button
	Key     Key
	Pressed bool
	X, Y    float64
}

// Classify maps a raw window event to exactly one Event.
func Classify(r RawEvent) Event {
	switch r.Kind {
	case RawMouseButton:
		if r.Button != ButtonLeft {
			return Event{}
		}
		if r.Pressed {
			return Pressed(ButtonLeft)
		}
		return Released(ButtonLeft)
	case RawCursorMoved:
		return Moved(r.X, r.Y)
	case RawKey:
		if r.Pressed && r.Key == KeyEscape {
			return Escape()
		}
	case RawCloseRequested:
		return Close()
	}
	return Event{}
}

// ClassifyTea maps a Bubble Tea message to exactly one Event.
//
// Mouse coordinates are terminal cells. ctrl+c counts as a close request. A
// release without a button comes from the X10 mouse encoding, which does not
// report which button went up; it is treated as a left release.
func ClassifyTea(msg tea.Msg) Event {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				return Pressed(ButtonLeft)
			}
		case tea.MouseActionRelease:
			if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
				return Released(ButtonLeft)
			}
		case tea.MouseActionMotion:
			return Moved(float64(msg.X), float64(msg.Y))
		}
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return Escape()
		case tea.KeyCtrlC:
			return Close()
		}
	}
	return Event{}
}
