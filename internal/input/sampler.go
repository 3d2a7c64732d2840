package input

// PointerState is one frame of polled input: where the cursor is and which
// buttons and keys are held.
type PointerState struct {
	X, Y                float64
	Left, Right, Middle bool
	Escape              bool
	Close               bool
}

// Sampler turns successive PointerState snapshots into raw events, the way an
// event-driven window system would have delivered them. Polling hosts keep one
// Sampler per pointer.
type Sampler struct {
	prev   PointerState
	primed bool
}

// Sample diffs cur against the previous snapshot. Motion is reported first,
// then button edges, then key edges, then the close request, so a press on a
// frame where the cursor also moved lands at the new position.
func (s *Sampler) Sample(cur PointerState) []RawEvent {
	if !s.primed {
		// First frame: no motion, every held button counts as a fresh press.
		s.prev = PointerState{X: cur.X, Y: cur.Y}
		s.primed = true
	}
	prev := s.prev
	s.prev = cur

	var out []RawEvent
	if cur.X != prev.X || cur.Y != prev.Y {
		out = append(out, RawEvent{Kind: RawCursorMoved, X: cur.X, Y: cur.Y})
	}

	buttons := [...]struct {
		b         Button
		was, isOn bool
	}{
		{ButtonLeft, prev.Left, cur.Left},
		{ButtonRight, prev.Right, cur.Right},
		{ButtonMiddle, prev.Middle, cur.Middle},
	}
	for _, st := range buttons {
		if st.was != st.isOn {
			out = append(out, RawEvent{Kind: RawMouseButton, Button: st.b, Pressed: st.isOn, X: cur.X, Y: cur.Y})
		}
	}

	if cur.Escape != prev.Escape {
		out = append(out, RawEvent{Kind: RawKey, Key: KeyEscape, Pressed: cur.Escape})
	}
	if cur.Close && !prev.Close {
		out = append(out, RawEvent{Kind: RawCloseRequested})
	}
	return out
}

// Events samples cur and classifies the result, dropping Ignored events.
func (s *Sampler) Events(cur PointerState) []Event {
	raw := s.Sample(cur)
	events := make([]Event, 0, len(raw))
	for _, r := range raw {
		if ev := Classify(r); ev.Kind != Ignored {
			events = append(events, ev)
		}
	}
	return events
}

// Reset forgets the previous snapshot.
func (s *Sampler) Reset() {
	s.prev = PointerState{}
	s.primed = false
}
