package session

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/trackball"
)

var header = []string{
	"seq", "time", "object", "kind", "button", "key", "x", "y",
	"before", "after", "rotated", "angle", "qw", "qx", "qy", "qz",
}

// Record is one dispatched step as stored in events.csv.
type Record struct {
	Seq         int
	Time        float64 // seconds since the session started
	Object      trackball.ObjectID
	Event       input.Event
	Before      trackball.DragState
	After       trackball.DragState
	Rotated     bool
	Angle       float64
	Orientation mgl64.Quat
}

func FromStep(seq int, t float64, s trackball.Step) Record {
	return Record{
		Seq:         seq,
		Time:        t,
		Object:      s.Object,
		Event:       s.Event,
		Before:      s.Before,
		After:       s.After,
		Rotated:     s.Rotated,
		Angle:       s.Angle,
		Orientation: s.Orientation,
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func (r Record) row() []string {
	q := r.Orientation
	return []string{
		strconv.Itoa(r.Seq),
		strconv.FormatFloat(r.Time, 'f', 6, 64),
		r.Object.String(),
		r.Event.Kind.String(),
		strconv.Itoa(int(r.Event.Button)),
		strconv.Itoa(int(r.Event.Key)),
		formatFloat(r.Event.Pos.X),
		formatFloat(r.Event.Pos.Y),
		r.Before.String(),
		r.After.String(),
		strconv.FormatBool(r.Rotated),
		formatFloat(r.Angle),
		formatFloat(q.W),
		formatFloat(q.V.X()),
		formatFloat(q.V.Y()),
		formatFloat(q.V.Z()),
	}
}

// fieldParser collects the first failure while decoding one row.
type fieldParser struct {
	row  []string
	line int
	err  error
}

func (p *fieldParser) fail(col int, err error) {
	if p.err == nil {
		p.err = &ParseError{Line: p.line, Field: header[col], Err: err}
	}
}

func (p *fieldParser) number(col int) float64 {
	v, err := strconv.ParseFloat(p.row[col], 64)
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *fieldParser) integer(col int) int {
	v, err := strconv.Atoi(p.row[col])
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *fieldParser) flag(col int) bool {
	v, err := strconv.ParseBool(p.row[col])
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *fieldParser) state(col int) trackball.DragState {
	switch p.row[col] {
	case trackball.Idle.String():
		return trackball.Idle
	case trackball.Dragging.String():
		return trackball.Dragging
	}
	p.fail(col, fmt.Errorf("unknown drag state %q", p.row[col]))
	return trackball.Idle
}

func parseRecord(line int, row []string) (Record, error) {
	if len(row) != len(header) {
		return Record{}, &ParseError{Line: line, Err: fmt.Errorf("%d fields, want %d", len(row), len(header))}
	}
	p := &fieldParser{row: row, line: line}

	id, err := uuid.Parse(row[2])
	if err != nil {
		p.fail(2, err)
	}
	kind, err := input.ParseKind(row[3])
	if err != nil {
		p.fail(3, err)
	}

	r := Record{
		Seq:    p.integer(0),
		Time:   p.number(1),
		Object: id,
		Event: input.Event{
			Kind:   kind,
			Button: input.Button(p.integer(4)),
			Key:    input.Key(p.integer(5)),
			Pos:    input.Point{X: p.number(6), Y: p.number(7)},
		},
		Before:  p.state(8),
		After:   p.state(9),
		Rotated: p.flag(10),
		Angle:   p.number(11),
		Orientation: mgl64.Quat{
			W: p.number(12),
			V: mgl64.Vec3{p.number(13), p.number(14), p.number(15)},
		},
	}
	if p.err != nil {
		return Record{}, p.err
	}
	return r, nil
}
