package replay

import (
	"math"

	"github.com/san-kum/trackball/internal/trackball"
)

// Metric accumulates one number over a replayed session.
type Metric interface {
	Name() string
	Observe(s trackball.Step)
	Value() float64
	Reset()
}

// TotalRotation sums the angle of every applied rotation, in degrees.
type TotalRotation struct{ sum float64 }

func (m *TotalRotation) Name() string { return "total_rotation" }

func (m *TotalRotation) Observe(s trackball.Step) {
	if s.Rotated {
		m.sum += s.Angle
	}
}

func (m *TotalRotation) Value() float64 { return m.sum }
func (m *TotalRotation) Reset()         { m.sum = 0 }

// MaxStep is the largest single rotation, in degrees.
type MaxStep struct{ max float64 }

func (m *MaxStep) Name() string { return "max_step" }

func (m *MaxStep) Observe(s trackball.Step) {
	if s.Rotated && s.Angle > m.max {
		m.max = s.Angle
	}
}

func (m *MaxStep) Value() float64 { return m.max }
func (m *MaxStep) Reset()         { m.max = 0 }

// DragCount counts drags started.
type DragCount struct{ n int }

func (m *DragCount) Name() string { return "drags" }

func (m *DragCount) Observe(s trackball.Step) {
	if s.Before == trackball.Idle && s.After == trackball.Dragging {
		m.n++
	}
}

func (m *DragCount) Value() float64 { return float64(m.n) }
func (m *DragCount) Reset()         { m.n = 0 }

// NormDrift is the worst deviation of any orientation from unit length.
type NormDrift struct{ max float64 }

func (m *NormDrift) Name() string { return "norm_drift" }

func (m *NormDrift) Observe(s trackball.Step) {
	if !s.Rotated {
		return
	}
	if d := math.Abs(s.Orientation.Len() - 1); d > m.max {
		m.max = d
	}
}

func (m *NormDrift) Value() float64 { return m.max }
func (m *NormDrift) Reset()         { m.max = 0 }

func DefaultMetrics() []Metric {
	return []Metric{&TotalRotation{}, &MaxStep{}, &DragCount{}, &NormDrift{}}
}
