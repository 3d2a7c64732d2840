package replay

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/trackball/internal/rotmath"
	"github.com/san-kum/trackball/internal/session"
	"github.com/san-kum/trackball/internal/trackball"
)

// Tolerance bounds the absolute per-component difference between a recorded
// and a replayed orientation before the step counts as a mismatch.
const Tolerance = 1e-9

// MemorySink keeps the last orientation written for each object.
type MemorySink map[trackball.ObjectID]mgl64.Quat

func (m MemorySink) ApplyOrientation(id trackball.ObjectID, q mgl64.Quat) error {
	m[id] = q
	return nil
}

type Result struct {
	ID         string
	Steps      int
	Rotations  int
	Mismatches int
	SinkErrors int
	Final      map[trackball.ObjectID]mgl64.Quat
	Metrics    map[string]float64
	// Times and Angles trace the active object's rotation angle after every
	// rotated step.
	Times  []float64
	Angles []float64
}

// Player re-runs recorded events through fresh controllers.
type Player struct {
	cfg       trackball.Config
	metrics   []Metric
	observers []trackball.Observer
}

func NewPlayer(cfg trackball.Config) *Player {
	return &Player{
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]trackball.Observer, 0),
	}
}

func (p *Player) AddMetric(m ...Metric)            { p.metrics = append(p.metrics, m...) }
func (p *Player) AddObserver(o trackball.Observer) { p.observers = append(p.observers, o) }

// Run dispatches records in order. Each record's object becomes active before
// its event is handled. Releases and resets performed by the host were
// recorded as steps of their own, so they replay like any other event.
func (p *Player) Run(ctx context.Context, records []session.Record) (*Result, error) {
	sink := make(MemorySink)
	reg := trackball.NewRegistry(sink, p.cfg)
	for _, o := range p.observers {
		reg.AddObserver(o)
	}
	for _, m := range p.metrics {
		m.Reset()
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Times:   make([]float64, 0),
		Angles:  make([]float64, 0),
	}

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		reg.Attach(rec.Object)
		if err := reg.SetActive(rec.Object); err != nil {
			return result, err
		}
		step, err := reg.Dispatch(rec.Event)
		if err != nil {
			result.SinkErrors++
		}
		result.Steps++

		for _, m := range p.metrics {
			m.Observe(step)
		}
		if step.Rotated {
			result.Rotations++
			result.Times = append(result.Times, rec.Time)
			result.Angles = append(result.Angles, rotmath.Angle(step.Orientation))
		}
		if step.Rotated != rec.Rotated || !rotmath.Near(step.Orientation, rec.Orientation, Tolerance) {
			result.Mismatches++
		}
	}

	result.Final = make(map[trackball.ObjectID]mgl64.Quat, len(sink))
	for id, q := range sink {
		result.Final[id] = q
	}
	for _, m := range p.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
