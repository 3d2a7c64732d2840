package session

import (
	"encoding/csv"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/trackball"
)

// Recorder appends every dispatched step to events.csv. It implements
// trackball.Observer; write failures are kept and reported by Close.
type Recorder struct {
	store *Store
	meta  Metadata
	file  *os.File
	w     *csv.Writer
	start time.Time
	now   func() time.Time
	err   error
	done  bool
}

func newRecorder(s *Store, meta Metadata, f *os.File, w *csv.Writer) *Recorder {
	return &Recorder{
		store: s,
		meta:  meta,
		file:  f,
		w:     w,
		start: time.Now(),
		now:   time.Now,
	}
}

func (r *Recorder) ID() string { return r.meta.ID }

func (r *Recorder) OnStep(s trackball.Step) {
	if r.done || r.err != nil {
		return
	}
	// Steps for unclassified events carry nothing to replay.
	if s.Event.Kind == input.Ignored {
		return
	}
	rec := FromStep(r.meta.Events, r.now().Sub(r.start).Seconds(), s)
	if err := r.w.Write(rec.row()); err != nil {
		r.err = err
		return
	}
	r.meta.Events++
	if s.Rotated {
		r.meta.Rotations++
		if r.meta.Final == nil {
			r.meta.Final = make(map[string][4]float64)
		}
		q := s.Orientation
		r.meta.Final[s.Object.String()] = [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()}
	}
}

// SinkError counts a failed orientation write against the session.
func (r *Recorder) SinkError() { r.meta.SinkErrors++ }

// Watch wraps next so every failed write is counted by SinkError.
func (r *Recorder) Watch(next trackball.OrientationSink) trackball.OrientationSink {
	return trackball.SinkFunc(func(id trackball.ObjectID, q mgl64.Quat) error {
		err := next.ApplyOrientation(id, q)
		if err != nil {
			r.SinkError()
		}
		return err
	})
}

// Close flushes events and rewrites the metadata with final counts.
func (r *Recorder) Close() (*Metadata, error) {
	if r.done {
		return nil, ErrClosed
	}
	r.done = true

	r.w.Flush()
	if err := r.w.Error(); err != nil && r.err == nil {
		r.err = err
	}
	if err := r.file.Close(); err != nil && r.err == nil {
		r.err = err
	}
	r.meta.Duration = r.now().Sub(r.start).Seconds()
	if err := r.store.writeMetadata(&r.meta); err != nil && r.err == nil {
		r.err = err
	}
	meta := r.meta
	return &meta, r.err
}
