package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/rotmath"
	"github.com/san-kum/trackball/internal/trackball"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	st := New(filepath.Join(t.TempDir(), "sessions"))
	require.NoError(t, st.Init())
	return st
}

// record drives a registry with rec attached and returns the object id.
func record(t *testing.T, rec *Recorder, events ...input.Event) trackball.ObjectID {
	t.Helper()
	id := trackball.NewObjectID()
	reg := trackball.NewRegistry(nil, trackball.DefaultConfig())
	reg.Attach(id)
	reg.AddObserver(rec)
	for _, ev := range events {
		_, err := reg.Dispatch(ev)
		require.NoError(t, err)
	}
	return id
}

func TestStoreCreateAndLoad(t *testing.T) {
	st := newStore(t)

	rec, err := st.Create(Metadata{Scene: "cube", Frontend: "tui", Sensitivity: 1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec.ID(), "cube_"), "id %q", rec.ID())

	id := record(t, rec,
		input.Pressed(input.ButtonLeft),
		input.Moved(0, 0),
		input.Moved(10, 0),
		input.Event{},
		input.Released(input.ButtonLeft),
	)
	meta, err := rec.Close()
	require.NoError(t, err)

	assert.Equal(t, 4, meta.Events, "ignored events are not recorded")
	assert.Equal(t, 1, meta.Rotations)
	require.Contains(t, meta.Final, id.String())
	assert.InDelta(t, -0.0871557, meta.Final[id.String()][2], 1e-6)

	loaded, err := st.Load(rec.ID())
	require.NoError(t, err)
	assert.Equal(t, meta.Events, loaded.Events)
	assert.Equal(t, "cube", loaded.Scene)
	assert.Equal(t, meta.Final, loaded.Final)

	records, err := st.LoadRecords(rec.ID())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, input.Pressed(input.ButtonLeft), records[0].Event)
	assert.Equal(t, trackball.Idle, records[0].Before)
	assert.Equal(t, trackball.Dragging, records[0].After)
	assert.Equal(t, input.Moved(10, 0), records[2].Event)
	assert.True(t, records[2].Rotated)
	assert.InDelta(t, 10, records[2].Angle, 1e-12)
	assert.Equal(t, id, records[2].Object)
	assert.True(t, rotmath.Near(records[2].Orientation,
		mgl64.QuatRotate(mgl64.DegToRad(10), mgl64.Vec3{0, -1, 0}), 1e-12))
	for i, r := range records {
		assert.Equal(t, i, r.Seq)
	}
}

func TestRecorderClose(t *testing.T) {
	st := newStore(t)
	rec, err := st.Create(Metadata{ID: "fixed", Scene: "globe"})
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec.start = start
	rec.now = func() time.Time { return start.Add(1500 * time.Millisecond) }
	rec.SinkError()

	meta, err := rec.Close()
	require.NoError(t, err)
	assert.Equal(t, "fixed", meta.ID)
	assert.InDelta(t, 1.5, meta.Duration, 1e-9)
	assert.Equal(t, 1, meta.SinkErrors)

	_, err = rec.Close()
	assert.ErrorIs(t, err, ErrClosed)

	// Steps after close are dropped rather than written to a closed file.
	rec.OnStep(trackball.Step{Event: input.Moved(1, 1)})
}

func TestStoreList(t *testing.T) {
	st := newStore(t)

	sessions, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = st.Latest()
	assert.ErrorIs(t, err, ErrNoSessions)

	base := time.Now()
	for i, scene := range []string{"b", "a", "c"} {
		rec, err := st.Create(Metadata{Scene: scene, Timestamp: base.Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
		_, err = rec.Close()
		require.NoError(t, err)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(st.Dir(), "junk"), 0755))

	sessions, err = st.List()
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "b", sessions[0].Scene)
	assert.Equal(t, "c", sessions[2].Scene)

	latest, err := st.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "c", latest.Scene)

	require.NoError(t, st.Remove(latest.ID))
	sessions, _ = st.List()
	assert.Len(t, sessions, 2)
}

func TestStoreMissing(t *testing.T) {
	st := newStore(t)

	_, err := st.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.LoadRecords("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Remove("nope"), ErrNotFound)

	sessions, err := New(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestReadRecords_Errors(t *testing.T) {
	good := FromStep(0, 0, trackball.Step{
		Object:      trackball.NewObjectID(),
		Event:       input.Moved(1, 2),
		Orientation: mgl64.QuatIdent(),
	}).row()

	tests := []struct {
		name  string
		mut   func([]string) []string
		field string
	}{
		{"short row", func(r []string) []string { return r[:5] }, ""},
		{"bad uuid", func(r []string) []string { r[2] = "xyz"; return r }, "object"},
		{"bad kind", func(r []string) []string { r[3] = "wiggle"; return r }, "kind"},
		{"bad state", func(r []string) []string { r[8] = "spinning"; return r }, "before"},
		{"bad float", func(r []string) []string { r[12] = "one"; return r }, "qw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := tt.mut(append([]string(nil), good...))
			data := strings.Join(header, ",") + "\n" + strings.Join(row, ",") + "\n"

			_, err := ReadRecords(strings.NewReader(data))
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "err = %v", err)
			assert.Equal(t, 2, pe.Line)
			assert.Equal(t, tt.field, pe.Field)
		})
	}

	records, err := ReadRecords(strings.NewReader(strings.Join(header, ",") + "\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecorderWatch(t *testing.T) {
	st := newStore(t)
	rec, err := st.Create(Metadata{Scene: "globe"})
	require.NoError(t, err)

	known := trackball.NewObjectID()
	sink := rec.Watch(trackball.SinkFunc(func(id trackball.ObjectID, q mgl64.Quat) error {
		if id != known {
			return trackball.ErrObjectNotFound
		}
		return nil
	}))

	assert.NoError(t, sink.ApplyOrientation(known, mgl64.QuatIdent()))
	assert.ErrorIs(t, sink.ApplyOrientation(trackball.NewObjectID(), mgl64.QuatIdent()), trackball.ErrObjectNotFound)

	meta, err := rec.Close()
	require.NoError(t, err)
	assert.Equal(t, 1, meta.SinkErrors)
}

func TestNewID(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tests := []struct {
		scene, prefix string
	}{
		{"globe", "globe_1700000000_"},
		{"scenes/desk.yaml", "desk_1700000000_"},
		{"", "session_1700000000_"},
	}
	for _, tt := range tests {
		id := newID(tt.scene, now)
		assert.True(t, strings.HasPrefix(id, tt.prefix), "newID(%q) = %q", tt.scene, id)
		assert.Len(t, id, len(tt.prefix)+8)
	}
}
