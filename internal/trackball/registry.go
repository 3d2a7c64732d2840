package trackball

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/san-kum/trackball/internal/input"
)

// Registry keeps one Controller per object and routes events to the active
// one. All controllers share the registry's sink and config.
type Registry struct {
	sink        OrientationSink
	cfg         Config
	controllers map[ObjectID]*Controller
	order       []ObjectID
	active      ObjectID
	observers   []Observer
}

func NewRegistry(sink OrientationSink, cfg Config) *Registry {
	return &Registry{
		sink:        sink,
		cfg:         cfg,
		controllers: make(map[ObjectID]*Controller),
		order:       make([]ObjectID, 0),
		observers:   make([]Observer, 0),
	}
}

func (r *Registry) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Attach creates the controller for id, or returns the existing one. The
// first attached object becomes active.
func (r *Registry) Attach(id ObjectID) *Controller {
	if c, ok := r.controllers[id]; ok {
		return c
	}
	c := NewController(id, r.sink, r.cfg)
	r.controllers[id] = c
	r.order = append(r.order, id)
	if r.active == uuid.Nil {
		r.active = id
	}
	return c
}

// Detach drops the controller for id along with its state.
func (r *Registry) Detach(id ObjectID) {
	if _, ok := r.controllers[id]; !ok {
		return
	}
	delete(r.controllers, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.active == id {
		r.active = uuid.Nil
		if len(r.order) > 0 {
			r.active = r.order[0]
		}
	}
}

func (r *Registry) Get(id ObjectID) (*Controller, bool) {
	c, ok := r.controllers[id]
	return c, ok
}

// IDs returns attached object ids in attach order.
func (r *Registry) IDs() []ObjectID {
	ids := make([]ObjectID, len(r.order))
	copy(ids, r.order)
	return ids
}

func (r *Registry) Len() int { return len(r.order) }

// Active returns the controller receiving events, if any.
func (r *Registry) Active() (*Controller, bool) {
	c, ok := r.controllers[r.active]
	return c, ok
}

// SetActive routes subsequent events to id. A drag in progress on the
// previously active object is released first, and observers see that
// release as a step.
func (r *Registry) SetActive(id ObjectID) error {
	if _, ok := r.controllers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	if id == r.active {
		return nil
	}
	if prev, ok := r.controllers[r.active]; ok && prev.DragState() == Dragging {
		step, _ := prev.Handle(input.Released(input.ButtonLeft))
		r.notify(step)
	}
	r.active = id
	return nil
}

// Reset returns every controller to idle at identity, in attach order, and
// writes identity to the sink. Controllers are reset in place, so pointers
// from Attach and Get stay valid. Each object's reset reaches observers as
// a ResetRequested step; sink failures are joined into the returned error.
func (r *Registry) Reset() error {
	var errs []error
	for _, id := range r.order {
		step, err := r.controllers[id].Handle(input.Reset())
		r.notify(step)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Cycle makes the next attached object active and returns its id.
func (r *Registry) Cycle() (ObjectID, bool) {
	if len(r.order) == 0 {
		return uuid.Nil, false
	}
	next := r.order[0]
	for i, id := range r.order {
		if id == r.active {
			next = r.order[(i+1)%len(r.order)]
			break
		}
	}
	_ = r.SetActive(next)
	return next, true
}

// Dispatch hands ev to the active controller and notifies observers. With no
// active object the event is dropped and the zero Step is returned.
func (r *Registry) Dispatch(ev input.Event) (Step, error) {
	c, ok := r.Active()
	if !ok {
		return Step{}, nil
	}
	step, err := c.Handle(ev)
	r.notify(step)
	return step, err
}

func (r *Registry) notify(step Step) {
	for _, o := range r.observers {
		o.OnStep(step)
	}
}
