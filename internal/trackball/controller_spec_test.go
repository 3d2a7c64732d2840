package trackball_test

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/trackball"
)

var _ = Describe("Controller", func() {
	var (
		id      trackball.ObjectID
		applied []mgl64.Quat
		missing bool
		ctrl    *trackball.Controller
	)

	BeforeEach(func() {
		id = trackball.NewObjectID()
		applied = nil
		missing = false
		sink := trackball.SinkFunc(func(got trackball.ObjectID, q mgl64.Quat) error {
			if missing || got != id {
				return fmt.Errorf("lookup %s: %w", got, trackball.ErrObjectNotFound)
			}
			applied = append(applied, q)
			return nil
		})
		ctrl = trackball.NewController(id, sink, trackball.DefaultConfig())
	})

	handle := func(events ...input.Event) {
		for _, ev := range events {
			_, err := ctrl.Handle(ev)
			Expect(err).NotTo(HaveOccurred())
		}
	}

	Context("when idle", func() {
		It("ignores cursor motion", func() {
			handle(input.Moved(1, 2), input.Moved(30, -4))
			Expect(ctrl.DragState()).To(Equal(trackball.Idle))
			Expect(ctrl.Orientation()).To(Equal(mgl64.QuatIdent()))
			Expect(applied).To(BeEmpty())
		})

		It("starts a drag on left press", func() {
			step, err := ctrl.Handle(input.Pressed(input.ButtonLeft))
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Before).To(Equal(trackball.Idle))
			Expect(step.After).To(Equal(trackball.Dragging))
		})
	})

	Context("while dragging", func() {
		BeforeEach(func() {
			handle(input.Pressed(input.ButtonLeft), input.Moved(0, 0))
		})

		It("rotates 10 degrees about -y for a 10 unit horizontal stroke", func() {
			step, err := ctrl.Handle(input.Moved(10, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Rotated).To(BeTrue())

			q := ctrl.Orientation()
			half := mgl64.DegToRad(5)
			Expect(q.W).To(BeNumerically("~", math.Cos(half), 1e-9))
			Expect(q.V.X()).To(BeNumerically("~", 0, 1e-9))
			Expect(q.V.Y()).To(BeNumerically("~", -math.Sin(half), 1e-9))
			Expect(q.V.Z()).To(BeNumerically("~", 0, 1e-9))
			Expect(applied).To(HaveLen(1))
		})

		It("keeps the orientation a unit quaternion", func() {
			for i := 1; i <= 200; i++ {
				handle(input.Moved(float64(i%17)*3, float64(i%5)*11))
				Expect(ctrl.Orientation().Len()).To(BeNumerically("~", 1, 1e-6))
			}
		})

		It("stops rotating after release", func() {
			handle(input.Moved(4, 4), input.Released(input.ButtonLeft))
			frozen := ctrl.Orientation()
			handle(input.Moved(40, 0), input.Moved(0, 40))
			Expect(ctrl.Orientation()).To(Equal(frozen))
			_, ok := ctrl.LastCursor()
			Expect(ok).To(BeFalse())
		})

		It("reports a missing object without losing state", func() {
			missing = true
			_, err := ctrl.Handle(input.Moved(7, 0))
			Expect(errors.Is(err, trackball.ErrObjectNotFound)).To(BeTrue())

			var ue *trackball.UpdateError
			Expect(errors.As(err, &ue)).To(BeTrue())
			Expect(ue.Object).To(Equal(id))
			Expect(ctrl.Orientation()).NotTo(Equal(mgl64.QuatIdent()))
			Expect(ctrl.DragState()).To(Equal(trackball.Dragging))
		})
	})
})
