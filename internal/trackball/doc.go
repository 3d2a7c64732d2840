// Package trackball turns pointer drags into accumulated 3D rotations.
//
// The package defines the drag state machine and its supporting types:
//
//   - [Controller]: owns one object's drag state and orientation
//   - [Registry]: keeps one controller per object and routes events to the active one
//   - [OrientationSink]: where computed orientations are written (a scene, a renderer)
//   - [Observer]: sees every processed [Step] (recording, metrics)
//
// # Example
//
//	reg := trackball.NewRegistry(scene, trackball.DefaultConfig())
//	reg.Attach(ballID)
//	reg.SetActive(ballID)
//	for ev := range events {
//	    if ev.Quits() {
//	        break
//	    }
//	    if _, err := reg.Dispatch(ev); err != nil {
//	        log.Warn("orientation not applied", zap.Error(err))
//	    }
//	}
//
// # Rotation
//
// Each cursor move while dragging rotates the object about an axis
// perpendicular to the cursor motion, expressed in the object's current frame,
// by |delta| * Sensitivity degrees. The increment is left-multiplied onto the
// accumulated orientation and the result is renormalized, so orientation stays
// a unit quaternion regardless of how many events are processed.
//
// # Thread Safety
//
// Controllers and registries are NOT thread-safe. Events must be delivered in
// order from a single goroutine, which is what every host loop does.
package trackball
