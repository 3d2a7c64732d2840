// Package rotmath provides the vector and quaternion helpers used to turn
// pointer motion into rotations.
//
// All functions are pure and safe for concurrent use. Vectors and
// quaternions are [mgl64.Vec3] and [mgl64.Quat] values.
//
//	axis := mgl64.Vec3{0, 1, 0}
//	q, err := rotmath.AxisAngleToQuat(axis, 90)
//	if errors.Is(err, rotmath.ErrDegenerateAxis) {
//	    // zero-length axis: nothing to rotate about
//	}
package rotmath
