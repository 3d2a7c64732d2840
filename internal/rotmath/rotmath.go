package rotmath

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateAxis indicates a rotation axis with zero length.
var ErrDegenerateAxis = errors.New("rotmath: rotation axis has zero length")

// axisEpsilon is the length below which an axis is treated as zero.
const axisEpsilon = 1e-12

// DirectionalVector returns a - b componentwise.
func DirectionalVector(a, b mgl64.Vec3) mgl64.Vec3 {
	return a.Sub(b)
}

// Lift places a 2D cursor position in 3D space so that cursor offsets can be
// measured and turned into rotation axes. The cursor plane is z = 0.
func Lift(x, y float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, 0}
}

// AxisAngleToQuat returns the unit quaternion rotating by degrees about axis
// (right-hand rule). The axis does not need to be normalized.
func AxisAngleToQuat(axis mgl64.Vec3, degrees float64) (mgl64.Quat, error) {
	l := axis.Len()
	if l < axisEpsilon || math.IsNaN(l) {
		return mgl64.QuatIdent(), ErrDegenerateAxis
	}
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), axis.Mul(1/l)), nil
}

// IsUnit reports whether q has unit length within tol.
func IsUnit(q mgl64.Quat, tol float64) bool {
	return math.Abs(q.Len()-1) <= tol
}

// Angle returns the rotation angle of q in degrees, in [0, 180].
func Angle(q mgl64.Quat) float64 {
	w := math.Abs(q.Normalize().W)
	if w > 1 {
		w = 1
	}
	return mgl64.RadToDeg(2 * math.Acos(w))
}

// Axis returns the normalized rotation axis of q. The identity rotation has
// no axis and yields the zero vector.
func Axis(q mgl64.Quat) mgl64.Vec3 {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	s := math.Sqrt(1 - q.W*q.W)
	if s < axisEpsilon {
		return mgl64.Vec3{}
	}
	return q.V.Mul(1 / s)
}

// Near reports whether every component of a and b differs by at most tol.
// Unlike mgl64's ApproxEqualThreshold the bound is absolute, including for
// components near zero.
func Near(a, b mgl64.Quat, tol float64) bool {
	return math.Abs(a.W-b.W) <= tol && NearVec(a.V, b.V, tol)
}

// NearVec is Near for vectors.
func NearVec(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if !(math.Abs(a[i]-b[i]) <= tol) {
			return false
		}
	}
	return true
}
