package smath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// ApproxEq determines whether two floating point numbers are close enough to
// each other by a threshold of 1e-5.
func ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Clamp clamps the given value to the given range.
func Clamp(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// HzDistSqr returns the squared horizontal distance in a vector.
func HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// HzVec returns the vector with its vertical component zeroed.
func HzVec(vec3 mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{vec3.X(), 0, vec3.Z()}
}

// Project returns the component of v along the (non-zero) direction onto.
func Project(v, onto mgl32.Vec3) mgl32.Vec3 {
	lenSqr := onto.LenSqr()
	if lenSqr <= mgl32.Epsilon {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / lenSqr)
}

// ProjectOnPlane returns v with its component along the plane normal removed.
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(Project(v, normal))
}

// TangentToSurface reorients direction onto the plane described by normal,
// preserving the direction's magnitude. Used to reproject velocity and input
// onto the ground plane without losing speed on slopes.
func TangentToSurface(direction, normal, up mgl32.Vec3) mgl32.Vec3 {
	magnitude := direction.Len()
	if magnitude <= mgl32.Epsilon {
		return mgl32.Vec3{}
	}
	right := direction.Cross(up)
	if right.LenSqr() <= mgl32.Epsilon {
		return mgl32.Vec3{}
	}
	tangent := normal.Cross(right).Normalize()
	return tangent.Mul(magnitude)
}

// DownhillTangent returns the normalized downhill direction on the plane
// described by normal. The zero vector is returned for a flat plane.
func DownhillTangent(normal, up mgl32.Vec3) mgl32.Vec3 {
	downhill := ProjectOnPlane(up.Mul(-1), normal)
	if downhill.LenSqr() <= mgl32.Epsilon {
		return mgl32.Vec3{}
	}
	return downhill.Normalize()
}

// ExpDecayFactor converts a per-second sharpness into a framerate-independent
// interpolation factor for the given timestep.
func ExpDecayFactor(sharpness, dt float32) float32 {
	return 1 - math32.Exp(-sharpness*dt)
}

// LerpVec linearly interpolates between two vectors.
func LerpVec(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(t))
}

// Lerp linearly interpolates between two scalars.
func Lerp(from, to, t float32) float32 {
	return from + (to-from)*t
}

// AngleBetween returns the unsigned angle between two non-zero vectors in
// degrees.
func AngleBetween(a, b mgl32.Vec3) float32 {
	denom := a.Len() * b.Len()
	if denom <= mgl32.Epsilon {
		return 0
	}
	return mgl32.RadToDeg(math32.Acos(Clamp(a.Dot(b)/denom, -1, 1)))
}

// SlopeAngle returns the angle of a surface normal against up, in degrees.
func SlopeAngle(normal, up mgl32.Vec3) float32 {
	return AngleBetween(normal, up)
}

// SafeNormalize normalizes v, returning the zero vector when v has no usable
// length instead of NaNs.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() <= mgl32.Epsilon {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
