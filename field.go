package grasp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Field is a proximity volume attached to a handler. Shapes are defined in
// the handler's local space.
type Field interface {
	// ClosestPoint returns the point of the field nearest to p. Both p and
	// the result are in world space; world is the handler's world transform.
	// Points inside the field return themselves.
	ClosestPoint(world Transform, p mgl64.Vec3) mgl64.Vec3
}

// SphereField is a sphere centered on the handler's origin.
type SphereField struct {
	Radius float64
}

// ClosestPoint clamps p to the sphere.
func (f SphereField) ClosestPoint(world Transform, p mgl64.Vec3) mgl64.Vec3 {
	local := world.InverseTransformPoint(p)
	if d := local.Len(); d > f.Radius {
		local = local.Mul(f.Radius / d)
	}
	return world.TransformPoint(local)
}

// CuboidField is an axis-aligned box (in local space) centered on the
// handler's origin.
type CuboidField struct {
	HalfExtents mgl64.Vec3
}

// ClosestPoint clamps p to the box.
func (f CuboidField) ClosestPoint(world Transform, p mgl64.Vec3) mgl64.Vec3 {
	local := world.InverseTransformPoint(p)
	for i := 0; i < 3; i++ {
		h := math.Abs(f.HalfExtents[i])
		local[i] = mgl64.Clamp(local[i], -h, h)
	}
	return world.TransformPoint(local)
}

// Ray search resolution.
const (
	rayIterations = 64
	rayEpsilon    = 1e-9
)

// RayContact returns the closest pair between the segment of the ray
// origin + t*dir, t in [0, length], and the field: the point on the ray,
// the point on the field and t. When the ray passes through the field the
// contact is its first entry point. dir must be a unit vector.
//
// Fields are convex, so the distance along the ray is convex in t; a
// ternary search finds the minimum and, for a hit, a bisection walks back
// to the first point inside.
func RayContact(f Field, world Transform, origin, dir mgl64.Vec3, length float64) (onRay, onField mgl64.Vec3, t float64) {
	dist := func(t float64) float64 {
		p := origin.Add(dir.Mul(t))
		return f.ClosestPoint(world, p).Sub(p).Len()
	}
	if length < 0 {
		length = 0
	}

	lo, hi := 0.0, length
	for i := 0; i < rayIterations; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if dist(m1) <= dist(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	t = (lo + hi) / 2

	if dist(t) <= rayEpsilon {
		lo, hi = 0, t
		for i := 0; i < rayIterations; i++ {
			mid := (lo + hi) / 2
			if dist(mid) <= rayEpsilon {
				hi = mid
			} else {
				lo = mid
			}
		}
		t = hi
	}
	onRay = origin.Add(dir.Mul(t))
	return onRay, f.ClosestPoint(world, onRay), t
}

// PointField is a single point at the handler's origin.
type PointField struct{}

// ClosestPoint returns the handler's world position.
func (PointField) ClosestPoint(world Transform, _ mgl64.Vec3) mgl64.Vec3 {
	return world.Translation
}
