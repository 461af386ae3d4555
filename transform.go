package grasp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a translation, rotation and scale in 3D. Composition follows
// the usual scene-graph convention: a.Mul(b) applies b first, then a.
//
// The zero value is NOT the identity (its scale is zero). Start from
// IdentityTransform or one of the constructors.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// IdentityTransform leaves every point where it is.
var IdentityTransform = Transform{
	Rotation: mgl64.QuatIdent(),
	Scale:    mgl64.Vec3{1, 1, 1},
}

// TransformFromTranslation returns an unrotated, unscaled transform at (x, y, z).
func TransformFromTranslation(x, y, z float64) Transform {
	t := IdentityTransform
	t.Translation = mgl64.Vec3{x, y, z}
	return t
}

// TransformFromPose returns an unscaled transform with the given position
// and rotation. The rotation is normalized.
func TransformFromPose(pos mgl64.Vec3, rot mgl64.Quat) Transform {
	return Transform{Translation: pos, Rotation: rot.Normalize(), Scale: mgl64.Vec3{1, 1, 1}}
}

// Mat4 returns the column-major matrix T * R * S.
func (t Transform) Mat4() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	sc := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.Rotation.Normalize().Mat4()).Mul4(sc)
}

// TransformFromMat4 decomposes an affine matrix into translation, rotation
// and scale. Shear is discarded. A singular matrix yields an identity
// rotation.
func TransformFromMat4(m mgl64.Mat4) Transform {
	x := m.Col(0).Vec3()
	y := m.Col(1).Vec3()
	z := m.Col(2).Vec3()
	sx, sy, sz := x.Len(), y.Len(), z.Len()
	if m.Det() < 0 {
		sx = -sx
	}

	rot := mgl64.QuatIdent()
	if sx != 0 && sy != 0 && sz != 0 {
		basis := mgl64.Mat4FromCols(
			x.Mul(1/sx).Vec4(0),
			y.Mul(1/sy).Vec4(0),
			z.Mul(1/sz).Vec4(0),
			mgl64.Vec4{0, 0, 0, 1},
		)
		rot = mgl64.Mat4ToQuat(basis).Normalize()
	}
	return Transform{
		Translation: m.Col(3).Vec3(),
		Rotation:    rot,
		Scale:       mgl64.Vec3{sx, sy, sz},
	}
}

// Mul returns t * o: the transform that applies o, then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Translation: t.TransformPoint(o.Translation),
		Rotation:    t.Rotation.Mul(o.Rotation).Normalize(),
		Scale:       mulComponents(t.Scale, o.Scale),
	}
}

// Inverse returns the transform that undoes t. Non-uniform scale combined
// with rotation cannot be represented exactly; the result is the
// decomposition of the inverted matrix.
func (t Transform) Inverse() Transform {
	return TransformFromMat4(t.Mat4().Inv())
}

// TransformPoint maps a point from t's local space into its parent space.
func (t Transform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.Translation.Add(t.Rotation.Rotate(mulComponents(t.Scale, p)))
}

// InverseTransformPoint maps a point from t's parent space into its local space.
func (t Transform) InverseTransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.Mat4().Inv().Mul4x1(p.Vec4(1)).Vec3()
}

// ApproxEqual reports whether every component of t and o differs by at most
// eps. Rotations q and -q are treated as equal.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	if !t.Translation.ApproxEqualThreshold(o.Translation, eps) ||
		!t.Scale.ApproxEqualThreshold(o.Scale, eps) {
		return false
	}
	a := t.Rotation.Normalize()
	b := o.Rotation.Normalize()
	d := math.Abs(a.Dot(b))
	return 1-d <= eps
}

// asPose returns t with a zero scale read as (1, 1, 1) and a zero
// rotation read as the identity.
func (t Transform) asPose() Transform {
	if t.Scale == (mgl64.Vec3{}) {
		t.Scale = mgl64.Vec3{1, 1, 1}
	}
	if t.Rotation == (mgl64.Quat{}) {
		t.Rotation = mgl64.QuatIdent()
	}
	return t
}

func mulComponents(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
