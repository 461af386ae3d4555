package grasp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PointerSource supplies window-pointer state in screen pixels.
type PointerSource interface {
	CursorPosition() (x, y float64)
	LeftPressed() bool
	// Wheel returns the scroll delta since the previous frame.
	Wheel() (x, y float64)
}

// GamepadSource supplies controller state by pad index.
type GamepadSource interface {
	// Squeeze returns the grip value in [0, 1]. ok is false when the pad
	// is not connected.
	Squeeze(pad int) (value float64, ok bool)
	// Stick returns the left stick deflection in [-1, 1].
	Stick(pad int) (x, y float64)
}

// RayCamera converts screen positions into world-space rays.
type RayCamera struct {
	// Eye is the camera's world transform; it looks down its local -Z.
	Eye Transform
	// FovY is the vertical field of view in radians.
	FovY      float64
	Near, Far float64
	// Width and Height are the viewport size in pixels.
	Width, Height int
}

// NewRayCamera returns a camera at the origin with a 60 degree field of view.
func NewRayCamera(width, height int) *RayCamera {
	return &RayCamera{
		Eye:    IdentityTransform,
		FovY:   mgl64.DegToRad(60),
		Near:   0.01,
		Far:    100,
		Width:  width,
		Height: height,
	}
}

// ScreenToRay returns the world-space ray through screen pixel (sx, sy),
// with the origin on the near plane. Screen Y grows downward. ok is false
// for an empty viewport or a degenerate camera.
func (c *RayCamera) ScreenToRay(sx, sy float64) (origin, dir mgl64.Vec3, ok bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	proj := mgl64.Perspective(c.FovY, float64(c.Width)/float64(c.Height), c.Near, c.Far)
	view := c.Eye.Mat4().Inv()
	wy := float64(c.Height) - sy

	near, err := mgl64.UnProject(mgl64.Vec3{sx, wy, 0}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{sx, wy, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	d := far.Sub(near)
	if d.Len() == 0 || math.IsNaN(d.Len()) {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return near, d.Normalize(), true
}

// MouseReader reads a window pointer as a mouse-backed ray input method.
type MouseReader struct {
	ID     EntityID
	Camera *RayCamera
	Source PointerSource
}

// Read appends the pointer's ray pose and mouse gesture.
func (r *MouseReader) Read(f *Frame) {
	if r.Camera == nil || r.Source == nil {
		return
	}
	sx, sy := r.Source.CursorPosition()
	origin, dir, ok := r.Camera.ScreenToRay(sx, sy)
	if !ok {
		return
	}
	wx, wy := r.Source.Wheel()
	f.Add(InputMethod{
		ID:      r.ID,
		Pose:    TransformFromPose(origin, rayRotation(dir)),
		Pointer: true,
		Gesture: MouseGesture{
			LeftPressed: r.Source.LeftPressed(),
			Scroll:      mgl64.Vec2{wx, wy},
		},
	})
}

// rayRotation returns the rotation taking forward onto dir, a unit vector.
// Parallel and antiparallel directions are handled explicitly since the
// rotation axis is undefined there.
func rayRotation(dir mgl64.Vec3) mgl64.Quat {
	c := forward.Dot(dir)
	switch {
	case c >= 1-1e-12:
		return mgl64.QuatIdent()
	case c <= -1+1e-12:
		return mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})
	}
	return mgl64.QuatBetweenVectors(forward, dir)
}

// DefaultSqueezeThreshold is the grip value at which a controller counts
// as squeezed.
const DefaultSqueezeThreshold = 0.5

// ControllerReader reads a gamepad grip as an XR controller's squeeze.
// The pose comes from the host's tracking layer through Pose.
type ControllerReader struct {
	ID        EntityID
	Pad       int
	Threshold float64
	Source    GamepadSource
	Pose      func() Transform
}

// Read appends the controller reading. A disconnected pad contributes
// nothing.
func (r *ControllerReader) Read(f *Frame) {
	if r.Source == nil {
		return
	}
	v, ok := r.Source.Squeeze(r.Pad)
	if !ok {
		return
	}
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultSqueezeThreshold
	}
	pose := IdentityTransform
	if r.Pose != nil {
		pose = r.Pose()
	}
	f.Add(InputMethod{
		ID:      r.ID,
		Pose:    pose,
		Gesture: ControllerGesture{Squeezed: v >= threshold},
	})
}

// MethodReader adapts a fixed reading (or a function producing one) to
// the Reader interface. Useful for tracking layers that already produce
// InputMethod values.
type MethodReader func() (InputMethod, bool)

// Read appends the reading when present.
func (r MethodReader) Read(f *Frame) {
	if m, ok := r(); ok {
		f.Add(m)
	}
}
