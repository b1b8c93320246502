package viewer

import (
	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/painter"
)

// Polar angle limits keep the orbit away from the poles, where the
// look-at up vector degenerates.
const (
	minPolar = 5 * math32.DegToRadFactor
	maxPolar = 175 * math32.DegToRadFactor
)

const minRadius = 0.05

// OrbitCamera orbits a target point on a sphere: azimuth is free, the
// polar angle is clamped, zooming scales the radius. View and projection
// matrices are cached and rebuilt only after a change.
type OrbitCamera struct {
	Target  math32.Vector3
	Radius  float32
	Azimuth float32 // radians around +Y
	Polar   float32 // radians from +Y, clamped to [minPolar, maxPolar]

	FOV    float32 // vertical field of view, degrees
	Near   float32
	Far    float32
	Aspect float32

	view  math32.Matrix4
	proj  math32.Matrix4
	pos   math32.Vector3
	dirty bool
}

// NewOrbitCamera creates a camera orbiting the origin at the given
// radius, straight-on from +Z.
func NewOrbitCamera(radius, aspect float32) *OrbitCamera {
	c := &OrbitCamera{
		Radius:  radius,
		Azimuth: math32.Pi / 2, // +Z axis
		Polar:   math32.Pi / 2, // equator
		FOV:     60,
		Near:    0.1,
		Far:     100,
		Aspect:  aspect,
		dirty:   true,
	}
	return c
}

// Rotate orbits by the given azimuth/polar deltas in radians.
func (c *OrbitCamera) Rotate(dAzimuth, dPolar float32) {
	c.Azimuth += dAzimuth
	c.Polar = math32.Clamp(c.Polar+dPolar, minPolar, maxPolar)
	c.dirty = true
}

// Zoom moves the camera along the view axis: positive amounts zoom in.
func (c *OrbitCamera) Zoom(amount float32) {
	c.Radius = math32.Max(minRadius, c.Radius-amount)
	c.dirty = true
}

// SetAspect updates the projection aspect ratio on window resize.
func (c *OrbitCamera) SetAspect(aspect float32) {
	if aspect > 0 && aspect != c.Aspect {
		c.Aspect = aspect
		c.dirty = true
	}
}

// Reset restores radius and angles to the straight-on default.
func (c *OrbitCamera) Reset(radius float32) {
	c.Radius = radius
	c.Azimuth = math32.Pi / 2
	c.Polar = math32.Pi / 2
	c.dirty = true
}

// Position returns the camera's world position.
func (c *OrbitCamera) Position() math32.Vector3 {
	c.rebuild()
	return c.pos
}

// Frame returns the per-frame camera input for the pipeline.
func (c *OrbitCamera) Frame() painter.FrameCamera {
	c.rebuild()
	return painter.FrameCamera{
		View:       c.view,
		Projection: c.proj,
		Position:   c.pos,
	}
}

func (c *OrbitCamera) rebuild() {
	if !c.dirty {
		return
	}
	sinP, cosP := math32.Sincos(c.Polar)
	sinA, cosA := math32.Sincos(c.Azimuth)
	c.pos = c.Target.Add(math32.Vec3(
		c.Radius*sinP*cosA,
		c.Radius*cosP,
		c.Radius*sinP*sinA,
	))

	// View matrix as the inverse of the camera's world transform.
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(c.pos, c.Target, math32.Vec3(0, 1, 0)))
	var cview math32.Matrix4
	cview.SetTransform(c.pos, lookq, math32.Vec3(1, 1, 1))
	view, _ := cview.Inverse()
	c.view = *view

	c.proj.SetPerspective(c.FOV, c.Aspect, c.Near, c.Far)
	c.dirty = false
}
