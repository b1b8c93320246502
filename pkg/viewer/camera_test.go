package viewer

import (
	"testing"

	"cogentcore.org/core/math32"
)

func TestOrbitCameraDefaultPosition(t *testing.T) {
	cam := NewOrbitCamera(3, 1)
	pos := cam.Position()

	want := math32.Vec3(0, 0, 3)
	if pos.Sub(want).Length() > 1e-5 {
		t.Errorf("default position = %v, want %v", pos, want)
	}
}

func TestOrbitCameraPolarClamp(t *testing.T) {
	cam := NewOrbitCamera(2, 1)

	cam.Rotate(0, -10) // way past the top pole
	if cam.Polar != minPolar {
		t.Errorf("polar after large negative rotate = %v, want clamp at %v", cam.Polar, minPolar)
	}

	cam.Rotate(0, 20) // way past the bottom pole
	if cam.Polar != maxPolar {
		t.Errorf("polar after large positive rotate = %v, want clamp at %v", cam.Polar, maxPolar)
	}

	// Position stays finite at the clamped extremes.
	pos := cam.Position()
	if math32.IsNaN(pos.X) || math32.IsNaN(pos.Y) || math32.IsNaN(pos.Z) {
		t.Errorf("position at clamped polar is not finite: %v", pos)
	}
}

func TestOrbitCameraZoomClamp(t *testing.T) {
	cam := NewOrbitCamera(1, 1)

	cam.Zoom(0.5)
	if cam.Radius != 0.5 {
		t.Errorf("radius after zoom in = %v, want 0.5", cam.Radius)
	}

	cam.Zoom(100)
	if cam.Radius != minRadius {
		t.Errorf("radius after overshooting zoom = %v, want clamp at %v", cam.Radius, minRadius)
	}

	cam.Zoom(-1)
	if cam.Radius != minRadius+1 {
		t.Errorf("radius after zoom out = %v, want %v", cam.Radius, minRadius+1)
	}
}

func TestOrbitCameraFrameDeterministic(t *testing.T) {
	cam := NewOrbitCamera(4, 16.0/9.0)
	cam.Rotate(0.3, -0.2)

	a := cam.Frame()
	b := cam.Frame()
	if a.View != b.View || a.Projection != b.Projection || a.Position != b.Position {
		t.Error("repeated Frame() calls differ without camera changes")
	}
}

func TestOrbitCameraViewCentersTarget(t *testing.T) {
	// The target should land on the view axis regardless of orbit angles.
	cam := NewOrbitCamera(5, 1)
	cam.Target = math32.Vec3(1, 2, -1)
	cam.Rotate(0.7, 0.4)

	frame := cam.Frame()
	viewed := math32.Vector4{X: cam.Target.X, Y: cam.Target.Y, Z: cam.Target.Z, W: 1}.MulMatrix4(&frame.View)
	if math32.Abs(viewed.X) > 1e-4 || math32.Abs(viewed.Y) > 1e-4 {
		t.Errorf("target in view space = %v, want on the -Z axis", viewed)
	}
	if viewed.Z > -4.9 || viewed.Z < -5.1 {
		t.Errorf("target view-space depth = %v, want about -5", viewed.Z)
	}
}

func TestOrbitCameraSetAspect(t *testing.T) {
	cam := NewOrbitCamera(2, 1)
	before := cam.Frame().Projection

	cam.SetAspect(2)
	after := cam.Frame().Projection
	if before == after {
		t.Error("projection unchanged after SetAspect")
	}

	cam.SetAspect(0) // ignored
	if cam.Aspect != 2 {
		t.Errorf("aspect after invalid SetAspect = %v, want 2", cam.Aspect)
	}
}

func TestOrbitCameraReset(t *testing.T) {
	cam := NewOrbitCamera(3, 1)
	cam.Rotate(1.2, 0.5)
	cam.Zoom(1)

	cam.Reset(3)
	pos := cam.Position()
	want := math32.Vec3(0, 0, 3)
	if pos.Sub(want).Length() > 1e-5 {
		t.Errorf("position after reset = %v, want %v", pos, want)
	}
}
