package painter

import (
	"testing"

	"cogentcore.org/core/math32"
)

func TestFramebuffer_BlendOver(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(math32.Vec4(0.2, 0.2, 0.2, 0))

	// Full coverage replaces the pixel outright.
	fb.BlendOver(1, 1, math32.Vec3(1, 0, 0), 1)
	if got := fb.At(1, 1); got != math32.Vec4(1, 0, 0, 1) {
		t.Errorf("Expected opaque red, got %v", got)
	}

	// Half coverage mixes source and destination and accumulates alpha.
	fb.BlendOver(2, 2, math32.Vec3(1, 1, 1), 0.5)
	got := fb.At(2, 2)
	expected := math32.Vec4(0.6, 0.6, 0.6, 0.5)
	if got.Sub(expected).Length() > 1e-6 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	fb.BlendOver(2, 2, math32.Vec3(1, 1, 1), 0.5)
	if a := fb.At(2, 2).W; math32.Abs(a-0.75) > 1e-6 {
		t.Errorf("Expected accumulated coverage 0.75, got %v", a)
	}
}

func TestFramebuffer_BlendOverIgnoresOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.BlendOver(-1, 0, math32.Vec3(1, 1, 1), 1)
	fb.BlendOver(0, 5, math32.Vec3(1, 1, 1), 1)
	for i, p := range fb.Pix {
		if p != (math32.Vector4{}) {
			t.Errorf("Pixel %d: expected untouched buffer, got %v", i, p)
		}
	}
}

func TestFramebuffer_ToRGBAClamps(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(0, 0, math32.Vec4(1.5, -0.25, 0.5, 0.3))
	img := fb.ToRGBA()

	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 {
		t.Errorf("Expected clamped channels 255 and 0, got %d and %d", r>>8, g>>8)
	}
	if b>>8 != 128 {
		t.Errorf("Expected mid gray 128, got %d", b>>8)
	}
	if a>>8 != 255 {
		t.Errorf("Expected opaque output, got alpha %d", a>>8)
	}
}

func TestNewFramebuffer_PanicsOnBadSize(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for zero-sized framebuffer")
		}
	}()
	NewFramebuffer(0, 4)
}
