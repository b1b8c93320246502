package painter

import (
	"testing"

	"cogentcore.org/core/math32"
)

const shadeTolerance = 1e-5

func TestQuantizeBrightness_LevelsAndFloor(t *testing.T) {
	tests := []struct {
		name   string
		levels int
	}{
		{name: "2 levels", levels: 2},
		{name: "4 levels", levels: 4},
		{name: "8 levels", levels: 8},
		{name: "20 levels", levels: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := float32(tt.levels - 1)
			floor := 1 / float32(tt.levels)
			for i := 0; i <= 200; i++ {
				b := float32(i) / 100 // covers [0, 2], past full brightness
				q := QuantizeBrightness(b, tt.levels)

				// Output must land exactly on a level k/(levels-1).
				k := math32.Round(q * n)
				if math32.Abs(q-k/n) > shadeTolerance {
					t.Fatalf("Expected a multiple of 1/%v, got %v for input %v", n, q, b)
				}
				if q < floor-shadeTolerance {
					t.Fatalf("Expected brightness at least %v, got %v for input %v", floor, q, b)
				}
			}
		})
	}
}

func TestQuantizeBrightness_DisabledPassesThrough(t *testing.T) {
	for _, b := range []float32{0, 0.1, 0.5, 0.99, 1.7} {
		if got := QuantizeBrightness(b, 0); got != b {
			t.Errorf("Expected passthrough %v with quantization off, got %v", b, got)
		}
	}
}

func TestQuantizeBrightness_SingleLevel(t *testing.T) {
	for _, b := range []float32{0, 0.3, 1} {
		if got := QuantizeBrightness(b, 1); got != 1 {
			t.Errorf("Expected 1 for single-level quantization of %v, got %v", b, got)
		}
	}
}

func TestQuantizeBrightness_NeverBlack(t *testing.T) {
	// Even zero brightness must keep the lowest retained level.
	if got := QuantizeBrightness(0, 5); got != 0.25 {
		t.Errorf("Expected lowest level 0.25 for zero input at 5 levels, got %v", got)
	}
}

func TestLuminance_Weights(t *testing.T) {
	tests := []struct {
		name     string
		color    math32.Vector3
		expected float32
	}{
		{name: "White", color: math32.Vec3(1, 1, 1), expected: 1},
		{name: "Black", color: math32.Vec3(0, 0, 0), expected: 0},
		{name: "Pure red", color: math32.Vec3(1, 0, 0), expected: 0.2126},
		{name: "Pure green", color: math32.Vec3(0, 1, 0), expected: 0.7152},
		{name: "Pure blue", color: math32.Vec3(0, 0, 1), expected: 0.0722},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luminance(tt.color); math32.Abs(got-tt.expected) > shadeTolerance {
				t.Errorf("Expected luminance %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDefaultLight_UnitDirection(t *testing.T) {
	light := DefaultLight()
	if math32.Abs(light.Dir.Length()-1) > shadeTolerance {
		t.Errorf("Expected unit light direction, got length %v", light.Dir.Length())
	}
	if light.Ambient <= 0 || light.Ambient >= 1 {
		t.Errorf("Expected ambient floor in (0,1), got %v", light.Ambient)
	}
}
