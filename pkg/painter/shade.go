package painter

import (
	"cogentcore.org/core/math32"
)

// Light is the single directional light every pass shades with.
// Dir points from the surface toward the light, in world space.
type Light struct {
	Dir       math32.Vector3
	Ambient   float32 // brightness floor, applied before quantization
	Specular  float32 // Blinn specular strength
	Shininess float32 // Blinn specular exponent
}

// DefaultLight returns the key light the built-in scenes use: above and
// behind the default camera, slightly off axis so curvature reads.
func DefaultLight() Light {
	return Light{
		Dir:       math32.Vec3(0.4, 0.7, 0.6).Normal(),
		Ambient:   0.1,
		Specular:  0.5,
		Shininess: 32,
	}
}

// QuantizeBrightness posterizes a brightness value to one of levels
// evenly spaced steps k/(levels-1). The lowest retained step is 1/(levels-1)
// so quantization never produces a fully black band; levels <= 0 disables
// quantization and a single level maps everything to full brightness.
func QuantizeBrightness(b float32, levels int) float32 {
	if levels <= 0 {
		return b
	}
	if levels == 1 {
		return 1
	}
	n := float32(levels - 1)
	k := math32.Round(b * n)
	if k < 1 {
		k = 1
	} else if k > n {
		k = n
	}
	return k / n
}

// Luminance returns the Rec. 709 luminance of a linear RGB color.
func Luminance(c math32.Vector3) float32 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}
