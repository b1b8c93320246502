package painter

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Config carries the render parameters shared by every pass. One Config
// is passed at pipeline construction; swapping parameters between frames
// goes through SetConfig so render targets stay consistent.
type Config struct {
	// StrokeDensity is the number of anchors per unit of surface area.
	StrokeDensity int
	// BrushSize is the stroke half-extent: world units when brush TBN
	// orientation is on, NDC units for screen-aligned strokes.
	BrushSize float32
	// Quantization is the brightness level count for posterization,
	// 0 disables it.
	Quantization int
	// Background clears both the reference field and the canvas.
	Background math32.Vector3
	// Saturation mixes the final color between its luminance (0) and the
	// unmodified color (1).
	Saturation float32
	// EnableCanvas multiplies the composite by the paper texture.
	EnableCanvas bool
	// EnableBrushTBN orients strokes along the anchor tangent frame
	// instead of the screen axes.
	EnableBrushTBN bool
	// NumBrushes is the brush atlas cell count, shared by the anchor
	// build and the expansion pass.
	NumBrushes int
	// ReferenceScale sizes the reference field relative to the canvas.
	ReferenceScale float32
}

// DefaultConfig returns the parameter set the viewer starts from.
func DefaultConfig() Config {
	return Config{
		StrokeDensity:  3000,
		BrushSize:      0.04,
		Quantization:   0,
		Background:     math32.Vec3(0, 0, 0),
		Saturation:     1.0,
		EnableCanvas:   true,
		EnableBrushTBN: true,
		NumBrushes:     4,
		ReferenceScale: 1.0,
	}
}

// Validate reports the first invalid parameter.
func (c Config) Validate() error {
	if c.StrokeDensity <= 0 {
		return fmt.Errorf("stroke density must be positive, got %d", c.StrokeDensity)
	}
	if c.BrushSize <= 0 {
		return fmt.Errorf("brush size must be positive, got %v", c.BrushSize)
	}
	if c.Quantization < 0 {
		return fmt.Errorf("quantization must be non-negative, got %d", c.Quantization)
	}
	if c.Saturation < 0 || c.Saturation > 1 {
		return fmt.Errorf("saturation must be in [0,1], got %v", c.Saturation)
	}
	if bad(c.Background.X) || bad(c.Background.Y) || bad(c.Background.Z) {
		return fmt.Errorf("background channels must be in [0,1], got %v", c.Background)
	}
	if c.NumBrushes <= 0 {
		return fmt.Errorf("brush count must be positive, got %d", c.NumBrushes)
	}
	if c.ReferenceScale <= 0 || c.ReferenceScale > 4 {
		return fmt.Errorf("reference scale must be in (0,4], got %v", c.ReferenceScale)
	}
	return nil
}

func bad(channel float32) bool {
	return channel < 0 || channel > 1
}
