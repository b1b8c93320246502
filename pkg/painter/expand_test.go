package painter

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/material"
)

// opaqueAtlas returns an atlas whose cells are fully opaque (mask 0).
func opaqueAtlas(cells int) *material.BrushAtlas {
	size := 8
	pix := make([]math32.Vector4, cells*size*size)
	for i := range pix {
		pix[i] = math32.Vec4(0, 0, 0, 1)
	}
	return material.NewBrushAtlas(material.NewTexture(cells*size, size, pix, false), cells)
}

// halfAtlas returns an atlas where even cells are opaque and odd cells
// fully transparent, to verify cell selection.
func halfAtlas(cells int) *material.BrushAtlas {
	size := 8
	pix := make([]math32.Vector4, cells*size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < cells*size; x++ {
			mask := float32(0)
			if (x/size)%2 == 1 {
				mask = 1
			}
			pix[y*cells*size+x] = math32.Vec4(mask, mask, mask, 1)
		}
	}
	return material.NewBrushAtlas(material.NewTexture(cells*size, size, pix, false), cells)
}

func centeredStroke(brush int) ShadedStroke {
	return ShadedStroke{
		Position:  math32.Vec3(0, 0, 0),
		NDC:       math32.Vec3(0, 0, 0.5),
		Color:     math32.Vec4(1, 0, 0, 1),
		Brush:     brush,
		Tangent:   math32.Vec3(1, 0, 0),
		Bitangent: math32.Vec3(0, 1, 0),
	}
}

func paintedPixels(canvas *Framebuffer) int {
	count := 0
	for _, p := range canvas.Pix {
		if p.W > 0 {
			count++
		}
	}
	return count
}

func TestExpandStrokes_ScreenModeSize(t *testing.T) {
	canvas := NewFramebuffer(200, 200)
	canvas.Clear(math32.Vec4(0, 0, 0, 0))
	cam := headOnCamera(2, 200, 200)

	drawn := ExpandStrokes(canvas, []ShadedStroke{centeredStroke(0)}, opaqueAtlas(1), cam, 0.04, false)
	if drawn != 1 {
		t.Fatalf("Expected 1 stroke drawn, got %d", drawn)
	}

	// Screen mode spans 2*brushSize in NDC, 0.04 of the 200px target on
	// each axis, giving an 8x8 pixel footprint.
	painted := paintedPixels(canvas)
	if painted < 49 || painted > 81 {
		t.Errorf("Expected roughly 64 painted pixels, got %d", painted)
	}

	// The footprint is centered on the stroke.
	if canvas.At(100, 100).W == 0 {
		t.Error("Expected the canvas center to be painted")
	}
	if canvas.At(120, 100).W != 0 {
		t.Error("Expected pixels outside the stroke to stay empty")
	}
}

func TestExpandStrokes_ScreenModeZoomInvariant(t *testing.T) {
	sizes := []float32{2, 4}
	var counts [2]int
	for i, dist := range sizes {
		canvas := NewFramebuffer(120, 120)
		canvas.Clear(math32.Vec4(0, 0, 0, 0))
		ExpandStrokes(canvas, []ShadedStroke{centeredStroke(0)}, opaqueAtlas(1),
			headOnCamera(dist, 120, 120), 0.05, false)
		counts[i] = paintedPixels(canvas)
	}
	if counts[0] != counts[1] {
		t.Errorf("Expected identical screen-mode footprints at both distances, got %d and %d",
			counts[0], counts[1])
	}
}

func TestExpandStrokes_TBNModeScalesWithDistance(t *testing.T) {
	near := NewFramebuffer(120, 120)
	near.Clear(math32.Vec4(0, 0, 0, 0))
	ExpandStrokes(near, []ShadedStroke{centeredStroke(0)}, opaqueAtlas(1),
		headOnCamera(2, 120, 120), 0.1, true)

	far := NewFramebuffer(120, 120)
	far.Clear(math32.Vec4(0, 0, 0, 0))
	ExpandStrokes(far, []ShadedStroke{centeredStroke(0)}, opaqueAtlas(1),
		headOnCamera(4, 120, 120), 0.1, true)

	if paintedPixels(near) <= paintedPixels(far) {
		t.Errorf("Expected world-sized strokes to shrink with distance, got %d near and %d far",
			paintedPixels(near), paintedPixels(far))
	}
	if paintedPixels(far) == 0 {
		t.Error("Expected the far stroke to stay visible")
	}
}

func TestExpandStrokes_BrushVariantSelectsCell(t *testing.T) {
	atlas := halfAtlas(4)
	cam := headOnCamera(2, 100, 100)

	// Even cells are opaque, odd cells transparent; the variant picks
	// the cell. Bilinear filtering still softens the first texel at a
	// cell border, so the transparent check looks at the stroke center
	// rather than demanding zero paint.
	for brush, opaque := range map[int]bool{0: true, 1: false, 2: true, 3: false} {
		canvas := NewFramebuffer(100, 100)
		canvas.Clear(math32.Vec4(0, 0, 0, 0))
		ExpandStrokes(canvas, []ShadedStroke{centeredStroke(brush)}, atlas, cam, 0.1, false)

		center := canvas.At(50, 50).W
		if opaque && center != 1 {
			t.Errorf("Brush %d: expected full coverage at the center of an opaque cell, got %v", brush, center)
		}
		if !opaque && center != 0 {
			t.Errorf("Brush %d: expected no coverage at the center of a transparent cell, got %v", brush, center)
		}
	}
}

func TestExpandStrokes_OffscreenStrokeNotCounted(t *testing.T) {
	canvas := NewFramebuffer(64, 64)
	canvas.Clear(math32.Vec4(0, 0, 0, 0))

	off := centeredStroke(0)
	off.NDC = math32.Vec3(3, 3, 0.5) // far outside the viewport

	drawn := ExpandStrokes(canvas, []ShadedStroke{off}, opaqueAtlas(1),
		headOnCamera(2, 64, 64), 0.04, false)
	if drawn != 0 {
		t.Errorf("Expected no strokes drawn for an off-screen quad, got %d", drawn)
	}
	if paintedPixels(canvas) != 0 {
		t.Error("Expected an empty canvas for an off-screen stroke")
	}
}

func TestExpandStrokes_BlendAccumulatesCoverage(t *testing.T) {
	canvas := NewFramebuffer(100, 100)
	canvas.Clear(math32.Vec4(0.2, 0.2, 0.2, 0))

	strokes := []ShadedStroke{centeredStroke(0), centeredStroke(0)}
	strokes[1].Color = math32.Vec4(0, 1, 0, 1)

	ExpandStrokes(canvas, strokes, opaqueAtlas(1), headOnCamera(2, 100, 100), 0.05, false)

	// The later stroke was composited over the earlier one; with full
	// opacity the center holds the second stroke's color.
	center := canvas.At(50, 50)
	if center.Sub(math32.Vec4(0, 1, 0, 1)).Length() > 1e-5 {
		t.Errorf("Expected the later stroke's color at the center, got %v", center)
	}
}
