package painter

import (
	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/material"
)

// strokeCorner is one projected quad corner with its cell-local brush UV.
type strokeCorner struct {
	sx, sy float32
	u, v   float32
}

// ExpandStrokes is the host-side replacement for geometry-stage point
// amplification: every stroke becomes an oriented quad of two triangles,
// textured by its brush atlas cell and source-over blended into the
// canvas. Strokes composite in input order; no depth sort is performed
// and the resulting overlap artifacts are accepted.
//
// With useTBN the quad axes are the anchor's world tangent and bitangent
// scaled by brushSize in world units, so strokes follow surface flow and
// scale with perspective. Otherwise the quad is screen-aligned with
// brushSize in NDC units, invariant under zoom. Returns the number of
// strokes that reached the canvas.
func ExpandStrokes(canvas *Framebuffer, strokes []ShadedStroke, atlas *material.BrushAtlas, cam FrameCamera, brushSize float32, useTBN bool) int {
	viewProj := cam.ViewProjection()
	w := float32(canvas.Width)
	h := float32(canvas.Height)
	drawn := 0

	// Corner order walks the quad counter-clockwise; UVs map the unit
	// square so the brush cell stretches across the whole quad.
	offsets := [4]struct{ s, t float32 }{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
	}
	uvs := [4]struct{ u, v float32 }{
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
	}

	for i := range strokes {
		st := &strokes[i]
		var corners [4]strokeCorner
		ok := true

		if useTBN {
			tan := st.Tangent.MulScalar(brushSize)
			bitan := st.Bitangent.MulScalar(brushSize)
			for c := 0; c < 4; c++ {
				p := st.Position.
					Add(tan.MulScalar(offsets[c].s)).
					Add(bitan.MulScalar(offsets[c].t))
				clip := math32.Vec4(p.X, p.Y, p.Z, 1).MulMatrix4(&viewProj)
				if clip.W <= minClipW {
					ok = false
					break
				}
				ndc := clip.PerspDiv()
				corners[c] = strokeCorner{
					sx: (ndc.X + 1) * 0.5 * w,
					sy: (1 - ndc.Y) * 0.5 * h,
					u:  uvs[c].u,
					v:  uvs[c].v,
				}
			}
		} else {
			for c := 0; c < 4; c++ {
				nx := st.NDC.X + offsets[c].s*brushSize
				ny := st.NDC.Y + offsets[c].t*brushSize
				corners[c] = strokeCorner{
					sx: (nx + 1) * 0.5 * w,
					sy: (1 - ny) * 0.5 * h,
					u:  uvs[c].u,
					v:  uvs[c].v,
				}
			}
		}
		if !ok {
			continue
		}

		rgb := math32.Vec3(st.Color.X, st.Color.Y, st.Color.Z)
		painted := rasterizeStroke(canvas, [3]strokeCorner{corners[0], corners[1], corners[2]}, atlas, st.Brush, rgb)
		painted = rasterizeStroke(canvas, [3]strokeCorner{corners[0], corners[2], corners[3]}, atlas, st.Brush, rgb) || painted
		if painted {
			drawn++
		}
	}
	return drawn
}

// rasterizeStroke scan-converts one stroke triangle, sampling the brush
// mask per pixel. The quad spans a handful of pixels, so UVs interpolate
// affinely in screen space. Reports whether any pixel was painted.
func rasterizeStroke(canvas *Framebuffer, sv [3]strokeCorner, atlas *material.BrushAtlas, brush int, rgb math32.Vector3) bool {
	area := (sv[1].sx-sv[0].sx)*(sv[2].sy-sv[0].sy) - (sv[1].sy-sv[0].sy)*(sv[2].sx-sv[0].sx)
	if area == 0 || math32.IsNaN(area) {
		return false
	}
	invArea := 1 / area

	minX := int(math32.Floor(min3(sv[0].sx, sv[1].sx, sv[2].sx)))
	maxX := int(math32.Ceil(max3(sv[0].sx, sv[1].sx, sv[2].sx)))
	minY := int(math32.Floor(min3(sv[0].sy, sv[1].sy, sv[2].sy)))
	maxY := int(math32.Ceil(max3(sv[0].sy, sv[1].sy, sv[2].sy)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > canvas.Width-1 {
		maxX = canvas.Width - 1
	}
	if maxY > canvas.Height-1 {
		maxY = canvas.Height - 1
	}

	painted := false
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			b0 := ((sv[1].sx-px)*(sv[2].sy-py) - (sv[1].sy-py)*(sv[2].sx-px)) * invArea
			b1 := ((sv[2].sx-px)*(sv[0].sy-py) - (sv[2].sy-py)*(sv[0].sx-px)) * invArea
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			u := b0*sv[0].u + b1*sv[1].u + b2*sv[2].u
			v := b0*sv[0].v + b1*sv[1].v + b2*sv[2].v

			// Samples that map past the atlas edge are discarded rather
			// than clamped, so filtering never bleeds into the next cell.
			mask, sampled := atlas.SampleMask(brush, u, v)
			if !sampled {
				continue
			}
			a := 1 - mask
			if a <= 0 {
				continue
			}
			canvas.BlendOver(x, y, rgb, a)
			painted = true
		}
	}
	return painted
}
