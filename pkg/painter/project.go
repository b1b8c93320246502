package painter

import (
	"cogentcore.org/core/math32"
	fmath "github.com/chewxy/math32"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
	"github.com/df07/go-painterly-renderer/pkg/material"
)

// OcclusionTolerance is the normalized-depth slack of the occlusion rule:
// an anchor survives iff ownDepth - OcclusionTolerance <= referenceDepth.
// The rule is a heuristic against the prepass raster, not an exact
// visibility test; anchors on steep silhouettes may flicker across frames
// and that is an accepted artifact.
const OcclusionTolerance = 0.01

// ShadedStroke is the per-frame record of one surviving anchor: its
// projection, shaded color and the data the expansion pass needs to
// orient and texture the quad. Never persisted across frames.
type ShadedStroke struct {
	Position  math32.Vector3 // world position of the anchor
	NDC       math32.Vector3 // normalized device coordinates
	Color     math32.Vector4 // shaded + quantized; alpha is a coverage flag, always 1
	Brush     int
	Tangent   math32.Vector3
	Bitangent math32.Vector3
}

// ProjectAnchors runs the projection and culling pass: every anchor is
// projected through the camera, tested against the reference field's
// surface depth, and survivors are shaded. dst is reused as the output
// slice to avoid per-frame allocation. dropped counts anchors lost to
// non-finite positions or the camera plane, culled those behind the
// reference surface.
func ProjectAnchors(dst []ShadedStroke, anchors []geometry.Anchor, albedo *material.Texture, light Light, cam FrameCamera, ref *ReferenceField, quantization int) (strokes []ShadedStroke, dropped, culled int) {
	dst = dst[:0]
	viewProj := cam.ViewProjection()

	for i := range anchors {
		a := &anchors[i]
		p := a.Position
		if !finiteVec3(p) {
			dropped++
			continue
		}

		clip := math32.Vec4(p.X, p.Y, p.Z, 1).MulMatrix4(&viewProj)
		if clip.W <= minClipW {
			dropped++
			continue
		}
		ndc := clip.PerspDiv()

		// Off-screen anchors clamp to the edge pixel instead of being
		// discarded, so strokes near the silhouette still get a sample.
		u := math32.Clamp((ndc.X+1)*0.5, 0, 1)
		v := math32.Clamp((1-ndc.Y)*0.5, 0, 1)
		ownDepth := math32.Clamp(ndc.Z*0.5+0.5, 0, 1)

		if ownDepth-OcclusionTolerance > ref.DepthAt(u, v) {
			culled++
			continue
		}

		// Independent shading evaluation for the anchor sample. This
		// intentionally mirrors, rather than shares, the reference
		// raster's shading: the raster shades interpolated fragments,
		// this site shades the anchor's own attributes.
		view := cam.Position.Sub(p).Normal()
		diffuse := math32.Max(0, a.Normal.Dot(light.Dir))
		half := light.Dir.Add(view).Normal()
		specular := light.Specular * fmath.Pow(math32.Max(0, a.Normal.Dot(half)), light.Shininess)
		brightness := math32.Max(light.Ambient, diffuse+specular)
		brightness = QuantizeBrightness(brightness, quantization)

		rgb := albedo.SampleRGB(a.UV.X, a.UV.Y).MulScalar(brightness)
		dst = append(dst, ShadedStroke{
			Position:  p,
			NDC:       ndc,
			Color:     math32.Vec4(rgb.X, rgb.Y, rgb.Z, 1),
			Brush:     a.Brush,
			Tangent:   a.Tangent,
			Bitangent: a.Bitangent,
		})
	}
	return dst, dropped, culled
}

func finiteVec3(v math32.Vector3) bool {
	return !math32.IsNaN(v.X) && !math32.IsInf(v.X, 0) &&
		!math32.IsNaN(v.Y) && !math32.IsInf(v.Y, 0) &&
		!math32.IsNaN(v.Z) && !math32.IsInf(v.Z, 0)
}
