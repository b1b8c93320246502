package painter

import (
	"image"

	"cogentcore.org/core/math32"
	fmath "github.com/chewxy/math32"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
	"github.com/df07/go-painterly-renderer/pkg/material"
)

// minClipW rejects vertices at or behind the camera plane. Triangles
// touching it are skipped whole rather than clipped.
const minClipW = 1e-6

// ReferenceField is the conventional-shading prepass target: a lit,
// textured color image plus a surface-depth channel computed from the
// projected position rather than a hardware depth buffer, so it compares
// exactly against anchor depths that go through the same projection.
// Both planes are fully overwritten every frame and read-only downstream.
type ReferenceField struct {
	Width  int
	Height int
	Color  []math32.Vector3
	Depth  []float32 // normalized [0,1], 1 = background
}

// NewReferenceField allocates a field target.
func NewReferenceField(width, height int) *ReferenceField {
	if width <= 0 || height <= 0 {
		panic("reference field dimensions must be positive")
	}
	return &ReferenceField{
		Width:  width,
		Height: height,
		Color:  make([]math32.Vector3, width*height),
		Depth:  make([]float32, width*height),
	}
}

// Clear resets the color plane to the background and depth to the far
// plane.
func (r *ReferenceField) Clear(background math32.Vector3) {
	for i := range r.Color {
		r.Color[i] = background
		r.Depth[i] = 1
	}
}

// ColorAt returns the color at normalized coordinates (u, v) with
// nearest-pixel lookup, clamped to the edges.
func (r *ReferenceField) ColorAt(u, v float32) math32.Vector3 {
	return r.Color[r.index(u, v)]
}

// DepthAt returns the surface depth at normalized coordinates (u, v)
// with nearest-pixel lookup, clamped to the edges.
func (r *ReferenceField) DepthAt(u, v float32) float32 {
	return r.Depth[r.index(u, v)]
}

func (r *ReferenceField) index(u, v float32) int {
	x := int(u * float32(r.Width))
	y := int(v * float32(r.Height))
	if x < 0 {
		x = 0
	} else if x >= r.Width {
		x = r.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.Height {
		y = r.Height - 1
	}
	return y*r.Width + x
}

// refVertex carries one projected vertex through rasterization.
type refVertex struct {
	sx, sy float32        // screen position, pixels
	depth  float32        // ndc z mapped to [0,1]
	invW   float32        // 1/w for perspective-correct attributes
	pos    math32.Vector3 // world position / w
	normal math32.Vector3 // world normal / w
	uv     math32.Vector2 // uv / w
}

// Render rasterizes the mesh into the field with directional Blinn
// shading and brightness quantization. Triangles are not backface
// culled, so open meshes stay visible from both sides; triangles
// touching the camera plane are skipped rather than clipped.
func (r *ReferenceField) Render(mesh *geometry.Mesh, albedo *material.Texture, light Light, cam FrameCamera, quantization int) {
	viewProj := cam.ViewProjection()
	w := float32(r.Width)
	h := float32(r.Height)

	for t := 0; t < mesh.TriangleCount(); t++ {
		i0, i1, i2 := mesh.Triangle(t)
		var sv [3]refVertex
		ok := true
		for c, idx := range [3]int{i0, i1, i2} {
			p := mesh.Positions[idx]
			clip := math32.Vec4(p.X, p.Y, p.Z, 1).MulMatrix4(&viewProj)
			if clip.W <= minClipW {
				ok = false
				break
			}
			ndc := clip.PerspDiv()
			invW := 1 / clip.W
			sv[c] = refVertex{
				sx:     (ndc.X + 1) * 0.5 * w,
				sy:     (1 - ndc.Y) * 0.5 * h,
				depth:  ndc.Z*0.5 + 0.5,
				invW:   invW,
				pos:    p.MulScalar(invW),
				normal: mesh.Normals[idx].MulScalar(invW),
				uv:     mesh.UVs[idx].MulScalar(invW),
			}
		}
		if !ok {
			continue
		}
		r.rasterize(sv, albedo, light, cam.Position, quantization)
	}
}

func (r *ReferenceField) rasterize(sv [3]refVertex, albedo *material.Texture, light Light, cameraPos math32.Vector3, quantization int) {
	// Signed twice-area of the screen triangle; the sign also encodes the
	// winding, so dividing the edge functions by it accepts both
	// orientations with positive barycentrics.
	area := (sv[1].sx-sv[0].sx)*(sv[2].sy-sv[0].sy) - (sv[1].sy-sv[0].sy)*(sv[2].sx-sv[0].sx)
	if area == 0 || math32.IsNaN(area) {
		return
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
	if maxX > r.Width-1 {
		maxX = r.Width - 1
	}
	if maxY > r.Height-1 {
		maxY = r.Height - 1
	}

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

			// Surface depth: affine interpolation of mapped NDC z, the
			// same value anchors compute for themselves later.
			depth := b0*sv[0].depth + b1*sv[1].depth + b2*sv[2].depth
			i := y*r.Width + x
			if depth >= r.Depth[i] {
				continue
			}

			invW := b0*sv[0].invW + b1*sv[1].invW + b2*sv[2].invW
			if invW <= 0 {
				continue
			}
			pw := 1 / invW
			pos := lerp3(sv[0].pos, sv[1].pos, sv[2].pos, b0, b1, b2).MulScalar(pw)
			normal := lerp3(sv[0].normal, sv[1].normal, sv[2].normal, b0, b1, b2).MulScalar(pw)
			if normal.LengthSquared() > 0 {
				normal = normal.Normal()
			}
			uv := sv[0].uv.MulScalar(b0).Add(sv[1].uv.MulScalar(b1)).Add(sv[2].uv.MulScalar(b2)).MulScalar(pw)

			// Shading: directional Blinn with an ambient floor. The
			// projection pass evaluates its own copy of this model per
			// anchor; the two sites feed different consumers and are
			// allowed to diverge.
			view := cameraPos.Sub(pos).Normal()
			diffuse := math32.Max(0, normal.Dot(light.Dir))
			half := light.Dir.Add(view).Normal()
			specular := light.Specular * fmath.Pow(math32.Max(0, normal.Dot(half)), light.Shininess)
			brightness := math32.Max(light.Ambient, diffuse+specular)
			brightness = QuantizeBrightness(brightness, quantization)

			r.Depth[i] = depth
			r.Color[i] = albedo.SampleRGB(uv.X, uv.Y).MulScalar(brightness)
		}
	}
}

// ToImage converts the color plane to an opaque 8-bit image, used by the
// raster debug view.
func (r *ReferenceField) ToImage() *image.RGBA {
	fb := &Framebuffer{Width: r.Width, Height: r.Height, Pix: make([]math32.Vector4, len(r.Color))}
	for i, c := range r.Color {
		fb.Pix[i] = math32.Vec4(c.X, c.Y, c.Z, 1)
	}
	return fb.ToRGBA()
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}

func lerp3(v0, v1, v2 math32.Vector3, w0, w1, w2 float32) math32.Vector3 {
	return v0.MulScalar(w0).Add(v1.MulScalar(w1)).Add(v2.MulScalar(w2))
}
