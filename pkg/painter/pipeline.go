package painter

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
	"github.com/df07/go-painterly-renderer/pkg/material"
)

// Scene bundles everything the pipeline consumes for one model: the mesh,
// its precomputed anchor set, the albedo texture, the brush atlas, an
// optional paper texture and the light. Assembled by the scene package;
// defined here on the consumer side.
type Scene struct {
	Mesh    *geometry.Mesh
	Anchors []geometry.Anchor
	Albedo  *material.Texture
	Brushes *material.BrushAtlas
	Paper   *material.Texture
	Light   Light
}

// FrameCamera is the per-frame camera input: view and projection
// transforms plus the camera's world position for specular shading.
// Orbit and zoom logic live with the viewer, not here.
type FrameCamera struct {
	View       math32.Matrix4
	Projection math32.Matrix4
	Position   math32.Vector3
}

// ViewProjection returns Projection * View.
func (c *FrameCamera) ViewProjection() math32.Matrix4 {
	var m math32.Matrix4
	m.MulMatrices(&c.Projection, &c.View)
	return m
}

// RenderMode selects which pass's output RenderFrame returns.
type RenderMode int

const (
	// ModeFull runs the whole pipeline: strokes plus post-processing.
	ModeFull RenderMode = iota
	// ModeReference shows the conventional prepass raster directly.
	ModeReference
	// ModePoints bypasses expansion and plots raw surviving anchors.
	ModePoints
)

// Pipeline owns the render targets and runs the five passes in order:
// reference field, projection and culling, expansion and compositing,
// post-process. Targets are exclusively owned and fully overwritten each
// frame, so frames never need locking; the anchor set is immutable and
// shared.
type Pipeline struct {
	scene  *Scene
	config Config
	logger *slog.Logger

	width  int
	height int

	ref     *ReferenceField
	canvas  *Framebuffer
	strokes []ShadedStroke // scratch, reused across frames
	stats   FrameStats
}

// NewPipeline validates the configuration and allocates render targets
// at the given canvas resolution.
func NewPipeline(scene *Scene, config Config, width, height int, logger *slog.Logger) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if scene == nil || scene.Mesh == nil || scene.Albedo == nil || scene.Brushes == nil {
		return nil, fmt.Errorf("scene must carry a mesh, an albedo texture and a brush atlas")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", width, height)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Pipeline{
		scene:  scene,
		config: config,
		logger: logger,
	}
	p.Resize(width, height)
	return p, nil
}

// Resize replaces all render targets at the new canvas resolution. The
// next frame starts fresh; nothing is patched mid-frame.
func (p *Pipeline) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width = width
	p.height = height
	p.canvas = NewFramebuffer(width, height)
	p.ref = NewReferenceField(p.refSize())
}

func (p *Pipeline) refSize() (int, int) {
	w := int(float32(p.width) * p.config.ReferenceScale)
	h := int(float32(p.height) * p.config.ReferenceScale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// SetConfig swaps render parameters between frames, reallocating the
// reference field when its scale changed. The anchor set is not rebuilt
// here; density changes go through the scene owner.
func (p *Pipeline) SetConfig(config Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid render config: %w", err)
	}
	scaleChanged := config.ReferenceScale != p.config.ReferenceScale
	p.config = config
	if scaleChanged {
		p.ref = NewReferenceField(p.refSize())
	}
	return nil
}

// Config returns the active render parameters.
func (p *Pipeline) Config() Config {
	return p.config
}

// SetAnchors replaces the scene's anchor set, after a density change.
func (p *Pipeline) SetAnchors(anchors []geometry.Anchor) {
	p.scene.Anchors = anchors
}

// Stats returns the counters and timings of the last rendered frame.
func (p *Pipeline) Stats() FrameStats {
	return p.stats
}

// Size returns the canvas resolution.
func (p *Pipeline) Size() (int, int) {
	return p.width, p.height
}

// RenderFrame runs the passes for one camera and returns the image for
// the requested mode. Pass inputs are fully written before the next pass
// starts; two calls with the same camera and config produce identical
// images.
func (p *Pipeline) RenderFrame(cam FrameCamera, mode RenderMode) *image.RGBA {
	frameStart := time.Now()
	stats := FrameStats{AnchorsTotal: len(p.scene.Anchors)}

	p.ref.Clear(p.config.Background)
	p.ref.Render(p.scene.Mesh, p.scene.Albedo, p.scene.Light, cam, p.config.Quantization)
	stats.ReferenceTime = time.Since(frameStart)

	if mode == ModeReference {
		stats.FrameTime = time.Since(frameStart)
		p.stats = stats
		return p.ref.ToImage()
	}

	projectStart := time.Now()
	var dropped, culled int
	p.strokes, dropped, culled = ProjectAnchors(p.strokes, p.scene.Anchors,
		p.scene.Albedo, p.scene.Light, cam, p.ref, p.config.Quantization)
	stats.AnchorsDropped = dropped
	stats.AnchorsCulled = culled
	stats.ProjectTime = time.Since(projectStart)

	bg := p.config.Background
	p.canvas.Clear(math32.Vec4(bg.X, bg.Y, bg.Z, 0))

	expandStart := time.Now()
	if mode == ModePoints {
		stats.StrokesDrawn = p.plotPoints()
	} else {
		stats.StrokesDrawn = ExpandStrokes(p.canvas, p.strokes, p.scene.Brushes,
			cam, p.config.BrushSize, p.config.EnableBrushTBN)
	}
	stats.ExpandTime = time.Since(expandStart)

	var img *image.RGBA
	postStart := time.Now()
	if mode == ModePoints {
		// Points view is a raw diagnostic; paper and saturation stay off.
		img = p.canvas.ToRGBA()
	} else {
		img = PostProcess(p.canvas, p.scene.Paper, p.config.EnableCanvas, p.config.Saturation)
	}
	stats.PostTime = time.Since(postStart)

	stats.FrameTime = time.Since(frameStart)
	p.stats = stats
	p.logger.Debug("frame rendered",
		"mode", int(mode),
		"survivors", stats.Survivors(),
		"culled", stats.AnchorsCulled,
		"dropped", stats.AnchorsDropped,
		"drawn", stats.StrokesDrawn,
		"frame", stats.FrameTime,
	)
	return img
}

// plotPoints writes each surviving stroke as a small solid dot, the
// "no-paint" debug view of the raw anchor set.
func (p *Pipeline) plotPoints() int {
	for i := range p.strokes {
		st := &p.strokes[i]
		x := int((st.NDC.X + 1) * 0.5 * float32(p.canvas.Width))
		y := int((1 - st.NDC.Y) * 0.5 * float32(p.canvas.Height))
		rgb := math32.Vec3(st.Color.X, st.Color.Y, st.Color.Z)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				p.canvas.BlendOver(x+dx, y+dy, rgb, 1)
			}
		}
	}
	return len(p.strokes)
}
