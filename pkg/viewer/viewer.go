package viewer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
	"github.com/df07/go-painterly-renderer/pkg/painter"
)

const (
	orbitPerNotch  = 0.08 // radians per wheel notch
	zoomPerTick    = 0.01
	densityStep    = 500
	brushStep      = 0.005
	saturationStep = 0.05
)

// Viewer is the interactive window around the pipeline. Key map:
// wheel orbits, Up/Down zooms, V toggles the reference view, P the
// points view, G the HUD, Q/W quantization, S/D brush size, C paper,
// T brush orientation, [/] saturation, N/M stroke density, R resets
// the camera, Escape quits.
type Viewer struct {
	pipeline *painter.Pipeline
	scene    *painter.Scene
	camera   *OrbitCamera
	logger   *slog.Logger
	seed     int64

	width  int
	height int

	mode      painter.RenderMode
	showHUD   bool
	frameImg  *ebiten.Image
	frameTime *RunningAverage

	startRadius float32
}

// New creates a viewer at the given canvas resolution. The camera
// radius is derived from the mesh bounds so any model starts framed.
func New(scene *painter.Scene, cfg painter.Config, width, height int, seed int64, logger *slog.Logger) (*Viewer, error) {
	pipeline, err := painter.NewPipeline(scene, cfg, width, height, logger)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	radius := frameRadius(scene.Mesh)
	return &Viewer{
		pipeline:    pipeline,
		scene:       scene,
		camera:      NewOrbitCamera(radius, float32(width)/float32(height)),
		logger:      logger,
		seed:        seed,
		width:       width,
		height:      height,
		mode:        painter.ModeFull,
		showHUD:     true,
		frameTime:   NewRunningAverage(30),
		startRadius: radius,
	}, nil
}

// frameRadius picks an orbit radius that keeps the whole mesh in view
// with the default field of view.
func frameRadius(mesh *geometry.Mesh) float32 {
	min, max := mesh.Bounds()
	extent := max.Sub(min).Length()
	if extent <= 0 {
		return 2
	}
	return extent * 1.6
}

// Run opens the window and blocks until it closes.
func (v *Viewer) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

// Update handles input. Config edits go through the pipeline so they
// are validated and take effect at the next frame.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	wheelX, wheelY := ebiten.Wheel()
	if wheelX != 0 || wheelY != 0 {
		v.camera.Rotate(float32(wheelX)*orbitPerNotch, float32(wheelY)*orbitPerNotch)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camera.Zoom(zoomPerTick * v.startRadius)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camera.Zoom(-zoomPerTick * v.startRadius)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.camera.Reset(v.startRadius)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if v.mode == painter.ModeReference {
			v.mode = painter.ModeFull
		} else {
			v.mode = painter.ModeReference
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if v.mode == painter.ModePoints {
			v.mode = painter.ModeFull
		} else {
			v.mode = painter.ModePoints
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.showHUD = !v.showHUD
	}

	v.applyConfigKeys()
	return nil
}

// applyConfigKeys maps the parameter keys onto config edits.
func (v *Viewer) applyConfigKeys() {
	cfg := v.pipeline.Config()
	changed := false

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) && cfg.Quantization > 0 {
		cfg.Quantization--
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) && cfg.Quantization < 20 {
		cfg.Quantization++
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && cfg.BrushSize > brushStep {
		cfg.BrushSize -= brushStep
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		cfg.BrushSize += brushStep
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		cfg.EnableCanvas = !cfg.EnableCanvas
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		cfg.EnableBrushTBN = !cfg.EnableBrushTBN
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && cfg.Saturation > 0 {
		cfg.Saturation = maxf(0, cfg.Saturation-saturationStep)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) && cfg.Saturation < 1 {
		cfg.Saturation = minf(1, cfg.Saturation+saturationStep)
		changed = true
	}

	rebuild := false
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && cfg.StrokeDensity > densityStep {
		cfg.StrokeDensity -= densityStep
		changed = true
		rebuild = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		cfg.StrokeDensity += densityStep
		changed = true
		rebuild = true
	}

	if !changed {
		return
	}
	if err := v.pipeline.SetConfig(cfg); err != nil {
		v.logger.Warn("rejected config change", "error", err)
		return
	}
	if rebuild {
		anchors, err := geometry.BuildAnchors(v.scene.Mesh, cfg.StrokeDensity, cfg.NumBrushes, v.seed)
		if err != nil {
			v.logger.Warn("failed to rebuild anchors", "error", err)
			return
		}
		v.pipeline.SetAnchors(anchors)
		v.logger.Info("anchor set rebuilt", "density", cfg.StrokeDensity, "anchors", len(anchors))
	}
}

// Draw renders one frame and presents it, with the HUD on top.
func (v *Viewer) Draw(screen *ebiten.Image) {
	start := time.Now()
	frame := v.pipeline.RenderFrame(v.camera.Frame(), v.mode)
	v.frameTime.Add(float64(time.Since(start).Microseconds()) / 1000)

	if v.frameImg == nil ||
		v.frameImg.Bounds().Dx() != frame.Bounds().Dx() ||
		v.frameImg.Bounds().Dy() != frame.Bounds().Dy() {
		if v.frameImg != nil {
			v.frameImg.Deallocate()
		}
		v.frameImg = ebiten.NewImage(frame.Bounds().Dx(), frame.Bounds().Dy())
	}
	v.frameImg.WritePixels(frame.Pix)
	screen.DrawImage(v.frameImg, nil)

	if v.showHUD {
		ebitenutil.DebugPrint(screen, v.hudText())
	}
}

func (v *Viewer) hudText() string {
	cfg := v.pipeline.Config()
	stats := v.pipeline.Stats()
	return fmt.Sprintf(
		"frame %.1fms  mode %s\n"+
			"anchors %d  drawn %d  culled %d  dropped %d\n"+
			"density %d (N/M)  brush %.3f (S/D)  quant %d (Q/W)\n"+
			"paper %v (C)  tbn %v (T)  saturation %.2f ([/])",
		v.frameTime.Average(), modeName(v.mode),
		stats.AnchorsTotal, stats.StrokesDrawn, stats.AnchorsCulled, stats.AnchorsDropped,
		cfg.StrokeDensity, cfg.BrushSize, cfg.Quantization,
		cfg.EnableCanvas, cfg.EnableBrushTBN, cfg.Saturation,
	)
}

func modeName(m painter.RenderMode) string {
	switch m {
	case painter.ModeReference:
		return "reference"
	case painter.ModePoints:
		return "points"
	default:
		return "full"
	}
}

// Layout resizes the pipeline targets with the window.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != v.width || outsideHeight != v.height) {
		v.width = outsideWidth
		v.height = outsideHeight
		v.pipeline.Resize(v.width, v.height)
		v.camera.SetAspect(float32(v.width) / float32(v.height))
	}
	return v.width, v.height
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
