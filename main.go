package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/painter"
	"github.com/df07/go-painterly-renderer/pkg/scene"
	"github.com/df07/go-painterly-renderer/pkg/viewer"
)

func main() {
	meshPath := flag.String("scene", "sphere", "Built-in scene name or mesh file (.obj, .ply)")
	albedoPath := flag.String("texture", "", "Albedo texture file (default: resolved by mesh file stem)")
	brushDir := flag.String("brushes", "", "Directory of brush mask images (default: procedural brushes)")
	paperPath := flag.String("paper", "", "Paper texture file (default: procedural paper)")
	width := flag.Int("width", 800, "Canvas width in pixels")
	height := flag.Int("height", 600, "Canvas height in pixels")
	density := flag.Int("density", 0, "Anchors per unit of surface area (0 = default)")
	brushSize := flag.Float64("brush-size", 0, "Stroke half-extent (0 = default)")
	quantization := flag.Int("quantization", 0, "Brightness levels for posterization (0 = off)")
	saturation := flag.Float64("saturation", 1.0, "Color saturation, 0 grayscale to 1 full")
	background := flag.String("background", "", "Background color as r,g,b in [0,1]")
	canvas := flag.Bool("canvas", true, "Modulate the composite by the paper texture")
	tbn := flag.Bool("tbn", true, "Orient strokes along the surface tangent frame")
	headless := flag.Bool("headless", false, "Render one frame to a PNG instead of opening the viewer")
	output := flag.String("output", "output", "Output directory for headless renders")
	seed := flag.Int64("seed", 42, "Anchor generation seed")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Painterly Renderer")
		fmt.Println("Usage: painterly [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Built-in scenes:", strings.Join(scene.BuiltinNames(), ", "))
		fmt.Println()
		fmt.Println("Headless output is saved to <output>/render_<timestamp>.png")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := painter.DefaultConfig()
	if *density > 0 {
		cfg.StrokeDensity = *density
	}
	if *brushSize > 0 {
		cfg.BrushSize = float32(*brushSize)
	}
	cfg.Quantization = *quantization
	cfg.Saturation = float32(*saturation)
	cfg.EnableCanvas = *canvas
	cfg.EnableBrushTBN = *tbn
	if *background != "" {
		bg, err := parseBackground(*background)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid background: %v\n", err)
			os.Exit(1)
		}
		cfg.Background = bg
	}

	loaded, err := scene.Load(scene.Options{
		MeshPath:   *meshPath,
		AlbedoPath: *albedoPath,
		BrushDir:   *brushDir,
		PaperPath:  *paperPath,
		Config:     cfg,
		Seed:       *seed,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	if *headless {
		if err := renderHeadless(loaded, cfg, *width, *height, *output, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
			os.Exit(1)
		}
		return
	}

	view, err := viewer.New(loaded, cfg, *width, *height, *seed, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating viewer: %v\n", err)
		os.Exit(1)
	}
	if err := view.Run("Painterly Renderer"); err != nil {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		os.Exit(1)
	}
}

// renderHeadless renders one frame from the default orbit position and
// saves it as a timestamped PNG.
func renderHeadless(s *painter.Scene, cfg painter.Config, width, height int, outputDir string, logger *slog.Logger) error {
	pipeline, err := painter.NewPipeline(s, cfg, width, height, logger)
	if err != nil {
		return err
	}

	min, max := s.Mesh.Bounds()
	radius := max.Sub(min).Length() * 1.6
	if radius <= 0 {
		radius = 2
	}
	cam := viewer.NewOrbitCamera(radius, float32(width)/float32(height))

	startTime := time.Now()
	frame := pipeline.RenderFrame(cam.Frame(), painter.ModeFull)
	renderTime := time.Since(startTime)

	stats := pipeline.Stats()
	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Strokes drawn: %d of %d anchors (%d culled, %d dropped)\n",
		stats.StrokesDrawn, stats.AnchorsTotal, stats.AnchorsCulled, stats.AnchorsDropped)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, frame); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// parseBackground parses "r,g,b" with channels in [0,1].
func parseBackground(s string) (math32.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math32.Vector3{}, fmt.Errorf("expected r,g,b, got %q", s)
	}
	var channels [3]float32
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return math32.Vector3{}, fmt.Errorf("invalid channel %q: %w", part, err)
		}
		if v < 0 || v > 1 {
			return math32.Vector3{}, fmt.Errorf("channel %v out of [0,1]", v)
		}
		channels[i] = float32(v)
	}
	return math32.Vec3(channels[0], channels[1], channels[2]), nil
}
