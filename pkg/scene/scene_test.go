package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-painterly-renderer/pkg/painter"
)

func writeSolidPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create PNG: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

func TestLoad_BuiltinScenes(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Load(Options{MeshPath: name, Config: painter.DefaultConfig(), Seed: 42})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if s.Mesh == nil || s.Albedo == nil || s.Brushes == nil || s.Paper == nil {
				t.Error("Expected a fully assembled scene")
			}
			if len(s.Anchors) == 0 {
				t.Error("Expected a non-empty anchor set")
			}
			if s.Brushes.Cells != painter.DefaultConfig().NumBrushes {
				t.Errorf("Expected %d brush cells, got %d", painter.DefaultConfig().NumBrushes, s.Brushes.Cells)
			}
		})
	}
}

func TestLoad_BuiltinDeterministicAnchors(t *testing.T) {
	opts := Options{MeshPath: "sphere", Config: painter.DefaultConfig(), Seed: 7}
	a, err := Load(opts)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, err := Load(opts)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(a.Anchors) != len(b.Anchors) {
		t.Fatalf("Expected identical anchor counts, got %d and %d", len(a.Anchors), len(b.Anchors))
	}
	for i := range a.Anchors {
		if a.Anchors[i] != b.Anchors[i] {
			t.Fatalf("Anchor %d: expected identical anchors for the same seed", i)
		}
	}
}

func TestLoad_MeshFileWithStemAlbedo(t *testing.T) {
	dir := t.TempDir()
	meshPath := filepath.Join(dir, "model.obj")
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nf 1/1 2/2 3/3\n"
	if err := os.WriteFile(meshPath, []byte(obj), 0644); err != nil {
		t.Fatalf("Failed to write mesh: %v", err)
	}

	// Without any albedo next to the mesh, the load must fail fast.
	cfg := painter.DefaultConfig()
	if _, err := Load(Options{MeshPath: meshPath, Config: cfg, Seed: 1}); err == nil {
		t.Fatal("Expected error for missing albedo, got nil")
	}

	// The file stem lookup picks up model.png once it exists.
	writeSolidPNG(t, filepath.Join(dir, "model.png"))
	s, err := Load(Options{MeshPath: meshPath, Config: cfg, Seed: 1})
	if err != nil {
		t.Fatalf("Expected no error with stem albedo, got %v", err)
	}
	if s.Albedo == nil {
		t.Error("Expected the stem-resolved albedo to be loaded")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	cfg := painter.DefaultConfig()
	cfg.StrokeDensity = 0
	if _, err := Load(Options{MeshPath: "cube", Config: cfg, Seed: 1}); err == nil {
		t.Error("Expected error for invalid density, got nil")
	}
}

func TestLoad_MissingMesh(t *testing.T) {
	cfg := painter.DefaultConfig()
	if _, err := Load(Options{MeshPath: filepath.Join(t.TempDir(), "gone.obj"), Config: cfg}); err == nil {
		t.Error("Expected error for missing mesh file, got nil")
	}
}

func TestIsBuiltin(t *testing.T) {
	if !IsBuiltin("cube") {
		t.Error("Expected cube to be a built-in scene")
	}
	if IsBuiltin("model.obj") {
		t.Error("Expected a file path not to be a built-in scene")
	}
}
