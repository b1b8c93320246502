// Package scene assembles painter.Scene bundles from asset files or the
// built-in demo models, including anchor-set construction.
package scene

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
	"github.com/df07/go-painterly-renderer/pkg/loaders"
	"github.com/df07/go-painterly-renderer/pkg/material"
	"github.com/df07/go-painterly-renderer/pkg/painter"
)

// Options selects the assets of one scene load. MeshPath is required
// unless a built-in scene name is used through Load. Empty AlbedoPath
// resolves the texture by the mesh file stem; empty BrushDir and
// PaperPath fall back to procedural assets.
type Options struct {
	MeshPath   string
	AlbedoPath string
	BrushDir   string
	PaperPath  string
	Config     painter.Config
	Seed       int64
	Logger     *slog.Logger
}

// Load assembles a scene: built-in name or mesh file, albedo, brush
// atlas, paper and the anchor set. Configuration problems and missing
// required assets fail here, before any frame is rendered.
func Load(opts Options) (*painter.Scene, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if builtin := builtinByName(opts.MeshPath); builtin != nil {
		return assemble(builtin(), opts, logger)
	}

	mesh, err := loaders.LoadMesh(opts.MeshPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}
	albedo, err := resolveAlbedo(opts)
	if err != nil {
		return nil, err
	}

	return assemble(&painter.Scene{
		Mesh:   mesh,
		Albedo: albedo,
		Light:  painter.DefaultLight(),
	}, opts, logger)
}

// assemble fills in brushes, paper and anchors for a scene that already
// carries its mesh and albedo.
func assemble(s *painter.Scene, opts Options, logger *slog.Logger) (*painter.Scene, error) {
	cfg := opts.Config

	if s.Brushes == nil {
		if opts.BrushDir != "" {
			atlas, err := loaders.LoadBrushAtlas(opts.BrushDir)
			if err != nil {
				return nil, fmt.Errorf("failed to load brush atlas: %w", err)
			}
			if atlas.Cells != cfg.NumBrushes {
				// The cell count is shared between anchor assignment and
				// the expansion pass; the atlas on disk wins.
				logger.Info("brush directory overrides configured brush count",
					"configured", cfg.NumBrushes, "found", atlas.Cells)
				cfg.NumBrushes = atlas.Cells
			}
			s.Brushes = atlas
		} else {
			s.Brushes = material.ProceduralBrushes(cfg.NumBrushes, 128, opts.Seed)
		}
	}

	if s.Paper == nil {
		if opts.PaperPath != "" {
			paper, err := loaders.LoadTexture(opts.PaperPath, false)
			if err != nil {
				return nil, fmt.Errorf("failed to load paper texture: %w", err)
			}
			s.Paper = paper
		} else {
			s.Paper = material.ProceduralPaper(512, 512, opts.Seed)
		}
	}

	start := time.Now()
	anchors, err := geometry.BuildAnchors(s.Mesh, cfg.StrokeDensity, cfg.NumBrushes, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to build anchor set: %w", err)
	}
	s.Anchors = anchors

	area := s.Mesh.SurfaceArea()
	expected := float64(area) * float64(cfg.StrokeDensity)
	errPct := 0.0
	if expected > 0 {
		errPct = (float64(len(anchors)) - expected) / expected * 100
	}
	logger.Info("anchor set built",
		"triangles", s.Mesh.TriangleCount(),
		"surface_area", area,
		"anchors", len(anchors),
		"density_error_pct", fmt.Sprintf("%.2f", errPct),
		"elapsed", time.Since(start),
	)
	return s, nil
}

// resolveAlbedo finds the albedo texture: the explicit path when given,
// otherwise <stem>.png/.jpg next to the mesh or in a textures/
// subdirectory. A missing albedo is a load error, not a silent default.
func resolveAlbedo(opts Options) (*material.Texture, error) {
	if opts.AlbedoPath != "" {
		tex, err := loaders.LoadTexture(opts.AlbedoPath, true)
		if err != nil {
			return nil, fmt.Errorf("failed to load albedo texture: %w", err)
		}
		return tex, nil
	}

	dir := filepath.Dir(opts.MeshPath)
	stem := strings.TrimSuffix(filepath.Base(opts.MeshPath), filepath.Ext(opts.MeshPath))
	candidates := []string{
		filepath.Join(dir, stem+".png"),
		filepath.Join(dir, stem+".jpg"),
		filepath.Join(dir, "textures", stem+".png"),
		filepath.Join(dir, "textures", stem+".jpg"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			tex, err := loaders.LoadTexture(candidate, true)
			if err != nil {
				return nil, fmt.Errorf("failed to load albedo texture: %w", err)
			}
			return tex, nil
		}
	}
	return nil, fmt.Errorf("no albedo texture found for %s (tried %v)", opts.MeshPath, candidates)
}
