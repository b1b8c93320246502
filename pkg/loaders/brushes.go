package loaders

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-painterly-renderer/pkg/material"
)

// BrushCellSize is the pixel edge of one atlas cell when the strip is
// assembled from image files.
const BrushCellSize = 320

// LoadBrushAtlas reads every PNG/JPEG in a directory, sorted by name for
// a stable cell order, and scales each onto one cell of a brush strip.
// Brush images store the stroke mask in their red channel: 0 at the
// opaque center, 1 where the stroke vanishes.
func LoadBrushAtlas(dir string) (*material.BrushAtlas, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read brush directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no brush images found in %s", dir)
	}
	sort.Strings(names)

	images := make([]image.Image, 0, len(names))
	for _, name := range names {
		img, err := decodeImageFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load brush %s: %w", name, err)
		}
		images = append(images, img)
	}
	return material.BuildBrushAtlas(images, BrushCellSize)
}

func decodeImageFile(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}
