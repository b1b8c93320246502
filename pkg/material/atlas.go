package material

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// BrushAtlas holds brush-shape masks side by side in one horizontal strip
// of equal-width cells. The red channel carries the mask: 0 at the opaque
// stroke center, 1 where the stroke vanishes, so stroke opacity is
// 1 - mask.
type BrushAtlas struct {
	Texture *Texture
	Cells   int
}

// NewBrushAtlas wraps an existing strip texture. Panics if cells is not
// positive; the cell count is a config value validated long before this.
func NewBrushAtlas(tex *Texture, cells int) *BrushAtlas {
	if cells <= 0 {
		panic("brush atlas needs at least one cell")
	}
	return &BrushAtlas{Texture: tex, Cells: cells}
}

// BuildBrushAtlas scales each source image onto one square cell of a
// horizontal strip, the runtime equivalent of the asset-baking step that
// produces brush strips offline. cellSize is the cell edge in pixels.
func BuildBrushAtlas(images []image.Image, cellSize int) (*BrushAtlas, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("brush atlas needs at least one source image")
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("brush atlas cell size must be positive, got %d", cellSize)
	}

	strip := image.NewRGBA(image.Rect(0, 0, cellSize*len(images), cellSize))
	xdraw.Draw(strip, strip.Bounds(), image.White, image.Point{}, xdraw.Src)
	for i, img := range images {
		cell := image.Rect(i*cellSize, 0, (i+1)*cellSize, cellSize)
		xdraw.ApproxBiLinear.Scale(strip, cell, img, img.Bounds(), xdraw.Src, nil)
	}
	return NewBrushAtlas(NewTextureFromImage(strip, false), len(images)), nil
}

// AtlasU maps a cell-local u coordinate into the strip:
// u' = u/N + cell/N for N equal-width cells.
func (a *BrushAtlas) AtlasU(cell int, u float32) float32 {
	n := float32(a.Cells)
	return u/n + float32(cell)/n
}

// SampleMask samples the mask value of one cell at cell-local (u, v).
// ok is false when the mapped coordinate leaves the strip; callers must
// discard those samples rather than let filtering bleed into a
// neighboring cell.
func (a *BrushAtlas) SampleMask(cell int, u, v float32) (mask float32, ok bool) {
	if cell < 0 || cell >= a.Cells {
		panic("brush variant out of range")
	}
	uu := a.AtlasU(cell, u)
	if uu > 1 {
		return 0, false
	}
	return a.Texture.Sample(uu, v).X, true
}
