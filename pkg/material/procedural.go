package material

import (
	"math/rand"

	"cogentcore.org/core/math32"
)

// ProceduralBrushes synthesizes a deterministic set of brush masks, used
// when no brush images are supplied so the renderer runs without an asset
// tree. Each cell is an elongated soft footprint with bristle striations;
// shape parameters vary per cell through the seeded generator.
func ProceduralBrushes(count, cellSize int, seed int64) *BrushAtlas {
	if count <= 0 || cellSize <= 0 {
		panic("brush count and cell size must be positive")
	}

	rng := rand.New(rand.NewSource(seed))
	width := count * cellSize
	pix := make([]math32.Vector4, width*cellSize)

	for cell := 0; cell < count; cell++ {
		rx := 0.80 + 0.15*rng.Float32()
		ry := 0.45 + 0.30*rng.Float32()
		tilt := (rng.Float32() - 0.5) * 0.6
		freq := 14 + rng.Float32()*18
		phase := rng.Float32() * 2 * math32.Pi
		sinT, cosT := math32.Sincos(tilt)

		for y := 0; y < cellSize; y++ {
			for x := 0; x < cellSize; x++ {
				u := (float32(x) + 0.5) / float32(cellSize)
				v := (float32(y) + 0.5) / float32(cellSize)
				dx := (u - 0.5) * 2
				dy := (v - 0.5) * 2
				ax := dx*cosT - dy*sinT
				ay := dx*sinT + dy*cosT

				radial := (ax/rx)*(ax/rx) + (ay/ry)*(ay/ry)
				footprint := math32.Exp(-2.3 * radial)
				bristle := 0.78 + 0.22*math32.Sin(ay*freq+phase)
				coverage := math32.Clamp(footprint*bristle*1.45, 0, 1)

				mask := 1 - coverage
				pix[y*width+cell*cellSize+x] = math32.Vec4(mask, mask, mask, 1)
			}
		}
	}
	return NewBrushAtlas(NewTexture(width, cellSize, pix, false), count)
}

// ProceduralPaper generates a paper-grain texture: two octaves of smoothed
// value noise around a bright base so that multiplying by the red channel
// darkens the composite only slightly.
func ProceduralPaper(width, height int, seed int64) *Texture {
	if width <= 0 || height <= 0 {
		panic("paper dimensions must be positive")
	}

	s := uint32(seed)
	pix := make([]math32.Vector4, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx := float32(x) / float32(width)
			fy := float32(y) / float32(height)
			n := 0.65*valueNoise(fx*24, fy*24, s) + 0.35*valueNoise(fx*96, fy*96, s+7)
			v := 0.88 + 0.12*n
			pix[y*width+x] = math32.Vec4(v, v, v, 1)
		}
	}
	return NewTexture(width, height, pix, false)
}

// NewCheckerTexture creates a procedural checkerboard, the stand-in albedo
// for built-in scenes and tests.
func NewCheckerTexture(width, height, checkSize int, color1, color2 math32.Vector3) *Texture {
	pix := make([]math32.Vector4, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color1
			if ((x/checkSize)+(y/checkSize))%2 != 0 {
				c = color2
			}
			pix[y*width+x] = math32.Vec4(c.X, c.Y, c.Z, 1)
		}
	}
	return NewTexture(width, height, pix, true)
}

// NewStripeTexture creates vertical stripes, used by the sphere demo scene
// where longitude bands read well on curved geometry.
func NewStripeTexture(width, height, stripeWidth int, color1, color2 math32.Vector3) *Texture {
	pix := make([]math32.Vector4, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color1
			if (x/stripeWidth)%2 != 0 {
				c = color2
			}
			pix[y*width+x] = math32.Vec4(c.X, c.Y, c.Z, 1)
		}
	}
	return NewTexture(width, height, pix, true)
}

// valueNoise is bilinear-smoothed lattice noise in [0,1].
func valueNoise(x, y float32, seed uint32) float32 {
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	tx := x - x0
	ty := y - y0
	tx = tx * tx * (3 - 2*tx)
	ty = ty * ty * (3 - 2*ty)

	ix := uint32(int32(x0))
	iy := uint32(int32(y0))
	n00 := hash2(ix, iy, seed)
	n10 := hash2(ix+1, iy, seed)
	n01 := hash2(ix, iy+1, seed)
	n11 := hash2(ix+1, iy+1, seed)

	top := n00 + (n10-n00)*tx
	bottom := n01 + (n11-n01)*tx
	return top + (bottom-top)*ty
}

// hash2 is a small integer hash mapped to [0,1], stable across platforms.
func hash2(x, y, seed uint32) float32 {
	h := x*374761393 + y*668265263 + seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float32(h&0xffffff) / float32(0xffffff)
}
