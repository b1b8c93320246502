package material

import (
	"image"

	"cogentcore.org/core/math32"
)

// Texture is an RGBA image stored as linear float32 values in [0,1],
// sampled bilinearly with clamp-to-edge addressing.
//
// flipV selects mesh-style UV addressing where v=0 is the bottom of the
// image (albedo textures referenced by OBJ/PLY UVs). Screen-addressed
// textures such as brush atlases and paper grain keep v=0 at the top row.
type Texture struct {
	Width  int
	Height int
	Pix    []math32.Vector4 // row-major, Pix[y*Width+x]
	flipV  bool
}

// NewTexture wraps raw float pixels. Panics if the pixel count does not
// match the dimensions.
func NewTexture(width, height int, pix []math32.Vector4, flipV bool) *Texture {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		panic("texture pixel count must match dimensions")
	}
	return &Texture{Width: width, Height: height, Pix: pix, flipV: flipV}
}

// NewTextureFromImage converts a decoded image to a linear float texture.
func NewTextureFromImage(img image.Image, flipV bool) *Texture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]math32.Vector4, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pix[y*width+x] = math32.Vec4(
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
				float32(a)/65535.0,
			)
		}
	}
	return NewTexture(width, height, pix, flipV)
}

// At returns the texel at integer coordinates, clamped to the image.
func (t *Texture) At(x, y int) math32.Vector4 {
	if x < 0 {
		x = 0
	} else if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pix[y*t.Width+x]
}

// Sample returns the bilinear sample at (u, v), clamped to the edges.
func (t *Texture) Sample(u, v float32) math32.Vector4 {
	if t.flipV {
		v = 1 - v
	}

	// Texel centers sit at half-pixel offsets.
	fx := u*float32(t.Width) - 0.5
	fy := v*float32(t.Height) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	dx := fx - float32(x0)
	dy := fy - float32(y0)

	c00 := t.At(x0, y0)
	c10 := t.At(x0+1, y0)
	c01 := t.At(x0, y0+1)
	c11 := t.At(x0+1, y0+1)

	top := c00.MulScalar(1 - dx).Add(c10.MulScalar(dx))
	bottom := c01.MulScalar(1 - dx).Add(c11.MulScalar(dx))
	return top.MulScalar(1 - dy).Add(bottom.MulScalar(dy))
}

// SampleRGB returns the bilinear sample at (u, v) without the alpha
// channel.
func (t *Texture) SampleRGB(u, v float32) math32.Vector3 {
	c := t.Sample(u, v)
	return math32.Vec3(c.X, c.Y, c.Z)
}
