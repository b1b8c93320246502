package painter

import (
	"image"

	"cogentcore.org/core/math32"
)

// Framebuffer is a linear float32 RGBA target. The canvas uses the alpha
// channel as accumulated stroke coverage, not transparency.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []math32.Vector4 // row-major, Pix[y*Width+x]
}

// NewFramebuffer allocates a zeroed target. Panics on non-positive
// dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	if width <= 0 || height <= 0 {
		panic("framebuffer dimensions must be positive")
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]math32.Vector4, width*height),
	}
}

// Clear fills every pixel with the given color.
func (f *Framebuffer) Clear(c math32.Vector4) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// At returns the pixel at (x, y). Panics out of range, same as a slice.
func (f *Framebuffer) At(x, y int) math32.Vector4 {
	return f.Pix[y*f.Width+x]
}

// Set overwrites the pixel at (x, y).
func (f *Framebuffer) Set(x, y int, c math32.Vector4) {
	f.Pix[y*f.Width+x] = c
}

// BlendOver composites src over the pixel at (x, y) with coverage alpha:
// rgb' = src*a + rgb*(1-a), A' = a + A*(1-a). Pixels outside the target
// are ignored so callers can rasterize clipped geometry without bounds
// bookkeeping.
func (f *Framebuffer) BlendOver(x, y int, src math32.Vector3, a float32) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	i := y*f.Width + x
	dst := f.Pix[i]
	inv := 1 - a
	f.Pix[i] = math32.Vec4(
		src.X*a+dst.X*inv,
		src.Y*a+dst.Y*inv,
		src.Z*a+dst.Z*inv,
		a+dst.W*inv,
	)
}

// ToRGBA converts the float buffer to an 8-bit image with a plain
// clamp-scale per channel and alpha forced opaque.
func (f *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.Pix[y*f.Width+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = channelToByte(c.X)
			img.Pix[i+1] = channelToByte(c.Y)
			img.Pix[i+2] = channelToByte(c.Z)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func channelToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
