package painter

import (
	"image"

	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/material"
)

// PostProcess turns the composited canvas into the displayable image:
// optional paper-grain modulation, then desaturation toward luminance,
// then an opaque 8-bit conversion. The canvas itself is left untouched.
//
// paper modulation multiplies RGB by the paper texture's red channel at
// the same normalized coordinate; saturation interpolates each pixel
// between its luminance (0) and the modulated color (1).
func PostProcess(canvas *Framebuffer, paper *material.Texture, enablePaper bool, saturation float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	usePaper := enablePaper && paper != nil

	for y := 0; y < canvas.Height; y++ {
		v := (float32(y) + 0.5) / float32(canvas.Height)
		for x := 0; x < canvas.Width; x++ {
			c := canvas.Pix[y*canvas.Width+x]
			rgb := math32.Vec3(c.X, c.Y, c.Z)

			if usePaper {
				u := (float32(x) + 0.5) / float32(canvas.Width)
				rgb = rgb.MulScalar(paper.Sample(u, v).X)
			}

			lum := Luminance(rgb)
			gray := math32.Vec3(lum, lum, lum)
			rgb = gray.Lerp(rgb, saturation)

			i := img.PixOffset(x, y)
			img.Pix[i+0] = channelToByte(rgb.X)
			img.Pix[i+1] = channelToByte(rgb.Y)
			img.Pix[i+2] = channelToByte(rgb.Z)
			img.Pix[i+3] = 255
		}
	}
	return img
}
