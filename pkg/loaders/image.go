package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-painterly-renderer/pkg/material"
)

// LoadTexture loads a PNG or JPEG image into a linear float texture.
// flipV selects mesh-style UV addressing (v=0 at the image bottom), which
// albedo textures referenced by OBJ/PLY coordinates need; screen-addressed
// textures like paper grain pass false.
func LoadTexture(filename string, flipV bool) (*material.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode auto-detects PNG/JPEG from the file header.
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	return material.NewTextureFromImage(img, flipV), nil
}
