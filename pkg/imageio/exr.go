package imageio

import (
	"fmt"
	"image"
	"io"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ToEXRImage converts the framebuffer to linear half-float-ready RGBA.
// Values are averaged over the sample count only: no gamma, no clamp.
func ToEXRImage(fb *renderer.Framebuffer) *exr.RGBAImage {
	img := exr.NewRGBAImage(image.Rect(0, 0, fb.Width(), fb.Height()))
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			c := fb.Average(x, y)
			img.SetRGBA(x, y, float32(c.X), float32(c.Y), float32(c.Z), 1)
		}
	}
	return img
}

// EncodeEXR writes the framebuffer's linear radiance as a ZIP-compressed OpenEXR image
func EncodeEXR(w io.WriteSeeker, fb *renderer.Framebuffer) error {
	if err := exr.Encode(w, ToEXRImage(fb)); err != nil {
		return fmt.Errorf("exr: failed to encode: %w", err)
	}
	return nil
}
