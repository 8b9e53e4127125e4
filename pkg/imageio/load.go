package imageio

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/mrjoshuak/go-openexr/exr"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/df07/go-pathtracer/pkg/core"
)

var gzipMagic = []byte{0x1f, 0x8b}

// LoadImage loads a PPM (plain or gzip), PNG, JPEG, BMP, TIFF or EXR image and converts it to a Vec3 color array.
// Files named .ppm or .ppm.gz go through DecodePPM so a wrong magic number reports ErrBadMagic.
// EXR pixels keep their linear, unclamped values.
func LoadImage(filename string) (*ImageData, error) {
	name := strings.ToLower(filename)
	if strings.HasSuffix(name, ".exr") {
		return loadEXR(filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	r, closeFn, err := maybeGunzip(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer closeFn()

	if strings.HasSuffix(name, ".ppm") || strings.HasSuffix(name, ".ppm.gz") {
		data, err := DecodePPM(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		return data, nil
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

func loadEXR(filename string) (*ImageData, error) {
	img, err := exr.DecodeFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	bounds := img.Bounds()
	data := &ImageData{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: make([]core.Vec3, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < data.Height; y++ {
		for x := 0; x < data.Width; x++ {
			r, g, b, _ := img.RGBA(x+bounds.Min.X, y+bounds.Min.Y)
			data.Pixels[y*data.Width+x] = core.NewVec3(float64(r), float64(g), float64(b))
		}
	}
	return data, nil
}

// maybeGunzip wraps r in a gzip reader when the stream starts with the gzip magic bytes
func maybeGunzip(r *bufio.Reader) (io.Reader, func() error, error) {
	head, err := r.Peek(len(gzipMagic))
	if err != nil || !bytes.Equal(head, gzipMagic) {
		// Short or unreadable streams are left for the decoder to report
		return r, func() error { return nil }, nil
	}
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("gzip: %w", err)
	}
	return zr, zr.Close, nil
}

// FromImage converts any image to normalized Vec3 colors, row 0 at the top
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
