package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ppmMagic is the only PPM variant supported: plain ASCII triplets
const ppmMagic = "P3"

// maxPPMPixels bounds the pixel count accepted from a header before any allocation
const maxPPMPixels = 1 << 26

// ErrBadMagic is returned when a PPM stream does not start with P3
var ErrBadMagic = errors.New("ppm: only P3 supported")

// ErrImageTooLarge is returned when a header declares more than maxPPMPixels pixels
var ErrImageTooLarge = errors.New("ppm: image too large")

func init() {
	image.RegisterFormat("ppm", ppmMagic, decodePPMImage, decodePPMConfig)
}

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top, channels in [0, 1]
}

// At returns the color at (x, y) with y=0 at the top
func (d *ImageData) At(x, y int) core.Vec3 {
	return d.Pixels[y*d.Width+x]
}

// EncodePPM writes img as a P3 PPM, one "r g b" triplet per line, rows top to bottom
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", ppmMagic, bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("ppm: failed to write header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("ppm: failed to write pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ppm: failed to flush: %w", err)
	}
	return nil
}

// ppmHeader is the parsed header of a P3 stream
type ppmHeader struct {
	width, height, maxColor int
}

// ppmReader yields whitespace separated tokens, skipping lines that start with '#'
type ppmReader struct {
	scanner *bufio.Scanner
	fields  []string
	line    int
}

func newPPMReader(r io.Reader) *ppmReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ppmReader{scanner: scanner}
}

// next returns the next token, or io.EOF when the stream is exhausted
func (pr *ppmReader) next() (string, error) {
	for len(pr.fields) == 0 {
		if !pr.scanner.Scan() {
			if err := pr.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		pr.line++
		line := strings.TrimSpace(pr.scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		pr.fields = strings.Fields(line)
	}
	token := pr.fields[0]
	pr.fields = pr.fields[1:]
	return token, nil
}

// nextInt parses the next token as a non-negative integer
func (pr *ppmReader) nextInt(what string) (int, error) {
	token, err := pr.next()
	if err == io.EOF {
		return 0, fmt.Errorf("ppm: no %s found", what)
	}
	if err != nil {
		return 0, fmt.Errorf("ppm: failed to read %s: %w", what, err)
	}
	value, err := strconv.Atoi(token)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("ppm: line %d: %s %q not a number", pr.line, what, token)
	}
	return value, nil
}

func (pr *ppmReader) readHeader() (ppmHeader, error) {
	magic, err := pr.next()
	if err == io.EOF {
		return ppmHeader{}, fmt.Errorf("ppm: empty stream: %w", ErrBadMagic)
	}
	if err != nil {
		return ppmHeader{}, fmt.Errorf("ppm: failed to read magic number: %w", err)
	}
	if magic != ppmMagic {
		return ppmHeader{}, fmt.Errorf("ppm: magic number %q: %w", magic, ErrBadMagic)
	}

	var h ppmHeader
	if h.width, err = pr.nextInt("width"); err != nil {
		return ppmHeader{}, err
	}
	if h.height, err = pr.nextInt("height"); err != nil {
		return ppmHeader{}, err
	}
	if h.width != 0 && (h.height > math.MaxInt/h.width || h.width*h.height > maxPPMPixels) {
		return ppmHeader{}, fmt.Errorf("ppm: %dx%d: %w", h.width, h.height, ErrImageTooLarge)
	}
	if h.maxColor, err = pr.nextInt("max color"); err != nil {
		return ppmHeader{}, err
	}
	if h.maxColor == 0 || h.maxColor > 65535 {
		return ppmHeader{}, fmt.Errorf("ppm: max color %d out of range [1, 65535]", h.maxColor)
	}
	return h, nil
}

// readPixels calls set for every pixel in stream order with channels in [0, maxColor]
func (pr *ppmReader) readPixels(h ppmHeader, set func(x, y int, r, g, b int)) error {
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			var rgb [3]int
			for c := range rgb {
				value, err := pr.nextInt("color value")
				if err != nil {
					return fmt.Errorf("pixel (%d,%d) of %dx%d: %w", x, y, h.width, h.height, err)
				}
				if value > h.maxColor {
					return fmt.Errorf("ppm: line %d: color value %d exceeds max %d", pr.line, value, h.maxColor)
				}
				rgb[c] = value
			}
			set(x, y, rgb[0], rgb[1], rgb[2])
		}
	}

	if token, err := pr.next(); err == nil {
		return fmt.Errorf("ppm: line %d: unexpected trailing data %q", pr.line, token)
	} else if err != io.EOF {
		return fmt.Errorf("ppm: failed to read: %w", err)
	}
	return nil
}

// DecodePPM parses a P3 stream into normalized colors.
// Lines starting with '#' are comments. Any magic number other than P3 yields ErrBadMagic.
func DecodePPM(r io.Reader) (*ImageData, error) {
	pr := newPPMReader(r)
	h, err := pr.readHeader()
	if err != nil {
		return nil, err
	}

	data := &ImageData{
		Width:  h.width,
		Height: h.height,
		Pixels: make([]core.Vec3, h.width*h.height),
	}
	scale := 1.0 / float64(h.maxColor)
	err = pr.readPixels(h, func(x, y int, r, g, b int) {
		data.Pixels[y*h.width+x] = core.NewVec3(float64(r)*scale, float64(g)*scale, float64(b)*scale)
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// decodePPMImage adapts the P3 decoder to image.Decode
func decodePPMImage(r io.Reader) (image.Image, error) {
	pr := newPPMReader(r)
	h, err := pr.readHeader()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA64(image.Rect(0, 0, h.width, h.height))
	scale := func(v int) uint16 { return uint16(v * 0xffff / h.maxColor) }
	err = pr.readPixels(h, func(x, y int, r, g, b int) {
		img.SetRGBA64(x, y, color.RGBA64{R: scale(r), G: scale(g), B: scale(b), A: 0xffff})
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodePPMConfig(r io.Reader) (image.Config, error) {
	h, err := newPPMReader(r).readHeader()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBA64Model, Width: h.width, Height: h.height}, nil
}
