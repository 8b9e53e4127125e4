package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds the per-pixel color sums of one render.
// Rows are stored in camera space: row 0 is the bottom of the image.
// Each row is written once by the worker that owns it.
type Framebuffer struct {
	width, height   int
	samplesPerPixel int
	rows            [][]core.Vec3
	mu              sync.Mutex
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height, samplesPerPixel int) *Framebuffer {
	rows := make([][]core.Vec3, height)
	for j := range rows {
		rows[j] = make([]core.Vec3, width)
	}
	return &Framebuffer{
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
		rows:            rows,
	}
}

// Width returns the image width in pixels
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the image height in pixels
func (fb *Framebuffer) Height() int { return fb.height }

// SamplesPerPixel returns the number of samples summed into every pixel
func (fb *Framebuffer) SamplesPerPixel() int { return fb.samplesPerPixel }

// SetRow copies the color sums of scanline j (camera space) into the framebuffer
func (fb *Framebuffer) SetRow(j int, row []core.Vec3) error {
	return fb.commitRow(j, row, nil)
}

// commitRow stores a row and runs onCommit while still holding the lock
func (fb *Framebuffer) commitRow(j int, row []core.Vec3, onCommit func()) error {
	if j < 0 || j >= fb.height {
		return fmt.Errorf("row %d out of range [0, %d)", j, fb.height)
	}
	if len(row) != fb.width {
		return fmt.Errorf("row %d has %d pixels, expected %d", j, len(row), fb.width)
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	copy(fb.rows[j], row)
	if onCommit != nil {
		onCommit()
	}
	return nil
}

// Sum returns the accumulated color at image coordinates (x, y) with y=0 at the top
func (fb *Framebuffer) Sum(x, y int) core.Vec3 {
	return fb.rows[fb.height-1-y][x]
}

// Average returns the linear mean radiance at image coordinates (x, y) with y=0 at the top
func (fb *Framebuffer) Average(x, y int) core.Vec3 {
	return fb.Sum(x, y).Divide(float64(fb.samplesPerPixel))
}

// ToRGBA quantizes the framebuffer into an 8-bit image with row 0 at the top
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			r, g, b := QuantizeColor(fb.Sum(x, y), fb.samplesPerPixel)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// AverageLuminance returns the mean linear luminance over all pixels
func (fb *Framebuffer) AverageLuminance() float64 {
	if fb.width == 0 || fb.height == 0 {
		return 0
	}
	total := 0.0
	for _, row := range fb.rows {
		for _, sum := range row {
			total += sum.Luminance()
		}
	}
	return total / float64(fb.width*fb.height*fb.samplesPerPixel)
}

// QuantizeColor converts a color sum over samplesPerPixel samples into 8-bit channels:
// average, gamma 2 (square root), clamp to [0, 0.999], scale by 256, truncate.
// NaN channels map to 0.
func QuantizeColor(sum core.Vec3, samplesPerPixel int) (r, g, b uint8) {
	c := sum.Multiply(1.0 / float64(samplesPerPixel)).Sqrt().Clamp(0.0, 0.999)
	return quantizeChannel(c.X), quantizeChannel(c.Y), quantizeChannel(c.Z)
}

func quantizeChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(256 * v)
}
