package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when the image width or height is not positive
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	// ErrInvalidSamples is returned when samples per pixel is not positive
	ErrInvalidSamples = errors.New("samples per pixel must be positive")
	// ErrInvalidWorkers is returned when the worker count is not positive
	ErrInvalidWorkers = errors.New("worker count must be positive")
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of row-band workers
	Seed            int64 // Base seed, worker i uses Seed+i
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          267, // 3:2
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      6,
		Seed:            42,
	}
}

// Merge returns a copy of c with every non-zero field of override applied on top
func (c SamplingConfig) Merge(override SamplingConfig) SamplingConfig {
	if override.Width != 0 {
		c.Width = override.Width
	}
	if override.Height != 0 {
		c.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		c.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		c.MaxDepth = override.MaxDepth
	}
	if override.NumWorkers != 0 {
		c.NumWorkers = override.NumWorkers
	}
	if override.Seed != 0 {
		c.Seed = override.Seed
	}
	return c
}

// Validate checks that the configuration can drive a render.
// A non-positive MaxDepth is allowed and renders black.
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrInvalidDimensions)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%d samples: %w", c.SamplesPerPixel, ErrInvalidSamples)
	}
	if c.NumWorkers <= 0 {
		return fmt.Errorf("%d workers: %w", c.NumWorkers, ErrInvalidWorkers)
	}
	return nil
}
