package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Raytracer renders a scene by splitting the image rows across a fixed set of workers
type Raytracer struct {
	world       core.Shape
	camera      *Camera
	integrator  integrator.Integrator
	config      SamplingConfig
	logger      core.Logger
	rowCallback func(done, total int)
}

// NewRaytracer creates a new raytracer using the path tracing integrator.
// world and camera are shared read-only by every worker and must not change during Render.
func NewRaytracer(world core.Shape, camera *Camera, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewQuietLogger()
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// MergeSamplingConfig overlays the non-zero fields of updates onto the current configuration
func (rt *Raytracer) MergeSamplingConfig(updates SamplingConfig) {
	rt.config = rt.config.Merge(updates)
}

// GetSamplingConfig returns the current sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// SetRowCallback registers fn to be called after each committed row.
// Calls are serialized and done increases by one on every call.
func (rt *Raytracer) SetRowCallback(fn func(done, total int)) {
	rt.rowCallback = fn
}

// Render traces every pixel and returns the accumulated framebuffer.
// Any worker failure, including a panic, fails the whole render and no framebuffer is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}

	width, height := rt.config.Width, rt.config.Height
	fb := NewFramebuffer(width, height, rt.config.SamplesPerPixel)
	bands := PartitionRows(height, rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d\n",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth)
	rt.logger.Printf("Using %d workers, %d rows each\n", len(bands), bands[0].Rows())

	startTime := time.Now()
	rowsDone := 0 // guarded by the framebuffer lock
	onCommit := func() {
		rowsDone++
		if rt.rowCallback != nil {
			rt.rowCallback(rowsDone, height)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, band := range bands {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d (rows %d-%d) panicked: %v", band.WorkerID, band.Start, band.End-1, r)
				}
			}()
			return rt.renderBand(gctx, band, fb, onCommit)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}

	stats := RenderStats{
		TotalPixels:  width * height,
		TotalSamples: width * height * rt.config.SamplesPerPixel,
		Rows:         rowsDone,
		Workers:      len(bands),
		Duration:     time.Since(startTime),
	}
	rt.logger.Printf("Render completed in %v (%.0f samples/sec)\n", stats.Duration, stats.SamplesPerSecond())

	return fb, stats, nil
}

// renderBand samples every pixel of the band's rows, bottom to top, committing one row at a time
func (rt *Raytracer) renderBand(ctx context.Context, band RowBand, fb *Framebuffer, onCommit func()) error {
	random := rand.New(rand.NewSource(rt.config.Seed + int64(band.WorkerID)))
	start := time.Now()

	width, height := rt.config.Width, rt.config.Height
	uScale := jitterDenominator(width)
	vScale := jitterDenominator(height)

	row := make([]core.Vec3, width)
	for j := band.Start; j < band.End; j++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for i := 0; i < width; i++ {
			colorAccum := core.Vec3{}
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				s := (float64(i) + random.Float64()) / uScale
				t := (float64(j) + random.Float64()) / vScale

				ray := rt.camera.GetRay(s, t, random)
				colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, rt.config.MaxDepth, random))
			}
			row[i] = colorAccum
		}

		if err := fb.commitRow(j, row, onCommit); err != nil {
			return fmt.Errorf("worker %d: %w", band.WorkerID, err)
		}
	}

	rt.logger.Printf("Worker %d finished rows %d-%d in %v\n", band.WorkerID, band.Start, band.End-1, time.Since(start))
	return nil
}

// jitterDenominator maps pixel index plus jitter onto [0, 1] across the image.
// A single-pixel dimension has no span, so it uses 1.
func jitterDenominator(size int) float64 {
	if size <= 1 {
		return 1
	}
	return float64(size - 1)
}
