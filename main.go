package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line. Zero numeric values keep the scene's defaults.
type options struct {
	sceneName string
	width     int
	samples   int
	depth     int
	workers   int
	seed      int64
	output    string
	list      bool
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneName, "scene", "final", "Scene to render (see -list)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels, height follows the camera aspect ratio (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounces per path (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of row-band workers (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", 0, "Base random seed (0 = scene default)")
	fs.StringVar(&opts.output, "output", "", "Output file: .ppm, .ppm.gz, .png, .bmp, .tif, .tiff or .exr (default output/<scene>/render_<timestamp>.ppm)")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	return opts, fs, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.help {
		fmt.Fprintln(stdout, "Path Tracer")
		fmt.Fprintln(stdout, "Usage: pathtracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		printScenes(stdout)
		return nil
	}

	if opts.list {
		printScenes(stdout)
		return nil
	}

	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputDir, err := createOutputDir(selectedScene.Name)
		if err != nil {
			return err
		}
		outputPath = defaultOutputPath(outputDir, time.Now())
	}
	if _, err := imageio.FormatFromPath(outputPath); err != nil {
		return fmt.Errorf("output %s: %w", outputPath, err)
	}

	config := applyOverrides(selectedScene, opts)
	logger := renderer.NewWriterLogger(stdout)
	logger.Printf("Using %s scene (%d primitives)...\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	raytracer := renderer.NewRaytracer(selectedScene.World, selectedScene.Camera, config, logger)
	raytracer.SetRowCallback(func(done, total int) {
		fmt.Fprintf(stderr, "\rScanlines remaining: %d ", total-done)
		if done == total {
			fmt.Fprintln(stderr)
		}
	})

	fb, stats, err := raytracer.Render(context.Background())
	if err != nil {
		return err
	}
	logger.Printf("Rendered %d pixels with %d samples, average luminance %.4f\n",
		stats.TotalPixels, stats.TotalSamples, fb.AverageLuminance())

	if err := imageio.WriteFile(outputPath, fb); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.Name, info.Description)
	}
}

// createScene builds the named built-in scene
func createScene(sceneName string) (*scene.Scene, error) {
	if strings.TrimSpace(sceneName) == "" {
		return nil, errors.New("no scene given")
	}
	return scene.Lookup(sceneName)
}

// applyOverrides merges the command line onto the scene's sampling configuration
func applyOverrides(s *scene.Scene, opts options) renderer.SamplingConfig {
	if opts.width != 0 {
		s.SetWidth(opts.width)
	}
	return s.SamplingConfig.Merge(renderer.SamplingConfig{
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
		NumWorkers:      opts.workers,
		Seed:            opts.seed,
	})
}

// createOutputDir creates output/<scene> and returns its path
func createOutputDir(sceneName string) (string, error) {
	outputDir := filepath.Join("output", sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	return outputDir, nil
}

// defaultOutputPath returns a timestamped PPM file name inside dir
func defaultOutputPath(dir string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("render_%s.ppm", timestamp))
}
