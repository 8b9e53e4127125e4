package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format identifies an output encoding
type Format string

const (
	FormatPPM   Format = "ppm"
	FormatPPMGz Format = "ppm.gz"
	FormatPNG   Format = "png"
	FormatBMP   Format = "bmp"
	FormatTIFF  Format = "tiff"
	FormatEXR   Format = "exr"
)

// FormatFromPath picks the output format from a file name's extension
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".ppm.gz"):
		return FormatPPMGz, nil
	case strings.HasSuffix(name, ".ppm"):
		return FormatPPM, nil
	case strings.HasSuffix(name, ".png"):
		return FormatPNG, nil
	case strings.HasSuffix(name, ".bmp"):
		return FormatBMP, nil
	case strings.HasSuffix(name, ".tif"), strings.HasSuffix(name, ".tiff"):
		return FormatTIFF, nil
	case strings.HasSuffix(name, ".exr"):
		return FormatEXR, nil
	}
	return "", fmt.Errorf("%s: %w", filepath.Ext(path), ErrUnsupportedFormat)
}

// Encode writes the quantized framebuffer in an 8-bit format. EXR needs a seekable
// writer and goes through EncodeEXR instead.
func Encode(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	if format == FormatEXR {
		ws, ok := w.(io.WriteSeeker)
		if !ok {
			return fmt.Errorf("exr: writer is not seekable")
		}
		return EncodeEXR(ws, fb)
	}
	return encodeImage(w, fb.ToRGBA(), format)
}

func encodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, img)
	case FormatPPMGz:
		zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		if err := EncodePPM(zw, img); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("gzip: failed to finish stream: %w", err)
		}
		return nil
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
}

// WriteFile saves the framebuffer to path, choosing the encoding from the extension
func WriteFile(path string, fb *renderer.Framebuffer) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err := Encode(file, fb, format); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
