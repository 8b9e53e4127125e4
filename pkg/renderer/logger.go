package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// QuietLogger implements core.Logger by discarding everything
type QuietLogger struct{}

func (ql *QuietLogger) Printf(format string, args ...interface{}) {}

// NewQuietLogger creates a logger that produces no output
func NewQuietLogger() core.Logger {
	return &QuietLogger{}
}

// WriterLogger implements core.Logger by writing to an io.Writer
type WriterLogger struct {
	w io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}
