package core

import (
	"image/color"
	"io"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Frame is a read-only view of a single generation.
type Frame interface {
	Size() Size
	Alive(x, y int) bool
}

// Evaluator decides the next state of a single cell.
type Evaluator interface {
	ShouldLive(alive bool, neighbors int) bool
}

// FrameSink consumes generations in order and encodes them into a stream.
// Close finalizes the stream; no frames may be written afterwards.
type FrameSink interface {
	WriteFrame(f Frame) error
	Close() error
}

// SinkConfig holds the parameters shared by every frame sink.
type SinkConfig struct {
	Size  Size
	Scale int
	// Delay is the per-frame delay in hundredths of a second.
	Delay      int
	Background color.RGBA
	Foreground color.RGBA
}

// SinkFactory opens a FrameSink writing to w.
type SinkFactory func(w io.Writer, cfg SinkConfig) (FrameSink, error)

// Format describes an output container that frames can be encoded into.
type Format struct {
	Name      string
	Extension string
	MediaType string
	New       SinkFactory
}

var formats = map[string]Format{}

// Register adds an output format under the provided name.
func Register(name string, f Format) {
	if name == "" || f.New == nil {
		return
	}
	if f.Name == "" {
		f.Name = name
	}
	formats[name] = f
}

// Formats exposes the registry of available output formats.
func Formats() map[string]Format {
	return formats
}
