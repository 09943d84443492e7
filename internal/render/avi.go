package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"

	"cellmachine/internal/core"

	"github.com/icza/mjpeg"
)

// AVIWriter encodes generations as an MJPEG AVI clip. The container is built
// in a temporary file and copied to the destination on Close.
type AVIWriter struct {
	dst   io.Writer
	path  string
	aw    mjpeg.AviWriter
	size  core.Size
	scale int
	on    color.RGBA
	off   color.RGBA
	img   *image.RGBA
	buf   bytes.Buffer

	frames int
	closed bool
}

// aviFPS converts a frame delay in centiseconds into a whole frame rate.
func aviFPS(delayCS int) int32 {
	if delayCS <= 0 {
		return 100
	}
	fps := 100 / delayCS
	if fps < 1 {
		fps = 1
	}
	return int32(fps)
}

// NewAVIWriter opens an MJPEG AVI sink writing to w.
func NewAVIWriter(w io.Writer, cfg core.SinkConfig) (*AVIWriter, error) {
	pw, ph, err := ScaledSize(cfg)
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp("", "cellmachine-*.avi")
	if err != nil {
		return nil, fmt.Errorf("creating AVI scratch file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	aw, err := mjpeg.New(path, int32(pw), int32(ph), aviFPS(cfg.Delay))
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("opening AVI writer: %w", err)
	}
	return &AVIWriter{
		dst:   w,
		path:  path,
		aw:    aw,
		size:  cfg.Size,
		scale: cfg.Scale,
		on:    cfg.Foreground,
		off:   cfg.Background,
		img:   image.NewRGBA(image.Rect(0, 0, pw, ph)),
	}, nil
}

// WriteFrame appends f as the next JPEG frame.
func (a *AVIWriter) WriteFrame(f core.Frame) error {
	if a.closed {
		return ErrClosed
	}
	if s := f.Size(); s != a.size {
		return fmt.Errorf("%w: grid %dx%d, writer %dx%d", ErrSizeMismatch, s.W, s.H, a.size.W, a.size.H)
	}
	fillBinaryRGBA(a.img.Pix, f, a.scale, a.on, a.off)
	a.buf.Reset()
	if err := jpeg.Encode(&a.buf, a.img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encoding frame %d: %w", a.frames+1, err)
	}
	if err := a.aw.AddFrame(a.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame %d: %w", a.frames+1, err)
	}
	a.frames++
	return nil
}

// Frames reports how many frames have been written.
func (a *AVIWriter) Frames() int { return a.frames }

// Close finalizes the AVI index and copies the clip to the destination.
func (a *AVIWriter) Close() error {
	if a.closed {
		return ErrClosed
	}
	a.closed = true
	defer os.Remove(a.path)
	if err := a.aw.Close(); err != nil {
		return fmt.Errorf("finalizing AVI: %w", err)
	}
	f, err := os.Open(a.path)
	if err != nil {
		return fmt.Errorf("reading AVI scratch file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(a.dst, f); err != nil {
		return fmt.Errorf("copying AVI: %w", err)
	}
	return nil
}
