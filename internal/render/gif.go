package render

import (
	"bufio"
	"compress/lzw"
	"errors"
	"fmt"
	"io"

	"cellmachine/internal/core"
)

var (
	ErrInvalidSize       = errors.New("grid dimensions must be positive")
	ErrInvalidScale      = errors.New("scale must be greater than zero")
	ErrInvalidDelay      = errors.New("frame delay must fit in 0-65535 centiseconds")
	ErrDimensionOverflow = errors.New("scaled dimensions overflow 16-bit image size")
	ErrSizeMismatch      = errors.New("frame dimensions do not match writer dimensions")
	ErrClosed            = errors.New("frame writer is closed")
)

const maxDimension = 0xFFFF

// ScaledSize validates cfg and returns the output image size in pixels.
func ScaledSize(cfg core.SinkConfig) (int, int, error) {
	if cfg.Size.W <= 0 || cfg.Size.H <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Size.W, cfg.Size.H)
	}
	if cfg.Scale <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidScale, cfg.Scale)
	}
	if cfg.Delay < 0 || cfg.Delay > maxDimension {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidDelay, cfg.Delay)
	}
	if cfg.Size.W > maxDimension/cfg.Scale {
		return 0, 0, fmt.Errorf("%w: width %d x scale %d", ErrDimensionOverflow, cfg.Size.W, cfg.Scale)
	}
	if cfg.Size.H > maxDimension/cfg.Scale {
		return 0, 0, fmt.Errorf("%w: height %d x scale %d", ErrDimensionOverflow, cfg.Size.H, cfg.Scale)
	}
	return cfg.Size.W * cfg.Scale, cfg.Size.H * cfg.Scale, nil
}

// GIFWriter streams generations into an animated GIF89a with a two-entry
// global palette that loops forever. Each frame is encoded as soon as it is
// written.
type GIFWriter struct {
	w      *bufio.Writer
	size   core.Size
	scale  int
	width  int
	height int
	delay  uint16
	pix    []uint8
	frames int
	closed bool
}

// NewGIFWriter writes the stream header, palette, and loop directive to w.
func NewGIFWriter(w io.Writer, cfg core.SinkConfig) (*GIFWriter, error) {
	pw, ph, err := ScaledSize(cfg)
	if err != nil {
		return nil, err
	}
	g := &GIFWriter{
		w:      bufio.NewWriter(w),
		size:   cfg.Size,
		scale:  cfg.Scale,
		width:  pw,
		height: ph,
		delay:  uint16(cfg.Delay),
		pix:    make([]uint8, pw*ph),
	}

	hdr := make([]byte, 0, 64)
	hdr = append(hdr, "GIF89a"...)
	hdr = appendUint16(hdr, uint16(pw))
	hdr = appendUint16(hdr, uint16(ph))
	// Global color table present, 2 entries; background index 0; no aspect ratio.
	hdr = append(hdr, 0x80, 0x00, 0x00)
	for _, c := range []struct{ R, G, B uint8 }{
		{cfg.Background.R, cfg.Background.G, cfg.Background.B},
		{cfg.Foreground.R, cfg.Foreground.G, cfg.Foreground.B},
	} {
		hdr = append(hdr, c.R, c.G, c.B)
	}
	// NETSCAPE2.0 application extension, loop count 0 (forever).
	hdr = append(hdr, 0x21, 0xff, 0x0b)
	hdr = append(hdr, "NETSCAPE2.0"...)
	hdr = append(hdr, 0x03, 0x01, 0x00, 0x00, 0x00)

	if _, err := g.w.Write(hdr); err != nil {
		return nil, fmt.Errorf("writing GIF header: %w", err)
	}
	return g, nil
}

// WriteFrame appends f as the next animation frame.
func (g *GIFWriter) WriteFrame(f core.Frame) error {
	if g.closed {
		return ErrClosed
	}
	if s := f.Size(); s != g.size {
		return fmt.Errorf("%w: grid %dx%d, writer %dx%d", ErrSizeMismatch, s.W, s.H, g.size.W, g.size.H)
	}
	rasterize(g.pix, f, g.scale)

	hdr := make([]byte, 0, 20)
	// Graphic control extension: no disposal, no transparency.
	hdr = append(hdr, 0x21, 0xf9, 0x04, 0x00)
	hdr = appendUint16(hdr, g.delay)
	hdr = append(hdr, 0x00, 0x00)
	// Image descriptor covering the whole screen, no local color table.
	hdr = append(hdr, 0x2c)
	hdr = appendUint16(hdr, 0)
	hdr = appendUint16(hdr, 0)
	hdr = appendUint16(hdr, uint16(g.width))
	hdr = appendUint16(hdr, uint16(g.height))
	hdr = append(hdr, 0x00)
	// LZW minimum code size; GIF requires at least 2.
	hdr = append(hdr, 0x02)
	if _, err := g.w.Write(hdr); err != nil {
		return fmt.Errorf("writing frame %d header: %w", g.frames+1, err)
	}

	bw := &blockWriter{w: g.w}
	lz := lzw.NewWriter(bw, lzw.LSB, 2)
	if _, err := lz.Write(g.pix); err != nil {
		return fmt.Errorf("compressing frame %d: %w", g.frames+1, err)
	}
	if err := lz.Close(); err != nil {
		return fmt.Errorf("compressing frame %d: %w", g.frames+1, err)
	}
	if err := bw.close(); err != nil {
		return fmt.Errorf("writing frame %d: %w", g.frames+1, err)
	}
	g.frames++
	return nil
}

// Frames reports how many frames have been written.
func (g *GIFWriter) Frames() int { return g.frames }

// Close writes the trailer and flushes buffered output.
func (g *GIFWriter) Close() error {
	if g.closed {
		return ErrClosed
	}
	g.closed = true
	if err := g.w.WriteByte(0x3b); err != nil {
		return fmt.Errorf("writing GIF trailer: %w", err)
	}
	if err := g.w.Flush(); err != nil {
		return fmt.Errorf("flushing GIF: %w", err)
	}
	return nil
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, uint8(v), uint8(v>>8))
}

// blockWriter splits a byte stream into GIF data sub-blocks of at most 255
// bytes, each prefixed by its length.
type blockWriter struct {
	w   io.Writer
	buf [256]byte
	n   int
}

func (b *blockWriter) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		k := copy(b.buf[1+b.n:], p)
		b.n += k
		p = p[k:]
		if b.n == 255 {
			if err := b.flush(); err != nil {
				return total - len(p), err
			}
		}
	}
	return total, nil
}

func (b *blockWriter) flush() error {
	if b.n == 0 {
		return nil
	}
	b.buf[0] = uint8(b.n)
	_, err := b.w.Write(b.buf[:b.n+1])
	b.n = 0
	return err
}

// close flushes the pending sub-block and writes the block terminator.
func (b *blockWriter) close() error {
	if err := b.flush(); err != nil {
		return err
	}
	_, err := b.w.Write([]byte{0x00})
	return err
}
