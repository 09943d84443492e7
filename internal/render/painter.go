//go:build ebiten

package render

import (
	"image/color"

	"cellmachine/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads generations into a single-cell-per-pixel image and draws
// it scaled onto the screen.
type GridPainter struct {
	size core.Size
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of the given size.
func NewGridPainter(size core.Size) *GridPainter {
	return &GridPainter{
		size: size,
		img:  ebiten.NewImage(size.W, size.H),
		buf:  make([]byte, 4*size.W*size.H),
	}
}

// Blit uploads f into the painter image and draws it at the given scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, f core.Frame, on, off color.RGBA, scale int) {
	if f.Size() != gp.size {
		return
	}
	fillBinaryRGBA(gp.buf, f, 1, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the grid dimensions the painter was built for.
func (gp *GridPainter) Size() core.Size { return gp.size }
