//go:build ebiten

package ui

import (
	"image/color"

	"cellmachine/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Alpha-premultiplied, as WritePixels expects.
var (
	birthColor = color.RGBA{R: 25, G: 125, B: 56, A: 160}
	deathColor = color.RGBA{R: 138, G: 38, B: 38, A: 160}
)

// Overlay highlights the cells that changed in the most recent generation.
// Key 1 toggles it.
type Overlay struct {
	size core.Size
	show bool
	img  *ebiten.Image
	buf  []byte
}

// NewOverlay constructs an overlay for grids of the given size.
func NewOverlay(size core.Size) *Overlay {
	return &Overlay{
		size: size,
		img:  ebiten.NewImage(size.W, size.H),
		buf:  make([]byte, 4*size.W*size.H),
	}
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw tints births and deaths between prev and cur. Nothing is drawn when
// the overlay is hidden or prev is missing.
func (o *Overlay) Draw(screen *ebiten.Image, prev, cur core.Frame, scale int) {
	if !o.show || prev == nil || cur == nil {
		return
	}
	if prev.Size() != o.size || cur.Size() != o.size {
		return
	}
	clear(o.buf)
	for y := 0; y < o.size.H; y++ {
		for x := 0; x < o.size.W; x++ {
			was, is := prev.Alive(x, y), cur.Alive(x, y)
			if was == is {
				continue
			}
			col := deathColor
			if is {
				col = birthColor
			}
			base := (y*o.size.W + x) * 4
			o.buf[base+0] = col.R
			o.buf[base+1] = col.G
			o.buf[base+2] = col.B
			o.buf[base+3] = col.A
		}
	}
	o.img.WritePixels(o.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.img, op)
}
