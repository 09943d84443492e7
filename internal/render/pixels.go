package render

import (
	"image/color"

	"cellmachine/internal/core"
)

// rasterize expands every live cell of f into a scale x scale block of palette
// index 1 inside dst, which must hold (W*scale)*(H*scale) entries. All other
// entries are reset to 0.
func rasterize(dst []uint8, f core.Frame, scale int) {
	size := f.Size()
	stride := size.W * scale
	clear(dst)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if !f.Alive(x, y) {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				row := (y*scale+sy)*stride + x*scale
				for sx := 0; sx < scale; sx++ {
					dst[row+sx] = 1
				}
			}
		}
	}
}

// fillBinaryRGBA converts cell data into scaled RGBA pixels in buf, which must
// hold 4*(W*scale)*(H*scale) bytes.
func fillBinaryRGBA(buf []byte, f core.Frame, scale int, on, off color.RGBA) {
	size := f.Size()
	stride := size.W * scale
	for py := 0; py < size.H*scale; py++ {
		y := py / scale
		for px := 0; px < stride; px++ {
			col := off
			if f.Alive(px/scale, y) {
				col = on
			}
			base := (py*stride + px) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
