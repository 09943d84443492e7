package seed

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMaskFormat is returned for mask strings that are not nine binary digits.
var ErrMaskFormat = errors.New("invalid init mask")

// Mask is a 3x3 row-major stamp.
type Mask [9]bool

// ParseMask parses nine '0'/'1' characters; whitespace is ignored so masks can
// be written as "010 010 010".
func ParseMask(raw string) (Mask, error) {
	var m Mask
	n := 0
	for _, ch := range raw {
		switch ch {
		case ' ', '\t', '\n', '\r':
			continue
		case '0', '1':
			if n < len(m) {
				m[n] = ch == '1'
			}
			n++
		default:
			return Mask{}, fmt.Errorf("%w: must contain only '0' or '1' characters, got %q", ErrMaskFormat, ch)
		}
	}
	if n != len(m) {
		return Mask{}, fmt.Errorf("%w: must contain exactly 9 entries (3x3 matrix), got %d", ErrMaskFormat, n)
	}
	return m, nil
}

// String renders the mask back into its nine-character label.
func (m Mask) String() string {
	var b strings.Builder
	for _, on := range m {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Active returns the number of set entries.
func (m Mask) Active() int {
	n := 0
	for _, on := range m {
		if on {
			n++
		}
	}
	return n
}

// Offsets lists the (dx, dy) positions of the set entries.
func (m Mask) Offsets() []Cell {
	var out []Cell
	for i, on := range m {
		if on {
			out = append(out, Cell{X: i % 3, Y: i / 3})
		}
	}
	return out
}
