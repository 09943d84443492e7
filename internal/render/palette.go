package render

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownPalette is returned by ParsePalette for unregistered names.
var ErrUnknownPalette = errors.New("unknown palette")

// Palette is a two-color scheme: index 0 for dead cells, index 1 for live ones.
type Palette struct {
	Name       string
	Background color.RGBA
	Foreground color.RGBA
}

// DefaultPaletteName selects black background with white cells.
const DefaultPaletteName = "classic"

var palettes = map[string]Palette{
	"classic":            mustPalette("classic", "#000000", "#ffffff"),
	"paperback2":         mustPalette("paperback2", "#382b26", "#b8c2b9"),
	"ys-neutral-green":   mustPalette("ys-neutral-green", "#004c3d", "#ffeaf9"),
	"bitbee":             mustPalette("bitbee", "#292b30", "#cfab4a"),
	"casio-basic":        mustPalette("casio-basic", "#000000", "#83b07e"),
	"ibm51":              mustPalette("ibm51", "#323c39", "#d3c9a1"),
	"ys-concrete-jungle": mustPalette("ys-concrete-jungle", "#121216", "#e8e6e1"),
	"one-bit-pepper":     mustPalette("one-bit-pepper", "#100101", "#ebb5b5"),
	"raz-sandwich":       mustPalette("raz-sandwich", "#400927", "#ffe1c5"),
	"cga-pastel":         mustPalette("cga-pastel", "#360072", "#ffbf83"),
}

// DefaultPalette returns the classic black and white scheme.
func DefaultPalette() Palette { return palettes[DefaultPaletteName] }

// ParsePalette looks up a palette by name. Matching is case-insensitive and
// an empty name selects the default.
func ParsePalette(name string) (Palette, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultPalette(), nil
	}
	p, ok := palettes[key]
	if !ok {
		return Palette{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPalette, name, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}

// PaletteNames lists the registered palettes in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Colors returns the palette as a color.Palette ordered [background, foreground].
func (p Palette) Colors() color.Palette {
	return color.Palette{p.Background, p.Foreground}
}

func mustPalette(name, bg, fg string) Palette {
	b, err := parseHex(bg)
	if err != nil {
		panic(err)
	}
	f, err := parseHex(fg)
	if err != nil {
		panic(err)
	}
	return Palette{Name: name, Background: b, Foreground: f}
}

func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q must have 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
