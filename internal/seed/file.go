package seed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrSeedLine marks a malformed line in a coordinate file.
var ErrSeedLine = errors.New("invalid seed line")

// ReadCells parses "x y" pairs, one per line. Blank lines and lines starting
// with '#' are skipped. Every coordinate must fit inside a w x h grid. The
// result is never nil, so a file without coordinates still selects an empty
// manual seed.
func ReadCells(r io.Reader, w, h int) ([]Cell, error) {
	cells := []Cell{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d must contain two integers: %q", ErrSeedLine, lineNo, line)
		}
		x, err := strconv.Atoi(fields[0])
		if err != nil || x < 0 {
			return nil, fmt.Errorf("%w: invalid x coordinate %q on line %d", ErrSeedLine, fields[0], lineNo)
		}
		y, err := strconv.Atoi(fields[1])
		if err != nil || y < 0 {
			return nil, fmt.Errorf("%w: invalid y coordinate %q on line %d", ErrSeedLine, fields[1], lineNo)
		}
		if x >= w || y >= h {
			return nil, fmt.Errorf("%w: coordinate (%d, %d) on line %d is outside the %dx%d grid", ErrOutOfBounds, x, y, lineNo, w, h)
		}
		cells = append(cells, Cell{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading seed line %d: %w", lineNo+1, err)
	}
	return cells, nil
}

// LoadCells reads a coordinate file from disk.
func LoadCells(path string, w, h int) ([]Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()
	cells, err := ReadCells(f, w, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cells, nil
}
