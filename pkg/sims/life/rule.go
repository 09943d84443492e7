package life

import (
	"errors"
	"fmt"
	"strings"
)

// Rule parse failures. Every error returned by ParseRule wraps exactly one of these.
var (
	ErrEmptyRule       = errors.New("rule string is empty")
	ErrRuleFormat      = errors.New("rule must follow B#/S# format")
	ErrInvalidDigit    = errors.New("invalid digit in rule")
	ErrDigitOutOfRange = errors.New("neighbor count is out of range 0-8")
	ErrDuplicateDigit  = errors.New("digit is duplicated in rule")
)

// DefaultRuleLabel is Conway's classic rule.
const DefaultRuleLabel = "B3/S23"

// Rule holds the born and survive tables of a life-like automaton, indexed by
// live-neighbor count.
type Rule struct {
	born    [9]bool
	survive [9]bool
}

// NewRule builds a Rule from explicit tables.
func NewRule(born, survive [9]bool) Rule {
	return Rule{born: born, survive: survive}
}

// DefaultRule returns B3/S23.
func DefaultRule() Rule {
	return MustParseRule(DefaultRuleLabel)
}

// MustParseRule is like ParseRule but panics on malformed input.
func MustParseRule(s string) Rule {
	r, err := ParseRule(s)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRule parses a B<digits>/S<digits> specification. Prefix letters are
// case-insensitive.
func ParseRule(s string) (Rule, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Rule{}, ErrEmptyRule
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("%w: %q", ErrRuleFormat, trimmed)
	}
	born, err := parseSegment(parts[0], 'B')
	if err != nil {
		return Rule{}, err
	}
	survive, err := parseSegment(parts[1], 'S')
	if err != nil {
		return Rule{}, err
	}
	return Rule{born: born, survive: survive}, nil
}

func parseSegment(segment string, prefix byte) ([9]bool, error) {
	var flags [9]bool
	if segment == "" || upper(segment[0]) != prefix {
		return flags, fmt.Errorf("%w: segment %q must start with %c", ErrRuleFormat, segment, prefix)
	}
	for _, ch := range segment[1:] {
		if ch < '0' || ch > '9' {
			return flags, fmt.Errorf("%w: %q", ErrInvalidDigit, ch)
		}
		d := int(ch - '0')
		if d > 8 {
			return flags, fmt.Errorf("%w: %d", ErrDigitOutOfRange, d)
		}
		if flags[d] {
			return flags, fmt.Errorf("%w: %d", ErrDuplicateDigit, d)
		}
		flags[d] = true
	}
	return flags, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// ShouldLive reports the next state of a cell. Counts outside 0-8 are dead.
func (r Rule) ShouldLive(alive bool, neighbors int) bool {
	if neighbors < 0 || neighbors > 8 {
		return false
	}
	if alive {
		return r.survive[neighbors]
	}
	return r.born[neighbors]
}

// String renders the rule in canonical B#/S# form.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for i, on := range r.born {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	b.WriteString("/S")
	for i, on := range r.survive {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	return b.String()
}
