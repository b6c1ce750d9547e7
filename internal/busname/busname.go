// Package busname maps a terminal's configured bit width to its display name.
//
// A single-bit terminal keeps its base name. A wider terminal gets a closed
// bit-range suffix from the most significant index down to zero:
//
//	out1, width 1 -> out1
//	out1, width 4 -> out1[3:0]
package busname

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxWidth is the widest bus a component parameter can describe.
// Widths are stored in a single byte by the component.
const MaxWidth = 255

var (
	// ErrInvalidWidth is returned for widths outside 1..MaxWidth.
	ErrInvalidWidth = errors.New("invalid bus width")

	// ErrMalformedWidth is returned when a committed width is not an integer.
	ErrMalformedWidth = errors.New("malformed bus width")

	// ErrEmptyName is returned when the terminal base name is empty.
	ErrEmptyName = errors.New("empty terminal name")
)

// TerminalSpec pairs a terminal base name with its configured width.
type TerminalSpec struct {
	BaseName string
	Width    int
}

// RenameDecision is the computed name for one terminal.
type RenameDecision struct {
	BaseName    string
	DisplayName string
}

// DisplayName returns the canonical name for a terminal of the given width.
func DisplayName(baseName string, width int) (string, error) {
	if baseName == "" {
		return "", ErrEmptyName
	}
	if width < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if width == 1 {
		return baseName, nil
	}
	return fmt.Sprintf("%s[%d:0]", baseName, width-1), nil
}

// Decide computes the rename decision for a terminal.
func Decide(ts TerminalSpec) (RenameDecision, error) {
	name, err := DisplayName(ts.BaseName, ts.Width)
	if err != nil {
		return RenameDecision{}, err
	}
	return RenameDecision{BaseName: ts.BaseName, DisplayName: name}, nil
}

// ParseWidth parses a string-encoded committed width.
func ParseWidth(raw string) (int, error) {
	w, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedWidth, raw)
	}
	if w < 1 || w > MaxWidth {
		return 0, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidWidth, w, MaxWidth)
	}
	return w, nil
}

// Split is the inverse of DisplayName. Names without a well-formed
// "[N:0]" suffix are treated as single-bit.
func Split(name string) (base string, width int) {
	open := strings.LastIndexByte(name, '[')
	if open <= 0 || !strings.HasSuffix(name, ":0]") {
		return name, 1
	}
	msb, err := strconv.Atoi(name[open+1 : len(name)-len(":0]")])
	if err != nil || msb < 1 {
		return name, 1
	}
	return name[:open], msb + 1
}
