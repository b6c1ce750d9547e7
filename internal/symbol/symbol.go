// Package symbol is an in-memory schematic symbol and the host-side
// implementation of the customizer interfaces over it.
package symbol

import (
	"errors"
	"regexp"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/busname"
)

var (
	// ErrUnknownTerminal is returned when no terminal has the requested name.
	ErrUnknownTerminal = errors.New("unknown terminal")

	// ErrUnknownParam is returned for a parameter the instance does not carry.
	ErrUnknownParam = errors.New("unknown parameter")

	// ErrInvalidName is returned when a rename target is not a terminal identifier.
	ErrInvalidName = errors.New("invalid terminal name")

	// ErrNameCollision is returned when a rename target clashes with another
	// terminal's name or base name.
	ErrNameCollision = errors.New("terminal name collision")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\[[0-9]+:0\])?$`)

// Terminal is a named connection point on the symbol
type Terminal struct {
	Name      string `yaml:"name" json:"name"`
	Direction string `yaml:"direction" json:"direction"`
}

// Symbol is a schematic symbol with an ordered terminal list
type Symbol struct {
	Name      string     `yaml:"name,omitempty" json:"name,omitempty"`
	Terminals []Terminal `yaml:"terminals" json:"terminals"`
}

// ValidName reports whether name is a plain identifier, optionally with a
// "[N:0]" bus suffix.
func ValidName(name string) bool {
	return identifierPattern.MatchString(name)
}

// Lookup returns the index of the terminal called name, or -1
func (s *Symbol) Lookup(name string) int {
	for i, t := range s.Terminals {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// LookupBase returns the index of the terminal whose base name is base, or -1
func (s *Symbol) LookupBase(base string) int {
	for i, t := range s.Terminals {
		if b, _ := busname.Split(t.Name); b == base {
			return i
		}
	}
	return -1
}

// Names returns the terminal names in order
func (s *Symbol) Names() []string {
	names := make([]string, 0, len(s.Terminals))
	for _, t := range s.Terminals {
		names = append(names, t.Name)
	}
	return names
}
