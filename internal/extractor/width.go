package extractor

import (
	"math/bits"
	"regexp"
	"strconv"
	"strings"
)

var (
	// (7 downto 0), (0 to 15)
	vectorRangePattern = regexp.MustCompile(`(?i)\(\s*(\d+)\s+(?:downto|to)\s+(\d+)\s*\)`)

	// integer range 0 to 255
	intRangePattern = regexp.MustCompile(`(?i)^(?:integer|natural|positive)\s+range\s+(\d+)\s+to\s+(\d+)$`)
)

var scalarTypes = map[string]bool{
	"std_logic":  true,
	"std_ulogic": true,
	"bit":        true,
	"boolean":    true,
}

// CalculateWidth returns the bit width of a VHDL port or signal type.
// Types whose bounds depend on generics or are otherwise unknown give 0.
func CalculateWidth(typ string) int {
	t := strings.ToLower(normalizeSpace(typ))
	if t == "" {
		return 0
	}
	if scalarTypes[t] {
		return 1
	}

	if m := intRangePattern.FindStringSubmatch(t); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if hi < lo {
			return 0
		}
		if n := bits.Len(uint(hi)); n > 0 {
			return n
		}
		return 1
	}

	if m := vectorRangePattern.FindStringSubmatch(t); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if a < b {
			a, b = b, a
		}
		return a - b + 1
	}

	return 0
}
