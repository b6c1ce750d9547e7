package extractor

import (
	"regexp"
	"strings"
)

var (
	// Pattern: entity <name> is
	entityPattern = regexp.MustCompile(`(?i)^\s*entity\s+(\w+)\s+is\b`)

	// Pattern: end [entity] [<name>];
	entityEndPattern = regexp.MustCompile(`(?i)^\s*end\b(?:\s+entity)?(?:\s+(\w+))?\s*;`)

	// Pattern: port (
	portClausePattern = regexp.MustCompile(`(?i)\bport\s*\(`)

	// Pattern: <names> : [mode] <type> [:= <default>]
	portDeclPattern = regexp.MustCompile(`(?is)^\s*(?:signal\s+)?([\w\s,]+?)\s*:\s*(?:(inout|in|out|buffer|linkage)\s+)?(.+?)\s*(?::=\s*(.*?))?\s*$`)
)

// matchEntity returns [name] if line declares an entity
func matchEntity(line string) []string {
	if m := entityPattern.FindStringSubmatch(line); m != nil {
		return []string{m[1]}
	}
	return nil
}

// matchEntityEnd reports whether line closes the named entity
func matchEntityEnd(line, name string) bool {
	m := entityEndPattern.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	return m[1] == "" || strings.EqualFold(m[1], name)
}

// stripComments blanks out "--" comments while keeping offsets and newlines
func stripComments(s string) string {
	b := []byte(s)
	inComment := false
	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == '\n':
			inComment = false
		case inComment:
			b[i] = ' '
		case b[i] == '-' && i+1 < len(b) && b[i+1] == '-':
			inComment = true
			b[i] = ' '
		}
	}
	return string(b)
}

// matchParen returns the index of the parenthesis closing the one at open
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parsePorts extracts the port clause of an entity body.
// firstLine is the source line the body starts on.
func parsePorts(body string, firstLine int) []Port {
	clean := stripComments(body)
	loc := portClausePattern.FindStringIndex(clean)
	if loc == nil {
		return nil
	}

	open := loc[1] - 1
	end := matchParen(clean, open)
	if end < 0 {
		return nil
	}

	var ports []Port
	start := open + 1
	depth := 0
	for i := open + 1; i <= end; i++ {
		c := clean[i]
		switch {
		case c == '(':
			depth++
		case c == ')' && i != end:
			depth--
		case (c == ';' && depth == 0) || i == end:
			decl := clean[start:i]
			lead := len(decl) - len(strings.TrimLeft(decl, " \t\r\n"))
			line := firstLine + strings.Count(clean[:start+lead], "\n")
			ports = append(ports, parsePortDecl(decl, line)...)
			start = i + 1
		}
	}
	return ports
}

// parsePortDecl expands "a, b : out std_logic" into one Port per name
func parsePortDecl(decl string, line int) []Port {
	if strings.TrimSpace(decl) == "" {
		return nil
	}
	m := portDeclPattern.FindStringSubmatch(decl)
	if m == nil {
		return nil
	}

	direction := strings.ToLower(m[2])
	if direction == "" {
		direction = "in"
	}
	typ := normalizeSpace(m[3])
	def := normalizeSpace(m[4])

	var ports []Port
	for _, name := range strings.Split(m[1], ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ports = append(ports, Port{
			Name:      name,
			Direction: direction,
			Type:      typ,
			Default:   def,
			Line:      line,
		})
	}
	return ports
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
