package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor parses VHDL sources and extracts entity interfaces
type Extractor struct {
	parser *sitter.Parser
	lang   *sitter.Language
}

// FileFacts contains the entities declared in a single VHDL file
type FileFacts struct {
	File     string
	Entities []Entity
}

// Entity represents a VHDL entity declaration
type Entity struct {
	Name  string
	Line  int
	Ports []Port
}

// Port represents an entity port
type Port struct {
	Name      string
	Direction string // in, out, inout, buffer, linkage
	Type      string
	Default   string
	Line      int
}

// Width returns the port's bit width, or 0 when it depends on generics
func (p Port) Width() int {
	return CalculateWidth(p.Type)
}

// New creates an Extractor without a grammar; it runs the regex scanner.
// NewVHDL installs the tree-sitter grammar.
func New() *Extractor {
	return &Extractor{
		parser: sitter.NewParser(),
	}
}

// SetLanguage sets the Tree-sitter language (VHDL)
func (e *Extractor) SetLanguage(lang *sitter.Language) {
	e.lang = lang
	e.parser.SetLanguage(lang)
}

// Extract reads and parses a VHDL file
func (e *Extractor) Extract(filePath string) (FileFacts, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return FileFacts{File: filePath}, fmt.Errorf("reading file: %w", err)
	}
	return e.ExtractSource(context.Background(), filePath, content)
}

// ExtractSource parses VHDL content already in memory
func (e *Extractor) ExtractSource(ctx context.Context, filePath string, content []byte) (FileFacts, error) {
	if e.lang == nil {
		return e.extractSimple(filePath, content), nil
	}

	facts := FileFacts{File: filePath}
	tree, err := e.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return facts, fmt.Errorf("parsing: %w", err)
	}
	defer tree.Close()

	e.walkTree(tree.RootNode(), content, &facts)
	return facts, nil
}

// walkTree collects entity declarations. Port clauses are read from the
// entity's source text so the result does not depend on grammar field names
// below the entity node.
func (e *Extractor) walkTree(node *sitter.Node, source []byte, facts *FileFacts) {
	if node == nil {
		return
	}

	if node.Type() == "entity_declaration" {
		entity := Entity{
			Line: int(node.StartPoint().Row) + 1,
		}
		content := node.Content(source)
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			entity.Name = nameNode.Content(source)
		} else if m := matchEntity(content); m != nil {
			entity.Name = m[0]
		}
		entity.Ports = parsePorts(content, entity.Line)
		facts.Entities = append(facts.Entities, entity)
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.walkTree(node.Child(i), source, facts)
	}
}

// extractSimple is the line scanner used when no grammar is loaded
func (e *Extractor) extractSimple(filePath string, content []byte) FileFacts {
	facts := FileFacts{File: filePath}
	lines := strings.Split(string(content), "\n")

	for i := 0; i < len(lines); i++ {
		m := matchEntity(lines[i])
		if m == nil {
			continue
		}

		start := i
		for i < len(lines) && !matchEntityEnd(lines[i], m[0]) {
			i++
		}
		end := i
		if end >= len(lines) {
			end = len(lines) - 1
		}

		body := strings.Join(lines[start:end+1], "\n")
		facts.Entities = append(facts.Entities, Entity{
			Name:  m[0],
			Line:  start + 1,
			Ports: parsePorts(body, start+1),
		})
	}

	return facts
}

// FindEntity returns the entity with the given name (case-insensitive).
// An empty name selects the first entity in the file.
func (f FileFacts) FindEntity(name string) (Entity, bool) {
	for _, ent := range f.Entities {
		if name == "" || strings.EqualFold(ent.Name, name) {
			return ent, true
		}
	}
	return Entity{}, false
}

// OutputPorts returns the ports that drive a signal out of the entity
func (ent Entity) OutputPorts() []Port {
	var out []Port
	for _, p := range ent.Ports {
		if p.Direction == "out" || p.Direction == "buffer" || p.Direction == "inout" {
			out = append(out, p)
		}
	}
	return out
}
