package symbol

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/busname"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/customizer"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/extractor"
)

// WidthParamSuffix is appended to a terminal's base name to form its width parameter
const WidthParamSuffix = "_width"

// Document is a component instance as stored on disk: its committed
// parameters and the symbol they customize.
type Document struct {
	Component  string            `yaml:"component" json:"component"`
	Preview    bool              `yaml:"preview,omitempty" json:"preview,omitempty"`
	Parameters map[string]string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Symbol     Symbol            `yaml:"symbol" json:"symbol"`
}

// ParseDocument decodes a YAML instance document
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	doc.normalize()
	return &doc, nil
}

// LoadDocument reads a YAML instance document from path
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document as YAML
func (d *Document) Marshal() ([]byte, error) {
	d.normalize()
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	return data, nil
}

// Save writes the document to path as YAML
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// Instance returns the document's parameter view for the customizer
func (d *Document) Instance() Instance {
	return Instance{Preview: d.Preview, Parameters: d.Parameters}
}

// OutputTerminals lists the customizable outputs of the symbol: every
// out, buffer or inout terminal whose "<base>_width" parameter is set.
func (d *Document) OutputTerminals() []customizer.OutputTerminal {
	var out []customizer.OutputTerminal
	for _, t := range d.Symbol.Terminals {
		if t.Direction == "in" {
			continue
		}
		base, _ := busname.Split(t.Name)
		param := base + WidthParamSuffix
		if _, ok := d.Parameters[param]; !ok {
			continue
		}
		out = append(out, customizer.OutputTerminal{Name: base, WidthParam: param})
	}
	return out
}

func (d *Document) normalize() {
	if d.Parameters == nil {
		d.Parameters = map[string]string{}
	}
	if d.Symbol.Terminals == nil {
		d.Symbol.Terminals = []Terminal{}
	}
}

// FromEntity builds an instance document from a VHDL entity. Ports become
// terminals under their base names; ports with a known width get a
// "<port>_width" parameter.
func FromEntity(ent extractor.Entity) *Document {
	doc := &Document{
		Component: ent.Name,
		Symbol:    Symbol{Name: ent.Name},
	}
	doc.normalize()

	for _, p := range ent.Ports {
		dir := p.Direction
		if dir == "linkage" {
			dir = "inout"
		}
		doc.Symbol.Terminals = append(doc.Symbol.Terminals, Terminal{Name: p.Name, Direction: dir})
		if w := p.Width(); w > 0 {
			doc.Parameters[p.Name+WidthParamSuffix] = fmt.Sprint(w)
		}
	}
	return doc
}
