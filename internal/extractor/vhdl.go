package extractor

import (
	vhdl "github.com/alexaandru/go-sitter-forest/vhdl"
	sitter "github.com/smacker/go-tree-sitter"
)

// VHDL returns the tree-sitter VHDL grammar
func VHDL() *sitter.Language {
	return sitter.NewLanguage(vhdl.GetLanguage())
}

// NewVHDL creates an Extractor that parses with the VHDL grammar
func NewVHDL() *Extractor {
	e := New()
	e.SetLanguage(VHDL())
	return e
}
