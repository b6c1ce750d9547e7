// =============================================================================
// symbol-customizer - Main Entry Point
// =============================================================================
//
// Renames a component symbol's output terminals to match the bus widths
// configured on the component instance (out1 -> out1[3:0] for 4 bits).
//
// THE PIPELINE:
//   1. Instance documents (YAML) are found via symbol_customizer.json
//   2. CUE validator checks each document against the instance contract
//   3. The customizer reads committed widths and computes display names
//   4. The symbol editor applies renames, vetted by the OPA naming rules
//   5. Results are reported, and written back with --write
//
// A document marked `preview: true` is left exactly as authored.
// =============================================================================

package main

import (
	"os"
)

// Version can be set during build time
var Version = "dev"

func main() {
	if err := NewRootCommand(Version).Execute(); err != nil {
		os.Exit(1)
	}
}
