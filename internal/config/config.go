package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/customizer"
)

// FileName is the configuration file looked up by Load
const FileName = "symbol_customizer.json"

// Config is the top-level configuration for symbol-customizer
type Config struct {
	// Terminals lists the output terminals to customize, in processing order
	Terminals []TerminalConfig `json:"terminals,omitempty"`

	// AutoTerminals derives the terminal list from each document instead:
	// every output terminal with a "<name>_width" parameter
	AutoTerminals bool `json:"autoTerminals,omitempty"`

	// Documents is a list of glob patterns for instance documents
	Documents []string `json:"documents,omitempty"`

	// Validate checks documents against the CUE schema before customizing
	Validate *bool `json:"validate,omitempty"`

	// Policy controls the rename naming rules
	Policy PolicyConfig `json:"policy,omitempty"`
}

// TerminalConfig names one terminal and its parameters
type TerminalConfig struct {
	Name        string `json:"name"`
	WidthParam  string `json:"widthParam,omitempty"`
	EnableParam string `json:"enableParam,omitempty"`
}

// PolicyConfig controls the OPA naming rules
type PolicyConfig struct {
	// Enabled turns on policy checks for every rename
	Enabled *bool `json:"enabled,omitempty"`

	// Dir holds extra *.rego files (relative to the config file if not absolute)
	Dir string `json:"dir,omitempty"`
}

// DefaultConfig returns the configuration for the DDS24 component
func DefaultConfig() *Config {
	return &Config{
		Terminals: []TerminalConfig{
			{Name: "out1", WidthParam: "out1_width"},
			{Name: "out2", WidthParam: "out2_width"},
		},
		Documents: []string{"*.yaml", "*.yml"},
		Validate:  boolPtr(true),
		Policy: PolicyConfig{
			Enabled: boolPtr(true),
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Load finds and loads the configuration file
// Search order:
//  1. ./symbol_customizer.json (current working directory)
//  2. ./.symbol_customizer.json (current working directory)
//  3. <rootPath>/symbol_customizer.json (if rootPath is a different directory)
//  4. ~/.config/symbol_customizer/config.json
//
// Returns DefaultConfig if no config file is found
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, FileName),
		filepath.Join(cwd, "."+FileName),
	}

	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, FileName),
				filepath.Join(rootPath, "."+FileName),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "symbol_customizer", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if cfg.Policy.Dir != "" && !filepath.IsAbs(cfg.Policy.Dir) {
		cfg.Policy.Dir = filepath.Join(filepath.Dir(path), cfg.Policy.Dir)
	}

	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if len(c.Terminals) == 0 && !c.AutoTerminals {
		c.Terminals = DefaultConfig().Terminals
	}
	for i := range c.Terminals {
		if c.Terminals[i].WidthParam == "" {
			c.Terminals[i].WidthParam = c.Terminals[i].Name + "_width"
		}
	}
	if len(c.Documents) == 0 {
		c.Documents = []string{"*.yaml", "*.yml"}
	}
	if c.Validate == nil {
		c.Validate = boolPtr(true)
	}
	if c.Policy.Enabled == nil {
		c.Policy.Enabled = boolPtr(true)
	}
}

// Check reports configuration that cannot drive the customizer
func (c *Config) Check() error {
	seen := make(map[string]bool)
	for i, t := range c.Terminals {
		if t.Name == "" {
			return fmt.Errorf("terminals[%d]: name is required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("terminals[%d]: duplicate terminal %q", i, t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// OutputTerminals converts the terminal list for the customizer
func (c *Config) OutputTerminals() []customizer.OutputTerminal {
	out := make([]customizer.OutputTerminal, 0, len(c.Terminals))
	for _, t := range c.Terminals {
		out = append(out, customizer.OutputTerminal{
			Name:        t.Name,
			WidthParam:  t.WidthParam,
			EnableParam: t.EnableParam,
		})
	}
	return out
}

// ValidateEnabled reports whether documents are schema-checked
func (c *Config) ValidateEnabled() bool {
	return c.Validate == nil || *c.Validate
}

// PolicyEnabled reports whether renames are vetted by the naming rules
func (c *Config) PolicyEnabled() bool {
	return c.Policy.Enabled == nil || *c.Policy.Enabled
}
