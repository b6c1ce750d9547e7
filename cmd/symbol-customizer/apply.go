package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/config"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/customizer"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/log"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/policy"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/symbol"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/validator"
)

type applyOptions struct {
	configPath string
	preview    bool
	write      bool
}

func newApplyCommand() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply [path]...",
		Short: "Customize the symbols of instance documents",
		Long: `Apply the bus-width naming rule to every instance document given.
A directory argument expands to the documents matched by the configured
patterns. Without arguments the current directory is used.

Processing stops at the first document that fails.

Examples:
  symbol-customizer apply dds24.yaml
  symbol-customizer apply --write ./instances
  symbol-customizer apply --preview dds24.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runApply(cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: search for "+config.FileName+")")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Treat every document as a preview; nothing is renamed")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write customized documents back to disk")

	return cmd
}

// applier holds what every document in one apply run shares
type applier struct {
	cfg       *config.Config
	validator *validator.Validator
	guard     symbol.RenameGuard
	opts      *applyOptions
	logger    log.Logger
}

func runApply(out io.Writer, paths []string, opts *applyOptions) error {
	logger := log.Default()

	cfg, err := loadConfig(opts.configPath, paths[0])
	if err != nil {
		return err
	}

	a := &applier{cfg: cfg, opts: opts, logger: logger}
	if cfg.ValidateEnabled() {
		if a.validator, err = validator.New(); err != nil {
			return err
		}
	}
	if cfg.PolicyEnabled() {
		engine, err := policy.New(cfg.Policy.Dir)
		if err != nil {
			return fmt.Errorf("loading naming policy: %w", err)
		}
		a.guard = engine
	}

	docs, err := expandPaths(cfg, paths)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		logger.Warn("no instance documents found", "paths", paths)
		return nil
	}

	for _, path := range docs {
		if err := a.apply(out, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (a *applier) apply(out io.Writer, path string) error {
	logger := a.logger.With("document", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	doc, err := symbol.ParseDocument(data)
	if err != nil {
		return err
	}
	if a.opts.preview {
		doc.Preview = true
	}

	if a.validator != nil {
		validate := a.validator.ValidateYAML
		if doc.Preview {
			validate = a.validator.ValidatePreviewYAML
		}
		if err := validate(path, data); err != nil {
			return err
		}
		logger.Debug("document matches schema", "preview", doc.Preview)
	}

	terminals := a.cfg.OutputTerminals()
	if a.cfg.AutoTerminals {
		terminals = doc.OutputTerminals()
	}
	if len(terminals) == 0 {
		logger.Warn("no output terminals to customize, skipping")
		return nil
	}
	c := customizer.New(terminals...)
	logger.Debug("customizing", "terminals", len(c.Terminals()))

	editorOpts := []symbol.EditorOption{symbol.WithLogger(logger)}
	if a.guard != nil {
		editorOpts = append(editorOpts, symbol.WithGuard(a.guard))
	}
	editor := symbol.NewEditor(&doc.Symbol, editorOpts...)

	report, err := c.Run(doc.Instance(), editor)
	printReport(out, path, report, editor.Renames())
	if err != nil {
		logger.Error("customization failed", "error", err)
		return err
	}

	if a.opts.write && report.State == customizer.StateSucceeded && len(editor.Renames()) > 0 {
		if err := doc.Save(path); err != nil {
			return err
		}
		logger.Info("document written")
	}
	return nil
}

func printReport(out io.Writer, path string, report customizer.Report, renames []symbol.Rename) {
	fmt.Fprintf(out, "%s: %s\n", path, report.State)
	for _, r := range renames {
		fmt.Fprintf(out, "  %s -> %s\n", r.From, r.To)
	}
}

func loadConfig(configPath, root string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", configPath, err)
		}
		return cfg, nil
	}

	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	cfg, err := config.Load(root)
	if err != nil {
		log.Default().Warn("could not load config, using defaults", "error", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

// expandPaths resolves directory arguments through the configured patterns
func expandPaths(cfg *config.Config, paths []string) ([]string, error) {
	var docs []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			docs = append(docs, p)
			continue
		}
		found, err := cfg.ResolveDocuments(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, found...)
	}
	return docs, nil
}
