package validator

// The validator guards the customizer against malformed instance documents.
// A document that fails here never reaches the rename core, so a typo in a
// parameter name or a non-numeric width is reported with its CUE path
// instead of surfacing later as a confusing rename failure.

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaFS embed.FS

const (
	documentDef = "#Document"
	previewDef  = "#Preview"
)

// Validator checks instance documents against the embedded CUE schema
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New creates a new Validator with the embedded CUE schema
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate checks that data, once marshaled to JSON, is a valid #Document
func (v *Validator) Validate(data interface{}) error {
	value, err := v.compileJSON(data)
	if err != nil {
		return err
	}
	return v.check(value)
}

// ValidateYAML validates a raw YAML document before it is decoded
func (v *Validator) ValidateYAML(filename string, src []byte) error {
	return v.validateYAML(filename, src, documentDef)
}

// ValidatePreviewYAML checks only the structure of a preview document.
// Width parameters may hold anything while the instance is being edited.
func (v *Validator) ValidatePreviewYAML(filename string, src []byte) error {
	return v.validateYAML(filename, src, previewDef)
}

func (v *Validator) validateYAML(filename string, src []byte, def string) error {
	file, err := yaml.Extract(filename, src)
	if err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	value := v.ctx.BuildFile(file)
	if value.Err() != nil {
		return fmt.Errorf("compiling YAML as CUE: %w", value.Err())
	}
	return v.checkAgainst(value, def)
}

// ValidationErrors returns every schema violation in data, or nil
func (v *Validator) ValidationErrors(data interface{}) []string {
	value, err := v.compileJSON(data)
	if err != nil {
		return []string{err.Error()}
	}

	def, err := v.definition(documentDef)
	if err != nil {
		return []string{err.Error()}
	}

	err = def.Unify(value).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs []string
	for _, e := range errors.Errors(err) {
		errs = append(errs, e.Error())
	}
	return errs
}

func (v *Validator) compileJSON(data interface{}) (cue.Value, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return cue.Value{}, fmt.Errorf("marshaling data to JSON: %w", err)
	}

	value := v.ctx.CompileBytes(jsonBytes)
	if value.Err() != nil {
		return cue.Value{}, fmt.Errorf("compiling data as CUE: %w", value.Err())
	}
	return value, nil
}

func (v *Validator) definition(name string) (cue.Value, error) {
	def := v.schema.LookupPath(cue.ParsePath(name))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("looking up %s definition: %w", name, def.Err())
	}
	return def, nil
}

func (v *Validator) check(value cue.Value) error {
	return v.checkAgainst(value, documentDef)
}

func (v *Validator) checkAgainst(value cue.Value, name string) error {
	def, err := v.definition(name)
	if err != nil {
		return err
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
