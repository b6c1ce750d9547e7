package policy

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/open-policy-agent/opa/rego"
)

//go:embed naming.rego
var namingModule string

const violationsQuery = "data.symbol.naming.violations"

// ErrViolation is returned by CheckRename when a rename breaks a naming rule
var ErrViolation = errors.New("naming policy violation")

// Engine evaluates terminal naming rules with OPA
type Engine struct {
	query rego.PreparedEvalQuery
}

// Violation represents a broken naming rule
type Violation struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// RenameInput is the data passed to OPA for one proposed rename
type RenameInput struct {
	OldName   string   `json:"old_name"`
	NewName   string   `json:"new_name"`
	Terminals []string `json:"terminals"`
}

// New prepares the built-in naming rules plus any *.rego files in extraDir.
// Extra modules extend the rules by adding to
// data.symbol.naming.violations. An empty extraDir uses the built-in rules only.
func New(extraDir string) (*Engine, error) {
	opts := []func(*rego.Rego){
		rego.Query(violationsQuery),
		rego.Module("naming.rego", namingModule),
	}

	if extraDir != "" {
		files, err := filepath.Glob(filepath.Join(extraDir, "*.rego"))
		if err != nil {
			return nil, fmt.Errorf("finding policy files: %w", err)
		}
		sort.Strings(files)
		for _, f := range files {
			content, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", f, err)
			}
			opts = append(opts, rego.Module(f, string(content)))
		}
	}

	query, err := rego.New(opts...).PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("preparing violations query: %w", err)
	}
	return &Engine{query: query}, nil
}

// Check evaluates the naming rules for one rename
func (e *Engine) Check(ctx context.Context, in RenameInput) ([]Violation, error) {
	if in.Terminals == nil {
		in.Terminals = []string{}
	}
	inputMap, err := structToMap(in)
	if err != nil {
		return nil, fmt.Errorf("converting input: %w", err)
	}

	rs, err := e.query.Eval(ctx, rego.EvalInput(inputMap))
	if err != nil {
		return nil, fmt.Errorf("evaluating violations: %w", err)
	}

	var violations []Violation
	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		values, ok := rs[0].Expressions[0].Value.([]interface{})
		if ok {
			for _, v := range values {
				vmap, ok := v.(map[string]interface{})
				if !ok {
					continue
				}
				violations = append(violations, Violation{
					Rule:     getString(vmap, "rule"),
					Severity: getString(vmap, "severity"),
					Message:  getString(vmap, "message"),
				})
			}
		}
	}
	return violations, nil
}

// CheckRename returns ErrViolation listing every broken rule, or nil.
// Only error-severity violations reject the rename.
func (e *Engine) CheckRename(current, next string, terminals []string) error {
	violations, err := e.Check(context.Background(), RenameInput{
		OldName:   current,
		NewName:   next,
		Terminals: terminals,
	})
	if err != nil {
		return err
	}

	var msgs []string
	for _, v := range violations {
		if v.Severity != "" && v.Severity != "error" {
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Rule, v.Message))
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrViolation, strings.Join(msgs, "; "))
}

func structToMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	err = json.Unmarshal(data, &result)
	return result, err
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
