// Package customizer renames a component's output terminals to match their
// configured bus widths. It is driven by a host editor through the narrow
// interfaces declared here and keeps no state between invocations.
package customizer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/busname"
)

// PreviewQuery reports whether the host is drawing a non-committing preview.
type PreviewQuery interface {
	IsPreviewCanvas() bool
}

// ParamQuery reads committed component parameters.
type ParamQuery interface {
	CommittedParam(name string) (string, error)
}

// InstanceQuery is the read-only view of a component instance.
type InstanceQuery interface {
	PreviewQuery
	ParamQuery
}

// TerminalEditor is the host's terminal rename sink.
type TerminalEditor interface {
	// TermName returns the current name of the terminal with the given base name.
	TermName(baseName string) (string, error)
	// Rename asks the host to rename a terminal.
	Rename(current, next string) error
}

var (
	// ErrInvalidWidth is returned when a committed width is outside 1..255.
	ErrInvalidWidth = busname.ErrInvalidWidth

	// ErrRenameRejected is returned when the host refuses a rename.
	ErrRenameRejected = errors.New("rename rejected")
)

// Steps reported in TerminalError.Op.
const (
	OpReadParam  = "read-param"
	OpParseWidth = "parse-width"
	OpDecide     = "decide"
	OpLookup     = "lookup"
	OpRename     = "rename"
)

// TerminalError records which terminal and which step failed.
type TerminalError struct {
	Terminal string
	Op       string
	Err      error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %s: %v", e.Terminal, e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// OutputTerminal names a terminal and the parameters that configure it.
type OutputTerminal struct {
	Name       string
	WidthParam string
	// EnableParam, when set, names a boolean parameter; a false value
	// leaves the terminal untouched.
	EnableParam string
}

// DefaultTerminals returns the two outputs of the DDS component.
func DefaultTerminals() []OutputTerminal {
	return []OutputTerminal{
		{Name: "out1", WidthParam: "out1_width"},
		{Name: "out2", WidthParam: "out2_width"},
	}
}

// State is the terminal state of one invocation.
type State int

const (
	StatePreview State = iota
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePreview:
		return "preview"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Report describes what an invocation did.
type Report struct {
	State State
	// Decisions holds the renames the host accepted, in request order.
	Decisions []busname.RenameDecision
}

// Customizer processes a fixed, ordered list of output terminals.
type Customizer struct {
	terminals []OutputTerminal
}

// New returns a Customizer for the given terminals, or for
// DefaultTerminals when none are given.
func New(terminals ...OutputTerminal) *Customizer {
	if len(terminals) == 0 {
		terminals = DefaultTerminals()
	}
	return &Customizer{terminals: append([]OutputTerminal(nil), terminals...)}
}

// Terminals returns the terminals in processing order.
func (c *Customizer) Terminals() []OutputTerminal {
	return append([]OutputTerminal(nil), c.terminals...)
}

// CustomizeShapes is the host entry point.
func (c *Customizer) CustomizeShapes(q InstanceQuery, te TerminalEditor) error {
	_, err := c.Run(q, te)
	return err
}

// Run renames every configured terminal. In preview mode nothing is read or
// renamed. The first failure stops processing; later terminals are not
// touched.
func (c *Customizer) Run(q InstanceQuery, te TerminalEditor) (Report, error) {
	if q.IsPreviewCanvas() {
		return Report{State: StatePreview}, nil
	}

	report := Report{State: StateSucceeded}
	for _, term := range c.terminals {
		decision, skipped, err := c.apply(term, q, te)
		if err != nil {
			report.State = StateFailed
			return report, err
		}
		if !skipped {
			report.Decisions = append(report.Decisions, decision)
		}
	}
	return report, nil
}

func (c *Customizer) apply(term OutputTerminal, q ParamQuery, te TerminalEditor) (busname.RenameDecision, bool, error) {
	fail := func(op string, err error) (busname.RenameDecision, bool, error) {
		return busname.RenameDecision{}, false, &TerminalError{Terminal: term.Name, Op: op, Err: err}
	}

	if term.EnableParam != "" {
		raw, err := q.CommittedParam(term.EnableParam)
		if err != nil {
			return fail(OpReadParam, err)
		}
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fail(OpReadParam, fmt.Errorf("%s: %w", term.EnableParam, err))
		}
		if !enabled {
			return busname.RenameDecision{}, true, nil
		}
	}

	raw, err := q.CommittedParam(term.WidthParam)
	if err != nil {
		return fail(OpReadParam, err)
	}
	width, err := busname.ParseWidth(raw)
	if err != nil {
		return fail(OpParseWidth, err)
	}
	decision, err := busname.Decide(busname.TerminalSpec{BaseName: term.Name, Width: width})
	if err != nil {
		return fail(OpDecide, err)
	}

	current, err := te.TermName(term.Name)
	if err != nil {
		return fail(OpLookup, err)
	}
	if err := te.Rename(current, decision.DisplayName); err != nil {
		return fail(OpRename, fmt.Errorf("%w: %s -> %s: %w", ErrRenameRejected, current, decision.DisplayName, err))
	}
	return decision, false, nil
}
