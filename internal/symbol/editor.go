package symbol

import (
	"fmt"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/busname"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/log"
)

// RenameGuard vets a rename before it is applied. The policy engine
// implements it.
type RenameGuard interface {
	CheckRename(current, next string, terminals []string) error
}

// Rename is one applied terminal rename
type Rename struct {
	From string
	To   string
}

// Editor renames terminals on a symbol. It implements
// customizer.TerminalEditor.
type Editor struct {
	sym     *Symbol
	guard   RenameGuard
	logger  log.Logger
	renames []Rename
}

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithGuard adds a RenameGuard consulted before every rename
func WithGuard(g RenameGuard) EditorOption {
	return func(e *Editor) { e.guard = g }
}

// WithLogger sets the editor's logger
func WithLogger(l log.Logger) EditorOption {
	return func(e *Editor) { e.logger = l }
}

// NewEditor returns an Editor that modifies sym in place
func NewEditor(sym *Symbol, opts ...EditorOption) *Editor {
	e := &Editor{sym: sym, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TermName returns the current name of the terminal with the given base name
func (e *Editor) TermName(base string) (string, error) {
	i := e.sym.LookupBase(base)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownTerminal, base)
	}
	return e.sym.Terminals[i].Name, nil
}

// Rename renames current to next. Renaming a terminal to its own name
// is accepted and recorded nowhere.
func (e *Editor) Rename(current, next string) error {
	i := e.sym.Lookup(current)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTerminal, current)
	}
	if current == next {
		e.logger.Debug("terminal already named", "terminal", current)
		return nil
	}
	if !ValidName(next) {
		return fmt.Errorf("%w: %q", ErrInvalidName, next)
	}

	nextBase, _ := busname.Split(next)
	for j, t := range e.sym.Terminals {
		if j == i {
			continue
		}
		if base, _ := busname.Split(t.Name); t.Name == next || base == nextBase {
			return fmt.Errorf("%w: %s conflicts with %s", ErrNameCollision, next, t.Name)
		}
	}

	if e.guard != nil {
		if err := e.guard.CheckRename(current, next, e.sym.Names()); err != nil {
			return err
		}
	}

	e.sym.Terminals[i].Name = next
	e.renames = append(e.renames, Rename{From: current, To: next})
	e.logger.Info("renamed terminal", "from", current, "to", next)
	return nil
}

// Renames returns the renames applied so far, in order
func (e *Editor) Renames() []Rename {
	return append([]Rename(nil), e.renames...)
}
