package symbol

import "fmt"

// Instance is a component instance's committed parameters. It implements
// customizer.InstanceQuery.
type Instance struct {
	Preview    bool
	Parameters map[string]string
}

// IsPreviewCanvas reports whether the instance is drawn as a preview
func (in Instance) IsPreviewCanvas() bool { return in.Preview }

// CommittedParam returns the committed value of a parameter
func (in Instance) CommittedParam(name string) (string, error) {
	v, ok := in.Parameters[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return v, nil
}
