package scenarios

import (
	"errors"
	"fmt"

	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/servicedef"

	"golang.org/x/exp/slices"
)

// Op names a scenario step.
type Op string

const (
	OpSelect      Op = "select"
	OpDeselect    Op = "deselect"
	OpDeselectAll Op = "deselectAll"

	// The remote operations go through the component's communicator using item keys, as a
	// client would.
	OpRemoteSelect          Op = "remoteSelect"
	OpRemoteDeselect        Op = "remoteDeselect"
	OpRemoteUpdateSelection Op = "remoteUpdateSelection"
)

// Expected error names for Step.Error.
const (
	ErrorUnknownKey  = "unknownKey"
	ErrorInvalidItem = "invalidItem"
)

type Scenario struct {
	Name      string                   `json:"name"`
	Component servicedef.ComponentKind `json:"component"`
	Items     []string                 `json:"items"`
	Steps     []Step                   `json:"steps"`
	Expect    Expectation              `json:"expect"`
}

type Step struct {
	Op   Op     `json:"op"`
	Item string `json:"item,omitempty"`

	// Key is sent as-is by remote operations instead of looking up the key for Item.
	Key string `json:"key,omitempty"`

	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`

	// Error is the error this step must fail with, if any.
	Error string `json:"error,omitempty"`
}

// Expectation describes the state after all steps.
type Expectation struct {
	Events   int      `json:"events"`
	Origins  []string `json:"origins,omitempty"`
	Selected []string `json:"selected"`
}

func (s Scenario) validate() error {
	switch s.Component {
	case servicedef.KindRadioButtonGroup, servicedef.KindListSelect:
	default:
		return fmt.Errorf("unknown component kind %q", s.Component)
	}
	for i, step := range s.Steps {
		switch step.Op {
		case OpSelect, OpDeselect, OpDeselectAll, OpRemoteSelect, OpRemoteDeselect:
		case OpRemoteUpdateSelection:
			if s.Component != servicedef.KindListSelect {
				return fmt.Errorf("step %d: %s requires %s", i+1, step.Op, servicedef.KindListSelect)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
		if _, ok := expectedError(step.Error); !ok {
			return fmt.Errorf("step %d: unknown error name %q", i+1, step.Error)
		}
	}
	if len(s.Expect.Origins) != 0 && len(s.Expect.Origins) != s.Expect.Events {
		return fmt.Errorf("expected %d events but listed %d origins", s.Expect.Events, len(s.Expect.Origins))
	}
	return nil
}

func expectedError(name string) (error, bool) {
	switch name {
	case "":
		return nil, true
	case ErrorUnknownKey:
		return keymapper.ErrUnknownKey, true
	case ErrorInvalidItem:
		return keymapper.ErrInvalidItem, true
	default:
		return nil, false
	}
}

// Verify compares what was observed during a replay with the scenario's expectations. The
// origins are those of the events, in the order they were received.
func (s Scenario) Verify(origins []string, selected []string) error {
	var errs []error
	if len(origins) != s.Expect.Events {
		errs = append(errs, fmt.Errorf("expected %d events, got %d (%v)", s.Expect.Events, len(origins), origins))
	} else if len(s.Expect.Origins) != 0 && !slices.Equal(s.Expect.Origins, origins) {
		errs = append(errs, fmt.Errorf("expected event origins %v, got %v", s.Expect.Origins, origins))
	}
	expected := s.Expect.Selected
	if expected == nil {
		expected = []string{}
	}
	if selected == nil {
		selected = []string{}
	}
	if !slices.Equal(expected, selected) {
		errs = append(errs, fmt.Errorf("expected selection %v, got %v", expected, selected))
	}
	return errors.Join(errs...)
}
