package scenarios

import (
	"errors"
	"fmt"
)

// Target is a component that a scenario can be replayed against.
type Target interface {
	Select(item string) error
	Deselect(item string) error
	DeselectAll() error
	RemoteSelect(key string) error
	RemoteDeselect(key string) error
	RemoteUpdateSelection(addedKeys, removedKeys []string) error
	KeyFor(item string) (string, error)
}

// Replay runs the scenario's steps against the target. It stops at the first step that does
// not fail the way the scenario says it should.
func (s Scenario) Replay(target Target) error {
	for i, step := range s.Steps {
		want, ok := expectedError(step.Error)
		if !ok {
			return fmt.Errorf("step %d (%s %s): unknown error name %q", i+1, step.Op, step.Item, step.Error)
		}
		err := runStep(target, step)
		switch {
		case want == nil && err != nil:
			return fmt.Errorf("step %d (%s %s): unexpected error: %w", i+1, step.Op, step.Item, err)
		case want != nil && !errors.Is(err, want):
			return fmt.Errorf("step %d (%s %s): expected error %q, got %v", i+1, step.Op, step.Item, want, err)
		}
	}
	return nil
}

func runStep(target Target, step Step) error {
	switch step.Op {
	case OpSelect:
		return target.Select(step.Item)
	case OpDeselect:
		return target.Deselect(step.Item)
	case OpDeselectAll:
		return target.DeselectAll()
	case OpRemoteSelect, OpRemoteDeselect:
		key := step.Key
		if key == "" {
			var err error
			if key, err = target.KeyFor(step.Item); err != nil {
				return err
			}
		}
		if step.Op == OpRemoteSelect {
			return target.RemoteSelect(key)
		}
		return target.RemoteDeselect(key)
	case OpRemoteUpdateSelection:
		added, err := keysFor(target, step.Added)
		if err != nil {
			return err
		}
		removed, err := keysFor(target, step.Removed)
		if err != nil {
			return err
		}
		return target.RemoteUpdateSelection(added, removed)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

func keysFor(target Target, items []string) ([]string, error) {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		key, err := target.KeyFor(item)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
