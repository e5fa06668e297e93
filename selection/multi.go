package selection

import (
	"golang.org/x/exp/slices"
)

// MultiModel holds any number of selected items, in the order they were selected.
type MultiModel[T comparable] struct {
	selected  []T
	listeners listenerList[T]
}

// NewMultiModel creates a MultiModel with nothing selected.
func NewMultiModel[T comparable]() *MultiModel[T] {
	return &MultiModel[T]{}
}

func (m *MultiModel[T]) Select(item T) error { return m.SelectFrom(OriginProgrammatic, item) }

func (m *MultiModel[T]) Deselect(item T) error { return m.DeselectFrom(OriginProgrammatic, item) }

// DeselectAll clears the selection with one event listing every removed item.
func (m *MultiModel[T]) DeselectAll() error { return m.DeselectAllFrom(OriginProgrammatic) }

// UpdateSelection applies additions and removals as one programmatic change.
func (m *MultiModel[T]) UpdateSelection(added, removed []T) error {
	return m.UpdateSelectionFrom(OriginProgrammatic, added, removed)
}

func (m *MultiModel[T]) SelectFrom(origin Origin, item T) error {
	return m.UpdateSelectionFrom(origin, []T{item}, nil)
}

func (m *MultiModel[T]) DeselectFrom(origin Origin, item T) error {
	return m.UpdateSelectionFrom(origin, nil, []T{item})
}

func (m *MultiModel[T]) DeselectAllFrom(origin Origin) error {
	return m.UpdateSelectionFrom(origin, nil, m.selected)
}

// UpdateSelectionFrom removes the items in removed and then appends the items in added that are
// not already selected. An item that appears in both lists stays selected, in its original
// position. Nothing happens, and no event fires, if the result equals the current selection.
func (m *MultiModel[T]) UpdateSelectionFrom(origin Origin, added, removed []T) error {
	var actuallyRemoved []T
	for _, item := range removed {
		if slices.Contains(added, item) || !m.IsSelected(item) || slices.Contains(actuallyRemoved, item) {
			continue
		}
		actuallyRemoved = append(actuallyRemoved, item)
	}
	var actuallyAdded []T
	for _, item := range added {
		if m.IsSelected(item) || slices.Contains(actuallyAdded, item) {
			continue
		}
		actuallyAdded = append(actuallyAdded, item)
	}
	if len(actuallyAdded) == 0 && len(actuallyRemoved) == 0 {
		return nil
	}

	oldSelection := slices.Clone(m.selected)
	newSelection := make([]T, 0, len(m.selected)+len(actuallyAdded))
	for _, item := range m.selected {
		if !slices.Contains(actuallyRemoved, item) {
			newSelection = append(newSelection, item)
		}
	}
	newSelection = append(newSelection, actuallyAdded...)
	m.selected = newSelection

	// removed items are reported in their previous selection order
	orderedRemoved := make([]T, 0, len(actuallyRemoved))
	for _, item := range oldSelection {
		if slices.Contains(actuallyRemoved, item) {
			orderedRemoved = append(orderedRemoved, item)
		}
	}

	return m.listeners.fire(newEvent(origin, oldSelection, slices.Clone(newSelection), actuallyAdded, orderedRemoved))
}

func (m *MultiModel[T]) SelectedItems() []T {
	return copyItems(m.selected)
}

func (m *MultiModel[T]) IsSelected(item T) bool {
	return slices.Contains(m.selected, item)
}

func (m *MultiModel[T]) AddSelectionListener(listener Listener[T]) Registration {
	return m.listeners.add(listener)
}
