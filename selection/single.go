package selection

import (
	o "github.com/uisync/selection-harness/framework/opt"
)

// SingleModel holds at most one selected item. Selecting an item replaces the previous selection
// in a single event.
type SingleModel[T comparable] struct {
	selected  o.Maybe[T]
	listeners listenerList[T]
}

// NewSingleModel creates a SingleModel with nothing selected.
func NewSingleModel[T comparable]() *SingleModel[T] {
	return &SingleModel[T]{}
}

func (m *SingleModel[T]) Select(item T) error { return m.SelectFrom(OriginProgrammatic, item) }

func (m *SingleModel[T]) Deselect(item T) error { return m.DeselectFrom(OriginProgrammatic, item) }

func (m *SingleModel[T]) DeselectAll() error { return m.DeselectAllFrom(OriginProgrammatic) }

func (m *SingleModel[T]) SelectFrom(origin Origin, item T) error {
	if m.IsSelected(item) {
		return nil
	}
	return m.setSelected(origin, o.Some(item))
}

func (m *SingleModel[T]) DeselectFrom(origin Origin, item T) error {
	if !m.IsSelected(item) {
		return nil
	}
	return m.setSelected(origin, o.None[T]())
}

func (m *SingleModel[T]) DeselectAllFrom(origin Origin) error {
	if !m.selected.IsDefined() {
		return nil
	}
	return m.setSelected(origin, o.None[T]())
}

// SelectedItem returns the selected item, if any.
func (m *SingleModel[T]) SelectedItem() o.Maybe[T] {
	return m.selected
}

func (m *SingleModel[T]) SelectedItems() []T {
	return maybeAsSlice(m.selected)
}

func (m *SingleModel[T]) IsSelected(item T) bool {
	return m.selected.IsDefined() && m.selected.Value() == item
}

func (m *SingleModel[T]) AddSelectionListener(listener Listener[T]) Registration {
	return m.listeners.add(listener)
}

func (m *SingleModel[T]) setSelected(origin Origin, value o.Maybe[T]) error {
	oldSelection := maybeAsSlice(m.selected)
	newSelection := maybeAsSlice(value)
	m.selected = value
	return m.listeners.fire(newEvent(origin, oldSelection, newSelection, newSelection, oldSelection))
}

func maybeAsSlice[T any](m o.Maybe[T]) []T {
	if m.IsDefined() {
		return []T{m.Value()}
	}
	return []T{}
}
