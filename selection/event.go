package selection

import (
	o "github.com/uisync/selection-harness/framework/opt"
)

// Event describes one change to a selection model. It is created once per state-changing
// operation and is immutable; the accessors return copies.
type Event[T comparable] struct {
	origin       Origin
	added        []T
	removed      []T
	oldSelection []T
	newSelection []T
}

func newEvent[T comparable](origin Origin, oldSelection, newSelection, added, removed []T) Event[T] {
	return Event[T]{
		origin:       origin,
		added:        added,
		removed:      removed,
		oldSelection: oldSelection,
		newSelection: newSelection,
	}
}

// Origin returns where the change came from.
func (e Event[T]) Origin() Origin { return e.origin }

// IsUserOriginated returns true if the change was requested by a remote client.
func (e Event[T]) IsUserOriginated() bool { return e.origin == OriginUser }

// AddedItems returns the items that became selected, in selection order.
func (e Event[T]) AddedItems() []T { return copyItems(e.added) }

// RemovedItems returns the items that stopped being selected, in their previous selection order.
func (e Event[T]) RemovedItems() []T { return copyItems(e.removed) }

// OldSelection returns the complete selection before the change.
func (e Event[T]) OldSelection() []T { return copyItems(e.oldSelection) }

// NewSelection returns the complete selection after the change.
func (e Event[T]) NewSelection() []T { return copyItems(e.newSelection) }

// FirstSelectedItem returns the first item of the new selection, if any. For a single-select
// model this is the selected item.
func (e Event[T]) FirstSelectedItem() o.Maybe[T] {
	if len(e.newSelection) == 0 {
		return o.None[T]()
	}
	return o.Some(e.newSelection[0])
}

func copyItems[T any](items []T) []T {
	if len(items) == 0 {
		return []T{}
	}
	return append([]T(nil), items...)
}
