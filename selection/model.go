package selection

// Model is the behavior shared by SingleModel and MultiModel.
type Model[T comparable] interface {
	// Select makes an item selected, as a programmatic change.
	Select(item T) error
	// Deselect makes an item not selected, as a programmatic change.
	Deselect(item T) error
	// DeselectAll clears the selection, as a programmatic change.
	DeselectAll() error

	// SelectFrom is the same as Select but with an explicit origin.
	SelectFrom(origin Origin, item T) error
	// DeselectFrom is the same as Deselect but with an explicit origin.
	DeselectFrom(origin Origin, item T) error
	// DeselectAllFrom is the same as DeselectAll but with an explicit origin.
	DeselectAllFrom(origin Origin) error

	// SelectedItems returns a snapshot of the current selection in selection order.
	SelectedItems() []T
	// IsSelected returns true if the item is currently selected.
	IsSelected(item T) bool
	// AddSelectionListener registers a listener for all subsequent changes.
	AddSelectionListener(listener Listener[T]) Registration
}

// BatchModel is implemented by models that can apply several additions and removals as a single
// change.
type BatchModel[T comparable] interface {
	Model[T]
	UpdateSelectionFrom(origin Origin, added, removed []T) error
}
