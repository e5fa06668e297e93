package component

import (
	"context"
	"fmt"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/selection"
)

// Row is one item as a client sees it.
type Row[T comparable] struct {
	Key      string
	Item     T
	Selected bool
}

// DataCommunicator holds the items a component currently shows and the keys it has sent for
// them. Items are fetched once each time the data provider changes (or on Refresh); selection
// changes never cause a fetch.
//
// When new data no longer contains an item, its key is released and, if it was selected, it
// is deselected with OriginProgrammatic.
type DataCommunicator[T comparable] struct {
	keys     *keymapper.KeyMapper[T]
	model    selection.Model[T]
	provider DataProvider[T]
	items    []T
	logger   framework.Logger
}

func NewDataCommunicator[T comparable](
	keys *keymapper.KeyMapper[T],
	model selection.Model[T],
	logger framework.Logger,
) *DataCommunicator[T] {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &DataCommunicator[T]{keys: keys, model: model, logger: logger}
}

// SetDataProvider switches to a new provider and fetches from it once.
func (d *DataCommunicator[T]) SetDataProvider(ctx context.Context, provider DataProvider[T]) error {
	d.provider = provider
	return d.Refresh(ctx)
}

// DataProvider returns the current provider, or nil.
func (d *DataCommunicator[T]) DataProvider() DataProvider[T] {
	return d.provider
}

// Refresh fetches from the current provider again.
func (d *DataCommunicator[T]) Refresh(ctx context.Context) error {
	var fetched []T
	if d.provider != nil {
		var err error
		if fetched, err = d.provider.Fetch(ctx); err != nil {
			return fmt.Errorf("fetching items: %w", err)
		}
	}
	for _, item := range fetched {
		if err := d.keys.Validate(item); err != nil {
			return err
		}
	}
	for _, item := range fetched {
		if _, err := d.keys.Key(item); err != nil {
			return err
		}
	}

	present := make(map[T]struct{}, len(fetched))
	for _, item := range fetched {
		present[item] = struct{}{}
	}
	var vanished, vanishedSelected []T
	for _, item := range d.items {
		if _, ok := present[item]; ok {
			continue
		}
		vanished = append(vanished, item)
		if d.model.IsSelected(item) {
			vanishedSelected = append(vanishedSelected, item)
		}
	}
	d.items = fetched
	d.logger.Printf("Fetched %d items, %d no longer present", len(fetched), len(vanished))

	for _, item := range vanished {
		d.keys.Remove(item)
	}
	return d.deselectVanished(vanishedSelected)
}

func (d *DataCommunicator[T]) deselectVanished(items []T) error {
	if len(items) == 0 {
		return nil
	}
	if batch, ok := d.model.(selection.BatchModel[T]); ok {
		return batch.UpdateSelectionFrom(selection.OriginProgrammatic, nil, items)
	}
	for _, item := range items {
		if err := d.model.DeselectFrom(selection.OriginProgrammatic, item); err != nil {
			return err
		}
	}
	return nil
}

// Items returns the most recently fetched items in provider order.
func (d *DataCommunicator[T]) Items() []T {
	return append([]T(nil), d.items...)
}

// Rows returns the current items with their keys and selection state.
func (d *DataCommunicator[T]) Rows() []Row[T] {
	rows := make([]Row[T], 0, len(d.items))
	for _, item := range d.items {
		key, err := d.keys.Key(item)
		if err != nil {
			continue
		}
		rows = append(rows, Row[T]{Key: key, Item: item, Selected: d.model.IsSelected(item)})
	}
	return rows
}
