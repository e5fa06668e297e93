package component

import (
	"context"
	"errors"
	"fmt"

	"github.com/uisync/selection-harness/communicator"
	"github.com/uisync/selection-harness/framework"
	o "github.com/uisync/selection-harness/framework/opt"
	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/selection"
)

// DefaultRows is the number of visible rows of a new ListSelect.
const DefaultRows = 10

// ErrInvalidRows is returned by ListSelect.SetRows for a count less than 1.
var ErrInvalidRows = errors.New("rows must be at least 1")

// Options configures a new component. The zero value is usable.
type Options[T comparable] struct {
	Caption    string
	Logger     framework.Logger
	KeyOptions []keymapper.Option[T]
}

type base[T comparable, M selection.Model[T]] struct {
	caption string
	keys    *keymapper.KeyMapper[T]
	model   M
	data    *DataCommunicator[T]
	rpc     *communicator.Communicator[T]
}

func newBase[T comparable, M selection.Model[T]](model M, opts Options[T]) base[T, M] {
	logger := opts.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	keys := keymapper.NewKeyMapper[T](opts.KeyOptions...)
	return base[T, M]{
		caption: opts.Caption,
		keys:    keys,
		model:   model,
		data:    NewDataCommunicator[T](keys, model, logger),
		rpc:     communicator.NewCommunicator[T](keys, model, logger),
	}
}

func (b *base[T, M]) Caption() string           { return b.caption }
func (b *base[T, M]) SetCaption(caption string) { b.caption = caption }

// Select selects an item as a programmatic change.
func (b *base[T, M]) Select(item T) error { return b.model.Select(item) }

// Deselect deselects an item as a programmatic change.
func (b *base[T, M]) Deselect(item T) error { return b.model.Deselect(item) }

// DeselectAll clears the selection as a programmatic change.
func (b *base[T, M]) DeselectAll() error { return b.model.DeselectAll() }

func (b *base[T, M]) SelectedItems() []T { return b.model.SelectedItems() }

func (b *base[T, M]) SelectionModel() M { return b.model }

func (b *base[T, M]) AddSelectionListener(listener selection.Listener[T]) selection.Registration {
	return b.model.AddSelectionListener(listener)
}

func (b *base[T, M]) DataCommunicator() *DataCommunicator[T] { return b.data }

// KeyMapper returns the mapper holding the keys sent to the client for this component.
func (b *base[T, M]) KeyMapper() *keymapper.KeyMapper[T] { return b.keys }

// RPC is what a client calls to select or deselect by key.
func (b *base[T, M]) RPC() *communicator.Communicator[T] { return b.rpc }

func (b *base[T, M]) SetDataProvider(ctx context.Context, provider DataProvider[T]) error {
	return b.data.SetDataProvider(ctx, provider)
}

// SetItems replaces the data with an in-memory list.
func (b *base[T, M]) SetItems(ctx context.Context, items ...T) error {
	return b.data.SetDataProvider(ctx, NewListDataProvider(items...))
}

// RadioButtonGroup is a single-select component.
type RadioButtonGroup[T comparable] struct {
	base[T, *selection.SingleModel[T]]
}

func NewRadioButtonGroup[T comparable](opts Options[T]) *RadioButtonGroup[T] {
	return &RadioButtonGroup[T]{base: newBase[T](selection.NewSingleModel[T](), opts)}
}

// SelectedItem is the selected item, if there is one.
func (r *RadioButtonGroup[T]) SelectedItem() o.Maybe[T] {
	return r.model.SelectedItem()
}

// ListSelect is a multi-select component showing a fixed number of rows.
type ListSelect[T comparable] struct {
	base[T, *selection.MultiModel[T]]
	rows int
}

func NewListSelect[T comparable](opts Options[T]) *ListSelect[T] {
	return &ListSelect[T]{base: newBase[T](selection.NewMultiModel[T](), opts), rows: DefaultRows}
}

func (l *ListSelect[T]) Rows() int { return l.rows }

func (l *ListSelect[T]) SetRows(rows int) error {
	if rows < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRows, rows)
	}
	l.rows = rows
	return nil
}

// UpdateSelection adds and removes items in one programmatic change.
func (l *ListSelect[T]) UpdateSelection(added, removed []T) error {
	return l.model.UpdateSelection(added, removed)
}
