// Package communicator bridges remote selection requests, which refer to items by key, to a
// selection model.
package communicator

import (
	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/selection"
)

// SelectionServerRPC is the remote surface of a selection component: the only two operations a
// client can invoke, each taking a key previously sent to the client.
type SelectionServerRPC interface {
	Select(key string) error
	Deselect(key string) error
}

// ItemResolver turns a key back into an item. It is satisfied by *keymapper.KeyMapper.
type ItemResolver[T comparable] interface {
	Item(key string) (T, error)
}

// Communicator applies remote requests to a model. Every change it makes is tagged as
// OriginUser; changes that the owning component makes on the model directly are not affected.
type Communicator[T comparable] struct {
	keys   ItemResolver[T]
	model  selection.Model[T]
	logger framework.Logger
}

// NewCommunicator creates a Communicator. The logger may be nil.
func NewCommunicator[T comparable](
	keys ItemResolver[T],
	model selection.Model[T],
	logger framework.Logger,
) *Communicator[T] {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Communicator[T]{keys: keys, model: model, logger: logger}
}

// Select implements SelectionServerRPC.
func (c *Communicator[T]) Select(key string) error { return c.OnRemoteSelect(key) }

// Deselect implements SelectionServerRPC.
func (c *Communicator[T]) Deselect(key string) error { return c.OnRemoteDeselect(key) }

// OnRemoteSelect resolves the key and selects the item. If the key is unknown, it returns a
// keymapper.UnknownKeyError and the model is not touched.
func (c *Communicator[T]) OnRemoteSelect(key string) error {
	item, err := c.keys.Item(key)
	if err != nil {
		c.logger.Printf("Rejected remote select: %s", err)
		return err
	}
	c.logger.Printf("Remote select of key %q", key)
	return c.model.SelectFrom(selection.OriginUser, item)
}

// OnRemoteDeselect resolves the key and deselects the item. If the key is unknown, it returns a
// keymapper.UnknownKeyError and the model is not touched.
func (c *Communicator[T]) OnRemoteDeselect(key string) error {
	item, err := c.keys.Item(key)
	if err != nil {
		c.logger.Printf("Rejected remote deselect: %s", err)
		return err
	}
	c.logger.Printf("Remote deselect of key %q", key)
	return c.model.DeselectFrom(selection.OriginUser, item)
}

// OnRemoteUpdateSelection applies a batch of selected and deselected keys as one change, for
// multi-select clients. All keys are resolved before anything is applied, so one unknown key
// rejects the whole batch. Models that do not support batches receive the changes one at a time.
func (c *Communicator[T]) OnRemoteUpdateSelection(addedKeys, removedKeys []string) error {
	added, err := c.resolveAll(addedKeys)
	if err != nil {
		c.logger.Printf("Rejected remote selection update: %s", err)
		return err
	}
	removed, err := c.resolveAll(removedKeys)
	if err != nil {
		c.logger.Printf("Rejected remote selection update: %s", err)
		return err
	}
	c.logger.Printf("Remote selection update: +%v -%v", addedKeys, removedKeys)
	if batch, ok := c.model.(selection.BatchModel[T]); ok {
		return batch.UpdateSelectionFrom(selection.OriginUser, added, removed)
	}
	for _, item := range removed {
		if err := c.model.DeselectFrom(selection.OriginUser, item); err != nil {
			return err
		}
	}
	for _, item := range added {
		if err := c.model.SelectFrom(selection.OriginUser, item); err != nil {
			return err
		}
	}
	return nil
}

func (c *Communicator[T]) resolveAll(keys []string) ([]T, error) {
	items := make([]T, 0, len(keys))
	for _, key := range keys {
		item, err := c.keys.Item(key)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
