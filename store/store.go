package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// SelectionStore saves and restores selections by component ID within a prefix chosen when the
// store is created.
type SelectionStore interface {
	// Load returns the saved selection, and false if nothing was saved for the ID.
	Load(ctx context.Context, id string) ([]string, bool, error)
	// Save replaces the saved selection. An empty selection is saved, not deleted.
	Save(ctx context.Context, id string, selected []string) error
	// Delete removes the saved selection for one ID.
	Delete(ctx context.Context, id string) error
	// Reset removes everything saved under this store's prefix.
	Reset(ctx context.Context) error
	Close() error
}

// EncodeSelection is the stored form of a selection: a JSON array of strings.
func EncodeSelection(selected []string) (string, error) {
	if selected == nil {
		selected = []string{}
	}
	data, err := json.Marshal(selected)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func DecodeSelection(data string) ([]string, error) {
	var selected []string
	if err := json.Unmarshal([]byte(data), &selected); err != nil {
		return nil, fmt.Errorf("malformed stored selection %q: %w", data, err)
	}
	if selected == nil {
		selected = []string{}
	}
	return selected, nil
}
