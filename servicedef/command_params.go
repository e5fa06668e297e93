package servicedef

import (
	o "github.com/uisync/selection-harness/framework/opt"
)

const (
	// CommandSelect and CommandDeselect act as the client would, by key.
	CommandSelect          = "select"
	CommandDeselect        = "deselect"
	CommandUpdateSelection = "updateSelection"

	// The api* commands act on the component directly, by item.
	CommandAPISelect      = "apiSelect"
	CommandAPIDeselect    = "apiDeselect"
	CommandAPIDeselectAll = "apiDeselectAll"

	CommandGetState = "getState"
	CommandSetItems = "setItems"
	CommandSetRows  = "setRows"
)

// CreateComponentParams is the body of POST to the service's base URL.
type CreateComponentParams struct {
	Kind    ComponentKind `json:"kind"`
	Tag     string        `json:"tag,omitempty"`
	Items   []string      `json:"items"`
	Caption string        `json:"caption,omitempty"`
	Rows    o.Maybe[int]  `json:"rows,omitempty"`

	// InitialSelection is applied before any listener is attached, so it produces no events.
	InitialSelection []string `json:"initialSelection,omitempty"`

	// LogDataRequests counts fetches from the data provider; see ComponentState.DataRequests.
	LogDataRequests bool `json:"logDataRequests,omitempty"`

	CallbackURI string                     `json:"callbackUri,omitempty"`
	Persistence o.Maybe[PersistenceParams] `json:"persistence,omitempty"`
}

// PersistenceParams makes a component restore its selection from a store on creation and
// save it after every change.
type PersistenceParams struct {
	Store StoreKind `json:"store"`
	// Prefix namespaces the stored data; the harness uses a unique one per test.
	Prefix string `json:"prefix"`
	// ID identifies the component within the prefix.
	ID string `json:"id"`
}

// CommandParams is the body of POST to a component's URL.
type CommandParams struct {
	Command         string                         `json:"command"`
	Key             string                         `json:"key,omitempty"`
	Item            string                         `json:"item,omitempty"`
	UpdateSelection o.Maybe[UpdateSelectionParams] `json:"updateSelection,omitempty"`
	SetItems        o.Maybe[SetItemsParams]        `json:"setItems,omitempty"`
	Rows            o.Maybe[int]                   `json:"rows,omitempty"`
}

type UpdateSelectionParams struct {
	AddedKeys   []string `json:"addedKeys"`
	RemovedKeys []string `json:"removedKeys"`
}

type SetItemsParams struct {
	Items []string `json:"items"`
}

// ComponentState is the response to CommandGetState.
type ComponentState struct {
	Kind     ComponentKind `json:"kind"`
	Caption  string        `json:"caption,omitempty"`
	Rows     o.Maybe[int]  `json:"rows,omitempty"`
	Items    []RowRep      `json:"items"`
	Selected []string      `json:"selected"`

	// DataRequests is how many times the current data provider has been fetched from, if the
	// component was created with LogDataRequests.
	DataRequests o.Maybe[int] `json:"dataRequests,omitempty"`
}

// RowRep is one item of ComponentState, with the key a client would use for it.
type RowRep struct {
	Key      string `json:"key"`
	Item     string `json:"item"`
	Selected bool   `json:"selected"`
}

// KeyFor returns the key of an item, or false if the component is not showing it.
func (s ComponentState) KeyFor(item string) (string, bool) {
	for _, r := range s.Items {
		if r.Item == item {
			return r.Key, true
		}
	}
	return "", false
}
