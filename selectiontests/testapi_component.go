package selectiontests

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/uisync/selection-harness/framework/harness"
	"github.com/uisync/selection-harness/framework/ldtest"
	o "github.com/uisync/selection-harness/framework/opt"
	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/servicedef"

	"github.com/stretchr/testify/require"
)

// ComponentConfigurer modifies the parameters for NewComponent. Test fixtures such as
// ListenerCallbacks implement it, so they can be passed directly to NewComponent.
type ComponentConfigurer interface {
	ApplyConfiguration(*servicedef.CreateComponentParams)
}

type componentConfigurerFunc func(*servicedef.CreateComponentParams)

func (f componentConfigurerFunc) ApplyConfiguration(p *servicedef.CreateComponentParams) { f(p) }

func WithItems(items ...string) ComponentConfigurer {
	return componentConfigurerFunc(func(p *servicedef.CreateComponentParams) { p.Items = items })
}

func WithCaption(caption string) ComponentConfigurer {
	return componentConfigurerFunc(func(p *servicedef.CreateComponentParams) { p.Caption = caption })
}

func WithRows(rows int) ComponentConfigurer {
	return componentConfigurerFunc(func(p *servicedef.CreateComponentParams) { p.Rows = o.Some(rows) })
}

func WithInitialSelection(items ...string) ComponentConfigurer {
	return componentConfigurerFunc(func(p *servicedef.CreateComponentParams) { p.InitialSelection = items })
}

// WithDataRequestLogging makes the component count its data provider fetches.
func WithDataRequestLogging() ComponentConfigurer {
	return componentConfigurerFunc(func(p *servicedef.CreateComponentParams) { p.LogDataRequests = true })
}

func WithPersistence(params servicedef.PersistenceParams) ComponentConfigurer {
	return componentConfigurerFunc(func(p *servicedef.CreateComponentParams) { p.Persistence = o.Some(params) })
}

// ComponentClient controls one component in the component service.
type ComponentClient struct {
	kind   servicedef.ComponentKind
	entity *harness.ServiceEntity
}

// NewComponent tells the component service to create a component. It requires the capability
// for the component kind, so the test is skipped if the service does not have it. Any error
// terminates the test. The component is deleted when the test scope exits.
func NewComponent(
	t *ldtest.T,
	kind servicedef.ComponentKind,
	configurers ...ComponentConfigurer,
) *ComponentClient {
	t.RequireCapability(capabilityForKind(kind))

	params := servicedef.CreateComponentParams{Kind: kind, Tag: t.ID().String()}
	for _, c := range configurers {
		c.ApplyConfiguration(&params)
	}
	entity, err := requireContext(t).harness.NewServiceEntity(params, string(kind), t.DebugLogger())
	require.NoError(t, err)
	t.Defer(func() { _ = entity.Close() })

	return &ComponentClient{kind: kind, entity: entity}
}

func capabilityForKind(kind servicedef.ComponentKind) string {
	if kind == servicedef.KindRadioButtonGroup {
		return servicedef.CapabilitySingleSelect
	}
	return servicedef.CapabilityMultiSelect
}

func (c *ComponentClient) Kind() servicedef.ComponentKind { return c.kind }

// URL is the component's resource URL in the service.
func (c *ComponentClient) URL() string { return c.entity.ResourceURL() }

// TryCommand sends a command and returns any error. A 400 response caused by an unknown key
// is reported as an error matching keymapper.ErrUnknownKey.
func (c *ComponentClient) TryCommand(t *ldtest.T, params servicedef.CommandParams) error {
	return translateServiceError(c.entity.SendCommandWithParams(params, t.DebugLogger(), nil))
}

// Command sends a command, terminating the test if it fails.
func (c *ComponentClient) Command(t *ldtest.T, params servicedef.CommandParams) {
	require.NoError(t, c.TryCommand(t, params))
}

// Select is a remote select by key, as a client would send it.
func (c *ComponentClient) Select(t *ldtest.T, key string) error {
	return c.TryCommand(t, servicedef.CommandParams{Command: servicedef.CommandSelect, Key: key})
}

// Deselect is a remote deselect by key.
func (c *ComponentClient) Deselect(t *ldtest.T, key string) error {
	return c.TryCommand(t, servicedef.CommandParams{Command: servicedef.CommandDeselect, Key: key})
}

// UpdateSelection is a remote batch change by key.
func (c *ComponentClient) UpdateSelection(t *ldtest.T, addedKeys, removedKeys []string) error {
	return c.TryCommand(t, servicedef.CommandParams{
		Command: servicedef.CommandUpdateSelection,
		UpdateSelection: o.Some(servicedef.UpdateSelectionParams{
			AddedKeys:   addedKeys,
			RemovedKeys: removedKeys,
		}),
	})
}

// APISelect selects an item the way application code would.
func (c *ComponentClient) APISelect(t *ldtest.T, item string) error {
	return c.TryCommand(t, servicedef.CommandParams{Command: servicedef.CommandAPISelect, Item: item})
}

func (c *ComponentClient) APIDeselect(t *ldtest.T, item string) error {
	return c.TryCommand(t, servicedef.CommandParams{Command: servicedef.CommandAPIDeselect, Item: item})
}

func (c *ComponentClient) APIDeselectAll(t *ldtest.T) error {
	return c.TryCommand(t, servicedef.CommandParams{Command: servicedef.CommandAPIDeselectAll})
}

// SetItems replaces the component's data provider.
func (c *ComponentClient) SetItems(t *ldtest.T, items ...string) {
	if items == nil {
		items = []string{}
	}
	c.Command(t, servicedef.CommandParams{
		Command:  servicedef.CommandSetItems,
		SetItems: o.Some(servicedef.SetItemsParams{Items: items}),
	})
}

// State returns the component's state, terminating the test if the request fails.
func (c *ComponentClient) State(t *ldtest.T) servicedef.ComponentState {
	var state servicedef.ComponentState
	err := c.entity.SendCommandWithParams(servicedef.CommandParams{Command: servicedef.CommandGetState},
		t.DebugLogger(), &state)
	require.NoError(t, err)
	return state
}

// SelectedItems is a shortcut for State(t).Selected.
func (c *ComponentClient) SelectedItems(t *ldtest.T) []string {
	return c.State(t).Selected
}

// KeyFor returns the key the component assigned to an item, terminating the test if there is none.
func (c *ComponentClient) KeyFor(t *ldtest.T, item string) string {
	key, ok := c.State(t).KeyFor(item)
	if !ok {
		t.Errorf("component has no key for item %q", item)
		t.FailNow()
	}
	return key
}

func translateServiceError(err error) error {
	var se harness.ServiceError
	if errors.As(err, &se) && se.StatusCode == http.StatusBadRequest {
		switch {
		case strings.Contains(se.Body, keymapper.ErrUnknownKey.Error()):
			return fmt.Errorf("%w (%s)", keymapper.ErrUnknownKey, se.Body)
		case strings.Contains(se.Body, keymapper.ErrInvalidItem.Error()):
			return fmt.Errorf("%w (%s)", keymapper.ErrInvalidItem, se.Body)
		}
	}
	return err
}

// remoteTarget lets a scenario drive a ComponentClient.
type remoteTarget struct {
	t *ldtest.T
	c *ComponentClient
}

func (r remoteTarget) Select(item string) error   { return r.c.APISelect(r.t, item) }
func (r remoteTarget) Deselect(item string) error { return r.c.APIDeselect(r.t, item) }
func (r remoteTarget) DeselectAll() error         { return r.c.APIDeselectAll(r.t) }
func (r remoteTarget) RemoteSelect(key string) error {
	return r.c.Select(r.t, key)
}
func (r remoteTarget) RemoteDeselect(key string) error {
	return r.c.Deselect(r.t, key)
}
func (r remoteTarget) RemoteUpdateSelection(addedKeys, removedKeys []string) error {
	return r.c.UpdateSelection(r.t, addedKeys, removedKeys)
}

func (r remoteTarget) KeyFor(item string) (string, error) {
	key, ok := r.c.State(r.t).KeyFor(item)
	if !ok {
		return "", keymapper.UnknownKeyError{Key: item}
	}
	return key, nil
}
