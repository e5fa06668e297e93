package testservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/uisync/selection-harness/communicator"
	"github.com/uisync/selection-harness/component"
	"github.com/uisync/selection-harness/framework"
	o "github.com/uisync/selection-harness/framework/opt"
	"github.com/uisync/selection-harness/selection"
	"github.com/uisync/selection-harness/servicedef"
	"github.com/uisync/selection-harness/store"

	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
)

// errBadRequest marks errors caused by invalid parameters.
var errBadRequest = errors.New("bad request")

// selectComponent is what RadioButtonGroup and ListSelect have in common.
type selectComponent interface {
	Select(item string) error
	Deselect(item string) error
	DeselectAll() error
	SelectedItems() []string
	Caption() string
	AddSelectionListener(listener selection.Listener[string]) selection.Registration
	DataCommunicator() *component.DataCommunicator[string]
	RPC() *communicator.Communicator[string]
	SetDataProvider(ctx context.Context, provider component.DataProvider[string]) error
}

// componentEntity is one component hosted by the service, with everything attached to it.
type componentEntity struct {
	id          string
	kind        servicedef.ComponentKind
	comp        selectComponent
	list        *component.ListSelect[string]
	logRequests bool
	requests    *component.LoggingDataProvider[string]
	sequence    atomic.Int32
	persistence o.Maybe[servicedef.PersistenceParams]
	store       store.SelectionStore
	callbacks   *callbackClient
	streams     *eventStreams
	logger      framework.Logger
	lock        sync.Mutex
}

func newComponentEntity(
	ctx context.Context,
	id string,
	params servicedef.CreateComponentParams,
	stores *store.Factory,
	streams *eventStreams,
	callbacks *callbackClient,
	logger framework.Logger,
) (*componentEntity, error) {
	e := &componentEntity{
		id:          id,
		kind:        params.Kind,
		logRequests: params.LogDataRequests,
		persistence: params.Persistence,
		streams:     streams,
		callbacks:   callbacks,
		logger:      logger,
	}
	opts := component.Options[string]{Caption: params.Caption, Logger: logger}
	switch params.Kind {
	case servicedef.KindRadioButtonGroup:
		if params.Rows.IsDefined() {
			return nil, fmt.Errorf("%w: rows is only valid for %s", errBadRequest, servicedef.KindListSelect)
		}
		e.comp = component.NewRadioButtonGroup(opts)
	case servicedef.KindListSelect:
		e.list = component.NewListSelect(opts)
		if params.Rows.IsDefined() {
			if err := e.list.SetRows(params.Rows.Value()); err != nil {
				return nil, fmt.Errorf("%w: %s", errBadRequest, err)
			}
		}
		e.comp = e.list
	default:
		return nil, fmt.Errorf("%w: unknown component kind %q", errBadRequest, params.Kind)
	}

	if err := e.setItems(ctx, params.Items); err != nil {
		return nil, err
	}
	for _, item := range params.InitialSelection {
		if err := e.comp.Select(item); err != nil {
			return nil, fmt.Errorf("%w: %s", errBadRequest, err)
		}
	}

	if params.Persistence.IsDefined() {
		p := params.Persistence.Value()
		s, err := stores.Open(ctx, p.Store, p.Prefix)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errBadRequest, err)
		}
		e.store = s
		if err := e.restoreSelection(ctx, p.ID); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	e.comp.AddSelectionListener(e.onSelectionChange)
	streams.register(id, func() int { return int(e.sequence.Load()) })
	return e, nil
}

func (e *componentEntity) setItems(ctx context.Context, items []string) error {
	var provider component.DataProvider[string] = component.NewListDataProvider(items...)
	if e.logRequests {
		e.requests = component.NewLoggingDataProvider(provider, e.logger)
		provider = e.requests
	}
	return e.comp.SetDataProvider(ctx, provider)
}

func (e *componentEntity) restoreSelection(ctx context.Context, persistenceID string) error {
	saved, found, err := e.store.Load(ctx, persistenceID)
	if err != nil {
		return fmt.Errorf("loading saved selection: %w", err)
	}
	if !found {
		return nil
	}
	e.logger.Printf("Restoring saved selection %v", saved)
	if err := e.comp.DeselectAll(); err != nil {
		return err
	}
	for _, item := range saved {
		if err := e.comp.Select(item); err != nil {
			return err
		}
	}
	return nil
}

func (e *componentEntity) toEventRep(event selection.Event[string]) servicedef.SelectionEventRep {
	origin := servicedef.OriginProgrammatic
	if event.IsUserOriginated() {
		origin = servicedef.OriginUser
	}
	return servicedef.SelectionEventRep{
		ComponentID:  e.id,
		Sequence:     int(e.sequence.Add(1)),
		Origin:       origin,
		Added:        event.AddedItems(),
		Removed:      event.RemovedItems(),
		OldSelection: event.OldSelection(),
		NewSelection: event.NewSelection(),
		Timestamp:    ldtime.UnixMillisNow(),
	}
}

// onSelectionChange is the entity's only listener. It saves, then calls back, then publishes,
// and stops at the first failure, which is returned to whoever made the change.
func (e *componentEntity) onSelectionChange(event selection.Event[string]) error {
	rep := e.toEventRep(event)
	if e.store != nil {
		if err := e.store.Save(context.Background(), e.persistence.Value().ID, rep.NewSelection); err != nil {
			return fmt.Errorf("saving selection: %w", err)
		}
	}
	if e.callbacks != nil {
		if err := e.callbacks.postEvent(rep); err != nil {
			return err
		}
	}
	e.streams.publish(rep)
	return nil
}

func (e *componentEntity) doCommand(ctx context.Context, params servicedef.CommandParams) (interface{}, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.logger.Printf("Command %q", params.Command)
	switch params.Command {
	case servicedef.CommandSelect:
		return nil, e.comp.RPC().OnRemoteSelect(params.Key)
	case servicedef.CommandDeselect:
		return nil, e.comp.RPC().OnRemoteDeselect(params.Key)
	case servicedef.CommandUpdateSelection:
		if !params.UpdateSelection.IsDefined() {
			return nil, fmt.Errorf("%w: updateSelection parameters are required", errBadRequest)
		}
		if e.list == nil {
			return nil, fmt.Errorf("%w: %s does not support multiple selection", errBadRequest, e.kind)
		}
		p := params.UpdateSelection.Value()
		return nil, e.comp.RPC().OnRemoteUpdateSelection(p.AddedKeys, p.RemovedKeys)
	case servicedef.CommandAPISelect:
		return nil, e.comp.Select(params.Item)
	case servicedef.CommandAPIDeselect:
		return nil, e.comp.Deselect(params.Item)
	case servicedef.CommandAPIDeselectAll:
		return nil, e.comp.DeselectAll()
	case servicedef.CommandGetState:
		return e.state(), nil
	case servicedef.CommandSetItems:
		if !params.SetItems.IsDefined() {
			return nil, fmt.Errorf("%w: setItems parameters are required", errBadRequest)
		}
		return nil, e.setItems(ctx, params.SetItems.Value().Items)
	case servicedef.CommandSetRows:
		if e.list == nil {
			return nil, fmt.Errorf("%w: %s has no rows setting", errBadRequest, e.kind)
		}
		if err := e.list.SetRows(params.Rows.OrElse(0)); err != nil {
			return nil, fmt.Errorf("%w: %s", errBadRequest, err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown command %q", errBadRequest, params.Command)
	}
}

func (e *componentEntity) state() servicedef.ComponentState {
	rows := e.comp.DataCommunicator().Rows()
	s := servicedef.ComponentState{
		Kind:     e.kind,
		Caption:  e.comp.Caption(),
		Items:    make([]servicedef.RowRep, 0, len(rows)),
		Selected: e.comp.SelectedItems(),
	}
	for _, r := range rows {
		s.Items = append(s.Items, servicedef.RowRep{Key: r.Key, Item: r.Item, Selected: r.Selected})
	}
	if e.list != nil {
		s.Rows = o.Some(e.list.Rows())
	}
	if e.requests != nil {
		s.DataRequests = o.Some(e.requests.Requests())
	}
	return s
}

func (e *componentEntity) close() {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.streams.unregister(e.id)
	if e.callbacks != nil {
		e.callbacks.postClosed()
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Printf("Error closing store: %s", err)
		}
	}
	e.logger.Printf("Closed")
}
