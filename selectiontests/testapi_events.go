package selectiontests

import (
	"context"
	"time"

	"github.com/uisync/selection-harness/framework/helpers"
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/mockui"
	"github.com/uisync/selection-harness/servicedef"

	"github.com/stretchr/testify/require"
)

const (
	eventTimeout       = time.Second * 5
	noMoreEventTimeout = time.Millisecond * 200
)

// EventSource is anything that delivers a component's selection events to the test.
type EventSource interface {
	RequireEvent(t helpers.TestContext, timeout time.Duration) servicedef.SelectionEventRep
	RequireNoMoreEvents(t helpers.TestContext, timeout time.Duration)
}

// ListenerCallbacks is a fixture that receives a component's listener callbacks. Pass it to
// NewComponent to set the component's callbackUri.
type ListenerCallbacks struct {
	service *mockui.ListenerCallbackService
}

// NewListenerCallbacks creates the fixture, requiring the listener-callbacks capability. It is
// closed when the test scope exits.
func NewListenerCallbacks(t *ldtest.T) *ListenerCallbacks {
	t.RequireCapability(servicedef.CapabilityListenerCallbacks)
	service := mockui.NewListenerCallbackService(requireContext(t).harness, t.DebugLogger())
	t.Defer(service.Close)
	return &ListenerCallbacks{service: service}
}

func (l *ListenerCallbacks) ApplyConfiguration(p *servicedef.CreateComponentParams) {
	p.CallbackURI = l.service.URL()
}

func (l *ListenerCallbacks) RequireEvent(t helpers.TestContext, timeout time.Duration) servicedef.SelectionEventRep {
	t.Helper()
	return helpers.RequireValueWithMessage(t, l.service.Events, timeout, "timed out waiting for listener callback")
}

func (l *ListenerCallbacks) RequireNoMoreEvents(t helpers.TestContext, timeout time.Duration) {
	t.Helper()
	helpers.RequireNoMoreValuesWithMessage(t, l.service.Events, timeout, "received unexpected listener callback")
}

// FailWith makes the component's listener fail with this message; "" makes it succeed again.
func (l *ListenerCallbacks) FailWith(message string) {
	l.service.FailWith(message)
}

// RequireClosed waits for the component to report that it was disposed of.
func (l *ListenerCallbacks) RequireClosed(t helpers.TestContext, timeout time.Duration) {
	t.Helper()
	select {
	case <-l.service.Closed:
	case <-time.After(timeout):
		t.Errorf("timed out waiting for close notification")
		t.FailNow()
	}
}

// SubscribeToEvents opens the component's event stream, requiring the event-stream capability.
// The stream is closed when the test scope exits.
func SubscribeToEvents(t *ldtest.T, c *ComponentClient) *mockui.EventStreamClient {
	t.RequireCapability(servicedef.CapabilityEventStream)
	client, err := mockui.SubscribeToEvents(context.Background(), c.URL(), eventTimeout, t.DebugLogger())
	require.NoError(t, err)
	t.Defer(client.Close)
	return client
}

// NewObservedComponent creates a component along with whichever source of selection events the
// service supports, preferring listener callbacks. The test is skipped if there is neither.
func NewObservedComponent(
	t *ldtest.T,
	kind servicedef.ComponentKind,
	configurers ...ComponentConfigurer,
) (*ComponentClient, EventSource) {
	caps := t.Capabilities()
	switch {
	case caps.Has(servicedef.CapabilityListenerCallbacks):
		callbacks := NewListenerCallbacks(t)
		return NewComponent(t, kind, append(configurers, callbacks)...), callbacks
	case caps.Has(servicedef.CapabilityEventStream):
		c := NewComponent(t, kind, configurers...)
		return c, SubscribeToEvents(t, c)
	default:
		t.SkipWithReason("component service has neither listener callbacks nor an event stream")
		return nil, nil
	}
}

// drainEvents collects events until none arrive for a short while.
func drainEvents(t *ldtest.T, events EventSource) []servicedef.SelectionEventRep {
	var ret []servicedef.SelectionEventRep
	for {
		recorder := &helpers.TestRecorder{}
		event := events.RequireEvent(recorder, noMoreEventTimeout)
		if recorder.Err() != nil {
			return ret
		}
		ret = append(ret, event)
	}
}
