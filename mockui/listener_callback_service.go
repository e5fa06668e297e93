package mockui

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/framework/harness"
	"github.com/uisync/selection-harness/servicedef"
	"github.com/uisync/selection-harness/servicedef/callbackfixtures"
)

const listenerEventQueueSize = 100

// ListenerCallbackService receives the selection events that a component's listener posts to
// its callbackUri. It can be told to fail, in which case the component's listener returns an
// error to whoever caused the change.
type ListenerCallbackService struct {
	endpoint *harness.MockEndpoint
	Events   chan servicedef.SelectionEventRep
	Closed   chan struct{}
	failWith error
	closing  sync.Once
	lock     sync.Mutex
}

// NewListenerCallbackService starts a mock endpoint for a component's callbacks.
func NewListenerCallbackService(
	testHarness *harness.TestHarness,
	logger framework.Logger,
) *ListenerCallbackService {
	l := &ListenerCallbackService{
		Events: make(chan servicedef.SelectionEventRep, listenerEventQueueSize),
		Closed: make(chan struct{}),
	}
	l.endpoint = testHarness.NewMockEndpoint(l.newHandler(logger), logger,
		harness.MockEndpointDescription("listener callback"))
	return l
}

func (l *ListenerCallbackService) newHandler(logger framework.Logger) *callbackService {
	c := newCallbackService(logger, "listener")
	failureBody := func(err error) interface{} {
		return callbackfixtures.ListenerFailureParams{Error: err.Error()}
	}
	c.addPath(callbackfixtures.ListenerCallbackPathEvent, l.receiveEvent, failureBody)
	c.addPath(callbackfixtures.ListenerCallbackPathClosed, func(*json.Decoder) error {
		l.closing.Do(func() { close(l.Closed) })
		return nil
	}, failureBody)
	return c
}

func (l *ListenerCallbackService) receiveEvent(decoder *json.Decoder) error {
	var event servicedef.SelectionEventRep
	if err := decoder.Decode(&event); err != nil {
		return err
	}
	l.Events <- event

	l.lock.Lock()
	defer l.lock.Unlock()
	return l.failWith
}

// FailWith makes the listener fail every subsequent event with this message. An empty message
// makes it succeed again.
func (l *ListenerCallbackService) FailWith(message string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if message == "" {
		l.failWith = nil
	} else {
		l.failWith = errors.New(message)
	}
}

// URL is the value to pass as a component's callbackUri.
func (l *ListenerCallbackService) URL() string {
	return l.endpoint.BaseURL()
}

func (l *ListenerCallbackService) Close() {
	l.endpoint.Close()
}
