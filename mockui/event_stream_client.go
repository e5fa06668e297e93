package mockui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/framework/helpers"
	o "github.com/uisync/selection-harness/framework/opt"
	"github.com/uisync/selection-harness/servicedef"

	"github.com/launchdarkly/eventsource"
)

// Event names used on a component's event stream.
const (
	StreamEventOpen      = "open"
	StreamEventSelection = "selection"
)

// EventStreamClient is subscribed to one component's event stream.
type EventStreamClient struct {
	stream *eventsource.Stream
	logger framework.Logger
}

// SubscribeToEvents connects to a component's event stream and waits for the stream's "open"
// event, so any change made after this returns will be delivered to the client.
func SubscribeToEvents(
	ctx context.Context,
	componentURL string,
	timeout time.Duration,
	logger framework.Logger,
) (*EventStreamClient, error) {
	url := strings.TrimSuffix(componentURL, "/") + "/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	stream, err := eventsource.SubscribeWithRequestAndOptions(req,
		eventsource.StreamOptionInitialRetry(time.Millisecond*100),
		eventsource.StreamOptionErrorHandler(func(err error) eventsource.StreamErrorHandlerResult {
			logger.Printf("Event stream error: %s", err)
			return eventsource.StreamErrorHandlerResult{CloseNow: true}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("could not subscribe to %s: %w", url, err)
	}
	c := &EventStreamClient{stream: stream, logger: logger}

	first := helpers.TryReceive(stream.Events, timeout)
	if !first.IsDefined() {
		c.Close()
		return nil, fmt.Errorf("timed out waiting for %q event from %s", StreamEventOpen, url)
	}
	if first.Value().Event() != StreamEventOpen {
		c.Close()
		return nil, fmt.Errorf("expected %q event but got %q", StreamEventOpen, first.Value().Event())
	}
	logger.Printf("Subscribed to %s: %s", url, first.Value().Data())
	return c, nil
}

// AwaitEvent returns the next selection event, or None if none arrives within the timeout.
func (c *EventStreamClient) AwaitEvent(timeout time.Duration) (o.Maybe[servicedef.SelectionEventRep], error) {
	received := helpers.TryReceive(c.stream.Events, timeout)
	if !received.IsDefined() {
		return o.None[servicedef.SelectionEventRep](), nil
	}
	e := received.Value()
	c.logger.Printf("Received %s event: %s", e.Event(), e.Data())
	if e.Event() != StreamEventSelection {
		return o.None[servicedef.SelectionEventRep](), fmt.Errorf("unexpected event %q", e.Event())
	}
	var event servicedef.SelectionEventRep
	if err := json.Unmarshal([]byte(e.Data()), &event); err != nil {
		return o.None[servicedef.SelectionEventRep](), fmt.Errorf("malformed selection event: %w", err)
	}
	return o.Some(event), nil
}

// RequireEvent fails the test if no selection event arrives within the timeout.
func (c *EventStreamClient) RequireEvent(t helpers.TestContext, timeout time.Duration) servicedef.SelectionEventRep {
	t.Helper()
	event, err := c.AwaitEvent(timeout)
	if err != nil {
		t.Errorf("%s", err)
		t.FailNow()
	}
	if !event.IsDefined() {
		t.Errorf("timed out waiting for selection event")
		t.FailNow()
	}
	return event.Value()
}

// RequireNoMoreEvents fails the test if a selection event arrives within the timeout.
func (c *EventStreamClient) RequireNoMoreEvents(t helpers.TestContext, timeout time.Duration) {
	t.Helper()
	event, err := c.AwaitEvent(timeout)
	if err != nil || event.IsDefined() {
		t.Errorf("expected no more events, but got %s (error: %v)", event, err)
		t.FailNow()
	}
}

func (c *EventStreamClient) Close() {
	c.stream.Close()
}
