package testservice

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/servicedef"

	"github.com/launchdarkly/eventsource"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// SSE event names.
const (
	StreamEventOpen      = "open"
	StreamEventSelection = "selection"
)

type eventSourceLogger struct {
	logger framework.Logger
}

func (l eventSourceLogger) Println(args ...interface{}) {
	l.logger.Printf("%s", fmt.Sprintln(args...))
}

func (l eventSourceLogger) Printf(format string, args ...interface{}) {
	l.logger.Printf(format, args...)
}

// eventStreams serves one SSE channel per component, named by component ID.
type eventStreams struct {
	server *eventsource.Server
	logger framework.Logger
}

func newEventStreams(logger framework.Logger) *eventStreams {
	server := eventsource.NewServer()
	server.ReplayAll = true
	server.Logger = eventSourceLogger{logger}
	return &eventStreams{server: server, logger: logger}
}

// register makes a component's channel available. Every new subscriber first receives an
// "open" event, so that a client knows it is subscribed before it causes any changes.
func (s *eventStreams) register(componentID string, lastSequence func() int) {
	s.server.Register(componentID, openEventRepository{componentID: componentID, lastSequence: lastSequence})
}

func (s *eventStreams) unregister(componentID string) {
	s.server.Unregister(componentID, true)
}

func (s *eventStreams) publish(event servicedef.SelectionEventRep) {
	e := streamEvent{
		name: StreamEventSelection,
		id:   strconv.Itoa(event.Sequence),
		data: event,
	}
	s.logger.Printf("Publishing %s event to stream %s: %s", e.name, event.ComponentID, e.Data())
	s.server.Publish([]string{event.ComponentID}, e)
}

func (s *eventStreams) handler(componentID string) http.HandlerFunc {
	return s.server.Handler(componentID)
}

func (s *eventStreams) close() {
	s.server.Close()
}

type openEventRepository struct {
	componentID  string
	lastSequence func() int
}

func (r openEventRepository) Replay(channel, id string) chan eventsource.Event {
	ch := make(chan eventsource.Event, 1)
	ch <- streamEvent{
		name: StreamEventOpen,
		data: ldvalue.ObjectBuild().
			SetString("componentId", r.componentID).
			SetInt("sequence", r.lastSequence()).
			Build(),
	}
	close(ch)
	return ch
}

type streamEvent struct {
	name string
	id   string
	data interface{ MarshalJSON() ([]byte, error) }
}

func (e streamEvent) Event() string { return e.name }
func (e streamEvent) Id() string    { return e.id } //nolint:stylecheck
func (e streamEvent) Data() string {
	data, _ := e.data.MarshalJSON()
	return string(data)
}
