package callbackfixtures

const (
	// ListenerCallbackPathEvent receives one POST per selection event, with a
	// servicedef.SelectionEventRep body, in the order the listener saw them.
	ListenerCallbackPathEvent = "/event"

	// ListenerCallbackPathClosed receives one POST when the component is closed.
	ListenerCallbackPathClosed = "/closed"
)

// ListenerFailureParams can be returned by the harness from the event callback to make the
// component's listener fail, for testing error propagation.
type ListenerFailureParams struct {
	Error string `json:"error"`
}
