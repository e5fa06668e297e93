package mockui

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/framework/helpers"
	"github.com/uisync/selection-harness/servicedef"
	"github.com/uisync/selection-harness/servicedef/callbackfixtures"
	"github.com/uisync/selection-harness/testservice"

	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = time.Second * 5

func post(t *testing.T, url string, body interface{}) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp
}

func TestListenerCallbackHandler(t *testing.T) {
	l := &ListenerCallbackService{
		Events: make(chan servicedef.SelectionEventRep, 10),
		Closed: make(chan struct{}),
	}
	httphelpers.WithServer(l.newHandler(framework.NullLogger()), func(server *httptest.Server) {
		event := servicedef.SelectionEventRep{Sequence: 1, Origin: servicedef.OriginUser, NewSelection: []string{"a"}}
		resp := post(t, server.URL+callbackfixtures.ListenerCallbackPathEvent, event)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		received := helpers.RequireValue(t, l.Events, testTimeout)
		assert.Equal(t, event.NewSelection, received.NewSelection)
		assert.True(t, received.IsUserOriginated())

		l.FailWith("rejected")
		resp = post(t, server.URL+callbackfixtures.ListenerCallbackPathEvent, event)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		helpers.RequireValue(t, l.Events, testTimeout)

		l.FailWith("")
		resp = post(t, server.URL+callbackfixtures.ListenerCallbackPathEvent, event)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		helpers.RequireValue(t, l.Events, testTimeout)

		post(t, server.URL+callbackfixtures.ListenerCallbackPathClosed, nil)
		select {
		case <-l.Closed:
		case <-time.After(testTimeout):
			assert.Fail(t, "timed out waiting for close notification")
		}
	})
}

func TestEventStreamClientReceivesSelectionEvents(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	defer mockLog.DumpIfTestFailed(t)
	service := testservice.NewService(testservice.Config{CallbackTimeout: time.Second}, mockLog.Loggers)
	defer service.Close()

	httphelpers.WithServer(service, func(server *httptest.Server) {
		resp := post(t, server.URL, servicedef.CreateComponentParams{
			Kind:  servicedef.KindListSelect,
			Items: []string{"a", "b"},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		componentURL := server.URL + resp.Header.Get("Location")

		client, err := SubscribeToEvents(context.Background(), componentURL, testTimeout, framework.NullLogger())
		require.NoError(t, err)
		defer client.Close()

		post(t, componentURL, servicedef.CommandParams{Command: servicedef.CommandAPISelect, Item: "b"})
		post(t, componentURL, servicedef.CommandParams{Command: servicedef.CommandAPISelect, Item: "a"})

		first := client.RequireEvent(t, testTimeout)
		assert.Equal(t, 1, first.Sequence)
		assert.Equal(t, []string{"b"}, first.Added)
		assert.False(t, first.IsUserOriginated())

		second := client.RequireEvent(t, testTimeout)
		assert.Equal(t, 2, second.Sequence)
		assert.Equal(t, []string{"b", "a"}, second.NewSelection)

		client.RequireNoMoreEvents(t, time.Millisecond*100)
	})
}
