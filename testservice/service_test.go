package testservice

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	o "github.com/uisync/selection-harness/framework/opt"
	"github.com/uisync/selection-harness/servicedef"
	"github.com/uisync/selection-harness/servicedef/callbackfixtures"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	mockLog := ldlogtest.NewMockLog()
	s := NewService(Config{CallbackTimeout: time.Second}, mockLog.Loggers)
	t.Cleanup(s.Close)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createComponent(t *testing.T, s *Service, params servicedef.CreateComponentParams) string {
	w := doJSON(t, s, http.MethodPost, "/", params)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return w.Header().Get("Location")
}

func getState(t *testing.T, s *Service, location string) servicedef.ComponentState {
	w := doJSON(t, s, http.MethodPost, location, servicedef.CommandParams{Command: servicedef.CommandGetState})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var state servicedef.ComponentState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestStatus(t *testing.T) {
	s := newTestService(t)
	w := doJSON(t, s, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status servicedef.StatusRep
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, ServiceName, status.Name)
	assert.Contains(t, status.Capabilities, servicedef.CapabilitySingleSelect)
	assert.Contains(t, status.Capabilities, servicedef.CapabilityMultiSelect)
	assert.NotContains(t, status.Capabilities, servicedef.CapabilityPersistenceRedis)
}

func TestRemoteSelectionByKey(t *testing.T) {
	s := newTestService(t)
	location := createComponent(t, s, servicedef.CreateComponentParams{
		Kind:  servicedef.KindRadioButtonGroup,
		Items: []string{"First", "Second"},
	})

	state := getState(t, s, location)
	key, ok := state.KeyFor("Second")
	require.True(t, ok)

	w := doJSON(t, s, http.MethodPost, location, servicedef.CommandParams{Command: servicedef.CommandSelect, Key: key})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Equal(t, []string{"Second"}, getState(t, s, location).Selected)
}

func TestUnknownKeyIsBadRequestAndLeavesSelection(t *testing.T) {
	s := newTestService(t)
	location := createComponent(t, s, servicedef.CreateComponentParams{
		Kind:             servicedef.KindListSelect,
		Items:            []string{"First", "Second"},
		InitialSelection: []string{"First"},
	})

	w := doJSON(t, s, http.MethodPost, location, servicedef.CommandParams{Command: servicedef.CommandSelect, Key: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"First"}, getState(t, s, location).Selected)
}

func TestListSelectState(t *testing.T) {
	s := newTestService(t)
	location := createComponent(t, s, servicedef.CreateComponentParams{
		Kind:            servicedef.KindListSelect,
		Items:           []string{"a", "b"},
		Caption:         "Letters",
		LogDataRequests: true,
	})
	state := getState(t, s, location)
	assert.Equal(t, "Letters", state.Caption)
	assert.Equal(t, 10, state.Rows.OrElse(0))
	assert.Equal(t, 1, state.DataRequests.OrElse(-1))
	assert.Len(t, state.Items, 2)
	assert.Equal(t, []string{}, state.Selected)
}

func TestInvalidCreateParams(t *testing.T) {
	s := newTestService(t)
	w := doJSON(t, s, http.MethodPost, "/", servicedef.CreateComponentParams{Kind: "comboBox"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownComponent(t *testing.T) {
	s := newTestService(t)
	w := doJSON(t, s, http.MethodPost, "/components/99", servicedef.CommandParams{Command: servicedef.CommandGetState})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteComponent(t *testing.T) {
	s := newTestService(t)
	location := createComponent(t, s, servicedef.CreateComponentParams{Kind: servicedef.KindRadioButtonGroup})
	assert.Equal(t, http.StatusNoContent, doJSON(t, s, http.MethodDelete, location, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodDelete, location, nil).Code)
}

func TestStop(t *testing.T) {
	s := newTestService(t)
	assert.Equal(t, http.StatusNoContent, doJSON(t, s, http.MethodDelete, "/", nil).Code)
	select {
	case <-s.Stopped():
	default:
		assert.Fail(t, "service was not stopped")
	}
}

func TestListenerCallbackReceivesEvent(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusAccepted))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		s := newTestService(t)
		location := createComponent(t, s, servicedef.CreateComponentParams{
			Kind:        servicedef.KindRadioButtonGroup,
			Items:       []string{"First"},
			CallbackURI: server.URL,
		})
		w := doJSON(t, s, http.MethodPost, location, servicedef.CommandParams{Command: servicedef.CommandAPISelect, Item: "First"})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		r := <-requestsCh
		assert.Equal(t, callbackfixtures.ListenerCallbackPathEvent, r.Request.URL.Path)
		var event servicedef.SelectionEventRep
		require.NoError(t, json.Unmarshal(r.Body, &event))
		assert.Equal(t, 1, event.Sequence)
		assert.Equal(t, servicedef.OriginProgrammatic, event.Origin)
		assert.Equal(t, []string{"First"}, event.NewSelection)
	})
}

func TestListenerFailureIsServerErrorAndKeepsSelection(t *testing.T) {
	failure, _ := json.Marshal(callbackfixtures.ListenerFailureParams{Error: "no thanks"})
	handler := httphelpers.HandlerWithResponse(http.StatusInternalServerError, nil, failure)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		s := newTestService(t)
		location := createComponent(t, s, servicedef.CreateComponentParams{
			Kind:        servicedef.KindListSelect,
			Items:       []string{"First"},
			CallbackURI: server.URL,
		})
		w := doJSON(t, s, http.MethodPost, location, servicedef.CommandParams{Command: servicedef.CommandAPISelect, Item: "First"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "no thanks")
		assert.Equal(t, []string{"First"}, getState(t, s, location).Selected)
	})
}

func TestMemoryPersistenceRestoresSelection(t *testing.T) {
	s := newTestService(t)
	params := servicedef.CreateComponentParams{
		Kind:  servicedef.KindListSelect,
		Items: []string{"a", "b", "c"},
		Persistence: o.Some(servicedef.PersistenceParams{
			Store: servicedef.StoreMemory, Prefix: "test", ID: "list1",
		}),
	}
	first := createComponent(t, s, params)
	doJSON(t, s, http.MethodPost, first, servicedef.CommandParams{Command: servicedef.CommandAPISelect, Item: "c"})
	doJSON(t, s, http.MethodPost, first, servicedef.CommandParams{Command: servicedef.CommandAPISelect, Item: "a"})

	second := createComponent(t, s, params)
	assert.ElementsMatch(t, []string{"a", "c"}, getState(t, s, second).Selected)
}

func TestLoggersAreUsed(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	s := NewService(Config{}, mockLog.Loggers)
	defer s.Close()
	doJSON(t, s, http.MethodDelete, "/", nil)
	assert.NotEmpty(t, mockLog.GetOutput(ldlog.Info))
}
