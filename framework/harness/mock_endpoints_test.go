package harness

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/framework/helpers"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeHarnessURL = "http://harness:8111"

func serve(m *mockEndpointsManager, method, url string, body []byte) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	var req *http.Request
	if body == nil {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
	}
	m.serveHTTP(rr, req)
	return rr
}

func TestMockEndpointsAreNumberedAndRouted(t *testing.T) {
	m := newMockEndpointsManager(fakeHarnessURL, framework.NullLogger())

	e1 := m.newMockEndpoint(httphelpers.HandlerWithStatus(200), nil)
	e2 := m.newMockEndpoint(httphelpers.HandlerWithStatus(202), nil, MockEndpointDescription("callbacks"))
	assert.Equal(t, fakeHarnessURL+"/endpoints/1", e1.BaseURL())
	assert.Equal(t, fakeHarnessURL+"/endpoints/2", e2.BaseURL())

	assert.Equal(t, 200, serve(m, "GET", e1.BaseURL(), nil).Code)
	assert.Equal(t, 202, serve(m, "POST", e2.BaseURL(), []byte("{}")).Code)
	assert.Equal(t, 404, serve(m, "GET", fakeHarnessURL+"/endpoints/3", nil).Code)
	assert.Equal(t, 404, serve(m, "GET", fakeHarnessURL+"/elsewhere", nil).Code)
}

func TestMockEndpointHandlerSeesSubpath(t *testing.T) {
	m := newMockEndpointsManager(fakeHarnessURL, framework.NullLogger())
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	e := m.newMockEndpoint(handler, nil)

	for subpath, expected := range map[string]string{"": "/", "/": "/", "/events/1": "/events/1"} {
		serve(m, "POST", e.BaseURL()+subpath, nil)
		received := <-requests
		assert.Equal(t, expected, received.Request.URL.Path)
	}
}

func TestMockEndpointQueuesRequests(t *testing.T) {
	m := newMockEndpointsManager(fakeHarnessURL, framework.NullLogger())
	e := m.newMockEndpoint(httphelpers.HandlerWithStatus(202), nil)

	_, err := e.AwaitRequest(time.Millisecond * 20)
	assert.Error(t, err)

	serve(m, "POST", e.BaseURL(), []byte(`{"kind":"selection"}`))
	req, err := e.AwaitRequest(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, []byte(`{"kind":"selection"}`), req.Body)

	tr := helpers.TestRecorder{PanicOnTerminate: true}
	e.RequireNoMoreRequests(&tr, time.Millisecond*20)
	assert.NoError(t, tr.Err())
}

func TestClosedMockEndpointReturns404(t *testing.T) {
	m := newMockEndpointsManager(fakeHarnessURL, framework.NullLogger())
	e := m.newMockEndpoint(httphelpers.HandlerWithStatus(200), nil)
	e.Close()
	e.Close()
	assert.Equal(t, 404, serve(m, "POST", e.BaseURL(), nil).Code)
}
