package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/framework/helpers"
)

const endpointPathPrefix = "/endpoints/"

// Requests beyond this many unread ones are still served, but not queued for AwaitRequest.
const incomingRequestQueueSize = 100

type mockEndpointsManager struct {
	endpoints       map[string]*MockEndpoint
	lastEndpointID  int
	externalBaseURL string
	logger          framework.Logger
	lock            sync.Mutex
}

// MockEndpoint is a harness-side URL that the component service can send requests to, such as
// the callback URI for selection events.
type MockEndpoint struct {
	owner       *mockEndpointsManager
	id          string
	description string
	basePath    string
	handler     http.Handler
	requests    chan IncomingRequestInfo
	cancels     map[int]context.CancelFunc
	lastCancel  int
	closed      bool
	logger      framework.Logger
	lock        sync.Mutex
	closing     sync.Once
}

type MockEndpointOption helpers.ConfigOption[MockEndpoint]

type mockEndpointDescription string

func (o mockEndpointDescription) Configure(m *MockEndpoint) error {
	m.description = string(o)
	return nil
}

// MockEndpointDescription sets the name used for the endpoint in log and failure messages.
func MockEndpointDescription(description string) MockEndpointOption {
	return mockEndpointDescription(description)
}

// IncomingRequestInfo is a request that the component service sent to a mock endpoint.
type IncomingRequestInfo struct {
	Headers http.Header
	Method  string
	URL     url.URL
	Body    []byte
	Context context.Context
}

func newMockEndpointsManager(externalBaseURL string, logger framework.Logger) *mockEndpointsManager {
	return &mockEndpointsManager{
		endpoints:       make(map[string]*MockEndpoint),
		externalBaseURL: externalBaseURL,
		logger:          logger,
	}
}

func (m *mockEndpointsManager) newMockEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...MockEndpointOption,
) *MockEndpoint {
	if logger == nil {
		logger = m.logger
	}
	e := &MockEndpoint{
		owner:    m,
		handler:  handler,
		requests: make(chan IncomingRequestInfo, incomingRequestQueueSize),
		cancels:  make(map[int]context.CancelFunc),
		logger:   logger,
	}
	_ = helpers.ApplyOptions(e, options...)

	m.lock.Lock()
	m.lastEndpointID++
	e.id = strconv.Itoa(m.lastEndpointID)
	e.basePath = endpointPathPrefix + e.id
	m.endpoints[e.id] = e
	m.lock.Unlock()

	return e
}

func (m *mockEndpointsManager) serveHTTP(w http.ResponseWriter, r *http.Request) {
	endpointID, subpath, ok := splitEndpointPath(r.URL.Path)
	if !ok {
		m.logger.Printf("Received request for unrecognized URL path %s", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	m.lock.Lock()
	e := m.endpoints[endpointID]
	m.lock.Unlock()
	if e == nil {
		m.logger.Printf("Received request for unrecognized endpoint %s", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	e.serveHTTP(w, r, subpath)
}

func splitEndpointPath(path string) (endpointID, subpath string, ok bool) {
	if !strings.HasPrefix(path, endpointPathPrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, endpointPathPrefix)
	if slash := strings.Index(rest, "/"); slash >= 0 {
		return rest[:slash], rest[slash:], true
	}
	return rest, "/", true
}

func (e *MockEndpoint) serveHTTP(w http.ResponseWriter, r *http.Request, subpath string) {
	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			e.logger.Printf("Unexpected error trying to read request body: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body = data
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		e.logger.Printf("Received request to already-closed endpoint %s", r.URL)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	e.lastCancel++
	cancelID := e.lastCancel
	e.cancels[cancelID] = cancel
	e.lock.Unlock()

	defer func() {
		e.lock.Lock()
		delete(e.cancels, cancelID)
		e.lock.Unlock()
	}()

	u := *r.URL
	u.Path = subpath
	transformed := r.WithContext(ctx)
	transformed.URL = &u
	if body != nil {
		transformed.Body = io.NopCloser(bytes.NewReader(body))
	}

	if !helpers.NonBlockingSend(e.requests, IncomingRequestInfo{
		Headers: r.Header,
		Method:  r.Method,
		URL:     u,
		Body:    body,
		Context: ctx,
	}) {
		e.logger.Printf("Incoming request queue was full for %q (%s)", e.description, e.basePath)
	}

	ww := statusRecordingWriter{ResponseWriter: w}
	e.handler.ServeHTTP(&ww, transformed)

	switch ww.status {
	case http.StatusNotFound:
		e.logger.Printf("Endpoint %q (%s) received %s request for unrecognized path %s",
			e.description, e.basePath, r.Method, subpath)
	case http.StatusMethodNotAllowed:
		e.logger.Printf("Endpoint %q (%s) received request with unsupported %s method for path %s",
			e.description, e.basePath, r.Method, subpath)
	}
}

// BaseURL is the URL to give to the component service.
func (e *MockEndpoint) BaseURL() string {
	return e.owner.externalBaseURL + e.basePath
}

// AwaitRequest waits for the next incoming request.
func (e *MockEndpoint) AwaitRequest(timeout time.Duration) (IncomingRequestInfo, error) {
	if maybeReq := helpers.TryReceive(e.requests, timeout); maybeReq.IsDefined() {
		return maybeReq.Value(), nil
	}
	return IncomingRequestInfo{}, fmt.Errorf("timed out waiting for an incoming request to %q (%s)",
		e.description, e.basePath)
}

// RequireRequest is AwaitRequest, failing and terminating the test on timeout.
func (e *MockEndpoint) RequireRequest(t helpers.TestContext, timeout time.Duration) IncomingRequestInfo {
	t.Helper()
	return helpers.RequireValueWithMessage(t, e.requests, timeout,
		"timed out waiting for request to %q (%s)", e.description, e.basePath)
}

// RequireNoMoreRequests fails and terminates the test if another request arrives within the
// timeout.
func (e *MockEndpoint) RequireNoMoreRequests(t helpers.TestContext, timeout time.Duration) {
	t.Helper()
	helpers.RequireNoMoreValuesWithMessage(t, e.requests, timeout,
		"did not expect another request to %q (%s), but got one", e.description, e.basePath)
}

// Close unregisters the endpoint, so later requests get a 404, and cancels the Context of
// every request still being handled.
func (e *MockEndpoint) Close() {
	e.closing.Do(func() {
		e.logger.Printf("Closing endpoint %q (%s)", e.description, e.basePath)
		e.owner.lock.Lock()
		delete(e.owner.endpoints, e.id)
		e.owner.lock.Unlock()

		e.lock.Lock()
		e.closed = true
		cancels := e.cancels
		e.cancels = map[int]context.CancelFunc{}
		e.lock.Unlock()

		for _, cancel := range cancels {
			cancel()
		}
	})
}

type statusRecordingWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusRecordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecordingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
