package harness

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/serviceinfo"
)

const httpListenerTimeout = time.Second * 10

// TestHarness manages communication with one component service.
//
// It verifies on startup that the service is alive, and can then create any number of entities
// within the service (NewServiceEntity) and any number of callback endpoints for the service to
// send requests to (NewMockEndpoint). It knows nothing about selection; suites build on it.
type TestHarness struct {
	serviceBaseURL string
	serviceInfo    serviceinfo.ServiceInfo
	mockEndpoints  *mockEndpointsManager
	logger         framework.Logger
}

// NewTestHarness queries the component service's status resource until it responds, then starts
// the HTTP listener that serves callback endpoints.
func NewTestHarness(
	serviceBaseURL string,
	harnessExternalHostname string,
	harnessPort int,
	statusQueryTimeout time.Duration,
	debugLogger framework.Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}

	externalBaseURL := fmt.Sprintf("http://%s:%d", harnessExternalHostname, harnessPort)
	h := &TestHarness{
		serviceBaseURL: serviceBaseURL,
		mockEndpoints:  newMockEndpointsManager(externalBaseURL, debugLogger),
		logger:         debugLogger,
	}

	info, err := queryServiceInfo(serviceBaseURL, statusQueryTimeout, startupOutput)
	if err != nil {
		return nil, err
	}
	h.serviceInfo = info

	if err := startServer(harnessPort, http.HandlerFunc(h.mockEndpoints.serveHTTP)); err != nil {
		return nil, err
	}
	return h, nil
}

// ServiceInfo returns what the component service reported in its status response.
func (h *TestHarness) ServiceInfo() serviceinfo.ServiceInfo {
	return h.serviceInfo
}

// NewMockEndpoint adds an endpoint that can receive requests from the component service.
//
// The handler receives requests for the endpoint's base URL and any subpath of it, with the URL
// rewritten so the handler sees only the subpath. Each request's Context is cancelled when the
// endpoint is closed.
func (h *TestHarness) NewMockEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...MockEndpointOption,
) *MockEndpoint {
	if logger == nil {
		logger = h.logger
	}
	return h.mockEndpoints.newMockEndpoint(handler, logger, options...)
}

func startServer(port int, handler http.Handler) error {
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusOK) // used below to detect that the listener is up
				return
			}
			handler.ServeHTTP(w, r)
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			if _, _, err := doRequest(http.MethodHead, fmt.Sprintf("http://localhost:%d", port), nil); err == nil {
				return nil
			}
		}
	}
}
