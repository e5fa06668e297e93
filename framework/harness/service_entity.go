package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/serviceinfo"
)

// ServiceError is a non-2xx response from the component service. The body usually holds the
// error text, such as the message for an unknown key.
type ServiceError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e ServiceError) Error() string {
	msg := fmt.Sprintf("component service returned error %d for %s %s", e.StatusCode, e.Method, e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// ServiceEntity is something the harness asked the component service to create, such as a
// selection component. It lives in the service until Close is called.
type ServiceEntity struct {
	resourceURL string
	logger      framework.Logger
}

func queryServiceInfo(url string, timeout time.Duration, output io.Writer) (serviceinfo.ServiceInfo, error) {
	_, _ = fmt.Fprintf(output, "Connecting to component service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		_, _ = fmt.Fprint(output, ".")
		respData, _, err := doRequest(http.MethodGet, url, nil)
		if err == nil {
			_, _ = fmt.Fprintln(output)
			if len(respData) == 0 {
				_, _ = fmt.Fprintln(output, "Status query successful, but service provided no metadata")
				return serviceinfo.Empty(), nil
			}
			_, _ = fmt.Fprintf(output, "Status query returned metadata: %s\n", string(respData))
			var base serviceinfo.ServiceInfoBase
			if err := json.Unmarshal(respData, &base); err != nil {
				return serviceinfo.Empty(), fmt.Errorf("malformed status response from component service: %s",
					string(respData))
			}
			return serviceinfo.ServiceInfo{ServiceInfoBase: base, FullData: respData}, nil
		}
		var se ServiceError
		if errors.As(err, &se) {
			_, _ = fmt.Fprintln(output)
			return serviceinfo.Empty(), err
		}
		if !time.Now().Before(deadline) {
			_, _ = fmt.Fprintln(output)
			return serviceinfo.Empty(), fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// StopService tells the component service to exit.
func (h *TestHarness) StopService() error {
	_, _, err := doRequest(http.MethodDelete, h.serviceBaseURL, nil)
	var se ServiceError
	if errors.As(err, &se) {
		return err
	}
	// an I/O error is normal here if the service quit before responding
	return nil
}

// NewServiceEntity asks the component service to create an entity from params, which are
// marshaled as JSON. The service must answer with a Location header.
func (h *TestHarness) NewServiceEntity(
	params interface{},
	description string,
	logger framework.Logger,
) (*ServiceEntity, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	logger.Printf("Creating %s with parameters: %s", description, string(data))
	_, headers, err := doRequest(http.MethodPost, h.serviceBaseURL, data)
	if err != nil {
		return nil, err
	}
	resourceURL := headers.Get("Location")
	if resourceURL == "" {
		return nil, errors.New("component service did not return a Location header with a resource URL")
	}
	if !strings.HasPrefix(resourceURL, "http:") && !strings.HasPrefix(resourceURL, "https:") {
		resourceURL = strings.TrimSuffix(h.serviceBaseURL, "/") + resourceURL
	}

	return &ServiceEntity{resourceURL: resourceURL, logger: logger}, nil
}

// ResourceURL is the entity's URL within the component service.
func (e *ServiceEntity) ResourceURL() string {
	return e.resourceURL
}

// Close tells the component service to dispose of the entity.
func (e *ServiceEntity) Close() error {
	e.logger.Printf("Closing %s", e.resourceURL)
	_, _, err := doRequest(http.MethodDelete, e.resourceURL, nil)
	if err != nil {
		e.logger.Printf("DELETE request to component service failed: %s", err)
	}
	return err
}

// SendCommand sends a command with no parameters besides its name.
func (e *ServiceEntity) SendCommand(command string, logger framework.Logger, responseOut interface{}) error {
	return e.SendCommandWithParams(map[string]interface{}{"command": command}, logger, responseOut)
}

// SendCommandWithParams POSTs params as JSON to the entity, and decodes the response into
// responseOut if it is non-nil.
func (e *ServiceEntity) SendCommandWithParams(
	params interface{},
	logger framework.Logger,
	responseOut interface{},
) error {
	if logger == nil {
		logger = e.logger
	}
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	logger.Printf("Sending command: %s", string(data))
	body, _, err := doRequest(http.MethodPost, e.resourceURL, data)
	if err != nil {
		logger.Printf("Command failed: %s", err)
		return err
	}
	if responseOut != nil {
		if len(body) == 0 {
			return errors.New("expected a response body but got none")
		}
		if err := json.Unmarshal(body, responseOut); err != nil {
			return err
		}
		logger.Printf("Response: %s", string(body))
	}
	return nil
}

func doRequest(method, url string, body []byte) ([]byte, http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, resp.Header, ServiceError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}
	return respBody, resp.Header, nil
}
