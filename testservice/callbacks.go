package testservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/servicedef"
	"github.com/uisync/selection-harness/servicedef/callbackfixtures"
)

// callbackClient delivers a component's events to its callback URI.
type callbackClient struct {
	baseURI string
	client  *http.Client
	logger  framework.Logger
}

func newCallbackClient(baseURI string, timeout time.Duration, logger framework.Logger) *callbackClient {
	return &callbackClient{
		baseURI: strings.TrimSuffix(baseURI, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// postEvent returns an error if the request fails or the harness answers with an error status,
// which makes the component's listener fail.
func (c *callbackClient) postEvent(event servicedef.SelectionEventRep) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	status, body, err := c.post(callbackfixtures.ListenerCallbackPathEvent, data)
	if err != nil {
		return fmt.Errorf("listener callback failed: %w", err)
	}
	if status >= 300 {
		var failure callbackfixtures.ListenerFailureParams
		if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
			return fmt.Errorf("listener failed: %s", failure.Error)
		}
		return fmt.Errorf("listener callback returned status %d", status)
	}
	return nil
}

func (c *callbackClient) postClosed() {
	if _, _, err := c.post(callbackfixtures.ListenerCallbackPathClosed, nil); err != nil {
		c.logger.Printf("Close notification failed: %s", err)
	}
}

func (c *callbackClient) post(path string, data []byte) (int, []byte, error) {
	url := c.baseURI + path
	c.logger.Printf("POST %s %s", url, string(data))
	resp, err := c.client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}
