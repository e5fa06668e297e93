package mockui

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/uisync/selection-harness/framework"

	"github.com/gorilla/mux"
)

type callbackService struct {
	router *mux.Router
	logger framework.Logger
	name   string
}

func newCallbackService(logger framework.Logger, name string) *callbackService {
	return &callbackService{router: mux.NewRouter(), logger: logger, name: name}
}

// addPath registers a POST handler. If the handler returns an error, the response is a 500 whose
// body is the JSON-encoded value of failureBody(err).
func (c *callbackService) addPath(
	path string,
	handler func(*json.Decoder) error,
	failureBody func(error) interface{},
) {
	c.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
		}
		c.logger.Printf("[%s] got POST %s %s", c.name, path, string(body))

		if err := handler(json.NewDecoder(bytes.NewReader(body))); err != nil {
			respBody, _ := json.Marshal(failureBody(err))
			w.Header().Set("content-type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write(respBody)
			c.logger.Printf("[%s] responded with 500 %s", c.name, string(respBody))
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}).Methods(http.MethodPost)
}

func (c *callbackService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.router.ServeHTTP(w, r)
}
