package testservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/servicedef"
	"github.com/uisync/selection-harness/serviceinfo"
	"github.com/uisync/selection-harness/store"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/gorilla/mux"
	"golang.org/x/exp/maps"
)

const (
	ServiceName    = "selectionservice"
	ServiceVersion = "1.0.0"
)

// Service is the HTTP handler for the component service.
type Service struct {
	router          *mux.Router
	components      map[string]*componentEntity
	lastID          int
	stores          *store.Factory
	streams         *eventStreams
	callbackTimeout time.Duration
	loggers         ldlog.Loggers
	stopped         chan struct{}
	stopOnce        sync.Once
	lock            sync.Mutex
}

// NewService creates the service. It does not listen on anything; use it as an http.Handler.
func NewService(config Config, loggers ldlog.Loggers) *Service {
	s := &Service{
		router:          mux.NewRouter(),
		components:      make(map[string]*componentEntity),
		stores:          store.NewFactory(config.StoreSettings()),
		streams:         newEventStreams(loggers.ForLevel(ldlog.Debug)),
		callbackTimeout: config.CallbackTimeout,
		loggers:         loggers,
		stopped:         make(chan struct{}),
	}
	s.router.HandleFunc("/", s.getStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.createComponent).Methods(http.MethodPost)
	s.router.HandleFunc("/", s.stop).Methods(http.MethodDelete)
	s.router.HandleFunc("/components/{id}", s.componentCommand).Methods(http.MethodPost)
	s.router.HandleFunc("/components/{id}", s.deleteComponent).Methods(http.MethodDelete)
	s.router.HandleFunc("/components/{id}/events", s.componentEvents).Methods(http.MethodGet)
	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Stopped is closed when a client asks the service to stop.
func (s *Service) Stopped() <-chan struct{} {
	return s.stopped
}

// Close disposes of every component.
func (s *Service) Close() {
	s.lock.Lock()
	components := maps.Values(s.components)
	s.components = make(map[string]*componentEntity)
	s.lock.Unlock()
	for _, c := range components {
		c.close()
	}
	s.streams.close()
}

// Capabilities lists what this service supports, including any configured stores.
func (s *Service) Capabilities() []string {
	return append([]string{
		servicedef.CapabilitySingleSelect,
		servicedef.CapabilityMultiSelect,
		servicedef.CapabilityEventStream,
		servicedef.CapabilityListenerCallbacks,
		servicedef.CapabilityDataProvider,
	}, s.stores.Capabilities()...)
}

func (s *Service) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, servicedef.StatusRep{
		ServiceInfoBase: serviceinfo.ServiceInfoBase{
			Name:         ServiceName,
			Capabilities: s.Capabilities(),
		},
		Version: ServiceVersion,
	})
}

func (s *Service) stop(w http.ResponseWriter, r *http.Request) {
	s.loggers.Info("Test harness has told us to exit")
	w.WriteHeader(http.StatusNoContent)
	s.stopOnce.Do(func() { close(s.stopped) })
}

func (s *Service) createComponent(w http.ResponseWriter, r *http.Request) {
	var params servicedef.CreateComponentParams
	if err := readJSON(r, &params); err != nil {
		writeError(w, fmt.Errorf("%w: %s", errBadRequest, err))
		return
	}

	s.lock.Lock()
	s.lastID++
	id := strconv.Itoa(s.lastID)
	s.lock.Unlock()

	tag := params.Tag
	if tag == "" {
		tag = string(params.Kind)
	}
	logger := framework.LoggerWithPrefix(s.loggers.ForLevel(ldlog.Info), fmt.Sprintf("[%s %s] ", tag, id))
	var callbacks *callbackClient
	if params.CallbackURI != "" {
		callbacks = newCallbackClient(params.CallbackURI, s.callbackTimeout, logger)
	}

	e, err := newComponentEntity(r.Context(), id, params, s.stores, s.streams, callbacks, logger)
	if err != nil {
		s.loggers.Warnf("Could not create component: %s", err)
		writeError(w, err)
		return
	}
	s.lock.Lock()
	s.components[id] = e
	s.lock.Unlock()

	logger.Printf("Created with %d items", len(params.Items))
	w.Header().Set("Location", "/components/"+id)
	w.WriteHeader(http.StatusCreated)
}

func (s *Service) getComponent(w http.ResponseWriter, r *http.Request) *componentEntity {
	id := mux.Vars(r)["id"]
	s.lock.Lock()
	e := s.components[id]
	s.lock.Unlock()
	if e == nil {
		http.Error(w, fmt.Sprintf("no component with id %q", id), http.StatusNotFound)
	}
	return e
}

func (s *Service) componentCommand(w http.ResponseWriter, r *http.Request) {
	e := s.getComponent(w, r)
	if e == nil {
		return
	}
	var params servicedef.CommandParams
	if err := readJSON(r, &params); err != nil {
		writeError(w, fmt.Errorf("%w: %s", errBadRequest, err))
		return
	}
	result, err := e.doCommand(context.Background(), params)
	if err != nil {
		e.logger.Printf("Command %q failed: %s", params.Command, err)
		writeError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Service) deleteComponent(w http.ResponseWriter, r *http.Request) {
	e := s.getComponent(w, r)
	if e == nil {
		return
	}
	s.lock.Lock()
	delete(s.components, e.id)
	s.lock.Unlock()
	e.close()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) componentEvents(w http.ResponseWriter, r *http.Request) {
	e := s.getComponent(w, r)
	if e == nil {
		return
	}
	s.streams.handler(e.id)(w, r)
}

func readJSON(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	data, _ := json.Marshal(value)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError maps an error to a status: 400 for anything the caller did wrong, including an
// unknown key, and 500 otherwise, such as a failing listener.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, keymapper.ErrUnknownKey),
		errors.Is(err, keymapper.ErrInvalidItem):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
