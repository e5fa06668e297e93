// Command selectionservice hosts selection components behind the test service protocol, so the
// harness can exercise them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/uisync/selection-harness/testservice"
)

const shutdownTimeout = time.Second * 5

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	config, err := testservice.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	loggers := config.Loggers()

	service := testservice.NewService(config, loggers)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           service,
		ReadHeaderTimeout: time.Second * 10,
	}

	serverErr := make(chan error, 1)
	go func() {
		loggers.Infof("Listening on port %d", config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		loggers.Errorf("Server failed: %s", err)
		os.Exit(1)
	case <-service.Stopped():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	service.Close()
	if err := server.Shutdown(ctx); err != nil {
		loggers.Warnf("Shutdown: %s", err)
	}
	loggers.Info("Stopped")
}
