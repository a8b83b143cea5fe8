// Package metrics serves the process's Prometheus metrics over HTTP.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Service serves metrics.
type Service struct {
	*http.Server
	log *zap.Logger
}

// NewService creates a Prometheus endpoint on addr. It returns nil for an
// empty addr; a nil Service is valid and does nothing.
func NewService(addr string, log *zap.Logger) *Service {
	if addr == "" {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Server: &http.Server{
			Addr:              addr,
			Handler:           promhttp.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Start runs http service with the exposed endpoint on the configured port.
// It blocks until ShutDown.
func (ms *Service) Start() {
	if ms == nil {
		return
	}
	ms.log.Info("metrics service is running", zap.String("endpoint", ms.Addr))
	err := ms.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		ms.log.Warn("metrics service couldn't start on configured port", zap.Error(err))
	}
}

// ShutDown stops the service.
func (ms *Service) ShutDown() {
	if ms == nil {
		return
	}
	ms.log.Info("shutting down metrics service", zap.String("endpoint", ms.Addr))
	if err := ms.Shutdown(context.Background()); err != nil {
		ms.log.Error("can't shut metrics service down", zap.Error(err))
	}
}
