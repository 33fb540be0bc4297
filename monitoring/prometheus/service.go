// Package prometheus defines a service which is used for metrics collection
// and health of a node in Prysm.
package prometheus

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prysmaticlabs/slashing-oracle/runtime"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "prometheus")

// Service provides Prometheus metrics via the /metrics route. This route will
// show all the metrics registered with the Prometheus DefaultRegisterer.
type Service struct {
	server      *http.Server
	svcRegistry *runtime.ServiceRegistry

	lock       sync.RWMutex
	failStatus error
}

// Handler represents a path and handler func to serve on the same port as /metrics, /healthz.
type Handler struct {
	Path    string
	Handler func(http.ResponseWriter, *http.Request)
}

type serviceStatus struct {
	Name   string `json:"service"`
	Status bool   `json:"status"`
	Err    string `json:"error"`
}

// NewService sets up a new instance for a given address host:port.
// An empty host will match with any IP so an address like ":2121" is perfectly acceptable.
func NewService(addr string, svcRegistry *runtime.ServiceRegistry, additionalHandlers ...Handler) *Service {
	s := &Service{svcRegistry: svcRegistry}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		MaxRequestsInFlight: 5,
		Timeout:             30 * time.Second,
	}))
	mux.HandleFunc("/healthz", s.healthzHandler)

	// Register additional handlers.
	for _, h := range additionalHandlers {
		mux.HandleFunc(h.Path, h.Handler)
	}

	s.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: time.Second}

	return s
}

func (s *Service) healthzHandler(w http.ResponseWriter, r *http.Request) {
	response := generatedResponse{}

	statuses := make([]serviceStatus, 0)
	if s.svcRegistry != nil {
		for k, v := range s.svcRegistry.Statuses() {
			status := serviceStatus{Name: k.String(), Status: true}
			if v != nil {
				status.Status = false
				status.Err = v.Error()
			}
			statuses = append(statuses, status)
		}
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})
	response.Data = statuses

	hasError := false
	var buf bytes.Buffer
	for _, st := range statuses {
		status := "OK"
		if !st.Status {
			hasError = true
			status = "ERROR " + st.Err
		}
		fmt.Fprintf(&buf, "%s: %s\n", st.Name, status)
	}

	// Handle plain text content.
	if contentType := negotiateContentType(r); contentType == contentTypePlainText {
		response.Data = buf
	}

	code := http.StatusOK
	if hasError {
		code = http.StatusInternalServerError
	}

	if err := writeResponse(w, r, code, response); err != nil {
		log.WithError(err).Error("Could not write healthz response")
	}
}

// Start the prometheus service.
func (s *Service) Start() {
	go func() {
		// See if the port is already used.
		_, port, err := net.SplitHostPort(s.server.Addr)
		if err == nil {
			conn, dialErr := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", port), time.Second)
			if dialErr == nil {
				if err := conn.Close(); err != nil {
					log.WithError(err).Error("Could not close connection")
				}
				// Something on the port; we cannot use it.
				log.WithField("address", s.server.Addr).Warn("Port already in use; cannot start prometheus service")
				s.setFailStatus(errors.Errorf("port %s already in use", port))
				return
			}
		}
		log.WithField("address", s.server.Addr).Debug("Starting prometheus service")
		err = s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Errorf("Could not listen to host:port :%s", s.server.Addr)
			s.setFailStatus(err)
		}
	}()
}

// Stop the service gracefully.
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Status checks for any service failure conditions.
func (s *Service) Status() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.failStatus
}

func (s *Service) setFailStatus(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failStatus = err
}
