// Package runtime manages the lifecycle of the long-running services of the
// slasher process.
package runtime

import (
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "registry")

// Service is a component with a managed lifecycle.
type Service interface {
	// Start spawns any goroutines required by the service.
	Start()
	// Stop terminates all goroutines belonging to the service,
	// blocking until they are all terminated.
	Stop() error
	// Status returns error if the service is not considered healthy.
	Status() error
}

// ServiceRegistry holds one instance per service type and starts and stops
// them in registration order.
type ServiceRegistry struct {
	services     map[reflect.Type]Service
	serviceTypes []reflect.Type
}

// NewServiceRegistry --
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{
		services: make(map[reflect.Type]Service),
	}
}

// RegisterService adds a service. Only one service per concrete type is allowed.
func (s *ServiceRegistry) RegisterService(service Service) error {
	if service == nil {
		return errors.New("cannot register nil service")
	}
	kind := reflect.TypeOf(service)
	if _, exists := s.services[kind]; exists {
		return errors.Errorf("service already exists: %v", kind)
	}
	s.services[kind] = service
	s.serviceTypes = append(s.serviceTypes, kind)
	return nil
}

// StartAll starts every service in its own goroutine, in registration order.
func (s *ServiceRegistry) StartAll() {
	log.Debugf("Starting %d services: %v", len(s.serviceTypes), s.serviceTypes)
	for _, kind := range s.serviceTypes {
		log.WithField("service", kind.String()).Debug("Starting service")
		go s.services[kind].Start()
	}
}

// StopAll stops services in reverse registration order. Failures are logged
// and do not prevent the remaining services from stopping.
func (s *ServiceRegistry) StopAll() {
	for i := len(s.serviceTypes) - 1; i >= 0; i-- {
		kind := s.serviceTypes[i]
		if err := s.services[kind].Stop(); err != nil {
			log.WithError(err).WithField("service", kind.String()).Error("Could not stop service")
		}
	}
}

// Statuses returns the current Status() of each registered service.
func (s *ServiceRegistry) Statuses() map[reflect.Type]error {
	m := make(map[reflect.Type]error, len(s.serviceTypes))
	for _, kind := range s.serviceTypes {
		m[kind] = s.services[kind].Status()
	}
	return m
}

// Healthy returns nil when every service reports a nil status, otherwise an
// error naming each failing service.
func (s *ServiceRegistry) Healthy() error {
	var failing []string
	for kind, err := range s.Statuses() {
		if err != nil {
			failing = append(failing, kind.String()+": "+err.Error())
		}
	}
	if len(failing) == 0 {
		return nil
	}
	sort.Strings(failing)
	return errors.New(strings.Join(failing, "; "))
}

// FetchService sets the value pointed to by service to the registered
// instance of the same type.
func (s *ServiceRegistry) FetchService(service interface{}) error {
	if reflect.TypeOf(service).Kind() != reflect.Ptr {
		return errors.Errorf("input must be of pointer type, received value type instead: %T", service)
	}
	element := reflect.ValueOf(service).Elem()
	running, ok := s.services[element.Type()]
	if !ok {
		return errors.Errorf("unknown service: %T", service)
	}
	element.Set(reflect.ValueOf(running))
	return nil
}
