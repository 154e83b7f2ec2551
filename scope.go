package logward

import (
	"sync"
)

// LoggerServiceName is the service registry key the scope's logger is
// published under.
const LoggerServiceName = "logward.logger"

// ServiceRegistry allows registration and retrieval of services within a
// scope.
type ServiceRegistry map[string]any

// Scope is a composition root: the place where provider bundles are applied
// and the resulting logger and feature services live. Scopes nest; a child
// scope may host its own logger, which can chain to the logger of the
// closest enclosing scope that has one.
type Scope struct {
	parent   *Scope
	logger   *Logger
	services ServiceRegistry
	mu       sync.RWMutex
}

// NewScope creates a root scope.
func NewScope() *Scope {
	return &Scope{services: make(ServiceRegistry)}
}

// NewChild creates a scope nested inside s. The child starts without a
// logger of its own; Logger falls back to the ancestors until one is
// provided here.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, services: make(ServiceRegistry)}
}

// Apply wires the supplied bundles into the scope. All construction steps
// run first, then all post-construction steps, so a category registration in
// the same Apply call - or in a later one - always finds its logger already
// constructed.
//
// Apply is fail-fast: the first wiring error aborts the remaining steps and
// is returned to the caller.
func (s *Scope) Apply(bundles ...*Bundle) error {
	for _, bundle := range bundles {
		if bundle == nil {
			return ErrNilBundle
		}
	}
	for _, bundle := range bundles {
		for _, reg := range bundle.regs {
			if reg.construct == nil {
				continue
			}
			if err := reg.construct(s); err != nil {
				return err
			}
		}
	}
	for _, bundle := range bundles {
		for _, reg := range bundle.regs {
			if reg.postInit == nil {
				continue
			}
			if err := reg.postInit(s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Logger returns the logger of this scope or, when none was provided here,
// of the closest enclosing scope. Returns nil when no scope in the chain has
// a logger.
func (s *Scope) Logger() *Logger {
	for scope := s; scope != nil; scope = scope.parent {
		scope.mu.RLock()
		logger := scope.logger
		scope.mu.RUnlock()
		if logger != nil {
			return logger
		}
	}
	return nil
}

// resolveParentLogger finds the logger a new logger in this scope should
// chain to. The lookup starts at the enclosing scope, never at s itself, so
// a logger cannot resolve to itself. Absence is not an error; the result is
// nil for a root scope.
func (s *Scope) resolveParentLogger() *Logger {
	if s.parent == nil {
		return nil
	}
	return s.parent.Logger()
}

// setLogger installs the scope's logger. Each scope hosts at most one.
func (s *Scope) setLogger(logger *Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logger != nil {
		return ErrLoggerAlreadyProvided
	}
	s.logger = logger
	s.services[LoggerServiceName] = logger
	return nil
}

// registerInstance stores a service instance under name, overwriting any
// previous instance. Feature services use this path so re-applying a merged
// bundle in a child scope shadows the parent's capability.
func (s *Scope) registerInstance(name string, instance any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[name] = instance
}

// RegisterService adds a service to the scope's registry.
func RegisterService[T any](scope *Scope, name string, service *T) error {
	scope.mu.Lock()
	defer scope.mu.Unlock()
	if _, exists := scope.services[name]; exists {
		return ErrServiceAlreadyRegistered
	}
	scope.services[name] = service
	return nil
}

// GetService retrieves a service by name, searching the scope and then its
// ancestors. The boolean result is the null-safe absence check: optional
// capabilities like the Colorizer resolve to (nil, false) when their feature
// was not supplied, and consumers treat that as a silent no-op.
func GetService[T any](scope *Scope, name string) (*T, bool) {
	for current := scope; current != nil; current = current.parent {
		current.mu.RLock()
		instance, exists := current.services[name]
		current.mu.RUnlock()
		if !exists {
			continue
		}
		service, ok := instance.(*T)
		if !ok {
			return nil, false
		}
		return service, true
	}
	return nil, false
}
