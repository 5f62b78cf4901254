package hostmock

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrUnexpectedNamespace is returned when the namespace is not as expected.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned when no route serves the capability.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrUnexpectedFunction is returned when the capability has no route for the function.
	ErrUnexpectedFunction = errors.New("unexpected function")

	// ErrOperationFailed is returned when Fail is set without a custom error.
	ErrOperationFailed = errors.New("operation failed")
)

// Handler serves one capability/function pair.
type Handler func(payload []byte) ([]byte, error)

// Call captures a single host invocation.
type Call struct {
	Namespace  string
	Capability string
	Function   string
	Payload    []byte
}

// Config represents the configuration for creating a Mock instance.
type Config struct {
	// ExpectedNamespace, when set, must match every call.
	ExpectedNamespace string

	// Routes maps Route(capability, function) keys to handlers.
	Routes map[string]Handler

	// Error is returned when Fail is set.
	Error error

	// Fail makes every call return an error.
	Fail bool
}

// Mock is a fake waPC host.
type Mock struct {
	cfg Config

	mu    sync.Mutex
	calls []Call
}

// Route builds the Routes key for a capability and function.
func Route(capability, function string) string {
	return capability + "/" + function
}

// New creates a Mock from cfg.
func New(cfg Config) *Mock {
	routes := make(map[string]Handler, len(cfg.Routes))
	for k, h := range cfg.Routes {
		routes[k] = h
	}
	cfg.Routes = routes
	return &Mock{cfg: cfg}
}

// HostCall has the waPC host call signature and can be injected wherever a
// component accepts one.
func (m *Mock) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{
		Namespace:  namespace,
		Capability: capability,
		Function:   function,
		Payload:    append([]byte(nil), payload...),
	})
	m.mu.Unlock()

	if m.cfg.Fail {
		if m.cfg.Error != nil {
			return nil, m.cfg.Error
		}
		return nil, ErrOperationFailed
	}

	if m.cfg.ExpectedNamespace != "" && m.cfg.ExpectedNamespace != namespace {
		return nil, fmt.Errorf(
			"%w: expected namespace %s, got %s",
			ErrUnexpectedNamespace,
			m.cfg.ExpectedNamespace,
			namespace,
		)
	}

	if len(m.cfg.Routes) == 0 {
		return nil, nil
	}

	h, ok := m.cfg.Routes[Route(capability, function)]
	if !ok {
		if m.servesCapability(capability) {
			return nil, fmt.Errorf("%w: %s has no function %s", ErrUnexpectedFunction, capability, function)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedCapability, capability)
	}

	if h == nil {
		return nil, nil
	}
	return h(payload)
}

func (m *Mock) servesCapability(capability string) bool {
	for k := range m.cfg.Routes {
		if strings.HasPrefix(k, capability+"/") {
			return true
		}
	}
	return false
}

// Calls returns the recorded calls in order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}
