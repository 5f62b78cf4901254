package mock

import (
	"sort"
	"sync"

	"github.com/storeops/networking/kv"
)

// Operation names recorded in Call.Op.
const (
	OpGet    = "GET"
	OpSet    = "SET"
	OpDelete = "DELETE"
	OpKeys   = "KEYS"
)

// Config configures the mock client.
type Config struct {
	// Seed pre-populates the in-memory store.
	Seed map[string][]byte
}

// Call records an operation performed against the mock.
type Call struct {
	Op    string
	Key   string
	Value []byte
}

// Client is an in-memory kv.KV.
type Client struct {
	mu     sync.Mutex
	store  map[string][]byte
	errors map[string]error
	calls  []Call
}

// Ensure Client satisfies kv.KV at compile time.
var _ kv.KV = (*Client)(nil)

// New creates a mock seeded from cfg.
func New(cfg Config) *Client {
	st := make(map[string][]byte, len(cfg.Seed))
	for k, v := range cfg.Seed {
		st[k] = append([]byte(nil), v...)
	}
	return &Client{store: st, errors: make(map[string]error)}
}

// ErrorBuilder configures a failure for one operation.
type ErrorBuilder struct {
	m   *Client
	key string
}

// ReturnError makes the configured operation fail with err.
func (b *ErrorBuilder) ReturnError(err error) *Client {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	b.m.errors[b.key] = err
	return b.m
}

// OnGet configures Get for key.
func (m *Client) OnGet(key string) *ErrorBuilder { return &ErrorBuilder{m: m, key: OpGet + " " + key} }

// OnSet configures Set for key.
func (m *Client) OnSet(key string) *ErrorBuilder { return &ErrorBuilder{m: m, key: OpSet + " " + key} }

// OnKeys configures Keys.
func (m *Client) OnKeys() *ErrorBuilder { return &ErrorBuilder{m: m, key: OpKeys} }

// Calls returns a copy of the recorded operations.
func (m *Client) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// begin records the call and returns any configured failure. Callers hold mu.
func (m *Client) begin(c Call) error {
	m.calls = append(m.calls, c)
	key := c.Op
	if c.Key != "" {
		key += " " + c.Key
	}
	return m.errors[key]
}

func (m *Client) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(Call{Op: OpGet, Key: key}); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, kv.ErrInvalidKey
	}
	v, ok := m.store[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Client) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(Call{Op: OpSet, Key: key, Value: append([]byte(nil), value...)}); err != nil {
		return err
	}
	if key == "" {
		return kv.ErrInvalidKey
	}
	if value == nil {
		return kv.ErrInvalidValue
	}
	m.store[key] = append([]byte(nil), value...)
	return nil
}

func (m *Client) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(Call{Op: OpDelete, Key: key}); err != nil {
		return err
	}
	if key == "" {
		return kv.ErrInvalidKey
	}
	if _, ok := m.store[key]; !ok {
		return kv.ErrKeyNotFound
	}
	delete(m.store, key)
	return nil
}

func (m *Client) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(Call{Op: OpKeys}); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m.store))
	for k := range m.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Client) Close() error { return nil }
