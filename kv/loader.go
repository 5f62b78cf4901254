package kv

import (
	"errors"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/storeops/networking/fixtures"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FixtureLoader serves fixtures stored in a KV under a common key prefix.
// A fixture named "product" lives at prefix + "product".
type FixtureLoader struct {
	store  KV
	prefix string
}

// Ensure FixtureLoader satisfies fixtures.Loader at compile time.
var _ fixtures.Loader = (*FixtureLoader)(nil)

// NewFixtureLoader creates a loader reading fixtures from store.
func NewFixtureLoader(store KV, prefix string) *FixtureLoader {
	return &FixtureLoader{store: store, prefix: prefix}
}

// Bytes returns the stored fixture. Any store failure reads as a missing fixture.
func (l *FixtureLoader) Bytes(name string) ([]byte, bool) {
	b, err := l.store.Get(l.prefix + name)
	if err != nil {
		return nil, false
	}
	return b, true
}

// JSON returns the stored fixture parsed as JSON.
func (l *FixtureLoader) JSON(name string) (any, bool) {
	b, ok := l.Bytes(name)
	if !ok {
		return nil, false
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return v, true
}

// Names lists the fixtures under the prefix, sorted.
func (l *FixtureLoader) Names() ([]string, error) {
	keys, err := l.store.Keys()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, k := range keys {
		if name, ok := strings.CutPrefix(k, l.prefix); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Provision copies every named fixture from src into the store under the prefix.
func (l *FixtureLoader) Provision(src fixtures.Loader, names []string) error {
	var errs []error
	for _, name := range names {
		b, ok := src.Bytes(name)
		if !ok {
			errs = append(errs, errors.Join(ErrKeyNotFound, errors.New("fixture "+name)))
			continue
		}
		if err := l.store.Set(l.prefix+name, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
