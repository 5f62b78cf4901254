package fixtures

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Loader materializes fixtures.
type Loader interface {
	// JSON returns the fixture parsed as JSON. Objects decode to
	// map[string]any, arrays to []any and numbers to float64.
	JSON(name string) (any, bool)

	// Bytes returns the raw fixture contents.
	Bytes(name string) ([]byte, bool)
}

//go:embed responses/*.json
var embedded embed.FS

const extension = ".json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FSLoader reads fixtures from a file system.
type FSLoader struct {
	fsys fs.FS
}

// Ensure FSLoader always satisfies the Loader interface at compile time.
var _ Loader = (*FSLoader)(nil)

// New creates a Loader reading fixtures from the root of fsys.
func New(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Default returns a Loader over the embedded response set.
func Default() *FSLoader {
	sub, err := fs.Sub(embedded, "responses")
	if err != nil {
		// responses is a literal directory of embedded; Sub cannot fail for it.
		panic(err)
	}
	return New(sub)
}

// fileNames lists the files that may hold a fixture, preferred first. A name
// such as "site-api.v2" maps to "site-api.v2.json"; a name that already ends
// in .json, or names another file such as "image.png", is also tried as given.
func fileNames(name string) []string {
	if path.Ext(name) == extension {
		return []string{name}
	}
	return []string{name + extension, name}
}

// Bytes returns the raw contents of the named fixture.
func (l *FSLoader) Bytes(name string) ([]byte, bool) {
	if name == "" || l.fsys == nil {
		return nil, false
	}

	for _, file := range fileNames(name) {
		if b, err := fs.ReadFile(l.fsys, file); err == nil {
			return b, true
		}
	}
	return nil, false
}

// JSON returns the named fixture parsed as JSON.
func (l *FSLoader) JSON(name string) (any, bool) {
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

// Names lists the fixtures available at the root of the file system, without
// the ".json" extension, sorted.
func (l *FSLoader) Names() ([]string, error) {
	if l.fsys == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), extension))
	}
	sort.Strings(names)
	return names, nil
}
