package request

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// WordPressAPIVersion selects the WordPress.com REST namespace.
type WordPressAPIVersion string

const (
	// WordPressV1_1 is the legacy REST v1.1 namespace.
	WordPressV1_1 WordPressAPIVersion = "rest/v1.1"
	// WordPressV1_2 is the legacy REST v1.2 namespace.
	WordPressV1_2 WordPressAPIVersion = "rest/v1.2"
	// WordPressWPComV2 is the wpcom/v2 namespace.
	WordPressWPComV2 WordPressAPIVersion = "wpcom/v2"
)

// Dotcom is a direct WordPress.com REST call.
type Dotcom struct {
	// WordPressAPIVersion is the namespace the path lives under.
	WordPressAPIVersion WordPressAPIVersion
	// Method is the HTTP method.
	Method string
	// Path is relative to the namespace, e.g. "me/sites".
	Path string
	// Parameters are sent as a query string or form body depending on Method.
	Parameters Parameters
}

// URLRequest builds the HTTP request for the call.
func (r Dotcom) URLRequest() (*http.Request, error) {
	if !isValidMethod(r.Method) {
		return nil, ErrInvalidMethod
	}

	raw := DotcomBaseURL + string(r.WordPressAPIVersion) + "/" + strings.TrimPrefix(r.Path, "/")
	return encode(r.Method, raw, formValues(r.Parameters))
}

// formValues flattens parameters into url.Values with stable ordering.
func formValues(p Parameters) url.Values {
	values := make(url.Values, len(p))
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values.Set(k, fmt.Sprint(p[k]))
	}
	return values
}

// encode builds a request for raw, placing values in the query string for
// GET, HEAD and DELETE and in a form body otherwise.
func encode(method, raw string, values url.Values) (*http.Request, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	if encodesInURL(method) {
		if len(values) > 0 {
			u.RawQuery = values.Encode()
		}
		return http.NewRequest(method, u.String(), nil)
	}

	req, err := http.NewRequest(method, u.String(), strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	return req, nil
}
