package request

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// WooAPIVersion selects the WooCommerce REST namespace.
type WooAPIVersion string

const (
	// WooNone addresses the site's REST root.
	WooNone WooAPIVersion = ""
	// WooV1 is the wc/v1 namespace.
	WooV1 WooAPIVersion = "wc/v1"
	// WooV2 is the wc/v2 namespace.
	WooV2 WooAPIVersion = "wc/v2"
	// WooV3 is the wc/v3 namespace.
	WooV3 WooAPIVersion = "wc/v3"
)

// jetpackTunnelPath is the WordPress.com proxy endpoint for a site's REST API.
const jetpackTunnelPath = "jetpack-blogs/%d/rest-api/"

// Jetpack is a WooCommerce REST call tunnelled through the Jetpack proxy.
type Jetpack struct {
	// WooAPIVersion is the WooCommerce namespace the path lives under.
	WooAPIVersion WooAPIVersion
	// Method is the HTTP method the site receives.
	Method string
	// SiteID is the WordPress.com blog ID of the store.
	SiteID int64
	// Path is relative to the namespace, e.g. "products/12".
	Path string
	// Parameters are JSON-encoded into the tunnel's query or body field.
	Parameters Parameters
}

// URLRequest builds the tunnel request. Reads travel as GET and writes as
// POST, the site-side method is carried in the path argument.
func (r Jetpack) URLRequest() (*http.Request, error) {
	if !isValidMethod(r.Method) {
		return nil, ErrInvalidMethod
	}

	values := url.Values{}
	values.Set("json", "true")
	values.Set("path", r.tunnelledPath())

	if len(r.Parameters) > 0 {
		encoded, err := json.Marshal(r.Parameters)
		if err != nil {
			return nil, errors.Join(ErrEncodeParameters, err)
		}
		field := "body"
		if r.Method == http.MethodGet {
			field = "query"
		}
		values.Set(field, string(encoded))
	}

	method := http.MethodPost
	if r.Method == http.MethodGet {
		method = http.MethodGet
	}

	raw := DotcomBaseURL + string(WordPressV1_1) + "/" + fmt.Sprintf(jetpackTunnelPath, r.SiteID)
	return encode(method, raw, values)
}

// tunnelledPath is the site-relative path including the method override.
func (r Jetpack) tunnelledPath() string {
	var b strings.Builder
	b.WriteString("/")
	if r.WooAPIVersion != WooNone {
		b.WriteString(string(r.WooAPIVersion))
		b.WriteString("/")
	}
	b.WriteString(strings.TrimPrefix(r.Path, "/"))
	b.WriteString("&_method=")
	b.WriteString(strings.ToLower(r.Method))
	return b.String()
}
