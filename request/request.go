package request

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Request is an outgoing call that can be turned into an *http.Request.
type Request interface {
	// URLRequest builds the HTTP request to execute.
	URLRequest() (*http.Request, error)
}

// Parameters are the call arguments. Values are encoded with fmt formatting
// in query strings and as JSON when tunnelled through Jetpack.
type Parameters map[string]any

// Credentials authenticate calls against the WordPress.com API.
type Credentials struct {
	// Username is the WordPress.com account name.
	Username string
	// AuthToken is the OAuth2 bearer token.
	AuthToken string
	// SiteAddress is the store URL the credentials were issued for.
	SiteAddress string
}

// DotcomBaseURL is the root of every WordPress.com REST endpoint.
const DotcomBaseURL = "https://public-api.wordpress.com/"

// UserAgent is sent with every authenticated request.
const UserAgent = "storeops-networking/1.0"

var (
	// ErrInvalidMethod indicates an HTTP method the request types do not support.
	ErrInvalidMethod = errors.New("invalid HTTP method")

	// ErrNilRequest indicates an Authenticated request without an inner request.
	ErrNilRequest = errors.New("request is nil")

	// ErrEncodeParameters wraps failures while encoding request parameters.
	ErrEncodeParameters = errors.New("failed to encode parameters")

	// ErrInvalidURL indicates a URL could not be built for the request.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrWrapDepth indicates Authenticated wrappers nested deeper than
	// MaxWrapDepth, including a wrapper that contains itself.
	ErrWrapDepth = errors.New("authenticated requests nested too deeply")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func isValidMethod(method string) bool {
	switch method {
	case http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions:
		return true
	default:
		return false
	}
}

// encodesInURL reports whether parameters for method travel in the query
// string rather than a form body.
func encodesInURL(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodDelete
}
