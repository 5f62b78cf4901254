package request

import "net/http"

// Authenticated wraps a request and signs it with Credentials.
type Authenticated struct {
	// Credentials provide the bearer token.
	Credentials Credentials
	// Request is the wrapped call. It may itself be Authenticated.
	Request Request
}

// MaxWrapDepth bounds how many nested Authenticated wrappers are followed.
const MaxWrapDepth = 32

// unwrap follows Authenticated wrappers down to the request they sign.
func unwrap(r Request) (Request, error) {
	for range MaxWrapDepth + 1 {
		switch v := r.(type) {
		case Authenticated:
			r = v.Request
		case *Authenticated:
			if v == nil {
				return nil, ErrNilRequest
			}
			r = v.Request
		default:
			if r == nil {
				return nil, ErrNilRequest
			}
			return r, nil
		}
	}
	return nil, ErrWrapDepth
}

// URLRequest builds the wrapped request and adds authentication headers.
// The outermost Credentials sign the request.
func (r Authenticated) URLRequest() (*http.Request, error) {
	inner, err := unwrap(r)
	if err != nil {
		return nil, err
	}

	req, err := inner.URLRequest()
	if err != nil {
		return nil, err
	}
	if req == nil || req.URL == nil {
		return nil, ErrInvalidURL
	}
	if req.Header == nil {
		req.Header = make(http.Header)
	}

	req.Header.Set("Authorization", "Bearer "+r.Credentials.AuthToken)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Plain is a request for an arbitrary absolute URL, such as a media asset.
// It has no dedicated path rule and resolves through its URL.
type Plain struct {
	// Method is the HTTP method.
	Method string
	// URL is the absolute target.
	URL string
}

// URLRequest builds the HTTP request for the URL.
func (r Plain) URLRequest() (*http.Request, error) {
	if !isValidMethod(r.Method) {
		return nil, ErrInvalidMethod
	}
	return encode(r.Method, r.URL, nil)
}
