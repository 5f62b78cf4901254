package remote

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// DotcomError is an error payload returned by the WordPress.com API:
//
//	{"error": "unauthorized", "message": "user cannot view stats"}
type DotcomError struct {
	Code    string
	Message string
}

func (e *DotcomError) Error() string {
	if e.Message == "" {
		return "dotcom error: " + e.Code
	}
	return fmt.Sprintf("dotcom error: %s: %s", e.Code, e.Message)
}

// Is matches any DotcomError with the same Code, so callers can test against
// the sentinels below with errors.Is.
func (e *DotcomError) Is(target error) bool {
	t, ok := target.(*DotcomError)
	return ok && t.Code == e.Code
}

var (
	// ErrUnauthorized is returned when the token lacks access to the resource.
	ErrUnauthorized = &DotcomError{Code: "unauthorized"}

	// ErrInvalidToken is returned when the token is expired or revoked.
	ErrInvalidToken = &DotcomError{Code: "invalid_token"}

	// ErrNoRoute is returned when the site does not serve the requested endpoint.
	ErrNoRoute = &DotcomError{Code: "rest_no_route"}

	// ErrRequestFailed is returned when the Jetpack tunnel could not reach the site.
	ErrRequestFailed = &DotcomError{Code: "http_request_failed"}
)

// validate reports the API error carried by data, if any.
func validate(data []byte) error {
	code := jsoniter.Get(data, "error")
	if code.ValueType() != jsoniter.StringValue {
		return nil
	}
	return &DotcomError{
		Code:    code.ToString(),
		Message: jsoniter.Get(data, "message").ToString(),
	}
}
