package networking

import "github.com/storeops/networking/request"

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "storeops"

// Network executes requests on behalf of a remote.
//
// Implementations invoke the completion exactly once per call. Callers must
// not assume the completion runs before the method returns.
type Network interface {
	// ResponseJSON executes req and delivers the response body parsed as JSON.
	ResponseJSON(req request.Request, completion func(any, error))

	// ResponseData executes req and delivers the raw response body.
	ResponseData(req request.Request, completion func([]byte, error))
}

// RuntimeConfig carries configuration that is used during creation of
// host-backed components.
type RuntimeConfig struct {
	// Namespace is the namespace used to scope host interactions.
	Namespace string
}
