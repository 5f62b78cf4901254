/*
Package mockup provides a Network that answers requests from fixtures instead
of the wire.

Responses are registered against URL suffixes. When a request is dispatched its
path is resolved with request.Path and compared against every registered
suffix. A simulated error wins over a simulated response; when nothing matches,
or the matching fixture cannot be loaded, the completion receives
networking.ErrUnknown, which usually means a test forgot to stub a call.

# Basic Usage

	n := mockup.New(mockup.Config{})
	n.SimulateResponse("products", "products-load-all")
	n.SimulateError("products/999", ErrNotFound)

	remote := remote.NewProductsRemote(n)

The fluent form reads the same way:

	n.On("products").Return("products-load-all")
	n.On("products/999").ReturnError(ErrNotFound)

# Matching

A pattern matches when the resolved path ends with it; the empty pattern
matches everything. When several patterns match the same path the longest one
wins, so "products/999" takes precedence over "999" or "".

# Inspecting Calls

Every dispatch is recorded before it is resolved:

	for _, r := range n.RequestsForResponseJSON() {
		// assert on r
	}

A Network is safe for concurrent use. Completions run on the caller's
goroutine after the internal lock is released, so they may call back into the
Network.
*/
package mockup
