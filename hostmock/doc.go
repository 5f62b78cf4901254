/*
Package hostmock provides a scripted host for waPC calls.

It lets tests exercise host-backed components, such as hostnetwork and the host
log sink, without a running host. Each capability/function pair is routed to a
Handler that can decode and assert on the payload and script the reply, and
every call is recorded for later inspection.

Quick start

	m := hostmock.New(hostmock.Config{
	  ExpectedNamespace: "storeops",
	  Routes: map[string]hostmock.Handler{
	    hostmock.Route("httpclient", "call"): func(p []byte) ([]byte, error) {
	      // Unmarshal and assert fields here
	      return okResponse(), nil
	    },
	  },
	})

	n, _ := hostnetwork.New(hostnetwork.Config{HostCall: m.HostCall})

Behavior

  - Every call is recorded first, whatever its outcome.
  - If Fail is true, HostCall returns Error, or ErrOperationFailed when Error is nil.
  - A non-empty ExpectedNamespace must match the call's namespace.
  - With no Routes configured every call succeeds with a nil reply. Otherwise
    the call must match a route; an unknown capability yields
    ErrUnexpectedCapability and a known capability with an unknown function
    yields ErrUnexpectedFunction.
*/
package hostmock
