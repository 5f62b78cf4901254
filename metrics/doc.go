/*
Package metrics instruments request dispatch through the host metrics
capability.

A Dispatch owns four metrics, all named under a common prefix:

	<prefix>_requests_total    counter, one per dispatched request
	<prefix>_failures_total    counter, one per request ending in error
	<prefix>_in_flight         gauge, requests currently being dispatched
	<prefix>_duration_seconds  histogram of dispatch latency

Emission is best-effort: marshal or host-call failures are swallowed so
instrumentation never changes the outcome delivered to a completion. A nil
*Dispatch is valid and records nothing.
*/
package metrics
