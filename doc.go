/*
Package networking defines the transport seam shared by every remote in the
store client.

A Network executes a request and hands the outcome to a completion callback,
either as parsed JSON (ResponseJSON) or as raw bytes (ResponseData). Two
implementations exist: hostnetwork, which delegates HTTP execution to the host
runtime through waPC host calls, and mockup, which answers from bundled
fixtures so that code depending on a Network can be tested offline.

Errors use sentinel values, optionally joined with an underlying cause, and
can be checked with errors.Is.
*/
package networking
