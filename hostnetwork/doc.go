/*
Package hostnetwork implements networking.Network on top of the host runtime's
HTTP capability.

Requests are built with request.Request.URLRequest, serialized into protobuf
and handed to the host through a waPC host call; the host owns sockets, TLS
and connection reuse. Responses with a 2xx status deliver their body to the
completion, other statuses are reported as *StatusError. Setting
Config.Metrics records each dispatch through the host metrics capability.

Errors use sentinel values combined with the underlying cause and can be
checked with errors.Is.
*/
package hostnetwork
