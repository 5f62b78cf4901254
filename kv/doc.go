/*
Package kv reads and writes the host key-value capability and serves
fixtures stored there.

Client forwards Get, Set, Delete and Keys to the host over waPC using the
kvstore protobuf messages. FixtureLoader adapts any KV into a fixtures.Loader
so a guest can answer simulated requests from fixtures provisioned on the
host instead of the embedded set:

	store, _ := kv.New(kv.Config{})
	n := mockup.New(mockup.Config{Loader: kv.NewFixtureLoader(store, "fixtures/")})

Tests can replace the host with Config.HostCall, or use package kv/mock for
an in-memory KV.
*/
package kv
