/*
Package mock provides an in-memory kv.KV for tests.

Seed it with values, override single keys with the fluent builder, and
inspect Calls afterwards:

	m := mock.New(mock.Config{Seed: map[string][]byte{"fixtures/product": body}})
	m.OnGet("fixtures/broken").ReturnError(kv.ErrKeyNotFound)
*/
package mock
