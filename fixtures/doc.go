/*
Package fixtures loads canned API responses by name.

A fixture is a file in a read-only fs.FS. Names are file names with or without
the ".json" extension, so "products-load-all" and "products-load-all.json"
refer to the same file. Loading never fails loudly: a missing or malformed
fixture reports ok == false and callers decide what that means.

Default serves the response set embedded in this package, which mirrors the
payloads returned by the WooCommerce and WordPress.com APIs.

	l := fixtures.Default()
	v, ok := l.JSON("products-load-all")
*/
package fixtures
