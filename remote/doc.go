/*
Package remote groups the API endpoints used by the store client.

Each remote issues request.Request values through a networking.Network and
maps the response into domain types. Because the Network is injected, remotes
run unchanged against the host transport in production and against
mockup.Network in tests:

	n := mockup.New(mockup.Config{})
	n.SimulateResponse("products", "products-load-all")

	remote.NewProductsRemote(n).LoadAllProducts(siteID, 1, 25, func(p []remote.Product, err error) {
		// ...
	})

Responses carrying a WordPress.com error payload are reported as *DotcomError
before any mapping happens.
*/
package remote
