/*
Package request models the outgoing API calls issued by remotes.

Every call implements Request, which knows how to build the *http.Request that
a transport executes. Three shapes are known to the package:

  - Authenticated wraps another Request and adds the bearer token.
  - Jetpack tunnels a WooCommerce REST call through the WordPress.com Jetpack proxy.
  - Dotcom calls the WordPress.com REST API directly.

Any other Request implementation is treated generically.

Path returns the path used to match a request against simulated responses.
For Jetpack and Dotcom it is the Path field verbatim, Authenticated defers to
the wrapped request and anything else falls back to the path component of the
URL it builds. Path never fails; when a URL cannot be built it returns "".
*/
package request
