package request

// Path returns the path used to match r against simulated responses.
//
// Authenticated requests resolve to the path of the request they wrap, Jetpack
// and Dotcom requests to their Path field. Any other request resolves to the
// path component of its URL, or "" when no URL can be built. Wrappers nested
// deeper than MaxWrapDepth, or containing themselves, resolve to "".
func Path(r Request) (path string) {
	// URLRequest is caller code; a panic there must not escape.
	defer func() {
		if recover() != nil {
			path = ""
		}
	}()

	switch v := r.(type) {
	case nil:
		return ""
	case Authenticated, *Authenticated:
		inner, err := unwrap(v)
		if err != nil {
			return ""
		}
		return Path(inner)
	case Jetpack:
		return v.Path
	case *Jetpack:
		if v == nil {
			return ""
		}
		return v.Path
	case Dotcom:
		return v.Path
	case *Dotcom:
		if v == nil {
			return ""
		}
		return v.Path
	}

	req, err := r.URLRequest()
	if err != nil || req == nil || req.URL == nil {
		return ""
	}
	return req.URL.Path
}
