// Command mockup answers simulated store API requests from fixtures.
//
// It loads routes from a YAML file (see package config) or from --route flags
// and prints the response a mockup.Network would deliver for a request path:
//
//	mockup resolve --route products=products-load-all --path products
//	mockup fixtures
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
