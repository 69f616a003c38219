// launchdash serves the SpaceX launch records dashboard.
//
// Usage:
//
//	launchdash [serve] [--config=<path>]
//	launchdash chart pie|scatter [--dataset=<path>] [--site=<site>] [--low=<kg>] [--high=<kg>] [--format=json|png] [-o <file>]
//	launchdash version
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
