// Command knot-runner plays, simulates and validates knot-graph board levels
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
