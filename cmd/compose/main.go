// Command compose evaluates, traces and draws compositions of online learning steps
// described in a configuration file.
package main

import (
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
