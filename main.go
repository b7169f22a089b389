// Package main is the entry point for dps.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/dps-tool/dps/cmd"
)

func main() {
	// Panic recovery so an unhandled panic still terminates with a stack
	// trace and a clean exit code instead of a raw crash.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nPANIC: %v\n", r)
			fmt.Fprintf(os.Stderr, "\nStack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
