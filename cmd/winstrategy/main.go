// cmd/winstrategy/main.go
//
// This is the entry point for the strategy tracker.
// When you run `winstrategy` from any directory, this is what executes.
//
// Flow:
// 1. Resolve the project directory and create .winstrategy/
// 2. Load config.yaml and open the process log and the session journal
// 3. Launch the TUI; strategies live only as long as this process

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "winstrategy: %v\n", err)
		os.Exit(1)
	}
}
