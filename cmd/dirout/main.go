// Command dirout manages an output directory: removing entries, creating
// fresh or preserved subdirectories, and emptying it.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jmgilman/go/errors"
)

// Exit codes.
const (
	exitError  = 1
	exitUsage  = 2
	exitConfig = 10
	exitPanic  = 3
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(exitPanic)
		}
	}()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidConfig:
		return exitConfig
	case errors.CodeInvalidInput:
		return exitUsage
	default:
		return exitError
	}
}
