// Command union-generator generates exhaustive helpers for sealed Go
// interfaces marked with //uniongen:union or //uniongen:errorunion.
//
// Usage:
//
//	union-generator gen [patterns]          write artifacts, prune stale ones
//	union-generator check [patterns]        report diagnostics only
//	union-generator check --stale [...]     also fail on out-of-date artifacts
//	union-generator watch [patterns]        regenerate on every change
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(stderr, "error: %v\n", exitErr.Err)
		}

		return exitErr.Code
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(stderr, "hint: %s\n", hint)
	}

	return 1
}
