package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnendingLoop/minigrep/internal/parser"
)

func main() {
	// готовим слушатель прерываний - контекст для всего приложения
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.LookupEnv)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, lookupEnv parser.LookupEnv) int {
	root := newRootCmd(stdin, stdout, stderr, lookupEnv)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var aerr argsError
	if errors.As(err, &aerr) {
		fmt.Fprintf(stderr, "Problem parsing arguments: %v\n", aerr.err)
	} else {
		fmt.Fprintf(stderr, "Application error: %v\n", err)
	}
	return 1
}
