package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/rspecgen/internal/cli"
)

// main is the entrypoint for the rspecgen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The document goes to outW, logs to errW.
func run(outW, errW io.Writer, args []string) (err error) {
	// Compilation defects panic; report them as a critical error instead of
	// a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{
				Code:    cli.ExitFailure,
				Message: fmt.Sprintf("A critical error occurred: %v", r),
			}
		}
	}()

	return cli.Execute(context.Background(), args, outW, errW)
}
