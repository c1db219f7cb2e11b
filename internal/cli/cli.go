package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/rspecgen/internal/app"
	"github.com/vk/rspecgen/internal/catalog"
	"github.com/vk/rspecgen/internal/params"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	catalogPath string
	logLevel    string
	logFormat   string
}

// Execute runs the command line. The document and tables go to outW; logs
// and help for errors go to errW. Every returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}

// NewRootCommand builds the command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "rspecgen",
		Short: "Generate testbed resource requests from parameterized profiles",
		Long: `rspecgen compiles a profile and a small parameter set into a resource
request document: one node, its disk image, ordered bootstrap commands, the
automation role binding and overrides, and the tour shown to experimenters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.catalogPath, "catalog", "", "Catalog file or directory of .hcl files (default: built-in catalog).")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		newGenerateCommand(opts, errW),
		newParamsCommand(opts, errW),
		newProfilesCommand(opts, errW),
		newVersionCommand(),
	)
	return root
}

// newApp validates the configuration and builds the App. Configuration
// problems are usage errors.
func newApp(opts *rootOptions, cfg app.Config, logW io.Writer) (*app.App, error) {
	cfg.CatalogPath = opts.catalogPath
	cfg.LogLevel = opts.logLevel
	cfg.LogFormat = opts.logFormat

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return app.NewApp(logW, appConfig)
}

// toExitError assigns an exit code: bad input is a usage error, anything
// else is a failure.
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var verr *params.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, catalog.ErrUnknownProfile),
		errors.Is(err, params.ErrInvalidAssignment),
		strings.HasPrefix(err.Error(), "unknown command"),
		strings.HasPrefix(err.Error(), "accepts "):
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	default:
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}
}
