// Package cli implements the filterator command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// TraceIDs generates the trace_id of JSON responses.
	// If nil, defaults to UUIDv7Generator.
	TraceIDs TraceIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the filterator CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, so tests
// can preset fields such as TraceIDs.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filterator",
		Short: "Query in-memory records with Django-style lookups",
		Long: `filterator loads records from YAML, JSON, CUE or SQLite and queries them
in memory with chainable filter, exclude, order_by, get, count and exists
operations.

Lookup keys are attribute paths joined by "__" with an optional operator
keyword: vehicle__type=car, age__gte=18, name__istartswith=b.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewOperatorsCommand(opts))

	return cmd
}

// newLogger returns a text logger on w at Info, or Debug when verbose.
func (o *RootOptions) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatter builds the OutputFormatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	gen := o.TraceIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		TraceID:   gen.Generate(),
	}
}

// Execute runs cmd and returns the process exit code.
// Errors that were not reported by a command (flag parsing, invalid
// --format) are printed to stderr and exit with ExitCommandError.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	if code, ok := GetExitCode(err); ok {
		return code
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return ExitCommandError
}
