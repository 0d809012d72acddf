package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/filterator/internal/ir"
	"github.com/roach88/filterator/internal/plan"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <plan.yaml>",
		Short: "Run a query plan",
		Long: `Run a YAML query plan.

A plan names a source (relative to the plan file) and the steps to apply:

  name: adults_by_age
  source: people.yaml
  steps:
    - filter: {age__gte: 18}
    - order_by: [-age]

Example:
  filterator run plans/adults_by_age.yaml
  filterator run plans/count_parents.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runPlan(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	p, err := plan.Load(path)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeInvalidPlan, err)
	}
	out.VerboseLog("running plan %s (%d steps)", p.Name, len(p.Steps))
	return execute(opts, out, p, cmd)
}

// execute runs p and writes its result. Query errors exit with
// ExitFailure, everything else with ExitCommandError.
func execute(opts *RootOptions, out *OutputFormatter, p *plan.Plan, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := plan.Run(ctx, p, opts.newLogger(cmd.ErrOrStderr()))
	if err != nil {
		var qe *ir.Error
		if errors.As(err, &qe) {
			return out.Fail(ExitFailure, ErrCodeQueryFailed, err)
		}
		return out.Fail(ExitCommandError, ErrCodeLoadFailed, err)
	}

	text, err := renderText(result)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeQueryFailed, err)
	}
	return out.Success(result, text)
}

// renderText formats a result for text output: one JSON object per record,
// or the bare count or bool.
func renderText(result *plan.Result) (string, error) {
	switch result.Kind {
	case plan.KindCount, plan.KindExists:
		return fmt.Sprint(result.Value), nil
	case plan.KindItem:
		b, err := json.Marshal(result.Value)
		return string(b), err
	}

	records, err := json.Marshal(result.Value)
	if err != nil {
		return "", err
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(records, &rows); err != nil {
		return "", err
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n"), nil
}
