package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/filterator/internal/constraint"
	"github.com/roach88/filterator/internal/plan"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Filters  []string
	Excludes []string
	OrderBy  []string
	Get      bool
	Count    bool
	Exists   bool
	Table    string
	Path     string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <source>",
		Short: "Query records from a file or SQLite table",
		Long: `Load records from a source and query them.

All --filter lookups are combined with AND in one filter. Each --exclude
drops the records matching it. Ordering is applied after filtering, then
at most one of --get, --count or --exists ends the query.

Values are parsed as YAML scalars: 18 is an integer, true a bool, F a string.

Example:
  filterator query people.yaml --filter sex=M --filter age__gte=18 --order-by -age
  filterator query zoo.db --table creatures --exclude legs=8 --count
  filterator query people.json --get --filter name__iexact=bob --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "keep records matching key=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Excludes, "exclude", nil, "drop records matching key=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.OrderBy, "order-by", nil, "sort key, prefix with - for descending (repeatable)")
	cmd.Flags().BoolVar(&opts.Get, "get", false, "return the single matching record")
	cmd.Flags().BoolVar(&opts.Count, "count", false, "return the number of matching records")
	cmd.Flags().BoolVar(&opts.Exists, "exists", false, "return whether any record matches")
	cmd.Flags().StringVar(&opts.Table, "table", "", "table to read from SQLite sources")
	cmd.Flags().StringVar(&opts.Path, "path", "", "dot-separated path to the record list in YAML, JSON and CUE sources")
	cmd.MarkFlagsMutuallyExclusive("get", "count", "exists")

	return cmd
}

func runQuery(opts *QueryOptions, sourcePath string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	p, err := opts.plan(sourcePath)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeInvalidArgument, err)
	}
	return execute(opts.RootOptions, out, p, cmd)
}

// plan translates the flags into an unnamed plan.
func (o *QueryOptions) plan(sourcePath string) (*plan.Plan, error) {
	p := &plan.Plan{Name: "query", Source: sourcePath, Table: o.Table, Path: o.Path}

	if len(o.Filters) > 0 {
		where, err := parseLookups(o.Filters)
		if err != nil {
			return nil, err
		}
		p.Steps = append(p.Steps, plan.Step{Filter: &where})
	}
	for _, raw := range o.Excludes {
		where, err := parseLookups([]string{raw})
		if err != nil {
			return nil, err
		}
		p.Steps = append(p.Steps, plan.Step{Exclude: &where})
	}
	if len(o.OrderBy) > 0 {
		p.Steps = append(p.Steps, plan.Step{OrderBy: o.OrderBy})
	}

	switch {
	case o.Get:
		p.Steps = append(p.Steps, plan.Step{Get: &plan.Lookups{}})
	case o.Count:
		p.Steps = append(p.Steps, plan.Step{Count: true})
	case o.Exists:
		p.Steps = append(p.Steps, plan.Step{Exists: true})
	}
	return p, nil
}

func parseLookups(raw []string) (plan.Lookups, error) {
	out := make(plan.Lookups, 0, len(raw))
	for _, r := range raw {
		key, value, ok := strings.Cut(r, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid lookup %q: expected key=value", r)
		}
		out = append(out, constraint.Lookup{Key: key, Value: parseScalar(value)})
	}
	return out, nil
}

// parseScalar decodes s as a YAML scalar. Anything that is not a scalar,
// or fails to parse, is kept as the literal string.
func parseScalar(s string) any {
	if s == "" {
		return ""
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil || len(node.Content) != 1 {
		return s
	}
	scalar := node.Content[0]
	if scalar.Kind != yaml.ScalarNode {
		return s
	}
	var v any
	if err := scalar.Decode(&v); err != nil {
		return s
	}
	return v
}
