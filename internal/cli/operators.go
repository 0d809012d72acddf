package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/filterator/internal/constraint"
)

// OperatorInfo describes one lookup keyword in JSON output.
type OperatorInfo struct {
	Keyword     string `json:"keyword"`
	Description string `json:"description"`
}

// NewOperatorsCommand creates the operators command.
func NewOperatorsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "operators",
		Short:         "List supported lookup keywords",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			var infos []OperatorInfo
			var text strings.Builder
			for i, op := range constraint.Operators() {
				infos = append(infos, OperatorInfo{Keyword: string(op), Description: op.Describe()})
				if i > 0 {
					text.WriteByte('\n')
				}
				fmt.Fprintf(&text, "%-12s %s", op, op.Describe())
			}
			return out.Success(infos, text.String())
		},
	}
}
