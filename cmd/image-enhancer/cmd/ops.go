package cmd

import (
	"fmt"
	"text/tabwriter"

	"image-enhancer/internal/pipeline"

	"github.com/spf13/cobra"
)

func newOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "OPERATION\tWINDOW")
			for _, op := range pipeline.Operations() {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", op, op.Title())
			}
			return w.Flush()
		},
	}
}
