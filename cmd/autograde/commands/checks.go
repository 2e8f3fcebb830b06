package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/autograde/pkg/grader"
)

// NewChecksCommand creates the command listing the check names a case may use.
func NewChecksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "List the check names a case file may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range grader.CheckNames() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), name)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
