package cmd

import (
	"fmt"

	"github.com/halalquebec/photouploader/internal/sanitize"
	"github.com/spf13/cobra"
)

func newSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize NAME...",
		Short: "Print the identifier a folder or file name turns into",
		Example: `  photouploader sanitize "Montréal Poulet (Halal)"
  montreal_poulet_halal`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), sanitize.Name(arg)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
