package cli

import (
	"fmt"

	"github.com/runoshun/taskline/internal/app"
	"github.com/spf13/cobra"
)

// newHealthCommand creates the health command.
func newHealthCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			out, err := c.CheckHealthUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Server:   %s\n", out.BaseURL)
			_, _ = fmt.Fprintf(w, "Status:   %s\n", out.Health.Status)
			_, _ = fmt.Fprintf(w, "Database: %s\n", orDash(out.Health.Database))
			if out.Health.Timestamp != "" {
				_, _ = fmt.Fprintf(w, "Time:     %s\n", out.Health.Timestamp)
			}
			return nil
		},
	}
	return cmd
}
