package cli

import (
	"fmt"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/tui"
	"github.com/spf13/cobra"
)

// newTutorialCommand creates the tutorial command group.
func newTutorialCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Run or reset the guided tutorial",
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Open the TUI and start the tutorial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			return launchTUIFunc(cmd.Context(), c, tui.Options{
				InitialTab:    tui.TabList,
				StartTutorial: true,
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Show the tutorial again on the next launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			if err := c.ResetTutorialUseCase().Execute(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Tutorial will start on the next launch")
			return nil
		},
	}

	cmd.AddCommand(start, reset)
	return cmd
}
