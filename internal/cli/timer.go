package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/tui"
	"github.com/runoshun/taskline/internal/usecase"
	"github.com/spf13/cobra"
)

// newTimerCommand creates the timer command.
func newTimerCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Open the focus timer",
		Long: `Open the TUI on the focus timer view.

Completed work sessions on a selected task are recorded locally and
can be summarized with 'taskline timer history'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			return launchTUIFunc(cmd.Context(), c, tui.Options{InitialTab: tui.TabTimer})
		},
	}
	cmd.AddCommand(newTimerHistoryCommand(c))
	return cmd
}

func newTimerHistoryCommand(c *app.Container) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show focused time per task",
		Long: `Summarize recorded work sessions per task.

Examples:
  # Last 7 days including today
  taskline timer history

  # Today only
  taskline timer history --days 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			uc, err := c.FocusHistoryUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.FocusHistoryInput{Days: days})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Totals) == 0 {
				_, _ = fmt.Fprintf(w, "No focus sessions since %s.\n", out.Since.Format(domain.DateFormat))
				return nil
			}

			// Titles are best effort; history is local and works offline.
			titles := make(map[int]string)
			if list, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{}); err == nil {
				for _, t := range list.Tasks {
					titles[t.ID] = t.Title
				}
			}

			_, _ = fmt.Fprintf(w, "Since %s\n\n", out.Since.Format(domain.DateFormat))
			printFocusTotals(w, out.Totals, titles)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days including today")
	return cmd
}

func printFocusTotals(w io.Writer, totals []usecase.FocusTotal, titles map[int]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	var sum time.Duration
	_, _ = fmt.Fprintln(tw, "TASK\tSESSIONS\tFOCUSED\tTITLE")
	for _, t := range totals {
		sum += t.Total
		task := "-"
		if t.TaskID > 0 {
			task = fmt.Sprintf("#%d", t.TaskID)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", task, t.Sessions, formatDuration(t.Total), orDash(titles[t.TaskID]))
	}
	_, _ = fmt.Fprintf(tw, "\t\t%s\ttotal\n", formatDuration(sum))
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
