package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/usecase"
	"github.com/spf13/cobra"
)

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board",
		Long: `Print tasks grouped by kanban column.

Examples:
  taskline board
  taskline board --refresh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			out, err := c.ShowBoardUseCase().Execute(cmd.Context(), usecase.ShowBoardInput{Refresh: refresh})
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), out.Columns)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the request cache")
	return cmd
}

func printBoard(w io.Writer, columns map[domain.Column][]*domain.Task) {
	for i, col := range domain.AllColumns() {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		tasks := columns[col]
		_, _ = fmt.Fprintf(w, "%s (%d)\n", col.Display(), len(tasks))
		for _, t := range tasks {
			flag := " "
			if t.Priority {
				flag = "!"
			}
			_, _ = fmt.Fprintf(w, "  %s #%d %s\n", flag, t.ID, t.Title)
		}
	}
}

// newCalendarCommand creates the calendar command.
func newCalendarCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Month   string
		Refresh bool
	}

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks by due date",
		Long: `Print tasks grouped by due date.

The current month is shown unless --month is given.

Examples:
  taskline calendar
  taskline calendar --month 2026-04`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			month := opts.Month
			if month == "" {
				month = c.Clock.Now().Format("2006-01")
			} else if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
			}

			out, err := c.ShowCalendarUseCase().Execute(cmd.Context(), usecase.ShowCalendarInput{
				Month:   month,
				Refresh: opts.Refresh,
			})
			if err != nil {
				return err
			}
			if len(out.Days) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No tasks due in %s.\n", month)
				return nil
			}
			printCalendar(cmd.OutOrStdout(), out.Days)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Month, "month", "", "Month to show (YYYY-MM)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "Bypass the request cache")
	return cmd
}

func printCalendar(w io.Writer, days map[string][]*domain.Task) {
	keys := make([]string, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	sort.Strings(keys)

	for _, day := range keys {
		label := day
		if d, err := time.Parse(domain.DateFormat, day); err == nil {
			label = d.Format("Mon Jan 2")
		}
		_, _ = fmt.Fprintln(w, label)
		for _, t := range days[day] {
			mark := " "
			if t.Done {
				mark = "x"
			}
			_, _ = fmt.Fprintf(w, "  [%s] #%d %s\n", mark, t.ID, t.Title)
		}
	}
}
