package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/usecase"
	"github.com/spf13/cobra"
)

// newJournalCommand creates the journal command group.
func newJournalCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Read and write journal entries",
	}
	cmd.AddCommand(
		newJournalListCommand(c),
		newJournalAddCommand(c),
		newJournalEditCommand(c),
	)
	return cmd
}

func newJournalListCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			entries, err := c.ListJournalUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No journal entries.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()
			_, _ = fmt.Fprintln(tw, "ID\tDATE\tCONTENT")
			for _, e := range entries {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", e.ID, e.EntryDate, firstLine(e.Content, 60))
			}
			return nil
		},
	}
	return cmd
}

func newJournalAddCommand(c *app.Container) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a journal entry",
		Long: `Add a journal entry for a day (today by default).

Use "-" to read the entry from stdin.

Examples:
  taskline journal add "Shipped the importer"
  taskline journal add --date 2026-03-14 "Quiet day"
  git log --oneline -5 | taskline journal add -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			content, err := entryContent(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			entry, err := c.WriteJournalUseCase().Execute(cmd.Context(), usecase.WriteJournalInput{
				Date:    date,
				Content: content,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added journal entry #%d for %s\n", entry.ID, entry.EntryDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	return cmd
}

func newJournalEditCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Replace the text of a journal entry",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry ID: %w", err)
			}
			content, err := entryContent(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}
			if _, err := c.WriteJournalUseCase().Execute(cmd.Context(), usecase.WriteJournalInput{
				EntryID: id,
				Content: content,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated journal entry #%d\n", id)
			return nil
		},
	}
	return cmd
}

// entryContent joins args, or reads r when the only argument is "-".
func entryContent(r io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

// newReviewCommand creates the review command.
func newReviewCommand(c *app.Container) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show daily and weekly summaries",
		Long: `Show the daily summary, the weekly completion rate and insights.

Examples:
  taskline review
  taskline review --date 2026-03-14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			out, err := c.ShowReviewUseCase().Execute(cmd.Context(), usecase.ShowReviewInput{Date: date})
			if err != nil {
				return err
			}
			printReview(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day for the daily summary (YYYY-MM-DD)")
	return cmd
}

func printReview(w io.Writer, out *usecase.ShowReviewOutput) {
	if d := out.Daily; d != nil {
		_, _ = fmt.Fprintf(w, "Day %s\n", d.Date)
		_, _ = fmt.Fprintf(w, "  Completed: %d\n", d.TasksCompleted)
		if d.JournalEntry != nil && *d.JournalEntry != "" {
			_, _ = fmt.Fprintf(w, "  Journal: %s\n", firstLine(*d.JournalEntry, 70))
		}
	}
	if wk := out.Weekly; wk != nil {
		_, _ = fmt.Fprintf(w, "Week %s to %s\n", wk.WeekStart, wk.WeekEnd)
		_, _ = fmt.Fprintf(w, "  Completed: %d of %d (%.0f%%)\n", wk.TasksCompleted, wk.TotalTasks, wk.CompletionRate)
	}
	if len(out.Insights) > 0 {
		_, _ = fmt.Fprintln(w, "Insights")
		printInsights(w, out.Insights)
	}
}

func printInsights(w io.Writer, insights domain.Insights) {
	keys := make([]string, 0, len(insights))
	for k := range insights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "  %s: %v\n", strings.ReplaceAll(k, "_", " "), insights[k])
	}
}

// firstLine returns the first line of s, truncated to n runes.
func firstLine(s string, n int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "..."
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
