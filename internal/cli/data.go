package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/usecase"
	"github.com/spf13/cobra"
)

// newDataCommand creates the data command group.
func newDataCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export and import all account data",
	}
	cmd.AddCommand(newExportCommand(c), newImportCommand(c))
	return cmd
}

func newExportCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export tasks, journal and settings as JSON",
		Long: `Export all data as a JSON document.

The document is written to stdout unless a file is given.

Examples:
  taskline data export backup.json
  taskline data export > backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			status := cmd.ErrOrStderr()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
				status = cmd.OutOrStdout()
			}

			out, err := c.ExportDataUseCase().Execute(cmd.Context(), usecase.ExportDataInput{Writer: w})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(status, "Exported %s\n", formatSummary(out.Summary))
			return nil
		},
	}
	return cmd
}

func newImportCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export document",
		Long: `Import a document written by 'taskline data export'.

The file is validated and summarized first. You are asked to confirm
before anything is sent unless --yes is given.

Examples:
  taskline data import backup.json
  taskline data import backup.json --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			preview, err := c.PreviewImportUseCase().Execute(cmd.Context(), usecase.PreviewImportInput{Data: data})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "This will import %s.\n", formatSummary(preview.Summary))

			if !yes {
				ok, err := newPrompter(cmd).Confirm("Continue?")
				if err != nil {
					return err
				}
				if !ok {
					return domain.ErrImportCancelled
				}
			}

			res, err := c.ImportDataUseCase().Execute(cmd.Context(), usecase.ImportDataInput{Document: preview.Document})
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func formatSummary(s domain.ImportSummary) string {
	out := fmt.Sprintf("%d task(s), %d journal entr", s.Tasks, s.JournalEntries)
	if s.JournalEntries == 1 {
		out += "y"
	} else {
		out += "ies"
	}
	if s.Settings {
		out += " and settings"
	}
	return out
}

func printImportResult(w io.Writer, res *domain.ImportResult) {
	msg := res.Message
	if msg == "" {
		msg = "Import complete"
	}
	_, _ = fmt.Fprintln(w, msg)

	keys := make([]string, 0, len(res.ImportedCount))
	for k := range res.ImportedCount {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", k, res.ImportedCount[k])
	}
	for _, conflict := range res.Conflicts {
		_, _ = fmt.Fprintf(w, "  conflict: %s\n", conflict)
	}
}
