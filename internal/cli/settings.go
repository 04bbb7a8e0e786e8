package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/usecase"
	"github.com/spf13/cobra"
)

// newSettingsCommand creates the settings command group.
func newSettingsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change account settings",
	}
	cmd.AddCommand(newSettingsShowCommand(c), newSettingsSetCommand(c))
	return cmd
}

func newSettingsShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show account settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			s, err := c.ShowSettingsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		},
	}
	return cmd
}

func printSettings(w io.Writer, s *domain.UserSettings) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintf(tw, "timer_enabled\t%t\n", s.TimerEnabled)
	_, _ = fmt.Fprintf(tw, "notes_enabled\t%t\n", s.NotesEnabled)
	_, _ = fmt.Fprintf(tw, "theme\t%s\n", s.Theme)
	_, _ = fmt.Fprintf(tw, "auto_lock_minutes\t%d\n", s.AutoLockMinutes)
	_, _ = fmt.Fprintf(tw, "ai_api_url\t%s\n", orDash(s.AIAPIURL))
	_, _ = fmt.Fprintf(tw, "ai_model\t%s\n", orDash(s.AIModel))
}

func newSettingsSetCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key=value>...",
		Short: "Change account settings",
		Long: fmt.Sprintf(`Change one or more settings in a single request.

Keys: %s

Examples:
  taskline settings set theme=dark
  taskline settings set timer_enabled=false auto_lock_minutes=15`, strings.Join(domain.SettingKeys, ", ")),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			var patch domain.SettingsPatch
			for _, arg := range args {
				k, v, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidSetting, arg)
				}
				if err := patch.ParseSetting(strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
					return err
				}
			}

			s, err := c.UpdateSettingsUseCase().Execute(cmd.Context(), usecase.UpdateSettingsInput{Patch: patch})
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		},
	}
	return cmd
}
