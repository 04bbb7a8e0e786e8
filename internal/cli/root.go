// Package cli provides the command-line interface for taskline.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTask    = "task"
	groupPlan    = "plan"
	groupAccount = "account"
	groupSetup   = "setup"
)

// errNoContainer is returned by commands that need the API when the
// application could not be initialized.
var errNoContainer = errors.New("taskline is not initialized")

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

func launchTUI(ctx context.Context, c *app.Container, opts tui.Options) error {
	return tui.Run(ctx, c, opts)
}

// NewRootCommand creates the root command for taskline.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var global app.Options
	var opts struct {
		view     string
		tutorial bool
	}

	root := &cobra.Command{
		Use:   "taskline",
		Short: "Terminal client for Task Line",
		Long: `taskline is a terminal client for the Task Line API.

Running it without a subcommand opens the interactive TUI with the task
list, kanban board, calendar, focus timer, review and settings views.
The subcommands expose the same operations for scripting.

Configuration is read from $XDG_CONFIG_HOME/taskline/config.toml.
TASKLINE_API_URL or --api-url overrides the API origin.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. broken config)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errNoContainer
			}
			tuiOpts := tui.Options{StartTutorial: opts.tutorial}
			if opts.view != "" {
				tab, ok := tui.ParseTab(opts.view)
				if !ok {
					return fmt.Errorf("%w: %s", domain.ErrUnknownView, opts.view)
				}
				tuiOpts.InitialTab = tab
			}
			return launchTUIFunc(cmd.Context(), c, tuiOpts)
		},
	}

	addGlobalFlags(root.PersistentFlags(), &global)
	root.Flags().StringVar(&opts.view, "view", "", "Initial view (list, board, calendar, timer, review, settings)")
	root.Flags().BoolVar(&opts.tutorial, "tutorial", false, "Start the guided tutorial")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupPlan, Title: "Planning Commands:"},
		&cobra.Group{ID: groupAccount, Title: "Account Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Task commands
	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask
	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupTask
	calendarCmd := newCalendarCommand(c)
	calendarCmd.GroupID = groupTask
	root.AddCommand(taskCmd, boardCmd, calendarCmd)

	// Planning commands
	timerCmd := newTimerCommand(c)
	timerCmd.GroupID = groupPlan
	journalCmd := newJournalCommand(c)
	journalCmd.GroupID = groupPlan
	reviewCmd := newReviewCommand(c)
	reviewCmd.GroupID = groupPlan
	root.AddCommand(timerCmd, journalCmd, reviewCmd)

	// Account commands
	authCmd := newAuthCommand(c)
	authCmd.GroupID = groupAccount
	settingsCmd := newSettingsCommand(c)
	settingsCmd.GroupID = groupAccount
	dataCmd := newDataCommand(c)
	dataCmd.GroupID = groupAccount
	root.AddCommand(authCmd, settingsCmd, dataCmd)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup
	healthCmd := newHealthCommand(c)
	healthCmd.GroupID = groupSetup
	tutorialCmd := newTutorialCommand(c)
	tutorialCmd.GroupID = groupSetup
	root.AddCommand(configCmd, healthCmd, tutorialCmd)

	return root
}

// requireContainer returns errNoContainer when c is nil.
func requireContainer(c *app.Container) error {
	if c == nil {
		return errNoContainer
	}
	return nil
}
