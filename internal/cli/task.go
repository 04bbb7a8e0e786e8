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

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage tasks",
		Long: `Create, inspect and update tasks.

Examples:
  taskline task list
  taskline task new --title "Buy milk" --due 2026-03-20
  taskline task done 3 --notes "Picked up two"`,
	}

	cmd.AddCommand(
		newTaskListCommand(c),
		newTaskShowCommand(c),
		newTaskNewCommand(c),
		newTaskEditCommand(c),
		newTaskDoneCommand(c, true),
		newTaskDoneCommand(c, false),
		newTaskRmCommand(c),
		newArchiveCompletedCommand(c),
		newArchivedCommand(c),
		newCategoriesCommand(c),
	)
	return cmd
}

// newTaskListCommand creates the task list command.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status   string
		Category string
		Page     int
		All      bool
		Refresh  bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in board order.

Done tasks are hidden unless --all is given.

Examples:
  # List open tasks
  taskline task list

  # Include done tasks
  taskline task list --all

  # Filter by server-side status and category
  taskline task list --status "In Progress" --category work`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTasksInput{
				Filter: domain.TaskFilter{
					Status:   opts.Status,
					Category: opts.Category,
					Page:     opts.Page,
				},
				Refresh: opts.Refresh,
			})
			if err != nil {
				return err
			}

			tasks := out.Tasks
			if !opts.All {
				tasks = filterTasks(tasks, func(t *domain.Task) bool { return !t.Done })
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status name")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include done tasks")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "Bypass the request cache")

	return cmd
}

// printTaskList prints tasks as a table.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tCATEGORY\tTITLE")
	for _, t := range tasks {
		title := t.Title
		if t.Priority {
			title = "! " + title
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Column().Display(),
			orDash(t.DueDay()),
			orDash(t.Category),
			title,
		)
	}
}

// newTaskShowCommand creates the task show command.
func newTaskShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long: `Show a single task.

Examples:
  taskline task show 3
  taskline task show "#3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}
			printTaskDetails(cmd.OutOrStdout(), out.Task)
			return nil
		},
	}
	return cmd
}

// printTaskDetails prints a task in a readable form.
func printTaskDetails(w io.Writer, t *domain.Task) {
	_, _ = fmt.Fprintf(w, "# Task %d: %s\n\n", t.ID, t.Title)
	if t.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", t.Description)
	}
	_, _ = fmt.Fprintf(w, "Status: %s\n", t.Column().Display())
	if t.Status.Name != "" && t.Status.Name != t.Column().Display() {
		_, _ = fmt.Fprintf(w, "Server status: %s\n", t.Status.Name)
	}
	if t.Priority {
		_, _ = fmt.Fprintln(w, "Priority: yes")
	}
	if t.Category != "" {
		_, _ = fmt.Fprintf(w, "Category: %s\n", t.Category)
	}
	if due := t.DueDay(); due != "" {
		_, _ = fmt.Fprintf(w, "Due: %s\n", due)
	}
	if t.EstimateMinutes != nil {
		_, _ = fmt.Fprintf(w, "Estimate: %d min\n", *t.EstimateMinutes)
	}
	if t.CreatedAt != "" {
		_, _ = fmt.Fprintf(w, "Created: %s\n", t.CreatedAt)
	}
	if t.ClosedOn != "" {
		_, _ = fmt.Fprintf(w, "Closed: %s\n", t.ClosedOn)
	}
	if t.Archived {
		_, _ = fmt.Fprintln(w, "Archived: yes")
	}
	if t.Notes != "" {
		_, _ = fmt.Fprintf(w, "\nNotes:\n")
		for _, line := range strings.Split(t.Notes, "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// newTaskNewCommand creates the task new command.
func newTaskNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Category    string
		Due         string
		Estimate    int
		Priority    bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task.

The task starts in the To Do column.

Examples:
  # Create a task
  taskline task new --title "Buy milk"

  # With a due date, category and priority flag
  taskline task new --title "File taxes" --due 2026-04-15 --category admin --priority

  # With a time estimate in minutes
  taskline task new --title "Write report" --estimate 90`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			input := usecase.NewTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				Category:    opts.Category,
				DueDate:     opts.Due,
				Priority:    opts.Priority,
			}
			if cmd.Flags().Changed("estimate") {
				input.EstimateMinutes = &opts.Estimate
			}

			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.TaskID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Task title (required)")
	cmd.Flags().StringVarP(&opts.Description, "body", "b", "", "Task description")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Category name")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Estimate, "estimate", 0, "Time estimate in minutes")
	cmd.Flags().BoolVar(&opts.Priority, "priority", false, "Mark as priority")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newTaskEditCommand creates the task edit command.
func newTaskEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Category    string
		Due         string
		Status      string
		Estimate    int
		Priority    bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Update fields of an existing task. Only the given flags are changed.

Examples:
  # Rename a task
  taskline task edit 3 --title "Buy oat milk"

  # Move a task to another column
  taskline task edit 3 --status in_progress

  # Clear the due date
  taskline task edit 3 --due ""

  # Remove the priority flag
  taskline task edit 3 --priority=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			flags := cmd.Flags()
			var patch domain.TaskPatch
			if flags.Changed("title") {
				patch.Title = &opts.Title
			}
			if flags.Changed("body") {
				patch.Description = &opts.Description
			}
			if flags.Changed("category") {
				patch.Category = &opts.Category
			}
			if flags.Changed("due") {
				patch.DueDate = &opts.Due
			}
			if flags.Changed("estimate") {
				patch.EstimateMinutes = &opts.Estimate
			}
			if flags.Changed("priority") {
				patch.Priority = &opts.Priority
			}

			// Entering or leaving the done column also sets the done flag.
			if flags.Changed("status") {
				col := domain.ColumnFromStatusName(opts.Status)
				if col == domain.ColumnTodo && !isTodoName(opts.Status) {
					return fmt.Errorf("%w: %s", domain.ErrInvalidColumn, opts.Status)
				}
				statusID := col.StatusID()
				done := col == domain.ColumnDone
				patch.StatusID = &statusID
				patch.Done = &done
			}

			uc := c.UpdateTaskUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.UpdateTaskInput{
				TaskID: taskID,
				Patch:  patch,
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", taskID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&opts.Description, "body", "b", "", "New description")
	cmd.Flags().StringVar(&opts.Category, "category", "", "New category")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Move to column (todo, in_progress, done)")
	cmd.Flags().IntVar(&opts.Estimate, "estimate", 0, "New time estimate in minutes")
	cmd.Flags().BoolVar(&opts.Priority, "priority", false, "Set or clear the priority flag")

	return cmd
}

// isTodoName reports whether s names the todo column explicitly.
func isTodoName(s string) bool {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_") {
	case "todo", "to_do":
		return true
	}
	return false
}

// newTaskDoneCommand creates the done (or undone) command.
func newTaskDoneCommand(c *app.Container, done bool) *cobra.Command {
	var notes string

	use, short, verb := "done <id>", "Mark a task as done", "Completed"
	if !done {
		use, short, verb = "undone <id>", "Mark a task as not done", "Reopened"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			input := usecase.SetDoneInput{TaskID: taskID, Done: done}
			if cmd.Flags().Changed("notes") {
				input.Notes = &notes
			}

			uc := c.SetDoneUseCase()
			if _, err := uc.Execute(cmd.Context(), input); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s task #%d\n", verb, taskID)
			return nil
		},
	}

	if done {
		cmd.Long = `Mark a task as done. Completion notes are optional.

Examples:
  taskline task done 3
  taskline task done 3 --notes "Shipped in v2"`
		cmd.Flags().StringVar(&notes, "notes", "", "Completion notes")
	}

	return cmd
}

// newTaskRmCommand creates the task rm command.
func newTaskRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task permanently.

Examples:
  # Delete task by ID
  taskline task rm 1

  # Delete task using # prefix
  taskline task rm "#1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			uc := c.DeleteTaskUseCase()
			if err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: taskID}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", taskID)
			return nil
		},
	}
	return cmd
}

// newArchiveCompletedCommand creates the archive-completed command.
func newArchiveCompletedCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive-completed",
		Short: "Archive all done tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			out, err := c.ArchiveCompletedUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Archived %d task(s)\n", out.Archived)
			return nil
		},
	}
	return cmd
}

// newArchivedCommand creates the archived command.
func newArchivedCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archived",
		Short: "List archived tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			tasks, err := c.ListArchivedUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No archived tasks.")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	return cmd
}

// newCategoriesCommand creates the categories command.
func newCategoriesCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List task categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			names, err := c.ListCategoriesUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	return cmd
}

// parseTaskID parses a task ID string to int.
func parseTaskID(s string) (int, error) {
	// Remove leading # if present
	s = strings.TrimPrefix(s, "#")
	var id int
	_, err := fmt.Sscanf(s, "%d", &id)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}

func filterTasks(tasks []*domain.Task, keep func(*domain.Task) bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
