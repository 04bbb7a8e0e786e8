package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/testutil"
	"github.com/spf13/cobra"
)

var testNow = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

// testEnv is a container wired to in-memory mocks.
type testEnv struct {
	c        *app.Container
	tasks    *testutil.MockTaskAPI
	review   *testutil.MockReviewAPI
	settings *testutil.MockSettingsAPI
	auth     *testutil.MockAuthAPI
	data     *testutil.MockDataAPI
	prefs    *testutil.MockPreferenceStore
	focus    *testutil.MockFocusLog
	log      *testutil.MockLogger
}

// newTestEnv creates an app.Container with mock dependencies.
func newTestEnv(t *testing.T, tasks ...*domain.Task) *testEnv {
	t.Helper()
	clock := &testutil.MockClock{NowTime: testNow}
	env := &testEnv{
		tasks:    testutil.NewMockTaskAPI(tasks...),
		review:   testutil.NewMockReviewAPI(),
		settings: &testutil.MockSettingsAPI{Current: domain.UserSettings{Theme: "light", TimerEnabled: true}},
		auth:     &testutil.MockAuthAPI{Username: "alex", PIN: "1234"},
		data:     &testutil.MockDataAPI{},
		prefs:    &testutil.MockPreferenceStore{},
		focus:    &testutil.MockFocusLog{},
		log:      &testutil.MockLogger{},
	}
	env.c = app.NewWithDeps(app.Config{ConfigDir: t.TempDir(), StateDir: t.TempDir()}, app.Deps{
		Tasks:     env.tasks,
		Review:    env.review,
		Settings:  env.settings,
		Auth:      env.auth,
		Data:      env.data,
		Prefs:     env.prefs,
		Focus:     env.focus,
		Clock:     clock,
		Scheduler: testutil.NewFakeScheduler(),
		Log:       env.log,
		Cache: cache.New(cache.Options{
			Clock: clock,
			Sleep: func(context.Context, time.Duration) error { return nil },
		}),
	})
	return env
}

// execute runs cmd with args and returns what it wrote to stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{} // A nil slice makes cobra read os.Args
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// executeWithInput is execute with stdin.
func executeWithInput(cmd *cobra.Command, input string, args ...string) (string, string, error) {
	cmd.SetIn(strings.NewReader(input))
	return execute(cmd, args...)
}

func newTask(id int, title string, col domain.Column) *domain.Task {
	statusID := col.StatusID()
	return &domain.Task{
		ID:       id,
		Title:    title,
		Order:    id,
		Done:     col == domain.ColumnDone,
		StatusID: &statusID,
		Status:   domain.TaskStatus{ID: statusID, Name: col.Display()},
	}
}
