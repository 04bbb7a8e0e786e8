package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLaunch replaces launchTUIFunc for the duration of the test and
// returns the options of the last launch.
func captureLaunch(t *testing.T) func() *tui.Options {
	t.Helper()
	var got *tui.Options
	orig := launchTUIFunc
	launchTUIFunc = func(_ context.Context, _ *app.Container, opts tui.Options) error {
		got = &opts
		return nil
	}
	t.Cleanup(func() { launchTUIFunc = orig })
	return func() *tui.Options { return got }
}

func TestRoot_LaunchesTUI(t *testing.T) {
	env := newTestEnv(t)
	launched := captureLaunch(t)

	_, _, err := execute(NewRootCommand(env.c, "test"))

	require.NoError(t, err)
	require.NotNil(t, launched())
	assert.Equal(t, tui.Options{}, *launched())
}

func TestRoot_ViewAndTutorialFlags(t *testing.T) {
	env := newTestEnv(t)
	launched := captureLaunch(t)

	_, _, err := execute(NewRootCommand(env.c, "test"), "--view", "board", "--tutorial")

	require.NoError(t, err)
	require.NotNil(t, launched())
	assert.Equal(t, tui.TabBoard, launched().InitialTab)
	assert.True(t, launched().StartTutorial)
}

func TestRoot_UnknownView(t *testing.T) {
	env := newTestEnv(t)
	launched := captureLaunch(t)

	_, _, err := execute(NewRootCommand(env.c, "test"), "--view", "inbox")

	assert.ErrorIs(t, err, domain.ErrUnknownView)
	assert.Nil(t, launched())
}

func TestRoot_NilContainer(t *testing.T) {
	_, _, err := execute(NewRootCommand(nil, "test"))

	assert.ErrorIs(t, err, errNoContainer)
}

func TestRoot_PrintsConfigWarnings(t *testing.T) {
	env := newTestEnv(t)
	env.c.AppConfig.Warnings = []string{"unknown key in [api]: retries"}

	_, stderr, err := execute(NewRootCommand(env.c, "test"), "task", "categories")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: unknown key in [api]: retries")
}

func TestRoot_Version(t *testing.T) {
	out, _, err := execute(NewRootCommand(nil, "1.2.3"), "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}

func TestRoot_GlobalFlagsAccepted(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(NewRootCommand(env.c, "test"), "--api-url", "http://127.0.0.1:9", "task", "categories")

	assert.NoError(t, err)
}

func TestRoot_Groups(t *testing.T) {
	root := NewRootCommand(nil, "test")

	groups := make(map[string]string)
	for _, cmd := range root.Commands() {
		if cmd.GroupID != "" {
			groups[cmd.Name()] = cmd.GroupID
		}
	}

	assert.Equal(t, groupTask, groups["task"])
	assert.Equal(t, groupTask, groups["board"])
	assert.Equal(t, groupPlan, groups["timer"])
	assert.Equal(t, groupAccount, groups["auth"])
	assert.Equal(t, groupSetup, groups["config"])
}

func TestParseGlobalOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.Options
	}{
		{"none", []string{"task", "list"}, app.Options{}},
		{"config", []string{"--config", "alt.toml", "board"}, app.Options{ConfigPath: "alt.toml"}},
		{"api url with equals", []string{"task", "list", "--api-url=http://x:1"}, app.Options{BaseURL: "http://x:1"}},
		{"unknown flags ignored", []string{"task", "new", "--title", "x", "--config", "c.toml"}, app.Options{ConfigPath: "c.toml"}},
		{"help", []string{"--help"}, app.Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGlobalOptions(tt.args))
		})
	}
}

// =============================================================================
// Timer / Tutorial Command Tests
// =============================================================================

func TestTimer_OpensTimerTab(t *testing.T) {
	env := newTestEnv(t)
	launched := captureLaunch(t)

	_, _, err := execute(newTimerCommand(env.c))

	require.NoError(t, err)
	require.NotNil(t, launched())
	assert.Equal(t, tui.TabTimer, launched().InitialTab)
}

func TestTimerHistory(t *testing.T) {
	env := newTestEnv(t, newTask(1, "Write report", domain.ColumnTodo))
	env.focus.Sessions = []domain.FocusSession{
		{TaskID: 1, StartedAt: testNow.Add(-2 * time.Hour), Duration: 25 * time.Minute},
		{TaskID: 1, StartedAt: testNow.Add(-time.Hour), Duration: 25 * time.Minute},
		{TaskID: 7, StartedAt: testNow.Add(-30 * time.Minute), Duration: 25 * time.Minute},
		{TaskID: 1, StartedAt: testNow.AddDate(0, 0, -30), Duration: 25 * time.Minute},
	}

	out, _, err := execute(newTimerHistoryCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, "Since 2026-03-09")
	assert.Regexp(t, `#1\s+2\s+50m\s+Write report`, out)
	assert.Regexp(t, `#7\s+1\s+25m\s+-`, out)
	assert.Regexp(t, `1h15m\s+total`, out)
}

func TestTimerHistory_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newTimerHistoryCommand(env.c), "--days", "1")

	require.NoError(t, err)
	assert.Equal(t, "No focus sessions since 2026-03-15.\n", out)
}

func TestTimerHistory_WorksOffline(t *testing.T) {
	env := newTestEnv(t)
	env.tasks.ListErr = &domain.APIError{Code: 0, Message: "offline"}
	env.focus.Sessions = []domain.FocusSession{{TaskID: 3, StartedAt: testNow, Duration: time.Hour}}

	out, _, err := execute(newTimerHistoryCommand(env.c))

	require.NoError(t, err)
	assert.Regexp(t, `#3\s+1\s+1h00m`, out)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", formatDuration(0))
	assert.Equal(t, "25m", formatDuration(25*time.Minute))
	assert.Equal(t, "2h05m", formatDuration(2*time.Hour+5*time.Minute))
}

func TestTutorialStart(t *testing.T) {
	env := newTestEnv(t)
	launched := captureLaunch(t)

	_, _, err := execute(newTutorialCommand(env.c), "start")

	require.NoError(t, err)
	require.NotNil(t, launched())
	assert.True(t, launched().StartTutorial)
}

func TestTutorialReset(t *testing.T) {
	env := newTestEnv(t)
	env.prefs.Prefs.TutorialCompleted = true

	out, _, err := execute(newTutorialCommand(env.c), "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "next launch")
	assert.False(t, env.prefs.Prefs.TutorialCompleted)
	assert.Equal(t, 1, env.prefs.Saves)
}

// =============================================================================
// Config Command Tests
// =============================================================================

func TestConfigTemplate_WithoutContainer(t *testing.T) {
	out, _, err := execute(newConfigCommand(nil), "template")

	require.NoError(t, err)
	assert.Equal(t, domain.RenderConfigTemplate(), out)
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newConfigCommand(env.c), "init")

	require.NoError(t, err)
	path := filepath.Join(env.c.Config.ConfigDir, domain.ConfigFileName)
	assert.Contains(t, out, path)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	_, _, err = execute(newConfigCommand(env.c), "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(env.c.Config.ConfigDir, domain.ConfigFileName),
		[]byte("[api]\ntimeout = \"5s\"\n"), 0o600))
	env.c.AppConfig.API.BaseURL = "http://127.0.0.1:9000"

	out, _, err := execute(newConfigCommand(env.c), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.NotContains(t, out, "(not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Regexp(t, `timeout = ['"]5s['"]`, out)
	assert.Regexp(t, `base_url = ['"]http://127\.0\.0\.1:9000['"]`, out)
}

func TestConfigShow_NotFound(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newConfigCommand(env.c), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "(not found)")
}
