package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Settings Command Tests
// =============================================================================

func TestSettingsShow(t *testing.T) {
	env := newTestEnv(t)
	env.settings.Current.AutoLockMinutes = 10

	out, _, err := execute(newSettingsShowCommand(env.c))

	require.NoError(t, err)
	assert.Regexp(t, `timer_enabled\s+true`, out)
	assert.Regexp(t, `theme\s+light`, out)
	assert.Regexp(t, `auto_lock_minutes\s+10`, out)
	assert.Regexp(t, `ai_model\s+-`, out)
}

func TestSettingsSet_MultipleKeysInOneRequest(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newSettingsSetCommand(env.c), "theme=dark", "timer_enabled=false", "auto_lock_minutes=15")

	require.NoError(t, err)
	assert.Equal(t, 1, env.settings.Updates)
	assert.Equal(t, "dark", env.settings.Current.Theme)
	assert.False(t, env.settings.Current.TimerEnabled)
	assert.Equal(t, 15, env.settings.Current.AutoLockMinutes)
	assert.Regexp(t, `theme\s+dark`, out)
}

func TestSettingsSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"missing equals", "theme"},
		{"unknown key", "color=red"},
		{"bad theme", "theme=neon"},
		{"bad bool", "timer_enabled=maybe"},
		{"negative minutes", "auto_lock_minutes=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, _, err := execute(newSettingsSetCommand(env.c), tt.arg)

			assert.ErrorIs(t, err, domain.ErrInvalidSetting)
			assert.Equal(t, 0, env.settings.Updates)
		})
	}
}

// =============================================================================
// Auth Command Tests
// =============================================================================

func TestLogin_Prompts(t *testing.T) {
	env := newTestEnv(t)
	env.auth.LoggedIn = false

	out, prompts, err := executeWithInput(newLoginCommand(env.c), "alex\n1234\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alex")
	assert.Contains(t, prompts, "Username: ")
	assert.Contains(t, prompts, "PIN: ")
	assert.True(t, env.auth.LoggedIn)
}

func TestLogin_WrongPIN(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeWithInput(newLoginCommand(env.c), "9999\n", "--username", "alex")

	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestLogin_EmptyPIN(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeWithInput(newLoginCommand(env.c), "", "--username", "alex")

	assert.ErrorIs(t, err, domain.ErrEmptyCredentials)
}

func TestSetup(t *testing.T) {
	env := newTestEnv(t)
	env.auth.Username = ""

	out, _, err := executeWithInput(newSetupCommand(env.c), "4321\n4321\n", "--username", "sam")

	require.NoError(t, err)
	assert.Contains(t, out, "Account created for sam")
	assert.Equal(t, "4321", env.auth.PIN)
}

func TestSetup_PINMismatch(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeWithInput(newSetupCommand(env.c), "4321\n1111\n")

	assert.ErrorIs(t, err, errPINMismatch)
}

func TestLogout_ClearsLocalState(t *testing.T) {
	env := newTestEnv(t, newTask(1, "Buy milk", domain.ColumnTodo))
	_, _, err := execute(newTaskListCommand(env.c))
	require.NoError(t, err)
	require.Equal(t, 1, env.c.Store.Len())

	env.auth.Err = &domain.APIError{Code: 0, Message: "connection refused"}
	_, _, err = execute(newLogoutCommand(env.c))

	require.Error(t, err)
	assert.Equal(t, 1, env.auth.LogoutCall)
	assert.Equal(t, 0, env.c.Store.Len())
}

func TestChangePIN(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := executeWithInput(newPINCommand(env.c), "1234\n5678\n5678\n")

	require.NoError(t, err)
	assert.Contains(t, out, "PIN changed")
	assert.Equal(t, "5678", env.auth.PIN)
}

func TestChangePIN_Mismatch(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeWithInput(newPINCommand(env.c), "1234\n5678\n8765\n")

	assert.ErrorIs(t, err, errPINMismatch)
	assert.Equal(t, "1234", env.auth.PIN)
}

// =============================================================================
// Data Command Tests
// =============================================================================

func exportDocument() *domain.ExportDocument {
	return &domain.ExportDocument{
		Version:        domain.ExportVersion,
		Tasks:          []json.RawMessage{json.RawMessage(`{"title":"a"}`), json.RawMessage(`{"title":"b"}`)},
		JournalEntries: []json.RawMessage{json.RawMessage(`{"content":"x"}`)},
	}
}

func TestExport_ToFile(t *testing.T) {
	env := newTestEnv(t)
	env.data.Document = exportDocument()
	path := filepath.Join(t.TempDir(), "backup.json")

	out, _, err := execute(newExportCommand(env.c), path)

	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 task(s), 1 journal entry")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version"`)
}

func TestExport_ToStdout(t *testing.T) {
	env := newTestEnv(t)
	env.data.Document = exportDocument()

	out, status, err := execute(newExportCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, `"tasks"`)
	assert.Contains(t, status, "Exported 2 task(s)")
}

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImport_Confirmed(t *testing.T) {
	env := newTestEnv(t)
	path := writeImportFile(t, `{"version":"1.0","tasks":[{"title":"a"}],"journal_entries":[]}`)

	out, _, err := executeWithInput(newImportCommand(env.c), "y\n", path)

	require.NoError(t, err)
	assert.Contains(t, out, "This will import 1 task(s), 0 journal entries.")
	assert.Contains(t, out, "Data imported successfully")
	assert.Contains(t, out, "tasks: 1")
	require.NotNil(t, env.data.Imported)
}

func TestImport_Declined(t *testing.T) {
	env := newTestEnv(t)
	path := writeImportFile(t, `{"version":"1.0","tasks":[{"title":"a"}]}`)

	_, _, err := executeWithInput(newImportCommand(env.c), "n\n", path)

	assert.ErrorIs(t, err, domain.ErrImportCancelled)
	assert.Nil(t, env.data.Imported)
}

func TestImport_YesSkipsPrompt(t *testing.T) {
	env := newTestEnv(t)
	path := writeImportFile(t, `{"version":"1.0","tasks":[]}`)

	_, prompts, err := execute(newImportCommand(env.c), "--yes", path)

	require.NoError(t, err)
	assert.NotContains(t, prompts, "Continue?")
	assert.NotNil(t, env.data.Imported)
}

func TestImport_NotAnObject(t *testing.T) {
	env := newTestEnv(t)
	path := writeImportFile(t, `[1, 2, 3]`)

	_, _, err := execute(newImportCommand(env.c), "--yes", path)

	assert.ErrorIs(t, err, domain.ErrImportNotObject)
	assert.Nil(t, env.data.Imported)
}

func TestFormatSummary(t *testing.T) {
	assert.Equal(t, "0 task(s), 0 journal entries", formatSummary(domain.ImportSummary{}))
	assert.Equal(t, "3 task(s), 1 journal entry and settings",
		formatSummary(domain.ImportSummary{Tasks: 3, JournalEntries: 1, Settings: true}))
}

// =============================================================================
// Health Command Tests
// =============================================================================

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newHealthCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, "Status:   healthy")
	assert.Contains(t, out, "Database: connected")
}

func TestHealth_Unreachable(t *testing.T) {
	env := newTestEnv(t)
	env.data.HealthErr = &domain.APIError{Code: 0, Message: "dial tcp: connection refused"}

	_, _, err := execute(newHealthCommand(env.c))

	require.Error(t, err)
	assert.Equal(t, domain.KindNetwork, domain.Classify(err))
	assert.Equal(t, "Error: Unable to connect to the server. Please check your internet connection.", FormatError(err))
}
