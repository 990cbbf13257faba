package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/typedstore/internal/core/domain"
)

func TestShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show", showCmd.Use)
	assert.Equal(t, "Show the stored settings", showCmd.Short)
}

func TestSetCmd_LongListsKeys(t *testing.T) {
	for _, key := range domain.LauncherSettingKeys() {
		assert.Contains(t, setCmd.Long, key)
	}
}

func TestShowCmd_CreatesDefaults(t *testing.T) {
	dir, gate := setupStoreTest(t)

	out, err := execute("show")

	require.NoError(t, err)
	assert.Contains(t, out, "Hotkey: Alt+Space")
	assert.Contains(t, out, "Max results: 8")
	assert.Contains(t, out, "Theme: system")
	assert.Contains(t, out, "Last query: (not set)")
	assert.FileExists(t, filepath.Join(dir, "settings.json"))
	assert.Equal(t, 1, gate.Closes())
}

func TestShowCmd_JSON(t *testing.T) {
	setupStoreTest(t)

	out, err := execute("show", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"hotkey": "Alt+Space"`)
	assert.Contains(t, out, `"max_results": 8`)
	assert.NotContains(t, out, "last_query")
}

func TestShowCmd_JSONMatchesFile(t *testing.T) {
	dir, _ := setupStoreTest(t)

	_, err := execute("set", "hotkey", "Ctrl+K")
	require.NoError(t, err)

	out, err := execute("show", "--json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, string(data), out)
}

func TestShowCmd_ListsPlugins(t *testing.T) {
	dir, _ := setupStoreTest(t)
	doc := `{"plugins": {"calc": {"disabled": true, "weight": 3}, "apps": {"action_keyword": "a", "weight": 1}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(doc), 0600))

	out, err := execute("show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Plugins]")
	assert.Contains(t, out, "apps: enabled, weight 1, keyword \"a\"")
	assert.Contains(t, out, "calc: disabled, weight 3")
	assert.Less(t, strings.Index(out, "apps:"), strings.Index(out, "calc:"))
}

func TestShowCmd_CorruptFileIsBackedUp(t *testing.T) {
	dir, _ := setupStoreTest(t)
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	out, err := execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "Hotkey: Alt+Space")

	out, err = execute("backups", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Backups (1):")
	assert.Contains(t, out, dir)
}

func TestSetCmd_UpdatesFile(t *testing.T) {
	dir, _ := setupStoreTest(t)

	out, err := execute("set", "max_results", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Set max_results")

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"max_results": 12`)
	assert.NotContains(t, string(data), "last_query")
}

func TestSetCmd_LastQueryRoundTrip(t *testing.T) {
	dir, _ := setupStoreTest(t)
	path := filepath.Join(dir, "settings.json")

	_, err := execute("set", "last_query", "firefox")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"last_query": "firefox"`)

	_, err = execute("set", "last_query", "")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "last_query")
}

func TestSetCmd_UnknownKey(t *testing.T) {
	setupStoreTest(t)

	_, err := execute("set", "colour", "red")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetCmd_InvalidValue(t *testing.T) {
	setupStoreTest(t)

	_, err := execute("set", "max_results", "lots")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetCmd_RequiresTwoArgs(t *testing.T) {
	setupStoreTest(t)

	_, err := execute("set", "hotkey")

	assert.Error(t, err)
}

func TestSetCmd_SaveFailureIsReported(t *testing.T) {
	_, gate := setupStoreTest(t)

	_, err := execute("show")
	require.NoError(t, err)

	gate.CloseErr = assert.AnError
	_, err = execute("set", "hotkey", "Ctrl+Space")

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestResetCmd_RestoresDefaults(t *testing.T) {
	dir, _ := setupStoreTest(t)
	path := filepath.Join(dir, "settings.json")

	_, err := execute("set", "theme", "dark")
	require.NoError(t, err)

	out, err := execute("reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset "+path+" to defaults")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "system"`)
}

func TestResetCmd_InteractiveAbort(t *testing.T) {
	dir, _ := setupStoreTest(t)
	path := filepath.Join(dir, "settings.json")
	isInteractive = func() bool { return true }

	_, err := execute("set", "theme", "dark")
	require.NoError(t, err)

	rootCmd.SetIn(strings.NewReader("n\n"))
	out, err := execute("reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)
}

func TestResetCmd_InteractiveConfirm(t *testing.T) {
	dir, _ := setupStoreTest(t)
	path := filepath.Join(dir, "settings.json")
	isInteractive = func() bool { return true }

	_, err := execute("set", "theme", "dark")
	require.NoError(t, err)

	rootCmd.SetIn(strings.NewReader("yes\n"))
	_, err = execute("reset")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "system"`)
}

func TestResetCmd_YesSkipsPrompt(t *testing.T) {
	setupStoreTest(t)
	isInteractive = func() bool { return true }

	out, err := execute("reset", "--yes")

	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "to defaults")
}

func TestConfirm(t *testing.T) {
	assert.True(t, confirm(strings.NewReader("y\n")))
	assert.True(t, confirm(strings.NewReader(" YES ")))
	assert.False(t, confirm(strings.NewReader("\n")))
	assert.False(t, confirm(strings.NewReader("nope\n")))
}

func TestPathCmd(t *testing.T) {
	dir, _ := setupStoreTest(t)

	out, err := execute("path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.json")+"\n", out)

	out, err = execute("path", "--name", "launcher.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "launcher.json")+"\n", out)
}

func TestPathCmd_RejectsInvalidName(t *testing.T) {
	setupStoreTest(t)

	_, err := execute("path", "--name", "../escape")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain name", input: "settings", want: filepath.Join("data", "settings.json")},
		{name: "json suffix", input: "settings.json", want: filepath.Join("data", "settings.json")},
		{name: "empty", input: "", wantErr: true},
		{name: "only suffix", input: ".json", wantErr: true},
		{name: "parent", input: "..", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := documentPath("data", tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
