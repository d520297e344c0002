package collect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestFindToolConfig_OverrideWinsOverEverything(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("OPENCLAW_PROFILE", "")

	override := filepath.Join(t.TempDir(), "override.json")
	writeFile(t, override, `{}`)
	writeFile(t, filepath.Join(home, ".config", "openclaw", "config.json"), `{}`)
	t.Setenv("OPENCLAW_CONFIG_PATH", override)

	path, err := findToolConfig("openclaw")
	require.NoError(t, err)
	assert.Equal(t, override, path)
}

func TestFindToolConfig_ProfileBeforeXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("OPENCLAW_CONFIG_PATH", "")
	t.Setenv("OPENCLAW_PROFILE", "work")

	profilePath := filepath.Join(home, ".openclaw-work", "config.json")
	writeFile(t, profilePath, `{}`)
	writeFile(t, filepath.Join(home, ".config", "openclaw", "config.json"), `{}`)

	path, err := findToolConfig("openclaw")
	require.NoError(t, err)
	assert.Equal(t, profilePath, path)
}

func TestFindToolConfig_DotfileFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("OPENCLAW_CONFIG_PATH", "")
	t.Setenv("OPENCLAW_PROFILE", "")

	dotfile := filepath.Join(home, ".openclaw", "config.json")
	writeFile(t, dotfile, `{}`)

	path, err := findToolConfig("openclaw")
	require.NoError(t, err)
	assert.Equal(t, dotfile, path)
}

func TestFindToolConfig_NothingFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("OPENCLAW_CONFIG_PATH", "")
	t.Setenv("OPENCLAW_PROFILE", "")

	_, err := findToolConfig("openclaw")
	assert.Error(t, err)
}

func TestLoadToolConfig_InvalidJSONIsUnknown(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, cfgPath, `{not json`)
	t.Setenv("OPENCLAW_CONFIG_PATH", cfgPath)

	m := loadToolConfig("openclaw")
	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "invalid JSON")
}

func TestScanUpdateCheck_FieldAliases(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"latestVersion", `{"latestVersion":"2026.3.0"}`, "2026.3.0"},
		{"latest", `{"latest":"v2026.3.1"}`, "2026.3.1"},
		{"version", `{"version":"2026.3.2"}`, "2026.3.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, updateCheckFile), tt.body)

			m := scanUpdateCheck([]string{root})
			require.True(t, m.Known)
			assert.Equal(t, tt.want, m.Value)
		})
	}
}

func TestScanUpdateCheck_SkipsBadRoots(t *testing.T) {
	garbage := t.TempDir()
	writeFile(t, filepath.Join(garbage, updateCheckFile), `{broken`)
	good := t.TempDir()
	writeFile(t, filepath.Join(good, updateCheckFile), `{"latestVersion":"1.2.3"}`)

	m := scanUpdateCheck([]string{t.TempDir(), garbage, good})
	require.True(t, m.Known)
	assert.Equal(t, "1.2.3", m.Value)
}

func TestScanUpdateCheck_NoRootsHaveState(t *testing.T) {
	m := scanUpdateCheck([]string{t.TempDir()})
	assert.False(t, m.Known)
}

func TestEnvPrefix(t *testing.T) {
	assert.Equal(t, "OPENCLAW", envPrefix("openclaw"))
	assert.Equal(t, "MY_TOOL", envPrefix("my-tool"))
}
