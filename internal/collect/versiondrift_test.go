package collect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

func TestCollectVersionDrift_RegistryFromStatus(t *testing.T) {
	r := newFakeRunner(map[string]cmdexec.Result{
		"openclaw --version": okText("openclaw 2026.2.9 (stable)\n"),
	})
	c := newTestCollector(t, r, Options{})
	status := knownStatus(StatusPayload{Update: &UpdateInfo{LatestVersion: "2026.2.12"}})

	card, warnings := c.CollectVersionDrift(context.Background(), status)

	assert.Equal(t, board.Known("2026.2.9"), card.InstalledVersion)
	assert.Equal(t, board.Known("2026.2.12"), card.LatestVersion)
	assert.Equal(t, board.Known(true), card.UpdateAvailable)
	assert.Empty(t, warnings)
}

func TestCollectVersionDrift_UpToDate(t *testing.T) {
	r := newFakeRunner(map[string]cmdexec.Result{
		"openclaw --version": okText("2026.2.12\n"),
	})
	c := newTestCollector(t, r, Options{})
	status := knownStatus(StatusPayload{Update: &UpdateInfo{LatestVersion: "2026.2.12"}})

	card, _ := c.CollectVersionDrift(context.Background(), status)

	assert.Equal(t, board.Known(false), card.UpdateAvailable)
}

func TestCollectVersionDrift_StateFileFallback(t *testing.T) {
	stateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "update-check.json"),
		[]byte(`{"latestVersion":"2026.3.0"}`), 0o644))

	r := newFakeRunner(map[string]cmdexec.Result{
		"openclaw --version": okText("2026.2.9\n"),
	})
	c := newTestCollector(t, r, Options{})
	t.Setenv("OPENCLAW_STATE_DIR", stateDir)

	card, warnings := c.CollectVersionDrift(context.Background(), knownStatus(StatusPayload{}))

	assert.Equal(t, board.Known("2026.3.0"), card.LatestVersion)
	assert.Equal(t, board.Known(true), card.UpdateAvailable)
	require.Len(t, warnings, 1)
	assert.Equal(t, "registry-degraded", warnings[0].Code)
	assert.Contains(t, warnings[0].Reason, "update-check.json")
}

func TestCollectVersionDrift_NoLatestAnywhere(t *testing.T) {
	r := newFakeRunner(map[string]cmdexec.Result{
		"openclaw --version": okText("2026.2.9\n"),
	})
	c := newTestCollector(t, r, Options{})

	card, warnings := c.CollectVersionDrift(context.Background(), unknownStatus("openclaw timed out"))

	assert.False(t, card.LatestVersion.Known)
	require.False(t, card.UpdateAvailable.Known)
	assert.Contains(t, card.UpdateAvailable.Reason, "latest version unknown")
	require.Len(t, warnings, 1)
	assert.Equal(t, "latest-unknown", warnings[0].Code)
}

func TestCollectVersionDrift_InstalledUnknown(t *testing.T) {
	r := newFakeRunner(map[string]cmdexec.Result{
		"openclaw --version": failCmd("openclaw could not be started: executable file not found in $PATH"),
	})
	c := newTestCollector(t, r, Options{})
	status := knownStatus(StatusPayload{Update: &UpdateInfo{LatestVersion: "2026.2.12"}})

	card, warnings := c.CollectVersionDrift(context.Background(), status)

	assert.False(t, card.InstalledVersion.Known)
	require.False(t, card.UpdateAvailable.Known)
	assert.Contains(t, card.UpdateAvailable.Reason, "installed version unknown")
	require.Len(t, warnings, 1)
	assert.Equal(t, "installed-unknown", warnings[0].Code)
}

func TestNormalizedVersion_NoTokenIsUnknown(t *testing.T) {
	m := normalizedVersion(board.Known("development build"))
	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "no version token")
}
