package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/clawboard/internal/board"
)

func cleanWorkspace(path string) board.RepoWorkspaceDrift {
	return board.RepoWorkspaceDrift{
		WorkspacePath:  path,
		RepositoryRoot: board.Known(path),
		Clean:          board.Known(true),
		AheadCount:     board.Known(0),
		BehindCount:    board.Known(0),
	}
}

func TestAggregate_EmptyListIsAllUnknown(t *testing.T) {
	card := Aggregate(nil, "no workspaces configured")

	assert.False(t, card.Clean.Known)
	assert.False(t, card.AheadCount.Known)
	assert.False(t, card.BehindCount.Known)
	assert.False(t, card.DirtyCount.Known)
	assert.False(t, card.RepositoryCount.Known)
	assert.Equal(t, "no workspaces configured", card.Clean.Reason)
	assert.NotNil(t, card.Workspaces)
	assert.Empty(t, card.Workspaces)
}

func TestAggregate_AllCleanSums(t *testing.T) {
	a := cleanWorkspace("/a")
	a.AheadCount = board.Known(2)
	b := cleanWorkspace("/b")
	b.BehindCount = board.Known(3)

	card := Aggregate([]board.RepoWorkspaceDrift{a, b}, "")

	require.True(t, card.Clean.Known)
	assert.True(t, card.Clean.Value)
	assert.Equal(t, board.Known(0), card.DirtyCount)
	assert.Equal(t, board.Known(2), card.AheadCount)
	assert.Equal(t, board.Known(3), card.BehindCount)
	assert.Equal(t, board.Known(2), card.RepositoryCount)
}

func TestAggregate_DirtyIsDecisiveOverUnknown(t *testing.T) {
	dirty := cleanWorkspace("/dirty")
	dirty.Clean = board.Known(false)
	murky := cleanWorkspace("/murky")
	murky.Clean = board.Unknown[bool]("git status failed")

	card := Aggregate([]board.RepoWorkspaceDrift{dirty, murky}, "")

	// Dirty decides cleanliness even with an unknown workspace present,
	// but the dirty count is no longer computable.
	require.True(t, card.Clean.Known)
	assert.False(t, card.Clean.Value)
	assert.False(t, card.DirtyCount.Known)
	assert.Equal(t, "git status failed", card.DirtyCount.Reason)
}

func TestAggregate_UnknownCleanlinessWithoutDirty(t *testing.T) {
	a := cleanWorkspace("/a")
	b := cleanWorkspace("/b")
	b.Clean = board.Unknown[bool]("git status failed")

	card := Aggregate([]board.RepoWorkspaceDrift{a, b}, "")

	assert.False(t, card.Clean.Known)
	assert.Equal(t, "git status failed", card.Clean.Reason)
}

func TestAggregate_SingleUnknownMakesSumUnknown(t *testing.T) {
	a := cleanWorkspace("/a")
	a.AheadCount = board.Known(5)
	b := cleanWorkspace("/b")
	b.AheadCount = board.Unknown[int]("no upstream")

	card := Aggregate([]board.RepoWorkspaceDrift{a, b}, "")

	assert.False(t, card.AheadCount.Known)
	assert.Equal(t, "no upstream", card.AheadCount.Reason)
	require.True(t, card.BehindCount.Known)
	assert.Equal(t, 0, card.BehindCount.Value)
}

func TestAggregate_RepositoryCountIgnoresOtherUnknowns(t *testing.T) {
	resolved := cleanWorkspace("/a")
	resolved.Clean = board.Unknown[bool]("x")
	resolved.AheadCount = board.Unknown[int]("x")
	unresolved := board.RepoWorkspaceDrift{
		WorkspacePath:  "/b",
		RepositoryRoot: board.Unknown[string]("not a git repository"),
		Clean:          board.Unknown[bool]("not a git repository"),
		AheadCount:     board.Unknown[int]("not a git repository"),
		BehindCount:    board.Unknown[int]("not a git repository"),
	}

	card := Aggregate([]board.RepoWorkspaceDrift{resolved, unresolved}, "")

	require.True(t, card.RepositoryCount.Known)
	assert.Equal(t, 1, card.RepositoryCount.Value)
}

func TestAggregate_OrderInsensitive(t *testing.T) {
	a := cleanWorkspace("/a")
	a.Clean = board.Known(false)
	a.AheadCount = board.Known(1)
	b := cleanWorkspace("/b")
	b.BehindCount = board.Known(2)

	ab := Aggregate([]board.RepoWorkspaceDrift{a, b}, "")
	ba := Aggregate([]board.RepoWorkspaceDrift{b, a}, "")

	assert.Equal(t, ab.Clean, ba.Clean)
	assert.Equal(t, ab.DirtyCount, ba.DirtyCount)
	assert.Equal(t, ab.AheadCount, ba.AheadCount)
	assert.Equal(t, ab.BehindCount, ba.BehindCount)
	assert.Equal(t, ab.RepositoryCount, ba.RepositoryCount)
}
