package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareDotVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2026.2.9", "2026.2.12", -1},
		{"1.2.3", "1.2.3", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.2", "1.2.0", 0},     // missing trailing components are 0
		{"1.2", "1.2.1", -1},
		{"1.x.3", "1.0.3", 0},   // non-numeric component is 0
		{"10.0", "9.9", 1},      // numeric, not lexicographic, components
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareDotVersions(tt.a, tt.b),
			"CompareDotVersions(%q, %q)", tt.a, tt.b)
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"openclaw 2026.2.9 (stable)", "2026.2.9"},
		{"v1.4.2", "1.4.2"},
		{"version: 3.0", "3.0"},
		{"no version here", ""},
		{"build 7", ""}, // a lone number is not a dotted token
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractVersion(tt.in), "ExtractVersion(%q)", tt.in)
	}
}

func TestUpdateAvailable_NewerLatest(t *testing.T) {
	m := UpdateAvailable(Known("2026.2.9"), Known("2026.2.12"))
	require.True(t, m.Known)
	assert.True(t, m.Value)
}

func TestUpdateAvailable_EqualVersions(t *testing.T) {
	m := UpdateAvailable(Known("1.2.3"), Known("1.2.3"))
	require.True(t, m.Known)
	assert.False(t, m.Value)
}

func TestUpdateAvailable_OlderLatest(t *testing.T) {
	m := UpdateAvailable(Known("2.0.0"), Known("1.9.9"))
	require.True(t, m.Known)
	assert.False(t, m.Value)
}

func TestUpdateAvailable_UnknownSidesPropagate(t *testing.T) {
	m := UpdateAvailable(Unknown[string]("binary missing"), Known("1.0.0"))
	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "installed version unknown")
	assert.Contains(t, m.Reason, "binary missing")

	m = UpdateAvailable(Known("1.0.0"), Unknown[string]("no registry"))
	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "latest version unknown")
	assert.Contains(t, m.Reason, "no registry")
}
