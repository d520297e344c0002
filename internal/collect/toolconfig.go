package collect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/steveyegge/clawboard/internal/board"
)

// ToolConfig is the slice of the monitored tool's JSON config file that the
// board cares about: the agent list and the channel map. Values are kept raw
// because only their presence and count matter here.
type ToolConfig struct {
	Agents   []json.RawMessage          `json:"agents,omitempty"`
	Channels map[string]json.RawMessage `json:"channels,omitempty"`
}

// envPrefix derives the tool's environment-variable prefix, e.g.
// "openclaw" -> "OPENCLAW".
func envPrefix(tool string) string {
	return strings.ToUpper(strings.ReplaceAll(tool, "-", "_"))
}

// findToolConfig resolves the tool's config file through the prioritized
// path list: explicit override env var, per-profile path, XDG-style config
// path, dotfile fallback. Returns the first path that exists.
func findToolConfig(tool string) (string, error) {
	prefix := envPrefix(tool)
	home, _ := os.UserHomeDir()

	var candidates []string
	if override := os.Getenv(prefix + "_CONFIG_PATH"); override != "" {
		candidates = append(candidates, override)
	}
	if profile := os.Getenv(prefix + "_PROFILE"); profile != "" && home != "" {
		candidates = append(candidates, filepath.Join(home, "."+tool+"-"+profile, "config.json"))
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" && home != "" {
		configHome = filepath.Join(home, ".config")
	}
	if configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, tool, "config.json"))
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, "."+tool, "config.json"))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s config file found", tool)
}

// loadToolConfig reads and parses the tool config, best-effort. Missing or
// unreadable files are unknown with a reason, never fatal.
func loadToolConfig(tool string) board.Metric[ToolConfig] {
	path, err := findToolConfig(tool)
	if err != nil {
		return board.Unknown[ToolConfig](err.Error())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return board.Unknown[ToolConfig](fmt.Sprintf("unreadable config file %s: %v", path, err))
	}
	var cfg ToolConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return board.Unknown[ToolConfig](fmt.Sprintf("invalid JSON in config file %s: %v", path, err))
	}
	return board.Known(cfg)
}

// stateRoots returns the prioritized list of state-directory candidates the
// version-drift collector scans for update-check.json.
func stateRoots(tool string) []string {
	prefix := envPrefix(tool)
	home, _ := os.UserHomeDir()

	var roots []string
	if override := os.Getenv(prefix + "_STATE_DIR"); override != "" {
		roots = append(roots, override)
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" && home != "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	if stateHome != "" {
		roots = append(roots, filepath.Join(stateHome, tool))
	}
	if home != "" {
		roots = append(roots, filepath.Join(home, "."+tool))
	}
	return roots
}

// updateCheckFile is the state file the tool's own updater maintains.
const updateCheckFile = "update-check.json"

// scanUpdateCheck scans the state roots for an update-check.json carrying a
// non-empty latest-version field, accepting the first root that has one.
func scanUpdateCheck(roots []string) board.Metric[string] {
	for _, root := range roots {
		path := filepath.Join(root, updateCheckFile)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var state struct {
			LatestVersion string `json:"latestVersion,omitempty"`
			Latest        string `json:"latest,omitempty"`
			Version       string `json:"version,omitempty"`
		}
		if err := json.Unmarshal(data, &state); err != nil {
			continue
		}
		latest := state.LatestVersion
		if latest == "" {
			latest = state.Latest
		}
		if latest == "" {
			latest = state.Version
		}
		if latest == "" {
			continue
		}
		if v := board.ExtractVersion(latest); v != "" {
			return board.Known(v)
		}
	}
	return board.Unknown[string]("no update-check.json with a latest version found")
}
