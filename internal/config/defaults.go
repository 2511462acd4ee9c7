package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/tasklist"
)

// DefaultKey is the storage slot holding the snapshot.
const DefaultKey = tasklist.DefaultKey

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: Storage{
			Backend: BackendJSON,
			Key:     DefaultKey,
			Format:  "json",
		},
		UI:  UI{Theme: "classic"},
		Log: Log{Level: "warn"},
	}
}

const defaultFile = `# tada configuration
storage:
  # "json" (one file per key), "sqlite" (embedded db) or "memory"
  backend: json
  # data directory; empty means the working directory (json)
  # or ~/.tada (sqlite)
  dir: ""
  key: SavedTasksV2
  # snapshot encoding: json or yaml
  format: json

ui:
  theme: classic  # classic, neon, mono

log:
  level: warn
  # file: ~/.tada/tada.log
`

// WriteDefault writes the default configuration to path. Existing files are
// left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultFile), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
