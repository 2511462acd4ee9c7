// Package config loads layered YAML configuration for tada.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	dirName  = ".tada"
	fileName = "config.yaml"
)

// Load merges defaults, the global file, the project file, an optional
// explicit file and TADA_* environment variables, in that order.
func Load(explicit string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	paths := []string{GlobalConfigPath(), ProjectConfigPath()}
	if explicit != "" {
		paths = append(paths, explicit)
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := mergeFile(v, p); err != nil {
			if errors.Is(err, os.ErrNotExist) && p != explicit {
				continue
			}
			return nil, err
		}
	}

	v.SetEnvPrefix("TADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Resolve()
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("storage.format", cfg.Storage.Format)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}

func mergeFile(v *viper.Viper, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := v.MergeConfig(f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Resolve normalizes values and fills those that depend on others. It is
// safe to call again after overrides.
func (c *Config) Resolve() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultKey
	}
	c.Storage.Dir = expandHome(c.Storage.Dir)
	if c.Storage.Dir == "" && c.Storage.Backend == BackendSQLite {
		c.Storage.Dir = GlobalDir()
	}
	c.Log.File = expandHome(c.Log.File)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// GlobalDir returns ~/.tada, or "" if there is no home directory.
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dirName)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	dir := GlobalDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fileName)
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, dirName, fileName)
}
