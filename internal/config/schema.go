package config

import "github.com/Makepad-fr/tada/internal/store"

// Storage backends.
const (
	BackendJSON   = store.BackendJSON
	BackendSQLite = store.BackendSQLite
	BackendMemory = store.BackendMemory
)

// Config represents the full tada configuration
type Config struct {
	Storage Storage `yaml:"storage" mapstructure:"storage"`
	UI      UI      `yaml:"ui" mapstructure:"ui"`
	Log     Log     `yaml:"log" mapstructure:"log"`
}

// Storage selects where and how the task snapshot is kept.
type Storage struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Key     string `yaml:"key" mapstructure:"key"`
	Format  string `yaml:"format" mapstructure:"format"`
}

// Options is the backend selection store.Open takes.
func (s Storage) Options() store.Options {
	return store.Options{Backend: s.Backend, Dir: s.Dir, Format: s.Format}
}

type UI struct {
	Theme string `yaml:"theme" mapstructure:"theme"`
}

type Log struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}
