// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analyze AnalyzeConfig `toml:"analyze"`
	History HistoryConfig `toml:"history"`
}

// AnalyzeConfig maps analysis settings. Nil fields leave flag defaults alone.
type AnalyzeConfig struct {
	Lang      *string `toml:"lang"`
	Format    *string `toml:"format"`
	Familiar  *string `toml:"familiar"`
	CMUDict   *string `toml:"cmudict"`
	Segmenter *string `toml:"segmenter"`
	Jobs      *int    `toml:"jobs"`
	Markdown  *bool   `toml:"markdown"`
	Save      *bool   `toml:"save"`
}

// HistoryConfig maps history settings.
type HistoryConfig struct {
	Last   *int    `toml:"last"`
	Metric *string `toml:"metric"`
	Window *int    `toml:"window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
