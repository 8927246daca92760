package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded fallback configuration, used when
// even the embedded default fails to parse.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Ghost:        true,
			PreviewCount: 3,
		},
		Display: DisplayConfig{
			TickRate: 60,
		},
		Storage: StorageConfig{
			DBPath: "~/.blockfall/blockfall.db",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 23234,
		},
	}
}
