// Package config provides YAML-based configuration loading for the
// blockfall platform.
package config

// Config is the top-level blockfall configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// GameConfig holds gameplay presentation knobs. The rules themselves
// (gravity curve, lock delay, scoring) are fixed by the engine.
type GameConfig struct {
	Ghost        bool `yaml:"ghost"`         // show the drop-target outline
	PreviewCount int  `yaml:"preview_count"` // upcoming pieces in the side panel
}

// DisplayConfig holds terminal loop parameters.
type DisplayConfig struct {
	TickRate int `yaml:"tick_rate"` // simulation ticks per second
}

// StorageConfig holds persistence parameters.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // SQLite database location, ~ expands to home
}

// ServerConfig holds SSH serving parameters.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Normalize clamps out-of-range values to usable ones.
func (c *Config) Normalize() {
	if c.Game.PreviewCount < 1 {
		c.Game.PreviewCount = 1
	}
	if c.Game.PreviewCount > 7 {
		c.Game.PreviewCount = 7
	}
	if c.Display.TickRate <= 0 {
		c.Display.TickRate = 60
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = "~/.blockfall/blockfall.db"
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 23234
	}
}
