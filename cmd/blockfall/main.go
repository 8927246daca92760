// blockfall is a terminal falling-block puzzle game.
//
// Usage:
//
//	blockfall play             - Jump straight into a game
//	blockfall menu             - Start the interactive menu
//	blockfall scores           - Show high scores
//	blockfall replays          - List saved replays
//	blockfall replays watch    - Watch a saved replay
//	blockfall serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: from config)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.blockfall/blockfall.db)
//	--config <path>  - Load a custom config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blockfall/internal/blockfall"
	"github.com/vovakirdan/tui-blockfall/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - A falling-block puzzle game for your terminal",
	Long: `Blockfall is a terminal falling-block puzzle game with spins,
combos, back-to-back bonuses and deterministic replays. Play locally
or serve it over SSH.

Available commands:
  play     - Jump straight into a game
  menu     - Interactive menu (play, scores, replays)
  scores   - View high scores
  replays  - List and watch saved replays
  serve    - Start SSH server for remote play

Examples:
  blockfall play
  blockfall play --seed 12345
  blockfall menu
  blockfall replays watch <id>
  blockfall serve --ssh :2222`,
}

func init() {
	// Global persistent flags. Zero values defer to the config file.
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (empty = use config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadAppConfig loads the config file and applies flag overrides.
func loadAppConfig() config.Config {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagFPS > 0 {
		cfg.Display.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	cfg.Normalize()

	return cfg
}

// gameOptions maps config settings to game presentation options.
func gameOptions(cfg config.Config) blockfall.Options {
	return blockfall.Options{
		Ghost:    cfg.Game.Ghost,
		Previews: cfg.Game.PreviewCount,
	}
}

// terminalSize reports the current terminal dimensions with a fallback.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
