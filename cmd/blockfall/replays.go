package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blockfall/internal/blockfall"
	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/platform/tui"
	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List saved replays",
	Long: `Display the most recent saved replays.

Each finished game is recorded automatically. A replay stores the
seed and the timed input log, so playback reproduces the game
exactly.

Examples:
  blockfall replays
  blockfall replays watch 3f2a...`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Watch a saved replay",
	Long: `Play back a saved replay in the terminal.

Controls:
  P        - Pause playback
  B/Esc    - Back out
  Q/Ctrl+C - Quit

Examples:
  blockfall replays watch 3f2a...`,
	Args: cobra.ExactArgs(1),
	Run:  runReplaysWatch,
}

func init() {
	replaysCmd.AddCommand(replaysWatchCmd)
}

func runReplays(_ *cobra.Command, _ []string) {
	appCfg := loadAppConfig()

	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	replays, err := store.Replays(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Saved Replays")
	fmt.Println()

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game of 'blockfall play' to save one!")
		return
	}

	fmt.Printf("  %-36s  %-10s  %-5s  %-5s  %-8s  %s\n", "ID", "Score", "Level", "Lines", "Length", "Date")
	fmt.Printf("  %-36s  %-10s  %-5s  %-5s  %-8s  %s\n", "--", "-----", "-----", "-----", "------", "----")

	for _, r := range replays {
		length := time.Duration(r.DurationMs) * time.Millisecond
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-36s  %-10d  %-5d  %-5d  %-8s  %s\n",
			r.ID, r.FinalScore, r.FinalLevel, r.FinalLines, length.Round(time.Second), dateStr)
	}

	fmt.Println()
	fmt.Println("Run 'blockfall replays watch <id>' to watch one.")
}

func runReplaysWatch(_ *cobra.Command, args []string) {
	replayID := args[0]
	appCfg := loadAppConfig()

	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	record, err := store.LoadReplay(replayID)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: appCfg.Display.TickRate,
	}

	game := blockfall.NewReplay(record)

	runErr := tui.Run(game, store, cfg)

	store.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running playback: %v\n", runErr)
		os.Exit(1)
	}
}
