// Package storage provides SQLite-based persistence for scores and
// replays. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-blockfall/internal/blockfall/core"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Level     int
	Lines     int
	CreatedAt time.Time
}

// ReplaySummary is the listing view of a stored replay: everything but
// the action log.
type ReplaySummary struct {
	ID         string
	Seed       int64
	FinalScore int
	FinalLevel int
	FinalLines int
	DurationMs float64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			lines INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			final_score INTEGER NOT NULL,
			final_level INTEGER NOT NULL,
			final_lines INTEGER NOT NULL,
			duration_ms REAL NOT NULL,
			actions TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished session's result for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score, level, lines int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, level, lines) VALUES (?, ?, ?, ?)",
		gameID, score, level, lines,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game,
// ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, level, lines, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Level, &e.Lines, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// SaveReplay persists a finished replay record. The action log is
// stored as JSON alongside the summary columns.
func (s *Store) SaveReplay(rec core.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("storage: replay has no id")
	}

	actions, err := json.Marshal(rec.Actions)
	if err != nil {
		return fmt.Errorf("storage: cannot encode replay actions: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO replays (id, seed, final_score, final_level, final_lines, duration_ms, actions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.FinalScore, rec.FinalLevel, rec.FinalLines,
		rec.DurationMs, string(actions), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// Replays lists the most recent replays, newest first, without their
// action logs.
func (s *Store) Replays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, final_score, final_level, final_lines, duration_ms, created_at
		 FROM replays
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var summaries []ReplaySummary
	for rows.Next() {
		var r ReplaySummary
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.FinalScore, &r.FinalLevel, &r.FinalLines, &r.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		summaries = append(summaries, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// LoadReplay retrieves a full replay by id and validates its action
// log before handing it to a session. Database content is untrusted:
// a log with unknown input tokens, negative timestamps or timestamps
// out of order is rejected rather than fed into playback.
func (s *Store) LoadReplay(id string) (core.Record, error) {
	var rec core.Record
	var actions string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, final_score, final_level, final_lines, duration_ms, actions, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Seed, &rec.FinalScore, &rec.FinalLevel, &rec.FinalLines,
		&rec.DurationMs, &actions, &createdAt)

	if err == sql.ErrNoRows {
		return core.Record{}, fmt.Errorf("storage: replay %q not found", id)
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	rec.CreatedAt = parseTimestamp(createdAt)

	if err := json.Unmarshal([]byte(actions), &rec.Actions); err != nil {
		return core.Record{}, fmt.Errorf("storage: replay %q has corrupt action log: %w", id, err)
	}
	if err := validateActions(rec); err != nil {
		return core.Record{}, fmt.Errorf("storage: replay %q: %w", id, err)
	}

	return rec, nil
}

// validateActions checks a loaded action log entry by entry.
func validateActions(rec core.Record) error {
	if rec.DurationMs < 0 {
		return fmt.Errorf("negative duration %v", rec.DurationMs)
	}
	prev := 0.0
	for i, entry := range rec.Actions {
		if !entry.Input.Valid() {
			return fmt.Errorf("action %d has unknown input %d", i, entry.Input)
		}
		if entry.AtMs < 0 {
			return fmt.Errorf("action %d has negative timestamp %v", i, entry.AtMs)
		}
		if entry.AtMs < prev {
			return fmt.Errorf("action %d timestamp %v precedes action %d at %v", i, entry.AtMs, i-1, prev)
		}
		if entry.AtMs > rec.DurationMs {
			return fmt.Errorf("action %d timestamp %v exceeds duration %v", i, entry.AtMs, rec.DurationMs)
		}
		prev = entry.AtMs
	}
	return nil
}

// DeleteReplay removes a stored replay.
func (s *Store) DeleteReplay(id string) error {
	_, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	return nil
}

// parseTimestamp handles the driver returning either time.Time or the
// SQLite datetime string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
