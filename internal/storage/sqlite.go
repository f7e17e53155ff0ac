// Package storage persists the game state, best score, leaderboard and the
// history of finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/t2048/internal/leaderboard"
)

// Record keys. Each record is stored and loaded independently.
const (
	KeyState       = "2048_state"
	KeyBest        = "2048_best"
	KeyLeaderboard = "2048_leaderboard"
)

var (
	// ErrNotFound is returned when a record has never been saved.
	ErrNotFound = errors.New("storage: record not found")
	// ErrMalformed is returned when a stored record cannot be decoded.
	ErrMalformed = errors.New("storage: malformed record")
)

const timeLayout = "2006-01-02 15:04:05"

// Repository is the full persistence surface shared by Store and Memory.
type Repository interface {
	SaveGame(rec GameRecord) error
	LoadGame() (GameRecord, error)
	SaveBest(best int) error
	LoadBest() (int, error)
	SaveLeaderboard(entries []leaderboard.Entry) error
	LoadLeaderboard() ([]leaderboard.Entry, error)
	RecordGame(res GameResult) (int64, error)
	RecentGames(limit int) ([]GameResult, error)
	Stats() (Stats, error)
	Reset(history bool) error
	Close() error
}

// GameRecord is the saved in-progress game.
type GameRecord struct {
	Grid          [][]int `json:"grid"`
	Score         int     `json:"score"`
	GameOver      bool    `json:"gameOver"`
	PreviousGrid  [][]int `json:"previousGrid"`
	PreviousScore *int    `json:"previousScore"`

	// Bookkeeping for the finished-game history and the leaderboard.
	GameID    string `json:"gameId,omitempty"`
	Moves     int    `json:"moves,omitempty"`
	Submitted bool   `json:"submitted,omitempty"`
}

// GameResult is one finished game in the history table.
type GameResult struct {
	ID         int64
	GameID     string
	Score      int
	MaxTile    int
	Moves      int
	FinishedAt time.Time
}

// Stats contains aggregated statistics over finished games.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestTile   int
	LastPlayed time.Time
}

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

var _ Repository = (*Store)(nil)

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
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_score ON games(score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_finished ON games(finished_at DESC);
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

// put encodes v as JSON and upserts it under key.
func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// get decodes the JSON stored under key into v.
func (s *Store) get(key string, v any) error {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return decode(key, []byte(raw), v)
}

func decode(key string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return nil
}

// SaveGame stores the in-progress game.
func (s *Store) SaveGame(rec GameRecord) error {
	return s.put(KeyState, rec)
}

// LoadGame returns the saved game, ErrNotFound or ErrMalformed.
func (s *Store) LoadGame() (GameRecord, error) {
	var rec GameRecord
	if err := s.get(KeyState, &rec); err != nil {
		return GameRecord{}, err
	}
	return rec, nil
}

// SaveBest stores the best score.
func (s *Store) SaveBest(best int) error {
	return s.put(KeyBest, best)
}

// LoadBest returns the best score, ErrNotFound or ErrMalformed.
func (s *Store) LoadBest() (int, error) {
	var best int
	if err := s.get(KeyBest, &best); err != nil {
		return 0, err
	}
	return best, nil
}

// SaveLeaderboard stores the ordered leaderboard.
func (s *Store) SaveLeaderboard(entries []leaderboard.Entry) error {
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	return s.put(KeyLeaderboard, entries)
}

// LoadLeaderboard returns the saved leaderboard, ErrNotFound or ErrMalformed.
func (s *Store) LoadLeaderboard() ([]leaderboard.Entry, error) {
	var entries []leaderboard.Entry
	if err := s.get(KeyLeaderboard, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RecordGame adds a finished game to the history.
// Recording the same game ID twice keeps the first row.
// Returns the ID of the inserted record, or 0 if it already existed.
func (s *Store) RecordGame(res GameResult) (int64, error) {
	finished := res.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO games (game_id, score, max_tile, moves, finished_at)
		 VALUES (?, ?, ?, ?, ?)`,
		res.GameID, res.Score, res.MaxTile, res.Moves, finished.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record game: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentGames retrieves the most recently finished games, newest first.
func (s *Store) RecentGames(limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, max_tile, moves, finished_at
		 FROM games
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var r GameResult
		var finishedAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.MaxTile, &r.Moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.FinishedAt = parseTime(finishedAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Stats retrieves aggregated statistics over all finished games.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(max_tile), 0), MAX(finished_at)
		 FROM games`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestTile, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// Reset deletes the saved game, best score and leaderboard. When history is
// true the finished-games table is cleared too.
func (s *Store) Reset(history bool) error {
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	if history {
		if _, err := s.db.Exec("DELETE FROM games"); err != nil {
			return fmt.Errorf("storage: cannot clear history: %w", err)
		}
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
