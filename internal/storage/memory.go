package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/t2048/internal/leaderboard"
)

// Memory is an in-process Repository. Records are kept as encoded JSON so
// loads behave like the SQLite store, including ErrMalformed.
type Memory struct {
	mu     sync.Mutex
	kv     map[string][]byte
	games  []GameResult
	nextID int64
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{kv: make(map[string][]byte)}
}

// SetRaw stores data under key without encoding it.
func (m *Memory) SetRaw(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = append([]byte(nil), data...)
}

// Raw returns the bytes stored under key.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.kv[key]
	return append([]byte(nil), data...), ok
}

func (m *Memory) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}
	m.mu.Lock()
	m.kv[key] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) get(key string, v any) error {
	m.mu.Lock()
	data, ok := m.kv[key]
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return decode(key, data, v)
}

// SaveGame stores the in-progress game.
func (m *Memory) SaveGame(rec GameRecord) error { return m.put(KeyState, rec) }

// LoadGame returns the saved game.
func (m *Memory) LoadGame() (GameRecord, error) {
	var rec GameRecord
	if err := m.get(KeyState, &rec); err != nil {
		return GameRecord{}, err
	}
	return rec, nil
}

// SaveBest stores the best score.
func (m *Memory) SaveBest(best int) error { return m.put(KeyBest, best) }

// LoadBest returns the best score.
func (m *Memory) LoadBest() (int, error) {
	var best int
	if err := m.get(KeyBest, &best); err != nil {
		return 0, err
	}
	return best, nil
}

// SaveLeaderboard stores the leaderboard.
func (m *Memory) SaveLeaderboard(entries []leaderboard.Entry) error {
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	return m.put(KeyLeaderboard, entries)
}

// LoadLeaderboard returns the leaderboard.
func (m *Memory) LoadLeaderboard() ([]leaderboard.Entry, error) {
	var entries []leaderboard.Entry
	if err := m.get(KeyLeaderboard, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RecordGame adds a finished game. A repeated game ID is ignored and returns 0.
func (m *Memory) RecordGame(res GameResult) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.games {
		if g.GameID == res.GameID {
			return 0, nil
		}
	}
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now()
	}
	m.nextID++
	res.ID = m.nextID
	m.games = append(m.games, res)
	return res.ID, nil
}

// RecentGames returns the newest finished games first.
func (m *Memory) RecentGames(limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	m.mu.Lock()
	out := append([]GameResult(nil), m.games...)
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].FinishedAt.After(out[j].FinishedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats aggregates the finished games.
func (m *Memory) Stats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var st Stats
	for _, g := range m.games {
		st.GamesCount++
		st.TotalScore += int64(g.Score)
		st.HighScore = max(st.HighScore, g.Score)
		st.BestTile = max(st.BestTile, g.MaxTile)
		if g.FinishedAt.After(st.LastPlayed) {
			st.LastPlayed = g.FinishedAt
		}
	}
	if st.GamesCount > 0 {
		st.AvgScore = float64(st.TotalScore) / float64(st.GamesCount)
	}
	return st, nil
}

// Reset clears the records and, when history is true, the finished games.
func (m *Memory) Reset(history bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv = make(map[string][]byte)
	if history {
		m.games = nil
	}
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
