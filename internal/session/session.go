// Package session owns one game of 2048: the grid, score, best score, the
// single undo snapshot and the leaderboard. A move is a two-phase transaction.
// Begin applies the slide and Commit spawns tiles, checks for game over and
// persists. A presentation layer runs its slide animation between the two; a
// headless caller uses Move to run both back to back.
package session

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/grid"
	"github.com/vovakirdan/t2048/internal/leaderboard"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	// ErrNotFinished is returned when submitting a score for a game still in play.
	ErrNotFinished = errors.New("session: game is not over")
	// ErrEmptyName is returned when the submitted name is blank.
	ErrEmptyName = errors.New("session: name is empty")
	// ErrAlreadySubmitted is returned on a second submission for the same game.
	ErrAlreadySubmitted = errors.New("session: score already submitted")
)

// Store is the persistence the session needs.
type Store interface {
	SaveGame(rec storage.GameRecord) error
	LoadGame() (storage.GameRecord, error)
	SaveBest(best int) error
	LoadBest() (int, error)
	SaveLeaderboard(entries []leaderboard.Entry) error
	LoadLeaderboard() ([]leaderboard.Entry, error)
	RecordGame(res storage.GameResult) (int64, error)
}

// Options configures a session. Zero values fall back to defaults.
type Options struct {
	Size                int
	Spawn               engine.SpawnConfig
	Rand                engine.Rand
	Store               Store
	Logger              *log.Logger
	LeaderboardCapacity int
	DateLayout          string
	Now                 func() time.Time
}

// State is a copy of the session's game state.
type State struct {
	Grid          grid.Grid
	Score         int
	Best          int
	GameOver      bool
	PreviousGrid  *grid.Grid
	PreviousScore *int
}

// CanUndo reports whether an undo snapshot exists.
func (s State) CanUndo() bool {
	return s.PreviousGrid != nil && s.PreviousScore != nil
}

// Pending is an accepted move waiting for Commit.
type Pending struct {
	Direction engine.Direction
	From      grid.Grid          // grid before the move
	Result    engine.MoveResult  // slid grid, score delta, merged cells
	Moves     []engine.TileMove // animation targets from From
}

// Commit is what a committed move produced.
type Commit struct {
	Grid       grid.Grid
	Merged     []grid.Cell
	Spawned    []grid.Cell
	ScoreDelta int
	Score      int
	Best       int
	NewBest    bool
	GameOver   bool
}

// Session is a single player's game. It is not safe for concurrent use.
type Session struct {
	store    Store
	log      *log.Logger
	spawner  *engine.Spawner
	size     int
	capacity int
	layout   string
	now      func() time.Time

	grid          grid.Grid
	score         int
	best          int
	gameOver      bool
	previousGrid  *grid.Grid
	previousScore *int

	board     []leaderboard.Entry
	gameID    uuid.UUID
	moves     int
	submitted bool
	pending   *Pending
}

// Open creates a session and restores the saved best score, leaderboard and
// game from the store. A saved game that fails validation, or has no tiles,
// is discarded and a new game is started.
func Open(opts Options) *Session {
	if opts.Size < 2 {
		opts.Size = grid.DefaultSize
	}
	if opts.Spawn == (engine.SpawnConfig{}) {
		opts.Spawn = engine.DefaultSpawnConfig()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.LeaderboardCapacity < 1 {
		opts.LeaderboardCapacity = leaderboard.Capacity
	}
	if opts.DateLayout == "" {
		opts.DateLayout = leaderboard.DateLayout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		store:    opts.Store,
		log:      opts.Logger,
		spawner:  engine.NewSpawner(opts.Spawn, opts.Rand),
		size:     opts.Size,
		capacity: opts.LeaderboardCapacity,
		layout:   opts.DateLayout,
		now:      opts.Now,
	}

	s.loadBest()
	s.loadLeaderboard()
	if !s.loadGame() {
		s.NewGame()
	}
	return s
}

func (s *Session) loadBest() {
	best, err := s.store.LoadBest()
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		s.log.Warn("cannot load best score", "err", err)
	case best > 0:
		s.best = best
	}
}

func (s *Session) loadLeaderboard() {
	entries, err := s.store.LoadLeaderboard()
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		s.log.Warn("cannot load leaderboard", "err", err)
	default:
		s.board = leaderboard.Normalize(entries, s.capacity)
	}
}

// loadGame restores the saved game. It returns false when there is nothing
// usable to restore.
func (s *Session) loadGame() bool {
	rec, err := s.store.LoadGame()
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		s.log.Warn("cannot load saved game", "err", err)
		return false
	}

	g, err := grid.FromRows(rec.Grid)
	if err != nil || g.Size() != s.size || rec.Score < 0 || g.MaxTile() == 0 {
		s.log.Warn("discarding saved game", "err", err, "size", g.Size(), "score", rec.Score)
		return false
	}

	var prevGrid *grid.Grid
	var prevScore *int
	if rec.PreviousGrid != nil {
		pg, err := grid.FromRows(rec.PreviousGrid)
		if err != nil || pg.Size() != s.size {
			s.log.Warn("discarding saved game", "err", err, "previous_size", pg.Size())
			return false
		}
		if rec.PreviousScore != nil && *rec.PreviousScore >= 0 {
			ps := *rec.PreviousScore
			prevGrid, prevScore = &pg, &ps
		}
	}

	s.grid = g
	s.score = rec.Score
	s.gameOver = rec.GameOver || engine.IsTerminal(g)
	s.previousGrid = prevGrid
	s.previousScore = prevScore
	s.gameID = uuid.New()
	if id, err := uuid.Parse(rec.GameID); err == nil {
		s.gameID = id
	}
	s.moves = max(rec.Moves, 0)
	s.submitted = rec.Submitted
	if s.score > s.best {
		s.best = s.score
		s.saveBest()
	}

	s.log.Info("restored game", "score", s.score, "game_over", s.gameOver)
	return true
}

// NewGame replaces the current game with a fresh board. It is rejected while
// a move is pending.
func (s *Session) NewGame() bool {
	if s.pending != nil {
		return false
	}

	g := grid.New(s.size)
	s.spawner.Place(&g, s.spawner.StartCount())

	s.grid = g
	s.score = 0
	s.gameOver = false
	s.previousGrid = nil
	s.previousScore = nil
	s.gameID = uuid.New()
	s.moves = 0
	s.submitted = false

	s.log.Info("new game", "game_id", s.gameID)
	s.saveState()
	return true
}

// Begin starts a move. It returns false, changing nothing, when a move is
// already pending, the game is over, dir is invalid or the move would not
// change the grid. On success the slid grid and new score are applied and
// the undo snapshot is replaced; tiles are spawned by Commit.
func (s *Session) Begin(dir engine.Direction) (Pending, bool) {
	if s.pending != nil {
		s.log.Debug("move rejected: pending", "dir", dir)
		return Pending{}, false
	}
	if s.gameOver || !dir.Valid() {
		return Pending{}, false
	}

	res := engine.Move(s.grid, dir)
	if !res.Changed {
		s.log.Debug("move rejected: no change", "dir", dir)
		return Pending{}, false
	}

	from := s.grid.Clone()
	prevScore := s.score
	s.previousGrid = &from
	s.previousScore = &prevScore

	s.grid = res.Grid.Clone()
	s.score += res.ScoreDelta
	s.moves++

	p := &Pending{
		Direction: dir,
		From:      from.Clone(),
		Result:    res,
		Moves:     engine.Targets(from, dir),
	}
	s.pending = p

	s.log.Debug("move accepted", "dir", dir, "delta", res.ScoreDelta, "score", s.score)
	return *p, true
}

// Commit finishes the pending move: spawns new tiles, updates the best
// score, checks for game over after spawning and persists everything.
// It returns false when no move is pending.
func (s *Session) Commit() (Commit, bool) {
	p := s.pending
	if p == nil {
		return Commit{}, false
	}
	s.pending = nil

	spawned := s.spawner.Place(&s.grid, s.spawner.MoveCount())

	newBest := s.score > s.best
	if newBest {
		s.best = s.score
		s.saveBest()
	}

	s.gameOver = engine.IsTerminal(s.grid)
	s.saveState()

	if s.gameOver {
		s.log.Info("game over", "game_id", s.gameID, "score", s.score, "max_tile", s.grid.MaxTile(), "moves", s.moves)
		s.recordGame()
	}

	return Commit{
		Grid:       s.grid.Clone(),
		Merged:     append([]grid.Cell(nil), p.Result.Merged...),
		Spawned:    spawned,
		ScoreDelta: p.Result.ScoreDelta,
		Score:      s.score,
		Best:       s.best,
		NewBest:    newBest,
		GameOver:   s.gameOver,
	}, true
}

// Move runs Begin and Commit back to back.
func (s *Session) Move(dir engine.Direction) (Commit, bool) {
	if _, ok := s.Begin(dir); !ok {
		return Commit{}, false
	}
	return s.Commit()
}

// Undo restores the grid and score from before the last move and clears the
// snapshot. It is rejected while a move is pending, after game over, or when
// there is nothing to undo. The best score is left alone.
func (s *Session) Undo() bool {
	if s.pending != nil || s.gameOver || s.previousGrid == nil || s.previousScore == nil {
		return false
	}

	s.grid = s.previousGrid.Clone()
	s.score = *s.previousScore
	s.previousGrid = nil
	s.previousScore = nil

	s.log.Debug("undo", "score", s.score)
	s.saveState()
	return true
}

// SubmitScore adds the finished game's score to the leaderboard under name.
// A game can be submitted once; the flag is saved with the game so a restored
// session refuses a second submission too.
func (s *Session) SubmitScore(name string) (leaderboard.Entry, error) {
	if !s.gameOver {
		return leaderboard.Entry{}, ErrNotFinished
	}
	if s.submitted {
		return leaderboard.Entry{}, ErrAlreadySubmitted
	}
	name = leaderboard.CleanName(name)
	if name == "" {
		return leaderboard.Entry{}, ErrEmptyName
	}

	entry := leaderboard.NewEntry(name, s.score, s.now(), s.layout)
	s.board = leaderboard.Insert(s.board, entry, s.capacity)
	s.submitted = true

	s.log.Info("score submitted", "name", name, "score", s.score)
	if err := s.store.SaveLeaderboard(s.board); err != nil {
		s.log.Warn("cannot save leaderboard", "err", err)
	}
	s.saveState()
	return entry, nil
}

// Qualifies reports whether the current score would make the leaderboard.
func (s *Session) Qualifies() bool {
	return leaderboard.Qualifies(s.board, s.score, s.capacity)
}

// Rank returns the 1-based leaderboard position the current score would
// take, or 0 when it would not make the board.
func (s *Session) Rank() int {
	return leaderboard.Rank(s.board, s.score, s.capacity)
}

// Submitted reports whether the current game's score was submitted.
func (s *Session) Submitted() bool { return s.submitted }

// Leaderboard returns a copy of the leaderboard.
func (s *Session) Leaderboard() []leaderboard.Entry {
	return append([]leaderboard.Entry(nil), s.board...)
}

// State returns a deep copy of the game state.
func (s *Session) State() State {
	st := State{
		Grid:     s.grid.Clone(),
		Score:    s.score,
		Best:     s.best,
		GameOver: s.gameOver,
	}
	if s.previousGrid != nil && s.previousScore != nil {
		pg := s.previousGrid.Clone()
		ps := *s.previousScore
		st.PreviousGrid = &pg
		st.PreviousScore = &ps
	}
	return st
}

// Pending reports whether a move is waiting for Commit.
func (s *Session) Pending() bool { return s.pending != nil }

// GameID identifies the current game.
func (s *Session) GameID() uuid.UUID { return s.gameID }

// Moves returns the number of accepted moves in the current game.
func (s *Session) Moves() int { return s.moves }

func (s *Session) saveState() {
	rec := storage.GameRecord{
		Grid:     s.grid.Rows(),
		Score:    s.score,
		GameOver: s.gameOver,

		GameID:    s.gameID.String(),
		Moves:     s.moves,
		Submitted: s.submitted,
	}
	if s.previousGrid != nil && s.previousScore != nil {
		rec.PreviousGrid = s.previousGrid.Rows()
		ps := *s.previousScore
		rec.PreviousScore = &ps
	}
	if err := s.store.SaveGame(rec); err != nil {
		s.log.Warn("cannot save game", "err", err)
	}
}

func (s *Session) saveBest() {
	if err := s.store.SaveBest(s.best); err != nil {
		s.log.Warn("cannot save best score", "err", err)
	}
}

func (s *Session) recordGame() {
	_, err := s.store.RecordGame(storage.GameResult{
		GameID:     s.gameID.String(),
		Score:      s.score,
		MaxTile:    s.grid.MaxTile(),
		Moves:      s.moves,
		FinishedAt: s.now(),
	})
	if err != nil {
		s.log.Warn("cannot record finished game", "err", err)
	}
}
