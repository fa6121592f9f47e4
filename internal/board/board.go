// Package board is the in-memory host engine behind the controller: it holds
// the active tilemap and the character sprite, applies moves, records the
// game outcome and performs pauses.
package board

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
	"github.com/vovakirdan/grid-quest/internal/quest"
)

// Outcome is the result of a game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the name stored in run history.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	switch s {
	case "won":
		return OutcomeWon
	case "lost":
		return OutcomeLost
	default:
		return OutcomeNone
	}
}

// Sleeper blocks for the given duration.
type Sleeper func(time.Duration)

const spriteHandle quest.Handle = 1

// Board implements quest.Engine. It is safe for concurrent use so the
// platform can render while an operation is running.
type Board struct {
	mu       sync.RWMutex
	tilemap  *grid.Tilemap
	hasChar  bool
	loc      grid.Location
	image    core.Image
	outcome  Outcome
	sleeper  Sleeper
	pace     float64
	onChange func()
	logger   *log.Logger
}

// Ensure Board implements the engine contract.
var _ quest.Engine = (*Board)(nil)

// Option configures a Board.
type Option func(*Board)

// WithSleeper replaces time.Sleep, mostly for tests.
func WithSleeper(s Sleeper) Option {
	return func(b *Board) {
		if s != nil {
			b.sleeper = s
		}
	}
}

// WithPace scales every pause. 0 disables pauses entirely.
func WithPace(multiplier float64) Option {
	return func(b *Board) {
		b.pace = max(multiplier, 0)
	}
}

// WithOnChange registers a callback invoked after every visible change.
func WithOnChange(fn func()) Option {
	return func(b *Board) {
		b.onChange = fn
	}
}

// WithLogger sets the board logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates an empty board with no tilemap and no character.
func New(opts ...Option) *Board {
	b := &Board{
		tilemap: grid.NewTilemap("", 0, 0),
		sleeper: time.Sleep,
		pace:    1,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateSprite creates the character at (0,0). The board holds a single
// character; a second call only replaces its image.
func (b *Board) CreateSprite(img core.Image) quest.Handle {
	b.mu.Lock()
	if !b.hasChar {
		b.hasChar = true
		b.loc = grid.L(0, 0)
	}
	b.image = img
	b.mu.Unlock()

	b.notify()
	return spriteHandle
}

// SetImage replaces the character's image.
func (b *Board) SetImage(h quest.Handle, img core.Image) {
	if !b.valid(h) {
		return
	}
	b.mu.Lock()
	b.image = img
	b.mu.Unlock()
	b.notify()
}

// LoadTilemap installs a copy of m as the active tilemap.
func (b *Board) LoadTilemap(m *grid.Tilemap) {
	b.mu.Lock()
	b.tilemap = m.Clone()
	b.mu.Unlock()

	b.logger.Debug("tilemap loaded", "id", m.ID, "w", m.W, "h", m.H)
	b.notify()
}

// PlaceAt puts the character on loc without any bounds check.
func (b *Board) PlaceAt(h quest.Handle, loc grid.Location) {
	if !b.valid(h) {
		return
	}
	b.mu.Lock()
	b.loc = loc
	b.mu.Unlock()
	b.notify()
}

// MoveBy moves the character by a tile delta, clamped to the tilemap.
func (b *Board) MoveBy(h quest.Handle, dx, dy int) {
	if !b.valid(h) {
		return
	}
	b.mu.Lock()
	next := b.loc.Add(dx, dy)
	next.Col = core.Clamp(next.Col, 0, max(b.tilemap.W-1, 0))
	next.Row = core.Clamp(next.Row, 0, max(b.tilemap.H-1, 0))
	b.loc = next
	b.mu.Unlock()
	b.notify()
}

// LocationOf returns the character's location.
func (b *Board) LocationOf(h quest.Handle) grid.Location {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loc
}

// TileKindAt classifies a cell of the active tilemap.
func (b *Board) TileKindAt(loc grid.Location) grid.TileKind {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tilemap.KindAt(loc)
}

// LocationsOfKind enumerates locations in row-major order.
func (b *Board) LocationsOfKind(kind grid.TileKind) []grid.Location {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tilemap.LocationsOf(kind)
}

// EndGame records the outcome. Only the first signal counts.
func (b *Board) EndGame(won bool) {
	outcome := OutcomeLost
	if won {
		outcome = OutcomeWon
	}

	b.mu.Lock()
	if b.outcome != OutcomeNone {
		b.mu.Unlock()
		b.logger.Warn("game already over, ignoring outcome", "outcome", outcome)
		return
	}
	b.outcome = outcome
	b.mu.Unlock()

	b.notify()
}

// Suspend sleeps for d scaled by the board pace. The lock is not held.
func (b *Board) Suspend(d time.Duration) {
	scaled := time.Duration(float64(d) * b.pace)
	if scaled <= 0 {
		return
	}
	b.sleeper(scaled)
}

// Outcome returns the recorded outcome.
func (b *Board) Outcome() Outcome {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.outcome
}

// GameOver reports whether an outcome has been recorded.
func (b *Board) GameOver() bool {
	return b.Outcome() != OutcomeNone
}

// ResetOutcome clears the outcome so the scenario can be played again.
func (b *Board) ResetOutcome() {
	b.mu.Lock()
	b.outcome = OutcomeNone
	b.mu.Unlock()
	b.notify()
}

func (b *Board) valid(h quest.Handle) bool {
	b.mu.RLock()
	ok := b.hasChar && h == spriteHandle
	b.mu.RUnlock()
	if !ok {
		b.logger.Debug("ignoring call for unknown sprite", "handle", h)
	}
	return ok
}

func (b *Board) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}
