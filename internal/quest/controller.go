package quest

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
)

// Standard pauses between block actions.
const (
	PauseDuration = 500 * time.Millisecond // After every move, scenario or appearance change
	TeleportPause = 300 * time.Millisecond // After a portal relocation
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseReady
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "uninitialized"
}

// Controller owns the single character of a game session.
// Operations must be called one at a time; the controller holds no lock.
type Controller struct {
	engine Engine
	logger *log.Logger
	tracer trace.Tracer

	defaultMap    *grid.Tilemap
	defaultImage  core.Image
	pause         time.Duration
	teleportPause time.Duration

	phase     Phase
	character Handle

	// justTeleported is true only between a portal relocation and the next
	// caller-initiated move.
	justTeleported bool

	moves     int
	teleports int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for move and outcome events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithTimings overrides the standard and teleport pauses.
// Negative values are treated as zero.
func WithTimings(pause, teleport time.Duration) Option {
	return func(c *Controller) {
		c.pause = max(pause, 0)
		c.teleportPause = max(teleport, 0)
	}
}

// WithDefaultTilemap sets the background tilemap loaded on first use.
func WithDefaultTilemap(m *grid.Tilemap) Option {
	return func(c *Controller) {
		if m != nil {
			c.defaultMap = m
		}
	}
}

// WithDefaultImage sets the image the character is created with.
func WithDefaultImage(img core.Image) Option {
	return func(c *Controller) {
		c.defaultImage = img
	}
}

// New creates a controller bound to an engine. Nothing is loaded or created
// until the first operation runs.
func New(engine Engine, opts ...Option) *Controller {
	c := &Controller{
		engine:        engine,
		logger:        log.New(io.Discard),
		tracer:        noop.NewTracerProvider().Tracer("gridquest/quest"),
		defaultMap:    grid.NewTilemap("background", 10, 8),
		defaultImage:  core.DefaultImage(),
		pause:         PauseDuration,
		teleportPause: TeleportPause,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the lifecycle state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// JustTeleported reports whether the teleport guard is set.
func (c *Controller) JustTeleported() bool {
	return c.justTeleported
}

// Moves returns the number of caller-initiated moves so far.
func (c *Controller) Moves() int {
	return c.moves
}

// Teleports returns the number of portal relocations so far.
func (c *Controller) Teleports() int {
	return c.teleports
}

// ResetCounters zeroes the move and teleport counters.
func (c *Controller) ResetCounters() {
	c.moves = 0
	c.teleports = 0
}

// Location returns the character's location, or (0,0) before initialization.
func (c *Controller) Location() grid.Location {
	if c.phase != PhaseReady {
		return grid.Location{}
	}
	return c.engine.LocationOf(c.character)
}

// ensureInitialized is the only Uninitialized -> Ready transition.
func (c *Controller) ensureInitialized() {
	if c.phase == PhaseReady {
		return
	}
	c.engine.LoadTilemap(c.defaultMap)
	c.character = c.engine.CreateSprite(c.defaultImage)
	c.phase = PhaseReady
	c.logger.Debug("character created", "tilemap", c.defaultMap.ID, "image", c.defaultImage.Name)
}

// SetScenario installs a new tilemap and puts the character on its start tile.
func (c *Controller) SetScenario(ctx context.Context, m *grid.Tilemap) {
	_, span := c.tracer.Start(ctx, "quest.scenario")
	defer span.End()

	c.ensureInitialized()
	c.engine.LoadTilemap(m)
	c.positionAtStart()
	span.SetAttributes(
		attribute.String("tilemap", m.ID),
		attribute.String("start", c.engine.LocationOf(c.character).String()),
	)
	c.engine.Suspend(c.pause)
}

// positionAtStart places the character on the first enumerated start tile,
// or on (0,0) when the map has none.
func (c *Controller) positionAtStart() {
	if c.phase != PhaseReady {
		return
	}

	loc := grid.L(0, 0)
	if starts := c.engine.LocationsOfKind(grid.TileStart); len(starts) > 0 {
		loc = starts[0]
	}
	c.engine.PlaceAt(c.character, loc)
	c.logger.Debug("positioned at start", "location", loc)
}

// SetAppearance replaces the character's image.
func (c *Controller) SetAppearance(ctx context.Context, img core.Image) {
	_, span := c.tracer.Start(ctx, "quest.appearance")
	defer span.End()
	span.SetAttributes(attribute.String("image", img.Name))

	c.ensureInitialized()
	c.engine.SetImage(c.character, img)
	c.engine.Suspend(c.pause)
}

// MoveRight moves the character one tile to the right.
func (c *Controller) MoveRight(ctx context.Context) { c.moveAndCheck(ctx, 1, 0) }

// MoveLeft moves the character one tile to the left.
func (c *Controller) MoveLeft(ctx context.Context) { c.moveAndCheck(ctx, -1, 0) }

// MoveUp moves the character one tile up.
func (c *Controller) MoveUp(ctx context.Context) { c.moveAndCheck(ctx, 0, -1) }

// MoveDown moves the character one tile down.
func (c *Controller) MoveDown(ctx context.Context) { c.moveAndCheck(ctx, 0, 1) }

// JumpRight moves the character two tiles to the right in a single step.
func (c *Controller) JumpRight(ctx context.Context) { c.moveAndCheck(ctx, 2, 0) }

// JumpLeft moves the character two tiles to the left in a single step.
func (c *Controller) JumpLeft(ctx context.Context) { c.moveAndCheck(ctx, -2, 0) }

// JumpUp moves the character two tiles up in a single step.
func (c *Controller) JumpUp(ctx context.Context) { c.moveAndCheck(ctx, 0, -2) }

// JumpDown moves the character two tiles down in a single step.
func (c *Controller) JumpDown(ctx context.Context) { c.moveAndCheck(ctx, 0, 2) }

func (c *Controller) moveAndCheck(ctx context.Context, dx, dy int) {
	ctx, span := c.tracer.Start(ctx, "quest.move")
	defer span.End()
	span.SetAttributes(attribute.Int("dx", dx), attribute.Int("dy", dy))

	c.ensureInitialized()
	c.justTeleported = false
	c.engine.MoveBy(c.character, dx, dy)
	c.moves++
	c.logger.Debug("moved", "dx", dx, "dy", dy, "location", c.engine.LocationOf(c.character))
	c.engine.Suspend(c.pause)
	c.evaluateTile(ctx)
}
