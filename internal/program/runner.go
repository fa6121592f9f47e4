package program

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vovakirdan/grid-quest/internal/board"
	"github.com/vovakirdan/grid-quest/internal/grid"
	"github.com/vovakirdan/grid-quest/internal/quest"
	"github.com/vovakirdan/grid-quest/internal/registry"
)

// ErrGameOver is returned when a step is issued after the game has ended.
var ErrGameOver = errors.New("game is over")

// Block IDs the runner applies for a program header.
const (
	setScenarioBlock   = "setScenario"
	setAppearanceBlock = "setAppearance"
)

// Result summarizes a program run.
type Result struct {
	Program    string
	Scenario   string
	Appearance string
	Outcome    board.Outcome
	Steps      int // Calls executed
	Skipped    int // Calls left after game over
	Moves      int
	Teleports  int
	Location   grid.Location
}

// ResultSaver persists a finished run.
type ResultSaver func(ctx context.Context, r Result) error

// StepFunc observes each executed call.
type StepFunc func(index int, call Call, loc grid.Location)

// Runner executes programs on one board and controller.
type Runner struct {
	board      *board.Board
	controller *quest.Controller
	resolver   registry.Resolver

	save   ResultSaver
	onStep StepFunc
	logger *log.Logger
	tracer trace.Tracer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSaver stores every finished run.
func WithSaver(s ResultSaver) RunnerOption {
	return func(r *Runner) { r.save = s }
}

// WithStepFunc registers a progress callback.
func WithStepFunc(fn StepFunc) RunnerOption {
	return func(r *Runner) { r.onStep = fn }
}

// WithLogger sets the runner logger.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracer sets the tracer for run spans.
func WithTracer(t trace.Tracer) RunnerOption {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewRunner creates a runner. The controller must drive the given board.
func NewRunner(b *board.Board, c *quest.Controller, res registry.Resolver, opts ...RunnerOption) *Runner {
	r := &Runner{
		board:      b,
		controller: c,
		resolver:   res,
		logger:     log.New(io.Discard),
		tracer:     noop.NewTracerProvider().Tracer("gridquest/program"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Step executes one call. It refuses to run once the board reports game over.
func (r *Runner) Step(ctx context.Context, call Call) error {
	if r.board.GameOver() {
		return fmt.Errorf("program: %s: %w", call, ErrGameOver)
	}
	if err := registry.Execute(ctx, call.Block, r.controller, r.resolver, call.Arg); err != nil {
		return fmt.Errorf("program: %s: %w", call, err)
	}
	return nil
}

// Run applies the program header, then executes calls in order until they
// run out or the game ends. Calls after game over are skipped, not issued.
func (r *Runner) Run(ctx context.Context, p *Program) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "program.run")
	defer span.End()

	r.controller.ResetCounters()

	if p.Scenario != "" {
		r.board.ResetOutcome()
		if err := r.Step(ctx, Call{Block: setScenarioBlock, Arg: p.Scenario}); err != nil {
			return Result{}, err
		}
	}
	if p.Appearance != "" {
		if err := r.Step(ctx, Call{Block: setAppearanceBlock, Arg: p.Appearance}); err != nil {
			return Result{}, err
		}
	}

	calls := p.Calls()
	res := Result{Program: p.Name}

	r.logger.Info("running program", "name", p.Name, "scenario", p.Scenario, "calls", len(calls))

	for i, call := range calls {
		if err := ctx.Err(); err != nil {
			return r.finish(res), err
		}
		if err := r.Step(ctx, call); err != nil {
			return r.finish(res), err
		}
		res.Steps++

		loc := r.controller.Location()
		r.logger.Debug("step", "index", i, "call", call.String(), "location", loc)
		if r.onStep != nil {
			r.onStep(i, call, loc)
		}

		if r.board.GameOver() {
			res.Skipped = len(calls) - i - 1
			break
		}
	}

	res = r.finish(res)
	span.SetAttributes(
		attribute.String("outcome", res.Outcome.String()),
		attribute.Int("steps", res.Steps),
	)
	r.logger.Info("program finished", "name", p.Name, "outcome", res.Outcome, "moves", res.Moves)

	if r.save != nil {
		if err := r.save(ctx, res); err != nil {
			r.logger.Warn("failed to save result", "error", err)
		}
	}
	return res, nil
}

func (r *Runner) finish(res Result) Result {
	snap := r.board.Snapshot()
	res.Scenario = snap.Tilemap.ID
	res.Appearance = snap.Image.Name
	res.Outcome = snap.Outcome
	res.Moves = r.controller.Moves()
	res.Teleports = r.controller.Teleports()
	res.Location = r.controller.Location()
	return res
}
