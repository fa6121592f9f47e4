package quest

import (
	"context"
	"reflect"
	"testing"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
)

func newTestController(rows ...string) (*Controller, *fakeEngine) {
	eng := newFakeEngine()
	c := New(eng)
	if len(rows) > 0 {
		c.SetScenario(context.Background(), grid.ParseLayout("test", rows))
		eng.calls = nil
		eng.pauses = nil
	}
	return c, eng
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	eng := newFakeEngine()
	c := New(eng, WithDefaultTilemap(grid.ParseLayout("level1", []string{"S.."})))

	if c.Phase() != PhaseUninitialized {
		t.Fatalf("new controller should be uninitialized, got %v", c.Phase())
	}

	c.ensureInitialized()
	c.ensureInitialized()

	if c.Phase() != PhaseReady {
		t.Errorf("expected ready phase, got %v", c.Phase())
	}
	if eng.sprites != 1 {
		t.Errorf("expected exactly one sprite, got %d", eng.sprites)
	}
	want := []string{"load level1", "create player"}
	if !reflect.DeepEqual(eng.calls, want) {
		t.Errorf("calls = %v, expected %v", eng.calls, want)
	}
}

func TestPositionAtStartBeforeInitIsNoop(t *testing.T) {
	eng := newFakeEngine()
	c := New(eng)

	c.positionAtStart()

	if len(eng.calls) != 0 {
		t.Errorf("positionAtStart before init should not touch the engine, got %v", eng.calls)
	}
}

func TestSetScenarioUsesFirstStart(t *testing.T) {
	eng := newFakeEngine()
	c := New(eng)

	c.SetScenario(context.Background(), grid.ParseLayout("two-starts", []string{
		"...",
		".S.",
		"S..",
	}))

	if eng.loc != grid.L(1, 1) {
		t.Errorf("expected character at first start (1,1), got %v", eng.loc)
	}

	want := []string{
		"load background",
		"create player",
		"load two-starts",
		"place (1,1)",
		"pause 500ms",
	}
	if !reflect.DeepEqual(eng.calls, want) {
		t.Errorf("calls = %v, expected %v", eng.calls, want)
	}
}

func TestSetScenarioWithoutStartDefaultsToOrigin(t *testing.T) {
	eng := newFakeEngine()
	c := New(eng)
	eng.loc = grid.L(4, 4)

	c.SetScenario(context.Background(), grid.ParseLayout("no-start", []string{
		"...",
		"..A",
	}))

	if eng.loc != grid.L(0, 0) {
		t.Errorf("expected (0,0) fallback, got %v", eng.loc)
	}
}

func TestSetScenarioKeepsCharacter(t *testing.T) {
	c, eng := newTestController("S..")

	c.SetScenario(context.Background(), grid.ParseLayout("next", []string{"..S"}))

	if eng.sprites != 1 {
		t.Errorf("changing scenario must not recreate the character, got %d sprites", eng.sprites)
	}
	if eng.loc != grid.L(2, 0) {
		t.Errorf("expected reposition to (2,0), got %v", eng.loc)
	}
	if c.Phase() != PhaseReady {
		t.Errorf("expected ready phase, got %v", c.Phase())
	}
}

func TestSetAppearance(t *testing.T) {
	c, eng := newTestController("S..")
	eng.loc = grid.L(1, 0)
	robot, _ := core.LookupImage("robot")

	c.SetAppearance(context.Background(), robot)

	if eng.image.Name != "robot" {
		t.Errorf("expected robot image, got %q", eng.image.Name)
	}
	if eng.loc != grid.L(1, 0) {
		t.Errorf("appearance change must not move the character, got %v", eng.loc)
	}
	want := []string{"image robot", "pause 500ms"}
	if !reflect.DeepEqual(eng.calls, want) {
		t.Errorf("calls = %v, expected %v", eng.calls, want)
	}
}

func TestSetAppearanceInitializesFirst(t *testing.T) {
	eng := newFakeEngine()
	c := New(eng)
	cat, _ := core.LookupImage("cat")

	c.SetAppearance(context.Background(), cat)

	want := []string{"load background", "create player", "image cat", "pause 500ms"}
	if !reflect.DeepEqual(eng.calls, want) {
		t.Errorf("calls = %v, expected %v", eng.calls, want)
	}
}

func TestMoveDeltas(t *testing.T) {
	tests := []struct {
		name   string
		move   func(*Controller, context.Context)
		dx, dy int
	}{
		{"MoveRight", (*Controller).MoveRight, 1, 0},
		{"MoveLeft", (*Controller).MoveLeft, -1, 0},
		{"MoveUp", (*Controller).MoveUp, 0, -1},
		{"MoveDown", (*Controller).MoveDown, 0, 1},
		{"JumpRight", (*Controller).JumpRight, 2, 0},
		{"JumpLeft", (*Controller).JumpLeft, -2, 0},
		{"JumpUp", (*Controller).JumpUp, 0, -2},
		{"JumpDown", (*Controller).JumpDown, 0, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, eng := newTestController(
				".....",
				".....",
				"..S..",
				".....",
				".....",
			)

			tc.move(c, context.Background())

			if eng.loc != grid.L(2+tc.dx, 2+tc.dy) {
				t.Errorf("expected %v, got %v", grid.L(2+tc.dx, 2+tc.dy), eng.loc)
			}
			// One combined engine move and one evaluation per call.
			if n := eng.count("move "); n != 1 {
				t.Errorf("expected 1 engine move, got %d", n)
			}
			if n := eng.count("query "); n != 1 {
				t.Errorf("expected 1 tile evaluation, got %d", n)
			}
			if c.Moves() != 1 {
				t.Errorf("Moves() = %d, expected 1", c.Moves())
			}
		})
	}
}

func TestMoveOrder(t *testing.T) {
	c, eng := newTestController("S..")

	c.MoveRight(context.Background())

	want := []string{"move 1,0", "pause 500ms", "query (1,0)"}
	if !reflect.DeepEqual(eng.calls, want) {
		t.Errorf("calls = %v, expected %v", eng.calls, want)
	}
}

func TestMoveInitializesLazily(t *testing.T) {
	eng := newFakeEngine()
	c := New(eng)

	c.MoveDown(context.Background())

	want := []string{"load background", "create player", "move 0,1", "pause 500ms", "query (0,1)"}
	if !reflect.DeepEqual(eng.calls, want) {
		t.Errorf("calls = %v, expected %v", eng.calls, want)
	}
}

func TestWithTimings(t *testing.T) {
	eng := newFakeEngine()
	c := New(eng, WithTimings(0, -5))

	c.SetScenario(context.Background(), grid.ParseLayout("p", []string{"SP.P"}))
	c.MoveRight(context.Background())

	for _, d := range eng.pauses {
		if d != 0 {
			t.Errorf("expected zero pauses, got %v", eng.pauses)
			break
		}
	}
	if len(eng.pauses) != 3 {
		t.Errorf("expected scenario, move and teleport pauses, got %v", eng.pauses)
	}
}

func TestLocationBeforeInit(t *testing.T) {
	c := New(newFakeEngine())
	if c.Location() != grid.L(0, 0) {
		t.Errorf("Location() before init = %v", c.Location())
	}
}

func TestResetCounters(t *testing.T) {
	c, _ := newTestController("SP.P")

	c.MoveRight(context.Background())
	if c.Moves() != 1 || c.Teleports() != 1 {
		t.Fatalf("moves=%d teleports=%d, expected 1 and 1", c.Moves(), c.Teleports())
	}

	c.ResetCounters()
	if c.Moves() != 0 || c.Teleports() != 0 {
		t.Errorf("counters not reset: moves=%d teleports=%d", c.Moves(), c.Teleports())
	}
}
