package blocks

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/grid-quest/internal/board"
	"github.com/vovakirdan/grid-quest/internal/grid"
	"github.com/vovakirdan/grid-quest/internal/quest"
	"github.com/vovakirdan/grid-quest/internal/registry"
	"github.com/vovakirdan/grid-quest/internal/scenario"
)

func newSession(t *testing.T) (*board.Board, *quest.Controller, Catalog) {
	t.Helper()
	lib, err := scenario.Embedded()
	if err != nil {
		t.Fatalf("Embedded() failed: %v", err)
	}
	b := board.New(board.WithPace(0))
	return b, quest.New(b), Catalog{Scenarios: lib}
}

func TestAllBlocksRegistered(t *testing.T) {
	ids := []string{
		MoveRight, MoveLeft, MoveUp, MoveDown,
		JumpRight, JumpLeft, JumpUp, JumpDown,
		SetAppearance, SetScenario,
	}
	for _, id := range ids {
		if !registry.Exists(id) {
			t.Errorf("block %s not registered", id)
		}
	}
}

func TestBlockGroups(t *testing.T) {
	tests := []struct {
		id    string
		group registry.Group
		arg   bool
	}{
		{MoveRight, registry.GroupMovement, false},
		{MoveDown, registry.GroupMovement, false},
		{JumpLeft, registry.GroupActions, false},
		{JumpUp, registry.GroupActions, false},
		{SetAppearance, registry.GroupCharacter, true},
		{SetScenario, registry.GroupScenario, true},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			b, ok := registry.Lookup(tc.id)
			if !ok {
				t.Fatal("block not found")
			}
			if b.Group != tc.group {
				t.Errorf("group = %s, want %s", b.Group, tc.group)
			}
			if b.TakesArg() != tc.arg {
				t.Errorf("TakesArg() = %v, want %v", b.TakesArg(), tc.arg)
			}
		})
	}
}

func TestMoveBlocks(t *testing.T) {
	tests := []struct {
		id   string
		want grid.Location
	}{
		{MoveRight, grid.L(2, 1)},
		{MoveLeft, grid.L(0, 1)},
		{MoveUp, grid.L(1, 0)},
		{MoveDown, grid.L(1, 2)},
		{JumpRight, grid.L(3, 1)},
		{JumpDown, grid.L(1, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			b, c, cat := newSession(t)
			ctx := context.Background()

			// level1 starts at (1,1).
			if err := registry.Execute(ctx, SetScenario, c, cat, scenario.DefaultID); err != nil {
				t.Fatalf("setScenario failed: %v", err)
			}
			if err := registry.Execute(ctx, tc.id, c, cat, ""); err != nil {
				t.Fatalf("%s failed: %v", tc.id, err)
			}
			if got := b.Snapshot().Location; got != tc.want {
				t.Errorf("location = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetAppearanceBlock(t *testing.T) {
	b, c, cat := newSession(t)
	ctx := context.Background()

	if err := registry.Execute(ctx, SetAppearance, c, cat, "robot"); err != nil {
		t.Fatalf("setAppearance failed: %v", err)
	}
	if got := b.Snapshot().Image.Name; got != "robot" {
		t.Errorf("image = %q, want robot", got)
	}

	err := registry.Execute(ctx, SetAppearance, c, cat, "dragon")
	if !errors.Is(err, ErrUnknownImage) {
		t.Errorf("expected ErrUnknownImage, got %v", err)
	}
	if got := b.Snapshot().Image.Name; got != "robot" {
		t.Errorf("failed block should not change the image, got %q", got)
	}
}

func TestSetScenarioUnknown(t *testing.T) {
	_, c, cat := newSession(t)

	err := registry.Execute(context.Background(), SetScenario, c, cat, "level99")
	if !errors.Is(err, scenario.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if c.Phase() != quest.PhaseUninitialized {
		t.Error("failed scenario block should not touch the controller")
	}
}

func TestCatalogWithoutLibrary(t *testing.T) {
	if _, err := (Catalog{}).Scenario("level1"); !errors.Is(err, scenario.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
