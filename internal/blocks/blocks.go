// Package blocks registers the grid-quest program blocks.
// Import it for side effects to make the blocks available in the registry.
package blocks

import (
	"context"

	"github.com/vovakirdan/grid-quest/internal/quest"
	"github.com/vovakirdan/grid-quest/internal/registry"
)

// Block IDs.
const (
	MoveRight     = "moveRight"
	MoveLeft      = "moveLeft"
	MoveUp        = "moveUp"
	MoveDown      = "moveDown"
	JumpRight     = "jumpRight"
	JumpLeft      = "jumpLeft"
	JumpUp        = "jumpUp"
	JumpDown      = "jumpDown"
	SetAppearance = "setAppearance"
	SetScenario   = "setScenario"
)

func init() {
	move := func(id, label string, group registry.Group, op func(*quest.Controller, context.Context)) {
		registry.Register(registry.Block{
			ID:    id,
			Label: label,
			Group: group,
			Run: func(ctx context.Context, c *quest.Controller, _ registry.Resolver, _ string) error {
				op(c, ctx)
				return nil
			},
		})
	}

	move(MoveRight, "→", registry.GroupMovement, (*quest.Controller).MoveRight)
	move(MoveLeft, "←", registry.GroupMovement, (*quest.Controller).MoveLeft)
	move(MoveUp, "↑", registry.GroupMovement, (*quest.Controller).MoveUp)
	move(MoveDown, "↓", registry.GroupMovement, (*quest.Controller).MoveDown)

	move(JumpRight, "→→", registry.GroupActions, (*quest.Controller).JumpRight)
	move(JumpLeft, "←←", registry.GroupActions, (*quest.Controller).JumpLeft)
	move(JumpUp, "↑↑", registry.GroupActions, (*quest.Controller).JumpUp)
	move(JumpDown, "↓↓", registry.GroupActions, (*quest.Controller).JumpDown)

	registry.Register(registry.Block{
		ID:    SetAppearance,
		Label: "set appearance",
		Group: registry.GroupCharacter,
		Arg:   "image",
		Run: func(ctx context.Context, c *quest.Controller, r registry.Resolver, arg string) error {
			img, err := r.Image(arg)
			if err != nil {
				return err
			}
			c.SetAppearance(ctx, img)
			return nil
		},
	})

	registry.Register(registry.Block{
		ID:    SetScenario,
		Label: "set scenario",
		Group: registry.GroupScenario,
		Arg:   "scenario",
		Run: func(ctx context.Context, c *quest.Controller, r registry.Resolver, arg string) error {
			m, err := r.Scenario(arg)
			if err != nil {
				return err
			}
			c.SetScenario(ctx, m)
			return nil
		},
	})
}
