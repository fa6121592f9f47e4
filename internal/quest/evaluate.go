package quest

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vovakirdan/grid-quest/internal/grid"
)

// evaluateTile resolves the tile under the character. Portal beats lava,
// lava beats arrival; the first match returns.
func (c *Controller) evaluateTile(ctx context.Context) {
	_, span := c.tracer.Start(ctx, "quest.evaluate")
	defer span.End()

	current := c.engine.LocationOf(c.character)
	kind := c.engine.TileKindAt(current)
	span.SetAttributes(
		attribute.String("tile", kind.String()),
		attribute.String("location", current.String()),
	)

	switch kind {
	case grid.TilePortal:
		if c.justTeleported {
			span.SetAttributes(attribute.Bool("guarded", true))
			return
		}

		dest, ok := pairedPortal(c.engine.LocationsOfKind(grid.TilePortal), current)
		if !ok {
			c.logger.Debug("portal has no partner", "location", current)
			return
		}

		c.justTeleported = true
		c.engine.PlaceAt(c.character, dest)
		c.teleports++
		span.SetAttributes(attribute.String("destination", dest.String()))
		c.logger.Debug("teleported", "from", current, "to", dest)
		c.engine.Suspend(c.teleportPause)

	case grid.TileLava:
		span.SetAttributes(attribute.String("outcome", "lost"))
		c.logger.Info("game over", "outcome", "lost", "location", current, "moves", c.moves)
		c.engine.EndGame(false)

	case grid.TileArrival:
		span.SetAttributes(attribute.String("outcome", "won"))
		c.logger.Info("game over", "outcome", "won", "location", current, "moves", c.moves)
		c.engine.EndGame(true)
	}
}

// pairedPortal returns the first portal in enumeration order that is not at
// from. With more than two portals this is not necessarily the nearest one.
func pairedPortal(portals []grid.Location, from grid.Location) (grid.Location, bool) {
	for _, p := range portals {
		if !p.Equal(from) {
			return p, true
		}
	}
	return grid.Location{}, false
}
