package blocks

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
	"github.com/vovakirdan/grid-quest/internal/registry"
	"github.com/vovakirdan/grid-quest/internal/scenario"
)

// ErrUnknownImage is returned for an image name outside the catalog.
var ErrUnknownImage = errors.New("unknown image")

// Catalog resolves block arguments against the image catalog and a scenario library.
type Catalog struct {
	Scenarios *scenario.Library
}

var _ registry.Resolver = Catalog{}

// Image returns the catalog image with the given name.
func (c Catalog) Image(name string) (core.Image, error) {
	img, ok := core.LookupImage(name)
	if !ok {
		return core.Image{}, fmt.Errorf("blocks: image %q: %w", name, ErrUnknownImage)
	}
	return img, nil
}

// Scenario returns the tilemap of the scenario with the given ID.
func (c Catalog) Scenario(id string) (*grid.Tilemap, error) {
	if c.Scenarios == nil {
		return nil, fmt.Errorf("blocks: scenario %q: %w", id, scenario.ErrNotFound)
	}
	sc, err := c.Scenarios.Get(id)
	if err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}
	return sc.Tilemap(), nil
}
