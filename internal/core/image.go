package core

import (
	"sort"
	"strings"
)

// Image is the visual representation of a sprite in the terminal.
// A single glyph stands in for the pixel art of the graphical editor.
type Image struct {
	Name  string
	Glyph rune
	Color Color
}

// DefaultImageName is the image a character gets before any appearance block runs.
const DefaultImageName = "player"

var images = map[string]Image{
	"player": {Name: "player", Glyph: '@', Color: ColorBrightYellow},
	"robot":  {Name: "robot", Glyph: 'R', Color: ColorBrightCyan},
	"cat":    {Name: "cat", Glyph: 'c', Color: ColorOrange},
	"ghost":  {Name: "ghost", Glyph: 'g', Color: ColorBrightWhite},
	"knight": {Name: "knight", Glyph: 'K', Color: ColorBrightGreen},
	"star":   {Name: "star", Glyph: '*', Color: ColorMagenta},
}

// LookupImage returns the catalog image with the given name (case-insensitive).
func LookupImage(name string) (Image, bool) {
	img, ok := images[strings.ToLower(strings.TrimSpace(name))]
	return img, ok
}

// DefaultImage returns the image used for a freshly created character.
func DefaultImage() Image {
	return images[DefaultImageName]
}

// ImageNames returns all catalog image names in sorted order.
func ImageNames() []string {
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
