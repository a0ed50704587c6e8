package render

import "image/color"

var (
	// palette is the fixed set of entity display colors.  Seven visually
	// distinct colors, assigned by entity id so an entity keeps the same
	// color across the whole video.
	palette = []color.RGBA{
		{R: 0, G: 255, B: 0, A: 255},   // green
		{R: 0, G: 0, B: 255, A: 255},   // blue
		{R: 255, G: 0, B: 0, A: 255},   // red
		{R: 0, G: 255, B: 255, A: 255}, // cyan
		{R: 255, G: 0, B: 255, A: 255}, // magenta
		{R: 255, G: 255, B: 0, A: 255}, // yellow
		{R: 128, G: 0, B: 128, A: 255}, // purple
	}

	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ColorFor returns the display color for an entity.  The choice is a pure
// function of the entity id modulo the palette size.
func ColorFor(entityID int) color.RGBA {
	return palette[entityID%len(palette)]
}

// PaletteSize returns the number of distinct entity colors
func PaletteSize() int {
	return len(palette)
}
