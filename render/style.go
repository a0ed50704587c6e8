package render

import "math"

// baselineHeight is the frame height the base outline width and corner
// radius are tuned for, lines scale proportionately on other resolutions
const baselineHeight = 720

// Style defines the parameters for rendering annotation overlays
type Style struct {
	// FontMin is the minimum badge font size in pixels
	FontMin int
	// FontRatio scales the badge font size against the bounding box's
	// smaller dimension
	FontRatio float64
	// OutlineWidth is the box outline width at the 720p baseline
	OutlineWidth int
	// CornerRadius is the box corner radius at the 720p baseline
	CornerRadius int
	// BadgeAlpha is the opacity of the badge background fill, 0 to 1
	BadgeAlpha float64
	// BadgePad is the padding placed around badge text
	BadgePad int
}

// DefaultStyle returns default annotation style settings
func DefaultStyle() Style {
	return Style{
		FontMin:      16,
		FontRatio:    0.10,
		OutlineWidth: 3,
		CornerRadius: 12,
		BadgeAlpha:   0.55,
		BadgePad:     6,
	}
}

// FontSize returns the badge font size for a bounding box of the given
// dimensions
func (s Style) FontSize(boxWidth, boxHeight int) int {

	m := boxWidth

	if boxHeight < m {
		m = boxHeight
	}

	size := int(math.Round(s.FontRatio * float64(m)))

	if size < s.FontMin {
		size = s.FontMin
	}

	return size
}

// ScaledOutline returns the outline width for a frame of the given height
func (s Style) ScaledOutline(frameHeight int) int {
	return scaleForFrame(s.OutlineWidth, frameHeight, 1)
}

// ScaledRadius returns the corner radius for a frame of the given height
func (s Style) ScaledRadius(frameHeight int) int {
	return scaleForFrame(s.CornerRadius, frameHeight, 2)
}

// scaleForFrame scales a 720p baseline measurement to the given frame
// height with a lower floor
func scaleForFrame(base, frameHeight, min int) int {

	scaled := int(math.Round(float64(base) * float64(frameHeight) / baselineHeight))

	if scaled < min {
		scaled = min
	}

	return scaled
}
