package detect

// Box is a bounding box in absolute pixel coordinates of the source video
// frame.  A well formed box has XMax > XMin and YMax > YMin.  Coordinates
// are trusted as produced upstream and are not clamped to the frame bounds.
type Box struct {
	XMin int `json:"x_min"`
	YMin int `json:"y_min"`
	XMax int `json:"x_max"`
	YMax int `json:"y_max"`
}

// Width returns the box width in pixels
func (b Box) Width() int {
	return b.XMax - b.XMin
}

// Height returns the box height in pixels
func (b Box) Height() int {
	return b.YMax - b.YMin
}

// Record is a single observation of one entity on one video frame
type Record struct {
	// FrameIndex is the absolute frame number in the source video, not a
	// batch local index used by the upstream analyzer
	FrameIndex int
	// EntityID is the stable identity assigned by the upstream analyzer
	EntityID int
	// Box is the entity's bounding box on this frame
	Box Box
	// Confidence is the detection confidence in the range [0,1]
	Confidence float64
	// Attributes are the open ended analysis results for this entity, eg:
	// {"emotion": "happy", "confidence": 0.9}.  Their semantics are defined
	// by the upstream analysis task.
	Attributes Attributes
	// Description is the free text visual description supporting the
	// analysis.  It is carried through but not rendered.
	Description string
}
