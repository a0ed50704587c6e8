// Package render composites bounding box and label badge overlays onto
// video frames.  Drawing mutates the caller owned frame Mat in place so
// the frame loop does not allocate a new buffer per draw call.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	clipper "github.com/ctessum/go.clipper"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/vidmark/go-vidmark/detect"
)

// strokeOffsets are the 8 pixel directions the badge text is pre drawn in
// black before the final white draw, giving an outline that stays legible
// against any background
var strokeOffsets = []image.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Annotator draws styled annotation overlays onto frames.  It owns a
// parsed font and caches faces per pixel size, so one instance should be
// reused across the whole frame loop.
type Annotator struct {
	style Style
	font  *sfnt.Font
	faces map[int]font.Face
}

// NewAnnotator returns an annotator using the given style.  The badge face
// is the embedded Go Regular font so no font file is needed at runtime.
func NewAnnotator(style Style) (*Annotator, error) {

	f, err := opentype.Parse(goregular.TTF)

	if err != nil {
		return nil, fmt.Errorf("error parsing badge font: %w", err)
	}

	return &Annotator{
		style: style,
		font:  f,
		faces: make(map[int]font.Face),
	}, nil
}

// face returns a font face for the given pixel size, creating and caching
// it on first use
func (a *Annotator) face(size int) (font.Face, error) {

	if fc, ok := a.faces[size]; ok {
		return fc, nil
	}

	fc, err := opentype.NewFace(a.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})

	if err != nil {
		return nil, fmt.Errorf("error creating %dpx face: %w", size, err)
	}

	a.faces[size] = fc

	return fc, nil
}

// Draw renders a rounded corner box outline and a label badge for one
// entity onto the frame.  The frame Mat is mutated in place and must not
// be shared with another writer for the duration of the call.  Box
// coordinates are used as given, a box overlapping the frame edge renders
// partially off canvas.
func (a *Annotator) Draw(img *gocv.Mat, box detect.Box, clr color.RGBA, label string) error {

	frameHeight := img.Rows()
	outline := a.style.ScaledOutline(frameHeight)
	radius := a.style.ScaledRadius(frameHeight)

	a.drawOutline(img, box, clr, outline, radius)

	return a.drawBadge(img, box, clr, label)
}

// drawOutline draws the rounded corner bounding box outline
func (a *Annotator) drawOutline(img *gocv.Mat, box detect.Box, clr color.RGBA,
	outline, radius int) {

	// a radius too large for the box degrades towards a capsule, cap it
	// at just under half the smaller dimension
	maxRadius := box.Width()

	if box.Height() < maxRadius {
		maxRadius = box.Height()
	}

	maxRadius = maxRadius/2 - 1

	if radius > maxRadius {
		radius = maxRadius
	}

	if radius < 1 {
		rect := image.Rect(box.XMin, box.YMin, box.XMax, box.YMax)
		gocv.Rectangle(img, rect, clr, outline)
		return
	}

	pts := roundedRectPath(box, radius)

	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()

	gocv.Polylines(img, pv, true, clr, outline)
}

// roundedRectPath returns the closed outline path of the box with rounded
// corners.  The path is computed by offsetting the radius shrunk inner
// rectangle outwards with round joins, which traces each corner with an
// arc of the given radius.
func roundedRectPath(b detect.Box, radius int) []image.Point {

	inner := clipper.Path{
		&clipper.IntPoint{X: clipper.CInt(b.XMin + radius), Y: clipper.CInt(b.YMin + radius)},
		&clipper.IntPoint{X: clipper.CInt(b.XMax - radius), Y: clipper.CInt(b.YMin + radius)},
		&clipper.IntPoint{X: clipper.CInt(b.XMax - radius), Y: clipper.CInt(b.YMax - radius)},
		&clipper.IntPoint{X: clipper.CInt(b.XMin + radius), Y: clipper.CInt(b.YMax - radius)},
	}

	co := clipper.NewClipperOffset()
	co.AddPath(inner, clipper.JtRound, clipper.EtClosedPolygon)

	solution := co.Execute(float64(radius))

	if len(solution) == 0 {
		// degenerate box, fall back to the sharp rectangle path
		return []image.Point{
			image.Pt(b.XMin, b.YMin),
			image.Pt(b.XMax, b.YMin),
			image.Pt(b.XMax, b.YMax),
			image.Pt(b.XMin, b.YMax),
		}
	}

	pts := make([]image.Point, 0, len(solution[0]))

	for _, pt := range solution[0] {
		pts = append(pts, image.Pt(int(pt.X), int(pt.Y)))
	}

	return pts
}

// drawBadge composites the label badge above the box's top edge, a semi
// transparent fill of the entity color with white text outlined in black
func (a *Annotator) drawBadge(img *gocv.Mat, box detect.Box, clr color.RGBA,
	label string) error {

	face, err := a.face(a.style.FontSize(box.Width(), box.Height()))

	if err != nil {
		return err
	}

	pad := a.style.BadgePad
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	textWidth := font.MeasureString(face, label).Ceil()

	badgeWidth := textWidth + 2*pad
	badgeHeight := ascent + descent + 2*pad

	// centered horizontally on the box's top edge and directly above it,
	// clamped so the badge never leaves the top of the frame
	centerX := (box.XMin + box.XMax) / 2

	badgeTop := box.YMin - badgeHeight

	if badgeTop < 0 {
		badgeTop = 0
	}

	full := image.Rect(centerX-badgeWidth/2, badgeTop,
		centerX-badgeWidth/2+badgeWidth, badgeTop+badgeHeight)

	// only the on canvas part of the badge gets composited
	frame := image.Rect(0, 0, img.Cols(), img.Rows())
	clipped := full.Intersect(frame)

	if clipped.Empty() {
		return nil
	}

	region := img.Region(clipped)
	defer region.Close()

	roiImg, err := region.ToImage()

	if err != nil {
		return fmt.Errorf("error reading badge region: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, clipped.Dx(), clipped.Dy()))
	draw.Draw(canvas, canvas.Bounds(), roiImg, roiImg.Bounds().Min, draw.Src)

	// semi transparent background fill of the entity color
	alpha := uint8(a.style.BadgeAlpha*255 + 0.5)
	fill := image.NewUniform(color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: alpha})
	draw.Draw(canvas, canvas.Bounds(), fill, image.Point{}, draw.Over)

	// text origin relative to the clipped region
	textX := pad - (clipped.Min.X - full.Min.X)
	textY := pad + ascent - (clipped.Min.Y - full.Min.Y)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(Black),
		Face: face,
	}

	// black stroke outline drawn at small offsets in all 8 directions
	for _, off := range strokeOffsets {
		drawer.Dot = fixed.P(textX+off.X, textY+off.Y)
		drawer.DrawString(label)
	}

	drawer.Src = image.NewUniform(White)
	drawer.Dot = fixed.P(textX, textY)
	drawer.DrawString(label)

	// write the composed badge back through the region view
	badgeMat, err := gocv.NewMatFromBytes(clipped.Dy(), clipped.Dx(),
		gocv.MatTypeCV8UC4, canvas.Pix)

	if err != nil {
		return fmt.Errorf("error creating badge Mat: %w", err)
	}

	defer badgeMat.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()

	gocv.CvtColor(badgeMat, &bgr, gocv.ColorRGBAToBGR)
	bgr.CopyTo(&region)

	return nil
}
