package detect

import (
	"encoding/json"
	"fmt"
	"os"

	vidmark "github.com/vidmark/go-vidmark"
)

// VideoInfo describes the source video the detections were produced from
type VideoInfo struct {
	FPS         float64
	TotalFrames int
	VideoPath   string
	VideoStem   string
}

// FrameDetections holds all entity records observed on a single analyzed
// frame
type FrameDetections struct {
	FrameIndex int
	Records    []Record
}

// Document is the parsed detection document produced by the upstream
// analysis stage.  It is built once at startup and read only thereafter.
type Document struct {
	VideoInfo VideoInfo
	// DetectionKey is the document's preferred analysis attribute key for
	// labelling, optional and overridable by the caller
	DetectionKey string
	// TaskDescription is the analysis task the document was produced for
	TaskDescription string
	Frames          []FrameDetections
}

// raw document structures used for decoding.  Required fields are pointers
// so a missing field can be told apart from a zero value.
type documentJSON struct {
	VideoInfo       *videoInfoJSON `json:"video_info"`
	DetectionKey    string         `json:"detection_key"`
	TaskDescription string         `json:"task_description"`
	FrameDetections *[]frameJSON   `json:"frame_detections"`
}

type videoInfoJSON struct {
	FPS         *float64 `json:"fps"`
	TotalFrames int      `json:"total_frames"`
	VideoPath   string   `json:"video_path"`
	VideoStem   string   `json:"video_stem"`
}

type frameJSON struct {
	FrameIndex *int         `json:"frame_index"`
	People     []personJSON `json:"people"`
}

type personJSON struct {
	PersonID          *int       `json:"person_id"`
	Bbox              *boxJSON   `json:"bbox"`
	BboxConfidence    *float64   `json:"bbox_confidence"`
	AnalysisResult    Attributes `json:"analysis_result"`
	VisualDescription string     `json:"visual_description"`
}

type boxJSON struct {
	XMin *int `json:"x_min"`
	YMin *int `json:"y_min"`
	XMax *int `json:"x_max"`
	YMax *int `json:"y_max"`
}

// ReadDocument loads and parses the detection document at the given path
func ReadDocument(path string) (*Document, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", vidmark.ErrInputNotFound, path)
		}

		return nil, fmt.Errorf("error reading detections file: %w", err)
	}

	return ParseDocument(data)
}

// ParseDocument parses and validates a detection document.  A structurally
// invalid document fails the whole run, there is no partial recovery.
func ParseDocument(data []byte) (*Document, error) {

	var raw documentJSON

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", vidmark.ErrMalformedInput, err)
	}

	if raw.VideoInfo == nil {
		return nil, fmt.Errorf("%w: missing video_info", vidmark.ErrMalformedInput)
	}

	if raw.VideoInfo.FPS == nil {
		return nil, fmt.Errorf("%w: video_info missing fps", vidmark.ErrMalformedInput)
	}

	if raw.FrameDetections == nil {
		return nil, fmt.Errorf("%w: missing frame_detections", vidmark.ErrMalformedInput)
	}

	doc := &Document{
		VideoInfo: VideoInfo{
			FPS:         *raw.VideoInfo.FPS,
			TotalFrames: raw.VideoInfo.TotalFrames,
			VideoPath:   raw.VideoInfo.VideoPath,
			VideoStem:   raw.VideoInfo.VideoStem,
		},
		DetectionKey:    raw.DetectionKey,
		TaskDescription: raw.TaskDescription,
		Frames:          make([]FrameDetections, 0, len(*raw.FrameDetections)),
	}

	for i, frame := range *raw.FrameDetections {

		if frame.FrameIndex == nil {
			return nil, fmt.Errorf("%w: frame_detections[%d] missing frame_index",
				vidmark.ErrMalformedInput, i)
		}

		if *frame.FrameIndex < 0 {
			return nil, fmt.Errorf("%w: frame_detections[%d] has negative frame_index %d",
				vidmark.ErrMalformedInput, i, *frame.FrameIndex)
		}

		fd := FrameDetections{
			FrameIndex: *frame.FrameIndex,
			Records:    make([]Record, 0, len(frame.People)),
		}

		for j, person := range frame.People {

			rec, err := validatePerson(person, *frame.FrameIndex, i, j)

			if err != nil {
				return nil, err
			}

			fd.Records = append(fd.Records, rec)
		}

		doc.Frames = append(doc.Frames, fd)
	}

	return doc, nil
}

// validatePerson checks a single entity record for the required fields and
// converts it to a Record
func validatePerson(person personJSON, frameIndex, i, j int) (Record, error) {

	where := fmt.Sprintf("frame_detections[%d].people[%d]", i, j)

	if person.PersonID == nil {
		return Record{}, fmt.Errorf("%w: %s missing person_id",
			vidmark.ErrMalformedInput, where)
	}

	if *person.PersonID < 0 {
		return Record{}, fmt.Errorf("%w: %s has negative person_id %d",
			vidmark.ErrMalformedInput, where, *person.PersonID)
	}

	if person.Bbox == nil {
		return Record{}, fmt.Errorf("%w: %s missing bbox",
			vidmark.ErrMalformedInput, where)
	}

	if person.Bbox.XMin == nil || person.Bbox.YMin == nil ||
		person.Bbox.XMax == nil || person.Bbox.YMax == nil {
		return Record{}, fmt.Errorf("%w: %s bbox missing coordinates",
			vidmark.ErrMalformedInput, where)
	}

	if person.BboxConfidence == nil {
		return Record{}, fmt.Errorf("%w: %s missing bbox_confidence",
			vidmark.ErrMalformedInput, where)
	}

	return Record{
		FrameIndex: frameIndex,
		EntityID:   *person.PersonID,
		Box: Box{
			XMin: *person.Bbox.XMin,
			YMin: *person.Bbox.YMin,
			XMax: *person.Bbox.XMax,
			YMax: *person.Bbox.YMax,
		},
		Confidence:  *person.BboxConfidence,
		Attributes:  person.AnalysisResult,
		Description: person.VisualDescription,
	}, nil
}

// ByFrame indexes the document's records by absolute frame index
func (d *Document) ByFrame() map[int][]Record {

	byFrame := make(map[int][]Record, len(d.Frames))

	for _, frame := range d.Frames {
		byFrame[frame.FrameIndex] = append(byFrame[frame.FrameIndex], frame.Records...)
	}

	return byFrame
}

// RecordCount returns the total number of entity records in the document
func (d *Document) RecordCount() int {

	n := 0

	for _, frame := range d.Frames {
		n += len(frame.Records)
	}

	return n
}
