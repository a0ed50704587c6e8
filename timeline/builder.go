package timeline

import (
	"sort"

	"github.com/vidmark/go-vidmark/detect"
)

// Timeline is the time ordered sequence of one entity's detections across
// the video.  It is built once from the full detection set and immutable
// thereafter.
type Timeline struct {
	records []detect.Record
}

// Len returns the number of records in the timeline
func (t Timeline) Len() int {
	return len(t.records)
}

// At returns the record at index i in frame order
func (t Timeline) At(i int) detect.Record {
	return t.records[i]
}

// First returns the entity's earliest observation
func (t Timeline) First() detect.Record {
	return t.records[0]
}

// Last returns the entity's latest observation
func (t Timeline) Last() detect.Record {
	return t.records[len(t.records)-1]
}

// Build groups detection records by entity identity and produces a time
// ordered timeline per entity.  Frames are visited in ascending order and
// each timeline is stable sorted by frame index, so when degenerate input
// carries two records for one entity at the same frame the later one in
// document order wins exact match queries.
func Build(byFrame map[int][]detect.Record) map[int]Timeline {

	frames := make([]int, 0, len(byFrame))

	for idx := range byFrame {
		frames = append(frames, idx)
	}

	sort.Ints(frames)

	grouped := make(map[int][]detect.Record)

	for _, idx := range frames {
		for _, rec := range byFrame[idx] {
			grouped[rec.EntityID] = append(grouped[rec.EntityID], rec)
		}
	}

	timelines := make(map[int]Timeline, len(grouped))

	for id, recs := range grouped {

		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].FrameIndex < recs[j].FrameIndex
		})

		timelines[id] = Timeline{records: recs}
	}

	return timelines
}
