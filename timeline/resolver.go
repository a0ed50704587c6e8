package timeline

import (
	"math"
	"sort"

	"github.com/vidmark/go-vidmark/detect"
)

// DefaultMaxGap is the default bound on how many frames a detection gap may
// span before an entity is considered absent
const DefaultMaxGap = 90

// Resolver answers "what is entity E's state at frame F" queries against a
// set of immutable timelines.  Resolve is a pure function of the timelines
// and the query, so it is safe to call for every (entity, frame) pair in
// any order, repeatedly, or shared read only between workers.
type Resolver struct {
	timelines map[int]Timeline
	maxGap    int
}

// NewResolver returns a resolver over the given timelines.  A maxGap of
// zero or less selects DefaultMaxGap.
func NewResolver(timelines map[int]Timeline, maxGap int) *Resolver {

	if maxGap <= 0 {
		maxGap = DefaultMaxGap
	}

	return &Resolver{
		timelines: timelines,
		maxGap:    maxGap,
	}
}

// MaxGap returns the configured gap bound
func (r *Resolver) MaxGap() int {
	return r.maxGap
}

// EntityIDs returns all known entity ids in ascending order
func (r *Resolver) EntityIDs() []int {

	ids := make([]int, 0, len(r.timelines))

	for id := range r.timelines {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}

// Resolve returns the entity's state at the given frame, or nil when the
// entity is not shown on that frame.
//
// An exact observation is returned unmodified.  A frame inside a gap of at
// most maxGap frames between two observations gets a linearly interpolated
// box with all other fields copied from the earlier record.  A frame past
// the last observation, or before the first, holds that record unchanged
// for up to half of maxGap, the halved bound keeps an entity from ghosting
// at the edges of its visible lifetime where only one side anchors the
// motion.
//
// The returned record must be treated as read only.
func (r *Resolver) Resolve(entityID, frame int) *detect.Record {

	tl, ok := r.timelines[entityID]

	if !ok || tl.Len() == 0 {
		return nil
	}

	recs := tl.records

	// next is the first record at or after the query frame, prev the last
	// record at or before it
	next := sort.Search(len(recs), func(i int) bool {
		return recs[i].FrameIndex >= frame
	})

	prev := sort.Search(len(recs), func(i int) bool {
		return recs[i].FrameIndex > frame
	}) - 1

	if prev >= 0 && recs[prev].FrameIndex == frame {
		return &recs[prev]
	}

	hasPrev := prev >= 0
	hasNext := next < len(recs)
	half := float64(r.maxGap) / 2

	switch {
	case hasPrev && hasNext:
		span := recs[next].FrameIndex - recs[prev].FrameIndex

		if span <= r.maxGap {
			alpha := float64(frame-recs[prev].FrameIndex) / float64(span)

			// non positional fields carry over from the earlier record
			rec := recs[prev]
			rec.Box = lerpBox(recs[prev].Box, recs[next].Box, alpha)

			return &rec
		}

	case hasPrev:
		if float64(frame-recs[prev].FrameIndex) <= half {
			return &recs[prev]
		}

	case hasNext:
		if float64(recs[next].FrameIndex-frame) <= half {
			return &recs[next]
		}
	}

	return nil
}

// lerpBox blends two boxes, alpha 0 selects a and alpha 1 selects b
func lerpBox(a, b detect.Box, alpha float64) detect.Box {
	return detect.Box{
		XMin: lerp(a.XMin, b.XMin, alpha),
		YMin: lerp(a.YMin, b.YMin, alpha),
		XMax: lerp(a.XMax, b.XMax, alpha),
		YMax: lerp(a.YMax, b.YMax, alpha),
	}
}

func lerp(a, b int, alpha float64) int {
	return int(math.Round(float64(a)*(1-alpha) + float64(b)*alpha))
}
