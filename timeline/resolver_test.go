package timeline

import (
	"testing"

	"github.com/vidmark/go-vidmark/detect"
)

// record builds a detection record fixture
func record(entityID, frame int, box detect.Box, confidence float64) detect.Record {
	return detect.Record{
		FrameIndex: frame,
		EntityID:   entityID,
		Box:        box,
		Confidence: confidence,
		Attributes: detect.NewAttributes(detect.Pair{Key: "emotion", Value: "happy"}),
	}
}

// byFrame indexes record fixtures the way the detection store does
func byFrame(recs ...detect.Record) map[int][]detect.Record {

	m := make(map[int][]detect.Record)

	for _, rec := range recs {
		m[rec.FrameIndex] = append(m[rec.FrameIndex], rec)
	}

	return m
}

func TestBuildSortsTimelines(t *testing.T) {

	// records arrive out of frame order
	timelines := Build(byFrame(
		record(7, 60, detect.Box{XMin: 1, YMin: 1, XMax: 2, YMax: 2}, 0.9),
		record(7, 0, detect.Box{XMin: 3, YMin: 3, XMax: 4, YMax: 4}, 0.8),
		record(7, 30, detect.Box{XMin: 5, YMin: 5, XMax: 6, YMax: 6}, 0.7),
		record(2, 30, detect.Box{XMin: 9, YMin: 9, XMax: 10, YMax: 10}, 0.6),
	))

	if len(timelines) != 2 {
		t.Fatalf("expected 2 timelines, got %d", len(timelines))
	}

	tl := timelines[7]

	if tl.Len() != 3 {
		t.Fatalf("expected 3 records for entity 7, got %d", tl.Len())
	}

	wantFrames := []int{0, 30, 60}

	for i, want := range wantFrames {
		if tl.At(i).FrameIndex != want {
			t.Errorf("record %d: expected frame %d, got %d", i, want, tl.At(i).FrameIndex)
		}
	}

	if tl.First().FrameIndex != 0 || tl.Last().FrameIndex != 60 {
		t.Errorf("unexpected timeline endpoints: first=%d last=%d",
			tl.First().FrameIndex, tl.Last().FrameIndex)
	}
}

func TestResolveExactMatch(t *testing.T) {

	box := detect.Box{XMin: 100, YMin: 100, XMax: 200, YMax: 200}

	timelines := Build(byFrame(
		record(1, 10, box, 0.9),
		record(1, 40, detect.Box{XMin: 140, YMin: 100, XMax: 240, YMax: 200}, 0.8),
	))

	r := NewResolver(timelines, DefaultMaxGap)

	rec := r.Resolve(1, 10)

	if rec == nil {
		t.Fatal("expected a record at an observed frame")
	}

	// identity law: an observed frame returns its box unchanged
	if rec.Box != box {
		t.Errorf("expected box %v, got %v", box, rec.Box)
	}

	if rec.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %f", rec.Confidence)
	}
}

func TestResolveInterpolation(t *testing.T) {

	// entity 5 observed at frames 10 and 40, queried halfway
	timelines := Build(byFrame(
		record(5, 10, detect.Box{XMin: 100, YMin: 100, XMax: 200, YMax: 200}, 0.9),
		record(5, 40, detect.Box{XMin: 140, YMin: 100, XMax: 240, YMax: 200}, 0.7),
	))

	r := NewResolver(timelines, 90)

	rec := r.Resolve(5, 25)

	if rec == nil {
		t.Fatal("expected an interpolated record inside the gap")
	}

	want := detect.Box{XMin: 120, YMin: 100, XMax: 220, YMax: 200}

	if rec.Box != want {
		t.Errorf("expected box %v, got %v", want, rec.Box)
	}

	// non positional fields come from the earlier record
	if rec.Confidence != 0.9 {
		t.Errorf("expected confidence carried from prev record, got %f", rec.Confidence)
	}
}

func TestResolveInterpolationBounds(t *testing.T) {

	prev := detect.Box{XMin: 100, YMin: 50, XMax: 200, YMax: 400}
	next := detect.Box{XMin: 160, YMin: 90, XMax: 150, YMax: 300}

	timelines := Build(byFrame(
		record(0, 0, prev, 0.9),
		record(0, 37, next, 0.9),
	))

	r := NewResolver(timelines, 90)

	between := func(v, a, b int) bool {
		if a > b {
			a, b = b, a
		}
		return v >= a && v <= b
	}

	for frame := 1; frame < 37; frame++ {

		rec := r.Resolve(0, frame)

		if rec == nil {
			t.Fatalf("frame %d: expected a record inside the gap", frame)
		}

		b := rec.Box

		if !between(b.XMin, prev.XMin, next.XMin) ||
			!between(b.YMin, prev.YMin, next.YMin) ||
			!between(b.XMax, prev.XMax, next.XMax) ||
			!between(b.YMax, prev.YMax, next.YMax) {
			t.Errorf("frame %d: interpolated box %v outside endpoint bounds", frame, b)
		}
	}
}

func TestResolveBackwardHold(t *testing.T) {

	// entity 3's only record is at frame 5 with maxGap 90, the hold window
	// past the last observation is 45 frames
	box := detect.Box{XMin: 10, YMin: 10, XMax: 20, YMax: 20}

	timelines := Build(byFrame(record(3, 5, box, 0.9)))

	r := NewResolver(timelines, 90)

	rec := r.Resolve(3, 50)

	if rec == nil {
		t.Fatal("expected held record at frame 50")
	}

	if rec.Box != box {
		t.Errorf("expected held box unchanged, got %v", rec.Box)
	}

	if got := r.Resolve(3, 51); got != nil {
		t.Errorf("expected nil past the hold window, got %v", got)
	}
}

func TestResolveForwardHold(t *testing.T) {

	box := detect.Box{XMin: 10, YMin: 10, XMax: 20, YMax: 20}

	timelines := Build(byFrame(record(3, 100, box, 0.9)))

	r := NewResolver(timelines, 90)

	// 45 frames before the first observation is still held
	rec := r.Resolve(3, 55)

	if rec == nil {
		t.Fatal("expected held record before first observation")
	}

	if rec.Box != box {
		t.Errorf("expected held box unchanged, got %v", rec.Box)
	}

	if got := r.Resolve(3, 54); got != nil {
		t.Errorf("expected nil before the hold window, got %v", got)
	}
}

func TestResolveGapExceeded(t *testing.T) {

	// both neighbours exist but the gap is wider than maxGap
	timelines := Build(byFrame(
		record(1, 0, detect.Box{XMin: 0, YMin: 0, XMax: 10, YMax: 10}, 0.9),
		record(1, 200, detect.Box{XMin: 50, YMin: 50, XMax: 60, YMax: 60}, 0.9),
	))

	r := NewResolver(timelines, 90)

	if rec := r.Resolve(1, 100); rec != nil {
		t.Errorf("expected nil inside an oversized gap, got %v", rec)
	}

	// holds only apply when one side has no observation at all, a bounded
	// query between two real observations never falls back to a hold
	if rec := r.Resolve(1, 45); rec != nil {
		t.Errorf("expected nil between observations of an oversized gap, got %v", rec)
	}
}

func TestResolveUnknownEntity(t *testing.T) {

	r := NewResolver(Build(byFrame()), 90)

	if rec := r.Resolve(42, 0); rec != nil {
		t.Errorf("expected nil for unknown entity, got %v", rec)
	}
}

func TestResolveIdempotent(t *testing.T) {

	timelines := Build(byFrame(
		record(5, 10, detect.Box{XMin: 100, YMin: 100, XMax: 200, YMax: 200}, 0.9),
		record(5, 40, detect.Box{XMin: 140, YMin: 100, XMax: 240, YMax: 200}, 0.7),
	))

	r := NewResolver(timelines, 90)

	// query out of order and repeatedly, results must not change
	first := *r.Resolve(5, 25)

	r.Resolve(5, 39)
	r.Resolve(5, 11)

	second := *r.Resolve(5, 25)

	if first.Box != second.Box || first.FrameIndex != second.FrameIndex {
		t.Errorf("resolve is not idempotent: %v vs %v", first, second)
	}
}

func TestResolveDuplicateFrameLaterWins(t *testing.T) {

	// degenerate input: two records for the same entity at the same frame
	early := record(1, 10, detect.Box{XMin: 0, YMin: 0, XMax: 10, YMax: 10}, 0.5)
	late := record(1, 10, detect.Box{XMin: 5, YMin: 5, XMax: 15, YMax: 15}, 0.6)

	m := map[int][]detect.Record{
		10: {early, late},
	}

	r := NewResolver(Build(m), 90)

	rec := r.Resolve(1, 10)

	if rec == nil {
		t.Fatal("expected a record")
	}

	if rec.Box != late.Box {
		t.Errorf("expected later record to win, got box %v", rec.Box)
	}
}

func TestEntityIDsSorted(t *testing.T) {

	timelines := Build(byFrame(
		record(9, 0, detect.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}, 0.9),
		record(2, 0, detect.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}, 0.9),
		record(5, 0, detect.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}, 0.9),
	))

	r := NewResolver(timelines, 0)

	ids := r.EntityIDs()
	want := []int{2, 5, 9}

	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}

	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("id %d: expected %d, got %d", i, want[i], ids[i])
		}
	}

	if r.MaxGap() != DefaultMaxGap {
		t.Errorf("expected default max gap %d, got %d", DefaultMaxGap, r.MaxGap())
	}
}

func TestSummarize(t *testing.T) {

	timelines := Build(byFrame(
		record(1, 0, detect.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}, 0.8),
		record(1, 30, detect.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}, 0.6),
		record(1, 90, detect.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}, 1.0),
		record(2, 10, detect.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}, 0.4),
	))

	s := Summarize(timelines)

	if s.Entities != 2 {
		t.Errorf("expected 2 entities, got %d", s.Entities)
	}

	if s.Records != 4 {
		t.Errorf("expected 4 records, got %d", s.Records)
	}

	if s.MaxGap != 60 {
		t.Errorf("expected max gap 60, got %d", s.MaxGap)
	}

	// gaps are 30 and 60
	if s.MeanGap != 45 {
		t.Errorf("expected mean gap 45, got %f", s.MeanGap)
	}

	if diff := s.MeanConfidence - 0.7; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected mean confidence 0.7, got %f", s.MeanConfidence)
	}
}

func TestSummarizeEmpty(t *testing.T) {

	s := Summarize(nil)

	if s.Entities != 0 || s.Records != 0 || s.MeanConfidence != 0 || s.MeanGap != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}
