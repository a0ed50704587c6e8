package timeline

import (
	"gonum.org/v1/gonum/stat"
)

// Summary describes a built timeline set, used for logging a run overview
// before the frame loop starts
type Summary struct {
	// Entities is the number of distinct tracked entities
	Entities int
	// Records is the total number of detection records
	Records int
	// MeanConfidence is the mean detection confidence across all records
	MeanConfidence float64
	// MeanGap is the mean frame distance between consecutive observations
	// of the same entity
	MeanGap float64
	// MaxGap is the largest such distance seen in any timeline
	MaxGap int
}

// Summarize computes summary statistics over the given timelines
func Summarize(timelines map[int]Timeline) Summary {

	s := Summary{
		Entities: len(timelines),
	}

	var confidences []float64
	var gaps []float64

	for _, tl := range timelines {

		s.Records += tl.Len()

		for i := 0; i < tl.Len(); i++ {
			confidences = append(confidences, tl.At(i).Confidence)

			if i == 0 {
				continue
			}

			gap := tl.At(i).FrameIndex - tl.At(i-1).FrameIndex
			gaps = append(gaps, float64(gap))

			if gap > s.MaxGap {
				s.MaxGap = gap
			}
		}
	}

	if len(confidences) > 0 {
		s.MeanConfidence = stat.Mean(confidences, nil)
	}

	if len(gaps) > 0 {
		s.MeanGap = stat.Mean(gaps, nil)
	}

	return s
}
