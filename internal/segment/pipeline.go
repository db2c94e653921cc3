package segment

import (
	"fmt"
	"sort"
	"time"
)

// Run executes the full pipeline: validate every record, group and sort
// per device, segment each track, finalize candidates, then number all
// viable trips globally by start time. Malformed input degrades to
// smaller output, never to an error — every drop is reported as a
// Rejection in the result.
//
// colors may be nil, in which case trips carry no color. Thresholds in
// cfg must be positive; the caller is responsible for sane values.
func Run(records []Record, m FieldMapping, cfg Config, colors ColorFunc) Result {
	startTime := time.Now()

	var points []Point
	var rejections []Rejection

	for _, rec := range records {
		p, rej := ValidateRecord(rec, m)
		if rej != nil {
			rejections = append(rejections, *rej)
			continue
		}
		points = append(points, p)
	}

	tracks := BuildTracks(points)

	// Segmentation is per device; devices never see each other until
	// the final numbering merge.
	var trips []Trip
	candidates := 0
	dropped := 0
	for _, track := range tracks {
		for _, cand := range SegmentTrack(track, cfg) {
			candidates++
			trip, rej := FinalizeCandidate(cand)
			if rej != nil {
				dropped++
				rejections = append(rejections, *rej)
				continue
			}
			trips = append(trips, trip)
		}
	}

	// Global numbering: one stable sort across devices, ties keep
	// encounter order.
	sort.SliceStable(trips, func(a, b int) bool {
		return trips[a].Start.Before(trips[b].Start)
	})

	totalDistance := 0.0
	for i := range trips {
		trips[i].Rank = i + 1
		trips[i].ID = fmt.Sprintf("trip_%d", i+1)
		if colors != nil {
			trips[i].Color = colors(i)
		}
		totalDistance += trips[i].DistanceKm
	}

	return Result{
		Trips:      trips,
		Rejections: rejections,
		Stats: Stats{
			InputRecords:      len(records),
			ValidPoints:       len(points),
			Devices:           len(tracks),
			Candidates:        candidates,
			Trips:             len(trips),
			RejectedRecords:   len(records) - len(points),
			DroppedCandidates: dropped,
			TotalDistanceKm:   totalDistance,
			ProcessingTime:    time.Since(startTime),
		},
	}
}
