package segment

import "fmt"

// SegmentTrack walks one time-ordered device track and splits it into
// trip candidates. A point extends the open candidate only if it stays
// within both thresholds relative to the previous point; otherwise the
// candidate closes and a new one opens seeded with that point alone.
// No point is ever dropped here — viability is FinalizeCandidate's job.
func SegmentTrack(track DeviceTrack, cfg Config) []TripCandidate {
	if len(track.Points) == 0 {
		return nil
	}

	var candidates []TripCandidate
	open := TripCandidate{
		DeviceID: track.DeviceID,
		Points:   []Point{track.Points[0]},
	}

	for _, p := range track.Points[1:] {
		prev := open.Points[len(open.Points)-1]
		dtSeconds := p.Time.Sub(prev.Time).Seconds()
		distKm := DistanceKm(prev, p)

		if dtSeconds <= cfg.GapMinutes*60 && distKm <= cfg.JumpKm {
			open.Points = append(open.Points, p)
			open.DistanceKm += distKm
			// Zero-duration segments never contribute to speed,
			// even when the distance is nonzero.
			if dtSeconds > 0 {
				speed := distKm / (dtSeconds / 3600)
				if speed > open.MaxSpeedKmh {
					open.MaxSpeedKmh = speed
				}
			}
			continue
		}

		candidates = append(candidates, open)
		open = TripCandidate{
			DeviceID: track.DeviceID,
			Points:   []Point{p},
		}
	}

	return append(candidates, open)
}

// FinalizeCandidate turns a closed candidate into a trip, or rejects it
// when it never reached two points. Rank, ID, and color are assigned
// later during global numbering.
func FinalizeCandidate(c TripCandidate) (Trip, *Rejection) {
	if len(c.Points) < 2 {
		return Trip{}, &Rejection{
			Reason:   ReasonTripTooFewPoints,
			DeviceID: c.DeviceID,
			Detail:   fmt.Sprintf("candidate has %d point(s)", len(c.Points)),
		}
	}

	start := c.Points[0].Time
	end := c.Points[len(c.Points)-1].Time

	durationMin := end.Sub(start).Minutes()
	if durationMin < 0 {
		durationMin = 0
	}

	avgSpeed := 0.0
	if durationMin > 0 {
		avgSpeed = c.DistanceKm / (durationMin / 60)
	}

	return Trip{
		DeviceID:    c.DeviceID,
		Points:      c.Points,
		Start:       start,
		End:         end,
		DistanceKm:  c.DistanceKm,
		DurationMin: durationMin,
		AvgSpeedKmh: avgSpeed,
		MaxSpeedKmh: c.MaxSpeedKmh,
	}, nil
}
