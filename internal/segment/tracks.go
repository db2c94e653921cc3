package segment

import "sort"

// BuildTracks groups validated points by device and sorts each group
// ascending by timestamp. The sort is stable so equal timestamps keep
// their input order. Tracks come back in device first-seen order, which
// keeps downstream processing deterministic. No point is dropped here.
func BuildTracks(points []Point) []DeviceTrack {
	byDevice := make(map[string]int, 16)
	var tracks []DeviceTrack

	for _, p := range points {
		idx, seen := byDevice[p.DeviceID]
		if !seen {
			idx = len(tracks)
			byDevice[p.DeviceID] = idx
			tracks = append(tracks, DeviceTrack{DeviceID: p.DeviceID})
		}
		tracks[idx].Points = append(tracks[idx].Points, p)
	}

	for i := range tracks {
		pts := tracks[i].Points
		sort.SliceStable(pts, func(a, b int) bool {
			return pts[a].Time.Before(pts[b].Time)
		})
	}

	return tracks
}
