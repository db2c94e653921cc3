// Package geojson renders numbered trips as a GeoJSON FeatureCollection
// and reads produced artifacts back for serving.
package geojson

// FeatureCollection is the output artifact: one LineString feature per
// trip plus run metadata.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Features []Feature `json:"features"`
}

// Metadata describes the run that produced the artifact.
type Metadata struct {
	RunID       string  `json:"run_id,omitempty"`
	Source      string  `json:"source,omitempty"`
	GeneratedAt string  `json:"generated_at,omitempty"`
	GapMinutes  float64 `json:"gap_minutes,omitempty"`
	JumpKm      float64 `json:"jump_km,omitempty"`
}

// Feature is one trip as a GeoJSON feature.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry holds the trip path. Coordinates are [lon, lat] pairs per
// the GeoJSON spec.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Properties carries the trip's summary kinematics. Timestamps are
// RFC3339 with their offset. Polyline is the same path as the geometry
// in Google encoded-polyline form, for map widgets that prefer it.
type Properties struct {
	TripID          string  `json:"trip_id"`
	DeviceID        string  `json:"device_id"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	NumPoints       int     `json:"num_points"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	DurationMin     float64 `json:"duration_min"`
	AvgSpeedKmh     float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh     float64 `json:"max_speed_kmh"`
	Color           string  `json:"color"`
	Polyline        string  `json:"polyline,omitempty"`
}
