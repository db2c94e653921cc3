package segment

import (
	"time"
)

// Record is one raw input row plus the source line it came from.
// The fields are untyped strings exactly as the reader produced them;
// validation and typing happen in ValidateRecord.
type Record struct {
	Fields []string
	Line   int
}

// FieldMapping tells the validator which positional field holds what.
type FieldMapping struct {
	DeviceID  int
	Lat       int
	Lon       int
	Timestamp int
}

// requiredColumns returns the minimum record width the mapping can address.
func (m FieldMapping) requiredColumns() int {
	n := m.DeviceID
	for _, idx := range []int{m.Lat, m.Lon, m.Timestamp} {
		if idx > n {
			n = idx
		}
	}
	return n + 1
}

// Point is a validated location sample. Immutable once created.
type Point struct {
	DeviceID string
	Lat      float64
	Lon      float64
	Time     time.Time
}

// DeviceTrack is one device's points sorted ascending by timestamp.
// Equal timestamps keep their input order.
type DeviceTrack struct {
	DeviceID string
	Points   []Point
}

// Config holds segmentation thresholds
type Config struct {
	GapMinutes float64 // consecutive points further apart in time start a new trip
	JumpKm     float64 // consecutive points further apart in space start a new trip
}

// DefaultConfig returns the standard segmentation thresholds
func DefaultConfig() Config {
	return Config{
		GapMinutes: 25, // typical stop at a destination
		JumpKm:     2,  // GPS teleport guard
	}
}

// TripCandidate accumulates points while the segmenter walks a track.
// Every consecutive pair inside a candidate satisfies the same-trip
// predicate; viability is decided later by FinalizeCandidate.
type TripCandidate struct {
	DeviceID    string
	Points      []Point
	DistanceKm  float64
	MaxSpeedKmh float64
}

// Trip is a finalized, globally numbered trip ready for serialization.
type Trip struct {
	ID          string // "trip_<rank>"
	Rank        int    // 1-based, dense, ascending by start time
	DeviceID    string
	Points      []Point
	Start       time.Time
	End         time.Time
	DistanceKm  float64
	DurationMin float64
	AvgSpeedKmh float64
	MaxSpeedKmh float64
	Color       string
}

// ColorFunc assigns a stable display color given a trip's 0-based rank.
// The pipeline attaches the value opaquely and never interprets it.
type ColorFunc func(rank int) string

// RejectReason identifies why a record or candidate was dropped.
type RejectReason string

const (
	ReasonTooFewColumns    RejectReason = "TOO_FEW_COLUMNS"
	ReasonBadFields        RejectReason = "BAD_FIELDS"
	ReasonBadTimestamp     RejectReason = "BAD_TIMESTAMP"
	ReasonTripTooFewPoints RejectReason = "TRIP_DROPPED_TOO_FEW_POINTS"
)

// Rejection describes one dropped record or candidate. Rejections are
// data-quality signals, never fatal: the pipeline keeps going.
type Rejection struct {
	Reason   RejectReason `json:"reason"`
	Line     int          `json:"line,omitempty"`
	DeviceID string       `json:"device_id,omitempty"`
	Detail   string       `json:"detail,omitempty"`
	Fields   []string     `json:"fields,omitempty"`
}

// Stats represents pipeline results and metrics
type Stats struct {
	// Input
	InputRecords int `json:"input_records"`
	ValidPoints  int `json:"valid_points"`
	Devices      int `json:"devices"`

	// Segmentation
	Candidates        int `json:"trip_candidates"`
	Trips             int `json:"trips"`
	RejectedRecords   int `json:"rejected_records"`
	DroppedCandidates int `json:"dropped_candidates"`

	// Results
	TotalDistanceKm float64 `json:"total_distance_km"`

	// Performance
	ProcessingTime time.Duration `json:"processing_time_ms"`
}

// Result contains the numbered trips, every rejection, and run metrics.
type Result struct {
	Trips      []Trip
	Rejections []Rejection
	Stats      Stats
}
