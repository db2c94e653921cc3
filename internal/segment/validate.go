package segment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Layouts without an explicit offset
// are interpreted as UTC.
var timestampLayouts = []struct {
	layout string
	naive  bool
}{
	{layout: time.RFC3339Nano},
	{layout: "2006-01-02 15:04:05Z07:00"},
	{layout: "2006-01-02 15:04:05 -0700"},
	{layout: "2006-01-02T15:04:05", naive: true},
	{layout: "2006-01-02 15:04:05", naive: true},
	{layout: "2006-01-02 15:04", naive: true},
}

// ValidateRecord turns one raw record into a Point, or a Rejection
// explaining why it can't be one. Checks run in a fixed order and the
// first failure wins. The caller owns logging.
func ValidateRecord(rec Record, m FieldMapping) (Point, *Rejection) {
	if len(rec.Fields) < m.requiredColumns() {
		return Point{}, &Rejection{
			Reason: ReasonTooFewColumns,
			Line:   rec.Line,
			Detail: fmt.Sprintf("have %d columns, need %d", len(rec.Fields), m.requiredColumns()),
			Fields: rec.Fields,
		}
	}

	deviceID := strings.TrimSpace(rec.Fields[m.DeviceID])
	tsText := strings.TrimSpace(rec.Fields[m.Timestamp])

	badFields := func(detail string) (Point, *Rejection) {
		return Point{}, &Rejection{
			Reason:   ReasonBadFields,
			Line:     rec.Line,
			DeviceID: deviceID,
			Detail:   detail,
			Fields:   rec.Fields,
		}
	}

	if deviceID == "" {
		return badFields("empty device id")
	}
	if tsText == "" {
		return badFields("empty timestamp")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(rec.Fields[m.Lat]), 64)
	if err != nil {
		return badFields("latitude is not numeric")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rec.Fields[m.Lon]), 64)
	if err != nil {
		return badFields("longitude is not numeric")
	}
	if lat < -90 || lat > 90 {
		return badFields(fmt.Sprintf("latitude %g out of range", lat))
	}
	if lon < -180 || lon > 180 {
		return badFields(fmt.Sprintf("longitude %g out of range", lon))
	}

	ts, err := parseTimestamp(tsText)
	if err != nil {
		return Point{}, &Rejection{
			Reason:   ReasonBadTimestamp,
			Line:     rec.Line,
			DeviceID: deviceID,
			Detail:   tsText,
			Fields:   rec.Fields,
		}
	}

	return Point{DeviceID: deviceID, Lat: lat, Lon: lon, Time: ts}, nil
}

// parseTimestamp resolves a timestamp string to an absolute instant.
func parseTimestamp(s string) (time.Time, error) {
	for _, l := range timestampLayouts {
		var ts time.Time
		var err error
		if l.naive {
			ts, err = time.ParseInLocation(l.layout, s, time.UTC)
		} else {
			ts, err = time.Parse(l.layout, s)
		}
		if err == nil {
			return ts, nil
		}
	}

	// Epoch seconds show up in some export formats.
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}
