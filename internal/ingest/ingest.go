// Package ingest reads device location samples from CSV and figures out
// which column holds what. The core pipeline only ever sees raw records
// plus a positional field mapping; everything name-based stays here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evmarti/tripscope/internal/segment"
)

// Column-name synonyms accepted by the header sniffer, all compared
// after normalization (lowercase, trimmed, "-" and " " become "_").
var (
	deviceNames = []string{"device_id", "device", "deviceid", "vehicle_id", "unit_id", "id"}
	latNames    = []string{"lat", "latitude"}
	lonNames    = []string{"lon", "lng", "long", "longitude"}
	timeNames   = []string{"timestamp", "time", "ts", "datetime", "date_time", "recorded_at", "utc"}
)

// Source is a fully read input file: the raw data rows, the sniffed
// field mapping, and the original header for diagnostics.
type Source struct {
	Records []segment.Record
	Mapping segment.FieldMapping
	Header  []string
}

// ReadFile reads and sniffs a CSV file of location samples.
func ReadFile(filename string) (*Source, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV reads samples from an io.Reader. The first row must be a
// header naming at least a device, latitude, longitude, and timestamp
// column. Ragged rows are passed through untouched; rejecting them is
// the validator's job.
func ReadCSV(r io.Reader) (*Source, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	mapping, err := SniffHeader(header)
	if err != nil {
		return nil, err
	}

	src := &Source{Mapping: mapping, Header: header}

	// Header is line 1; data rows start at line 2.
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// csv.Reader only errors on malformed quoting once
			// FieldsPerRecord is disabled. Keep the row count
			// honest and move on.
			if _, ok := err.(*csv.ParseError); ok {
				continue
			}
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		src.Records = append(src.Records, segment.Record{Fields: row, Line: line})
	}

	return src, nil
}

// SniffHeader resolves a header row to a positional field mapping.
func SniffHeader(header []string) (segment.FieldMapping, error) {
	find := func(names []string) int {
		for _, name := range names {
			for i, col := range header {
				if normalize(col) == name {
					return i
				}
			}
		}
		return -1
	}

	mapping := segment.FieldMapping{
		DeviceID:  find(deviceNames),
		Lat:       find(latNames),
		Lon:       find(lonNames),
		Timestamp: find(timeNames),
	}

	var missing []string
	if mapping.DeviceID < 0 {
		missing = append(missing, "device id")
	}
	if mapping.Lat < 0 {
		missing = append(missing, "latitude")
	}
	if mapping.Lon < 0 {
		missing = append(missing, "longitude")
	}
	if mapping.Timestamp < 0 {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return segment.FieldMapping{}, fmt.Errorf(
			"could not locate %s column in header %v",
			strings.Join(missing, ", "), header)
	}

	return mapping, nil
}

func normalize(col string) string {
	col = strings.TrimPrefix(col, "\ufeff") // BOM on the first column
	col = strings.ToLower(strings.TrimSpace(col))
	col = strings.ReplaceAll(col, "-", "_")
	col = strings.ReplaceAll(col, " ", "_")
	return col
}
