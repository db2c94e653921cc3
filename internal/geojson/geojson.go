package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/evmarti/tripscope/internal/segment"
)

// Build renders numbered trips into a FeatureCollection. Trips arrive
// already ordered and colored; this stage is purely mechanical.
func Build(trips []segment.Trip, meta Metadata) *FeatureCollection {
	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(trips)),
	}
	if meta != (Metadata{}) {
		m := meta
		fc.Metadata = &m
	}

	for _, trip := range trips {
		coords := make([][]float64, len(trip.Points))
		encCoords := make([][]float64, len(trip.Points))
		for i, p := range trip.Points {
			coords[i] = []float64{p.Lon, p.Lat}
			encCoords[i] = []float64{p.Lat, p.Lon}
		}

		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: Properties{
				TripID:          trip.ID,
				DeviceID:        trip.DeviceID,
				StartTime:       trip.Start.Format(time.RFC3339),
				EndTime:         trip.End.Format(time.RFC3339),
				NumPoints:       len(trip.Points),
				TotalDistanceKm: trip.DistanceKm,
				DurationMin:     trip.DurationMin,
				AvgSpeedKmh:     trip.AvgSpeedKmh,
				MaxSpeedKmh:     trip.MaxSpeedKmh,
				Color:           trip.Color,
				Polyline:        string(polyline.EncodeCoords(encCoords)),
			},
		})
	}

	return fc
}

// Write saves the collection to a file.
func (fc *FeatureCollection) Write(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return fc.WriteTo(file)
}

// WriteTo writes the collection to an io.Writer.
func (fc *FeatureCollection) WriteTo(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(fc); err != nil {
		return fmt.Errorf("failed to encode feature collection: %w", err)
	}

	return nil
}

// Parse reads a produced artifact back from a file.
func Parse(filename string) (*FeatureCollection, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader reads a FeatureCollection from an io.Reader.
func ParseReader(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("not a FeatureCollection: type %q", fc.Type)
	}

	return &fc, nil
}
