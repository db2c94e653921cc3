package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmarti/tripscope/internal/segment"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"device_id,lat,lon,timestamp",
		"bike-1,46.0,7.0,2024-05-01T10:00:00Z",
		"bike-1,46.001,7.001,2024-05-01T10:05:00Z",
		"bike-2,48.1",
	}, "\n")

	src, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, segment.FieldMapping{DeviceID: 0, Lat: 1, Lon: 2, Timestamp: 3}, src.Mapping)
	require.Len(t, src.Records, 3)

	// Data rows keep their original file line numbers.
	assert.Equal(t, 2, src.Records[0].Line)
	assert.Equal(t, 4, src.Records[2].Line)

	// The ragged row passes through untouched.
	assert.Equal(t, []string{"bike-2", "48.1"}, src.Records[2].Fields)
}

func TestSniffHeaderSynonyms(t *testing.T) {
	cases := []struct {
		name   string
		header []string
		want   segment.FieldMapping
	}{
		{
			"canonical",
			[]string{"device_id", "lat", "lon", "timestamp"},
			segment.FieldMapping{DeviceID: 0, Lat: 1, Lon: 2, Timestamp: 3},
		},
		{
			"long names shuffled",
			[]string{"recorded_at", "longitude", "latitude", "vehicle_id"},
			segment.FieldMapping{DeviceID: 3, Lat: 2, Lon: 1, Timestamp: 0},
		},
		{
			"mixed case and spaces",
			[]string{"Device ID", "Latitude", "Lng", "Date Time"},
			segment.FieldMapping{DeviceID: 0, Lat: 1, Lon: 2, Timestamp: 3},
		},
		{
			"device_id preferred over bare id",
			[]string{"id", "device_id", "lat", "lon", "ts"},
			segment.FieldMapping{DeviceID: 1, Lat: 2, Lon: 3, Timestamp: 4},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapping, err := SniffHeader(tc.header)
			require.NoError(t, err)
			assert.Equal(t, tc.want, mapping)
		})
	}
}

func TestSniffHeaderMissingColumns(t *testing.T) {
	_, err := SniffHeader([]string{"device_id", "lat", "lon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp")
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("device_id,lat,lon,timestamp\n"))
	require.NoError(t, err)
	assert.Empty(t, src.Records)
}
