package segment

import (
	"fmt"
	"testing"
	"time"
)

// Benchmark the full pipeline with synthetic fleets of varying size.
func BenchmarkRunSizes(b *testing.B) {
	sizes := []int{1000, 10000, 50000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("pipeline-%d-records", size), func(b *testing.B) {
			records := syntheticRecords(size, 20)
			cfg := DefaultConfig()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				res := Run(records, testMapping, cfg, nil)
				if res.Stats.ValidPoints != size {
					b.Fatalf("expected %d valid points, got %d", size, res.Stats.ValidPoints)
				}
			}
		})
	}
}

func BenchmarkSegmentTrack(b *testing.B) {
	track := DeviceTrack{DeviceID: "bench"}
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20000; i++ {
		track.Points = append(track.Points, Point{
			DeviceID: "bench",
			Lat:      46.0 + float64(i%1000)*0.0001,
			Lon:      7.0 + float64(i%1000)*0.0001,
			Time:     base.Add(time.Duration(i) * 30 * time.Second),
		})
	}
	cfg := DefaultConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		candidates := SegmentTrack(track, cfg)
		if len(candidates) == 0 {
			b.Fatal("segmenter produced no candidates")
		}
	}
}

// syntheticRecords spreads size records over deviceCount devices moving
// on small local loops, sampled every 30 seconds.
func syntheticRecords(size, deviceCount int) []Record {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	records := make([]Record, 0, size)

	for i := 0; i < size; i++ {
		device := i % deviceCount
		step := i / deviceCount
		ts := base.Add(time.Duration(step) * 30 * time.Second)
		records = append(records, Record{
			Line: i + 2,
			Fields: []string{
				fmt.Sprintf("device-%d", device),
				fmt.Sprintf("%.6f", 46.0+float64(step%500)*0.0001),
				fmt.Sprintf("%.6f", 7.0+float64(device)*0.01),
				ts.Format(time.RFC3339),
			},
		})
	}

	return records
}
