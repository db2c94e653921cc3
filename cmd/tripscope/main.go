package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evmarti/tripscope/internal/geojson"
	"github.com/evmarti/tripscope/internal/ingest"
	"github.com/evmarti/tripscope/internal/palette"
	"github.com/evmarti/tripscope/internal/report"
	"github.com/evmarti/tripscope/internal/segment"
)

func main() {
	var (
		inputFile   = flag.String("i", "", "Input CSV file of location samples")
		outputFile  = flag.String("o", "", "Output GeoJSON file (default: <input>_trips.geojson)")
		rejectsFile = flag.String("rejects", "", "Rejects JSONL file (default: <input>_rejects.jsonl)")
		gapMinutes  = flag.Float64("gap", 25, "Maximum minutes between consecutive points of one trip")
		jumpKm      = flag.Float64("jump", 2, "Maximum km between consecutive points of one trip")
		dryRun      = flag.Bool("dry-run", false, "Show statistics without writing output files")
		statsJSON   = flag.Bool("stats-json", false, "Output statistics as JSON")
		verbose     = flag.Bool("v", false, "Log every rejection to stderr")
		version     = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("tripscope - Build trips from device location samples\n\n")
		fmt.Printf("usage: tripscope -i /path/to/samples.csv\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  tripscope -i fleet.csv\n")
		fmt.Printf("  tripscope -i fleet.csv -gap 15 -jump 1.5\n")
		fmt.Printf("  tripscope -i fleet.csv -dry-run -stats-json\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("tripscope v1.0.0 - trip builder for device location streams")
		os.Exit(0)
	}

	if *inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *gapMinutes <= 0 || *jumpKm <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -gap and -jump must be positive\n")
		os.Exit(2)
	}

	// Generate output filenames if not provided
	base := strings.TrimSuffix(*inputFile, filepath.Ext(*inputFile))
	if *outputFile == "" {
		*outputFile = base + "_trips.geojson"
	}
	if *rejectsFile == "" {
		*rejectsFile = base + "_rejects.jsonl"
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelInfo
	}
	logger := report.NewLogger(os.Stderr, level)
	runID := report.NewRunID()

	fmt.Printf("📖 Reading samples: %s\n", *inputFile)
	src, err := ingest.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📊 Input: %d records, columns %v\n", len(src.Records), src.Header)

	cfg := segment.Config{GapMinutes: *gapMinutes, JumpKm: *jumpKm}
	result := segment.Run(src.Records, src.Mapping, cfg, palette.Color)

	if !*dryRun && len(result.Rejections) > 0 {
		sink, err := report.NewFileSink(*rejectsFile, runID, logger)
		if err != nil {
			report.LogError(logger, "rejects file unavailable, logging only", err)
			sink = report.NewSink(os.Stderr, runID, nil)
		}
		sink.WriteAll(result.Rejections)
		if err := sink.Close(); err != nil {
			report.LogError(logger, "failed to close rejects file", err)
		}
		fmt.Printf("⚠️  Rejected %d record(s)/candidate(s) → %s\n",
			len(result.Rejections), *rejectsFile)
	}

	if *statsJSON {
		jsonData, err := json.MarshalIndent(result.Stats, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	} else {
		printStats(result.Stats)
	}

	if *dryRun {
		fmt.Printf("🔍 Dry run completed - no files written\n")
		os.Exit(0)
	}

	fc := geojson.Build(result.Trips, geojson.Metadata{
		RunID:       runID,
		Source:      filepath.Base(*inputFile),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		GapMinutes:  cfg.GapMinutes,
		JumpKm:      cfg.JumpKm,
	})

	fmt.Printf("💾 Writing trips: %s\n", *outputFile)
	if err := fc.Write(*outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Built %d trip(s) from %d device(s), %.1f km total\n",
		result.Stats.Trips, result.Stats.Devices, result.Stats.TotalDistanceKm)
}

func printStats(stats segment.Stats) {
	fmt.Printf("\n📊 Trip Statistics:\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("📍 Records: %d in, %d valid, %d rejected\n",
		stats.InputRecords, stats.ValidPoints, stats.RejectedRecords)
	fmt.Printf("🚗 Devices: %d\n", stats.Devices)
	fmt.Printf("🧭 Candidates: %d (%d dropped as too short)\n",
		stats.Candidates, stats.DroppedCandidates)
	fmt.Printf("🛣️  Trips: %d, %.2f km total\n", stats.Trips, stats.TotalDistanceKm)
	fmt.Printf("⏱️  Processing Time: %v\n", stats.ProcessingTime)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
