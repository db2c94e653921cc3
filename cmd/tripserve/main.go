package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/evmarti/tripscope/internal/report"
	"github.com/evmarti/tripscope/internal/serve"
)

func main() {
	configPath := flag.String("config", "", "Path to tripserve.yaml (optional)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	artifact := flag.String("artifact", "", "Trips GeoJSON artifact to serve (overrides config)")
	flag.Parse()

	cfg, err := serve.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *artifact != "" {
		cfg.Artifact = *artifact
	}

	logger := report.NewLogger(os.Stderr, slog.LevelInfo)

	server, err := serve.NewServer(cfg, logger)
	if err != nil {
		log.Fatalf("start server: %v", err)
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
