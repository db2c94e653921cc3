package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/evmarti/tripscope/internal/segment"
)

// SinkRecord is one line of the rejects file.
type SinkRecord struct {
	RunID string `json:"run_id"`
	segment.Rejection
}

// Sink writes rejections as JSON lines and mirrors them to the logger.
// Writes never fail the caller; I/O errors are logged and swallowed.
type Sink struct {
	closer io.Closer
	enc    *json.Encoder
	logger *slog.Logger
	runID  string
	count  int
}

// NewRunID returns a fresh identifier tying log lines, the rejects
// file, and the artifact metadata to one pipeline run.
func NewRunID() string {
	return uuid.NewString()
}

// NewFileSink opens (and truncates) a rejects file at path.
func NewFileSink(path, runID string, logger *slog.Logger) (*Sink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create rejects file: %w", err)
	}

	s := NewSink(file, runID, logger)
	s.closer = file
	return s, nil
}

// NewSink writes rejections to an arbitrary writer.
func NewSink(w io.Writer, runID string, logger *slog.Logger) *Sink {
	return &Sink{
		enc:    json.NewEncoder(w),
		logger: logger,
		runID:  runID,
	}
}

// Write records one rejection. Fire-and-forget.
func (s *Sink) Write(rej segment.Rejection) {
	s.count++
	LogRejection(s.logger, s.runID, rej)

	if err := s.enc.Encode(SinkRecord{RunID: s.runID, Rejection: rej}); err != nil {
		LogError(s.logger, "failed to write rejection", err,
			slog.String("run_id", s.runID))
	}
}

// WriteAll records a batch of rejections.
func (s *Sink) WriteAll(rejections []segment.Rejection) {
	for _, rej := range rejections {
		s.Write(rej)
	}
}

// Count returns how many rejections the sink has seen.
func (s *Sink) Count() int {
	return s.count
}

// Close closes the underlying file, if any.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
