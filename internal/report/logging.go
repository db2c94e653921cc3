// Package report handles the run's diagnostics: structured logging and
// the durable rejects file. Rejections are fire-and-forget — nothing in
// here can fail the pipeline.
package report

import (
	"io"
	"log/slog"

	"github.com/evmarti/tripscope/internal/segment"
)

// NewLogger creates a JSON structured logger.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// LogError logs an error with structured context.
func LogError(logger *slog.Logger, message string, err error, attrs ...slog.Attr) {
	if logger == nil {
		return
	}

	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("error", err.Error()))
	for _, attr := range attrs {
		args = append(args, attr)
	}

	logger.Error(message, args...)
}

// LogRejection logs one dropped record or candidate.
func LogRejection(logger *slog.Logger, runID string, rej segment.Rejection) {
	if logger == nil {
		return
	}

	args := []any{
		slog.String("run_id", runID),
		slog.String("reason", string(rej.Reason)),
	}
	if rej.Line > 0 {
		args = append(args, slog.Int("line", rej.Line))
	}
	if rej.DeviceID != "" {
		args = append(args, slog.String("device_id", rej.DeviceID))
	}
	if rej.Detail != "" {
		args = append(args, slog.String("detail", rej.Detail))
	}

	logger.Warn("record rejected", args...)
}
