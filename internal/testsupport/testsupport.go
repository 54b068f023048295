// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"io"
	"log/slog"
	"time"

	"panorama/internal/records"
)

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FixedClock returns a clock function pinned to the given instant.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// RawRecord builds a raw record with a ref_date and arbitrary fields.
func RawRecord(date string, fields map[string]any) records.Raw {
	raw := records.Raw{"ref_date": date}
	for name, value := range fields {
		raw[name] = value
	}
	return raw
}
