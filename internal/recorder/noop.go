package recorder

import (
	"context"

	"StockPulse/internal/model"
)

// NoopRecorder is used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDashboard(_ context.Context, d *model.Dashboard) (*Snapshot, error) {
	return newSnapshot(d), nil
}

func (n *NoopRecorder) ListSnapshots(context.Context, string, int) ([]Snapshot, error) {
	return nil, nil
}

func (n *NoopRecorder) Close() error { return nil }
