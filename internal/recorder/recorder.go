package recorder

import (
	"context"
	"time"

	"StockPulse/internal/model"
)

// Snapshot is the persisted summary of one built dashboard.
type Snapshot struct {
	ID            string    `json:"id"`
	RecordedAt    time.Time `json:"recorded_at"`
	Symbol        string    `json:"symbol"`
	ShortSource   string    `json:"short_source"`
	LongSource    string    `json:"long_source"`
	FirstOpen     float64   `json:"first_open"`
	LastClose     float64   `json:"last_close"`
	ChangePercent float64   `json:"change_percent"`
	Outlook       string    `json:"outlook"`
	HeadlineCount int       `json:"headline_count"`
}

// Recorder persists dashboard history for later analysis.
type Recorder interface {
	RecordDashboard(ctx context.Context, d *model.Dashboard) (*Snapshot, error)
	ListSnapshots(ctx context.Context, symbol string, limit int) ([]Snapshot, error)
	Close() error
}
