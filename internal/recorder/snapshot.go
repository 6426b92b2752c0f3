package recorder

import (
	"time"

	"github.com/oklog/ulid/v2"

	"StockPulse/internal/dashboard"
	"StockPulse/internal/model"
)

func newSnapshot(d *model.Dashboard) *Snapshot {
	recordedAt := d.GeneratedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	snap := &Snapshot{
		ID:            ulid.MustNew(ulid.Timestamp(recordedAt), ulid.DefaultEntropy()).String(),
		RecordedAt:    recordedAt.UTC(),
		Symbol:        d.Symbol,
		Outlook:       d.Outlook,
		HeadlineCount: len(d.Headlines),
	}
	if d.Short != nil {
		snap.ShortSource = d.Short.Source
		snap.FirstOpen = d.Short.FirstOpen()
		snap.LastClose = d.Short.LastClose()
		snap.ChangePercent = model.RoundPrice(dashboard.ChangePercent(d.Short))
	}
	if d.Long != nil {
		snap.LongSource = d.Long.Source
	}
	return snap
}
