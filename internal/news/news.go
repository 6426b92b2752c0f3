package news

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"StockPulse/internal/model"
)

// MaxHeadlines caps every provider's output.
const MaxHeadlines = 5

// Provider supplies headlines for a symbol.
type Provider interface {
	Headlines(ctx context.Context, symbol string) ([]model.Headline, error)
	Name() string
}

var mockPhrases = []string{
	"announces new product rollout",
	"reports stronger-than-expected demand",
	"expands partnership pipeline",
	"sees analyst coverage update",
	"notes elevated options activity",
}

// MockNews builds placeholder headlines spaced six hours apart.
type MockNews struct {
	Now func() time.Time
}

func (m *MockNews) Name() string { return "mock" }

func (m *MockNews) Headlines(_ context.Context, symbol string) ([]model.Headline, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	base := now()
	out := make([]model.Headline, len(mockPhrases))
	for i, phrase := range mockPhrases {
		out[i] = model.Headline{
			Title:     fmt.Sprintf("%s %s", symbol, phrase),
			Timestamp: base.Add(-time.Duration(i) * 6 * time.Hour).Format("2006-01-02 15:04"),
		}
	}
	return out, nil
}

// FallbackNews asks Primary first and substitutes Backup on error or an empty list.
type FallbackNews struct {
	Primary Provider
	Backup  Provider
	Logger  *zap.Logger
}

func (f *FallbackNews) Name() string { return f.Primary.Name() }

func (f *FallbackNews) Headlines(ctx context.Context, symbol string) ([]model.Headline, error) {
	items, err := f.Primary.Headlines(ctx, symbol)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err == nil {
		err = fmt.Errorf("no headlines found")
	}
	f.Logger.Warn("headline provider failed, using backup",
		zap.String("provider", f.Primary.Name()),
		zap.String("symbol", symbol),
		zap.Error(err))
	return f.Backup.Headlines(ctx, symbol)
}
