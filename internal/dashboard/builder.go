package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
	"StockPulse/internal/news"
	"StockPulse/internal/source"
	"StockPulse/internal/synth"
)

// ErrEmptySymbol is returned for blank symbols. It matches synth.ErrInvalidArgument.
var ErrEmptySymbol = fmt.Errorf("%w: symbol is empty", synth.ErrInvalidArgument)

// Builder assembles dashboards. It holds no per-request state.
type Builder struct {
	Source source.CandleSource
	News   news.Provider
	Logger *zap.Logger
	Now    func() time.Time
}

// NewBuilder creates a Builder using the wall clock.
func NewBuilder(src source.CandleSource, provider news.Provider, logger *zap.Logger) *Builder {
	return &Builder{Source: src, News: provider, Logger: logger, Now: time.Now}
}

// NormalizeSymbol trims and upper-cases user input.
func NormalizeSymbol(s string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if sym == "" {
		return "", ErrEmptySymbol
	}
	return sym, nil
}

// Build fetches both windows and the headlines for symbol.
func (b *Builder) Build(ctx context.Context, symbol string) (*model.Dashboard, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	now := b.Now()
	shortReq, longReq := Requests(sym, now)

	short, err := b.Source.FetchCandles(ctx, sym, shortReq)
	if err != nil {
		return nil, fmt.Errorf("short window: %w", err)
	}
	long, err := b.Source.FetchCandles(ctx, sym, longReq)
	if err != nil {
		return nil, fmt.Errorf("long window: %w", err)
	}

	d := &model.Dashboard{
		Symbol:      sym,
		Summary:     Summary(sym),
		Headlines:   b.headlines(ctx, sym),
		Short:       short,
		Long:        long,
		Outlook:     Outlook(short.Candles),
		Indicators:  b.indicators(sym, short, long),
		GeneratedAt: now,
	}
	b.Logger.Info("dashboard built",
		zap.String("symbol", sym),
		zap.String("short_source", short.Source),
		zap.String("long_source", long.Source),
		zap.Int("headlines", len(d.Headlines)))
	return d, nil
}

// Series fetches a single named window for symbol.
func (b *Builder) Series(ctx context.Context, symbol, window string) (*model.Series, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	w, err := WindowByName(window)
	if err != nil {
		return nil, err
	}
	shortReq, longReq := Requests(sym, b.Now())
	req := shortReq
	if w.Name == LongWindow.Name {
		req = longReq
	}
	return b.Source.FetchCandles(ctx, sym, req)
}

func (b *Builder) headlines(ctx context.Context, sym string) []model.Headline {
	if b.News == nil {
		return nil
	}
	items, err := b.News.Headlines(ctx, sym)
	if err != nil {
		b.Logger.Warn("headlines unavailable", zap.String("symbol", sym), zap.Error(err))
		return nil
	}
	return items
}

func (b *Builder) indicators(sym string, short, long *model.Series) model.Indicators {
	var ind model.Indicators

	if sma, err := calculator.CloseSMA(short.Candles, 20); err != nil {
		b.Logger.Debug("sma unavailable", zap.String("symbol", sym), zap.Error(err))
	} else {
		ind.SMA20 = model.RoundPrice(sma)
	}

	if rsi, err := calculator.CalculateRSI(short.Candles, 14); err != nil {
		ind.RSI14 = 50
	} else {
		ind.RSI14 = model.RoundPrice(rsi)
	}

	high, low, err := calculator.CalculateRange(long.Candles)
	if err != nil {
		b.Logger.Debug("range unavailable", zap.String("symbol", sym), zap.Error(err))
		ind.RangePosition = 0.5
		return ind
	}
	ind.RangeHigh, ind.RangeLow = high, low
	if pos, err := calculator.CalculatePosition(long.LastClose(), high, low); err != nil {
		ind.RangePosition = 0.5
	} else {
		ind.RangePosition = model.RoundPrice(pos)
	}
	return ind
}
