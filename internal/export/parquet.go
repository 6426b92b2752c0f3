package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"StockPulse/internal/model"
)

// CandleRecord is the parquet schema for exported candles.
type CandleRecord struct {
	Symbol    string  `parquet:"symbol"`
	Source    string  `parquet:"source"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
}

// Records converts a series into parquet rows.
func Records(s *model.Series) []CandleRecord {
	out := make([]CandleRecord, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = CandleRecord{
			Symbol:    s.Symbol,
			Source:    s.Source,
			Timestamp: c.Time * 1000,
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
		}
	}
	return out
}

// WriteParquet writes every candle of s to path, creating parent directories.
func WriteParquet(path string, s *model.Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := parquet.WriteFile(path, Records(s)); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	return nil
}

// ReadParquet loads a file written by WriteParquet back into a series.
func ReadParquet(path string) (*model.Series, error) {
	rows, err := parquet.ReadFile[CandleRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	s := &model.Series{Candles: make([]model.Candle, len(rows))}
	for i, r := range rows {
		if i == 0 {
			s.Symbol, s.Source = r.Symbol, r.Source
		}
		s.Candles[i] = model.Candle{Time: r.Timestamp / 1000, Open: r.Open, High: r.High, Low: r.Low, Close: r.Close}
	}
	return s, nil
}
