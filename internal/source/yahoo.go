package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"StockPulse/internal/httpclient"
	"StockPulse/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// yahooIntervals maps interval minutes to the chart API's interval codes.
var yahooIntervals = map[int]string{
	1:     "1m",
	2:     "2m",
	5:     "5m",
	15:    "15m",
	30:    "30m",
	60:    "60m",
	90:    "90m",
	1440:  "1d",
	10080: "1wk",
}

// YahooSource reads candles from the Yahoo Finance public chart API.
type YahooSource struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	Logger    *zap.Logger
}

// NewYahooSource creates a Yahoo Finance source with optional proxy support.
func NewYahooSource(proxyURL string, timeout time.Duration, logger *zap.Logger) *YahooSource {
	return &YahooSource{
		BaseURL: yahooBaseURL,
		Client:  httpclient.New(proxyURL, timeout),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
		Logger: logger,
	}
}

func (y *YahooSource) Name() string { return "yahoo" }

func (y *YahooSource) yahooSymbol(symbol string) string {
	if mapped, ok := y.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (y *YahooSource) FetchCandles(ctx context.Context, symbol string, req model.SeriesRequest) (*model.Series, error) {
	interval, ok := yahooIntervals[req.IntervalMinutes]
	if !ok {
		return nil, fmt.Errorf("yahoo: unsupported interval of %d minutes", req.IntervalMinutes)
	}

	q := url.Values{}
	q.Set("interval", interval)
	q.Set("period1", fmt.Sprint(req.Start/1000))
	q.Set("period2", fmt.Sprint(req.End()/1000))
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.BaseURL, url.PathEscape(y.yahooSymbol(symbol)), q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	chart, err := y.decode(body)
	if err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]model.Candle, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue // null bars (halts, holidays)
		}
		candles = append(candles, model.Candle{
			Time:  ts,
			Open:  model.RoundPrice(*o),
			High:  model.RoundPrice(*h),
			Low:   model.RoundPrice(*l),
			Close: model.RoundPrice(*c),
		})
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Time < candles[j].Time })
	return &model.Series{Symbol: symbol, Source: y.Name(), Candles: lastN(candles, req.Intervals)}, nil
}

// decode parses the chart body, retrying once on a repaired copy when the JSON is malformed.
func (y *YahooSource) decode(body []byte) (*yahooChart, error) {
	var chart yahooChart
	err := json.Unmarshal(body, &chart)
	if err == nil {
		return &chart, nil
	}
	if _, ok := err.(*json.SyntaxError); !ok {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}

	repaired, rerr := jsonrepair.JSONRepair(string(body))
	if rerr != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if y.Logger != nil {
		y.Logger.Warn("repaired malformed yahoo response", zap.Int("bytes", len(body)))
	}
	chart = yahooChart{}
	if err := json.Unmarshal([]byte(repaired), &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode repaired body: %w", err)
	}
	return &chart, nil
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}
