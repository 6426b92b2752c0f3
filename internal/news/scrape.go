package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"StockPulse/internal/httpclient"
	"StockPulse/internal/model"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// ScrapeNews pulls headlines out of an HTML quote page.
// URLTemplate holds one %s for the escaped symbol. Each element matched by Selector
// yields one headline: its first link is the title, its first cell the timestamp.
type ScrapeNews struct {
	URLTemplate string
	Selector    string
	Client      *http.Client
}

// NewScrapeNews creates a scraper with optional proxy support.
func NewScrapeNews(urlTemplate, selector, proxyURL string, timeout time.Duration) *ScrapeNews {
	return &ScrapeNews{
		URLTemplate: urlTemplate,
		Selector:    selector,
		Client:      httpclient.New(proxyURL, timeout),
	}
}

func (s *ScrapeNews) Name() string { return "scrape" }

func (s *ScrapeNews) Headlines(ctx context.Context, symbol string) ([]model.Headline, error) {
	pageURL := fmt.Sprintf(s.URLTemplate, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, _ := url.Parse(pageURL)

	var out []model.Headline
	lastStamp := ""
	doc.Find(s.Selector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find("a").First()
		title := cleanText(link.Text())
		if title == "" {
			return true
		}
		// Rows after the first of a day often carry only the time; keep the date part.
		stamp := cleanText(row.Find("td").First().Text())
		if stamp == "" {
			stamp = lastStamp
		} else if !strings.Contains(stamp, " ") && strings.Contains(lastStamp, " ") {
			stamp = strings.SplitN(lastStamp, " ", 2)[0] + " " + stamp
		}
		lastStamp = stamp

		h := model.Headline{Title: title, Timestamp: stamp}
		if href, ok := link.Attr("href"); ok && base != nil {
			if ref, err := base.Parse(href); err == nil {
				h.URL = ref.String()
			}
		}
		out = append(out, h)
		return len(out) < MaxHeadlines
	})
	return out, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
