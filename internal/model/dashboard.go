package model

import "time"

// Headline is one news item shown on the dashboard.
type Headline struct {
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Dashboard is everything rendered for a single symbol.
type Dashboard struct {
	Symbol      string     `json:"symbol"`
	Summary     string     `json:"summary"`
	Headlines   []Headline `json:"headlines"`
	Short       *Series    `json:"short"`
	Long        *Series    `json:"long"`
	Outlook     string     `json:"outlook"`
	Indicators  Indicators `json:"indicators"`
	GeneratedAt time.Time  `json:"generated_at"`
}
