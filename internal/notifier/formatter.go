package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockPulse/internal/dashboard"
	"StockPulse/internal/model"
)

// FormatDashboard renders a full dashboard report as a Telegram HTML message.
func FormatDashboard(d *model.Dashboard) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(d.Symbol), d.GeneratedAt.Format("2006-01-02 15:04")))

	if d.Short != nil && len(d.Short.Candles) > 0 {
		b.WriteString(fmt.Sprintf("Last close: %.2f (%+.2f%% over 5d, %s)\n",
			d.Short.LastClose(), dashboard.ChangePercent(d.Short), d.Short.Source))
	}
	ind := d.Indicators
	b.WriteString(fmt.Sprintf("SMA20: %.2f | RSI14: %.0f\n", ind.SMA20, ind.RSI14))
	if ind.RangeHigh > 0 {
		b.WriteString(fmt.Sprintf("1y range: %.2f - %.2f (position %.0f%%)\n", ind.RangeLow, ind.RangeHigh, ind.RangePosition*100))
	}

	b.WriteString("\n")
	b.WriteString(FormatOutlook(d))
	if len(d.Headlines) > 0 {
		b.WriteString("\n\n")
		b.WriteString(FormatHeadlines(d))
	}
	return b.String()
}

// FormatOutlook renders the weekly outlook line.
func FormatOutlook(d *model.Dashboard) string {
	return fmt.Sprintf("🔭 <b>Weekly outlook</b>\n%s", html.EscapeString(d.Outlook))
}

// FormatSummary renders the company blurb.
func FormatSummary(d *model.Dashboard) string {
	return fmt.Sprintf("📝 <b>%s</b>\n%s", html.EscapeString(d.Symbol), html.EscapeString(d.Summary))
}

// FormatHeadlines renders the headline list with links where available.
func FormatHeadlines(d *model.Dashboard) string {
	if len(d.Headlines) == 0 {
		return fmt.Sprintf("📰 No headlines for %s", html.EscapeString(d.Symbol))
	}
	var b strings.Builder
	b.WriteString("📰 <b>Headlines</b>\n")
	for _, h := range d.Headlines {
		title := html.EscapeString(h.Title)
		if h.URL != "" {
			title = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(h.URL), title)
		}
		b.WriteString(fmt.Sprintf("• %s", title))
		if h.Timestamp != "" {
			b.WriteString(fmt.Sprintf(" <i>%s</i>", html.EscapeString(h.Timestamp)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
