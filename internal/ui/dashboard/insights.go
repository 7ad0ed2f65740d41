package dashboard

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/adikkala/vahanlens/internal/log"
	"github.com/adikkala/vahanlens/internal/presentation"
)

//go:embed insights.md
var insightsHeader string

// renderInsights builds an investor-facing markdown summary of the
// current view and renders it with glamour. Rendering failures fall back
// to the raw markdown.
func (m Model) renderInsights(width int) string {
	md := insightsHeader + "\n" + m.insightsMarkdown()

	style := m.services.Cfg.UI.InsightsStyle
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		log.ErrorErr(log.CatUI, "insights renderer init failed", err)
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		log.ErrorErr(log.CatUI, "insights render failed", err)
		return md
	}
	return strings.TrimRight(rendered, "\n")
}

// insightsMarkdown derives the bullet points from the computed metrics.
func (m Model) insightsMarkdown() string {
	var b strings.Builder

	if best, worst, ok := m.growthExtremes(); ok {
		b.WriteString(fmt.Sprintf("- Strongest growth in %s: **%s** at %+.1f%%\n",
			best.Period, best.Key, best.Pct))
		if worst.Key != best.Key || worst.Period != best.Period {
			b.WriteString(fmt.Sprintf("- Weakest growth in %s: **%s** at %+.1f%%\n",
				worst.Period, worst.Key, worst.Pct))
		}
	}

	report := presentation.FromMarketShares(m.shares, m.sharePeriod(), m.shareCategory().String())
	if len(report.Shares) > 0 {
		leader := report.Shares[0]
		b.WriteString(fmt.Sprintf("- %s leader in %s: **%s** with %.1f%% share\n",
			m.shareCategory().Label(), report.Period, leader.Manufacturer, leader.SharePct))
		if len(report.Shares) > 1 {
			runnerUp := report.Shares[1]
			b.WriteString(fmt.Sprintf("- Gap to runner-up %s: %.1f points\n",
				runnerUp.Manufacturer, leader.SharePct-runnerUp.SharePct))
		}
	}

	if b.Len() == 0 {
		b.WriteString("- Not enough data for trend insights yet.\n")
	}
	return b.String()
}

// growthExtremes finds the best and worst defined growth results in the
// latest period that has any.
func (m Model) growthExtremes() (best, worst struct {
	Period string
	Key    string
	Pct    float64
}, ok bool) {
	if len(m.growth) == 0 {
		return best, worst, false
	}

	latest := m.growth[len(m.growth)-1].Period
	found := false
	for _, r := range m.growth {
		if r.Period != latest || !r.PctDefined {
			continue
		}
		if !found || r.Pct > best.Pct {
			best.Period = r.Period.String()
			best.Key = r.Key
			best.Pct = r.Pct
		}
		if !found || r.Pct < worst.Pct {
			worst.Period = r.Period.String()
			worst.Key = r.Key
			worst.Pct = r.Pct
		}
		found = true
	}
	return best, worst, found
}
