package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/adikkala/vahanlens/internal/metrics"
	"github.com/adikkala/vahanlens/internal/presentation"
	"github.com/adikkala/vahanlens/internal/ui/styles"
)

const (
	// minBodyWidth keeps the layout from collapsing on tiny terminals.
	minBodyWidth = 40

	// maxGrowthRows caps the growth panel so manufacturer breakdowns
	// don't push everything else off screen.
	maxGrowthRows = 14

	// shareBarWidth is the width of a full (100%) market share bar.
	shareBarWidth = 30
)

// View renders the dashboard.
func (m Model) View() string {
	width := m.width
	if width < minBodyWidth {
		width = minBodyWidth
	}

	if !m.loaded {
		return styles.HelpStyle.Render("Loading registration data...")
	}
	if m.loadErr != nil {
		return styles.ErrorStyle.Render("Failed to load records: "+m.loadErr.Error()) +
			"\n\n" + styles.HelpStyle.Render("Press r to retry, q to quit.")
	}
	if len(m.records) == 0 {
		return m.renderHeader(width) + "\n\n" +
			styles.HelpStyle.Render("No registration records stored yet.\n\nRun 'vahanlens seed' for an illustrative dataset or 'vahanlens import' to load a CSV.") +
			"\n\n" + m.help.View(m.keys)
	}

	sections := []string{m.renderHeader(width)}
	if m.services.Cfg.UI.ShowKPIs {
		sections = append(sections, m.renderKPIs())
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderGrowthPanel(),
		" ",
		m.renderSharePanel(),
	)
	sections = append(sections, panels)

	if m.showInsights {
		sections = append(sections, m.renderInsights(width))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	title := styles.TitleStyle.Render("VahanLens")
	subtitle := styles.HelpStyle.Render("vehicle registration analytics")

	catLabel := "All categories"
	if cat := m.category(); cat != "" {
		catLabel = cat.Label()
	}
	unitLabel := "YoY"
	if m.unit == metrics.UnitQuarter {
		unitLabel = "QoQ"
	}
	filters := styles.FilterStyle.Render(
		fmt.Sprintf("%s | %s | by %s", catLabel, unitLabel, groupCycle[m.groupIdx]))

	line := title + " " + subtitle
	gap := width - lipgloss.Width(line) - lipgloss.Width(filters)
	if gap < 1 {
		gap = 1
	}
	return line + strings.Repeat(" ", gap) + filters
}

func (m Model) renderKPIs() string {
	kpi := func(label, value string) string {
		return styles.KPIBoxStyle.Render(
			styles.KPILabelStyle.Render(label) + "\n" + styles.KPIValueStyle.Render(value))
	}

	momValue := "n/a"
	if m.summary.MoMDefined {
		momValue = formatPct(m.summary.MoMPct)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Total registrations", formatCount(m.summary.TotalRegistrations)),
		kpi("Avg monthly", formatCount(m.summary.AvgMonthly)),
		kpi("Manufacturers", fmt.Sprintf("%d", m.summary.Manufacturers)),
		kpi("Latest month ("+m.latestMonthLabel()+")", momValue),
	)
}

func (m Model) renderGrowthPanel() string {
	unitLabel := "Year over year"
	if m.unit == metrics.UnitQuarter {
		unitLabel = "Quarter over quarter"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(unitLabel) + "\n")

	if len(m.growth) == 0 {
		b.WriteString(styles.HelpStyle.Render("Not enough history for growth; at least two periods are needed."))
		return styles.PanelStyle.Render(b.String())
	}

	header := fmt.Sprintf("%-8s %-18s %12s %12s %8s", "Period", "Series", "Current", "Prior", "Change")
	b.WriteString(styles.HelpStyle.Render(header) + "\n")

	// Show the tail of the series: the most recent periods matter most.
	rows := m.growth
	if len(rows) > maxGrowthRows {
		rows = rows[len(rows)-maxGrowthRows:]
	}
	for _, r := range rows {
		pct := "n/a"
		style := styles.UndefinedStyle
		if r.PctDefined {
			pct = formatPct(r.Pct)
			if r.Pct >= 0 {
				style = styles.PositiveStyle
			} else {
				style = styles.NegativeStyle
			}
		}
		series := truncate.StringWithTail(r.Key, 18, "…")
		line := fmt.Sprintf("%-8s %-18s %12s %12s ", r.Period, series,
			formatCount(r.Current), formatCount(r.Prior))
		b.WriteString(line + style.Render(fmt.Sprintf("%8s", pct)) + "\n")
	}

	return styles.PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderSharePanel() string {
	period := m.sharePeriod()
	title := fmt.Sprintf("Market share - %s %s", m.shareCategory(), period)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title) + "\n")

	report := presentation.FromMarketShares(m.shares, period, m.shareCategory().String())
	if len(report.Shares) == 0 {
		b.WriteString(styles.HelpStyle.Render("No registrations in this period."))
		return styles.PanelStyle.Render(b.String())
	}

	for _, s := range report.Shares {
		barLen := int(s.SharePct / 100 * shareBarWidth)
		if barLen < 1 && s.SharePct > 0 {
			barLen = 1
		}
		bar := styles.BarStyle.Render(strings.Repeat("█", barLen))
		label := truncate.StringWithTail(s.Manufacturer, 16, "…")
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			styles.BarLabelStyle.Render(fmt.Sprintf("%-16s", label)),
			bar,
			styles.HelpStyle.Render(fmt.Sprintf("%.1f%%", s.SharePct))))
	}

	return styles.PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// formatCount renders a count with thousands separators.
func formatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// formatPct renders a signed percentage with one decimal.
func formatPct(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}
