// Package dashboard implements the registration analytics TUI.
//
// The dashboard provides an investor's view of the stored records with:
//   - Headline indicator strip (total volume, monthly average, latest movement)
//   - Growth panel with YoY/QoQ changes, grouped by category or manufacturer
//   - Market share bar chart for the selected category and period
//   - Insights pane summarizing the latest trends
package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adikkala/vahanlens/internal/cachemanager"
	"github.com/adikkala/vahanlens/internal/config"
	"github.com/adikkala/vahanlens/internal/log"
	"github.com/adikkala/vahanlens/internal/metrics"
	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// Services contains the dependencies the dashboard pulls data through.
type Services struct {
	Repo domain.RecordRepository
	Cfg  config.Config

	// GrowthCache memoizes growth series per filter combination until the
	// store changes.
	GrowthCache cachemanager.CacheManager[string, []metrics.GrowthResult]

	// ShareCache memoizes market share maps per (period, category).
	ShareCache cachemanager.CacheManager[string, map[string]float64]
}

// categoryFilters is the cycle order for the category filter. The zero
// value "" means all categories.
var categoryFilters = []domain.Category{"", domain.CategoryTwoWheeler, domain.CategoryThreeWheeler, domain.CategoryFourWheeler}

// groupCycle is the cycle order for the growth breakdown.
var groupCycle = []metrics.GroupBy{metrics.GroupNone, metrics.GroupCategory, metrics.GroupManufacturer}

// dataLoadedMsg carries a fresh record snapshot from the repository.
type dataLoadedMsg struct {
	records []*domain.Record
	err     error
}

// Model holds the dashboard state.
type Model struct {
	services Services

	// Record snapshot and derived state
	records []*domain.Record
	summary metrics.Summary
	growth  []metrics.GrowthResult
	shares  map[string]float64
	loadErr error
	loaded  bool

	// Filter state
	categoryIdx int
	groupIdx    int
	unit        metrics.PeriodUnit

	// Share period navigation: periods present in the data for the
	// current unit, and the index of the displayed one.
	periods   []metrics.Period
	periodIdx int

	showInsights bool
	keys         keyMap
	help         help.Model

	width  int
	height int
}

// New creates a dashboard model. Data is loaded by Init.
func New(services Services) Model {
	return Model{
		services:     services,
		unit:         metrics.UnitYear,
		showInsights: true,
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
}

// Init loads the initial record snapshot.
func (m Model) Init() tea.Cmd {
	return m.loadData()
}

// loadData reads the full snapshot for the active category filter.
func (m Model) loadData() tea.Cmd {
	repo := m.services.Repo
	filter := domain.Filter{Category: m.category()}
	return func() tea.Msg {
		records, err := repo.List(filter)
		return dataLoadedMsg{records: records, err: err}
	}
}

// category returns the active category filter, "" meaning all.
func (m Model) category() domain.Category {
	return categoryFilters[m.categoryIdx]
}

// shareCategory returns the category the share panel describes. Shares
// are only meaningful within one vehicle class, so the all-categories
// filter falls back to two-wheelers.
func (m Model) shareCategory() domain.Category {
	if cat := m.category(); cat != "" {
		return cat
	}
	return domain.CategoryTwoWheeler
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case dataLoadedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "failed to load records", msg.err)
			m.loadErr = msg.err
			m.loaded = true
			return m, nil
		}
		m.loadErr = nil
		m.loaded = true
		m.records = msg.records
		m.rebuildPeriods()
		m.recompute()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Category):
		m.categoryIdx = (m.categoryIdx + 1) % len(categoryFilters)
		// The snapshot is filtered server-side, so a category change
		// needs a reload.
		return m, m.loadData()

	case key.Matches(msg, m.keys.GroupBy):
		m.groupIdx = (m.groupIdx + 1) % len(groupCycle)
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keys.Unit):
		if m.unit == metrics.UnitYear {
			m.unit = metrics.UnitQuarter
		} else {
			m.unit = metrics.UnitYear
		}
		m.rebuildPeriods()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keys.PrevPeriod):
		if m.periodIdx > 0 {
			m.periodIdx--
			m.recomputeShares()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPeriod):
		if m.periodIdx < len(m.periods)-1 {
			m.periodIdx++
			m.recomputeShares()
		}
		return m, nil

	case key.Matches(msg, m.keys.Insights):
		m.showInsights = !m.showInsights
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadData()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// HandleDBChanged reloads the snapshot after an external database change.
// The app flushes the caches before calling this.
func (m Model) HandleDBChanged() (Model, tea.Cmd) {
	log.Debug(log.CatUI, "store changed, reloading dashboard")
	return m, m.loadData()
}

// rebuildPeriods recomputes the navigable share periods from the snapshot
// and keeps the selection on the latest one.
func (m *Model) rebuildPeriods() {
	seen := make(map[metrics.Period]struct{})
	for _, rec := range m.records {
		seen[metrics.PeriodOf(rec.Date(), m.unit)] = struct{}{}
	}
	periods := make([]metrics.Period, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	m.periods = periods
	m.periodIdx = len(periods) - 1
}

// recompute rebuilds every derived view of the snapshot.
func (m *Model) recompute() {
	m.summary = metrics.ComputeSummary(m.records)
	m.recomputeGrowth()
	m.recomputeShares()
}

func (m *Model) recomputeGrowth() {
	ctx := context.Background()
	groupBy := groupCycle[m.groupIdx]
	key := fmt.Sprintf("%s|%s|%s", m.unit, groupBy, m.category())

	if cached, ok := m.services.GrowthCache.Get(ctx, key); ok {
		m.growth = cached
		return
	}

	results, err := metrics.ComputeGrowth(m.records, groupBy, m.unit)
	if err != nil {
		log.ErrorErr(log.CatUI, "growth computation failed", err)
		m.growth = nil
		return
	}
	m.growth = results
	m.services.GrowthCache.Set(ctx, key, results, cachemanager.DefaultExpiration)
}

func (m *Model) recomputeShares() {
	if len(m.periods) == 0 {
		m.shares = nil
		return
	}

	ctx := context.Background()
	period := m.periods[m.periodIdx]
	cat := m.shareCategory()
	key := fmt.Sprintf("%s|%s", period, cat)

	if cached, ok := m.services.ShareCache.Get(ctx, key); ok {
		m.shares = cached
		return
	}

	shares, err := metrics.ComputeMarketShare(m.records, period, cat)
	if err != nil {
		log.ErrorErr(log.CatUI, "share computation failed", err)
		m.shares = nil
		return
	}
	m.shares = shares
	m.services.ShareCache.Set(ctx, key, shares, cachemanager.DefaultExpiration)
}

// sharePeriod returns the period the share panel describes, or a zero
// Period when the store is empty.
func (m Model) sharePeriod() metrics.Period {
	if len(m.periods) == 0 {
		return metrics.Period{}
	}
	return m.periods[m.periodIdx]
}

// latestMonthLabel formats the most recent month for display.
func (m Model) latestMonthLabel() string {
	if m.summary.LatestMonth.IsZero() {
		return "-"
	}
	return m.summary.LatestMonth.Format("Jan 2006")
}
