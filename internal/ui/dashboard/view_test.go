package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

func TestView_Loading(t *testing.T) {
	m := New(testServices(t, nil))
	require.Contains(t, m.View(), "Loading")
}

func TestView_EmptyStore(t *testing.T) {
	m := loadedModel(t, nil)
	view := m.View()
	require.Contains(t, view, "No registration records")
	require.Contains(t, view, "vahanlens seed")
}

func TestView_ShowsPanelsAndKPIs(t *testing.T) {
	m := loadedModel(t, twoYearRecords(t))
	view := m.View()

	require.Contains(t, view, "VahanLens")
	require.Contains(t, view, "Year over year")
	require.Contains(t, view, "Market share")
	require.Contains(t, view, "Total registrations")
	require.Contains(t, view, "105,000", "counts use thousands separators")
	require.Contains(t, view, "Hero MotoCorp")
	require.Contains(t, view, "+50.0%")
}

func TestView_HidesKPIsWhenDisabled(t *testing.T) {
	services := testServices(t, twoYearRecords(t))
	services.Cfg.UI.ShowKPIs = false

	m := New(services)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(m.Init()())

	require.NotContains(t, m.View(), "Total registrations")
}

func TestView_UndefinedGrowthShowsNA(t *testing.T) {
	// 2022 is all zeros, so 2023 growth has no finite rate.
	records := []*domain.Record{
		mustRecord(t, 2022, time.March, domain.CategoryTwoWheeler, "NewEntrant", 0),
		mustRecord(t, 2023, time.March, domain.CategoryTwoWheeler, "NewEntrant", 5000),
	}

	m := loadedModel(t, records)
	require.Contains(t, m.View(), "n/a", "growth from a zero base is shown as n/a, never infinity")
	require.NotContains(t, m.View(), "Inf")
}

func TestView_InsightsToggle(t *testing.T) {
	m := loadedModel(t, twoYearRecords(t))
	require.Contains(t, m.View(), "Insights")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	require.NotContains(t, m.View(), "Strongest growth")
}

func TestFormatCount(t *testing.T) {
	require.Equal(t, "0", formatCount(0))
	require.Equal(t, "999", formatCount(999))
	require.Equal(t, "1,000", formatCount(1000))
	require.Equal(t, "1,500,000", formatCount(1500000))
	require.Equal(t, "-12,345", formatCount(-12345))
}

func TestFormatPct(t *testing.T) {
	require.Equal(t, "+50.0%", formatPct(50))
	require.Equal(t, "-3.2%", formatPct(-3.2))
	require.Equal(t, "+0.0%", formatPct(0))
}

func TestDashboard_EndToEnd(t *testing.T) {
	m := New(testServices(t, twoYearRecords(t)))

	tm := teatest.NewTestModel(t, wrapModel{m},
		teatest.WithInitialTermSize(120, 40))

	// Cycle the breakdown, toggle the unit, then quit.
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(wrapModel).Model
	require.Equal(t, "quarter", string(final.unit))
	require.True(t, final.loaded)
}

// wrapModel adapts the dashboard to tea.Model for teatest, which drives
// the generic interface.
type wrapModel struct{ Model }

func (w wrapModel) Init() tea.Cmd { return w.Model.Init() }

func (w wrapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := w.Model.Update(msg)
	return wrapModel{m}, cmd
}

func (w wrapModel) View() string { return w.Model.View() }
