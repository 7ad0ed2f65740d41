// Package app contains the root application model.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adikkala/vahanlens/internal/cachemanager"
	"github.com/adikkala/vahanlens/internal/config"
	"github.com/adikkala/vahanlens/internal/infrastructure/sqlite"
	"github.com/adikkala/vahanlens/internal/log"
	"github.com/adikkala/vahanlens/internal/metrics"
	"github.com/adikkala/vahanlens/internal/pubsub"
	"github.com/adikkala/vahanlens/internal/ui/dashboard"
	"github.com/adikkala/vahanlens/internal/ui/styles"
	"github.com/adikkala/vahanlens/internal/watcher"
)

// Model is the root application state.
type Model struct {
	dashboard dashboard.Model

	db  *sqlite.DB
	cfg config.Config

	// Cache managers, flushed when the store changes on disk
	growthCache cachemanager.CacheManager[string, []metrics.GrowthResult]
	shareCache  cachemanager.CacheManager[string, map[string]float64]

	// File watcher for auto-refresh (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.ChangeEvent]

	width  int
	height int
}

// New creates the application model around an open database.
func New(db *sqlite.DB, cfg config.Config) Model {
	if err := styles.ApplyTheme(styles.Theme{
		Accent:   cfg.Theme.Accent,
		Subtle:   cfg.Theme.Subtle,
		Positive: cfg.Theme.Positive,
		Negative: cfg.Theme.Negative,
	}); err != nil {
		// A bad color falls back to the default palette.
		log.Warn(log.CatConfig, "ignoring theme", "error", err)
	}

	growthCache := cachemanager.NewInMemoryCacheManager[string, []metrics.GrowthResult](
		"growth", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	shareCache := cachemanager.NewInMemoryCacheManager[string, map[string]float64](
		"shares", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	// Initialize the file watcher if auto-refresh is enabled
	var (
		watcherHandle   *watcher.Watcher
		watcherCancel   context.CancelFunc
		watcherListener *pubsub.ContinuousListener[watcher.ChangeEvent]
	)
	if cfg.AutoRefresh {
		wcfg := watcher.DefaultConfig(db.Path())
		if cfg.AutoRefreshDebounce > 0 {
			wcfg.DebounceDur = cfg.AutoRefreshDebounce
		}
		w, err := watcher.New(wcfg)
		if err == nil {
			if err := w.Start(); err == nil {
				watcherHandle = w
				var ctx context.Context
				ctx, watcherCancel = context.WithCancel(context.Background())
				watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		// Watcher init errors are not fatal - the dashboard works
		// without auto-refresh.
	}

	services := dashboard.Services{
		Repo:        db.RecordRepository(),
		Cfg:         cfg,
		GrowthCache: growthCache,
		ShareCache:  shareCache,
	}

	return Model{
		dashboard:       dashboard.New(services),
		db:              db,
		cfg:             cfg,
		growthCache:     growthCache,
		shareCache:      shareCache,
		watcherHandle:   watcherHandle,
		watcherCancel:   watcherCancel,
		watcherListener: watcherListener,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.dashboard.Init(),
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pubsub.Event[watcher.ChangeEvent]:
		// The store changed on disk: stale aggregates must go before
		// the dashboard reloads.
		if err := m.growthCache.Flush(context.Background()); err != nil {
			log.Warn(log.CatCache, "failed to flush growth cache", "error", err)
		}
		if err := m.shareCache.Flush(context.Background()); err != nil {
			log.Warn(log.CatCache, "failed to flush share cache", "error", err)
		}

		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.HandleDBChanged()
		return m, tea.Batch(cmd, m.watcherListener.Listen())
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return m.dashboard.View()
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	// Cancel the subscription context first so the listener stops
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return m.db.Close()
}
