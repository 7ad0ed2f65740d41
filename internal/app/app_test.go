package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/adikkala/vahanlens/internal/cachemanager"
	"github.com/adikkala/vahanlens/internal/config"
	"github.com/adikkala/vahanlens/internal/infrastructure/sqlite"
	"github.com/adikkala/vahanlens/internal/pubsub"
	"github.com/adikkala/vahanlens/internal/watcher"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) Model {
	t.Helper()

	cfg := config.Defaults()
	cfg.DBPath = filepath.Join(t.TempDir(), "registrations.db")
	if mutate != nil {
		mutate(&cfg)
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	require.NoError(t, err)

	m := New(db, cfg)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNew_StartsWatcherWhenAutoRefreshEnabled(t *testing.T) {
	m := newTestApp(t, nil)
	require.NotNil(t, m.watcherHandle)
	require.NotNil(t, m.watcherListener)
}

func TestNew_NoWatcherWhenAutoRefreshDisabled(t *testing.T) {
	m := newTestApp(t, func(c *config.Config) { c.AutoRefresh = false })
	require.Nil(t, m.watcherHandle)
	require.Nil(t, m.watcherListener)
}

func TestInit_ReturnsCommand(t *testing.T) {
	m := newTestApp(t, nil)
	require.NotNil(t, m.Init())
}

func TestUpdate_StoreChangeFlushesCaches(t *testing.T) {
	m := newTestApp(t, nil)
	ctx := context.Background()

	m.growthCache.Set(ctx, "stale", nil, cachemanager.DefaultExpiration)
	m.shareCache.Set(ctx, "stale", nil, cachemanager.DefaultExpiration)

	updated, cmd := m.Update(pubsub.Event[watcher.ChangeEvent]{
		Type:      pubsub.StoreChangedEvent,
		Payload:   watcher.ChangeEvent{Path: "registrations.db"},
		Timestamp: time.Now(),
	})
	require.NotNil(t, cmd, "a change should trigger a reload and re-listen")

	am := updated.(Model)
	_, ok := am.growthCache.Get(ctx, "stale")
	require.False(t, ok, "growth cache flushed")
	_, ok = am.shareCache.Get(ctx, "stale")
	require.False(t, ok, "share cache flushed")
}

func TestUpdate_DelegatesToDashboard(t *testing.T) {
	m := newTestApp(t, nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(Model)
	require.Equal(t, 100, am.width)
}

func TestView_DelegatesToDashboard(t *testing.T) {
	m := newTestApp(t, nil)
	require.NotEmpty(t, m.View())
}

func TestClose_Idempotent(t *testing.T) {
	cfg := config.Defaults()
	cfg.DBPath = filepath.Join(t.TempDir(), "registrations.db")
	cfg.AutoRefresh = false

	db, err := sqlite.NewDB(cfg.DBPath)
	require.NoError(t, err)

	m := New(db, cfg)
	require.NoError(t, m.Close())
}
