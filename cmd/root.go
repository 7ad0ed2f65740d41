package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adikkala/vahanlens/internal/app"
	"github.com/adikkala/vahanlens/internal/config"
	"github.com/adikkala/vahanlens/internal/infrastructure/sqlite"
	"github.com/adikkala/vahanlens/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "vahanlens",
	Short:   "A terminal dashboard for vehicle registration analytics",
	Long:    `A terminal dashboard over Indian vehicle registration data with year-over-year and quarter-over-quarter growth and manufacturer market share, built for an investor's view of the market.`,
	Version: version,
	RunE:    runDashboard,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .vahanlens/config.yaml)")
	rootCmd.PersistentFlags().String("db", "",
		"path to the registration database")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic dashboard refresh when the database changes")

	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("db_path", defaults.DBPath)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("auto_refresh_debounce", defaults.AutoRefreshDebounce)
	viper.SetDefault("ui.show_kpis", defaults.UI.ShowKPIs)
	viper.SetDefault("ui.insights_style", defaults.UI.InsightsStyle)
	viper.SetDefault("theme.accent", defaults.Theme.Accent)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.positive", defaults.Theme.Positive)
	viper.SetDefault("theme.negative", defaults.Theme.Negative)
	viper.SetDefault("seed.rng_seed", defaults.Seed.RNGSeed)
	viper.SetDefault("seed.from_year", defaults.Seed.FromYear)
	viper.SetDefault("seed.to_year", defaults.Seed.ToYear)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .vahanlens/config.yaml (current directory)
		// 2. ~/.config/vahanlens/config.yaml (user config)
		if _, err := os.Stat(".vahanlens/config.yaml"); err == nil {
			viper.SetConfigFile(".vahanlens/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "vahanlens"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .vahanlens/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".vahanlens/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// configFilePath reports the config file in effect, falling back to the
// default location when none was loaded.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return ".vahanlens/config.yaml"
}

// openStore validates the configuration and opens the registration
// database. Shared by the dashboard and the data commands.
func openStore() (*sqlite.DB, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening registration database: %w", err)
	}
	return db, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	// Log beside the database so a misbehaving dashboard can be
	// diagnosed without polluting the TUI.
	logPath := filepath.Join(filepath.Dir(db.Path()), "vahanlens.log")
	closeLog, logErr := log.Init(logPath)
	if logErr == nil {
		defer closeLog()
	}
	if os.Getenv("VAHANLENS_DEBUG") != "" {
		log.SetMinLevel(log.LevelDebug)
	}

	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	model := app.New(db, cfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Clean up watcher and database resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
