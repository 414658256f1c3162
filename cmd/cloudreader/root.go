package main

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/justyntemme/cloudreader/internal/assistant"
	"github.com/justyntemme/cloudreader/internal/bookmark"
	"github.com/justyntemme/cloudreader/internal/config"
	"github.com/justyntemme/cloudreader/internal/content"
	"github.com/justyntemme/cloudreader/internal/kv"
	"github.com/justyntemme/cloudreader/internal/logger"
	"github.com/justyntemme/cloudreader/internal/metrics"
	"github.com/justyntemme/cloudreader/internal/preferences"
	"github.com/justyntemme/cloudreader/internal/session"
	"github.com/justyntemme/cloudreader/internal/ui"
	"github.com/justyntemme/cloudreader/internal/ui/views"
)

var (
	configPath string // Path to the configuration file
	openRoute  string // Route the TUI starts at

	v   = config.New()
	cfg config.Config

	// Set by the persistent pre-run of every command
	svc         views.Services
	closer      io.Closer
	cancel      context.CancelFunc
	metricsDone chan struct{}

	rootCmd = &cobra.Command{
		Use:   "cloudreader",
		Short: "CloudReader is a terminal client for reading web novels",
		Long: `CloudReader is a terminal client for reading web novels.
It browses a novel catalog, reads chapters with bookmarks and reading
settings, and answers questions about a novel through Gemini.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runTUI,
	}
)

func init() { //nolint: gochecknoinits
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/cloudreader/config.toml)")
	flags.String("storage", "", "storage driver: file, sqlite or memory")
	flags.String("data", "", "data directory of the file and sqlite storage")
	flags.String("source", "", "content source: mock or epub")
	flags.String("books", "", "directory of EPUB files for the epub source")
	flags.Duration("latency", 0, "simulated latency of every content read")
	flags.String("log-level", "", "log level")
	flags.String("metrics", "", "address to serve prometheus metrics on, e.g. localhost:9090")

	mustBind(v, "storage.driver", flags.Lookup("storage"))
	mustBind(v, "storage.path", flags.Lookup("data"))
	mustBind(v, "content.source", flags.Lookup("source"))
	mustBind(v, "content.dir", flags.Lookup("books"))
	mustBind(v, "content.latency", flags.Lookup("latency"))
	mustBind(v, "log.level", flags.Lookup("log-level"))
	mustBind(v, "metrics.listen", flags.Lookup("metrics"))

	rootCmd.Flags().StringVarP(&openRoute, "open", "o", "#/", "route to start at, e.g. #/read/1/5")
}

// Execute runs the root command.
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// setup loads the configuration and builds every service a command needs
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfg, err = config.Load(v, configPath); err != nil {
		return err
	}

	// The TUI owns the terminal; subcommands may log to it.
	if cmd.HasParent() {
		cfg.Log.Console.Enabled = true
		cfg.Log.File.Enabled = false
	}
	if err := logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "init logger")
	}

	ctx, stop := context.WithCancel(context.Background())
	cancel = stop
	if cfg.Metrics.Listen != "" {
		metricsDone = make(chan struct{})
		go func() {
			defer close(metricsDone)
			if err := metrics.Serve(ctx, cfg.Metrics.Listen); err != nil {
				log.Error().Err(err).Str("listen", cfg.Metrics.Listen).Msg("metrics endpoint failed")
			}
		}()
	}

	svc, closer, err = buildServices(ctx, cfg)
	if err != nil {
		return err
	}

	log.Debug().Str("config", cfg.File).Str("storage", cfg.Storage.Driver).
		Str("source", cfg.Content.Source).Msg("cloudreader started")
	return nil
}

// teardown releases what setup acquired
func teardown() {
	if closer != nil {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close storage")
		}
		closer = nil
	}
	if cancel != nil {
		cancel()
		cancel = nil
	}
	if metricsDone != nil {
		<-metricsDone
		metricsDone = nil
	}
}

// buildServices opens storage and the content source described by c
func buildServices(ctx context.Context, c config.Config) (views.Services, io.Closer, error) {
	store, closer, err := kv.Open(c.Storage.Driver, c.Storage.Path)
	if err != nil {
		return views.Services{}, nil, errors.Wrap(err, "open storage")
	}

	prefs := preferences.NewStore(store)
	if _, err := prefs.Load(ctx); err != nil {
		_ = closer.Close()
		return views.Services{}, nil, err
	}

	catalog, err := openCatalog(c.Content)
	if err != nil {
		_ = closer.Close()
		return views.Services{}, nil, err
	}

	return views.Services{
		Content:     content.WithLatency(catalog, c.Content.Latency),
		Bookmarks:   bookmark.NewStore(store),
		History:     bookmark.NewHistory(store),
		Preferences: prefs,
		Assistant: assistant.NewGemini(assistant.GeminiConfig{
			APIKey:  c.Assistant.APIKey,
			Model:   c.Assistant.Model,
			BaseURL: c.Assistant.BaseURL,
			Timeout: c.Assistant.Timeout,
		}),
		Now: time.Now,
	}, closer, nil
}

func openCatalog(c config.Content) (*content.Catalog, error) {
	switch c.Source {
	case "epub":
		catalog, err := content.NewEPUBLibrary(c.Dir)
		return catalog, errors.Wrapf(err, "open epub library %s", c.Dir)
	default:
		return content.NewMock(), nil
	}
}

func runTUI(_ *cobra.Command, _ []string) error {
	loc, err := session.ParseLocation(openRoute)
	if err != nil {
		return err
	}

	app := ui.NewApp(svc, loc)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running program")
	}
	return nil
}
