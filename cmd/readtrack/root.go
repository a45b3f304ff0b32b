package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/readtrack/internal/adapter"
	"github.com/mmcdole/readtrack/internal/openlibrary"
	"github.com/mmcdole/readtrack/internal/service"
	"github.com/mmcdole/readtrack/internal/store"
	"github.com/mmcdole/readtrack/internal/tracker"
	"github.com/mmcdole/readtrack/internal/tui"
	"github.com/mmcdole/readtrack/internal/tui/components"
	"github.com/spf13/cobra"
)

// errReported marks failures whose message was already written
var errReported = errors.New("already reported")

// globalFlags are shared by every command
type globalFlags struct {
	configFile string
	server     string
	project    string
	logLevel   string
}

// app holds the wiring shared by the TUI and the print commands
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	itemSvc *service.ItemService
	closers []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "readtrack",
		Short: "Terminal client for a reading tracker",
		Long: `readtrack shows the books tracked by a reading-tracker backend as cards
with progress bars. It can scope the list to a reading project, filter and
sort the cards, and look up OpenLibrary metadata for a book.

Run without a subcommand to start the interactive view.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file (default is $HOME/.config/readtrack/config.yaml)")
	pf.StringVar(&flags.server, "server", "", "tracker base URL (overrides server.url)")
	pf.StringVarP(&flags.project, "project", "p", "", "reading project id to scope the list to")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newListCmd(flags),
		newProjectsCmd(flags),
		newCacheCmd(flags),
		newConfigCmd(flags),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config and applies flag overrides
func loadConfig(flags *globalFlags) (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig(flags.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return applyFlags(cfg, flags)
}

// applyFlags overrides cfg with the persistent flags and validates the result
func applyFlags(cfg *adapter.Config, flags *globalFlags) (*adapter.Config, error) {
	if flags.server != "" {
		cfg.Server.URL = strings.TrimRight(flags.server, "/")
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds the logger and the tracker-facing services
func setup(flags *globalFlags) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		a.closers = append(a.closers, closer)
	}
	slog.SetDefault(logger)
	a.logger = logger

	logger.Info("starting readtrack", "version", Version, "server", cfg.Server.URL)

	client, err := tracker.NewSource(cfg, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}
	a.itemSvc = service.NewItemService(client, cfg.Reader.Name, logger)

	return a, nil
}

func runTUI(flags *globalFlags) error {
	a, err := setup(flags)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg := a.cfg

	st, err := store.NewLocalStore(cfg.Cache.Dir, cfg.Server.URL, cfg.Cache.MetadataTTL)
	if err != nil {
		// Preferences and the metadata cache are optional
		a.logger.Warn("falling back to memory store", "dir", cfg.Cache.Dir, "error", err)
		st, _ = store.NewLocalStore("", "", cfg.Cache.MetadataTTL)
	}
	a.closers = append(a.closers, st)

	catalog := openlibrary.NewClient(cfg.Metadata.URL, a.logger)
	metadataSvc := service.NewMetadataService(catalog, st, cfg.Metadata.Enabled, a.logger)

	model := tui.NewModel(a.itemSvc, metadataSvc, st, tui.Options{
		Project:         flags.project,
		RememberProject: cfg.UI.RememberProject,
		Timeout:         cfg.Server.Timeout,
		GlamourStyle:    components.GlamourDark,
		Logger:          a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
