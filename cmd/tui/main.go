package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendy/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendy/internal/config"
	"github.com/MrJamesThe3rd/spendy/internal/export"
	"github.com/MrJamesThe3rd/spendy/internal/importer"
	"github.com/MrJamesThe3rd/spendy/internal/ledger"
	"github.com/MrJamesThe3rd/spendy/internal/logging"
	"github.com/MrJamesThe3rd/spendy/internal/persistence"
	"github.com/MrJamesThe3rd/spendy/internal/storage"
	"github.com/MrJamesThe3rd/spendy/internal/theme"
	"github.com/MrJamesThe3rd/spendy/internal/tracker"
)

const flushTimeout = 5 * time.Second

type model struct {
	tracker       *tracker.Tracker
	themeService  *theme.Service
	importService *importer.Service
	exportService *export.Service

	current view.Screen

	ledgerView view.LedgerModel
	importView view.ImportModel
	exportView view.ExportModel
}

func newModel(t *tracker.Tracker, themeSvc *theme.Service) model {
	impSvc := importer.NewService()
	expSvc := export.NewService(t)

	return model{
		tracker:       t,
		themeService:  themeSvc,
		importService: impSvc,
		exportService: expSvc,
		current:       view.ScreenLedger,
		ledgerView:    view.NewLedgerModel(t, themeSvc),
		importView:    view.NewImportModel(t, impSvc, themeSvc),
		exportView:    view.NewExportModel(expSvc, themeSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.ledgerView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case view.NavigateMsg:
		m.current = msg.To

		switch msg.To {
		case view.ScreenImport:
			m.importView = view.NewImportModel(m.tracker, m.importService, m.themeService)
			return m, m.importView.Init()
		case view.ScreenExport:
			m.exportView = view.NewExportModel(m.exportService, m.themeService)
			return m, m.exportView.Init()
		}

		return m, nil

	case view.BackMsg:
		m.current = view.ScreenLedger
		m.ledgerView = view.NewLedgerModel(m.tracker, m.themeService)

		return m, m.ledgerView.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && m.current != view.ScreenLedger {
			return m, tea.Quit
		}
	}

	var (
		next tea.Model
		cmd  tea.Cmd
	)

	switch m.current {
	case view.ScreenLedger:
		next, cmd = m.ledgerView.Update(msg)
		m.ledgerView = next.(view.LedgerModel)
	case view.ScreenImport:
		next, cmd = m.importView.Update(msg)
		m.importView = next.(view.ImportModel)
	case view.ScreenExport:
		next, cmd = m.exportView.Update(msg)
		m.exportView = next.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.current {
	case view.ScreenLedger:
		return m.ledgerView.View()
	case view.ScreenImport:
		return m.importView.View()
	case view.ScreenExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.New(logFile, cfg.Log.Format, cfg.LogLevel())
	slog.SetDefault(logger)

	kv, closeStorage, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStorage()

	ctx := context.Background()

	writer := persistence.NewWriter(
		persistence.NewGateway(kv, logging.Component(logger, "persistence")),
		cfg.Storage.QueueSize,
		logger,
	)

	store := ledger.NewStore(writer, ledger.WithLogger(logging.Component(logger, "ledger")))
	store.Initialize(ctx)

	m := newModel(
		tracker.New(store, logging.Component(logger, "tracker")),
		theme.NewService(ctx, writer),
	)

	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()

	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	if err := writer.Close(flushCtx); err != nil {
		logger.Error("failed to flush pending writes", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}

	return nil
}
