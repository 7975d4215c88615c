package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	catalogin "finpro/internal/modules/catalog/adapter/in"
	catalogoutadapter "finpro/internal/modules/catalog/adapter/out"
	catalogout "finpro/internal/modules/catalog/port/out"
	catalogservice "finpro/internal/modules/catalog/service"
	catalogusecase "finpro/internal/modules/catalog/usecase"
	progressin "finpro/internal/modules/progress/adapter/in"
	progressoutadapter "finpro/internal/modules/progress/adapter/out"
	progressout "finpro/internal/modules/progress/port/out"
	progressservice "finpro/internal/modules/progress/service"
	progressusecase "finpro/internal/modules/progress/usecase"
	"finpro/internal/platform/clock"
	"finpro/internal/platform/config"
	"finpro/internal/platform/id"
	"finpro/internal/platform/logger"
	uiapp "finpro/internal/ui/app"
)

type App struct {
	CatalogCLI  catalogin.CLIHandler
	CatalogTUI  catalogin.TUIHandler
	ProgressCLI progressin.CLIHandler
	ProgressTUI progressin.TUIHandler
	Log         *logger.Logger
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(logger.Options{Mode: cfg.LogMode, OutputPath: cfg.LogPath, Redact: cfg.Redact})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	catalogSvc := catalogservice.NewCatalogService(catalogSource(cfg.CatalogPath), catalogoutadapter.NewBrowserLauncher())
	if err := catalogSvc.Load(ctx); err != nil {
		return nil, err
	}
	catalogUC := catalogusecase.NewInteractor(catalogSvc)

	remote, err := progressStore(log, cfg)
	if err != nil {
		return nil, err
	}
	progressUC := progressusecase.NewInteractor(
		progressservice.NewSyncService(
			clock.SystemClock{},
			id.UUID{},
			remote,
			progressoutadapter.NewCatalogLessonState(catalogUC),
			log.With("component", "progress"),
		),
		progressoutadapter.NewConfigIdentityProvider(cfg.Identity),
	)

	log.Debug("app wired", "endpoint", cfg.Endpoint, "catalog", firstNonEmpty(cfg.CatalogPath, "builtin"), "telegram_id", cfg.Identity.TelegramID)

	return &App{
		CatalogCLI:  catalogin.NewCLIHandler(catalogUC),
		CatalogTUI:  catalogin.NewTUIHandler(catalogUC),
		ProgressCLI: progressin.NewCLIHandler(progressUC),
		ProgressTUI: progressin.NewTUIHandler(progressUC),
		Log:         log,
	}, nil
}

// progressStore falls back to an offline store when no endpoint is set.
func progressStore(log *logger.Logger, cfg config.Config) (progressout.RemoteStore, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		log.Info("no progress endpoint configured, running offline")
		return progressoutadapter.OfflineStore{}, nil
	}
	store, err := progressoutadapter.NewHTTPStore(log, progressoutadapter.HTTPStoreConfig{
		Endpoint:   cfg.Endpoint,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("new progress store: %w", err)
	}
	return store, nil
}

// catalogSource picks the built-in course, a markdown directory or a YAML file.
func catalogSource(path string) catalogout.Source {
	path = strings.TrimSpace(path)
	if path == "" {
		return catalogoutadapter.NewStaticSource()
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return catalogoutadapter.NewMarkdownDirSource(path)
	}
	return catalogoutadapter.NewYAMLSource(path)
}

// Close waits for pending submissions and flushes the logger.
func (a *App) Close(ctx context.Context) error {
	defer a.Log.Sync()
	if err := a.ProgressCLI.Wait(ctx); err != nil {
		a.Log.Warn("pending progress submissions dropped", "error", err)
		return err
	}
	return nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CatalogTUI, app.ProgressTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
