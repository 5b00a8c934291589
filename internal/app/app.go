package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/archivo/internal/common"
	"github.com/ternarybob/archivo/internal/handlers"
	"github.com/ternarybob/archivo/internal/interfaces"
	"github.com/ternarybob/archivo/internal/services/extract"
	"github.com/ternarybob/archivo/internal/services/imap"
	"github.com/ternarybob/archivo/internal/services/ingest"
	"github.com/ternarybob/archivo/internal/services/scheduler"
	"github.com/ternarybob/archivo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	ctx            context.Context
	cancelCtx      context.CancelFunc
	StorageManager interfaces.StorageManager

	// Ingestion
	MailService *imap.Service
	Pipeline    *ingest.Pipeline
	Scheduler   *scheduler.Scheduler

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	DocumentHandler *handlers.DocumentHandler
	PageHandler     *handlers.PageHandler
}

// New creates and wires the application components
func New(config *common.Config) (*App, error) {
	logger := common.GetLogger()
	ctx, cancel := context.WithCancel(context.Background())

	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	documentStorage := storageManager.DocumentStorage()

	mailService := imap.NewService(&config.Mail, logger)
	extractor := extract.NewTextExtractor(logger, config.Ingest.TempDir)
	processor := ingest.NewProcessor(extractor, logger, config.Ingest.TempDir, config.ExtractTimeoutDuration())
	pipeline := ingest.NewPipeline(mailService, documentStorage, processor, logger)

	app := &App{
		Config:          config,
		Logger:          logger,
		ctx:             ctx,
		cancelCtx:       cancel,
		StorageManager:  storageManager,
		MailService:     mailService,
		Pipeline:        pipeline,
		APIHandler:      handlers.NewAPIHandler(),
		DocumentHandler: handlers.NewDocumentHandler(documentStorage, logger),
		PageHandler:     handlers.NewPageHandler(documentStorage, logger),
	}

	if config.Scheduler.Enabled {
		app.Scheduler = scheduler.NewScheduler(pipeline, &config.Scheduler, logger)
	}

	logger.Info().Msg("Application components initialized")

	return app, nil
}

// Context returns the application context, cancelled on shutdown
func (a *App) Context() context.Context {
	return a.ctx
}

// Close shuts down application components in reverse dependency order
func (a *App) Close() error {
	a.cancelCtx()

	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
			return err
		}
	}

	a.Logger.Info().Msg("Application shut down")
	return nil
}
