package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/archivo/internal/common"
	"github.com/ternarybob/archivo/internal/services/ingest"
)

// Scheduler runs the ingestion pipeline on a cron schedule, sweeping a
// trailing window of lookback_days ending today
type Scheduler struct {
	pipeline *ingest.Pipeline
	config   *common.SchedulerConfig
	cron     *cron.Cron
	logger   arbor.ILogger
}

// NewScheduler creates a new ingestion scheduler
func NewScheduler(pipeline *ingest.Pipeline, config *common.SchedulerConfig, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		pipeline: pipeline,
		config:   config,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}
}

// Start begins the scheduled ingestion
func (s *Scheduler) Start() error {
	schedule := s.config.Schedule
	if schedule == "" {
		// Default: every 6 hours
		schedule = "0 0 */6 * * *"
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runIngestion()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Int("lookback_days", s.lookbackDays()).
		Msg("Ingestion scheduler started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Ingestion scheduler stopped")
}

// RunNow triggers an immediate ingestion run
func (s *Scheduler) RunNow() {
	s.logger.Info().Msg("Triggering immediate ingestion run")
	go s.runIngestion()
}

func (s *Scheduler) lookbackDays() int {
	if s.config.LookbackDays > 0 {
		return s.config.LookbackDays
	}
	return 1
}

func (s *Scheduler) runIngestion() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	to := time.Now()
	from := to.AddDate(0, 0, -(s.lookbackDays() - 1))

	s.logger.Info().Msg("Starting scheduled ingestion")

	summary, err := s.pipeline.Run(ctx, from, to)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Scheduled ingestion failed")
		return
	}

	s.logger.Info().
		Int("matched", summary.Matched).
		Int("stored", summary.Stored).
		Int("without_pdf", summary.WithoutPDF).
		Int("failed", summary.Failed).
		Msg("Scheduled ingestion completed")
}
