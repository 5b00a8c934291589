package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/archivo/internal/interfaces"
	"github.com/ternarybob/archivo/internal/models"
)

// Pipeline runs one ingestion pass: fetch messages for a date window, pick
// each message's invoice PDF, extract attributes and archive the result.
// Documents are write-once; re-running the same window archives duplicates.
type Pipeline struct {
	source    interfaces.MessageSource
	storage   interfaces.DocumentStorage
	processor *Processor
	logger    arbor.ILogger
}

func NewPipeline(source interfaces.MessageSource, storage interfaces.DocumentStorage, processor *Processor, logger arbor.ILogger) *Pipeline {
	return &Pipeline{
		source:    source,
		storage:   storage,
		processor: processor,
		logger:    logger,
	}
}

// Run ingests messages received between from and to, inclusive at day
// granularity. A source failure aborts the run; everything after that is
// contained per message.
func (p *Pipeline) Run(ctx context.Context, from, to time.Time) (*models.IngestSummary, error) {
	window := NewWindow(from, to)

	p.logger.Info().
		Str("from", window.From.Format("02/01/2006")).
		Str("to", window.To.Format("02/01/2006")).
		Msg("Starting ingestion run")

	messages, err := p.source.FetchMessages(ctx, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	summary := &models.IngestSummary{}
	for _, msg := range messages {
		msg.ReceivedAt = StripTimezone(msg.ReceivedAt)
		if !window.Contains(msg.ReceivedAt) {
			continue
		}
		summary.Matched++

		cand, err := p.processor.Process(msg)
		if err != nil {
			summary.Failed++
			p.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Failed to process message")
			continue
		}
		if cand == nil {
			summary.WithoutPDF++
			p.logger.Debug().Str("subject", msg.Subject).Msg("Message has no PDF attachment")
			continue
		}

		if err := p.storage.SaveDocumentWithBlob(cand.Document, cand.PDF); err != nil {
			summary.Failed++
			p.logger.Warn().Err(err).Str("subject", msg.Subject).Str("filename", cand.Document.Filename).Msg("Failed to archive document")
			continue
		}
		summary.Stored++
		p.logger.Info().
			Str("id", cand.Document.ID).
			Str("filename", cand.Document.Filename).
			Str("tax_id", cand.Document.TaxID).
			Msg("Archived document")
	}

	if summary.Matched == 0 {
		p.logger.Info().Msg("No messages matched the date window")
	}
	p.logger.Info().
		Int("matched", summary.Matched).
		Int("stored", summary.Stored).
		Int("without_pdf", summary.WithoutPDF).
		Int("failed", summary.Failed).
		Msg("Ingestion run complete")

	return summary, nil
}
