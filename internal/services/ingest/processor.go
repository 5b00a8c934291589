package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/archivo/internal/common"
	"github.com/ternarybob/archivo/internal/models"
	"github.com/ternarybob/archivo/internal/services/extract"
)

// PDFTextReader recovers plain text from a PDF file on disk
type PDFTextReader interface {
	TextFromFile(path string) (string, error)
}

// Processor turns one mail message into at most one archivable document.
// Attachments are walked in order: the last PDF wins as the stored document,
// the most recent XML or ZIP carrying a description supplies the description.
// A broken attachment is logged and skipped, it never aborts the message.
type Processor struct {
	pdf         PDFTextReader
	logger      arbor.ILogger
	stagingBase string
	timeout     time.Duration
}

func NewProcessor(pdf PDFTextReader, logger arbor.ILogger, stagingBase string, timeout time.Duration) *Processor {
	return &Processor{
		pdf:         pdf,
		logger:      logger,
		stagingBase: stagingBase,
		timeout:     timeout,
	}
}

// candidate is the message's winning PDF plus its extracted attributes
type candidate struct {
	Document *models.Document
	PDF      []byte
}

// Process walks a message's attachments and returns the document candidate,
// or nil when the message carried no PDF attachment.
func (p *Processor) Process(msg models.MailMessage) (*candidate, error) {
	staging, err := newStagingDir(p.stagingBase)
	if err != nil {
		return nil, err
	}
	defer staging.Cleanup()

	// The PDF is staged but not read until scanning finishes: only the last
	// PDF seen becomes the document, extracting earlier ones would be wasted
	var pdfAtt *models.Attachment
	var pdfPath string
	var description string

	for i := range msg.Attachments {
		att := msg.Attachments[i]
		switch strings.ToLower(filepath.Ext(att.Filename)) {
		case ".pdf":
			path, err := staging.Put(att.Filename, att.Data)
			if err != nil {
				p.logger.Warn().Err(err).Str("filename", att.Filename).Msg("Failed to stage PDF attachment")
				continue
			}
			pdfAtt = &msg.Attachments[i]
			pdfPath = path
		case ".xml":
			desc, err := extract.DescriptionFromXML(bytes.NewReader(att.Data))
			if err != nil {
				p.logger.Warn().Err(err).Str("filename", att.Filename).Msg("Skipping unreadable XML attachment")
				continue
			}
			if desc != "" {
				description = desc
			}
		case ".zip":
			desc, err := extract.DescriptionFromZip(att.Data)
			if err != nil {
				p.logger.Warn().Err(err).Str("filename", att.Filename).Msg("Skipping unreadable ZIP attachment")
				continue
			}
			if desc != "" {
				description = desc
			}
		}
	}

	if pdfAtt == nil {
		return nil, nil
	}

	doc := &models.Document{
		ID:         common.NewDocumentID(),
		Filename:   pdfAtt.Filename,
		Subject:    msg.Subject,
		ReceivedAt: msg.ReceivedAt,
	}

	// Extraction failure is not fatal: the PDF is still archived, just
	// without attributes
	if text, err := p.extractText(pdfPath); err != nil {
		p.logger.Warn().Err(err).Str("filename", pdfAtt.Filename).Msg("PDF text extraction failed, archiving without attributes")
	} else {
		doc.InvoiceAttributes = extract.AttributesFromText(text)
	}

	if description != "" {
		doc.Description = description
	}
	return &candidate{Document: doc, PDF: pdfAtt.Data}, nil
}

// extractText bounds a single extraction by the configured timeout. A hung
// extraction leaks its goroutine, which is acceptable for a batch run.
func (p *Processor) extractText(path string) (string, error) {
	if p.timeout <= 0 {
		return p.pdf.TextFromFile(path)
	}

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := p.pdf.TextFromFile(path)
		done <- outcome{text: text, err: err}
	}()

	select {
	case o := <-done:
		return o.text, o.err
	case <-time.After(p.timeout):
		return "", fmt.Errorf("text extraction timed out after %s", p.timeout)
	}
}
