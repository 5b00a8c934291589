// -----------------------------------------------------------------------
// IMAP Service - mailbox message source for the ingestion pipeline
// Fetches messages for a date range and materializes their attachments
// -----------------------------------------------------------------------

package imap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/archivo/internal/common"
	"github.com/ternarybob/archivo/internal/models"
)

// Service reads invoice mail from an IMAP mailbox. It implements
// interfaces.MessageSource: one connection per fetch, closed when done.
type Service struct {
	config *common.MailConfig
	logger arbor.ILogger
}

// NewService creates a new IMAP service
func NewService(config *common.MailConfig, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// IsConfigured checks whether the minimum connection settings are present
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// FetchMessages returns the messages received between since and until,
// inclusive at day granularity. IMAP SINCE/BEFORE compare by server date, so
// the server-side criteria are a coarse pre-filter; the caller applies the
// precise window.
func (s *Service) FetchMessages(ctx context.Context, since, until time.Time) ([]models.MailMessage, error) {
	if !s.IsConfigured() {
		return nil, fmt.Errorf("IMAP not configured")
	}

	// Connect to IMAP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var c *client.Client
	var err error

	if s.config.UseTLS {
		c, err = client.DialTLS(addr, nil)
	} else {
		c, err = client.Dial(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}
	defer c.Logout()

	// Login
	if err := c.Login(s.config.Username, s.config.Password); err != nil {
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	folder := s.config.Folder
	if folder == "" {
		folder = "INBOX"
	}
	mbox, err := c.Select(folder, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", folder, err)
	}

	if mbox.Messages == 0 {
		s.logger.Debug().Str("folder", folder).Msg("Mailbox is empty")
		return []models.MailMessage{}, nil
	}

	// BEFORE is exclusive, so push it one day past the window end
	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	criteria.Before = until.AddDate(0, 0, 1)

	seqNums, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search mailbox: %w", err)
	}

	if len(seqNums) == 0 {
		s.logger.Debug().
			Str("since", since.Format("02/01/2006")).
			Str("until", until.Format("02/01/2006")).
			Msg("No messages in date range")
		return []models.MailMessage{}, nil
	}

	s.logger.Debug().Int("count", len(seqNums)).Msg("Found messages in date range")

	// Fetch messages
	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNums...)

	messagesCh := make(chan *imap.Message, len(seqNums))
	section := &imap.BodySectionName{}

	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, []imap.FetchItem{imap.FetchEnvelope, imap.FetchInternalDate, section.FetchItem()}, messagesCh)
	}()

	var messages []models.MailMessage
	for msg := range messagesCh {
		if msg == nil {
			continue
		}

		attachments, err := s.parseAttachments(msg, section)
		if err != nil {
			s.logger.Warn().Err(err).Int64("seq", int64(msg.SeqNum)).Msg("Failed to parse message, skipping")
			continue
		}

		subject := ""
		if msg.Envelope != nil {
			subject = msg.Envelope.Subject
		}

		messages = append(messages, models.MailMessage{
			Subject:     subject,
			ReceivedAt:  msg.InternalDate,
			Attachments: attachments,
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return messages, nil
}

// parseAttachments walks the MIME parts and materializes every attachment
func (s *Service) parseAttachments(msg *imap.Message, section *imap.BodySectionName) ([]models.Attachment, error) {
	r := msg.GetBody(section)
	if r == nil {
		return nil, fmt.Errorf("no body section")
	}

	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail reader: %w", err)
	}

	var attachments []models.Attachment
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read next part: %w", err)
		}

		switch h := p.Header.(type) {
		case *mail.AttachmentHeader:
			filename, err := h.Filename()
			if err != nil || filename == "" {
				s.logger.Debug().Err(err).Int64("seq", int64(msg.SeqNum)).Msg("Attachment without filename, skipping")
				continue
			}
			data, err := io.ReadAll(p.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read attachment %s: %w", filename, err)
			}
			attachments = append(attachments, models.Attachment{
				Filename: filename,
				Data:     data,
			})
		}
	}

	return attachments, nil
}
