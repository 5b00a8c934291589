package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/archivo/internal/models"
)

// MessageSource enumerates mailbox messages with their attachments. Since and
// until are calendar days; implementations may pre-filter at day granularity,
// the ingestion pipeline applies the precise inclusive window afterwards.
// A source error is fatal to the whole run.
type MessageSource interface {
	FetchMessages(ctx context.Context, since, until time.Time) ([]models.MailMessage, error)
}
