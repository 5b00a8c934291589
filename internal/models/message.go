package models

import (
	"time"
)

// Attachment is one file carried by a mail message
type Attachment struct {
	Filename string
	Data     []byte
}

// MailMessage is a message pulled from the mailbox source, with its
// attachments fully materialized
type MailMessage struct {
	Subject     string
	ReceivedAt  time.Time // As reported by the source, may carry a timezone
	Attachments []Attachment
}

// IngestSummary reports the outcome of one pipeline run. The three zero/partial
// cases are distinguishable: zero matched, matched but no PDFs, and storage
// failures for otherwise qualifying messages.
type IngestSummary struct {
	Matched    int `json:"matched"`     // Messages inside the date window
	Stored     int `json:"stored"`      // Documents written to the archive
	WithoutPDF int `json:"without_pdf"` // Matched messages that carried no PDF attachment
	Failed     int `json:"failed"`      // Qualifying messages whose storage write failed
}
