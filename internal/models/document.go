package models

import (
	"time"
)

// InvoiceAttributes holds the business attributes extracted from one invoice.
// A zero-value field means the attribute was not found; extraction never fails
// on a missing attribute, it only narrows the record.
type InvoiceAttributes struct {
	TaxID     string `json:"tax_id,omitempty"`     // Digits after the "RUC:" label
	Recipient string `json:"recipient,omitempty"`  // Remainder of the "Señor(es):" line, trimmed
	IssueDate string `json:"issue_date,omitempty"` // "Fecha de Emisión" as printed, dd/mm/yyyy
	// Description comes from the companion XML (bare or ZIP-wrapped), never
	// from the PDF text itself.
	Description string `json:"description,omitempty"`
}

// Document is the persisted unit: one archived invoice PDF plus its
// extracted metadata. Written once at ingestion, never updated.
type Document struct {
	ID      string `json:"id"`       // doc_<uuid>
	BlobKey string `json:"blob_key"` // Key of the PDF bytes in the blob store

	Filename string `json:"filename"` // Attachment filename of the stored PDF
	Subject  string `json:"subject"`  // Source message subject
	// ReceivedAt is the message's received time with timezone stripped
	// (naive wall clock), matching how the ingestion window is compared.
	ReceivedAt time.Time `json:"received_at"`

	InvoiceAttributes

	CreatedAt time.Time `json:"created_at"`
}

// DocumentFilter describes an index query over archived documents.
// TaxID and IssueDate filter by equality; Recipient and Description by
// case-insensitive substring match.
type DocumentFilter struct {
	TaxID       string `json:"tax_id"`
	Recipient   string `json:"recipient"`
	IssueDate   string `json:"issue_date"`
	Description string `json:"description"`
	Limit       int    `json:"limit"`
}

// IsEmpty reports whether the filter selects everything
func (f *DocumentFilter) IsEmpty() bool {
	return f.TaxID == "" && f.Recipient == "" && f.IssueDate == "" && f.Description == ""
}

// DocumentStats summarizes the archived corpus
type DocumentStats struct {
	TotalDocuments int       `json:"total_documents"`
	LastUpdated    time.Time `json:"last_updated"`
}
