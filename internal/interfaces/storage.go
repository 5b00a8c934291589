package interfaces

import (
	"errors"

	"github.com/ternarybob/archivo/internal/models"
)

// ErrDocumentNotFound is returned when a document or blob lookup misses
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStorage persists archived invoice documents: PDF bytes in a blob
// keyspace plus a queryable metadata index. Writes are append-only; the blob
// and its index row are committed as one logical transaction, so an index row
// never references a blob that failed to persist.
type DocumentStorage interface {
	// SaveDocumentWithBlob stores the PDF bytes and the index row atomically.
	// It assigns doc.BlobKey and doc.CreatedAt.
	SaveDocumentWithBlob(doc *models.Document, pdf []byte) error

	GetDocument(id string) (*models.Document, error)

	// GetBlob returns the exact original PDF bytes for a blob key
	GetBlob(key string) ([]byte, error)

	// Search filters the index: equality on TaxID/IssueDate, case-insensitive
	// substring on Recipient/Description
	Search(filter *models.DocumentFilter) ([]*models.Document, error)

	CountDocuments() (int, error)
}

// StorageManager owns the storage backends and their lifecycle
type StorageManager interface {
	DocumentStorage() DocumentStorage
	Close() error
}
