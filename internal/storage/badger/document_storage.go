package badger

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/archivo/internal/common"
	"github.com/ternarybob/archivo/internal/interfaces"
	"github.com/ternarybob/archivo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// DocumentStorage implements the DocumentStorage interface for Badger. PDF
// bytes live under blob_ keys in the raw keyspace, index rows go through
// badgerhold; both are written inside one Badger transaction.
type DocumentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewDocumentStorage creates a new DocumentStorage instance
func NewDocumentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.DocumentStorage {
	return &DocumentStorage{
		db:     db,
		logger: logger,
	}
}

func (s *DocumentStorage) SaveDocumentWithBlob(doc *models.Document, pdf []byte) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if len(pdf) == 0 {
		return fmt.Errorf("document blob is empty")
	}

	doc.BlobKey = common.NewBlobKey()
	doc.CreatedAt = time.Now()

	err := s.db.Store().Badger().Update(func(txn *badgerdb.Txn) error {
		if err := txn.Set([]byte(doc.BlobKey), pdf); err != nil {
			return fmt.Errorf("failed to write blob: %w", err)
		}
		if err := s.db.Store().TxUpsert(txn, doc.ID, doc); err != nil {
			return fmt.Errorf("failed to write index entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (s *DocumentStorage) GetDocument(id string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Store().Get(id, &doc); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, interfaces.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentStorage) GetBlob(key string) ([]byte, error) {
	var data []byte
	err := s.db.Store().Badger().View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, interfaces.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

func (s *DocumentStorage) Search(filter *models.DocumentFilter) ([]*models.Document, error) {
	query := badgerhold.Where("ID").Ne("") // Select all

	if filter != nil {
		if filter.TaxID != "" {
			query = query.And("TaxID").Eq(filter.TaxID)
		}
		if filter.IssueDate != "" {
			query = query.And("IssueDate").Eq(filter.IssueDate)
		}
		if filter.Recipient != "" {
			query = query.And("Recipient").RegExp(containsPattern(filter.Recipient))
		}
		if filter.Description != "" {
			query = query.And("Description").RegExp(containsPattern(filter.Description))
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	var docs []models.Document
	if err := s.db.Store().Find(&docs, query); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	result := make([]*models.Document, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

func (s *DocumentStorage) CountDocuments() (int, error) {
	count, err := s.db.Store().Count(&models.Document{}, badgerhold.Where("ID").Ne(""))
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return int(count), nil
}

// containsPattern builds a case-insensitive literal substring matcher
func containsPattern(text string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(text))
}
