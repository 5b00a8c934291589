package common

import (
	"github.com/google/uuid"
)

// NewDocumentID generates a unique document ID with the "doc_" prefix
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

// NewBlobKey generates a unique blob store key with the "blob_" prefix
// Format: blob_<uuid>
func NewBlobKey() string {
	return "blob_" + uuid.New().String()
}
