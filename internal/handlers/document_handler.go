package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/archivo/internal/interfaces"
	"github.com/ternarybob/archivo/internal/models"
)

type DocumentHandler struct {
	storage interfaces.DocumentStorage
	logger  arbor.ILogger
}

func NewDocumentHandler(storage interfaces.DocumentStorage, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		storage: storage,
		logger:  logger,
	}
}

// SearchHandler returns documents matching the query parameters: ruc and
// issued filter by equality, recipient and description by case-insensitive
// substring. No parameters returns everything up to the limit.
func (h *DocumentHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	filter := &models.DocumentFilter{
		TaxID:       strings.TrimSpace(r.URL.Query().Get("ruc")),
		Recipient:   strings.TrimSpace(r.URL.Query().Get("recipient")),
		IssueDate:   strings.TrimSpace(r.URL.Query().Get("issued")),
		Description: strings.TrimSpace(r.URL.Query().Get("description")),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	docs, err := h.storage.Search(filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("Document search failed")
		WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(docs),
		"documents": docs,
	})
}

// DownloadHandler streams the archived PDF for a document ID.
// Handles GET /api/documents/{id}/download.
func (h *DocumentHandler) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	id := strings.TrimSuffix(path, "/download")
	if id == "" || id == path {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	doc, err := h.storage.GetDocument(id)
	if err != nil {
		if errors.Is(err, interfaces.ErrDocumentNotFound) {
			WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to load document")
		WriteError(w, http.StatusInternalServerError, "Failed to load document")
		return
	}

	blob, err := h.storage.GetBlob(doc.BlobKey)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Str("blob_key", doc.BlobKey).Msg("Failed to load blob")
		WriteError(w, http.StatusInternalServerError, "Failed to load document content")
		return
	}

	filename := doc.Filename
	if filename == "" {
		filename = doc.ID + ".pdf"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(blob)))
	w.Write(blob)
}

// StatsHandler returns archive statistics
func (h *DocumentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	count, err := h.storage.CountDocuments()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count documents")
		WriteError(w, http.StatusInternalServerError, "Failed to get statistics")
		return
	}

	WriteJSON(w, http.StatusOK, models.DocumentStats{
		TotalDocuments: count,
		LastUpdated:    time.Now(),
	})
}
