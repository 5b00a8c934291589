package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/archivo/internal/interfaces"
	"github.com/ternarybob/archivo/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type PageHandler struct {
	storage   interfaces.DocumentStorage
	logger    arbor.ILogger
	templates *template.Template
}

func NewPageHandler(storage interfaces.DocumentStorage, logger arbor.ILogger) *PageHandler {
	templates := template.Must(template.ParseFS(templateFS, "templates/*.html"))

	return &PageHandler{
		storage:   storage,
		logger:    logger,
		templates: templates,
	}
}

// IndexHandler renders the search page. With query parameters present it runs
// the search server-side and renders the results table.
func (h *PageHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	filter := &models.DocumentFilter{
		TaxID:       strings.TrimSpace(r.URL.Query().Get("ruc")),
		Recipient:   strings.TrimSpace(r.URL.Query().Get("recipient")),
		IssueDate:   strings.TrimSpace(r.URL.Query().Get("issued")),
		Description: strings.TrimSpace(r.URL.Query().Get("description")),
	}

	data := map[string]interface{}{
		"Filter":   filter,
		"Searched": len(r.URL.Query()) > 0,
	}

	if len(r.URL.Query()) > 0 {
		docs, err := h.storage.Search(filter)
		if err != nil {
			h.logger.Error().Err(err).Msg("Page search failed")
			http.Error(w, "Search failed", http.StatusInternalServerError)
			return
		}
		data["Documents"] = docs
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render page")
	}
}
