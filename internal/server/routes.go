package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page route (HTML search form with server-side results)
	mux.HandleFunc("/", s.app.PageHandler.IndexHandler)

	// API routes - Documents
	mux.HandleFunc("/api/documents/stats", s.app.DocumentHandler.StatsHandler)
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.SearchHandler)
	mux.HandleFunc("/api/documents/", s.handleDocumentRoutes) // Handles /api/documents/{id}/download

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleDocumentRoutes routes document subpaths to the appropriate handler
func (s *Server) handleDocumentRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/download") {
		s.app.DocumentHandler.DownloadHandler(w, r)
		return
	}
	s.app.APIHandler.NotFoundHandler(w, r)
}
