package web

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/crmimport/internal/core"
	"github.com/JonMunkholm/crmimport/internal/web/templates"
)

const (
	defaultContactLimit = 100
	maxContactLimit     = 1000
)

// contactsResponse is the JSON body of GET /api/contacts.
type contactsResponse struct {
	Contacts []core.Contact `json:"contacts"`
	Total    int            `json:"total"`
	Query    string         `json:"query,omitempty"`
}

// handleContacts lists contacts, fuzzy-filtered by ?q= and capped by ?limit=.
func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := min(parseIntParam(r, "limit", defaultContactLimit), maxContactLimit)

	collection := s.importer.Contacts()
	found := collection.Search(query, limit)
	total := collection.Len()

	if wantsHTML(r) {
		renderHTML(w, r, http.StatusOK, templates.ContactList(found, total))
		return
	}
	writeJSON(w, http.StatusOK, contactsResponse{Contacts: found, Total: total, Query: query})
}

// handleExport downloads every contact as CSV in template layout.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := core.WriteContacts(&buf, s.importer.Contacts().All()); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeCSV(w, "contacts_export.csv", buf.Bytes())
}

// handleHealth reports store reachability and import activity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := map[string]any{
		"status":    "ok",
		"contacts":  s.importer.Contacts().Len(),
		"importing": s.importer.Guard().Active() > 0,
	}
	if err := s.store.Ping(ctx); err != nil {
		body["status"] = "unavailable"
		body["error"] = core.MapError(err).Message
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// parseIntParam parses a positive integer query parameter, falling back to
// defaultVal when it is missing or invalid.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
