package web

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/crmimport/internal/core"
	"github.com/JonMunkholm/crmimport/internal/logging"
	"github.com/JonMunkholm/crmimport/internal/web/templates"
)

// maxFormMemory is the part of a multipart upload kept in memory; the rest
// spills to temporary files.
const maxFormMemory = 32 << 20

// importResponse is the JSON body of POST /api/import.
type importResponse struct {
	*core.ImportResult
	Message string         `json:"message"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// handleImport runs the import pipeline on the uploaded "file" field.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	logger := logging.FromContext(r.Context())
	logger.Info("import requested", "file", header.Filename, "size", header.Size)

	res, err := s.importer.Import(r.Context(), header.Filename, file)
	if err != nil && res == nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	status := http.StatusOK
	resp := importResponse{ImportResult: res, Message: res.Summary()}
	if err != nil {
		status = statusFor(err)
		e := newErrorResponse(core.MapError(err))
		resp.Error = &e
		logger.Error("import partially failed", "error", err, "imported", res.Imported)
	}

	if wantsHTML(r) {
		renderHTML(w, r, status, templates.ImportSummary(res))
		return
	}
	writeJSON(w, status, resp)
}

// handlePreview validates the uploaded file without importing it.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	file, _, err := formFile(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	preview, err := s.importer.Preview(r.Context(), file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if wantsHTML(r) {
		renderHTML(w, r, http.StatusOK, templates.PreviewTable(preview))
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// handleTemplate downloads the CSV import template.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := core.WriteTemplate(&buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeCSV(w, "contacts_template.csv", buf.Bytes())
}

// formFile extracts the "file" part of a multipart request. Oversized bodies
// map to core.ErrFileTooLarge and missing files to core.ErrNoFile.
func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, nil, fmt.Errorf("%w: request body over %d bytes", core.ErrFileTooLarge, mbe.Limit)
		}
		return nil, nil, fmt.Errorf("%w: %v", core.ErrNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", core.ErrNoFile, err)
	}
	return file, header, nil
}

// writeCSV sends data as a CSV download named filename.
func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
