package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/ppc-optimizer/internal/analytics"
	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/pkg/httputil"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/report"
	"github.com/ignite/ppc-optimizer/internal/schema"
	"github.com/ignite/ppc-optimizer/internal/session"
)

// Upload file types.
const (
	FileTypeSearchTerms = "search_term_report"
	FileTypeBulk        = "bulk_file"
)

const multipartMemory = 32 << 20

// UploadResponse describes an accepted upload.
type UploadResponse struct {
	SessionID string               `json:"session_id"`
	FileType  string               `json:"file_type"`
	RowCount  int                  `json:"row_count"`
	Columns   []string             `json:"columns"`
	DateRange *analytics.DateRange `json:"date_range,omitempty"`
	Campaigns []string             `json:"campaigns,omitempty"`
	Message   string               `json:"message"`
}

// UploadSearchTerms accepts a search term report as multipart field "file",
// validates its columns and opens a new session.
//
//	POST /api/upload/search-terms
func (h *Handlers) UploadSearchTerms(w http.ResponseWriter, r *http.Request) {
	table, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	if valid, missing := schema.Validate(table); !valid {
		httputil.JSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error:          "Missing required columns",
			MissingColumns: missing,
			Details:        fmt.Sprintf("Found columns: %v", table.Columns),
		})
		return
	}

	id := session.NewID()
	if err := h.store.Put(r.Context(), id, session.KindSearchTerms, table); err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to store upload")
		return
	}

	parsed := schema.ParsePerformance(table)
	dates := analytics.Dates(parsed)
	logger.Info("search term report uploaded", "session_id", id, "rows", table.Len())

	httputil.OK(w, UploadResponse{
		SessionID: id,
		FileType:  FileTypeSearchTerms,
		RowCount:  table.Len(),
		Columns:   table.Columns,
		DateRange: &dates,
		Campaigns: analytics.Filters(parsed).Campaigns,
		Message:   fmt.Sprintf("Successfully processed %d rows", table.Len()),
	})
}

// UploadBulk attaches a bulk export to an existing session. Identifier
// enrichment and budget saturation read from it.
//
//	POST /api/upload/bulk/{sessionID}
func (h *Handlers) UploadBulk(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	exists, err := session.Exists(r.Context(), h.store, id, session.KindSearchTerms)
	if err != nil {
		respondErr(w, err)
		return
	}
	if !exists {
		httputil.NotFound(w, "Session not found")
		return
	}

	table, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	prepared := schema.PrepareBulk(table)
	if !prepared.Has(domain.ColCampaignName) && prepared.IndexFold(domain.ColCampaignNameInfo) < 0 {
		httputil.JSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error:          "Bulk file has no campaign names",
			MissingColumns: []string{domain.ColCampaignName},
		})
		return
	}

	if err := h.store.Put(r.Context(), id, session.KindBulk, table); err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to store upload")
		return
	}
	logger.Info("bulk file uploaded", "session_id", id, "rows", table.Len())

	httputil.OK(w, UploadResponse{
		SessionID: id,
		FileType:  FileTypeBulk,
		RowCount:  table.Len(),
		Columns:   table.Columns,
		Message:   fmt.Sprintf("Bulk file attached with %d rows", table.Len()),
	})
}

// readUpload reads multipart field "file" into a table. It writes the error
// response itself and returns false on failure.
func (h *Handlers) readUpload(w http.ResponseWriter, r *http.Request) (*dataset.Table, bool) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.Error(w, http.StatusRequestEntityTooLarge, "File too large")
			return nil, false
		}
		httputil.BadRequest(w, "Expected a multipart form with a file field")
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.BadRequest(w, "No file uploaded")
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to read upload")
		return nil, false
	}

	table, err := report.Read(content, header.Filename)
	switch {
	case err == nil:
		return table, true
	case errors.Is(err, report.ErrUnsupportedFileType), errors.Is(err, report.ErrEmptyFile):
		httputil.BadRequest(w, err.Error())
	default:
		logger.Warn("upload parse failed", "filename", header.Filename, "error", err)
		httputil.BadRequest(w, "Could not read file: "+header.Filename)
	}
	return nil, false
}
