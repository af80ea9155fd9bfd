package api

import (
	"errors"
	"net/http"

	"github.com/ignite/ppc-optimizer/internal/bulksheet"
	"github.com/ignite/ppc-optimizer/internal/pkg/httputil"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/report"
	"github.com/ignite/ppc-optimizer/internal/session"
)

// =============================================================================
// ERROR SANITIZER
// Internal errors (file paths, redis addresses, parser internals) are never
// returned to API consumers. 5xx responses carry a generic public message
// while the full error is logged server-side.
// =============================================================================

// respondSafeError logs the internal error and sends a sanitized JSON error
// response to the client.
func respondSafeError(w http.ResponseWriter, code int, internalErr error, publicMsg string) {
	if internalErr != nil {
		logger.Error("request failed", "status", code, "message", publicMsg, "error", internalErr)
	}
	httputil.Error(w, code, publicMsg)
}

// respondErr maps the package sentinel errors to their HTTP status. Anything
// unrecognized is a 500.
func respondErr(w http.ResponseWriter, err error) {
	var invalid *bulksheet.ValidationError
	switch {
	case errors.Is(err, session.ErrNotFound):
		httputil.NotFound(w, "Session not found")
	case errors.Is(err, report.ErrUnsupportedFileType), errors.Is(err, report.ErrEmptyFile):
		httputil.BadRequest(w, err.Error())
	case errors.As(err, &invalid):
		httputil.BadRequest(w, invalid.Error())
	default:
		respondSafeError(w, http.StatusInternalServerError, err, "An internal error occurred")
	}
}
