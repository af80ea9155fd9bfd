package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/ppc-optimizer/internal/analytics"
	"github.com/ignite/ppc-optimizer/internal/config"
	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/optimizer"
	"github.com/ignite/ppc-optimizer/internal/pkg/httputil"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/schema"
	"github.com/ignite/ppc-optimizer/internal/session"
)

// Handlers contains HTTP handlers for the API
type Handlers struct {
	store     session.Store
	engine    *optimizer.Engine
	searchCfg analytics.Config
	names     *Filenames
	maxUpload int64
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store session.Store, cfg *config.Config) (*Handlers, error) {
	names, err := NewFilenames(cfg.Exports)
	if err != nil {
		return nil, err
	}
	return &Handlers{
		store:     store,
		engine:    optimizer.New(cfg.Analysis.Thresholds),
		searchCfg: cfg.Analysis.SearchTerms,
		names:     names,
		maxUpload: cfg.Server.MaxUploadBytes(),
	}, nil
}

// DeleteSession drops every upload and result of a session.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := h.store.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadReport re-parses the stored search term report of a session.
func (h *Handlers) loadReport(ctx context.Context, id string) (*domain.PerformanceReport, error) {
	var raw dataset.Table
	if err := h.store.Get(ctx, id, session.KindSearchTerms, &raw); err != nil {
		return nil, err
	}
	return schema.ParsePerformance(&raw), nil
}

// loadBulk returns the session's bulk export, or nil when none was uploaded.
func (h *Handlers) loadBulk(ctx context.Context, id string) (*dataset.Table, error) {
	if id == "" {
		return nil, nil
	}
	var bulk dataset.Table
	err := h.store.Get(ctx, id, session.KindBulk, &bulk)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bulk, nil
}

// reportFor loads the report named by the sessionID URL param, writing the
// error response itself when that fails.
func (h *Handlers) reportFor(w http.ResponseWriter, r *http.Request) (*domain.PerformanceReport, bool) {
	report, err := h.loadReport(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondErr(w, err)
		return nil, false
	}
	return report, true
}

// decodeOptional is httputil.Decode for bodies that may be empty.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	logger.Debug("request body rejected", "path", r.URL.Path, "error", err)
	httputil.BadRequest(w, "invalid JSON: "+err.Error())
	return false
}
