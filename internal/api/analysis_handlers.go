package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/ppc-optimizer/internal/analytics"
	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/pkg/httputil"
	"github.com/ignite/ppc-optimizer/internal/session"
)

// GetKPIs returns the headline KPIs, optionally filtered.
//
//	GET /api/analysis/kpis/{sessionID}?campaign=&ad_group=&start_date=&end_date=
func (h *Handlers) GetKPIs(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	report, ok := h.reportFor(w, r)
	if !ok {
		return
	}
	httputil.OK(w, analytics.KPIs(report, f))
}

// GetCampaignMetrics returns per-campaign rollups.
func (h *Handlers) GetCampaignMetrics(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	report, ok := h.reportFor(w, r)
	if !ok {
		return
	}
	httputil.OK(w, analytics.CampaignMetrics(report, f))
}

// GetMonthly returns sales and spend per month.
func (h *Handlers) GetMonthly(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	report, ok := h.reportFor(w, r)
	if !ok {
		return
	}
	httputil.OK(w, analytics.Monthly(report, f))
}

// GetFilters returns the distinct campaigns, ad groups and portfolios.
func (h *Handlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	report, ok := h.reportFor(w, r)
	if !ok {
		return
	}
	httputil.OK(w, analytics.Filters(report))
}

// GetSearchTermsData pages through the cleaned report.
//
//	GET /api/analysis/search-terms/{sessionID}/data?page=&page_size=&sort_by=&sort_order=
func (h *Handlers) GetSearchTermsData(w http.ResponseWriter, r *http.Request) {
	q, err := parsePageQuery(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	report, ok := h.reportFor(w, r)
	if !ok {
		return
	}
	httputil.OK(w, analytics.Page(report, q))
}

// AnalyzeSearchTerms flags negative candidates with the posted config, fields
// left out keeping their configured defaults. Results are enriched from the
// session's bulk export and kept for the negatives export.
//
//	POST /api/analysis/search-terms/{sessionID}
func (h *Handlers) AnalyzeSearchTerms(w http.ResponseWriter, r *http.Request) {
	cfg := h.searchCfg
	if !decodeOptional(w, r, &cfg) {
		return
	}

	id := chi.URLParam(r, "sessionID")
	report, err := h.loadReport(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	bulk, err := h.loadBulk(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	analysis := h.engine.SearchTerms(report, bulk, cfg)
	if err := h.store.Put(r.Context(), id, session.KindResults, analysis); err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to store analysis results")
		return
	}
	httputil.OK(w, analysis)
}

// GetDecisionCenter runs every rule over the session's report. Thresholds
// may be overridden per request with target_acos, min_spend, min_clicks and
// min_orders.
//
//	GET /api/analysis/decision-center/{sessionID}
func (h *Handlers) GetDecisionCenter(w http.ResponseWriter, r *http.Request) {
	th, err := h.thresholds(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	id := chi.URLParam(r, "sessionID")
	report, err := h.loadReport(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	bulk, err := h.loadBulk(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	httputil.OK(w, h.engine.WithThresholds(th).DecisionCenter(report, bulk))
}

func (h *Handlers) thresholds(r *http.Request) (domain.Thresholds, error) {
	th := h.engine.Thresholds()
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"target_acos", &th.TargetACOS},
		{"min_spend", &th.MinSpend},
	} {
		if v := q.Get(p.name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				return th, &paramError{p.name, "a non-negative number"}
			}
			*p.dst = f
		}
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"min_clicks", &th.MinClicks},
		{"min_orders", &th.MinOrders},
	} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return th, &paramError{p.name, "a non-negative integer"}
			}
			*p.dst = n
		}
	}
	return th, nil
}

type paramError struct {
	name string
	want string
}

func (e *paramError) Error() string {
	return e.name + " must be " + e.want
}
