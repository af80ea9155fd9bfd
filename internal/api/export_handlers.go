package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ignite/ppc-optimizer/internal/analytics"
	"github.com/ignite/ppc-optimizer/internal/bulksheet"
	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/pkg/httputil"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/report"
	"github.com/ignite/ppc-optimizer/internal/session"
)

// NegativeItem is one negative target posted directly by the dashboard.
// Either search_term or customer_search_term names the term.
type NegativeItem struct {
	domain.Identity
	SearchTerm         string `json:"search_term"`
	CustomerSearchTerm string `json:"customer_search_term"`
	CampaignName       string `json:"campaign_name"`
	AdGroupName        string `json:"ad_group_name"`
}

func (n NegativeItem) target() domain.NegativeTarget {
	term := n.SearchTerm
	if term == "" {
		term = n.CustomerSearchTerm
	}
	return domain.NegativeTarget{
		Identity:     n.Identity,
		SearchTerm:   term,
		CampaignName: n.CampaignName,
		AdGroupName:  n.AdGroupName,
	}
}

// NegativeExportRequest selects what to negate. Items win over SelectedIDs;
// ids refer to the last search term analysis of the session, or to report
// rows when none was run.
type NegativeExportRequest struct {
	SessionID         string         `json:"session_id"`
	SelectedIDs       []int          `json:"selected_ids"`
	Items             []NegativeItem `json:"items"`
	UseNegativePhrase *bool          `json:"use_negative_phrase"`
}

// BidChangeRequest carries the bid changes to export.
type BidChangeRequest struct {
	SessionID string             `json:"session_id"`
	Items     []domain.BidChange `json:"items"`
}

// BudgetChangeRequest carries the budget changes to export.
type BudgetChangeRequest struct {
	SessionID string                `json:"session_id"`
	Items     []domain.BudgetChange `json:"items"`
}

// NegativeGroup is one half of a negatives preview.
type NegativeGroup struct {
	Count int                          `json:"count"`
	Items []analytics.SearchTermResult `json:"items"`
}

// NegativePreview summarizes what a negatives export would contain.
type NegativePreview struct {
	Total            int           `json:"total"`
	NegativeKeywords NegativeGroup `json:"negative_keywords"`
	NegativeASINs    NegativeGroup `json:"negative_asins"`
	MatchType        string        `json:"match_type"`
}

const msgNothingSelected = "No items selected for export"

var errNothingSelected = errors.New("no items selected")

// ExportNegatives downloads a negative keyword / product targeting upload.
//
//	POST /api/export/negatives
func (h *Handlers) ExportNegatives(w http.ResponseWriter, r *http.Request) {
	var req NegativeExportRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	targets, err := h.negativeTargets(r, req)
	if errors.Is(err, errNothingSelected) {
		httputil.BadRequest(w, msgNothingSelected)
		return
	}
	if err != nil {
		respondErr(w, err)
		return
	}
	if len(targets) == 0 {
		httputil.BadRequest(w, "No valid items selected")
		return
	}

	bulk, err := h.loadBulk(r.Context(), req.SessionID)
	if err != nil {
		respondErr(w, err)
		return
	}
	sheet := h.engine.NegativesSheet(targets, bulk, h.usePhrase(req.UseNegativePhrase))

	name, err := h.names.Negatives()
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to name export")
		return
	}
	h.sendSheet(w, sheet, name)
}

// negativeTargets resolves the request to negative targets. Posted items are
// used as they are; otherwise ids select from stored analysis results, then
// from the report itself.
func (h *Handlers) negativeTargets(r *http.Request, req NegativeExportRequest) ([]domain.NegativeTarget, error) {
	targets := []domain.NegativeTarget{}
	if len(req.Items) > 0 {
		for _, it := range req.Items {
			if t := it.target(); strings.TrimSpace(t.SearchTerm) != "" {
				targets = append(targets, t)
			}
		}
		return targets, nil
	}
	if len(req.SelectedIDs) == 0 {
		return nil, errNothingSelected
	}

	var analysis analytics.Analysis
	err := h.store.Get(r.Context(), req.SessionID, session.KindResults, &analysis)
	switch {
	case err == nil:
		for _, res := range analytics.Select(analysis.Results, req.SelectedIDs) {
			targets = append(targets, res.Negative())
		}
		return targets, nil
	case !errors.Is(err, session.ErrNotFound):
		return nil, err
	}

	rep, err := h.loadReport(r.Context(), req.SessionID)
	if err != nil {
		return nil, err
	}
	want := make(map[int]bool, len(req.SelectedIDs))
	for _, id := range req.SelectedIDs {
		want[id] = true
	}
	for _, row := range rep.Rows {
		if want[row.Index] {
			targets = append(targets, domain.NegativeTarget{
				SearchTerm:   row.SearchTerm,
				CampaignName: row.CampaignName,
				AdGroupName:  row.AdGroupName,
			})
		}
	}
	return targets, nil
}

// PreviewNegatives lists the stored analysis results a negatives export
// would include, split into keywords and ASINs.
//
//	POST /api/export/negatives/preview
func (h *Handlers) PreviewNegatives(w http.ResponseWriter, r *http.Request) {
	var req NegativeExportRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	var analysis analytics.Analysis
	err := h.store.Get(r.Context(), req.SessionID, session.KindResults, &analysis)
	if errors.Is(err, session.ErrNotFound) {
		httputil.NotFound(w, "No analysis results found. Please run search term analysis first.")
		return
	}
	if err != nil {
		respondErr(w, err)
		return
	}

	results := analysis.Results
	if len(req.SelectedIDs) > 0 {
		results = analytics.Select(results, req.SelectedIDs)
	}

	preview := NegativePreview{
		Total:            len(results),
		NegativeKeywords: NegativeGroup{Items: []analytics.SearchTermResult{}},
		NegativeASINs:    NegativeGroup{Items: []analytics.SearchTermResult{}},
		MatchType:        analytics.NegativeExact,
	}
	if h.usePhrase(req.UseNegativePhrase) {
		preview.MatchType = analytics.NegativePhrase
	}
	for _, res := range results {
		if res.IsASIN {
			preview.NegativeASINs.Items = append(preview.NegativeASINs.Items, res)
		} else {
			preview.NegativeKeywords.Items = append(preview.NegativeKeywords.Items, res)
		}
	}
	preview.NegativeKeywords.Count = len(preview.NegativeKeywords.Items)
	preview.NegativeASINs.Count = len(preview.NegativeASINs.Items)

	httputil.OK(w, preview)
}

// ExportAutoCampaign downloads the upload for a new auto campaign. An
// invalid configuration is a 400 listing every problem.
//
//	POST /api/export/auto-campaign
func (h *Handlers) ExportAutoCampaign(w http.ResponseWriter, r *http.Request) {
	var cfg bulksheet.CampaignConfig
	if !httputil.Decode(w, r, &cfg) {
		return
	}

	sheet, err := bulksheet.AutoCampaign(cfg)
	if err != nil {
		respondErr(w, err)
		return
	}

	name, err := h.names.AutoCampaign(cfg.Name)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to name export")
		return
	}
	h.sendSheet(w, sheet, name)
}

// ExportBidChanges downloads a bid update upload for the posted changes.
//
//	POST /api/export/bid-optimization
func (h *Handlers) ExportBidChanges(w http.ResponseWriter, r *http.Request) {
	var req BidChangeRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		httputil.BadRequest(w, msgNothingSelected)
		return
	}

	bulk, err := h.loadBulk(r.Context(), req.SessionID)
	if err != nil {
		respondErr(w, err)
		return
	}
	sheet := h.engine.BidSheet(req.Items, bulk)

	name, err := h.names.BidChanges()
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to name export")
		return
	}
	h.sendSheet(w, sheet, name)
}

// ExportBudgetChanges downloads a budget update upload for the posted
// changes.
//
//	POST /api/export/budget-optimization
func (h *Handlers) ExportBudgetChanges(w http.ResponseWriter, r *http.Request) {
	var req BudgetChangeRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		httputil.BadRequest(w, msgNothingSelected)
		return
	}

	bulk, err := h.loadBulk(r.Context(), req.SessionID)
	if err != nil {
		respondErr(w, err)
		return
	}
	sheet := h.engine.BudgetSheet(req.Items, bulk)

	name, err := h.names.BudgetChanges()
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to name export")
		return
	}
	h.sendSheet(w, sheet, name)
}

func (h *Handlers) usePhrase(requested *bool) bool {
	if requested != nil {
		return *requested
	}
	return h.searchCfg.UseNegativePhrase
}

func (h *Handlers) sendSheet(w http.ResponseWriter, sheet bulksheet.Sheet, filename string) {
	data, err := report.WriteXLSX(sheet)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to build export")
		return
	}
	logger.Info("export generated", "filename", filename, "rows", sheet.Len())
	httputil.Attachment(w, filename, report.ContentTypeXLSX, data)
}
