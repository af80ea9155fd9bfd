// Package optimizer ties the pipeline together: it runs the rule engine over a
// parsed report, reconciles the recommendations against a bulk export, and
// builds the upload sheets for whatever the caller chose to act on.
package optimizer

import (
	"github.com/ignite/ppc-optimizer/internal/analytics"
	"github.com/ignite/ppc-optimizer/internal/bulksheet"
	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/identity"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/rules"
	"github.com/ignite/ppc-optimizer/internal/schema"
)

// Engine evaluates reports with a fixed set of thresholds. It holds no other
// state and is safe for concurrent use.
type Engine struct {
	thresholds domain.Thresholds
}

// New returns an engine using th.
func New(th domain.Thresholds) *Engine {
	return &Engine{thresholds: th}
}

// Thresholds returns the engine's thresholds.
func (e *Engine) Thresholds() domain.Thresholds {
	return e.thresholds
}

// WithThresholds returns a copy of the engine using th.
func (e *Engine) WithThresholds(th domain.Thresholds) *Engine {
	return &Engine{thresholds: th}
}

// DecisionCenter evaluates the report and, when a bulk export is given,
// attaches identifiers to every attributable recommendation. Budgets come
// from the bulk export's campaign rows; without one, budget saturation is
// empty.
func (e *Engine) DecisionCenter(report *domain.PerformanceReport, bulk *dataset.Table) *domain.DecisionCenter {
	var budgets []domain.CampaignBudget
	if !bulk.Empty() {
		budgets = schema.CampaignBudgets(schema.PrepareBulk(bulk))
	}

	dc := rules.Evaluate(report, budgets, e.thresholds)
	if bulk.Empty() {
		return dc
	}

	matched := identity.Enrich(identity.Refs(dc.BleedingSpend), bulk)
	matched += identity.Enrich(identity.Refs(dc.HighACOS), bulk)
	matched += identity.Enrich(identity.Refs(dc.ScaleOpportunities), bulk)
	identity.Enrich(identity.Refs(dc.BudgetSaturation), bulk)

	logger.Info("decision center evaluated",
		"urgent", dc.TotalUrgentActions,
		"growth", dc.TotalGrowthActions,
		"ad_group_matches", matched,
	)
	return dc
}

// SearchTerms flags negative candidates and enriches them from bulk.
func (e *Engine) SearchTerms(report *domain.PerformanceReport, bulk *dataset.Table, cfg analytics.Config) analytics.Analysis {
	a := analytics.AnalyzeSearchTerms(report, cfg)
	identity.Enrich(identity.Refs(a.Results), bulk)
	return a
}

// NegativesSheet enriches targets from bulk and builds the negative upload.
// Phrase selects negative phrase over negative exact for keywords.
func (e *Engine) NegativesSheet(targets []domain.NegativeTarget, bulk *dataset.Table, phrase bool) bulksheet.Sheet {
	identity.Enrich(identity.Refs(targets), bulk)
	return bulksheet.Negatives(targets, phrase)
}

// BidSheet enriches bid changes from bulk and builds the bid update upload.
func (e *Engine) BidSheet(changes []domain.BidChange, bulk *dataset.Table) bulksheet.Sheet {
	identity.Enrich(identity.Refs(changes), bulk)
	return bulksheet.BidChanges(changes)
}

// BudgetSheet fills missing campaign IDs from bulk and builds the budget
// update upload.
func (e *Engine) BudgetSheet(changes []domain.BudgetChange, bulk *dataset.Table) bulksheet.Sheet {
	if !bulk.Empty() && len(changes) > 0 {
		if l, err := identity.BuildLookups(bulk); err != nil {
			logger.Warn("budget enrichment skipped", "error", err)
		} else {
			for i := range changes {
				if changes[i].CampaignID != "" {
					continue
				}
				changes[i].CampaignID = l.CampaignIDs[dataset.Key(changes[i].CampaignName)]
			}
		}
	}
	return bulksheet.BudgetChanges(changes)
}

// Negatives collects the decision center's negation candidates: every
// bleeding search term and every high-ACOS term whose action is to negate.
func Negatives(dc *domain.DecisionCenter) []domain.NegativeTarget {
	out := []domain.NegativeTarget{}
	if dc == nil {
		return out
	}
	for _, b := range dc.BleedingSpend {
		out = append(out, b.Negative())
	}
	for _, h := range dc.HighACOS {
		if h.ActionType == domain.ActionNegative {
			out = append(out, h.Negative())
		}
	}
	return out
}

// BidChanges collects bid increases for scale opportunities and bid downs
// for high-ACOS terms diagnosed with a high CPC.
func BidChanges(dc *domain.DecisionCenter) []domain.BidChange {
	out := []domain.BidChange{}
	if dc == nil {
		return out
	}
	for _, s := range dc.ScaleOpportunities {
		out = append(out, s.BidChange())
	}
	for _, h := range dc.HighACOS {
		if h.ActionType == domain.ActionBidDown {
			out = append(out, h.BidChange())
		}
	}
	return out
}

// BudgetChanges collects the suggested budgets of saturated campaigns.
func BudgetChanges(dc *domain.DecisionCenter) []domain.BudgetChange {
	out := []domain.BudgetChange{}
	if dc == nil {
		return out
	}
	for _, b := range dc.BudgetSaturation {
		out = append(out, b.BudgetChange())
	}
	return out
}
