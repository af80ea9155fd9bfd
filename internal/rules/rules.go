// Package rules turns a cleaned search term report into recommendation
// records. Every classifier is a pure function over its inputs: nothing is
// cached, nothing is mutated, and a report that lacks the columns a rule needs
// yields an empty result rather than an error.
package rules

import (
	"sort"

	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/schema"
)

// Fixed multipliers and cutoffs.
const (
	LowRatioFactor      = 0.7  // CVR or CTR below 70% of the account average is low
	HighCPCFactor       = 1.3  // CPC above 130% of the account average is high
	EfficientACOSFactor = 0.8  // scale candidates sit at or below 80% of target ACOS
	BidIncreaseFactor   = 1.2  // suggested bid over current CPC
	BudgetIncreaseRatio = 1.2  // suggested budget over current budget
	ProfitableACOS      = 30.0 // campaign ACOS under this is considered profitable

	efficiencyWeight = 0.4
	exactShareWeight = 0.3
	acosWeight       = 0.3
	exactShareBoost  = 1.5
)

// BleedingSpend flags search terms with spend but no sales: spend at least
// minSpend, zero sales, at least minClicks clicks, non-exact match, and a
// target that is not a product identifier. Sorted by spend × clicks, highest
// first.
func BleedingSpend(report *domain.PerformanceReport, minSpend float64, minClicks int) []domain.BleedingSpend {
	if report.Empty() || !report.Has(domain.ColSpend, domain.ColSales, domain.ColClicks, domain.ColMatchType) {
		return []domain.BleedingSpend{}
	}
	checkTargets := report.Has(domain.ColTargeting)

	out := []domain.BleedingSpend{}
	for _, r := range report.Rows {
		if r.Spend < minSpend || r.Sales != 0 || r.Clicks < minClicks || r.IsExact() {
			continue
		}
		if checkTargets && schema.IsASIN(r.Targeting) {
			continue
		}
		out = append(out, domain.BleedingSpend{
			ID:            r.Index,
			SearchTerm:    r.SearchTerm,
			CampaignName:  r.CampaignName,
			AdGroupName:   r.AdGroupName,
			Targeting:     r.Targeting,
			MatchType:     r.MatchType,
			Spend:         r.Spend,
			Clicks:        r.Clicks,
			SeverityScore: r.Spend * float64(r.Clicks),
			ActionType:    domain.ActionNegative,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SeverityScore > out[j].SeverityScore })
	return out
}

// Benchmarks are account-wide averages. Ratios are in percentage points to
// line up with the report's CTR and conversion rate columns.
type Benchmarks struct {
	CTR float64 `json:"ctr"`
	CPC float64 `json:"cpc"`
	CVR float64 `json:"cvr"`
}

// AccountBenchmarks computes the averages over every row. Each division is
// guarded; a zero denominator yields zero.
func AccountBenchmarks(report *domain.PerformanceReport) Benchmarks {
	var impressions, clicks, orders int
	var spend float64
	if report != nil {
		for _, r := range report.Rows {
			impressions += r.Impressions
			clicks += r.Clicks
			orders += r.Orders
			spend += r.Spend
		}
	}

	var b Benchmarks
	if impressions > 0 {
		b.CTR = float64(clicks) / float64(impressions) * 100
	}
	if clicks > 0 {
		b.CPC = spend / float64(clicks)
		b.CVR = float64(orders) / float64(clicks) * 100
	}
	return b
}

// HighACOS selects rows above targetACOS with positive spend and diagnoses
// each one. Root causes are tried in order: low CVR, high CPC, low CTR,
// otherwise general efficiency. Sorted by spend, highest first.
func HighACOS(report *domain.PerformanceReport, targetACOS float64) []domain.HighACOS {
	if report.Empty() || !report.Has(domain.ColACOS, domain.ColSpend) {
		return []domain.HighACOS{}
	}
	bench := AccountBenchmarks(report)

	out := []domain.HighACOS{}
	for _, r := range report.Rows {
		if r.ACOS == nil || *r.ACOS <= targetACOS || r.Spend <= 0 {
			continue
		}
		h := domain.HighACOS{
			ID:           r.Index,
			SearchTerm:   r.SearchTerm,
			Targeting:    r.Targeting,
			MatchType:    r.MatchType,
			CampaignName: r.CampaignName,
			AdGroupName:  r.AdGroupName,
			ACOS:         *r.ACOS,
			Spend:        r.Spend,
			Sales:        r.Sales,
			CPC:          r.CPC,
			AvgCPC:       bench.CPC,
		}
		diagnose(&h, r, bench)
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	return out
}

func diagnose(h *domain.HighACOS, r domain.SearchTerm, bench Benchmarks) {
	switch {
	case below(r.ConversionRate, bench.CVR*LowRatioFactor):
		h.RootCause, h.Value, h.AvgValue, h.ActionType = domain.RootCauseLowCVR, *r.ConversionRate, bench.CVR, domain.ActionReview
	case r.CPC > bench.CPC*HighCPCFactor:
		h.RootCause, h.Value, h.AvgValue, h.ActionType = domain.RootCauseHighCPC, r.CPC, bench.CPC, domain.ActionBidDown
	case below(r.CTR, bench.CTR*LowRatioFactor):
		h.RootCause, h.Value, h.AvgValue, h.ActionType = domain.RootCauseLowCTR, *r.CTR, bench.CTR, domain.ActionNegative
	default:
		h.RootCause, h.Value, h.AvgValue, h.ActionType = domain.RootCauseGeneral, 0, 0, domain.ActionOptimization
	}
}

// below treats a missing value as not comparable.
func below(v *float64, limit float64) bool {
	return v != nil && *v < limit
}

// ScaleOpportunities selects converting rows at or below 80% of targetACOS
// with at least minOrders orders. CPC stands in for the current bid since the
// report carries none. Sorted by orders, highest first.
func ScaleOpportunities(report *domain.PerformanceReport, targetACOS float64, minOrders int) []domain.ScaleOpportunity {
	if report.Empty() || !report.Has(domain.ColACOS, domain.ColOrders) {
		return []domain.ScaleOpportunity{}
	}
	limit := targetACOS * EfficientACOSFactor

	out := []domain.ScaleOpportunity{}
	for _, r := range report.Rows {
		if r.ACOS == nil || *r.ACOS > limit || r.Orders < minOrders {
			continue
		}
		s := domain.ScaleOpportunity{
			ID:           r.Index,
			SearchTerm:   r.SearchTerm,
			Targeting:    r.Targeting,
			MatchType:    r.MatchType,
			CampaignName: r.CampaignName,
			AdGroupName:  r.AdGroupName,
			ACOS:         *r.ACOS,
			Orders:       r.Orders,
			CurrentBid:   r.CPC,
			SuggestedBid: r.CPC * BidIncreaseFactor,
			ActionType:   domain.ActionBidIncrease,
		}
		if r.ConversionRate != nil {
			s.ConversionRate = *r.ConversionRate
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orders > out[j].Orders })
	return out
}
