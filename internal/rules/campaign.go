package rules

import (
	"math"
	"sort"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

type campaignTotals struct {
	name  string
	spend float64
	sales float64
}

// BudgetSaturation finds profitable campaigns that have a daily budget in the
// bulk export. Report rows are summed per campaign and joined to budgets by
// campaign name, ignoring case and surrounding space. Campaigns under the
// profitable ACOS cutoff get a budget increase suggestion. Sorted by ACOS,
// lowest first.
func BudgetSaturation(report *domain.PerformanceReport, budgets []domain.CampaignBudget) []domain.BudgetSaturation {
	if report.Empty() || len(budgets) == 0 || !report.Has(domain.ColCampaignName, domain.ColSpend, domain.ColSales) {
		return []domain.BudgetSaturation{}
	}

	totals := make(map[string]*campaignTotals)
	var order []string
	for _, r := range report.Rows {
		key := dataset.Key(r.CampaignName)
		c, ok := totals[key]
		if !ok {
			c = &campaignTotals{name: r.CampaignName}
			totals[key] = c
			order = append(order, key)
		}
		c.spend += r.Spend
		c.sales += r.Sales
	}

	byCampaign := make(map[string]domain.CampaignBudget, len(budgets))
	for _, b := range budgets {
		key := dataset.Key(b.CampaignName)
		if _, ok := byCampaign[key]; !ok {
			byCampaign[key] = b
		}
	}

	out := []domain.BudgetSaturation{}
	for _, key := range order {
		c := totals[key]
		b, ok := byCampaign[key]
		if !ok || b.DailyBudget <= 0 {
			continue
		}
		acos := 0.0
		if c.sales > 0 {
			acos = c.spend / c.sales * 100
		}
		if acos >= ProfitableACOS {
			continue
		}
		s := domain.BudgetSaturation{
			CampaignName:    c.name,
			DailyBudget:     b.DailyBudget,
			Spend:           c.spend,
			Utilization:     0,
			ACOS:            acos,
			SuggestedBudget: b.DailyBudget * BudgetIncreaseRatio,
			ActionType:      domain.ActionBudgetIncrease,
		}
		s.CampaignID = b.CampaignID
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ACOS < out[j].ACOS })
	return out
}

// Health scores the account from 0 to 100. Sub-scores:
//   - efficiency: 100 minus the share of spend that produced no sales
//   - exact share: share of spend on exact match, scaled by 1.5 and capped at 100
//   - ACOS: 100 minus overall ACOS, floored at 0; ACOS is 100 when nothing sold
//
// The weighted total is rounded. An empty report or one missing Spend, Sales
// or Match Type scores zero throughout.
func Health(report *domain.PerformanceReport) domain.HealthScore {
	if report.Empty() || !report.Has(domain.ColSpend, domain.ColSales, domain.ColMatchType) {
		return domain.HealthScore{Details: map[string]float64{}}
	}

	var total, sales, wasted, exact float64
	for _, r := range report.Rows {
		total += r.Spend
		sales += r.Sales
		if r.Sales == 0 {
			wasted += r.Spend
		}
		if r.IsExact() {
			exact += r.Spend
		}
	}

	wasteRatio, exactShare := 0.0, 0.0
	if total > 0 {
		wasteRatio = wasted / total
		exactShare = exact / total
	}
	overallACOS := 100.0
	if sales > 0 {
		overallACOS = total / sales * 100
	}

	efficiency := clamp(100-wasteRatio*100, 0, 100)
	exactScore := clamp(exactShare*100*exactShareBoost, 0, 100)
	acosScore := clamp(100-overallACOS, 0, 100)
	score := efficiency*efficiencyWeight + exactScore*exactShareWeight + acosScore*acosWeight

	return domain.HealthScore{
		Score:                int(math.Round(score)),
		SpendEfficiencyScore: int(math.Round(efficiency)),
		ACOSStabilityScore:   int(math.Round(acosScore)),
		ExactMatchScore:      int(math.Round(exactScore)),
		Details: map[string]float64{
			"wasted_spend": wasted,
			"waste_ratio":  wasteRatio,
			"overall_acos": overallACOS,
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Evaluate runs every classifier with the given thresholds.
func Evaluate(report *domain.PerformanceReport, budgets []domain.CampaignBudget, th domain.Thresholds) *domain.DecisionCenter {
	dc := &domain.DecisionCenter{
		BleedingSpend:      BleedingSpend(report, th.MinSpend, th.MinClicks),
		HighACOS:           HighACOS(report, th.TargetACOS),
		ScaleOpportunities: ScaleOpportunities(report, th.TargetACOS, th.MinOrders),
		BudgetSaturation:   BudgetSaturation(report, budgets),
		HealthScore:        Health(report),
	}

	urgent := len(dc.BleedingSpend)
	for _, h := range dc.HighACOS {
		if h.ActionType == domain.ActionNegative {
			urgent++
		}
	}
	dc.TotalUrgentActions = urgent
	dc.TotalGrowthActions = len(dc.ScaleOpportunities) + len(dc.BudgetSaturation)
	return dc
}
