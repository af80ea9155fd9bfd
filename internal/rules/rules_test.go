package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ppc-optimizer/internal/domain"
)

var allColumns = []string{
	domain.ColCampaignName, domain.ColAdGroupName, domain.ColTargeting, domain.ColMatchType,
	domain.ColSearchTerm, domain.ColImpressions, domain.ColClicks, domain.ColSpend, domain.ColSales,
	domain.ColOrders, domain.ColCPC, domain.ColCTR, domain.ColConversionRate, domain.ColACOS,
}

func pct(v float64) *float64 { return &v }

func report(rows ...domain.SearchTerm) *domain.PerformanceReport {
	for i := range rows {
		rows[i].Index = i
	}
	return domain.NewPerformanceReport(rows, allColumns)
}

func TestBleedingSpend(t *testing.T) {
	rep := report(
		domain.SearchTerm{SearchTerm: "cheap shoes", MatchType: "Broad", Targeting: "shoes", Spend: 20, Clicks: 8},
		domain.SearchTerm{SearchTerm: "cheap shoes", MatchType: "Exact", Targeting: "shoes", Spend: 20, Clicks: 8},
		domain.SearchTerm{SearchTerm: "b012345678", MatchType: "-", Targeting: "B0ABCDEFGH", Spend: 50, Clicks: 10},
		domain.SearchTerm{SearchTerm: "boots", MatchType: "Phrase", Targeting: "boots", Spend: 30, Clicks: 10},
		domain.SearchTerm{SearchTerm: "sold", MatchType: "Broad", Targeting: "x", Spend: 30, Clicks: 10, Sales: 5},
		domain.SearchTerm{SearchTerm: "few clicks", MatchType: "Broad", Targeting: "x", Spend: 30, Clicks: 4},
	)

	got := BleedingSpend(rep, 10, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "boots", got[0].SearchTerm)
	assert.Equal(t, 300.0, got[0].SeverityScore)
	assert.Equal(t, 0, got[1].ID)
	assert.Equal(t, 160.0, got[1].SeverityScore)
	assert.Equal(t, domain.ActionNegative, got[1].ActionType)
}

func TestBleedingSpendExactIsCaseInsensitive(t *testing.T) {
	rep := report(domain.SearchTerm{MatchType: "EXACT", Spend: 20, Clicks: 8})
	assert.Empty(t, BleedingSpend(rep, 10, 5))
}

func TestBleedingSpendMissingColumns(t *testing.T) {
	rep := domain.NewPerformanceReport([]domain.SearchTerm{{Spend: 20, Clicks: 8}}, []string{domain.ColSpend})
	assert.Empty(t, BleedingSpend(rep, 10, 5))
	assert.Empty(t, BleedingSpend(nil, 10, 5))
}

func TestAccountBenchmarks(t *testing.T) {
	rep := report(
		domain.SearchTerm{Impressions: 1000, Clicks: 20, Spend: 20, Orders: 1},
	)
	b := AccountBenchmarks(rep)
	assert.InDelta(t, 2.0, b.CTR, 1e-9)
	assert.InDelta(t, 1.0, b.CPC, 1e-9)
	assert.InDelta(t, 5.0, b.CVR, 1e-9)

	assert.Equal(t, Benchmarks{}, AccountBenchmarks(report(domain.SearchTerm{})))
}

func TestHighACOSRootCausePrecedence(t *testing.T) {
	// Totals give avgCTR 2%, avgCPC $1.00, avgCVR 5%.
	base := domain.SearchTerm{Impressions: 10000, Clicks: 200, Spend: 190, Orders: 10, Sales: 10000, ACOS: pct(2)}

	tests := []struct {
		name      string
		row       domain.SearchTerm
		rootCause string
		action    string
		value     float64
		benchmark float64
	}{
		{
			name:      "low cvr wins over high cpc",
			row:       domain.SearchTerm{Spend: 10, Sales: 5, ACOS: pct(200), CPC: 3, ConversionRate: pct(2), CTR: pct(2)},
			rootCause: domain.RootCauseLowCVR,
			action:    domain.ActionReview,
			value:     2,
			benchmark: 5,
		},
		{
			name:      "high cpc",
			row:       domain.SearchTerm{Spend: 10, Sales: 5, ACOS: pct(200), CPC: 3, ConversionRate: pct(5), CTR: pct(2)},
			rootCause: domain.RootCauseHighCPC,
			action:    domain.ActionBidDown,
			value:     3,
			benchmark: 1,
		},
		{
			name:      "low ctr",
			row:       domain.SearchTerm{Spend: 10, Sales: 5, ACOS: pct(200), CPC: 1, ConversionRate: pct(5), CTR: pct(1)},
			rootCause: domain.RootCauseLowCTR,
			action:    domain.ActionNegative,
			value:     1,
			benchmark: 2,
		},
		{
			name:      "general efficiency",
			row:       domain.SearchTerm{Spend: 10, Sales: 5, ACOS: pct(200), CPC: 1, ConversionRate: pct(5), CTR: pct(2)},
			rootCause: domain.RootCauseGeneral,
			action:    domain.ActionOptimization,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The row adds only its spend, bringing the total to 200.
			got := HighACOS(report(base, tt.row), 30)
			require.Len(t, got, 1)
			assert.Equal(t, tt.rootCause, got[0].RootCause)
			assert.Equal(t, tt.action, got[0].ActionType)
			assert.InDelta(t, tt.value, got[0].Value, 1e-9)
			assert.InDelta(t, tt.benchmark, got[0].AvgValue, 1e-9)
			assert.Equal(t, 1, got[0].ID)
		})
	}
}

func TestHighACOSFilterAndSort(t *testing.T) {
	rep := report(
		domain.SearchTerm{SearchTerm: "a", Spend: 5, ACOS: pct(50)},
		domain.SearchTerm{SearchTerm: "b", Spend: 15, ACOS: pct(40)},
		domain.SearchTerm{SearchTerm: "at target", Spend: 15, ACOS: pct(30)},
		domain.SearchTerm{SearchTerm: "no spend", Spend: 0, ACOS: pct(90)},
		domain.SearchTerm{SearchTerm: "unknown acos", Spend: 10},
	)
	got := HighACOS(rep, 30)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].SearchTerm)
	assert.Equal(t, "a", got[1].SearchTerm)
}

func TestHighACOSBidChangeUsesAccountCPC(t *testing.T) {
	rep := report(
		domain.SearchTerm{Clicks: 10, Spend: 10, Sales: 100, ACOS: pct(10)},
		domain.SearchTerm{CampaignName: "C", AdGroupName: "G", Targeting: "kw", MatchType: "Broad",
			Clicks: 10, Spend: 30, Sales: 10, CPC: 3, ACOS: pct(300)},
	)
	got := HighACOS(rep, 30)
	require.Len(t, got, 1)
	bc := got[0].BidChange()
	assert.InDelta(t, 2.0, bc.SuggestedBid, 1e-9)
	assert.Equal(t, "kw", bc.Targeting)
	assert.Equal(t, "G", bc.AdGroupName)
}

func TestScaleOpportunities(t *testing.T) {
	rep := report(
		domain.SearchTerm{SearchTerm: "a", ACOS: pct(24), Orders: 3, CPC: 1.5, ConversionRate: pct(12)},
		domain.SearchTerm{SearchTerm: "b", ACOS: pct(10), Orders: 7, CPC: 0.5},
		domain.SearchTerm{SearchTerm: "too costly", ACOS: pct(24.5), Orders: 9},
		domain.SearchTerm{SearchTerm: "few orders", ACOS: pct(5), Orders: 2},
	)
	got := ScaleOpportunities(rep, 30, 3)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].SearchTerm)
	assert.Equal(t, "a", got[1].SearchTerm)
	assert.InDelta(t, 1.8, got[1].SuggestedBid, 1e-9)
	assert.Equal(t, 1.5, got[1].CurrentBid)
	assert.Equal(t, 12.0, got[1].ConversionRate)
	assert.Equal(t, domain.ActionBidIncrease, got[1].ActionType)
}

func TestBudgetSaturation(t *testing.T) {
	rep := report(
		domain.SearchTerm{CampaignName: "Camp A", Spend: 10, Sales: 100},
		domain.SearchTerm{CampaignName: "camp a ", Spend: 10, Sales: 100},
		domain.SearchTerm{CampaignName: "Camp B", Spend: 5, Sales: 0},
		domain.SearchTerm{CampaignName: "Camp C", Spend: 50, Sales: 100},
		domain.SearchTerm{CampaignName: "Camp D", Spend: 1, Sales: 100},
		domain.SearchTerm{CampaignName: "No Budget", Spend: 1, Sales: 100},
	)
	budgets := []domain.CampaignBudget{
		{CampaignName: "CAMP A", CampaignID: "1", DailyBudget: 50},
		{CampaignName: "Camp B", DailyBudget: 20},
		{CampaignName: "Camp C", DailyBudget: 20},
		{CampaignName: "Camp D", DailyBudget: 0},
	}

	got := BudgetSaturation(rep, budgets)
	require.Len(t, got, 2)

	assert.Equal(t, "Camp B", got[0].CampaignName)
	assert.Equal(t, 0.0, got[0].ACOS)
	assert.InDelta(t, 24.0, got[0].SuggestedBudget, 1e-9)

	assert.Equal(t, "Camp A", got[1].CampaignName)
	assert.Equal(t, "1", got[1].CampaignID)
	assert.InDelta(t, 10.0, got[1].ACOS, 1e-9)
	assert.Equal(t, 20.0, got[1].Spend)
	assert.InDelta(t, 60.0, got[1].SuggestedBudget, 1e-9)

	for _, s := range got {
		assert.Equal(t, 0.0, s.Utilization)
		assert.Equal(t, domain.ActionBudgetIncrease, s.ActionType)
	}

	assert.Empty(t, BudgetSaturation(rep, nil))
}

func TestHealth(t *testing.T) {
	rep := report(
		domain.SearchTerm{MatchType: "Exact", Spend: 50, Sales: 200},
		domain.SearchTerm{MatchType: "Broad", Spend: 30, Sales: 200},
		domain.SearchTerm{MatchType: "Broad", Spend: 20, Sales: 0},
	)
	h := Health(rep)
	// efficiency 80, exact share 50% * 1.5 = 75, ACOS 25 -> 75
	assert.Equal(t, 80, h.SpendEfficiencyScore)
	assert.Equal(t, 75, h.ExactMatchScore)
	assert.Equal(t, 75, h.ACOSStabilityScore)
	assert.Equal(t, 77, h.Score)
	assert.Equal(t, 20.0, h.Details["wasted_spend"])
	assert.InDelta(t, 25.0, h.Details["overall_acos"], 1e-9)
}

func TestHealthBoundedAndDefined(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.SearchTerm
		want int
	}{
		{"all zero spend", []domain.SearchTerm{{MatchType: "Broad"}, {MatchType: "Exact"}}, 40},
		{"all exact and profitable", []domain.SearchTerm{{MatchType: "exact", Spend: 1, Sales: 1000}}, 100},
		{"all waste", []domain.SearchTerm{{MatchType: "Broad", Spend: 100}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Health(report(tt.rows...))
			assert.Equal(t, tt.want, h.Score)
			assert.GreaterOrEqual(t, h.Score, 0)
			assert.LessOrEqual(t, h.Score, 100)
			for _, v := range h.Details {
				assert.False(t, math.IsNaN(v))
			}
		})
	}

	empty := Health(domain.NewPerformanceReport(nil, allColumns))
	assert.Equal(t, domain.HealthScore{Details: map[string]float64{}}, empty)
}

func TestEvaluateTotals(t *testing.T) {
	rep := report(
		domain.SearchTerm{CampaignName: "A", MatchType: "Broad", Impressions: 100, Clicks: 10, Spend: 20},
		domain.SearchTerm{CampaignName: "A", MatchType: "Broad", Impressions: 10000, Clicks: 10, Spend: 10, Sales: 20,
			Orders: 1, CPC: 1, ConversionRate: pct(20), CTR: pct(0.1), ACOS: pct(50)},
		domain.SearchTerm{CampaignName: "B", MatchType: "Exact", Impressions: 100, Clicks: 10, Spend: 10, Sales: 200,
			Orders: 5, CPC: 1, ConversionRate: pct(50), CTR: pct(10), ACOS: pct(5)},
	)
	budgets := []domain.CampaignBudget{{CampaignName: "B", DailyBudget: 10}}

	dc := Evaluate(rep, budgets, domain.DefaultThresholds())
	require.Len(t, dc.BleedingSpend, 1)
	require.Len(t, dc.HighACOS, 1)
	assert.Equal(t, domain.RootCauseLowCTR, dc.HighACOS[0].RootCause)
	require.Len(t, dc.ScaleOpportunities, 1)
	require.Len(t, dc.BudgetSaturation, 1)
	assert.Equal(t, 2, dc.TotalUrgentActions)
	assert.Equal(t, 2, dc.TotalGrowthActions)
}
