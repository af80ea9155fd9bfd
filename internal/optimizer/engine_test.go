package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ppc-optimizer/internal/analytics"
	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

var columns = []string{
	domain.ColCampaignName, domain.ColAdGroupName, domain.ColTargeting, domain.ColMatchType,
	domain.ColSearchTerm, domain.ColImpressions, domain.ColClicks, domain.ColSpend, domain.ColSales,
	domain.ColOrders, domain.ColCPC, domain.ColCTR, domain.ColConversionRate, domain.ColACOS,
}

func pct(v float64) *float64 { return &v }

func testReport() *domain.PerformanceReport {
	return domain.NewPerformanceReport([]domain.SearchTerm{
		{Index: 0, CampaignName: "Camp A", AdGroupName: "AG 1", Targeting: "boots", MatchType: "Broad",
			SearchTerm: "boots", Impressions: 500, Clicks: 10, Spend: 30},
		{Index: 1, CampaignName: "Camp B", AdGroupName: "AG 2", Targeting: "sneakers", MatchType: "Exact",
			SearchTerm: "sneakers", Impressions: 500, Clicks: 30, Spend: 30, Sales: 300, Orders: 5, CPC: 1, ACOS: pct(10)},
	}, columns)
}

func testBulk() *dataset.Table {
	return dataset.New(
		[]string{"Record Type", "Campaign ID", "Ad Group ID", "Portfolio ID", "Campaign Name", "Ad Group Name", "Daily Budget"},
		[][]string{
			{"Campaign", "100", "", "P9", "Camp A", "", "50"},
			{"Ad Group", "100", "200", "", "Camp A", "AG 1", ""},
			{"Campaign", "101", "", "", "Camp B", "", "20"},
			{"Ad Group", "101", "201", "", "Camp B", "AG 2", ""},
		},
	)
}

func TestDecisionCenterEnrichesFromBulk(t *testing.T) {
	e := New(domain.DefaultThresholds())
	dc := e.DecisionCenter(testReport(), testBulk())

	require.Len(t, dc.BleedingSpend, 1)
	assert.Equal(t, domain.Identity{CampaignID: "100", AdGroupID: "200", PortfolioID: "P9"}, dc.BleedingSpend[0].Identity)

	require.Len(t, dc.ScaleOpportunities, 1)
	assert.Equal(t, domain.Identity{CampaignID: "101", AdGroupID: "201"}, dc.ScaleOpportunities[0].Identity)
	assert.InDelta(t, 1.2, dc.ScaleOpportunities[0].SuggestedBid, 1e-9)

	require.Len(t, dc.BudgetSaturation, 2)
	assert.Equal(t, "Camp A", dc.BudgetSaturation[0].CampaignName)
	assert.Equal(t, "100", dc.BudgetSaturation[0].CampaignID)
	assert.InDelta(t, 60.0, dc.BudgetSaturation[0].SuggestedBudget, 1e-9)
	assert.Equal(t, 1, dc.TotalUrgentActions)
	assert.Equal(t, 3, dc.TotalGrowthActions)
}

func TestDecisionCenterWithoutBulk(t *testing.T) {
	dc := New(domain.DefaultThresholds()).DecisionCenter(testReport(), nil)
	require.Len(t, dc.BleedingSpend, 1)
	assert.Empty(t, dc.BleedingSpend[0].CampaignID)
	assert.Empty(t, dc.BudgetSaturation)
}

func TestDerivedChangeLists(t *testing.T) {
	dc := New(domain.DefaultThresholds()).DecisionCenter(testReport(), testBulk())

	negs := Negatives(dc)
	require.Len(t, negs, 1)
	assert.Equal(t, "boots", negs[0].SearchTerm)

	bids := BidChanges(dc)
	require.Len(t, bids, 1)
	assert.Equal(t, "sneakers", bids[0].Targeting)

	assert.Len(t, BudgetChanges(dc), 2)
	assert.Empty(t, Negatives(nil))
}

func TestSheets(t *testing.T) {
	e := New(domain.DefaultThresholds())

	neg := e.NegativesSheet([]domain.NegativeTarget{{SearchTerm: "boots", CampaignName: "camp a", AdGroupName: "ag 1"}}, testBulk(), false)
	require.Equal(t, 1, neg.Len())
	assert.Equal(t, "100", neg.Rows[0][domain.ColCampaignID])
	assert.Equal(t, "200", neg.Rows[0][domain.ColAdGroupID])

	bids := e.BidSheet([]domain.BidChange{{CampaignName: "Camp B", AdGroupName: "AG 2", Targeting: "sneakers", SuggestedBid: 1.2}}, testBulk())
	assert.Equal(t, "201", bids.Rows[0][domain.ColAdGroupID])

	budgets := e.BudgetSheet([]domain.BudgetChange{
		{CampaignName: " camp b ", DailyBudget: 24},
		{CampaignName: "Camp A", CampaignID: "keep", DailyBudget: 60},
	}, testBulk())
	assert.Equal(t, "101", budgets.Rows[0][domain.ColCampaignID])
	assert.Equal(t, "keep", budgets.Rows[1][domain.ColCampaignID])
}

func TestSearchTermsEnriched(t *testing.T) {
	a := New(domain.DefaultThresholds()).SearchTerms(testReport(), testBulk(), analytics.DefaultConfig())
	require.Equal(t, 1, a.TotalFlagged)
	assert.Equal(t, "200", a.Results[0].AdGroupID)
}
