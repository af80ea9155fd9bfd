package bulksheet

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ppc-optimizer/internal/domain"
)

func TestHeaderWidths(t *testing.T) {
	assert.Len(t, NegativeHeaders, 46)
	assert.Len(t, AutoCampaignHeaders, 25)
	assert.Len(t, BidChangeHeaders, 11)
	assert.Len(t, BudgetChangeHeaders, 5)
}

func TestNegativesOneRowPerTarget(t *testing.T) {
	targets := []domain.NegativeTarget{
		{SearchTerm: "b012345678", CampaignName: `"Camp A"`, AdGroupName: "AG 1",
			Identity: domain.Identity{CampaignID: "111", AdGroupID: "222"}},
		{SearchTerm: "red/blue shoes", CampaignName: "'Camp B'", AdGroupName: "AG 2"},
		{SearchTerm: "B0ABCDEFGH", CampaignName: "Camp C", AdGroupName: "AG 3"},
		{SearchTerm: "b0 too long value", CampaignName: "Camp D", AdGroupName: "AG 4"},
	}

	sheet := Negatives(targets, false)
	require.Equal(t, len(targets), sheet.Len())
	assert.Equal(t, domain.SheetSponsoredProduct, sheet.Name)

	wantEntities := []string{EntityNegativeProduct, EntityNegativeKeyword, EntityNegativeProduct, EntityNegativeKeyword}
	for i, r := range sheet.Rows {
		assert.Equal(t, wantEntities[i], r["Entity"], "row %d", i)
	}

	want := Row{
		"Product":                   "Sponsored Products",
		"Entity":                    EntityNegativeProduct,
		"Operation":                 "Create",
		"State":                     "Enabled",
		domain.ColCampaignName:      "Camp A",
		domain.ColAdGroupName:       "AG 1",
		domain.ColCampaignID:        "111",
		domain.ColAdGroupID:         "222",
		domain.ColProductTargetExpr: `asin="B012345678"`,
	}
	if diff := cmp.Diff(want, sheet.Rows[0]); diff != "" {
		t.Errorf("product target row mismatch (-want +got):\n%s", diff)
	}

	kw := sheet.Rows[1]
	assert.Equal(t, "red blue shoes", kw[domain.ColKeywordText])
	assert.Equal(t, MatchNegativeExact, kw[domain.ColMatchType])
	assert.Equal(t, "Camp B", kw[domain.ColCampaignName])
	assert.NotContains(t, kw, domain.ColCampaignID)
}

func TestNegativesPhrase(t *testing.T) {
	sheet := Negatives([]domain.NegativeTarget{{SearchTerm: "shoes"}}, true)
	assert.Equal(t, MatchNegativePhrase, sheet.Rows[0][domain.ColMatchType])

	empty := Negatives(nil, true)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, NegativeHeaders, empty.Headers)
}

func TestBidChanges(t *testing.T) {
	sheet := BidChanges([]domain.BidChange{
		{CampaignName: "A", AdGroupName: "G", Targeting: "running shoes", MatchType: "Broad", SuggestedBid: 1.2,
			Identity: domain.Identity{CampaignID: "1", AdGroupID: "2", PortfolioID: "3"}},
		{CampaignName: "A", AdGroupName: "G", Targeting: `asin="B0123"`, SuggestedBid: 0.5},
		{CampaignName: "A", AdGroupName: "G", Targeting: "B012345678", SuggestedBid: 0.5},
	})
	require.Equal(t, 3, sheet.Len())
	assert.Equal(t, SheetBidChanges, sheet.Name)

	want := Row{
		domain.ColRecordType:   "Keyword",
		domain.ColCampaignName: "A",
		domain.ColCampaignID:   "1",
		domain.ColAdGroupName:  "G",
		domain.ColAdGroupID:    "2",
		domain.ColPortfolioID:  "3",
		domain.ColKeywordText:  "running shoes",
		domain.ColMatchType:    "Broad",
		"Max Bid":              1.2,
		"Operation":            "Update",
	}
	if diff := cmp.Diff(want, sheet.Rows[0]); diff != "" {
		t.Errorf("keyword row mismatch (-want +got):\n%s", diff)
	}
	for _, r := range sheet.Rows[1:] {
		assert.Equal(t, "Product Target", r[domain.ColRecordType])
		assert.NotContains(t, r, domain.ColKeywordText)
	}
}

func TestBudgetChanges(t *testing.T) {
	sheet := BudgetChanges([]domain.BudgetChange{{CampaignName: "A", CampaignID: "9", DailyBudget: 60}})
	want := []Row{{
		domain.ColRecordType:   "Campaign",
		domain.ColCampaignName: "A",
		domain.ColCampaignID:   "9",
		domain.ColDailyBudget:  60.0,
		"Operation":            "Update",
	}}
	if diff := cmp.Diff(want, sheet.Rows); diff != "" {
		t.Errorf("budget rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, [][]string{{"Campaign", "A", "9", "60", "Update"}}, sheet.Cells())
}

func bid(v float64) *float64 { return &v }

func TestAutoCampaignRowOrder(t *testing.T) {
	cfg := CampaignConfig{
		Name:       "Auto - Shoes",
		Portfolio:  "P1",
		Budget:     25,
		StartDate:  "2024-05-01",
		Placements: &PlacementAdjustment{TopOfSearch: 50, ProductPages: 0, RestOfSearch: 10},
		AdGroups: []AdGroupConfig{
			{
				Name:          "AG 1",
				DefaultBid:    0.75,
				SKUs:          []string{" SKU-1 ", "", "  "},
				CloseMatch:    true,
				CloseMatchBid: bid(1.1),
				Complements:   true,
			},
			{
				Name:        "AG 2",
				DefaultBid:  0.5,
				SKUs:        []string{"SKU-2", "SKU-3"},
				LooseMatch:  true,
				Substitutes: true,
			},
		},
	}

	sheet, err := AutoCampaign(cfg)
	require.NoError(t, err)
	assert.Equal(t, AutoCampaignHeaders, sheet.Headers)

	type summary struct{ Entity, AdGroup, Detail string }
	var got []summary
	for _, r := range sheet.Rows {
		s := summary{Entity: r["Entity"].(string)}
		if v, ok := r[domain.ColAdGroupName].(string); ok {
			s.AdGroup = v
		}
		switch s.Entity {
		case EntityBiddingAdjust:
			s.Detail = r["Placement"].(string)
		case EntityProductAd:
			s.Detail = r["SKU"].(string)
		case EntityProductTarget:
			s.Detail = r[domain.ColKeywordText].(string)
		}
		got = append(got, s)
	}

	want := []summary{
		{EntityCampaign, "", ""},
		{EntityBiddingAdjust, "", PlacementTop},
		{EntityBiddingAdjust, "", PlacementRest},
		{EntityAdGroup, "AG 1", ""},
		{EntityProductAd, "AG 1", "SKU-1"},
		{EntityProductTarget, "AG 1", "auto-targeting=close-match"},
		{EntityProductTarget, "AG 1", "auto-targeting=complements"},
		{EntityAdGroup, "AG 2", ""},
		{EntityProductAd, "AG 2", "SKU-2"},
		{EntityProductAd, "AG 2", "SKU-3"},
		{EntityProductTarget, "AG 2", "auto-targeting=loose-match"},
		{EntityProductTarget, "AG 2", "auto-targeting=substitutes"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}

	campaign := sheet.Rows[0]
	assert.Equal(t, "20240501", campaign["Start Date"])
	assert.Equal(t, "Auto", campaign["Targeting Type"])
	assert.Equal(t, "enabled", campaign["State"])
	assert.Equal(t, string(DynamicDownOnly), campaign["Bidding Strategy"])
	assert.Equal(t, "P1", campaign[domain.ColPortfolioID])
	assert.Equal(t, "Auto - Shoes", campaign[domain.ColCampaignID])

	assert.Equal(t, 50, sheet.Rows[1]["Percentage"])
	assert.Equal(t, 1.1, sheet.Rows[5]["Bid"])
	assert.NotContains(t, sheet.Rows[6], "Bid")
	assert.Equal(t, "AG 1", sheet.Rows[5][domain.ColAdGroupID])
}

func TestValidateAdGroup(t *testing.T) {
	assert.Empty(t, ValidateAdGroup(AdGroupConfig{Name: "AG", DefaultBid: 0.02, CloseMatch: true}))
	assert.Equal(t, []string{
		"Ad group name is required",
		"Default bid must be at least $0.02",
		"At least one targeting type must be enabled",
	}, ValidateAdGroup(AdGroupConfig{Name: "  ", DefaultBid: 0.01}))
}

func TestAdGroupTargetingDefaultsToEnabled(t *testing.T) {
	var ag AdGroupConfig
	require.NoError(t, json.Unmarshal([]byte(`{"ad_group_name":"Auto","default_bid":0.5,"skus":["S1"]}`), &ag))
	assert.True(t, ag.CloseMatch)
	assert.True(t, ag.LooseMatch)
	assert.True(t, ag.Substitutes)
	assert.True(t, ag.Complements)
	assert.Empty(t, ValidateAdGroup(ag))

	sheet, err := AutoCampaign(CampaignConfig{
		Name:      "Auto",
		Budget:    10,
		StartDate: "2024-05-01",
		AdGroups:  []AdGroupConfig{ag},
	})
	require.NoError(t, err)
	targets := 0
	for _, r := range sheet.Rows {
		if r["Entity"] == EntityProductTarget {
			targets++
		}
	}
	assert.Equal(t, 4, targets)

	var partial AdGroupConfig
	require.NoError(t, json.Unmarshal([]byte(`{"ad_group_name":"Auto","default_bid":0.5,"close_match":false,"complements_bid":0.9}`), &partial))
	assert.False(t, partial.CloseMatch)
	assert.True(t, partial.LooseMatch)
	require.NotNil(t, partial.ComplementsBid)
	assert.Equal(t, 0.9, *partial.ComplementsBid)
}

func TestAutoCampaignCollectsAllProblems(t *testing.T) {
	cfg := CampaignConfig{
		Name:       "Auto",
		Budget:     0.5,
		StartDate:  "2024-05-01",
		Placements: &PlacementAdjustment{TopOfSearch: 901},
		AdGroups: []AdGroupConfig{
			{Name: "ok", DefaultBid: 1, LooseMatch: true},
			{Name: "", DefaultBid: 1, LooseMatch: true},
		},
	}

	_, err := AutoCampaign(cfg)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"Daily budget must be at least $1.00",
		"Top of search adjustment must be between 0 and 900",
		"Ad Group 2: Ad group name is required",
	}, verr.Problems)
	assert.Equal(t, "Daily budget must be at least $1.00; Top of search adjustment must be between 0 and 900; Ad Group 2: Ad group name is required", err.Error())
}
