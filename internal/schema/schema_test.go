package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

func TestNormalizeEveryAlias(t *testing.T) {
	for alias, canonical := range aliasBase {
		for _, variant := range []string{alias, strings.ToUpper(alias), "  " + alias + "\t"} {
			for _, p := range []Profile{Performance, Bulk} {
				tbl := dataset.New([]string{variant}, nil)
				got := Normalize(tbl, p)
				assert.Equal(t, canonical, got.Columns[0], "alias %q under %s", variant, p)
			}
		}
	}
}

func TestNormalizeLeavesUnknownHeaders(t *testing.T) {
	tbl := dataset.New([]string{"Bidding Strategy", "Campaign Name (Informational only)"}, nil)
	got := Normalize(tbl, Performance)
	assert.Equal(t, tbl.Columns, got.Columns)
}

func TestNormalizePerformanceAdGroup(t *testing.T) {
	t.Run("renamed when name absent", func(t *testing.T) {
		got := Normalize(dataset.New([]string{"Campaign", " AD GROUP "}, nil), Performance)
		assert.Equal(t, []string{domain.ColCampaignName, domain.ColAdGroupName}, got.Columns)
	})

	t.Run("kept when name present", func(t *testing.T) {
		got := Normalize(dataset.New([]string{"Ad Group", "ad group name"}, nil), Performance)
		assert.Equal(t, []string{"Ad Group", domain.ColAdGroupName}, got.Columns)
	})
}

func TestNormalizeBulkKeepsAdGroupIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{
			name:    "ad group with ad group id",
			headers: []string{"Ad Group", "Ad Group ID"},
			want:    []string{domain.ColAdGroup, domain.ColAdGroupID},
		},
		{
			name:    "ad group with ad group name",
			headers: []string{"ad group", "Ad Group Name"},
			want:    []string{domain.ColAdGroup, domain.ColAdGroupName},
		},
		{
			name:    "ad group alone",
			headers: []string{"AD GROUP"},
			want:    []string{domain.ColAdGroup},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(dataset.New(tt.headers, nil), Bulk)
			assert.Equal(t, tt.want, got.Columns)
			assert.NotContains(t, got.Columns[:1], domain.ColAdGroupName)
		})
	}
}

func TestNormalizeBulkEntity(t *testing.T) {
	got := Normalize(dataset.New([]string{"Entity", "Campaign ID"}, nil), Bulk)
	assert.Equal(t, []string{domain.ColRecordType, domain.ColCampaignID}, got.Columns)

	got = Normalize(dataset.New([]string{"Record Type", "Entity"}, nil), Bulk)
	assert.Equal(t, []string{domain.ColRecordType, domain.ColEntity}, got.Columns)

	got = Normalize(dataset.New([]string{"Entity"}, nil), Performance)
	assert.Equal(t, []string{"Entity"}, got.Columns)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	tbl := dataset.New([]string{"7 Day Total Sales"}, [][]string{{"$1"}})
	_ = Normalize(tbl, Performance)
	assert.Equal(t, "7 Day Total Sales", tbl.Columns[0])
}

func TestCleaning(t *testing.T) {
	assert.Equal(t, 1234.5, CleanCurrency("$1,234.50"))
	assert.Equal(t, 0.0, CleanCurrency("n/a"))
	assert.Equal(t, 0.0, CleanCurrency(""))
	assert.Equal(t, 3.0, CleanCurrency("€3"))

	p := CleanPercentage("12.5%")
	require.NotNil(t, p)
	assert.Equal(t, 12.5, *p)
	assert.Nil(t, CleanPercentage("--"))
	assert.Nil(t, CleanPercentage(""))

	assert.Equal(t, 1024, CleanInteger("1,024"))
	assert.Equal(t, 12, CleanInteger("12.9"))
	assert.Equal(t, 0, CleanInteger("lots"))
	assert.Equal(t, 0, CleanInteger("1e30"))
	assert.Equal(t, 0, CleanInteger("9223372036854775808"))

	assert.Equal(t, "222", CleanID(" 222.0 "))
	assert.Equal(t, "222.05", CleanID("222.05"))
	assert.Equal(t, "", CleanID("nan"))
}

func TestValidate(t *testing.T) {
	ok, missing := Validate(dataset.New([]string{
		"campaign name", "Ad Group", "Targeting", "Match Type",
		"Customer Search Term", "Impressions", "CLICKS", "Spend",
	}, nil))
	assert.True(t, ok)
	assert.Empty(t, missing)

	ok, missing = Validate(dataset.New([]string{
		"Campaign", "Ad Group", "Targeting", "Match Type",
		"Customer Search Term", "Impressions", "Clicks", "Spend",
	}, nil))
	assert.True(t, ok)
	assert.Empty(t, missing)

	ok, missing = Validate(dataset.New([]string{"Campaign Name", "Clicks"}, nil))
	assert.False(t, ok)
	assert.Equal(t, []string{
		domain.ColAdGroupName, domain.ColTargeting, domain.ColMatchType,
		domain.ColSearchTerm, domain.ColImpressions, domain.ColSpend,
	}, missing)
}

func TestIsASIN(t *testing.T) {
	assert.True(t, IsASIN("B012345678"))
	assert.True(t, IsASIN("b0abcdefgh"))
	assert.True(t, IsASIN(" B0ABCDEFGH "))
	assert.False(t, IsASIN("running shoes"))
	assert.False(t, IsASIN("b01234567"))
	assert.False(t, IsASIN("b0123456789"))
	assert.False(t, IsASIN("a012345678"))
}

func TestParsePerformance(t *testing.T) {
	raw := dataset.New(
		[]string{"Date", "Campaign Name", "Ad Group", "Targeting", "Match Type", "Customer Search Term",
			"Impressions", "Clicks", "Spend", "7 Day Total Sales ($)", "7 Day Total Orders (#)",
			"Total Advertising Cost of Sales (ACOS)"},
		[][]string{
			{"2024-03-01", "Camp A", "AG 1", "shoes", "BROAD", "red shoes", "1,000", "10", "$20.00", "$0.00", "0", ""},
			{"03/02/2024", "", "", "", "", "", "200", "4", "$8", "$40", "2", "20%"},
		},
	)

	rep := ParsePerformance(raw)
	require.Len(t, rep.Rows, 2)
	assert.True(t, rep.Has(domain.ColACOS, domain.ColCPC, domain.ColCTR, domain.ColAdGroupName))
	assert.False(t, rep.Has(domain.ColPortfolio))

	first := rep.Rows[0]
	assert.Equal(t, "Camp A", first.CampaignName)
	assert.Equal(t, "AG 1", first.AdGroupName)
	assert.Equal(t, 1000, first.Impressions)
	assert.Equal(t, 20.0, first.Spend)
	assert.Nil(t, first.ACOS)
	assert.Equal(t, 2.0, first.CPC)
	require.NotNil(t, first.CTR)
	assert.InDelta(t, 1.0, *first.CTR, 1e-9)
	require.NotNil(t, first.ConversionRate)
	assert.Equal(t, 0.0, *first.ConversionRate)
	require.NotNil(t, first.ROAS)
	assert.Equal(t, 0.0, *first.ROAS)
	require.NotNil(t, first.Date)
	assert.Equal(t, "2024-03-01", first.Date.Format("2006-01-02"))
	assert.Equal(t, domain.UnknownText, first.Portfolio)

	second := rep.Rows[1]
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, domain.UnknownText, second.CampaignName)
	assert.Equal(t, domain.UnknownText, second.SearchTerm)
	require.NotNil(t, second.ACOS)
	assert.Equal(t, 20.0, *second.ACOS)
	require.NotNil(t, second.ROAS)
	assert.Equal(t, 5.0, *second.ROAS)
	require.NotNil(t, second.Date)
	assert.Equal(t, "2024-03-02", second.Date.Format("2006-01-02"))
}

func TestCampaignBudgets(t *testing.T) {
	bulk := PrepareBulk(dataset.New(
		[]string{"Entity", "Campaign Name", "Campaign ID", "Daily Budget"},
		[][]string{
			{"Campaign", "Camp A", "111.0", "$50"},
			{"Ad Group", "Camp A", "111.0", ""},
			{"campaign", "Camp B", "", "25"},
			{"Campaign", " camp a ", "999", "10"},
		},
	))

	got := CampaignBudgets(bulk)
	assert.Equal(t, []domain.CampaignBudget{
		{CampaignName: "Camp A", CampaignID: "111", DailyBudget: 50},
		{CampaignName: "Camp B", DailyBudget: 25},
	}, got)
}

func TestCampaignBudgetsSkipsRowsWithoutBudget(t *testing.T) {
	bulk := PrepareBulk(dataset.New(
		[]string{"Entity", "Campaign Name", "Daily Budget"},
		[][]string{
			{"Campaign", "Camp A", ""},
			{"Campaign", "Camp A", "50"},
		},
	))

	got := CampaignBudgets(bulk)
	assert.Equal(t, []domain.CampaignBudget{{CampaignName: "Camp A", DailyBudget: 50}}, got)
}

func TestCampaignBudgetsWithoutRecordType(t *testing.T) {
	bulk := PrepareBulk(dataset.New(
		[]string{"Campaign", "Daily Budget"},
		[][]string{{"Camp A", "10"}, {"Camp B", ""}},
	))

	got := CampaignBudgets(bulk)
	require.Len(t, got, 1)
	assert.Equal(t, "Camp A", got[0].CampaignName)
}
