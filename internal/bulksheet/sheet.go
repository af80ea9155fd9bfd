// Package bulksheet builds rows in the advertising platform's bulk upload
// schema. Builders are pure: they take recommendation records or a campaign
// configuration and return a Sheet that a writer can serialize.
package bulksheet

import (
	"fmt"

	"github.com/ignite/ppc-optimizer/internal/domain"
)

// Row is one output record keyed by header. Headers without an entry are
// written as blank cells.
type Row map[string]any

// Sheet is an ordered set of rows under a fixed header.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}

// Len returns the number of rows.
func (s Sheet) Len() int { return len(s.Rows) }

// Cells renders every row in header order. Missing and nil values are empty
// strings, floats use the shortest exact form.
func (s Sheet) Cells() [][]string {
	out := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		line := make([]string, len(s.Headers))
		for i, h := range s.Headers {
			line[i] = format(r[h])
		}
		out = append(out, line)
	}
	return out
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(x)
	}
}

const (
	productSponsored = "Sponsored Products"
	stateEnabled     = "Enabled"

	EntityNegativeKeyword = "Negative Keyword"
	EntityNegativeProduct = "Negative Product Targeting"
	EntityCampaign        = "Campaign"
	EntityBiddingAdjust   = "Bidding Adjustment"
	EntityAdGroup         = "Ad Group"
	EntityProductAd       = "Product Ad"
	EntityProductTarget   = "Product Targeting"

	MatchNegativeExact  = "Negative Exact"
	MatchNegativePhrase = "Negative Phrase"

	SheetBidChanges    = "Bid Changes"
	SheetBudgetChanges = "Budget Changes"
)

// NegativeHeaders is the extended bulk header used for negative uploads.
var NegativeHeaders = []string{
	"Product",
	"Entity",
	"Operation",
	domain.ColCampaignID,
	domain.ColAdGroupID,
	domain.ColPortfolioID,
	"Ad ID",
	"Keyword ID",
	"Product Targeting ID",
	domain.ColCampaignName,
	domain.ColAdGroupName,
	domain.ColCampaignNameInfo,
	domain.ColAdGroupNameInfo,
	domain.ColPortfolioNameInfo,
	"Start Date",
	"End Date",
	"Targeting Type",
	"State",
	"Campaign State (Informational only)",
	"Ad Group State (Informational only)",
	domain.ColDailyBudget,
	"SKU",
	"ASIN (Informational only)",
	"Eligibility Status (Informational only)",
	"Reason for Ineligibility (Informational only)",
	"Ad Group Default Bid",
	"Ad Group Default Bid (Informational only)",
	"Bid",
	domain.ColKeywordText,
	domain.ColMatchType,
	"Bidding Strategy",
	"Placement",
	"Percentage",
	domain.ColProductTargetExpr,
	"Resolved Product Targeting Expression (Informational only)",
	domain.ColImpressions,
	domain.ColClicks,
	"Click-through Rate",
	domain.ColSpend,
	domain.ColSales,
	domain.ColOrders,
	domain.ColUnits,
	domain.ColConversionRate,
	domain.ColACOS,
	domain.ColCPC,
	domain.ColROAS,
}

// AutoCampaignHeaders is the bulk header used for new auto campaigns.
var AutoCampaignHeaders = []string{
	"Product",
	"Entity",
	"Operation",
	domain.ColCampaignID,
	domain.ColAdGroupID,
	domain.ColPortfolioID,
	"Ad ID",
	"Keyword ID",
	"Product Targeting ID",
	domain.ColCampaignName,
	domain.ColAdGroupName,
	"Start Date",
	"End Date",
	"Targeting Type",
	"State",
	domain.ColDailyBudget,
	"SKU",
	"ASIN (Informational only)",
	"Ad Group Default Bid",
	"Bid",
	domain.ColKeywordText,
	domain.ColMatchType,
	"Bidding Strategy",
	"Placement",
	"Percentage",
}

// BidChangeHeaders is the header of a bid update upload.
var BidChangeHeaders = []string{
	domain.ColRecordType,
	domain.ColCampaignName,
	domain.ColCampaignID,
	domain.ColAdGroupName,
	domain.ColAdGroupID,
	domain.ColPortfolioID,
	domain.ColKeywordText,
	"Product Target",
	domain.ColMatchType,
	"Max Bid",
	"Operation",
}

// BudgetChangeHeaders is the header of a budget update upload.
var BudgetChangeHeaders = []string{
	domain.ColRecordType,
	domain.ColCampaignName,
	domain.ColCampaignID,
	domain.ColDailyBudget,
	"Operation",
}
