package domain

// Canonical column vocabulary shared by the performance report and the bulk
// export after normalization.
const (
	ColCampaignName       = "Campaign Name"
	ColAdGroupName        = "Ad Group Name"
	ColAdGroup            = "Ad Group"
	ColPortfolio          = "Portfolio"
	ColPortfolioID        = "Portfolio ID"
	ColTargeting          = "Targeting"
	ColMatchType          = "Match Type"
	ColSearchTerm         = "Customer Search Term"
	ColImpressions        = "Impressions"
	ColClicks             = "Clicks"
	ColSpend              = "Spend"
	ColSales              = "Sales"
	ColOrders             = "Orders"
	ColUnits              = "Units"
	ColCTR                = "CTR"
	ColConversionRate     = "Conversion Rate"
	ColCPC                = "CPC"
	ColACOS               = "ACOS"
	ColROAS               = "ROAS"
	ColDate               = "Date"
	ColCampaignID         = "Campaign ID"
	ColAdGroupID          = "Ad Group ID"
	ColRecordType         = "Record Type"
	ColEntity             = "Entity"
	ColKeywordText        = "Keyword Text"
	ColProductTargetExpr  = "Product Targeting Expression"
	ColDailyBudget        = "Daily Budget"
	ColCampaignNameInfo   = "Campaign Name (Informational only)"
	ColAdGroupNameInfo    = "Ad Group Name (Informational only)"
	ColPortfolioNameInfo  = "Portfolio Name (Informational only)"
	RecordTypeCampaign    = "Campaign"
	MatchTypeExact        = "Exact"
	UnknownText           = "Unknown"
	SheetSponsoredProduct = "Sponsored Products Campaigns"
)
