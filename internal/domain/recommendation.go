package domain

// Identity carries the platform identifiers attached to a record after it has
// been reconciled against a bulk export. An empty field means no match was
// found; it is never filled with a placeholder.
type Identity struct {
	CampaignID  string `json:"campaign_id,omitempty"`
	AdGroupID   string `json:"ad_group_id,omitempty"`
	PortfolioID string `json:"portfolio_id,omitempty"`
}

// Attributable is implemented by every recommendation that can be traced
// back to a campaign and ad group by name.
type Attributable interface {
	Attribution() (campaign, adGroup string)
	IdentitySlot() *Identity
}

// Rule actions.
const (
	ActionNegative          = "Negative"
	ActionBidDown           = "Bid Down"
	ActionReview            = "Review Listing/Target"
	ActionOptimization      = "Optimization"
	ActionBidIncrease       = "Bid Increase"
	ActionBudgetIncrease    = "Budget Increase"
	RootCauseLowCVR         = "Low CVR"
	RootCauseHighCPC        = "High CPC"
	RootCauseLowCTR         = "Low CTR"
	RootCauseGeneral        = "General Efficiency"
	OperationUpdate         = "Update"
	OperationCreate         = "Create"
	RecordTypeKeyword       = "Keyword"
	RecordTypeProductTarget = "Product Target"
)

// BleedingSpend is a search term that keeps spending without converting.
type BleedingSpend struct {
	Identity
	ID            int     `json:"id"`
	SearchTerm    string  `json:"search_term"`
	CampaignName  string  `json:"campaign_name"`
	AdGroupName   string  `json:"ad_group_name"`
	Targeting     string  `json:"targeting"`
	MatchType     string  `json:"match_type"`
	Spend         float64 `json:"spend"`
	Clicks        int     `json:"clicks"`
	SeverityScore float64 `json:"severity_score"`
	ActionType    string  `json:"action_type"`
}

func (b *BleedingSpend) Attribution() (string, string) { return b.CampaignName, b.AdGroupName }
func (b *BleedingSpend) IdentitySlot() *Identity { return &b.Identity }

// Negative turns the record into a negative target.
func (b BleedingSpend) Negative() NegativeTarget {
	return NegativeTarget{
		Identity:     b.Identity,
		SearchTerm:   b.SearchTerm,
		CampaignName: b.CampaignName,
		AdGroupName:  b.AdGroupName,
	}
}

// HighACOS is a search term whose cost of sales exceeds target, with the
// metric that most likely explains it.
type HighACOS struct {
	Identity
	ID           int     `json:"id"`
	SearchTerm   string  `json:"search_term"`
	Targeting    string  `json:"targeting"`
	MatchType    string  `json:"match_type"`
	CampaignName string  `json:"campaign_name"`
	AdGroupName  string  `json:"ad_group_name"`
	ACOS         float64 `json:"acos"`
	Spend        float64 `json:"spend"`
	Sales        float64 `json:"sales"`
	CPC          float64 `json:"cpc"`
	RootCause    string  `json:"root_cause"`
	Value        float64 `json:"value"`
	AvgValue     float64 `json:"avg_value"`
	// AvgCPC is the account-wide cost per click, kept regardless of the
	// diagnosed root cause so a bid-down can be proposed from it.
	AvgCPC     float64 `json:"avg_cpc"`
	ActionType string  `json:"action_type"`
}

func (h *HighACOS) Attribution() (string, string) { return h.CampaignName, h.AdGroupName }
func (h *HighACOS) IdentitySlot() *Identity { return &h.Identity }

// Negative turns the record into a negative target.
func (h HighACOS) Negative() NegativeTarget {
	return NegativeTarget{
		Identity:     h.Identity,
		SearchTerm:   h.SearchTerm,
		CampaignName: h.CampaignName,
		AdGroupName:  h.AdGroupName,
	}
}

// BidChange proposes bidding the target down to the account average CPC.
func (h HighACOS) BidChange() BidChange {
	return BidChange{
		Identity:     h.Identity,
		CampaignName: h.CampaignName,
		AdGroupName:  h.AdGroupName,
		Targeting:    h.Targeting,
		MatchType:    h.MatchType,
		SuggestedBid: h.AvgCPC,
	}
}

// ScaleOpportunity is a profitable, converting search term worth more traffic.
type ScaleOpportunity struct {
	Identity
	ID             int     `json:"id"`
	SearchTerm     string  `json:"search_term"`
	Targeting      string  `json:"targeting"`
	MatchType      string  `json:"match_type"`
	CampaignName   string  `json:"campaign_name"`
	AdGroupName    string  `json:"ad_group_name"`
	ACOS           float64 `json:"acos"`
	Orders         int     `json:"orders"`
	ConversionRate float64 `json:"conversion_rate"`
	CurrentBid     float64 `json:"current_bid"`
	SuggestedBid   float64 `json:"suggested_bid"`
	ActionType     string  `json:"action_type"`
}

func (s *ScaleOpportunity) Attribution() (string, string) { return s.CampaignName, s.AdGroupName }
func (s *ScaleOpportunity) IdentitySlot() *Identity { return &s.Identity }

// BidChange proposes the suggested bid for the record's target.
func (s ScaleOpportunity) BidChange() BidChange {
	return BidChange{
		Identity:     s.Identity,
		CampaignName: s.CampaignName,
		AdGroupName:  s.AdGroupName,
		Targeting:    s.Targeting,
		MatchType:    s.MatchType,
		SuggestedBid: s.SuggestedBid,
	}
}

// BudgetSaturation is a profitable campaign that could take a larger budget.
type BudgetSaturation struct {
	Identity
	CampaignName string  `json:"campaign_name"`
	DailyBudget  float64 `json:"daily_budget"`
	Spend        float64 `json:"spend"`
	// Utilization is always reported as 0.
	Utilization     float64 `json:"utilization"`
	ACOS            float64 `json:"acos"`
	SuggestedBudget float64 `json:"suggested_budget"`
	ActionType      string  `json:"action_type"`
}

// Attribution is campaign-level; the ad group is always empty.
func (b *BudgetSaturation) Attribution() (string, string) { return b.CampaignName, "" }
func (b *BudgetSaturation) IdentitySlot() *Identity { return &b.Identity }

// BudgetChange proposes the suggested daily budget.
func (b BudgetSaturation) BudgetChange() BudgetChange {
	return BudgetChange{
		CampaignName: b.CampaignName,
		CampaignID:   b.CampaignID,
		DailyBudget:  b.SuggestedBudget,
	}
}

// HealthScore is the account-level composite. It is not attributable.
type HealthScore struct {
	Score                int                `json:"score"`
	SpendEfficiencyScore int                `json:"spend_efficiency_score"`
	ACOSStabilityScore   int                `json:"acos_stability_score"`
	ExactMatchScore      int                `json:"exact_match_score"`
	Details              map[string]float64 `json:"details"`
}

// DecisionCenter bundles the output of every rule for one report.
type DecisionCenter struct {
	BleedingSpend      []BleedingSpend    `json:"bleeding_spend"`
	HighACOS           []HighACOS         `json:"high_acos"`
	ScaleOpportunities []ScaleOpportunity `json:"scale_opportunities"`
	BudgetSaturation   []BudgetSaturation `json:"budget_saturation"`
	HealthScore        HealthScore        `json:"health_score"`
	TotalUrgentActions int                `json:"total_urgent_actions"`
	TotalGrowthActions int                `json:"total_growth_actions"`
}

// NegativeTarget is a search term to exclude from an ad group.
type NegativeTarget struct {
	Identity
	SearchTerm   string `json:"search_term"`
	CampaignName string `json:"campaign_name"`
	AdGroupName  string `json:"ad_group_name"`
}

func (n *NegativeTarget) Attribution() (string, string) { return n.CampaignName, n.AdGroupName }
func (n *NegativeTarget) IdentitySlot() *Identity { return &n.Identity }

// BidChange is a new max bid for one keyword or product target.
type BidChange struct {
	Identity
	CampaignName string  `json:"campaign_name"`
	AdGroupName  string  `json:"ad_group_name"`
	Targeting    string  `json:"targeting"`
	MatchType    string  `json:"match_type"`
	SuggestedBid float64 `json:"suggested_bid"`
}

func (b *BidChange) Attribution() (string, string) { return b.CampaignName, b.AdGroupName }
func (b *BidChange) IdentitySlot() *Identity { return &b.Identity }

// BudgetChange is a new daily budget for one campaign.
type BudgetChange struct {
	CampaignName string  `json:"campaign_name"`
	CampaignID   string  `json:"campaign_id,omitempty"`
	DailyBudget  float64 `json:"suggested_budget"`
}
