package bulksheet

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ignite/ppc-optimizer/internal/domain"
)

// BiddingStrategy is the campaign-level bidding mode.
type BiddingStrategy string

const (
	DynamicDownOnly BiddingStrategy = "dynamic bids - down only"
	DynamicUpDown   BiddingStrategy = "dynamic bids - up and down"
	FixedBids       BiddingStrategy = "fixed bids"
)

func (b BiddingStrategy) valid() bool {
	switch b {
	case DynamicDownOnly, DynamicUpDown, FixedBids:
		return true
	}
	return false
}

// Auto targeting groups.
const (
	CloseMatch  = "close-match"
	LooseMatch  = "loose-match"
	Substitutes = "substitutes"
	Complements = "complements"
)

// Placement names as the platform spells them.
const (
	PlacementTop        = "Placement Top"
	PlacementProduct    = "Placement Product Page"
	PlacementRest       = "Placement Rest Of Search"
	MaxPlacementPercent = 900
	MinDefaultBid       = 0.02
	MinDailyBudget      = 1.0
	startDateLayout     = "2006-01-02"
	bulkDateLayout      = "20060102"
	targetingTypeAuto   = "Auto"
	stateEnabledLower   = "enabled"
)

// PlacementAdjustment holds bid increases per placement, in percent.
type PlacementAdjustment struct {
	TopOfSearch  int `json:"top_of_search"`
	ProductPages int `json:"product_pages"`
	RestOfSearch int `json:"rest_of_search"`
}

// AdGroupConfig describes one ad group of a new auto campaign. Per-type bids
// are optional overrides of the default bid. Targeting types a JSON payload
// leaves out are enabled.
type AdGroupConfig struct {
	Name           string   `json:"ad_group_name"`
	DefaultBid     float64  `json:"default_bid"`
	SKUs           []string `json:"skus"`
	CloseMatch     bool     `json:"close_match"`
	CloseMatchBid  *float64 `json:"close_match_bid,omitempty"`
	LooseMatch     bool     `json:"loose_match"`
	LooseMatchBid  *float64 `json:"loose_match_bid,omitempty"`
	Substitutes    bool     `json:"substitutes"`
	SubstitutesBid *float64 `json:"substitutes_bid,omitempty"`
	Complements    bool     `json:"complements"`
	ComplementsBid *float64 `json:"complements_bid,omitempty"`
}

// UnmarshalJSON decodes an ad group, enabling every targeting type the payload
// does not mention.
func (a *AdGroupConfig) UnmarshalJSON(b []byte) error {
	type plain AdGroupConfig
	p := plain{CloseMatch: true, LooseMatch: true, Substitutes: true, Complements: true}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = AdGroupConfig(p)
	return nil
}

type targetingGroup struct {
	name    string
	enabled bool
	bid     *float64
}

func (a AdGroupConfig) targeting() []targetingGroup {
	return []targetingGroup{
		{CloseMatch, a.CloseMatch, a.CloseMatchBid},
		{LooseMatch, a.LooseMatch, a.LooseMatchBid},
		{Substitutes, a.Substitutes, a.SubstitutesBid},
		{Complements, a.Complements, a.ComplementsBid},
	}
}

// CampaignConfig describes a new auto campaign. StartDate is YYYY-MM-DD.
// Portfolio, when set, is written as the portfolio identifier.
type CampaignConfig struct {
	Name       string               `json:"campaign_name"`
	Portfolio  string               `json:"portfolio,omitempty"`
	Budget     float64              `json:"daily_budget"`
	Strategy   BiddingStrategy      `json:"bidding_strategy"`
	StartDate  string               `json:"start_date"`
	Placements *PlacementAdjustment `json:"placement_bid_adjustment,omitempty"`
	AdGroups   []AdGroupConfig      `json:"ad_groups"`
}

// ValidationError carries every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// ValidateAdGroup lists the problems with one ad group configuration.
func ValidateAdGroup(ag AdGroupConfig) []string {
	var problems []string
	if strings.TrimSpace(ag.Name) == "" {
		problems = append(problems, "Ad group name is required")
	}
	if ag.DefaultBid < MinDefaultBid {
		problems = append(problems, "Default bid must be at least $0.02")
	}
	enabled := false
	for _, g := range ag.targeting() {
		enabled = enabled || g.enabled
	}
	if !enabled {
		problems = append(problems, "At least one targeting type must be enabled")
	}
	return problems
}

// ValidateCampaign checks the whole configuration and returns a
// *ValidationError listing every problem, or nil. Ad group problems are
// prefixed with the ad group's 1-based position.
func ValidateCampaign(cfg CampaignConfig) error {
	var problems []string
	if strings.TrimSpace(cfg.Name) == "" {
		problems = append(problems, "Campaign name is required")
	}
	if cfg.Budget < MinDailyBudget {
		problems = append(problems, "Daily budget must be at least $1.00")
	}
	if cfg.Strategy != "" && !cfg.Strategy.valid() {
		problems = append(problems, fmt.Sprintf("Unknown bidding strategy %q", cfg.Strategy))
	}
	if _, err := time.Parse(startDateLayout, cfg.StartDate); err != nil {
		problems = append(problems, "Start date must be a YYYY-MM-DD date")
	}
	if p := cfg.Placements; p != nil {
		for _, adj := range []struct {
			name    string
			percent int
		}{
			{"Top of search", p.TopOfSearch},
			{"Product pages", p.ProductPages},
			{"Rest of search", p.RestOfSearch},
		} {
			if adj.percent < 0 || adj.percent > MaxPlacementPercent {
				problems = append(problems, fmt.Sprintf("%s adjustment must be between 0 and %d", adj.name, MaxPlacementPercent))
			}
		}
	}
	if len(cfg.AdGroups) == 0 {
		problems = append(problems, "At least one ad group is required")
	}
	for i, ag := range cfg.AdGroups {
		for _, p := range ValidateAdGroup(ag) {
			problems = append(problems, fmt.Sprintf("Ad Group %d: %s", i+1, p))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// AutoCampaign validates cfg and builds the bulk rows that create it: the
// campaign, one bidding adjustment per positive placement, then for each ad
// group the ad group, its product ads and its enabled auto targeting groups.
// New entities have no identifiers yet, so names stand in for IDs.
func AutoCampaign(cfg CampaignConfig) (Sheet, error) {
	if err := ValidateCampaign(cfg); err != nil {
		return Sheet{}, err
	}
	start, _ := time.Parse(startDateLayout, cfg.StartDate)
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = DynamicDownOnly
	}
	name := cfg.Name

	campaign := newRow(EntityCampaign, name)
	campaign["State"] = stateEnabledLower
	campaign[domain.ColDailyBudget] = cfg.Budget
	campaign["Start Date"] = start.Format(bulkDateLayout)
	campaign["Targeting Type"] = targetingTypeAuto
	campaign["Bidding Strategy"] = string(strategy)
	if cfg.Portfolio != "" {
		campaign[domain.ColPortfolioID] = cfg.Portfolio
	}
	rows := []Row{campaign}

	if p := cfg.Placements; p != nil {
		for _, adj := range []struct {
			placement string
			percent   int
		}{
			{PlacementTop, p.TopOfSearch},
			{PlacementProduct, p.ProductPages},
			{PlacementRest, p.RestOfSearch},
		} {
			if adj.percent <= 0 {
				continue
			}
			row := newRow(EntityBiddingAdjust, name)
			row["Placement"] = adj.placement
			row["Percentage"] = adj.percent
			rows = append(rows, row)
		}
	}

	for _, ag := range cfg.AdGroups {
		group := newAdGroupRow(EntityAdGroup, name, ag.Name)
		group["Ad Group Default Bid"] = ag.DefaultBid
		rows = append(rows, group)

		for _, sku := range ag.SKUs {
			sku = strings.TrimSpace(sku)
			if sku == "" {
				continue
			}
			ad := newAdGroupRow(EntityProductAd, name, ag.Name)
			ad["SKU"] = sku
			rows = append(rows, ad)
		}

		for _, g := range ag.targeting() {
			if !g.enabled {
				continue
			}
			target := newAdGroupRow(EntityProductTarget, name, ag.Name)
			target[domain.ColKeywordText] = "auto-targeting=" + g.name
			if g.bid != nil && *g.bid > 0 {
				target["Bid"] = *g.bid
			}
			rows = append(rows, target)
		}
	}

	return Sheet{Name: domain.SheetSponsoredProduct, Headers: AutoCampaignHeaders, Rows: rows}, nil
}

func newRow(entity, campaign string) Row {
	return Row{
		"Product":              productSponsored,
		"Entity":               entity,
		"Operation":            domain.OperationCreate,
		domain.ColCampaignID:   campaign,
		domain.ColCampaignName: campaign,
	}
}

func newAdGroupRow(entity, campaign, adGroup string) Row {
	r := newRow(entity, campaign)
	r[domain.ColAdGroupID] = adGroup
	r[domain.ColAdGroupName] = adGroup
	r["State"] = stateEnabledLower
	return r
}
