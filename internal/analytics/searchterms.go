package analytics

import (
	"sort"
	"strings"

	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/schema"
)

// Rules that flag a search term for negation.
const (
	RuleNoSales  = "No Sales"
	RulePoorROAS = "Poor ROAS"

	NegativeExact   = "Negative Exact"
	NegativePhrase  = "Negative Phrase"
	NegativeProduct = "Negative Product Targeting"
)

// Config drives AnalyzeSearchTerms.
type Config struct {
	TargetACOS        float64  `json:"target_acos" yaml:"target_acos"`
	MinSpend          float64  `json:"min_spend" yaml:"min_spend"`
	MaxSales          float64  `json:"max_sales" yaml:"max_sales"`
	UseNegativePhrase bool     `json:"use_negative_phrase" yaml:"use_negative_phrase"`
	ExcludeBranded    bool     `json:"exclude_branded" yaml:"exclude_branded"`
	BrandedTerms      []string `json:"branded_terms" yaml:"branded_terms"`
	IncludePoorROAS   bool     `json:"include_poor_roas" yaml:"include_poor_roas"`
}

// DefaultConfig flags terms that spent at least 10 without a sale.
func DefaultConfig() Config {
	return Config{TargetACOS: 30, MinSpend: 10}
}

// SearchTermResult is a flagged search term ready to be reviewed and negated.
type SearchTermResult struct {
	domain.Identity
	ID                int     `json:"id"`
	Date              *string `json:"date"`
	CampaignName      string  `json:"campaign_name"`
	AdGroupName       string  `json:"ad_group_name"`
	Portfolio         *string `json:"portfolio"`
	Targeting         string  `json:"targeting"`
	MatchType         string  `json:"match_type"`
	SearchTerm        string  `json:"customer_search_term"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Spend             float64 `json:"spend"`
	Sales             float64 `json:"sales"`
	ACOS              float64 `json:"acos"`
	Orders            int     `json:"orders"`
	RuleTriggered     string  `json:"rule_triggered"`
	IsASIN            bool    `json:"is_asin"`
	NegativeMatchType string  `json:"negative_match_type"`
	Selected          bool    `json:"selected"`
}

func (s *SearchTermResult) Attribution() (string, string) { return s.CampaignName, s.AdGroupName }
func (s *SearchTermResult) IdentitySlot() *domain.Identity { return &s.Identity }

// Negative turns the result into a negative target.
func (s SearchTermResult) Negative() domain.NegativeTarget {
	return domain.NegativeTarget{
		Identity:     s.Identity,
		SearchTerm:   s.SearchTerm,
		CampaignName: s.CampaignName,
		AdGroupName:  s.AdGroupName,
	}
}

// Analysis is the outcome of AnalyzeSearchTerms with its counts.
type Analysis struct {
	TotalFlagged     int                `json:"total_flagged"`
	NegativeKeywords int                `json:"negative_keywords"`
	NegativeASINs    int                `json:"negative_asins"`
	Results          []SearchTermResult `json:"results"`
}

// AnalyzeSearchTerms flags search terms that spent at least MinSpend while
// selling no more than MaxSales. With IncludePoorROAS, terms that sold more
// but ran above TargetACOS are flagged too. Terms containing a branded term
// are skipped when ExcludeBranded is set. Results are ordered by spend,
// highest first, and start out selected.
func AnalyzeSearchTerms(report *domain.PerformanceReport, cfg Config) Analysis {
	a := Analysis{Results: []SearchTermResult{}}
	if report.Empty() {
		return a
	}
	branded := brandedTerms(cfg)

	for _, r := range report.Rows {
		rule := flag(r, cfg)
		if rule == "" || isBranded(r.SearchTerm, branded) {
			continue
		}

		res := SearchTermResult{
			ID:            r.Index,
			CampaignName:  r.CampaignName,
			AdGroupName:   r.AdGroupName,
			Targeting:     r.Targeting,
			MatchType:     r.MatchType,
			SearchTerm:    r.SearchTerm,
			Impressions:   r.Impressions,
			Clicks:        r.Clicks,
			Spend:         r.Spend,
			Sales:         r.Sales,
			ACOS:          acosOf(r),
			Orders:        r.Orders,
			RuleTriggered: rule,
			IsASIN:        schema.IsASIN(r.SearchTerm),
			Selected:      true,
		}
		if r.Date != nil {
			d := r.Date.Format("2006-01-02")
			res.Date = &d
		}
		if r.Portfolio != domain.UnknownText {
			p := r.Portfolio
			res.Portfolio = &p
		}
		switch {
		case res.IsASIN:
			res.NegativeMatchType = NegativeProduct
			a.NegativeASINs++
		case cfg.UseNegativePhrase:
			res.NegativeMatchType = NegativePhrase
			a.NegativeKeywords++
		default:
			res.NegativeMatchType = NegativeExact
			a.NegativeKeywords++
		}
		a.Results = append(a.Results, res)
	}

	sort.SliceStable(a.Results, func(i, j int) bool { return a.Results[i].Spend > a.Results[j].Spend })
	a.TotalFlagged = len(a.Results)
	return a
}

func flag(r domain.SearchTerm, cfg Config) string {
	if r.Spend >= cfg.MinSpend && r.Sales <= cfg.MaxSales {
		return RuleNoSales
	}
	if cfg.IncludePoorROAS && r.Sales > cfg.MaxSales && acosOf(r) > cfg.TargetACOS {
		return RulePoorROAS
	}
	return ""
}

// acosOf prefers the reported ACOS and falls back to spend over sales.
func acosOf(r domain.SearchTerm) float64 {
	if r.ACOS != nil {
		return *r.ACOS
	}
	if r.Sales > 0 {
		return r.Spend / r.Sales * 100
	}
	return 0
}

func brandedTerms(cfg Config) []string {
	if !cfg.ExcludeBranded {
		return nil
	}
	var out []string
	for _, t := range cfg.BrandedTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isBranded(term string, branded []string) bool {
	lower := strings.ToLower(term)
	for _, b := range branded {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}

// Select returns the results whose IDs are listed, in result order. A nil ids
// slice selects the results already marked Selected.
func Select(results []SearchTermResult, ids []int) []SearchTermResult {
	out := []SearchTermResult{}
	if ids == nil {
		for _, r := range results {
			if r.Selected {
				out = append(out, r)
			}
		}
		return out
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, r := range results {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
