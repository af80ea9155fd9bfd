package domain

import (
	"strings"
	"time"
)

// SearchTerm is one canonical row of the performance report: a customer search
// term matched by one targeting expression inside one ad group on one date.
//
// Counts and currency default to zero, names default to UnknownText, and
// percentage-typed metrics stay nil when the source cell could not be parsed.
type SearchTerm struct {
	Index          int        `json:"id"`
	CampaignName   string     `json:"campaign_name"`
	AdGroupName    string     `json:"ad_group_name"`
	Portfolio      string     `json:"portfolio"`
	Targeting      string     `json:"targeting"`
	MatchType      string     `json:"match_type"`
	SearchTerm     string     `json:"customer_search_term"`
	Impressions    int        `json:"impressions"`
	Clicks         int        `json:"clicks"`
	Orders         int        `json:"orders"`
	Units          int        `json:"units"`
	Spend          float64    `json:"spend"`
	Sales          float64    `json:"sales"`
	CPC            float64    `json:"cpc"`
	CTR            *float64   `json:"ctr"`
	ConversionRate *float64   `json:"conversion_rate"`
	ACOS           *float64   `json:"acos"`
	ROAS           *float64   `json:"roas"`
	Date           *time.Time `json:"date,omitempty"`
}

// IsExact reports whether the row was matched by an exact-match target.
func (s SearchTerm) IsExact() bool {
	return strings.EqualFold(strings.TrimSpace(s.MatchType), MatchTypeExact)
}

// PerformanceReport is the cleaned search term report together with the set
// of canonical columns the source file actually carried.
type PerformanceReport struct {
	Rows    []SearchTerm
	columns map[string]bool
}

// NewPerformanceReport wraps rows with the list of columns present in the source.
func NewPerformanceReport(rows []SearchTerm, columns []string) *PerformanceReport {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return &PerformanceReport{Rows: rows, columns: set}
}

// Has reports whether the source carried every named column.
func (p *PerformanceReport) Has(columns ...string) bool {
	if p == nil {
		return false
	}
	for _, c := range columns {
		if !p.columns[c] {
			return false
		}
	}
	return true
}

// Empty reports whether there are no rows to evaluate.
func (p *PerformanceReport) Empty() bool {
	return p == nil || len(p.Rows) == 0
}

// Filter returns a report restricted to rows accepted by keep. Column
// presence is preserved.
func (p *PerformanceReport) Filter(keep func(SearchTerm) bool) *PerformanceReport {
	if p == nil {
		return nil
	}
	out := &PerformanceReport{columns: p.columns}
	for _, r := range p.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// CampaignBudget is the daily budget of one campaign as found in a bulk export.
type CampaignBudget struct {
	CampaignName string  `json:"campaign_name"`
	CampaignID   string  `json:"campaign_id,omitempty"`
	DailyBudget  float64 `json:"daily_budget"`
}
