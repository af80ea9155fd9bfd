// Package analytics aggregates a search term report for dashboards: headline
// KPIs, per-campaign and per-month rollups, filter options, paginated browsing,
// and the configurable negative-candidate analysis.
package analytics

import (
	"sort"
	"time"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

// Filter narrows a report before aggregation. Zero fields do not filter.
// Rows without a date never pass a date bound.
type Filter struct {
	Campaign  string
	AdGroup   string
	StartDate *time.Time
	EndDate   *time.Time
}

// Apply returns the rows of report accepted by f.
func (f Filter) Apply(report *domain.PerformanceReport) *domain.PerformanceReport {
	if f == (Filter{}) {
		return report
	}
	return report.Filter(func(r domain.SearchTerm) bool {
		if f.Campaign != "" && r.CampaignName != f.Campaign {
			return false
		}
		if f.AdGroup != "" && r.AdGroupName != f.AdGroup {
			return false
		}
		if f.StartDate != nil && (r.Date == nil || r.Date.Before(*f.StartDate)) {
			return false
		}
		if f.EndDate != nil && (r.Date == nil || r.Date.After(*f.EndDate)) {
			return false
		}
		return true
	})
}

// KPIData is the headline summary of a report.
type KPIData struct {
	TotalSales     float64 `json:"total_sales"`
	AdSpend        float64 `json:"ad_spend"`
	ROAS           float64 `json:"roas"`
	ACOS           float64 `json:"acos"`
	Orders         int     `json:"orders"`
	Impressions    int     `json:"impressions"`
	Clicks         int     `json:"clicks"`
	CTR            float64 `json:"ctr"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgCPC         float64 `json:"avg_cpc"`
}

type totals struct {
	impressions, clicks, orders int
	spend, sales                float64
}

func (t *totals) add(r domain.SearchTerm) {
	t.impressions += r.Impressions
	t.clicks += r.Clicks
	t.orders += r.Orders
	t.spend += r.Spend
	t.sales += r.Sales
}

func ratio(num, den, scale float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * scale
}

func (t totals) acos() float64 { return ratio(t.spend, t.sales, 100) }
func (t totals) roas() float64 { return ratio(t.sales, t.spend, 1) }

// KPIs sums the filtered report. Ratios are zero when their denominator is.
func KPIs(report *domain.PerformanceReport, f Filter) KPIData {
	var t totals
	if rep := f.Apply(report); rep != nil {
		for _, r := range rep.Rows {
			t.add(r)
		}
	}
	return KPIData{
		TotalSales:     t.sales,
		AdSpend:        t.spend,
		ROAS:           t.roas(),
		ACOS:           t.acos(),
		Orders:         t.orders,
		Impressions:    t.impressions,
		Clicks:         t.clicks,
		CTR:            ratio(float64(t.clicks), float64(t.impressions), 100),
		ConversionRate: ratio(float64(t.orders), float64(t.clicks), 100),
		AvgCPC:         ratio(t.spend, float64(t.clicks), 1),
	}
}

// CampaignMetric is one campaign's rollup.
type CampaignMetric struct {
	CampaignName string  `json:"campaign_name"`
	Portfolio    *string `json:"portfolio"`
	Impressions  int     `json:"impressions"`
	Clicks       int     `json:"clicks"`
	Spend        float64 `json:"spend"`
	Sales        float64 `json:"sales"`
	Orders       int     `json:"orders"`
	ACOS         float64 `json:"acos"`
	ROAS         float64 `json:"roas"`
}

// CampaignMetrics rolls the filtered report up by campaign, highest spend first.
func CampaignMetrics(report *domain.PerformanceReport, f Filter) []CampaignMetric {
	rep := f.Apply(report)
	if rep.Empty() {
		return []CampaignMetric{}
	}

	byName := make(map[string]*totals)
	portfolios := make(map[string]string)
	var order []string
	for _, r := range rep.Rows {
		t, ok := byName[r.CampaignName]
		if !ok {
			t = &totals{}
			byName[r.CampaignName] = t
			order = append(order, r.CampaignName)
		}
		t.add(r)
		if _, ok := portfolios[r.CampaignName]; !ok && r.Portfolio != domain.UnknownText {
			portfolios[r.CampaignName] = r.Portfolio
		}
	}

	out := make([]CampaignMetric, 0, len(order))
	for _, name := range order {
		t := byName[name]
		m := CampaignMetric{
			CampaignName: name,
			Impressions:  t.impressions,
			Clicks:       t.clicks,
			Spend:        t.spend,
			Sales:        t.sales,
			Orders:       t.orders,
			ACOS:         t.acos(),
			ROAS:         t.roas(),
		}
		if p, ok := portfolios[name]; ok {
			m.Portfolio = &p
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	return out
}

// MonthlyPoint is one month of sales and spend.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
	Spend float64 `json:"spend"`
}

// Monthly buckets dated rows by calendar month, oldest first. Undated rows
// are ignored.
func Monthly(report *domain.PerformanceReport, f Filter) []MonthlyPoint {
	rep := f.Apply(report)
	out := []MonthlyPoint{}
	if rep.Empty() {
		return out
	}

	byMonth := make(map[string]*MonthlyPoint)
	for _, r := range rep.Rows {
		if r.Date == nil {
			continue
		}
		key := r.Date.Format("2006-01")
		p, ok := byMonth[key]
		if !ok {
			p = &MonthlyPoint{Month: key}
			byMonth[key] = p
		}
		p.Sales += r.Sales
		p.Spend += r.Spend
	}
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// DateRange is the earliest and latest row date as YYYY-MM-DD, nil when the
// report has no dates.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// FilterOptions lists the values a dashboard can filter on.
type FilterOptions struct {
	Campaigns  []string  `json:"campaigns"`
	AdGroups   []string  `json:"ad_groups"`
	Portfolios []string  `json:"portfolios"`
	DateRange  DateRange `json:"date_range"`
}

// Filters collects distinct campaign, ad group and portfolio names in order of
// first appearance, plus the date range.
func Filters(report *domain.PerformanceReport) FilterOptions {
	opts := FilterOptions{Campaigns: []string{}, AdGroups: []string{}, Portfolios: []string{}}
	if report.Empty() {
		return opts
	}
	opts.Campaigns = distinct(report, func(r domain.SearchTerm) string { return r.CampaignName })
	opts.AdGroups = distinct(report, func(r domain.SearchTerm) string { return r.AdGroupName })
	opts.Portfolios = distinct(report, func(r domain.SearchTerm) string { return r.Portfolio })
	opts.DateRange = Dates(report)
	return opts
}

// Dates returns the report's date range.
func Dates(report *domain.PerformanceReport) DateRange {
	var lo, hi *time.Time
	if report != nil {
		for _, r := range report.Rows {
			if r.Date == nil {
				continue
			}
			if lo == nil || r.Date.Before(*lo) {
				lo = r.Date
			}
			if hi == nil || r.Date.After(*hi) {
				hi = r.Date
			}
		}
	}
	var dr DateRange
	if lo != nil {
		s, e := lo.Format("2006-01-02"), hi.Format("2006-01-02")
		dr.Start, dr.End = &s, &e
	}
	return dr
}

func distinct(report *domain.PerformanceReport, field func(domain.SearchTerm) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range report.Rows {
		v := field(r)
		if v == domain.UnknownText || seen[dataset.Key(v)] {
			continue
		}
		seen[dataset.Key(v)] = true
		out = append(out, v)
	}
	return out
}
