package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/ignite/ppc-optimizer/internal/domain"
)

const (
	DefaultPageSize = 50
	MinPageSize     = 10
	MaxPageSize     = 200
)

// PageQuery selects one page of report rows.
type PageQuery struct {
	Page      int
	PageSize  int
	Campaign  string
	AdGroup   string
	SortBy    string
	SortOrder string
}

// normalize clamps the page to at least 1 and the size into range.
func (q PageQuery) normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PageSize == 0:
		q.PageSize = DefaultPageSize
	case q.PageSize < MinPageSize:
		q.PageSize = MinPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	return q
}

// PageResult is one page of rows with pagination metadata.
type PageResult struct {
	Data       []domain.SearchTerm `json:"data"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

type sortKey func(a, b domain.SearchTerm) bool

func byFloat(f func(domain.SearchTerm) float64) sortKey {
	return func(a, b domain.SearchTerm) bool { return f(a) < f(b) }
}

func byText(f func(domain.SearchTerm) string) sortKey {
	return func(a, b domain.SearchTerm) bool { return f(a) < f(b) }
}

func deref(p *float64) float64 {
	if p == nil {
		return math.Inf(-1)
	}
	return *p
}

// sortKeys accepts both the canonical column name and its JSON field name,
// compared case-insensitively.
var sortKeys = map[string]sortKey{
	"campaign_name":        byText(func(r domain.SearchTerm) string { return r.CampaignName }),
	"ad_group_name":        byText(func(r domain.SearchTerm) string { return r.AdGroupName }),
	"portfolio":            byText(func(r domain.SearchTerm) string { return r.Portfolio }),
	"targeting":            byText(func(r domain.SearchTerm) string { return r.Targeting }),
	"match_type":           byText(func(r domain.SearchTerm) string { return r.MatchType }),
	"customer_search_term": byText(func(r domain.SearchTerm) string { return r.SearchTerm }),
	"impressions":          byFloat(func(r domain.SearchTerm) float64 { return float64(r.Impressions) }),
	"clicks":               byFloat(func(r domain.SearchTerm) float64 { return float64(r.Clicks) }),
	"orders":               byFloat(func(r domain.SearchTerm) float64 { return float64(r.Orders) }),
	"units":                byFloat(func(r domain.SearchTerm) float64 { return float64(r.Units) }),
	"spend":                byFloat(func(r domain.SearchTerm) float64 { return r.Spend }),
	"sales":                byFloat(func(r domain.SearchTerm) float64 { return r.Sales }),
	"cpc":                  byFloat(func(r domain.SearchTerm) float64 { return r.CPC }),
	"ctr":                  byFloat(func(r domain.SearchTerm) float64 { return deref(r.CTR) }),
	"conversion_rate":      byFloat(func(r domain.SearchTerm) float64 { return deref(r.ConversionRate) }),
	"acos":                 byFloat(func(r domain.SearchTerm) float64 { return deref(r.ACOS) }),
	"roas":                 byFloat(func(r domain.SearchTerm) float64 { return deref(r.ROAS) }),
	"date": func(a, b domain.SearchTerm) bool {
		if a.Date == nil || b.Date == nil {
			return a.Date == nil && b.Date != nil
		}
		return a.Date.Before(*b.Date)
	},
}

func lookupSortKey(name string) (sortKey, bool) {
	k := strings.ToLower(strings.TrimSpace(name))
	if k == "" {
		return nil, false
	}
	if fn, ok := sortKeys[k]; ok {
		return fn, true
	}
	fn, ok := sortKeys[strings.ReplaceAll(k, " ", "_")]
	if !ok && k == strings.ToLower(domain.ColSearchTerm) {
		fn, ok = sortKeys["customer_search_term"]
	}
	return fn, ok
}

// Page filters the report by campaign and ad group, sorts by SortBy when it
// names a known column, and slices out the requested page. Unknown sort keys
// keep report order.
func Page(report *domain.PerformanceReport, q PageQuery) PageResult {
	q = q.normalize()
	rep := Filter{Campaign: q.Campaign, AdGroup: q.AdGroup}.Apply(report)

	var rows []domain.SearchTerm
	if rep != nil {
		rows = append(rows, rep.Rows...)
	}
	if less, ok := lookupSortKey(q.SortBy); ok {
		desc := strings.EqualFold(q.SortOrder, "desc")
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return less(rows[j], rows[i])
			}
			return less(rows[i], rows[j])
		})
	}

	total := len(rows)
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return PageResult{
		Data:       append([]domain.SearchTerm{}, rows[start:end]...),
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + q.PageSize - 1) / q.PageSize,
	}
}
