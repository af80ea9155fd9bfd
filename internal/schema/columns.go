// Package schema maps the headers of search term reports and bulk exports onto
// one canonical column vocabulary and turns raw cells into typed values.
//
// The two file kinds disagree about a single header: in a search term report
// "Ad Group" is the ad group's display name, in a bulk export it is the ad
// group's identifier. Normalization is therefore profile based; both profiles
// share aliasBase and differ only in how that header is routed.
package schema

import (
	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

// aliasBase maps lower-cased, trimmed header aliases to canonical headers.
// The bare "ad group" header is deliberately absent.
var aliasBase = map[string]string{
	// Sales
	"7 day total sales":     domain.ColSales,
	"7 day total sales ($)": domain.ColSales,
	"total sales":           domain.ColSales,
	"sales":                 domain.ColSales,

	// ACOS
	"total advertising cost of sales (acos)": domain.ColACOS,
	"acos":                                   domain.ColACOS,
	"advertising cost of sales":              domain.ColACOS,

	// ROAS
	"total return on advertising spend (roas)": domain.ColROAS,
	"roas":                                     domain.ColROAS,
	"return on advertising spend":              domain.ColROAS,

	// Orders and units
	"7 day total orders (#)": domain.ColOrders,
	"7 day total orders":     domain.ColOrders,
	"orders":                 domain.ColOrders,
	"7 day total units (#)":  domain.ColUnits,
	"7 day total units":      domain.ColUnits,
	"units":                  domain.ColUnits,

	// Ratios
	"7 day conversion rate": domain.ColConversionRate,
	"conversion rate":       domain.ColConversionRate,
	"cost per click (cpc)":  domain.ColCPC,
	"cpc":                   domain.ColCPC,
	"average cpc":           domain.ColCPC,
	"click-thru rate (ctr)": domain.ColCTR,
	"click-through rate":    domain.ColCTR,
	"ctr":                   domain.ColCTR,

	// Portfolio
	"portfolio name": domain.ColPortfolio,
	"portfolio":      domain.ColPortfolio,
	"portfolio id":   domain.ColPortfolioID,

	// Structure and identifiers
	"campaign name":                domain.ColCampaignName,
	"campaign":                     domain.ColCampaignName,
	"ad group name":                domain.ColAdGroupName,
	"campaign id":                  domain.ColCampaignID,
	"ad group id":                  domain.ColAdGroupID,
	"keyword text":                 domain.ColKeywordText,
	"match type":                   domain.ColMatchType,
	"record type":                  domain.ColRecordType,
	"product targeting expression": domain.ColProductTargetExpr,
	"daily budget":                 domain.ColDailyBudget,
	"campaign daily budget":        domain.ColDailyBudget,

	// Report basics, canonicalized so casing differences do not break lookups
	"targeting":            domain.ColTargeting,
	"customer search term": domain.ColSearchTerm,
	"impressions":          domain.ColImpressions,
	"clicks":               domain.ColClicks,
	"spend":                domain.ColSpend,
	"date":                 domain.ColDate,
}

const adGroupAlias = "ad group"

// Profile selects how ambiguous headers are routed.
type Profile int

const (
	// Performance is the search term report profile.
	Performance Profile = iota
	// Bulk is the bulk operations export profile.
	Bulk
)

func (p Profile) String() string {
	switch p {
	case Performance:
		return "performance"
	case Bulk:
		return "bulk"
	default:
		return "unknown"
	}
}

// Canonical returns the canonical header for one raw header under the alias
// base, or the header unchanged when no alias matches.
func Canonical(header string) string {
	if c, ok := aliasBase[dataset.Key(header)]; ok {
		return c
	}
	return header
}

// Normalize returns a copy of t with its headers canonicalized under the
// given profile. Unknown headers are kept as they are.
func Normalize(t *dataset.Table, p Profile) *dataset.Table {
	if t == nil {
		return nil
	}
	out := t.Rename(Canonical)

	switch p {
	case Performance:
		if out.Has(domain.ColAdGroupName) {
			break
		}
		if i := out.IndexFold(adGroupAlias); i >= 0 {
			out.Columns[i] = domain.ColAdGroupName
		}
	case Bulk:
		for i, c := range out.Columns {
			if dataset.Key(c) == adGroupAlias {
				out.Columns[i] = domain.ColAdGroup
			}
		}
		if !out.Has(domain.ColRecordType) {
			if i := out.IndexFold(domain.ColEntity); i >= 0 {
				out.Columns[i] = domain.ColRecordType
			}
		}
	}
	return out
}
