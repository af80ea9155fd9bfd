package schema

import (
	"strings"
	"time"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate accepts the date renderings seen in report exports. It returns
// nil when none match.
func ParseDate(raw string) *time.Time {
	v := strings.TrimSpace(raw)
	if dataset.IsNull(v) {
		return nil
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return &d
		}
	}
	return nil
}

// ParsePerformance normalizes a raw search term report under the Performance
// profile and converts every row into a canonical SearchTerm. It never fails:
// unparseable cells take their documented defaults.
func ParsePerformance(raw *dataset.Table) *domain.PerformanceReport {
	t := Normalize(raw, Performance)
	if t == nil {
		return domain.NewPerformanceReport(nil, nil)
	}

	idx := func(col string) int { return t.Index(col) }
	text := func(row, col int) string {
		if v, ok := t.Cell(row, col); ok {
			return v
		}
		return domain.UnknownText
	}
	cell := func(row, col int) string {
		v, _ := t.Cell(row, col)
		return v
	}

	var (
		campaign    = idx(domain.ColCampaignName)
		adGroup     = idx(domain.ColAdGroupName)
		portfolio   = idx(domain.ColPortfolio)
		targeting   = idx(domain.ColTargeting)
		matchType   = idx(domain.ColMatchType)
		searchTerm  = idx(domain.ColSearchTerm)
		impressions = idx(domain.ColImpressions)
		clicks      = idx(domain.ColClicks)
		spend       = idx(domain.ColSpend)
		sales       = idx(domain.ColSales)
		orders      = idx(domain.ColOrders)
		units       = idx(domain.ColUnits)
		cpc         = idx(domain.ColCPC)
		ctr         = idx(domain.ColCTR)
		cvr         = idx(domain.ColConversionRate)
		acos        = idx(domain.ColACOS)
		roas        = idx(domain.ColROAS)
		date        = idx(domain.ColDate)
	)

	rows := make([]domain.SearchTerm, 0, t.Len())
	for i := range t.Rows {
		r := domain.SearchTerm{
			Index:        i,
			CampaignName: text(i, campaign),
			AdGroupName:  text(i, adGroup),
			Portfolio:    text(i, portfolio),
			Targeting:    text(i, targeting),
			MatchType:    text(i, matchType),
			SearchTerm:   text(i, searchTerm),
			Impressions:  CleanInteger(cell(i, impressions)),
			Clicks:       CleanInteger(cell(i, clicks)),
			Orders:       CleanInteger(cell(i, orders)),
			Units:        CleanInteger(cell(i, units)),
			Spend:        CleanCurrency(cell(i, spend)),
			Sales:        CleanCurrency(cell(i, sales)),
		}

		if cpc >= 0 {
			r.CPC = CleanCurrency(cell(i, cpc))
		} else if r.Clicks > 0 {
			r.CPC = r.Spend / float64(r.Clicks)
		}
		r.CTR = percentOrDerived(t, i, ctr, float64(r.Clicks), float64(r.Impressions), 100)
		r.ConversionRate = percentOrDerived(t, i, cvr, float64(r.Orders), float64(r.Clicks), 100)
		r.ACOS = percentOrDerived(t, i, acos, r.Spend, r.Sales, 100)
		r.ROAS = percentOrDerived(t, i, roas, r.Sales, r.Spend, 1)
		if date >= 0 {
			r.Date = ParseDate(cell(i, date))
		}
		rows = append(rows, r)
	}

	columns := append([]string(nil), t.Columns...)
	for _, derived := range []struct {
		col string
		at  int
	}{
		{domain.ColCPC, cpc},
		{domain.ColCTR, ctr},
		{domain.ColConversionRate, cvr},
		{domain.ColACOS, acos},
		{domain.ColROAS, roas},
	} {
		if derived.at < 0 {
			columns = append(columns, derived.col)
		}
	}
	return domain.NewPerformanceReport(rows, columns)
}

// percentOrDerived reads a ratio column when the report has one. When the
// column is absent the value is derived from counts, nil on a zero
// denominator.
func percentOrDerived(t *dataset.Table, row, col int, num, den, scale float64) *float64 {
	if col >= 0 {
		v, _ := t.Cell(row, col)
		return CleanPercentage(v)
	}
	if den <= 0 {
		return nil
	}
	v := num / den * scale
	return &v
}
