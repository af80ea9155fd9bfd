package bulksheet

import (
	"fmt"
	"strings"

	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/schema"
)

// Negatives builds one row per target. Search terms that look like product
// identifiers become negative product targets; everything else becomes a
// negative keyword, exact or phrase depending on phrase.
func Negatives(targets []domain.NegativeTarget, phrase bool) Sheet {
	match := MatchNegativeExact
	if phrase {
		match = MatchNegativePhrase
	}

	rows := make([]Row, 0, len(targets))
	for _, t := range targets {
		term := strings.ReplaceAll(t.SearchTerm, "/", " ")
		row := Row{
			"Product":              productSponsored,
			"Operation":            domain.OperationCreate,
			"State":                stateEnabled,
			domain.ColCampaignName: cleanCampaignName(t.CampaignName),
			domain.ColAdGroupName:  t.AdGroupName,
		}
		setIdentity(row, t.Identity)

		if schema.IsASIN(term) {
			row["Entity"] = EntityNegativeProduct
			row[domain.ColProductTargetExpr] = fmt.Sprintf(`asin="%s"`, strings.ToUpper(strings.TrimSpace(term)))
		} else {
			row["Entity"] = EntityNegativeKeyword
			row[domain.ColKeywordText] = term
			row[domain.ColMatchType] = match
		}
		rows = append(rows, row)
	}

	return Sheet{Name: domain.SheetSponsoredProduct, Headers: NegativeHeaders, Rows: rows}
}

// cleanCampaignName strips quote characters wrapped around a campaign name.
func cleanCampaignName(name string) string {
	return strings.Trim(strings.TrimSpace(name), `'"`)
}

func setIdentity(row Row, id domain.Identity) {
	if id.CampaignID != "" {
		row[domain.ColCampaignID] = id.CampaignID
	}
	if id.AdGroupID != "" {
		row[domain.ColAdGroupID] = id.AdGroupID
	}
	if id.PortfolioID != "" {
		row[domain.ColPortfolioID] = id.PortfolioID
	}
}
