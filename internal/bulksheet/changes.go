package bulksheet

import (
	"strings"

	"github.com/ignite/ppc-optimizer/internal/domain"
)

// BidChanges builds one update row per change. Targets that look like product
// identifiers or asin expressions are written as product targets, the rest as
// keywords.
func BidChanges(changes []domain.BidChange) Sheet {
	rows := make([]Row, 0, len(changes))
	for _, c := range changes {
		row := Row{
			domain.ColCampaignName: c.CampaignName,
			domain.ColAdGroupName:  c.AdGroupName,
			domain.ColMatchType:    c.MatchType,
			"Max Bid":              c.SuggestedBid,
			"Operation":            domain.OperationUpdate,
		}
		setIdentity(row, c.Identity)

		if isProductTarget(c.Targeting) {
			row[domain.ColRecordType] = domain.RecordTypeProductTarget
			row["Product Target"] = c.Targeting
		} else {
			row[domain.ColRecordType] = domain.RecordTypeKeyword
			row[domain.ColKeywordText] = c.Targeting
		}
		rows = append(rows, row)
	}
	return Sheet{Name: SheetBidChanges, Headers: BidChangeHeaders, Rows: rows}
}

func isProductTarget(targeting string) bool {
	t := strings.ToLower(strings.TrimSpace(targeting))
	return strings.HasPrefix(t, "b0") || strings.Contains(t, "asin=")
}

// BudgetChanges builds one campaign update row per change.
func BudgetChanges(changes []domain.BudgetChange) Sheet {
	rows := make([]Row, 0, len(changes))
	for _, c := range changes {
		row := Row{
			domain.ColRecordType:   domain.RecordTypeCampaign,
			domain.ColCampaignName: c.CampaignName,
			domain.ColDailyBudget:  c.DailyBudget,
			"Operation":            domain.OperationUpdate,
		}
		if c.CampaignID != "" {
			row[domain.ColCampaignID] = c.CampaignID
		}
		rows = append(rows, row)
	}
	return Sheet{Name: SheetBudgetChanges, Headers: BudgetChangeHeaders, Rows: rows}
}
