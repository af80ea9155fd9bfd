package schema

import (
	"strings"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

// PrepareBulk normalizes a raw bulk export under the Bulk profile.
func PrepareBulk(raw *dataset.Table) *dataset.Table {
	return Normalize(raw, Bulk)
}

// CampaignBudgets extracts one budget per campaign row of a normalized bulk
// export. Campaign rows are those whose Record Type is "Campaign"; exports
// without a Record Type column fall back to every row. Rows without a Daily
// Budget are skipped; duplicate campaigns keep their first budget.
func CampaignBudgets(bulk *dataset.Table) []domain.CampaignBudget {
	if bulk == nil {
		return nil
	}
	name := bulk.Index(domain.ColCampaignName)
	budget := bulk.Index(domain.ColDailyBudget)
	if name < 0 || budget < 0 {
		return nil
	}
	id := bulk.Index(domain.ColCampaignID)
	recordType := bulk.Index(domain.ColRecordType)

	seen := make(map[string]bool)
	var out []domain.CampaignBudget
	for i := range bulk.Rows {
		if recordType >= 0 {
			rt, _ := bulk.Cell(i, recordType)
			if !strings.EqualFold(rt, domain.RecordTypeCampaign) {
				continue
			}
		}
		raw, ok := bulk.Cell(i, budget)
		if !ok {
			continue
		}
		campaign, ok := bulk.Cell(i, name)
		if !ok {
			continue
		}
		key := dataset.Key(campaign)
		if seen[key] {
			continue
		}
		seen[key] = true

		b := domain.CampaignBudget{
			CampaignName: campaign,
			DailyBudget:  CleanCurrency(raw),
		}
		if id >= 0 {
			v, _ := bulk.Cell(i, id)
			b.CampaignID = CleanID(v)
		}
		out = append(out, b)
	}
	return out
}

// IsASIN reports whether s looks like a catalog product identifier: ten
// characters beginning with "b0", case-insensitive.
func IsASIN(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return len(v) == 10 && strings.HasPrefix(v, "b0")
}
