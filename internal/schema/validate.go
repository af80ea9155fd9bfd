package schema

import (
	"strings"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

// RequiredColumns must be present in a search term report.
var RequiredColumns = []string{
	domain.ColCampaignName,
	domain.ColAdGroupName,
	domain.ColTargeting,
	domain.ColMatchType,
	domain.ColSearchTerm,
	domain.ColImpressions,
	domain.ColClicks,
	domain.ColSpend,
}

// Validate reports whether t carries every required report column, and which
// ones are missing, in RequiredColumns order. The check runs on the headers as
// normalized under the Performance profile, so aliases such as "Campaign" or
// "Ad Group" satisfy their canonical column. Remaining headers are compared
// without regard to case or surrounding space.
func Validate(t *dataset.Table) (bool, []string) {
	present := make(map[string]bool)
	if n := Normalize(t, Performance); n != nil {
		for _, c := range n.Columns {
			present[dataset.Key(c)] = true
		}
	}

	missing := []string{}
	for _, req := range RequiredColumns {
		key := strings.ToLower(req)
		if req == domain.ColAdGroupName && present[adGroupAlias] {
			continue
		}
		if !present[key] {
			missing = append(missing, req)
		}
	}
	return len(missing) == 0, missing
}
