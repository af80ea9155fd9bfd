// Package identity attaches campaign, ad group and portfolio identifiers from
// a bulk export onto recommendation records that only know names.
//
// Lookups are rebuilt from the bulk export on every call and owned by the
// caller; nothing here is cached or shared.
package identity

import (
	"fmt"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/schema"
)

// PairKey identifies an ad group by its campaign and ad group names, both in
// join key form.
type PairKey struct {
	Campaign string
	AdGroup  string
}

// Lookups are the name-to-identifier tables of one bulk export.
type Lookups struct {
	CampaignIDs  map[string]string
	PortfolioIDs map[string]string
	AdGroupIDs   map[PairKey]string
}

func newLookups() *Lookups {
	return &Lookups{
		CampaignIDs:  make(map[string]string),
		PortfolioIDs: make(map[string]string),
		AdGroupIDs:   make(map[PairKey]string),
	}
}

// Len is the total number of entries across all tables.
func (l *Lookups) Len() int {
	if l == nil {
		return 0
	}
	return len(l.CampaignIDs) + len(l.PortfolioIDs) + len(l.AdGroupIDs)
}

type nameColumns struct {
	campaign int
	adGroup  int
}

// BuildLookups scans a bulk export for identifiers. The export may be raw or
// already normalized; it is normalized under the bulk profile either way.
//
// Primary name columns are read first. The informational-only name columns
// are read second and only fill keys the primary pass left empty. Within a
// pass the first non-null mapping for a key wins.
func BuildLookups(bulk *dataset.Table) (*Lookups, error) {
	if bulk == nil {
		return nil, fmt.Errorf("identity: no bulk export")
	}
	if err := bulk.Check(); err != nil {
		return nil, fmt.Errorf("identity: malformed bulk export: %w", err)
	}
	t := schema.PrepareBulk(bulk)

	campaignID := t.Index(domain.ColCampaignID)
	portfolioID := t.Index(domain.ColPortfolioID)
	adGroupID := adGroupIDColumn(t)

	passes := []nameColumns{
		{campaign: t.Index(domain.ColCampaignName), adGroup: t.Index(domain.ColAdGroupName)},
		{campaign: t.IndexFold(domain.ColCampaignNameInfo), adGroup: t.IndexFold(domain.ColAdGroupNameInfo)},
	}

	l := newLookups()
	for _, p := range passes {
		pass := newLookups()
		pass.scan(t, p, campaignID, portfolioID, adGroupID)
		l.fill(pass)
	}
	return l, nil
}

// adGroupIDColumn resolves which column holds ad group identifiers. "Ad Group"
// only qualifies when a separate "Ad Group Name" column carries the names.
func adGroupIDColumn(t *dataset.Table) int {
	if i := t.Index(domain.ColAdGroupID); i >= 0 {
		return i
	}
	if t.Has(domain.ColAdGroupName) {
		return t.Index(domain.ColAdGroup)
	}
	return -1
}

func (l *Lookups) scan(t *dataset.Table, names nameColumns, campaignID, portfolioID, adGroupID int) {
	for i := range t.Rows {
		campaign, ok := t.Cell(i, names.campaign)
		if !ok {
			continue
		}
		ck := dataset.Key(campaign)

		if id := cleanCell(t, i, campaignID); id != "" {
			setOnce(l.CampaignIDs, ck, id)
			if pid := cleanCell(t, i, portfolioID); pid != "" {
				setOnce(l.PortfolioIDs, ck, pid)
			}
		}

		adGroup, ok := t.Cell(i, names.adGroup)
		if !ok {
			continue
		}
		if id := cleanCell(t, i, adGroupID); id != "" {
			setOnce(l.AdGroupIDs, PairKey{Campaign: ck, AdGroup: dataset.Key(adGroup)}, id)
		}
	}
}

// fill copies entries from other for keys l does not have yet.
func (l *Lookups) fill(other *Lookups) {
	for k, v := range other.CampaignIDs {
		setOnce(l.CampaignIDs, k, v)
	}
	for k, v := range other.PortfolioIDs {
		setOnce(l.PortfolioIDs, k, v)
	}
	for k, v := range other.AdGroupIDs {
		setOnce(l.AdGroupIDs, k, v)
	}
}

func cleanCell(t *dataset.Table, row, col int) string {
	v, ok := t.Cell(row, col)
	if !ok {
		return ""
	}
	return schema.CleanID(v)
}

func setOnce[K comparable](m map[K]string, k K, v string) {
	if _, ok := m[k]; !ok {
		m[k] = v
	}
}

// Apply attaches identifiers to one record and reports whether it received an
// ad group ID. Fields without a match are left as they were.
func (l *Lookups) Apply(r domain.Attributable) bool {
	if l == nil || r == nil {
		return false
	}
	id, matched := l.resolve(r)
	*r.IdentitySlot() = id
	return matched
}

// resolve returns r's identity with every matching identifier filled in,
// without writing it back.
func (l *Lookups) resolve(r domain.Attributable) (domain.Identity, bool) {
	campaign, adGroup := r.Attribution()
	ck := dataset.Key(campaign)
	out := *r.IdentitySlot()

	if id, ok := l.CampaignIDs[ck]; ok {
		out.CampaignID = id
	}
	if id, ok := l.PortfolioIDs[ck]; ok {
		out.PortfolioID = id
	}
	if id, ok := l.AdGroupIDs[PairKey{Campaign: ck, AdGroup: dataset.Key(adGroup)}]; ok {
		out.AdGroupID = id
		return out, true
	}
	return out, false
}

// Enrich builds lookups from bulk and applies them to every record, returning
// how many records received an ad group ID. Enrichment never fails the
// caller: a bulk export that cannot be read, or a record that cannot be
// resolved, is logged and yields zero with every record untouched. Identities
// are resolved for all records before any is written.
func Enrich[R domain.Attributable](records []R, bulk *dataset.Table) (count int) {
	if len(records) == 0 || bulk.Empty() {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("identity enrichment panicked", "panic", r)
			count = 0
		}
	}()

	l, err := BuildLookups(bulk)
	if err != nil {
		logger.Warn("identity enrichment skipped", "error", err, "records", len(records))
		return 0
	}

	staged := make([]domain.Identity, len(records))
	for i, r := range records {
		id, matched := l.resolve(r)
		staged[i] = id
		if matched {
			count++
		}
	}
	for i, r := range records {
		*r.IdentitySlot() = staged[i]
	}
	logger.Debug("identity enrichment", "records", len(records), "ad_group_matches", count)
	return count
}

// Refs returns pointers into s so enrichment writes land in the caller's slice.
func Refs[T any](s []T) []*T {
	out := make([]*T, len(s))
	for i := range s {
		out[i] = &s[i]
	}
	return out
}
