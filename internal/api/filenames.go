package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/osteele/liquid"

	"github.com/ignite/ppc-optimizer/internal/config"
)

const maxSafeNameLen = 50

// Filenames renders download names from the configured liquid templates.
// Templates are parsed once; rendering is safe for concurrent use.
type Filenames struct {
	negatives    *liquid.Template
	autoCampaign *liquid.Template
	bidChanges   *liquid.Template
	budgetChange *liquid.Template
	now          func() time.Time
}

// NewFilenames parses every export template in cfg.
func NewFilenames(cfg config.ExportsConfig) (*Filenames, error) {
	engine := liquid.NewEngine()
	f := &Filenames{now: time.Now}

	for _, t := range []struct {
		name string
		src  string
		dst  **liquid.Template
	}{
		{"negatives_filename", cfg.NegativesFilename, &f.negatives},
		{"auto_campaign_filename", cfg.AutoCampaignFilename, &f.autoCampaign},
		{"bid_changes_filename", cfg.BidChangesFilename, &f.bidChanges},
		{"budget_changes_filename", cfg.BudgetChangeFilename, &f.budgetChange},
	} {
		tpl, err := engine.ParseString(t.src)
		if err != nil {
			return nil, fmt.Errorf("exports.%s: %w", t.name, err)
		}
		*t.dst = tpl
	}
	return f, nil
}

func (f *Filenames) render(tpl *liquid.Template, extra map[string]interface{}) (string, error) {
	ctx := map[string]interface{}{
		"date": f.now().Format("20060102"),
	}
	for k, v := range extra {
		ctx[k] = v
	}
	out, err := tpl.RenderString(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Negatives names a negative keyword upload.
func (f *Filenames) Negatives() (string, error) {
	return f.render(f.negatives, nil)
}

// AutoCampaign names a new auto campaign upload.
func (f *Filenames) AutoCampaign(campaign string) (string, error) {
	return f.render(f.autoCampaign, map[string]interface{}{"campaign": safeName(campaign)})
}

// BidChanges names a bid update upload.
func (f *Filenames) BidChanges() (string, error) {
	return f.render(f.bidChanges, nil)
}

// BudgetChanges names a budget update upload.
func (f *Filenames) BudgetChanges() (string, error) {
	return f.render(f.budgetChange, nil)
}

// safeName replaces spaces and slashes with underscores and keeps the first
// 50 characters.
func safeName(name string) string {
	name = strings.NewReplacer(" ", "_", "/", "_").Replace(name)
	if r := []rune(name); len(r) > maxSafeNameLen {
		name = string(r[:maxSafeNameLen])
	}
	return name
}
