// Command ppcctl runs the PPC analysis offline against local files or s3://
// objects: it prints the decision center and writes bulk upload sheets.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignite/ppc-optimizer/internal/config"
	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
	"github.com/ignite/ppc-optimizer/internal/optimizer"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/report"
	"github.com/ignite/ppc-optimizer/internal/schema"
)

// options holds the flags shared by every command.
type options struct {
	configFile string
	reportPath string
	bulkPath   string

	targetACOS float64
	minSpend   float64
	minClicks  int
	minOrders  int
	phrase     bool

	cfg    *config.Config
	source *report.Source
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "ppcctl",
		Short:        "Analyze search term reports and build bulk uploads",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (YAML)")
	pf.StringVar(&opts.reportPath, "report", "", "search term report: local path or s3://bucket/key")
	pf.StringVar(&opts.bulkPath, "bulk", "", "bulk export used for identifiers and budgets")
	pf.Float64Var(&opts.targetACOS, "target-acos", 0, "target ACOS in percent")
	pf.Float64Var(&opts.minSpend, "min-spend", 0, "minimum spend for bleeding terms")
	pf.IntVar(&opts.minClicks, "min-clicks", 0, "minimum clicks for bleeding terms")
	pf.IntVar(&opts.minOrders, "min-orders", 0, "minimum orders for scale opportunities")
	pf.BoolVar(&opts.phrase, "phrase", false, "write negative phrase instead of negative exact")

	root.AddCommand(newAnalyzeCmd(opts), newSearchTermsCmd(opts), newExportCmd(opts))
	return root
}

// load reads configuration and applies flag overrides to the thresholds.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.LoadFromEnv(o.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))

	flags := cmd.Flags()
	th := &cfg.Analysis.Thresholds
	if flags.Changed("target-acos") {
		th.TargetACOS = o.targetACOS
		cfg.Analysis.SearchTerms.TargetACOS = o.targetACOS
	}
	if flags.Changed("min-spend") {
		th.MinSpend = o.minSpend
		cfg.Analysis.SearchTerms.MinSpend = o.minSpend
	}
	if flags.Changed("min-clicks") {
		th.MinClicks = o.minClicks
	}
	if flags.Changed("min-orders") {
		th.MinOrders = o.minOrders
	}
	if flags.Changed("phrase") {
		th.UseNegativePhrase = o.phrase
		cfg.Analysis.SearchTerms.UseNegativePhrase = o.phrase
	}

	o.cfg = cfg
	o.source = report.NewSource(cfg.Storage.S3Region, cfg.Storage.AWSProfile)
	return nil
}

func (o *options) engine() *optimizer.Engine {
	return optimizer.New(o.cfg.Analysis.Thresholds)
}

// inputs loads and validates the report, and the bulk export when given.
func (o *options) inputs(ctx context.Context) (*domain.PerformanceReport, *dataset.Table, error) {
	if o.reportPath == "" {
		return nil, nil, fmt.Errorf("--report is required")
	}
	raw, err := o.source.Load(ctx, o.reportPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read report: %w", err)
	}
	if ok, missing := schema.Validate(raw); !ok {
		return nil, nil, fmt.Errorf("report is missing columns: %v", missing)
	}

	var bulk *dataset.Table
	if o.bulkPath != "" {
		if bulk, err = o.source.Load(ctx, o.bulkPath); err != nil {
			return nil, nil, fmt.Errorf("read bulk file: %w", err)
		}
	}
	return schema.ParsePerformance(raw), bulk, nil
}

func main() {
	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
