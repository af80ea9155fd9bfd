package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Print the decision center for a report as JSON",
		Long: `Runs every rule over the search term report and prints bleeding spend,
high ACOS, scale opportunities, budget saturation and the health score.
With --bulk, recommendations carry campaign, ad group and portfolio IDs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, bulk, err := opts.inputs(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), opts.engine().DecisionCenter(rep, bulk))
		},
	}
}

func newSearchTermsCmd(opts *options) *cobra.Command {
	var (
		maxSales float64
		branded  []string
		poorROAS bool
	)
	cmd := &cobra.Command{
		Use:   "search-terms",
		Short: "Print negative keyword and ASIN candidates as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, bulk, err := opts.inputs(cmd.Context())
			if err != nil {
				return err
			}
			cfg := opts.cfg.Analysis.SearchTerms
			if cmd.Flags().Changed("max-sales") {
				cfg.MaxSales = maxSales
			}
			if len(branded) > 0 {
				cfg.ExcludeBranded = true
				cfg.BrandedTerms = branded
			}
			if poorROAS {
				cfg.IncludePoorROAS = true
			}
			return writeJSON(cmd.OutOrStdout(), opts.engine().SearchTerms(rep, bulk, cfg))
		},
	}
	cmd.Flags().Float64Var(&maxSales, "max-sales", 0, "highest sales a flagged term may have")
	cmd.Flags().StringSliceVar(&branded, "branded", nil, "branded terms to leave alone")
	cmd.Flags().BoolVar(&poorROAS, "poor-roas", false, "also flag selling terms above target ACOS")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
