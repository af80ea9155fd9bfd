package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignite/ppc-optimizer/internal/bulksheet"
	"github.com/ignite/ppc-optimizer/internal/optimizer"
	"github.com/ignite/ppc-optimizer/internal/report"
)

// Export kinds.
const (
	exportNegatives = "negatives"
	exportBids      = "bids"
	exportBudgets   = "budgets"
)

func newExportCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "export {negatives|bids|budgets}",
		Short:     "Write the decision center's changes as a bulk upload",
		Long:      "Writes .xlsx, or .csv when --out ends in .csv. --out may be an s3:// URI.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{exportNegatives, exportBids, exportBudgets},
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			rep, bulk, err := opts.inputs(cmd.Context())
			if err != nil {
				return err
			}

			engine := opts.engine()
			dc := engine.DecisionCenter(rep, bulk)

			var sheet bulksheet.Sheet
			switch args[0] {
			case exportNegatives:
				sheet = engine.NegativesSheet(optimizer.Negatives(dc), bulk, engine.Thresholds().UseNegativePhrase)
			case exportBids:
				sheet = engine.BidSheet(optimizer.BidChanges(dc), bulk)
			case exportBudgets:
				sheet = engine.BudgetSheet(optimizer.BudgetChanges(dc), bulk)
			}

			data, contentType, err := encode(sheet, out)
			if err != nil {
				return err
			}
			if err := opts.source.Save(cmd.Context(), out, data, contentType); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d %s rows to %s\n", sheet.Len(), args[0], out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or s3://bucket/key")
	return cmd
}

func encode(sheet bulksheet.Sheet, out string) ([]byte, string, error) {
	if strings.EqualFold(path.Ext(out), ".csv") {
		data, err := report.WriteCSV(sheet)
		return data, report.ContentTypeCSV, err
	}
	data, err := report.WriteXLSX(sheet)
	return data, report.ContentTypeXLSX, err
}
