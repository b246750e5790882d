package main

import (
	"fmt"
	"io"
	"os"

	"github.com/epeers/krxdash/config"
	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/services"
	"github.com/spf13/cobra"
)

func newLookupCmd(getConfig func() *config.Config) *cobra.Command {
	var start, end, xlsxPath, pngPath string

	cmd := &cobra.Command{
		Use:   "lookup <company>",
		Short: "Look up a company and summarise its prices",
		Long: `Look up a listed company by exact name and print its price summary and
headquarters region. Dates default to January 1st of this year through today.

Use --xlsx and --png to also write the spreadsheet export and the chart image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng models.DateRange
			if start != "" || end != "" {
				parsed, err := services.ParseRange(start, end)
				if err != nil {
					return err
				}
				rng = parsed
			}

			ctx := cmd.Context()
			a := newApp(ctx, getConfig())
			defer a.Close()
			if rng == (models.DateRange{}) {
				rng = a.dashboard.DefaultRange()
			}

			result := a.dashboard.Lookup(ctx, args[0], rng)
			printResult(cmd.OutOrStdout(), result)
			if result.Status != models.LookupOK {
				return fmt.Errorf("%s", result.Status)
			}

			if xlsxPath != "" {
				data, res := a.dashboard.Export(ctx, args[0], rng)
				if res.Status != models.LookupOK {
					return fmt.Errorf("export failed: %s", res.Message)
				}
				if err := os.WriteFile(xlsxPath, data, 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", xlsxPath)
			}
			if pngPath != "" {
				data, res := a.dashboard.ChartPNG(ctx, args[0], rng)
				if res.Status != models.LookupOK {
					return fmt.Errorf("chart failed: %s", res.Message)
				}
				if err := os.WriteFile(pngPath, data, 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", pngPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the price spreadsheet to this path")
	cmd.Flags().StringVar(&pngPath, "png", "", "Write the chart image to this path")
	return cmd
}

func printResult(w io.Writer, r *models.DashboardResult) {
	fmt.Fprintf(w, "%s\n", r.Message)
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  warning [%s] %s\n", warn.Code, warn.Message)
	}
	if r.Status != models.LookupOK {
		return
	}

	first, last := r.Prices[0], r.Prices[len(r.Prices)-1]
	fmt.Fprintf(w, "  period:  %s ~ %s (%d trading days)\n", r.StartDate, r.EndDate, r.DataPoints)
	fmt.Fprintf(w, "  close:   %.0f (%s) -> %.0f (%s)\n", first.Close, first.Date.Format("2006-01-02"), last.Close, last.Date.Format("2006-01-02"))
	if first.Close != 0 {
		fmt.Fprintf(w, "  change:  %+.2f%%\n", (last.Close-first.Close)/first.Close*100)
	}
	if r.Map != nil {
		fmt.Fprintf(w, "  %s\n", r.Map.Heading)
		if r.Map.Caption != "" {
			fmt.Fprintf(w, "  %s\n", r.Map.Caption)
		}
		fmt.Fprintf(w, "  map:     %s center=%.4f,%.4f zoom=%d\n", r.Map.Key, r.Map.Center[0], r.Map.Center[1], r.Map.Zoom)
		if b := r.Map.Bounds; b != nil {
			fmt.Fprintf(w, "  bounds:  %.4f,%.4f ~ %.4f,%.4f\n", b[0][0], b[0][1], b[1][0], b[1][1])
		}
	}
}
