package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/seeksy/rate-desk/internal/filestore"
	"github.com/seeksy/rate-desk/internal/models"
	"github.com/seeksy/rate-desk/internal/pricing"
	"github.com/seeksy/rate-desk/internal/ratecard"
	"github.com/seeksy/rate-desk/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd(logger *logrus.Logger) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "ratedesk",
		Short:        "Seeksy ad rate desk pricing",
		SilenceUsage: true,
	}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newQuoteCmd(logger), newScenariosCmd())
	return root
}

func newQuoteCmd(logger *logrus.Logger) *cobra.Command {
	var (
		file     string
		scenario string
		months   int
		output   string
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price an inventory fixture under a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := filestore.Load(file)
			if err != nil {
				return err
			}
			svc := service.NewService(store, logger, nil)
			view, err := svc.GetRateDeskView(cmd.Context(), service.Options{ScenarioSlug: scenario, Months: months})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "table":
				return writeTable(out, view)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			case "xml":
				raw, err := ratecard.Render(view)
				if err != nil {
					return err
				}
				_, err = out.Write(raw)
				return err
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "inventory.yaml", "inventory fixture")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", pricing.ScenarioBase, "scenario slug")
	cmd.Flags().IntVar(&months, "months", 1, "planning horizon in months")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "table, json or xml")
	return cmd
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List scenario multipliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCENARIO\tMULTIPLIER")
			for _, s := range pricing.Scenarios() {
				fmt.Fprintf(w, "%s\t%.2f\n", s.Slug, s.Multiplier)
			}
			return w.Flush()
		},
	}
}

func writeTable(out io.Writer, view *models.RateDeskView) error {
	fmt.Fprintf(out, "Scenario: %s (%s)\n\n", view.Scenario.Name, view.Scenario.Slug)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UNIT\tTYPE\tCPM\tFLOOR\tCEILING\tIMPRESSIONS\t30D\t12M\tHEALTH")
	for _, u := range view.Inventory {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%s\t%s\t%s\n",
			u.Name, u.Type, u.RecommendedCPM, u.AdjustedFloorCPM, u.AdjustedCeilingCPM,
			pricing.FormatCompact(float64(u.ExpectedMonthlyImpressions)),
			pricing.FormatCurrency(u.PotentialRevenue30d),
			pricing.FormatCurrency(u.PotentialRevenue12m),
			u.HealthStatus)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := view.Summary
	fmt.Fprintf(out, "\nGross spend:    %s / %s / %s\n",
		pricing.FormatCurrency(s.PotentialGrossSpend30d),
		pricing.FormatCurrency(s.PotentialGrossSpend90d),
		pricing.FormatCurrency(s.PotentialGrossSpend12m))
	fmt.Fprintf(out, "Seeksy revenue: %s / %s / %s\n",
		pricing.FormatCurrency(s.SeeksyRevenue30d),
		pricing.FormatCurrency(s.SeeksyRevenue90d),
		pricing.FormatCurrency(s.SeeksyRevenue12m))
	_, err := fmt.Fprintf(out, "Average CPM:    $%.2f\n", s.AverageRecommendedCPM)
	return err
}
