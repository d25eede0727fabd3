package main

import (
	"fmt"

	"github.com/spf13/cobra"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

var (
	trendSupplier string
	trendDays     int32
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show a supplier's composite score trend",
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendSupplier, "supplier", "", "Supplier id (required)")
	trendCmd.Flags().Int32Var(&trendDays, "days", 0, "Window size in days (0 uses the server default)")
	trendCmd.MarkFlagRequired("supplier")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.GetRiskTrend(ctx, &riskv1.GetRiskTrendRequest{
		SupplierID: trendSupplier,
		Days:       trendDays,
	})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}

	fmt.Printf("Supplier:  %s\n", resp.SupplierID)
	fmt.Printf("Window:    last %d days\n", resp.WindowDays)
	fmt.Printf("Direction: %s\n", resp.Direction)
	fmt.Printf("Mean:      %.2f\n", resp.MeanComposite)

	if len(resp.Points) == 0 {
		fmt.Println("\nno assessments in window")
		return nil
	}

	fmt.Println()
	w := newTabWriter()
	fmt.Fprintln(w, "ASSESSED\tCOMPOSITE\tRECOMMENDATION")
	for _, p := range resp.Points {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", p.AssessedAt, p.CompositeScore, p.Recommendation)
	}
	w.Flush()
	return nil
}
