package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

var (
	scoreSupplier   string
	scoreContract   string
	scoreScores     string
	scoreWeights    string
	scoreConfidence float64
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a supplier from category scores",
	Long: `Compute a weighted composite score for a supplier. All eight
categories must be present in --scores. The active weight version is
used unless --weights overrides it for this one call.

Examples:
  riskctl score --supplier 8d2f... \
    --scores financial=70,legal=55,esg=40,geopolitical=60,operational=45,pricing=50,social=35,performance=65
  riskctl score --supplier 8d2f... --scores ... --confidence 0.8`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreSupplier, "supplier", "", "Supplier id (required)")
	scoreCmd.Flags().StringVar(&scoreContract, "contract", "", "Contract id the scores were derived from")
	scoreCmd.Flags().StringVar(&scoreScores, "scores", "", "Category scores as category=value pairs (required)")
	scoreCmd.Flags().StringVar(&scoreWeights, "weights", "", "One-off weight override as category=value pairs")
	scoreCmd.Flags().Float64Var(&scoreConfidence, "confidence", 0, "Scoring confidence in [0, 1]")
	scoreCmd.MarkFlagRequired("supplier")
	scoreCmd.MarkFlagRequired("scores")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	scores, err := parseFloatMap(scoreScores)
	if err != nil {
		return fmt.Errorf("--scores: %w", err)
	}

	req := &riskv1.ScoreRequest{
		SupplierID: scoreSupplier,
		ContractID: scoreContract,
		Scores:     scores,
	}
	if scoreWeights != "" {
		weights, err := parseFloatMap(scoreWeights)
		if err != nil {
			return fmt.Errorf("--weights: %w", err)
		}
		req.Weights = weights
	}
	if cmd.Flags().Changed("confidence") {
		req.Confidence = &scoreConfidence
	}

	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.Score(ctx, req)
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}

	a := resp.Assessment
	fmt.Printf("Composite:      %.2f\n", a.CompositeScore)
	fmt.Printf("Recommendation: %s\n", a.Recommendation)
	if a.AlertSeverity != "" {
		fmt.Printf("Alert:          %s\n", a.AlertSeverity)
	}
	fmt.Printf("Weights used:   %s\n", a.VersionTag)
	fmt.Printf("Assessment:     %s\n", a.ID)

	if len(resp.Contributions) > 0 {
		fmt.Println("\nContributions (largest first):")
		printContributions(resp.Contributions)
	}
	return nil
}

func printContributions(contributions map[string]float64) {
	type entry struct {
		category string
		value    float64
	}
	entries := make([]entry, 0, len(contributions))
	for cat, val := range contributions {
		entries = append(entries, entry{cat, val})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].category < entries[j].category
	})

	w := newTabWriter()
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%.2f\n", e.category, e.value)
	}
	w.Flush()
}
