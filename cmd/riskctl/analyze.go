package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

var analyzePerspective string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze contract text for risky terms",
	Long: `Run the contract term analysis on a text file, or on stdin when no
file is given.

Examples:
  riskctl analyze contract.txt
  riskctl analyze contract.txt --perspective supplier
  cat contract.txt | riskctl analyze`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePerspective, "perspective", "", "Analysis perspective (buyer or supplier, default buyer)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var text []byte
	var err error
	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read contract: %w", err)
		}
	} else {
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.AnalyzeContract(ctx, &riskv1.AnalyzeContractRequest{
		Text:        string(text),
		Perspective: analyzePerspective,
	})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}

	fmt.Printf("Perspective:  %s\n", resp.Perspective)
	fmt.Printf("Overall risk: %.1f\n", resp.OverallRisk)
	fmt.Printf("Coverage:     %.0f%% of known terms\n", resp.Coverage*100)

	if len(resp.IdentifiedTerms) == 0 {
		fmt.Println("\nno known terms identified")
		return nil
	}

	fmt.Println("\nIdentified terms:")
	w := newTabWriter()
	fmt.Fprintln(w, "TERM\tGROUP\tRISK\tMATCHED")
	for _, t := range resp.IdentifiedTerms {
		matched := "-"
		if len(t.MatchedPhrases) > 0 {
			matched = t.MatchedPhrases[0]
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%q\n", t.Name, t.Group, t.Risk, matched)
	}
	w.Flush()

	if len(resp.HighRiskTerms) > 0 {
		fmt.Println("\nHigh risk terms:")
		for _, t := range resp.HighRiskTerms {
			fmt.Printf("  %s (%d)", t.Name, t.Risk)
			if t.Rationale != "" {
				fmt.Printf(": %s", t.Rationale)
			}
			fmt.Println()
		}
	}

	if len(resp.Groups) > 0 {
		fmt.Println("\nGroup averages:")
		names := make([]string, 0, len(resp.Groups))
		for name := range resp.Groups {
			names = append(names, name)
		}
		sort.Strings(names)
		gw := newTabWriter()
		for _, name := range names {
			g := resp.Groups[name]
			fmt.Fprintf(gw, "  %s\t%.1f\t(%d terms)\n", name, g.AverageRisk, g.TermCount)
		}
		gw.Flush()
	}

	if len(resp.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range resp.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
	return nil
}
