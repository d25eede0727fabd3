package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Report whether enough labeled outcomes exist to train",
	RunE:  runReadiness,
}

func init() {
	rootCmd.AddCommand(readinessCmd)
}

func runReadiness(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.GetTrainingReadiness(ctx)
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}

	if resp.Ready {
		fmt.Println("Ready: yes")
	} else {
		fmt.Printf("Ready: no (need %d usable rows, have %d)\n", resp.MinimumRequired, resp.UsableRows)
	}
	fmt.Printf("Records: %d total, %d usable, %d skipped\n", resp.TotalRecords, resp.UsableRows, resp.SkippedRows)

	if len(resp.Outcomes) > 0 {
		fmt.Println("\nOutcomes:")
		names := make([]string, 0, len(resp.Outcomes))
		for name := range resp.Outcomes {
			names = append(names, name)
		}
		sort.Strings(names)
		w := newTabWriter()
		for _, name := range names {
			fmt.Fprintf(w, "  %s\t%d\n", name, resp.Outcomes[name])
		}
		w.Flush()
	}
	return nil
}
