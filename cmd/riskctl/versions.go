package main

import (
	"fmt"

	"github.com/spf13/cobra"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

var (
	versionsListStates []string
	versionsListLimit  int32
	versionsListOffset int32
	approveBy          string
	evolutionCategory  string
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Manage weight versions",
	Long: `Inspect and drive the weight version lifecycle.

Versions move DRAFT -> APPROVED -> ACTIVE; activating one version
deactivates the previous. Rollback re-activates a retired version.

Examples:
  riskctl versions list --state ACTIVE --state APPROVED
  riskctl versions approve 4f5c... --by alice
  riskctl versions activate 4f5c...
  riskctl versions compare <id-a> <id-b>`,
}

var versionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List versions, newest first",
	RunE:  runVersionsList,
}

var versionsActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the active version, or the bootstrap fallback",
	RunE:  runVersionsActive,
}

var versionsApproveCmd = &cobra.Command{
	Use:   "approve <version-id>",
	Short: "Approve a draft version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsApprove,
}

var versionsActivateCmd = &cobra.Command{
	Use:   "activate <version-id>",
	Short: "Activate an approved version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsActivate,
}

var versionsRollbackCmd = &cobra.Command{
	Use:   "rollback <version-id>",
	Short: "Re-activate a previously deactivated version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsRollback,
}

var versionsCompareCmd = &cobra.Command{
	Use:   "compare <version-a> <version-b>",
	Short: "Compare the weights and metrics of two versions",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionsCompare,
}

var versionsEvolutionCmd = &cobra.Command{
	Use:   "evolution",
	Short: "Show how weights changed across versions",
	RunE:  runVersionsEvolution,
}

func init() {
	versionsListCmd.Flags().StringSliceVar(&versionsListStates, "state", nil, "Filter by state (repeatable: DRAFT, APPROVED, ACTIVE, INACTIVE)")
	versionsListCmd.Flags().Int32Var(&versionsListLimit, "limit", 20, "Maximum versions to return")
	versionsListCmd.Flags().Int32Var(&versionsListOffset, "offset", 0, "Versions to skip")
	versionsApproveCmd.Flags().StringVar(&approveBy, "by", "", "Reviewer recorded on the approval")
	versionsEvolutionCmd.Flags().StringVar(&evolutionCategory, "category", "", "Narrow to a single category")

	versionsCmd.AddCommand(versionsListCmd)
	versionsCmd.AddCommand(versionsActiveCmd)
	versionsCmd.AddCommand(versionsApproveCmd)
	versionsCmd.AddCommand(versionsActivateCmd)
	versionsCmd.AddCommand(versionsRollbackCmd)
	versionsCmd.AddCommand(versionsCompareCmd)
	versionsCmd.AddCommand(versionsEvolutionCmd)
	rootCmd.AddCommand(versionsCmd)
}

func runVersionsList(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.ListVersions(ctx, &riskv1.ListVersionsRequest{
		States: versionsListStates,
		Limit:  versionsListLimit,
		Offset: versionsListOffset,
	})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp.Versions)
	}
	if len(resp.Versions) == 0 {
		fmt.Println("no versions found")
		return nil
	}
	printVersionTable(resp.Versions...)
	return nil
}

func runVersionsActive(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.GetActiveVersion(ctx)
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp.Version)
	}
	printVersionDetail(resp.Version)
	return nil
}

func runVersionsApprove(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.ApproveVersion(ctx, &riskv1.ApproveVersionRequest{
		VersionID:  args[0],
		ApprovedBy: approveBy,
	})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}
	if resp.AlreadyApproved {
		fmt.Printf("version %s was already approved\n", resp.Version.VersionTag)
	} else {
		fmt.Printf("version %s approved by %s\n", resp.Version.VersionTag, resp.Version.ApprovedBy)
	}
	return nil
}

func runVersionsActivate(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.ActivateVersion(ctx, &riskv1.ActivateVersionRequest{VersionID: args[0]})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}
	fmt.Printf("version %s is now active\n", resp.Version.VersionTag)
	if resp.PreviousVersionID != "" {
		fmt.Printf("deactivated previous version %s\n", resp.PreviousVersionID)
	}
	return nil
}

func runVersionsRollback(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.RollbackVersion(ctx, &riskv1.RollbackVersionRequest{VersionID: args[0]})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}
	fmt.Printf("rolled back to version %s\n", resp.Version.VersionTag)
	if resp.PreviousVersionID != "" {
		fmt.Printf("deactivated previous version %s\n", resp.PreviousVersionID)
	}
	return nil
}

func runVersionsCompare(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.CompareVersions(ctx, &riskv1.CompareVersionsRequest{
		VersionA: args[0],
		VersionB: args[1],
	})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}

	fmt.Printf("A: %s (%s)\n", resp.VersionA.VersionTag, resp.VersionA.State)
	fmt.Printf("B: %s (%s)\n\n", resp.VersionB.VersionTag, resp.VersionB.State)

	w := newTabWriter()
	fmt.Fprintln(w, "CATEGORY\tA\tB\tDELTA\tCHANGE")
	for _, d := range resp.WeightDeltas {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%+.4f\t%+.1f%%\n",
			d.Category, d.WeightA, d.WeightB, d.Delta, d.PctChange)
	}
	w.Flush()

	fmt.Printf("\naccuracy delta %+.4f, roc_auc delta %+.4f\n", resp.AccuracyDelta, resp.AUCDelta)
	return nil
}

func runVersionsEvolution(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.GetWeightEvolution(ctx, &riskv1.GetWeightEvolutionRequest{Category: evolutionCategory})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp)
	}
	if len(resp.Points) == 0 {
		fmt.Println("no versions recorded yet")
		return nil
	}

	w := newTabWriter()
	if resp.Category != "" {
		fmt.Fprintln(w, "CREATED\tTAG\tSTATE\tWEIGHT")
		for _, p := range resp.Points {
			weight := "-"
			if p.Weight != nil {
				weight = fmt.Sprintf("%.4f", *p.Weight)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.CreatedAt, p.VersionTag, p.State, weight)
		}
	} else {
		fmt.Fprintln(w, "CREATED\tTAG\tSTATE\tROC AUC")
		for _, p := range resp.Points {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.CreatedAt, p.VersionTag, p.State, fmtMetric(p.ROCAUC))
		}
	}
	w.Flush()
	return nil
}
