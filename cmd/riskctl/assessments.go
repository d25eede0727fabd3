package main

import (
	"fmt"

	"github.com/spf13/cobra"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

var (
	assessmentsSupplier string
	assessmentsLimit    int32
	assessmentsOffset   int32
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Fetch stored assessments",
}

var assessmentsGetCmd = &cobra.Command{
	Use:   "get <assessment-id>",
	Short: "Show one assessment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssessmentsGet,
}

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a supplier's assessments, newest first",
	RunE:  runAssessmentsList,
}

func init() {
	assessmentsListCmd.Flags().StringVar(&assessmentsSupplier, "supplier", "", "Supplier id (required)")
	assessmentsListCmd.Flags().Int32Var(&assessmentsLimit, "limit", 20, "Maximum assessments to return")
	assessmentsListCmd.Flags().Int32Var(&assessmentsOffset, "offset", 0, "Assessments to skip")
	assessmentsListCmd.MarkFlagRequired("supplier")

	assessmentsCmd.AddCommand(assessmentsGetCmd)
	assessmentsCmd.AddCommand(assessmentsListCmd)
	rootCmd.AddCommand(assessmentsCmd)
}

func runAssessmentsGet(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.GetAssessment(ctx, &riskv1.GetAssessmentRequest{ID: args[0]})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp.Assessment)
	}
	printAssessmentDetail(resp.Assessment)
	return nil
}

func runAssessmentsList(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.ListAssessments(ctx, &riskv1.ListAssessmentsRequest{
		SupplierID: assessmentsSupplier,
		Limit:      assessmentsLimit,
		Offset:     assessmentsOffset,
	})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp.Assessments)
	}
	if len(resp.Assessments) == 0 {
		fmt.Println("no assessments found")
		return nil
	}
	printAssessmentTable(resp.Assessments)
	return nil
}
