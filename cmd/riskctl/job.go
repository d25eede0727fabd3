package main

import (
	"github.com/spf13/cobra"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

var jobCmd = &cobra.Command{
	Use:   "job <job-id>",
	Short: "Show a training job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJob,
}

func init() {
	rootCmd.AddCommand(jobCmd)
}

func runJob(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := callCtx()
	defer cancel()

	resp, err := client.GetTrainingJob(ctx, &riskv1.GetTrainingJobRequest{JobID: args[0]})
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(resp.Job)
	}
	printJobDetail(resp.Job)
	return nil
}
