package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

var (
	trainFamily      string
	trainMinSamples  int32
	trainDescription string
	trainAutoApprove bool
	trainWait        bool
	trainWaitTimeout time.Duration
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Submit a model training run",
	Long: `Submit a background training run that derives fresh category weights
from recorded contract outcomes. The new version starts in DRAFT unless
the server or --auto-approve says otherwise.

Examples:
  riskctl train
  riskctl train --family random_forest --min-samples 100
  riskctl train --wait`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainFamily, "family", "logistic", "Model family (logistic, random_forest, gradient_boosting)")
	trainCmd.Flags().Int32Var(&trainMinSamples, "min-samples", 0, "Override the minimum dataset size (0 uses the server default)")
	trainCmd.Flags().StringVar(&trainDescription, "description", "", "Human description stored on the resulting version")
	trainCmd.Flags().BoolVar(&trainAutoApprove, "auto-approve", false, "Move the resulting version straight to APPROVED")
	trainCmd.Flags().BoolVar(&trainWait, "wait", false, "Poll until the job finishes and print the result")
	trainCmd.Flags().DurationVar(&trainWaitTimeout, "wait-timeout", 2*time.Minute, "Give up waiting after this long")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	client, err := dialRisk()
	if err != nil {
		return err
	}
	defer client.Close()

	req := &riskv1.TrainModelRequest{
		ModelFamily: trainFamily,
		Description: trainDescription,
		MinSamples:  trainMinSamples,
	}
	if cmd.Flags().Changed("auto-approve") {
		req.AutoApprove = &trainAutoApprove
	}

	ctx, cancel := callCtx()
	resp, err := client.TrainModel(ctx, req)
	cancel()
	if err != nil {
		return err
	}

	if !trainWait {
		if output == "json" {
			return printJSON(resp)
		}
		fmt.Printf("job %s submitted (%s)\n", resp.JobID, resp.Status)
		fmt.Printf("check progress with: riskctl job %s\n", resp.JobID)
		return nil
	}

	job, err := waitForJob(client, resp.JobID)
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(job)
	}
	printJobDetail(job)
	return nil
}

// waitForJob polls the job until it reaches a terminal status.
func waitForJob(client *riskClient, jobID string) (*riskv1.TrainingJobMsg, error) {
	deadline := time.Now().Add(trainWaitTimeout)
	for {
		ctx, cancel := callCtx()
		resp, err := client.GetTrainingJob(ctx, &riskv1.GetTrainingJobRequest{JobID: jobID})
		cancel()
		if err != nil {
			return nil, err
		}
		job := resp.Job
		if job == nil {
			return nil, fmt.Errorf("empty job response for %s", jobID)
		}
		if job.Status == "completed" || job.Status == "failed" {
			return job, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("job %s still %s after %s", jobID, job.Status, trainWaitTimeout)
		}
		time.Sleep(time.Second)
	}
}
