package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// newTabWriter returns a tabwriter flushed by the caller.
func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseFloatMap parses "key=value,key=value" pairs, as used by --scores
// and --weights.
func parseFloatMap(spec string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, val, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("malformed entry %q, want key=value", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed value in %q: %w", pair, err)
		}
		out[strings.TrimSpace(key)] = f
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no key=value entries found")
	}
	return out, nil
}

func printVersionTable(versions ...*riskv1.WeightVersionMsg) {
	w := newTabWriter()
	fmt.Fprintln(w, "TAG\tSTATE\tFAMILY\tSAMPLES\tACCURACY\tROC AUC\tCREATED")
	for _, v := range versions {
		if v == nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			v.VersionTag, v.State, dash(v.ModelFamily), v.SampleCount,
			fmtMetric(v.Accuracy), fmtMetric(v.ROCAUC), dash(v.CreatedAt))
	}
	w.Flush()
}

func printVersionDetail(v *riskv1.WeightVersionMsg) {
	if v == nil {
		fmt.Println("no version returned")
		return
	}
	fmt.Printf("Version:  %s\n", v.VersionTag)
	if v.ID != "" {
		fmt.Printf("ID:       %s\n", v.ID)
	}
	fmt.Printf("State:    %s\n", dash(v.State))
	if v.Bootstrap {
		fmt.Println("Note:     bootstrap fallback, no trained version is active")
	}
	if v.ModelFamily != "" {
		fmt.Printf("Family:   %s (%d samples)\n", v.ModelFamily, v.SampleCount)
		fmt.Printf("Metrics:  accuracy %s, roc_auc %s", fmtMetric(v.Accuracy), fmtMetric(v.ROCAUC))
		if v.CVAUCMean != 0 {
			fmt.Printf(", cv_auc %s±%s", fmtMetric(v.CVAUCMean), fmtMetric(v.CVAUCStd))
		}
		fmt.Println()
	}
	if v.Description != "" {
		fmt.Printf("About:    %s\n", v.Description)
	}
	if v.ApprovedBy != "" {
		fmt.Printf("Approved: %s (%s)\n", v.ApprovedBy, v.ApprovedAt)
	}

	fmt.Println("\nWeights:")
	printWeights(v.Weights)
}

func printWeights(weights map[string]float64) {
	w := newTabWriter()
	for _, cat := range sortedKeys(weights) {
		fmt.Fprintf(w, "  %s\t%.4f\n", cat, weights[cat])
	}
	w.Flush()
}

func printAssessmentDetail(a *riskv1.AssessmentMsg) {
	if a == nil {
		fmt.Println("no assessment returned")
		return
	}
	fmt.Printf("Assessment:     %s\n", a.ID)
	fmt.Printf("Supplier:       %s\n", a.SupplierID)
	if a.ContractID != "" {
		fmt.Printf("Contract:       %s\n", a.ContractID)
	}
	fmt.Printf("Composite:      %.2f\n", a.CompositeScore)
	fmt.Printf("Recommendation: %s\n", a.Recommendation)
	if a.AlertSeverity != "" {
		fmt.Printf("Alert:          %s\n", a.AlertSeverity)
	}
	if a.Confidence != nil {
		fmt.Printf("Confidence:     %.2f\n", *a.Confidence)
	}
	fmt.Printf("Weights used:   %s\n", a.VersionTag)
	fmt.Printf("Assessed at:    %s\n", a.AssessedAt)
	if len(a.Scores) > 0 {
		fmt.Println("\nCategory scores:")
		w := newTabWriter()
		for _, cat := range sortedKeys(a.Scores) {
			fmt.Fprintf(w, "  %s\t%.1f\n", cat, a.Scores[cat])
		}
		w.Flush()
	}
}

func printAssessmentTable(assessments []*riskv1.AssessmentMsg) {
	w := newTabWriter()
	fmt.Fprintln(w, "ID\tCOMPOSITE\tRECOMMENDATION\tALERT\tWEIGHTS\tASSESSED")
	for _, a := range assessments {
		if a == nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%s\t%s\n",
			a.ID, a.CompositeScore, a.Recommendation, dash(a.AlertSeverity),
			a.VersionTag, a.AssessedAt)
	}
	w.Flush()
}

func printJobDetail(j *riskv1.TrainingJobMsg) {
	if j == nil {
		fmt.Println("no job returned")
		return
	}
	fmt.Printf("Job:       %s\n", j.JobID)
	fmt.Printf("Family:    %s\n", j.ModelFamily)
	fmt.Printf("Status:    %s\n", j.Status)
	if j.Error != "" {
		fmt.Printf("Error:     %s\n", j.Error)
	}
	if j.VersionID != "" {
		fmt.Printf("Version:   %s\n", j.VersionID)
	}
	fmt.Printf("Submitted: %s\n", j.SubmittedAt)
	if j.StartedAt != "" {
		fmt.Printf("Started:   %s\n", j.StartedAt)
	}
	if j.FinishedAt != "" {
		fmt.Printf("Finished:  %s\n", j.FinishedAt)
	}
}

func fmtMetric(f float64) string {
	if f == 0 {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
