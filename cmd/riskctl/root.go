package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverAddr    string
	output        string
	rpcTimeout    time.Duration
	tlsCAFile     string
	tlsSkipVerify bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "riskctl",
	Short: "Supplier risk scoring and weight lifecycle CLI",
	Long: `riskctl talks to a running riskd instance over gRPC.

Scoring:
  score        Score a supplier from category scores
  assessments  Fetch stored assessments
  trend        Show a supplier's composite score trend
  analyze      Analyze contract text for risky terms

Training:
  train        Submit a model training run
  job          Show a training job
  readiness    Report whether enough labeled outcomes exist to train

Versions:
  versions     List, approve, activate, roll back and compare weight versions

The server address comes from --addr or the RISKD_ADDR environment
variable. Responses print as aligned text by default; use -o json for
machine-readable output.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", envOr("RISKD_ADDR", "localhost:8090"), "riskd gRPC address")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().DurationVar(&rpcTimeout, "timeout", 10*time.Second, "Per-call timeout")
	rootCmd.PersistentFlags().StringVar(&tlsCAFile, "tls-ca", "", "CA certificate for server verification (enables TLS)")
	rootCmd.PersistentFlags().BoolVar(&tlsSkipVerify, "tls-skip-verify", false, "Use TLS but skip certificate verification (development only)")
}

func envOr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// callCtx returns a context bounded by the global per-call timeout.
func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rpcTimeout)
}
