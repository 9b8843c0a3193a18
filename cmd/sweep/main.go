// Command sweep triggers one classification pass on a running BetMetric
// server through the pipeline API. It suits external schedulers such as a
// Kubernetes CronJob when SWEEP_ENABLED is off in the server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"betmetric/internal/logger"
	"betmetric/internal/pipelineclient"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Fatalf("Sweep error: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL  string
		apiKey  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:           "sweep",
		Short:         "Run one bet classification sweep on a BetMetric server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if apiURL == "" {
				return fmt.Errorf("--api-url or BETMETRIC_API_URL is required")
			}
			if apiKey == "" {
				return fmt.Errorf("--api-key or PIPELINE_API_KEY is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := pipelineclient.New(apiURL, apiKey, &http.Client{Timeout: timeout})
			result, err := client.Sweep(ctx)
			if err != nil {
				return err
			}

			log := logger.Get()
			log.Infow("sweep completed",
				"bets", result.Bets,
				"transitions", len(result.Transitions),
				"ran_at", result.RanAt,
			)
			for _, tr := range result.Transitions {
				log.Infow("status changed", "bet_id", tr.BetID, "from", tr.From, "to", tr.To)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", os.Getenv("BETMETRIC_API_URL"), "BetMetric server root URL")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("PIPELINE_API_KEY"), "Pipeline API key")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	return cmd
}
