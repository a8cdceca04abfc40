package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/askiada/go-compose/internal/runner"
)

func newBenchCmd(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Evaluate every model concurrently and rank them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if concurrency > 0 {
				a.cfg.Concurrency = concurrency
			}

			results, err := runner.Bench(cmd.Context(), a.logger, a.cfg)
			if err != nil {
				return err
			}

			sort.SliceStable(results, func(i, j int) bool {
				if results[i].Metric != results[j].Metric {
					return results[i].Metric < results[j].Metric
				}

				// lower is better for the error, higher for the accuracy
				if results[i].Metric == (&runner.MSE{}).Name() {
					return results[i].Score < results[j].Score
				}

				return results[i].Score > results[j].Score
			})

			for _, res := range results {
				printResult(cmd, res)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of models evaluated at the same time, from the configuration when 0")

	return cmd
}
