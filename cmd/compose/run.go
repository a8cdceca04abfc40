package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/askiada/go-compose/internal/runner"
)

func newRunCmd(a *app) *cobra.Command {
	var modelName string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate models one after the other with progressive validation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := a.models(modelName)
			if err != nil {
				return err
			}

			for _, m := range models {
				_, res, err := runner.EvaluateModel(cmd.Context(), a.logger, a.cfg, m)
				if err != nil {
					return err
				}

				printResult(cmd, res)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "name of the model to evaluate, all models when empty")

	return cmd
}

func printResult(cmd *cobra.Command, res runner.Result) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s=%s\tsamples=%s\telapsed=%s\n",
		res.Model,
		res.Metric,
		humanize.FormatFloat("#,###.######", res.Score),
		humanize.Comma(int64(res.Samples)),
		res.Elapsed,
	)
}
