package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-compose/internal/catalog"
	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/stream"
)

func newTraceCmd(a *app) *cobra.Command {
	var modelName string

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show how a model handles one observation after a warm-up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := a.models(modelName)
			if err != nil {
				return err
			}

			m := models[0]

			pipe, err := catalog.Build(m, a.logger)
			if err != nil {
				return err
			}

			dataset, err := stream.IterDataset(a.cfg.Dataset.Name, stream.Options{
				Size: a.cfg.Trace.Warmup + 1,
				Seed: a.cfg.Dataset.Seed,
			})
			if err != nil {
				return err
			}

			samples, err := stream.Take(cmd.Context(), dataset, a.cfg.Trace.Warmup+1)
			if err != nil {
				return err
			}

			if len(samples) == 0 {
				return errors.New("dataset is empty")
			}

			for _, sample := range samples[:len(samples)-1] {
				_, err = pipe.Predict(sample.X)
				if err != nil {
					return err
				}

				_, err = pipe.Fit(sample.X, sample.Y)
				if err != nil {
					return err
				}
			}

			last := samples[len(samples)-1]

			report, err := pipe.Trace(last.X, compose.TraceOptions{
				ShowTypes:     a.cfg.Trace.ShowTypes,
				DecimalPlaces: a.cfg.Trace.Decimals,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n\n%s\n\nTarget: %v\n", m.Name, pipe, report, last.Y)

			return nil
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "name of the model to trace, the first model when empty")

	return cmd
}
