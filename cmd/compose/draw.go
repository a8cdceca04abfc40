package main

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-compose/internal/catalog"
	"github.com/askiada/go-compose/internal/runner"
	"github.com/askiada/go-compose/pkg/compose/drawer"
)

func newDrawCmd(a *app) *cobra.Command {
	var (
		modelName string
		output    string
		rankdir   string
		durations bool
	)

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Print the graph of a model in the DOT language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := a.models(modelName)
			if err != nil {
				return err
			}

			m := models[0]

			opts := []drawer.Option{drawer.GraphAttribute("rankdir", rankdir)}

			var d *drawer.DOTDrawer
			if output != "" {
				d = drawer.NewDOTFileDrawer(output, opts...)
			} else {
				d = drawer.NewDOTDrawer(cmd.OutOrStdout(), opts...)
			}

			if !durations {
				pipe, err := catalog.Build(m, a.logger)
				if err != nil {
					return err
				}

				_, err = pipe.DrawWith(d)

				return err
			}

			pipe, res, err := runner.EvaluateModel(cmd.Context(), a.logger, a.cfg, m)
			if err != nil {
				return err
			}

			err = d.AddMeasure(res.Measure)
			if err != nil {
				return err
			}

			_, err = pipe.DrawWith(d)

			return err
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "name of the model to draw, the first model when empty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the DOT description to, stdout when empty")
	cmd.Flags().StringVar(&rankdir, "rankdir", "LR", "direction of the graph")
	cmd.Flags().BoolVar(&durations, "durations", false, "evaluate the model first and show the average duration of each step")

	return cmd
}
