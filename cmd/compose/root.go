package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/internal/logger"
)

// app holds what every command needs once the configuration is loaded.
type app struct {
	configFile string
	cfg        *config.Config
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:          "compose",
		Short:        "Evaluate compositions of online learning steps",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "path to the YAML configuration file")

	rootCmd.AddCommand(
		newRunCmd(a),
		newTraceCmd(a),
		newDrawCmd(a),
		newBenchCmd(a),
	)

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return errors.Wrap(err, "unable to load configuration")
	}

	log, err := logger.New(cfg.Log, nil)
	if err != nil {
		return errors.Wrap(err, "unable to create logger")
	}

	a.cfg = cfg
	a.logger = log.With().Str("command", cmd.Name()).Logger()

	return nil
}

// models returns the model named name, or every model when name is empty.
func (a *app) models(name string) ([]config.Model, error) {
	if name == "" {
		return a.cfg.Models, nil
	}

	m, ok := a.cfg.Model(name)
	if !ok {
		return nil, errors.Errorf("model %q is not configured", name)
	}

	return []config.Model{m}, nil
}
