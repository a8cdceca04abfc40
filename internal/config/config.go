// Package config loads the configuration of the compose command from a YAML file and
// COMPOSE_* environment variables.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/go-compose/internal/logger"
)

const envPrefix = "COMPOSE"

var ErrInvalidConfig = errors.New("invalid configuration")

// Model describes a composition: its steps, in order, and the parameters of its estimators.
// A step made of several names joined with "+" is a union of those steps.
type Model struct {
	Name         string   `mapstructure:"name" validate:"required"`
	Steps        []string `mapstructure:"steps" validate:"required,min=1,dive,required"`
	LearningRate float64  `mapstructure:"learning_rate" validate:"gt=0"`
	ClipMin      float64  `mapstructure:"clip_min"`
	ClipMax      float64  `mapstructure:"clip_max" validate:"gtefield=ClipMin"`
}

// Dataset selects the stream the models are evaluated on.
type Dataset struct {
	Name string `mapstructure:"name" validate:"required"`
	Size int    `mapstructure:"size" validate:"gte=0"`
	Seed int64  `mapstructure:"seed"`
}

// Trace configures the trace command.
type Trace struct {
	Decimals  int  `mapstructure:"decimals" validate:"gte=0,lte=9"`
	ShowTypes bool `mapstructure:"show_types"`
	Warmup    int  `mapstructure:"warmup" validate:"gte=0"`
}

// Config is the configuration of the compose command.
type Config struct {
	Log         logger.Config `mapstructure:"log"`
	Dataset     Dataset       `mapstructure:"dataset"`
	Trace       Trace         `mapstructure:"trace"`
	Concurrency int           `mapstructure:"concurrency" validate:"gte=1"`
	Models      []Model       `mapstructure:"models" validate:"required,min=1,unique=Name,dive"`
}

// Load reads the file at path, when set, then the environment, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", path)
		}
	}

	cfg := &Config{}

	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}

	cfg.Log.ApplyDefaults()

	err = Validate(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg against the constraints of its fields.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Namespace()+" failed on "+fe.Tag())
	}

	return errors.Wrap(ErrInvalidConfig, strings.Join(messages, "; "))
}

// Model returns the model named name.
func (c *Config) Model(name string) (Model, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}

	return Model{}, false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatConsole)
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.no_color", false)
	v.SetDefault("dataset.name", "LinearRegression")
	v.SetDefault("dataset.size", 1000)
	v.SetDefault("dataset.seed", 42)
	v.SetDefault("trace.decimals", 5)
	v.SetDefault("trace.show_types", true)
	v.SetDefault("trace.warmup", 100)
	v.SetDefault("concurrency", 4)
	v.SetDefault("models", []map[string]any{
		{
			"name":          "scaled-linear",
			"steps":         []string{"StandardScaler", "LinearRegression"},
			"learning_rate": 0.05,
		},
	})
}
