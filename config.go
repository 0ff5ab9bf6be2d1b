package fuzzyruby

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/GMGilson/fuzzy-ruby-server/internal/logging"
	"github.com/GMGilson/fuzzy-ruby-server/internal/resolve"
)

// Config holds the server-wide settings cmd/fuzzyrubyserver resolves from
// flags, environment variables (FUZZYRUBY_* prefix), and an optional
// .fuzzyruby.yaml file, in that order of precedence.
type Config struct {
	LogLevel       string
	TopKDefinition int
	TopKHighlight  int
}

// LoadConfig builds a Config from flags, in descending precedence: flags >
// environment > config file > defaults. flags may be nil, in which case
// only the environment and config file are consulted.
func LoadConfig(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("log-level", "info")
	v.SetDefault("top-k-definition", resolve.DefaultTopKDefinition)
	v.SetDefault("top-k-highlight", resolve.DefaultTopKHighlight)

	v.SetEnvPrefix("FUZZYRUBY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(".fuzzyruby")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("fuzzyruby: load config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("fuzzyruby: bind flags: %w", err)
		}
	}

	return Config{
		LogLevel:       v.GetString("log-level"),
		TopKDefinition: v.GetInt("top-k-definition"),
		TopKHighlight:  v.GetInt("top-k-highlight"),
	}, nil
}

// EngineOptions translates a Config into the Engine options that apply to
// it, for callers building an Engine from CLI/env/file configuration.
func (c Config) EngineOptions() []Option {
	return []Option{
		WithTopKDefinition(c.TopKDefinition),
		WithTopKHighlight(c.TopKHighlight),
		WithLogger(logging.New(c.LogLevel)),
	}
}
