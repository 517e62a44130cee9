// Package config loads run defaults from file, environment, and built-in
// values. Precedence: CLI flags > env (DATALENS_*) > config file > defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/pkg/errors"
)

// Config holds the tunable run parameters.
type Config struct {
	// OutputDir is the report output directory.
	OutputDir string `mapstructure:"output_dir"`
	// MaxUnique is the cardinality threshold for the categorical classifier.
	MaxUnique int `mapstructure:"max_unique"`
	// MaxCategories caps bar-chart categories before the "Other" bucket.
	MaxCategories int `mapstructure:"max_categories"`
	// OutlierMethod is "iqr" or "zscore".
	OutlierMethod string `mapstructure:"outlier_method"`
}

// Load reads configuration. cfgFile may be empty, in which case
// ~/.datalens/config.yaml is used when present.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DATALENS")
	v.AutomaticEnv()

	v.SetDefault("output_dir", "reports")
	v.SetDefault("max_unique", dataset.DefaultMaxUnique)
	v.SetDefault("max_categories", dataset.DefaultMaxCategories)
	v.SetDefault("outlier_method", string(cleaning.MethodIQR))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfgFile)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".datalens"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Missing default config is fine; a malformed one is not.
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, errors.Wrap(err, "read default config")
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if _, err := cleaning.ParseOutlierMethod(c.OutlierMethod); err != nil {
		return nil, err
	}
	return &c, nil
}
