// Package config holds app-wide settings unmarshalled from Viper
// (see /cmd). Settings come from an optional workshop.yaml, environment
// variables, and command line flags, in increasing precedence.
package config

import (
	"github.com/spf13/viper"
)

// EntrezConfig is settings for the NCBI client.
type EntrezConfig struct {
	// api key raising the allowed request rate; also read from the
	// NCBI_API_KEY environment variable
	APIKey string `mapstructure:"api-key"`

	// email reported to NCBI with every request
	Email string `mapstructure:"email"`

	// requests per second
	QPS int `mapstructure:"qps"`

	// path of the efetch response cache; empty picks the user cache dir
	CachePath string `mapstructure:"cache-path"`

	// cache entry lifetime in seconds; 0 keeps entries forever
	CacheTTLSecs int64 `mapstructure:"cache-ttl-seconds"`
}

// HistoryConfig selects and locates the query-history store.
type HistoryConfig struct {
	// "json" or "sqlite"
	Store string `mapstructure:"store"`

	// backing file path
	Path string `mapstructure:"path"`
}

// Config is the root-level settings struct.
type Config struct {
	// log verbosity: debug, info, warn or error
	LogLevel string `mapstructure:"log-level"`

	// optional log file appended to in addition to stderr
	LogFile string `mapstructure:"log-file"`

	Entrez  EntrezConfig  `mapstructure:"entrez"`
	History HistoryConfig `mapstructure:"history"`
}

func setDefaults() {
	viper.SetDefault("log-level", "info")
	viper.SetDefault("entrez.qps", 3)
	viper.SetDefault("entrez.cache-ttl-seconds", int64(7*24*3600))
	viper.SetDefault("history.store", "json")
	viper.SetDefault("history.path", "workshop_history.json")
}

// Load populates a Config from viper. path names an explicit config file;
// when empty, workshop.yaml in the working directory is used if present.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	setDefaults()
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("workshop")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		// only the implicit workshop.yaml is allowed to be absent
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
