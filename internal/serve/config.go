package serve

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the artifact server settings.
type Config struct {
	Addr          string `mapstructure:"addr"`
	Artifact      string `mapstructure:"artifact"`
	RatePerSecond int    `mapstructure:"rate_per_second"`
	RateBurst     int    `mapstructure:"rate_burst"`
}

// LoadConfig reads configuration from an optional yaml file and from
// TRIPSERVE_ environment variables. Missing config files are fine;
// defaults cover everything.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("tripserve")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/tripscope")
	}

	v.SetDefault("addr", ":8585")
	v.SetDefault("artifact", "trips.geojson")
	v.SetDefault("rate_per_second", 20)
	v.SetDefault("rate_burst", 40)

	v.AutomaticEnv()
	v.SetEnvPrefix("TRIPSERVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
