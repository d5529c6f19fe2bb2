// Package conf contains utility functions for loading and parsing configuration files.
package conf

import (
	"os"

	"github.com/spf13/viper"
)

// APIConf describes a default configuration for the SocialSphere API.
type APIConf struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
	Rate    int    `mapstructure:"rate"`
}

// RedisConf describes a default configuration for the redis.
type RedisConf struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	Database   int    `mapstructure:"database"`
	DisableTLS bool   `mapstructure:"disable_tls"`
}

// StoreConf describes a default configuration for the social data store.
type StoreConf struct {
	PageSize int  `mapstructure:"page_size"`
	Offline  bool `mapstructure:"offline"`
}

// TrackingConf describes a default configuration for analytics tracking.
type TrackingConf struct {
	MixpanelToken string `mapstructure:"mixpanel_token"`
}

// Load opens and parses a configuration file.
func Load(file string, conf interface{}) error {
	_, err := os.Stat(file)
	if err != nil {
		return err
	}

	viper.SetConfigFile(file)
	viper.SetConfigType("toml")

	err = viper.ReadInConfig()
	if err != nil {
		return err
	}

	err = viper.GetViper().Unmarshal(conf)
	if err != nil {
		return err
	}

	return nil
}
