package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	defaults = map[string]interface{}{
		"verbose":         false,
		"api_port":        5001,
		"poll_interval":   5 * time.Second,
		"request_timeout": 5 * time.Second,
		"profile.store":   "file",
		"profile.path":    "$HOME/.chainsight/profile.yaml",
		"profile.leveldb": "$HOME/.chainsight/profile.db",
		"node_rate_limit": 10,
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("chainsight")
	viper.AddConfigPath("/etc/chainsight/")
	viper.AddConfigPath("$HOME/.chainsight")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("CHAINSIGHT")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logrus.New().Warnf("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	c := &Config{}

	c.nodes, err = buildNodesConfig()
	if err != nil {
		return nil, errors.Wrap(err, "nodes config")
	}

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

type Config struct {
	nodes *Nodes
}

func (c *Config) Nodes() *Nodes {
	return c.nodes
}

func (c *Config) PollInterval() time.Duration {
	return viper.GetDuration("poll_interval")
}

func (c *Config) RequestTimeout() time.Duration {
	return viper.GetDuration("request_timeout")
}
