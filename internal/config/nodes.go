package config

import (
	"github.com/averonne/chainsight/pkg/health"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Nodes struct {
	Registry []health.Node
	Current  string
}

const (
	Cfg_nodes_registry = "nodes.registry"
	Cfg_nodes_current  = "nodes.current"
)

var (
	nodeDefaults = map[string]interface{}{
		Cfg_nodes_registry: []map[string]string{
			{"url": "http://localhost:6000", "name": "Node 0"},
			{"url": "http://localhost:6001", "name": "Node 1"},
			{"url": "http://localhost:6002", "name": "Node 2"},
		},
		Cfg_nodes_current: "http://localhost:6000",
	}
)

func init() {
	for k, v := range nodeDefaults {
		viper.SetDefault(k, v)
	}
}

func buildNodesConfig() (*Nodes, error) {
	c := &Nodes{}

	var raw []struct {
		URL  string `mapstructure:"url"`
		Name string `mapstructure:"name"`
	}

	if err := viper.UnmarshalKey(Cfg_nodes_registry, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshaling node registry")
	}

	for _, n := range raw {
		if n.URL == "" {
			return nil, errors.New("node registry entry missing url")
		}
		c.Registry = append(c.Registry, health.Node{URL: n.URL, DisplayName: n.Name})
	}

	c.Current = viper.GetString(Cfg_nodes_current)
	if c.Current == "" && len(c.Registry) > 0 {
		c.Current = c.Registry[0].URL
	}

	return c, nil
}
