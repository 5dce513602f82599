// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/luxfi/ksa-deploy/pkg/constants"
	"github.com/spf13/viper"
)

// Network is one entry of the networks section of the config file.
type Network struct {
	Name         string        `mapstructure:"-"`
	URL          string        `mapstructure:"url"`
	ChainID      uint64        `mapstructure:"chainId"`
	Accounts     []string      `mapstructure:"accounts"`
	Mnemonic     string        `mapstructure:"mnemonic"`
	HDPath       string        `mapstructure:"path"`
	InitialIndex uint32        `mapstructure:"initialIndex"`
	GasLimit     uint64        `mapstructure:"gas"`
	GasPrice     uint64        `mapstructure:"gasPrice"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type Paths struct {
	Artifacts   string `mapstructure:"artifacts"`
	Deployments string `mapstructure:"deployments"`
}

type Config struct {
	DefaultNetwork string             `mapstructure:"defaultNetwork"`
	Networks       map[string]Network `mapstructure:"networks"`
	Paths          Paths              `mapstructure:"paths"`
}

// Load decodes the config file section of v and fills in defaults.
// Network names are matched case-insensitively, as viper lowercases keys.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed decoding config: %w", err)
	}
	networks := make(map[string]Network, len(cfg.Networks)+1)
	for name, network := range cfg.Networks {
		name = strings.ToLower(name)
		network.Name = name
		networks[name] = network
	}
	if _, ok := networks[constants.LocalNetwork]; !ok {
		networks[constants.LocalNetwork] = Network{
			Name: constants.LocalNetwork,
			URL:  constants.LocalNetworkURL,
		}
	}
	cfg.Networks = networks
	if cfg.Paths.Artifacts == "" {
		cfg.Paths.Artifacts = constants.DefaultArtifactsDir
	}
	return cfg, nil
}

// NetworkNames returns the configured network names, sorted.
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Network returns the named network. An empty name selects the default
// network, falling back to localhost.
func (c *Config) Network(name string) (Network, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	if name == "" {
		name = constants.LocalNetwork
	}
	network, ok := c.Networks[strings.ToLower(name)]
	if !ok {
		return Network{}, fmt.Errorf("%w %q (available: %s)", constants.ErrUnknownNetwork, name, strings.Join(c.NetworkNames(), ", "))
	}
	return network, nil
}

// SelectNetwork resolves the target network from v and applies the
// flag and env overrides bound on it.
// Priority: flags > env vars > config file > defaults
func (c *Config) SelectNetwork(v *viper.Viper) (Network, error) {
	network, err := c.Network(v.GetString(constants.ConfigNetwork))
	if err != nil {
		return Network{}, err
	}
	if url := v.GetString(constants.ConfigRPCURL); url != "" {
		network.URL = url
	}
	if chainID := v.GetUint64(constants.ConfigChainID); chainID != 0 {
		network.ChainID = chainID
	}
	if key := v.GetString(constants.ConfigPrivateKey); key != "" {
		network.Accounts = []string{key}
	}
	if mnemonic := v.GetString(constants.ConfigMnemonic); mnemonic != "" {
		network.Mnemonic = mnemonic
	}
	if timeout := v.GetDuration(constants.ConfigTimeout); timeout != 0 {
		network.Timeout = timeout
	}
	if network.HDPath == "" {
		network.HDPath = constants.DefaultHDPath
	}
	if network.URL == "" {
		return Network{}, fmt.Errorf("%w: %s", constants.ErrMissingNetworkURL, network.Name)
	}
	return network, nil
}

// ArtifactsDir returns the artifacts directory, honoring the --artifacts override.
func (c *Config) ArtifactsDir(v *viper.Viper) string {
	if dir := v.GetString(constants.ConfigArtifacts); dir != "" {
		return dir
	}
	return c.Paths.Artifacts
}

// RecordDir returns the deployment records directory, or "" when records are disabled.
func (c *Config) RecordDir(v *viper.Viper) string {
	if dir := v.GetString(constants.ConfigRecordDir); dir != "" {
		return dir
	}
	return c.Paths.Deployments
}
