// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

//lint:file-ignore SA5008 duplicated struct tags are ok for config

package config

import (
	"fmt"
	"os"

	"code.vegaprotocol.io/loopvault/core/broker"
	"code.vegaprotocol.io/loopvault/core/marketsim"
	"code.vegaprotocol.io/loopvault/core/metrics"
	"code.vegaprotocol.io/loopvault/core/periphery"
	"code.vegaprotocol.io/loopvault/core/rebalance"
	"code.vegaprotocol.io/loopvault/core/vault"
	vgfs "code.vegaprotocol.io/loopvault/libs/fs"
	"code.vegaprotocol.io/loopvault/logging"
	"code.vegaprotocol.io/loopvault/paths"
)

// Config ties together all other application configuration types.
type Config struct {
	Vault     vault.Config     `group:"Vault" namespace:"vault"`
	Rebalance rebalance.Config `group:"Rebalance" namespace:"rebalance"`
	Periphery periphery.Config `group:"Periphery" namespace:"periphery"`
	MarketSim marketsim.Config `group:"MarketSim" namespace:"marketsim"`
	Broker    broker.Config    `group:"Broker" namespace:"broker"`
	Metrics   metrics.Config   `group:"Metrics" namespace:"metrics"`
	Logging   logging.Config   `group:"Logging" namespace:"logging"`
}

// NewDefaultConfig returns a set of default configs for all loopvault
// packages, as specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		Vault:     vault.NewDefaultConfig(),
		Rebalance: rebalance.NewDefaultConfig(),
		Periphery: periphery.NewDefaultConfig(),
		MarketSim: marketsim.NewDefaultConfig(),
		Broker:    broker.NewDefaultConfig(),
		Metrics:   metrics.NewDefaultConfig(),
		Logging:   logging.NewDefaultConfig(),
	}
}

// Loader reads and writes the node configuration file at its well-known
// location, as resolved by the Paths implementation.
type Loader struct {
	configFilePath string
}

// InitialiseLoader creates the configuration directory if needed and returns
// a loader bound to the node configuration file.
func InitialiseLoader(p paths.Paths) (*Loader, error) {
	configFilePath, err := p.CreateConfigPathFor(paths.NodeDefaultConfigFile)
	if err != nil {
		return nil, fmt.Errorf("couldn't get path for %s: %w", paths.NodeDefaultConfigFile, err)
	}

	return &Loader{
		configFilePath: configFilePath,
	}, nil
}

func (l *Loader) ConfigFilePath() string {
	return l.configFilePath
}

func (l *Loader) ConfigExists() (bool, error) {
	exists, err := vgfs.FileExists(l.configFilePath)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Get reads the configuration file, layered on top of the defaults so that
// newly added fields keep their default value when absent from the file.
func (l *Loader) Get() (*Config, error) {
	cfg := NewDefaultConfig()
	if err := paths.ReadStructuredFile(l.configFilePath, &cfg); err != nil {
		return nil, fmt.Errorf("couldn't read configuration file at %s: %w", l.configFilePath, err)
	}
	return &cfg, nil
}

func (l *Loader) Save(cfg *Config) error {
	if err := paths.WriteStructuredFile(l.configFilePath, cfg); err != nil {
		return fmt.Errorf("couldn't write configuration file at %s: %w", l.configFilePath, err)
	}
	return nil
}

func (l *Loader) Remove() {
	_ = os.RemoveAll(l.configFilePath)
}

// EnsureNodeConfig errors out with a pointer at `init` when the node has not
// been initialised yet.
func EnsureNodeConfig(loopvaultPaths paths.Paths) (*Loader, *Config, error) {
	cfgLoader, err := InitialiseLoader(loopvaultPaths)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't initialise configuration loader: %w", err)
	}

	configExists, err := cfgLoader.ConfigExists()
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't verify configuration presence: %w", err)
	}
	if !configExists {
		return nil, nil, fmt.Errorf("node has not been initialised, please run `%s init`", os.Args[0])
	}

	cfg, err := cfgLoader.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't get configuration: %w", err)
	}

	return cfgLoader, cfg, nil
}
