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

package commands

import (
	"context"
	"fmt"

	"code.vegaprotocol.io/loopvault/config"
	vgjson "code.vegaprotocol.io/loopvault/libs/json"
	"code.vegaprotocol.io/loopvault/logging"
	"code.vegaprotocol.io/loopvault/paths"

	"github.com/jessevdk/go-flags"
)

type InitCmd struct {
	config.HomeFlag
	config.OutputFlag

	Force bool `description:"Erase existing configuration at the specified path" long:"force" short:"f"`
}

var initCmd InitCmd

func (cmd *InitCmd) Execute(_ []string) error {
	logDefaultConfig := logging.NewDefaultConfig()
	log := logging.NewLoggerFromConfig(logDefaultConfig)
	defer log.AtExit()

	output, err := cmd.OutputFlag.GetOutput()
	if err != nil {
		return err
	}

	loopvaultPaths := paths.New(cmd.Home)

	cfgLoader, err := config.InitialiseLoader(loopvaultPaths)
	if err != nil {
		return fmt.Errorf("couldn't initialise configuration loader: %w", err)
	}

	configExists, err := cfgLoader.ConfigExists()
	if err != nil {
		return fmt.Errorf("couldn't verify configuration presence: %w", err)
	}

	if configExists && !cmd.Force {
		return fmt.Errorf("configuration already exists at `%s`, please remove it first or re-run using -f", cfgLoader.ConfigFilePath())
	}

	if configExists && cmd.Force {
		log.Info("removing existing configuration",
			logging.String("path", cfgLoader.ConfigFilePath()))
		cfgLoader.Remove()
	}

	cfg := config.NewDefaultConfig()
	if err := cfgLoader.Save(&cfg); err != nil {
		return fmt.Errorf("couldn't save configuration: %w", err)
	}

	result := struct {
		ConfigFilePath string `json:"configFilePath"`
	}{
		ConfigFilePath: cfgLoader.ConfigFilePath(),
	}

	if output.IsHuman() {
		log.Info("configuration generated successfully",
			logging.String("path", cfgLoader.ConfigFilePath()))
	} else if output.IsJSON() {
		return vgjson.Print(result)
	}

	return nil
}

func Init(_ context.Context, parser *flags.Parser) error {
	initCmd = InitCmd{}

	_, err := parser.AddCommand("init", "Initialise a loopvault node", "Generate the minimal configuration required for a loopvault node to start", &initCmd)
	return err
}
