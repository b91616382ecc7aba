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
	"code.vegaprotocol.io/loopvault/version"

	"github.com/jessevdk/go-flags"
)

type VersionCmd struct {
	config.OutputFlag

	version string
	hash    string
}

var versionCmd VersionCmd

func (cmd *VersionCmd) Execute(_ []string) error {
	output, err := cmd.OutputFlag.GetOutput()
	if err != nil {
		return err
	}

	if output.IsHuman() {
		fmt.Printf("Loopvault CLI %s (%s)\n", cmd.version, cmd.hash)
		return nil
	}

	return vgjson.Print(struct {
		Version string `json:"version"`
		Hash    string `json:"hash"`
	}{
		Version: cmd.version,
		Hash:    cmd.hash,
	})
}

func Version(_ context.Context, parser *flags.Parser) error {
	versionCmd = VersionCmd{
		version: version.Get(),
		hash:    version.GetCommitHash(),
	}

	_, err := parser.AddCommand("version", "Show version info", "Show the version and commit hash this binary was built from", &versionCmd)
	return err
}
