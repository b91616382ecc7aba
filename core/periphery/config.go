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

package periphery

import (
	"code.vegaprotocol.io/loopvault/config/encoding"
	"code.vegaprotocol.io/loopvault/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'api.grpc'.
const namedLogger = "periphery"

// Config is the configuration of the periphery package.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// MaxFlashFeeBps rejects flash loans quoting a fee above this, a
	// misquoting provider fails the operation before any swap happens.
	MaxFlashFeeBps uint64 `long:"max-flash-fee-bps"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		MaxFlashFeeBps: 100,
	}
}
