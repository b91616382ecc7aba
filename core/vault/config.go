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

package vault

import (
	"code.vegaprotocol.io/loopvault/config/encoding"
	"code.vegaprotocol.io/loopvault/logging"
)

const (
	// namedLogger is the identifier for package and should ideally match the package name
	// this is simply emitted as a hierarchical label e.g. 'api.grpc'.
	namedLogger = "vault"

	defaultDeltaTolerance = 1
)

// Config is the configuration of the vault package.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// DeltaTolerance is the number of native units a lending market balance
	// delta may fall short of the requested amount before the operation is
	// treated as a market integrity violation. Covers 1-unit market rounding.
	DeltaTolerance uint64 `long:"delta-tolerance"`

	// MaxPriceAge rejects oracle prices older than this, zero disables the
	// staleness check.
	MaxPriceAge encoding.Duration `long:"max-price-age"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		DeltaTolerance: defaultDeltaTolerance,
		MaxPriceAge:    encoding.Duration{Duration: 0},
	}
}
