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

package metrics

import (
	"code.vegaprotocol.io/loopvault/config/encoding"
	"code.vegaprotocol.io/loopvault/logging"
)

const namedLogger = "metrics"

// Config represents the configuration of the metric package.
type Config struct {
	Level   encoding.LogLevel `long:"log-level"`
	Enabled bool              `description:"Set to true to enable the prometheus endpoint" long:"enabled"`
	Port    int               `description:"The port the prometheus endpoint listens on" long:"port"`
	Path    string            `description:"The path the prometheus endpoint is served on" long:"path"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:   encoding.LogLevel{Level: logging.InfoLevel},
		Enabled: false,
		Port:    2112,
		Path:    "/metrics",
	}
}
