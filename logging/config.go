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

package logging

// Config contains the configurable items for this package.
type Config struct {
	Environment string `choice:"dev" choice:"prod" description:"Logger environment" long:"env"`
}

// NewDefaultConfig creates an instance of this package's configuration, with
// all the defaults set.
func NewDefaultConfig() Config {
	return Config{
		Environment: "dev",
	}
}
