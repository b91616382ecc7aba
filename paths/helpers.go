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

package paths

import (
	"bytes"
	"fmt"

	vgfs "code.vegaprotocol.io/loopvault/libs/fs"

	"github.com/BurntSushi/toml"
)

// ReadStructuredFile reads the TOML file at the given path into v.
func ReadStructuredFile(path string, v interface{}) error {
	data, err := vgfs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't read file at %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return fmt.Errorf("couldn't unmarshal file at %s: %w", path, err)
	}
	return nil
}

// WriteStructuredFile marshals v to TOML and writes it at the given path.
func WriteStructuredFile(path string, v interface{}) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(v); err != nil {
		return fmt.Errorf("couldn't marshal content for file at %s: %w", path, err)
	}
	if err := vgfs.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("couldn't write file at %s: %w", path, err)
	}
	return nil
}
