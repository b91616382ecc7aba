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

package config

import "fmt"

// Empty is used when a command or sub-command does not need any arguments.
type Empty struct{}

// HomeFlag points the command at a custom home directory instead of the
// default XDG locations.
type HomeFlag struct {
	Home string `description:"Path to use as the home directory, instead of the default XDG paths" long:"home" short:"r"`
}

type Output string

const (
	// HumanOutput reports the command result as text meant for humans.
	HumanOutput Output = "human"
	// JSONOutput reports the command result as a JSON document.
	JSONOutput Output = "json"
)

func (o Output) IsHuman() bool {
	return o == HumanOutput
}

func (o Output) IsJSON() bool {
	return o == JSONOutput
}

// OutputFlag selects the format commands report their result in.
type OutputFlag struct {
	Output Output `choice:"human" choice:"json" default:"human" description:"Output format" long:"output"`
}

func (f OutputFlag) GetOutput() (Output, error) {
	switch f.Output {
	case HumanOutput, JSONOutput:
		return f.Output, nil
	default:
		return "", fmt.Errorf("unsupported output \"%s\"", f.Output)
	}
}
