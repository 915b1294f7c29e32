// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the optional YAML file the command-line drivers
// accept via -config, pre-setting decoder bounds that would otherwise
// only be reachable by editing flags on every invocation.
package config

import (
	"os"

	"sigs.k8s.io/yaml"
)

// Decoder holds the decoder bounds a -config file may set. Zero values
// mean "leave the decoder's own default in place".
type Decoder struct {
	MaxDepth  int   `json:"max-depth,omitempty"`
	MaxLength int32 `json:"max-length,omitempty"`
}

// File is the top-level shape of a -config YAML document.
type File struct {
	Decoder Decoder `json:"decoder,omitempty"`
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
