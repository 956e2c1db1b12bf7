/*
Copyright © 2019 the Cubical authors.
This file is part of Cubical.

Cubical is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Cubical is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Cubical.  If not, see <http://www.gnu.org/licenses/>.
*/

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigData holds the options of a configuration file. Keys are the
// field names, matched without regard to case; every field has the same
// meaning as the corresponding flag (MinCacheSize is --min_cache_size).
// Pointer fields distinguish "unset" from a zero value.
type ConfigData struct {
	// Input is the grid file to read. A positional command-line argument
	// overrides it.
	Input string

	// Output is the persistence diagram file to write.
	Output string

	Threshold    *float64
	MaxDim       *int
	Method       string
	MinCacheSize *int
	Location     string
	Print        *bool
}

// readConfigFile reads the configuration file at path, expanding
// environment variables in file names. An empty path yields an empty
// configuration.
func readConfigFile(path string) (*ConfigData, error) {
	c := new(ConfigData)
	if path == "" {
		return c, nil
	}
	if _, err := toml.DecodeFile(os.ExpandEnv(path), c); err != nil {
		return nil, fmt.Errorf("problem reading configuration file %s: %v", path, err)
	}
	dir := filepath.Dir(os.ExpandEnv(path))
	c.Input = expandPath(c.Input, dir)
	c.Output = expandPath(c.Output, dir)
	return c, nil
}

// expandPath expands environment variables in p and makes it relative to
// the configuration file's directory rather than the working directory.
func expandPath(p, dir string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
