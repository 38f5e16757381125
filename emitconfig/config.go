// Copyright (C) 2024 Willcharlton, Inc.
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

// Package emitconfig loads the emitter's tunables (max label count,
// optimization level, target word size) from a YAML document.
package emitconfig

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/willcharlton/pybc/diag"
)

// Config is the resolved set of emitter tunables.
type Config struct {
	MaxNumLabels      int `json:"maxNumLabels"`
	OptimizationLevel int `json:"optimizationLevel"`
	WordSize          int `json:"wordSize"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{MaxNumLabels: 256, OptimizationLevel: 0, WordSize: 8}
}

// Load reads and validates a Config from a YAML file at path.
func Load(sess diag.Session, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("emitconfig: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("emitconfig: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(sess); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports a *diag.Error for any value a real compiler run
// could not use; these are configuration mistakes, not compiler bugs,
// so they are returned rather than panicked.
func (c Config) Validate(sess diag.Session) error {
	if c.MaxNumLabels <= 0 {
		return sess.Errf(0, "maxNumLabels must be positive, got %d", c.MaxNumLabels)
	}
	if c.WordSize != 4 && c.WordSize != 8 {
		return sess.Errf(0, "wordSize must be 4 or 8, got %d", c.WordSize)
	}
	return nil
}
