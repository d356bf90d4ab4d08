/*
 * config.go, part of cmview.
 *
 * Copyright 2026 The cmview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config reads cmview's settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cmview/cmview/rig"
)

// Environment variables read by Load.
const (
	EnvConfig    = "CMVIEW_CONFIG"
	EnvPyMolURL  = "CMVIEW_PYMOL_URL"
	EnvTinkerBin = "CMVIEW_TINKER_BIN"
	EnvTempDir   = "CMVIEW_TEMP_DIR"
)

// DefaultFileName is looked up in the home directory when no file is given.
const DefaultFileName = ".cmview.yaml"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

type PyMol struct {
	URL    string `yaml:"url"`
	Script string `yaml:"script"`
}

type Tinker struct {
	BinDir    string  `yaml:"bin_dir"`
	Param     string  `yaml:"param"`
	Force     float64 `yaml:"force"`
	Workers   int     `yaml:"workers"`
	KeepFiles bool    `yaml:"keep_files"`
}

type Contacts struct {
	Type      string  `yaml:"type"`
	Cutoff    float64 `yaml:"cutoff"`
	MinSeqSep int     `yaml:"min_seq_sep"`
	MaxSeqSep int     `yaml:"max_seq_sep"`
}

// Config holds every setting. The zero value is not useful, start from
// Default.
type Config struct {
	PyMol    PyMol    `yaml:"pymol"`
	Tinker   Tinker   `yaml:"tinker"`
	TempDir  string   `yaml:"temp_dir"`
	Contacts Contacts `yaml:"contacts"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PyMol:    PyMol{URL: "http://localhost:9123"},
		Tinker:   Tinker{Param: "amber99", Force: 100},
		TempDir:  os.TempDir(),
		Contacts: Contacts{Type: "Ca", Cutoff: 8.0},
	}
}

// Path returns the file Load reads when given an empty path: $CMVIEW_CONFIG,
// or DefaultFileName in the home directory.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads path over the defaults and applies the environment overrides.
// An empty path means Path(). A missing file is not an error, the defaults
// are used.
func Load(path string) (Config, error) {
	C := Default()
	if path == "" {
		path = Path()
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &C); err != nil {
				return C, fmt.Errorf("config %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return C, fmt.Errorf("config %s: %w", path, err)
		}
	}
	C.applyEnv()
	return C, C.Validate()
}

func (C *Config) applyEnv() {
	if v := os.Getenv(EnvPyMolURL); v != "" {
		C.PyMol.URL = v
	}
	if v := os.Getenv(EnvTinkerBin); v != "" {
		C.Tinker.BinDir = v
	}
	if v := os.Getenv(EnvTempDir); v != "" {
		C.TempDir = v
	}
}

// Validate checks the contact settings.
func (C Config) Validate() error {
	if C.Contacts.Cutoff <= 0 {
		return fmt.Errorf("%w: contacts.cutoff must be positive, got %g", ErrInvalid, C.Contacts.Cutoff)
	}
	if _, err := rig.ParseContactType(C.Contacts.Type); err != nil {
		return fmt.Errorf("%w: contacts.type: %v", ErrInvalid, err)
	}
	if C.Contacts.MinSeqSep > 0 && C.Contacts.MaxSeqSep > 0 && C.Contacts.MaxSeqSep < C.Contacts.MinSeqSep {
		return fmt.Errorf("%w: contacts.max_seq_sep (%d) below contacts.min_seq_sep (%d)", ErrInvalid, C.Contacts.MaxSeqSep, C.Contacts.MinSeqSep)
	}
	if C.Tinker.Force <= 0 {
		return fmt.Errorf("%w: tinker.force must be positive, got %g", ErrInvalid, C.Tinker.Force)
	}
	return nil
}
