/*
 * config_test.go, part of cmview.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv(EnvPyMolURL, "")
	t.Setenv(EnvTinkerBin, "")
	t.Setenv(EnvTempDir, "")
	C, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), C)
	assert.Equal(t, "http://localhost:9123", C.PyMol.URL)
	assert.Equal(t, "Ca", C.Contacts.Type)
	assert.InDelta(t, 8.0, C.Contacts.Cutoff, 0)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvPyMolURL, "")
	t.Setenv(EnvTinkerBin, "/opt/tinker/bin")
	t.Setenv(EnvTempDir, "")
	p := filepath.Join(t.TempDir(), "cmview.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
pymol:
  url: tcp://localhost:9876
tinker:
  bin_dir: /usr/local/tinker
  keep_files: true
contacts:
  type: Cb
  cutoff: 6.5
  min_seq_sep: 3
`), 0o644))
	C, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:9876", C.PyMol.URL)
	assert.Equal(t, "/opt/tinker/bin", C.Tinker.BinDir, "environment should win over the file")
	assert.True(t, C.Tinker.KeepFiles)
	assert.Equal(t, "amber99", C.Tinker.Param, "unset keys keep their defaults")
	assert.Equal(t, Contacts{Type: "Cb", Cutoff: 6.5, MinSeqSep: 3}, C.Contacts)
}

func TestConfigEnvPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(p, []byte("temp_dir: /scratch\n"), 0o644))
	t.Setenv(EnvConfig, p)
	t.Setenv(EnvTempDir, "")
	assert.Equal(t, p, Path())
	C, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/scratch", C.TempDir)
}

func TestValidate(t *testing.T) {
	for name, mod := range map[string]func(*Config){
		"cutoff":     func(C *Config) { C.Contacts.Cutoff = 0 },
		"type":       func(C *Config) { C.Contacts.Type = "XX" },
		"seq sep":    func(C *Config) { C.Contacts.MinSeqSep, C.Contacts.MaxSeqSep = 5, 2 },
		"force":      func(C *Config) { C.Tinker.Force = -1 },
		"zero force": func(C *Config) { C.Tinker.Force = 0 },
	} {
		C := Default()
		mod(&C)
		assert.ErrorIs(t, C.Validate(), ErrInvalid, name)
	}
	C := Default()
	C.Contacts.MinSeqSep = 5
	assert.NoError(t, C.Validate(), "a disabled max bound is fine")

	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("contacts: [1, 2"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)
}
