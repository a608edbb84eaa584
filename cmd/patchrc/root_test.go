// Copyright 2025 MBoussel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
work_dir: app/routers
backup:
  patterns: ["*.py"]
targets:
  - file: auth.py
    rules:
      - pattern: '\) -> Dict\[str, str\]:$'
        replace: '):'
`

// snapshotFlags restores the package-level flag variables after the test;
// addRootFlags rebinds them to their defaults, so every test that touches
// them registers this first
func snapshotFlags(t *testing.T) {
	t.Helper()
	prevConfig, prevDir, prevDebug := configFile, workDir, debug
	t.Cleanup(func() {
		configFile, workDir, debug = prevConfig, prevDir, prevDebug
	})
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.Disabled)
	return logger.WithContext(context.Background())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T) (path string, explicit bool)
		wantErr     bool
		errContains string
		wantBuiltin bool
	}{
		{
			name: "explicit_config_loads",
			setup: func(t *testing.T) (string, bool) {
				path := filepath.Join(t.TempDir(), "patchrc.yaml")
				require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))
				return path, true
			},
		},
		{
			name: "explicit_config_missing_fails",
			setup: func(t *testing.T) (string, bool) {
				return filepath.Join(t.TempDir(), "nope.yaml"), true
			},
			wantErr:     true,
			errContains: "reading config file",
		},
		{
			name: "default_path_loads_when_present",
			setup: func(t *testing.T) (string, bool) {
				path := filepath.Join(t.TempDir(), ".patchrc.yaml")
				require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))
				return path, false
			},
		},
		{
			name: "built_in_rules_when_default_path_absent",
			setup: func(t *testing.T) (string, bool) {
				return filepath.Join(t.TempDir(), ".patchrc.yaml"), false
			},
			wantBuiltin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshotFlags(t)
			path, explicit := tt.setup(t)
			configFile = path

			cfg, err := loadConfig(testContext(t), explicit)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.wantBuiltin {
				assert.Empty(t, cfg.Location(), "built-in rules have no source file")
				assert.Equal(t, "app/routers", cfg.WorkDir)
				return
			}
			assert.Equal(t, path, cfg.Location())
		})
	}
}

func TestNewRootOpts_DirOverride(t *testing.T) {
	snapshotFlags(t)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "patchrc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigYAML), 0644))
	override := filepath.Join(tmpDir, "routers")

	cmd := &cobra.Command{}
	addRootFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--dir", override}))
	cmd.SetContext(testContext(t))

	opts, err := newRootOpts(cmd)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, opts.Config.Location())
	assert.Equal(t, override, opts.Config.WorkDir, "--dir should override the configured work_dir")
	require.NotNil(t, opts.Printer)
	require.NotNil(t, opts.Changes)
}

func TestAddRootFlags(t *testing.T) {
	snapshotFlags(t)

	cmd := &cobra.Command{}
	addRootFlags(cmd)

	config, err := cmd.PersistentFlags().GetString("config")
	require.NoError(t, err)
	assert.Equal(t, ".patchrc.yaml", config)

	dir, err := cmd.PersistentFlags().GetString("dir")
	require.NoError(t, err)
	assert.Empty(t, dir)

	debugFlag, err := cmd.PersistentFlags().GetBool("debug")
	require.NoError(t, err)
	assert.False(t, debugFlag)
}
