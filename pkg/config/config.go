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

package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 RewriteRule represents one line rewrite in a target file
type RewriteRule struct {
	Pattern string `json:"pattern" yaml:"pattern"` // Go regular expression matched against each line
	Replace string `json:"replace" yaml:"replace"` // Replacement text, ${n} expands capture groups
}

// 🎯 Target represents one file to patch and the rules to apply to it
type Target struct {
	File  string        `json:"file" yaml:"file"`   // Path relative to work_dir
	Rules []RewriteRule `json:"rules" yaml:"rules"` // Applied in listed order
}

// 📦 BackupArgs represents snapshot configuration
type BackupArgs struct {
	Prefix   string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`     // Snapshot directory name prefix
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"` // Base-name globs to capture
}

// 📚 Config represents the complete configuration
type Config struct {
	WorkDir string     `json:"work_dir" yaml:"work_dir"`                 // Directory holding the targets
	Backup  BackupArgs `json:"backup,omitempty" yaml:"backup,omitempty"` // Snapshot settings
	Targets []Target   `json:"targets" yaml:"targets"`                   // Files to patch

	location string // Path the config was loaded from, empty for the built-in default
}

// 🔍 Validate checks the configuration shape and fills in defaults. Rule
// patterns are only checked for presence here; whether they compile is the
// patcher's concern.
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("targets", len(cfg.Targets)).Msg("validating configuration")

	if cfg.WorkDir == "" {
		return errors.New("work_dir is required")
	}
	cfg.WorkDir = filepath.Clean(cfg.WorkDir)

	// Set defaults
	if cfg.Backup.Prefix == "" {
		cfg.Backup.Prefix = "backup"
	}
	if len(cfg.Backup.Patterns) == 0 {
		cfg.Backup.Patterns = []string{"*"}
	}

	if len(cfg.Targets) == 0 {
		return errors.New("at least one target is required")
	}
	for i, target := range cfg.Targets {
		if target.File == "" {
			return errors.Errorf("target %d: file is required", i)
		}
		if filepath.IsAbs(target.File) {
			return errors.Errorf("target %d: file must be relative to work_dir", i)
		}
		if len(target.Rules) == 0 {
			return errors.Errorf("target %d: at least one rule is required", i)
		}
		for j, rule := range target.Rules {
			if rule.Pattern == "" {
				return errors.Errorf("target %d: rule %d: pattern is required", i, j)
			}
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s: %d targets, backup %s_*", cfg.WorkDir, len(cfg.Targets), cfg.Backup.Prefix)
}

// 🔐 Hash returns a stable hex fingerprint of the configuration
func (cfg *Config) Hash() string {
	data, err := json.Marshal(cfg)
	if err != nil {
		// Config is plain data, marshaling cannot fail in practice
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// 📍 Location returns the path the config was loaded from, or an empty
// string for the built-in default
func (cfg *Config) Location() string {
	return cfg.location
}
