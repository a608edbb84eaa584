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

package patcher

import (
	"context"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/MBoussel/patchrc/pkg/backup"
	"github.com/MBoussel/patchrc/pkg/config"
	"github.com/MBoussel/patchrc/pkg/console"
	"github.com/MBoussel/patchrc/pkg/rewrite"
)

// 🎯 Operator defines the patch operations
type Operator interface {
	// Run snapshots the working directory, then rewrites every target in place
	Run(ctx context.Context) (*Report, error)
	// Plan reports what Run would rewrite without touching any file
	Plan(ctx context.Context) (*Report, error)
}

// 🔧 Options contains configuration for the patcher
type Options struct {
	// Config describes the working directory, snapshot settings and targets
	Config *config.Config
	// Console receives user-facing progress output
	Console *console.Printer
}

// 🎮 Patcher implements Operator
type Patcher struct {
	config   *config.Config
	console  *console.Printer
	rewriter rewrite.Rewriter
}

var _ Operator = (*Patcher)(nil)

// 🏭 New creates a new patcher with the given options. Every rule pattern is
// compiled here, so a bad rule fails before any backup is taken.
func New(opts Options) (*Patcher, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Console == nil {
		return nil, errors.New("console is required")
	}

	rewriter := rewrite.NewLineRewriter()
	for _, target := range opts.Config.Targets {
		if err := rewriter.ValidateRules(toRules(target.Rules)); err != nil {
			return nil, errors.Errorf("target %s: %w", target.File, err)
		}
	}

	return &Patcher{
		config:   opts.Config,
		console:  opts.Console,
		rewriter: rewriter,
	}, nil
}

// 📊 TargetResult pairs one target file with its rewrite outcome
type TargetResult struct {
	// File is the target path relative to the working directory
	File string

	// Missing is set by Plan when the target file does not exist
	Missing bool

	// Result holds the rewrite outcome; nil when Missing is set
	Result *rewrite.Result
}

// 📋 Report describes everything one Run or Plan saw and did
type Report struct {
	// WorkDir is the directory the operation ran against
	WorkDir string

	// BackupDir is the snapshot directory path; empty for Plan
	BackupDir string

	// Backup lists the captured files; nil for Plan
	Backup *backup.Manifest

	// Targets holds per-target outcomes in configured order
	Targets []TargetResult
}

// statWorkDir verifies the working directory exists before anything else runs
func (p *Patcher) statWorkDir() error {
	info, err := os.Stat(p.config.WorkDir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrWorkDirMissing, p.config.WorkDir)
		}
		return errors.Errorf("inspecting working directory: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrWorkDirMissing, p.config.WorkDir)
	}
	return nil
}

// sourceName names where the config came from for the console header
func (p *Patcher) sourceName() string {
	if loc := p.config.Location(); loc != "" {
		return loc
	}
	return "built-in rules"
}

// toRules converts config rules into rewrite rules
func toRules(in []config.RewriteRule) []rewrite.Rule {
	rules := make([]rewrite.Rule, 0, len(in))
	for _, r := range in {
		rules = append(rules, rewrite.Rule{Pattern: r.Pattern, Replace: r.Replace})
	}
	return rules
}
