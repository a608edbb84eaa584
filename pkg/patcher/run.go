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
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/MBoussel/patchrc/pkg/backup"
	"github.com/MBoussel/patchrc/pkg/config"
	"github.com/MBoussel/patchrc/pkg/console"
	"github.com/MBoussel/patchrc/pkg/rewrite"
)

// writeFile is swapped in tests to exercise write-back failures
var writeFile = os.WriteFile

// 🏃 Run implements Operator.Run. The sequence is strictly ordered: the
// snapshot is fully written before the first target is read, and each target
// completes before the next begins. There is no retry and no rollback; the
// snapshot directory is the only safety net.
func (p *Patcher) Run(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("work_dir", p.config.WorkDir).Msg("starting patch run")

	p.console.StartRun(ctx, console.RunInfo{
		WorkDir: p.config.WorkDir,
		Source:  p.sourceName(),
		Targets: len(p.config.Targets),
	})
	defer p.console.EndRun(ctx)

	if err := p.statWorkDir(); err != nil {
		return nil, err
	}

	report := &Report{WorkDir: p.config.WorkDir}

	// Snapshot first. Targets are only touched once this returns.
	manifest, err := backup.Snapshot(ctx, backup.Options{
		Dir:      p.config.WorkDir,
		Prefix:   p.config.Backup.Prefix,
		Patterns: p.config.Backup.Patterns,
	})
	if err != nil {
		return nil, errors.Errorf("%w: %w", ErrBackupFailed, err)
	}
	report.BackupDir = manifest.Dir
	report.Backup = manifest

	for _, f := range manifest.Files {
		p.console.LogFileEvent(ctx, console.FileEvent{
			Path:   f.Name,
			Action: console.ActionBackedUp,
		})
	}
	p.console.Successf("backup created: %s", manifest.Dir)

	for _, target := range p.config.Targets {
		result, err := p.patchTarget(ctx, target)
		if err != nil {
			p.console.LogFileEvent(ctx, console.FileEvent{
				Path:   target.File,
				Action: console.ActionFailed,
				Err:    err,
			})
			return nil, err
		}
		report.Targets = append(report.Targets, TargetResult{File: target.File, Result: result})

		action := console.ActionUnchanged
		if result.WasModified {
			action = console.ActionPatched
		}
		p.console.LogFileEvent(ctx, console.FileEvent{
			Path:    target.File,
			Action:  action,
			Matches: result.MatchCount,
		})
	}

	p.console.Success("patching complete")
	logger.Debug().Str("backup_dir", report.BackupDir).Int("targets", len(report.Targets)).Msg("patch run complete")

	return report, nil
}

// 📄 patchTarget reads one target, applies its rules, and writes the result
// back in place when anything changed. The write preserves the file's mode.
func (p *Patcher) patchTarget(ctx context.Context, target config.Target) (*rewrite.Result, error) {
	path := filepath.Join(p.config.WorkDir, target.File)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrTargetMissing, target.File)
		}
		return nil, errors.Errorf("inspecting %s: %w", target.File, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", target.File, err)
	}
	result, err := p.rewriter.Rewrite(ctx, file, toRules(target.Rules))
	closeErr := file.Close()
	if err != nil {
		return nil, errors.Errorf("rewriting %s: %w", target.File, err)
	}
	if closeErr != nil {
		return nil, errors.Errorf("closing %s: %w", target.File, closeErr)
	}

	if !result.WasModified {
		return result, nil
	}

	if err := writeFile(path, result.ModifiedContent, info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("%w: %s: %w", ErrWriteFailed, target.File, err)
	}

	return result, nil
}
