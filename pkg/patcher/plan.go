package patcher

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/MBoussel/patchrc/pkg/config"
	"github.com/MBoussel/patchrc/pkg/rewrite"
)

// 🔍 Plan implements Operator.Plan. Nothing is written and no snapshot is
// taken, so targets can be scanned concurrently; results keep the configured
// order. A missing target is recorded in the report rather than failing the
// whole preview.
func (p *Patcher) Plan(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("work_dir", p.config.WorkDir).Msg("planning patch run")

	if err := p.statWorkDir(); err != nil {
		return nil, err
	}

	report := &Report{
		WorkDir: p.config.WorkDir,
		Targets: make([]TargetResult, len(p.config.Targets)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, target := range p.config.Targets {
		g.Go(func() error {
			result, err := p.scanTarget(ctx, target)
			if err != nil {
				if errors.Is(err, ErrTargetMissing) {
					report.Targets[i] = TargetResult{File: target.File, Missing: true}
					return nil
				}
				return err
			}
			report.Targets[i] = TargetResult{File: target.File, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

// scanTarget applies a target's rules in memory only
func (p *Patcher) scanTarget(ctx context.Context, target config.Target) (*rewrite.Result, error) {
	path := filepath.Join(p.config.WorkDir, target.File)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrTargetMissing, target.File)
		}
		return nil, errors.Errorf("opening %s: %w", target.File, err)
	}
	defer file.Close()

	result, err := p.rewriter.Rewrite(ctx, file, toRules(target.Rules))
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", target.File, err)
	}

	return result, nil
}
