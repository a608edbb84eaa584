package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/MBoussel/patchrc/cmd/patchrc/opts"
	"github.com/MBoussel/patchrc/pkg/console"
	"github.com/MBoussel/patchrc/pkg/patcher"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview which lines a run would rewrite",
		Long: `Plan scans the targets without touching anything.
It will:
1. Apply each target's rules in memory only
2. Show every line that would change, with an inline diff
3. Report targets that are missing or have no matches

No backup is taken and no file is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "plan").Logger().WithContext(ctx)

			p, err := patcher.New(patcher.Options{
				Config:  opts.Config,
				Console: opts.Printer,
			})
			if err != nil {
				return errors.Errorf("creating patcher: %w", err)
			}

			report, err := p.Plan(ctx)
			if err != nil {
				return errors.Errorf("scanning targets: %w", err)
			}

			pending := 0
			for _, target := range report.Targets {
				if target.Missing {
					opts.Changes.LogValidation(false, fmt.Sprintf("Target %s does not exist", target.File), nil)
					continue
				}
				for _, m := range target.Result.Matches {
					opts.Changes.LogMatch(console.LineChange{
						Path:   target.File,
						Line:   m.Line,
						Rule:   m.Rule,
						Before: m.Before,
						After:  m.After,
					})
				}
				opts.Changes.LogTargetPlan(target.File, target.Result.MatchCount, target.Result.WasModified)
				pending += target.Result.MatchCount
			}

			if pending == 0 {
				opts.Changes.LogValidation(true, "Nothing to do", nil)
				return nil
			}
			opts.Changes.LogValidation(true, fmt.Sprintf("A run would rewrite %d line(s)", pending), nil)

			return nil
		},
	}

	return cmd
}
