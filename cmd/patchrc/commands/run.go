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

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Back up the working directory, then patch the targets in place",
		Long: `Run performs the full patch sequence.
It will:
1. Copy every file matching the backup patterns into a fresh timestamped directory
2. Apply each target's rewrite rules in listed order
3. Write modified targets back in place
4. Name every line it rewrote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			p, err := patcher.New(patcher.Options{
				Config:  opts.Config,
				Console: opts.Printer,
			})
			if err != nil {
				return errors.Errorf("creating patcher: %w", err)
			}

			report, err := p.Run(ctx)
			if err != nil {
				return errors.Errorf("patching files: %w", err)
			}

			// Name each rewritten line
			rewritten := 0
			for _, target := range report.Targets {
				for _, m := range target.Result.Matches {
					opts.Changes.LogMatch(console.LineChange{
						Path:   target.File,
						Line:   m.Line,
						Rule:   m.Rule,
						Before: m.Before,
						After:  m.After,
					})
				}
				opts.Changes.LogTargetSummary(target.File, target.Result.MatchCount, target.Result.WasModified)
				rewritten += target.Result.MatchCount
			}
			opts.Changes.LogValidation(true, fmt.Sprintf("Rewrote %d line(s) across %d target(s)", rewritten, len(report.Targets)), nil)

			return nil
		},
	}

	return cmd
}
