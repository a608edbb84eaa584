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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MBoussel/patchrc/cmd/patchrc/commands"
	"github.com/MBoussel/patchrc/cmd/patchrc/opts"
	"github.com/MBoussel/patchrc/pkg/console"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Filled in by PersistentPreRunE once flags are parsed
	root := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "patchrc",
		Short: "Back up a directory, then rewrite matched lines in its files",
		Long: `patchrc copies every matching file of a working directory into a fresh
timestamped backup directory, then applies ordered line-rewrite rules to the
configured target files in place.

Without a config file it runs its built-in ruleset: strip the redundant
Dict return annotations from the auth and familles routers under app/routers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			resolved, err := newRootOpts(cmd)
			if err != nil {
				return err
			}
			*root = *resolved
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRunCmd(root),
		commands.NewPlanCmd(root),
		NewVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		console.NewChangeLogger(ctx).LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
