package patcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/MBoussel/patchrc/pkg/config"
)

func TestPlan(t *testing.T) {
	dir := t.TempDir()
	seedRouters(t, dir)
	before := listDir(t, dir)

	p := testPatcher(t, routersConfig(dir))
	report, err := p.Plan(context.Background())
	require.NoError(t, err)

	// Read-only: no snapshot, no writes, no new directory entries.
	assert.Empty(t, report.BackupDir)
	assert.Nil(t, report.Backup)
	assert.Equal(t, before, listDir(t, dir), "plan must not create or remove anything")

	auth, err := os.ReadFile(filepath.Join(dir, "auth.py"))
	require.NoError(t, err)
	assert.Equal(t, authContent, string(auth), "plan must not edit targets")

	require.Len(t, report.Targets, 2)

	authResult := report.Targets[0]
	assert.Equal(t, "auth.py", authResult.File)
	require.NotNil(t, authResult.Result)
	require.Len(t, authResult.Result.Matches, 1)
	assert.Equal(t, 5, authResult.Result.Matches[0].Line)
	assert.Equal(t, "def logout(response: Response) -> Dict[str, str]:", authResult.Result.Matches[0].Before)
	assert.Equal(t, "def logout(response: Response):", authResult.Result.Matches[0].After)

	famillesResult := report.Targets[1]
	assert.Equal(t, "familles.py", famillesResult.File)
	require.NotNil(t, famillesResult.Result)
	assert.Equal(t, 2, famillesResult.Result.MatchCount)
}

// Plan previews exactly the rewrites Run then applies.
func TestPlan_MatchesRun(t *testing.T) {
	dir := t.TempDir()
	seedRouters(t, dir)

	p := testPatcher(t, routersConfig(dir))

	plan, err := p.Plan(context.Background())
	require.NoError(t, err)
	run, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(plan.Targets), len(run.Targets))
	for i := range plan.Targets {
		assert.Equal(t, run.Targets[i].File, plan.Targets[i].File)
		assert.Equal(t, run.Targets[i].Result.Matches, plan.Targets[i].Result.Matches,
			"plan and run disagree on %s", plan.Targets[i].File)
	}
}

func TestPlan_MissingTargetReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.py"), []byte(authContent), 0644))
	// familles.py deliberately absent

	p := testPatcher(t, routersConfig(dir))
	report, err := p.Plan(context.Background())
	require.NoError(t, err, "a missing target must not fail the preview")

	require.Len(t, report.Targets, 2)
	assert.False(t, report.Targets[0].Missing)
	require.NotNil(t, report.Targets[0].Result)
	assert.Equal(t, 1, report.Targets[0].Result.MatchCount)

	assert.True(t, report.Targets[1].Missing)
	assert.Nil(t, report.Targets[1].Result)
}

func TestPlan_WorkDirMissing(t *testing.T) {
	p := testPatcher(t, routersConfig(filepath.Join(t.TempDir(), "does-not-exist")))

	_, err := p.Plan(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWorkDirMissing), "error should classify as ErrWorkDirMissing: %v", err)
}

// Targets are scanned concurrently; the report must still come back in
// configured order.
func TestPlan_KeepsTargetOrder(t *testing.T) {
	dir := t.TempDir()

	var targets []config.Target
	for i := 0; i < 16; i++ {
		name := fmt.Sprintf("router%02d.py", i)
		content := fmt.Sprintf("def handler%02d(db: Session) -> Dict[str, Any]:\n    return {}\n", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
		targets = append(targets, config.Target{
			File:  name,
			Rules: []config.RewriteRule{{Pattern: `\) -> Dict\[str, Any\]:$`, Replace: `):`}},
		})
	}

	cfg := &config.Config{
		WorkDir: dir,
		Backup:  config.BackupArgs{Prefix: "backup", Patterns: []string{"*.py"}},
		Targets: targets,
	}

	p := testPatcher(t, cfg)
	report, err := p.Plan(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Targets, 16)
	for i, target := range report.Targets {
		assert.Equal(t, fmt.Sprintf("router%02d.py", i), target.File)
		require.NotNil(t, target.Result, "target %d should have been scanned", i)
		assert.Equal(t, 1, target.Result.MatchCount)
	}
}
