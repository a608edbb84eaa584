package config

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBoussel/patchrc/pkg/rewrite"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(context.Background(), cfg))
	assert.Empty(t, cfg.Location())
	assert.Equal(t, "app/routers", cfg.WorkDir)
	assert.Equal(t, []string{"*.py"}, cfg.Backup.Patterns)
	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "auth.py", cfg.Targets[0].File)
	assert.Equal(t, "familles.py", cfg.Targets[1].File)
}

// The built-in rules exist for two specific router files; this pins the
// exact line transformations they were written for.
func TestDefault_PatchesKnownSignatures(t *testing.T) {
	cfg := Default()
	rewriter := rewrite.NewLineRewriter()

	toRules := func(target Target) []rewrite.Rule {
		var rules []rewrite.Rule
		for _, r := range target.Rules {
			rules = append(rules, rewrite.Rule{Pattern: r.Pattern, Replace: r.Replace})
		}
		return rules
	}

	t.Run("auth", func(t *testing.T) {
		content := "@router.post(\"/logout\")\ndef logout(response: Response) -> Dict[str, str]:\n    response.delete_cookie(\"access_token\")\n"
		result, err := rewriter.Rewrite(context.Background(), strings.NewReader(content), toRules(cfg.Targets[0]))
		require.NoError(t, err)
		assert.True(t, result.WasModified)
		assert.Contains(t, string(result.ModifiedContent), "def logout(response: Response):")
		assert.NotContains(t, string(result.ModifiedContent), "Dict[str, str]")
	})

	t.Run("familles", func(t *testing.T) {
		content := "def lister_familles(\n    db: Session = Depends(get_db)\n) -> Dict[str, Any]:\n    return {}\n"
		result, err := rewriter.Rewrite(context.Background(), strings.NewReader(content), toRules(cfg.Targets[1]))
		require.NoError(t, err)
		assert.True(t, result.WasModified)
		assert.Contains(t, string(result.ModifiedContent), "\n):\n")
		assert.NotContains(t, string(result.ModifiedContent), "Dict[str, Any]")
	})
}
