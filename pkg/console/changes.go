package console

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func init() {
	// Enable debug output for development
	pterm.EnableDebugMessages()
}

// 📢 ChangeLogger provides user-friendly feedback about line rewrites
type ChangeLogger struct {
	log    zerolog.Logger // for debug/error logging
	writer io.Writer      // nil means pterm's default output
	dmp    *diffmatchpatch.DiffMatchPatch
}

// 🖼️ LineChange represents one rewritten line in a target file
type LineChange struct {
	Path   string // Target file path
	Line   int    // 1-based line number
	Rule   int    // 0-based index of the rule that matched
	Before string // Line content before the rewrite
	After  string // Line content after the rewrite
}

// 🎯 NewChangeLogger creates a new change logger
func NewChangeLogger(ctx context.Context) *ChangeLogger {
	return &ChangeLogger{
		log: *zerolog.Ctx(ctx),
		dmp: diffmatchpatch.New(),
	}
}

// 🖊️ WithWriter returns a copy that prints to w instead of pterm's default
func (u *ChangeLogger) WithWriter(w io.Writer) *ChangeLogger {
	clone := *u
	clone.writer = w
	return &clone
}

func (u *ChangeLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	printer := base.WithPrefix(pterm.Prefix{Text: prefix})
	if u.writer != nil {
		printer = printer.WithWriter(u.writer)
	}
	return printer
}

// 📝 LogMatch logs one rewritten line with an inline diff
func (u *ChangeLogger) LogMatch(change LineChange) {
	msg := fmt.Sprintf("%s:%d rule %d", change.Path, change.Line, change.Rule)
	u.printer(pterm.Info, "🔄").Println(msg)

	diffs := u.dmp.DiffMain(change.Before, change.After, false)
	diffs = u.dmp.DiffCleanupSemantic(diffs)
	u.printer(pterm.Debug, "  ").Println(u.dmp.DiffPrettyText(diffs))

	u.log.Info().
		Str("file", change.Path).
		Int("line", change.Line).
		Int("rule", change.Rule).
		Msg("line rewritten")
}

// 📊 LogTargetSummary logs the outcome for one target file
func (u *ChangeLogger) LogTargetSummary(path string, matches int, modified bool) {
	if modified {
		u.printer(pterm.Success, "✨").Printfln("Patched %s (%d line(s))", path, matches)
	} else {
		u.printer(pterm.Debug, "⏭️").Printfln("Skipped %s (no matches)", path)
	}
	u.log.Info().Str("file", path).Int("matches", matches).Bool("modified", modified).Msg("target complete")
}

// 📊 LogTargetPlan logs what a run would do to one target file
func (u *ChangeLogger) LogTargetPlan(path string, matches int, wouldModify bool) {
	if wouldModify {
		u.printer(pterm.Info, "📝").Printfln("Would patch %s (%d line(s))", path, matches)
	} else {
		u.printer(pterm.Debug, "⏭️").Printfln("Would skip %s (no matches)", path)
	}
	u.log.Info().Str("file", path).Int("matches", matches).Bool("would_modify", wouldModify).Msg("target planned")
}

// 🔍 LogValidation logs validation results
func (u *ChangeLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "❌").Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}
