package rewrite

import (
	"context"
	"io"
)

// Rule defines a single line-rewrite operation
type Rule struct {
	// Pattern is a Go regular expression matched against one line at a
	// time, never across lines
	Pattern string

	// Replace is the replacement for the matched portion of the line.
	// Capture groups are referenced as ${1}, ${2}, ...
	Replace string
}

// LineMatch records one line that a rule actually changed
type LineMatch struct {
	// Line is the 1-based line number at the time the rule ran
	Line int

	// Rule is the index of the rule that rewrote the line
	Rule int

	// Before is the line before the rewrite
	Before string

	// After is the line after the rewrite
	After string
}

// Result contains the outcome of applying a rule list to one file's content
type Result struct {
	// WasModified indicates if any line changed
	WasModified bool

	// MatchCount is the number of line rewrites performed
	MatchCount int

	// Matches records every rewritten line in application order
	Matches []LineMatch

	// OriginalContent is the content before rewriting
	OriginalContent []byte

	// ModifiedContent is the content after rewriting
	ModifiedContent []byte
}

// Rewriter defines the interface for line-oriented rewrite engines
type Rewriter interface {
	// Rewrite applies an ordered list of rules to the content.
	// Returns a Result containing the modified content and per-line matches.
	Rewrite(ctx context.Context, content io.Reader, rules []Rule) (*Result, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []Rule) error
}
