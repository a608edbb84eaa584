package rewrite

import (
	"context"
	"io"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// LineRewriter implements Rewriter using per-line regular expressions
type LineRewriter struct{}

// NewLineRewriter creates a new LineRewriter
func NewLineRewriter() *LineRewriter {
	return &LineRewriter{}
}

// Rewrite implements Rewriter.Rewrite. Each rule scans the full content
// exactly once, in listed order, so later rules see the output of earlier
// ones. A line is recorded as a match only when the rewrite actually changed
// it; lines no rule matches stay byte-identical.
func (r *LineRewriter) Rewrite(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: original,
		ModifiedContent: original,
	}

	// Splitting on \n and joining on \n reproduces the input exactly,
	// trailing newline included.
	lines := strings.Split(string(original), "\n")

	for ri, rule := range rules {
		// Skip empty rules
		if rule.Pattern == "" {
			continue
		}

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("rule %d: compiling pattern: %w", ri, err)
		}

		for li, line := range lines {
			if !re.MatchString(line) {
				continue
			}

			after := re.ReplaceAllString(line, rule.Replace)
			if after == line {
				continue
			}

			result.Matches = append(result.Matches, LineMatch{
				Line:   li + 1,
				Rule:   ri,
				Before: line,
				After:  after,
			})
			lines[li] = after
			result.WasModified = true
			result.MatchCount++
		}
	}

	result.ModifiedContent = []byte(strings.Join(lines, "\n"))
	return result, nil
}

// ValidateRules implements Rewriter.ValidateRules
func (r *LineRewriter) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Pattern == "" {
			return errors.Errorf("rule %d: pattern is required", i)
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return errors.Errorf("rule %d: invalid pattern: %w", i, err)
		}
	}
	return nil
}
