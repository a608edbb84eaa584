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

package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	actionWidth = 15 // Width for the action word
	detailWidth = 15 // Width for the detail column
)

// 🎯 FileAction classifies a per-file console line
type FileAction int

const (
	ActionBackedUp FileAction = iota
	ActionPatched
	ActionUnchanged
	ActionFailed
)

// 📝 String returns the action word shown on the console
func (a FileAction) String() string {
	switch a {
	case ActionBackedUp:
		return "backed up"
	case ActionPatched:
		return "patched"
	case ActionUnchanged:
		return "unchanged"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🎯 FileEvent represents a per-file outcome for logging
type FileEvent struct {
	Path    string     // File path
	Action  FileAction // What happened to the file
	Matches int        // Number of rewritten lines, for ActionPatched
	Err     error      // Set when Action is ActionFailed
}

// 📦 RunInfo represents one patch run for logging
type RunInfo struct {
	WorkDir string // Directory being patched
	Source  string // Where the config came from (path or "built-in")
	Targets int    // Number of configured targets
}

// 🎯 Printer handles structured logging with console output
type Printer struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunInfo
	events     []FileEvent
}

// 🏭 New creates a new printer
func New(console io.Writer, level zerolog.Level) *Printer {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Printer{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the printer from context
func FromContext(ctx context.Context) *Printer {
	printer, ok := ctx.Value(contextKey{}).(*Printer)
	if !ok {
		panic("printer not found in context")
	}
	return printer
}

// 🎯 NewContext adds the printer to context
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// 📝 formatFileEvent formats a file event for display
func (p *Printer) formatFileEvent(ev FileEvent) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch ev.Action {
	case ActionFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case ActionBackedUp:
		symbol = '✓'
		symbolColor = color.FgGreen
	case ActionPatched:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Detail column
	var detail string
	switch {
	case ev.Err != nil:
		detail = ev.Err.Error()
	case ev.Action == ActionPatched:
		detail = fmt.Sprintf("%d line(s)", ev.Matches)
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, ev.Path),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", actionWidth, ev.Action.String())),
		fmt.Sprintf("%-*s", detailWidth, detail))
}

// 📝 LogFileEvent logs a per-file outcome
func (p *Printer) LogFileEvent(ctx context.Context, ev FileEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Add to the running tally
	p.events = append(p.events, ev)

	// Format and print
	fmt.Fprintln(p.console, p.formatFileEvent(ev))

	// Log to zerolog
	evt := p.zlog.Info().
		Str("file", ev.Path).
		Str("action", ev.Action.String()).
		Int("matches", ev.Matches)
	if ev.Err != nil {
		evt = evt.Err(ev.Err)
	}
	evt.Msg("file event")
}

// 📝 StartRun starts a new patch run
func (p *Printer) StartRun(ctx context.Context, info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.currentRun = &info
	p.events = nil

	// Print run header
	fmt.Fprintf(p.console, "[patching %s]\n",
		color.New(color.FgCyan).Sprint(info.WorkDir))

	fmt.Fprintf(p.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(info.Source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d targets", info.Targets))

	// Log to zerolog
	p.zlog.Info().
		Str("work_dir", info.WorkDir).
		Str("source", info.Source).
		Int("targets", info.Targets).
		Msg("starting patch run")
}

// 📝 EndRun ends the current patch run
func (p *Printer) EndRun(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentRun == nil {
		return
	}

	// Log summary
	p.zlog.Info().
		Str("work_dir", p.currentRun.WorkDir).
		Int("files", len(p.events)).
		Msg("patch run complete")

	p.currentRun = nil
	p.events = nil
}

// 📝 LogNewline logs a newline
func (p *Printer) LogNewline() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.console)
}

// 📝 Header logs a header
func (p *Printer) Header(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	patchrcText := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(p.console, "\n%s %s\n\n", patchrcText, color.New(color.Faint).Sprint("• "+msg))
	p.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (p *Printer) Success(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	p.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (p *Printer) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	p.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (p *Printer) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	p.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (p *Printer) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	p.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (p *Printer) Infof(format string, args ...interface{}) {
	p.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (p *Printer) Warningf(format string, args ...interface{}) {
	p.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (p *Printer) Errorf(format string, args ...interface{}) {
	p.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (p *Printer) Successf(format string, args ...interface{}) {
	p.Success(fmt.Sprintf(format, args...))
}
