// Copyright 2025 walteh LLC
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

package log

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
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	actionWidth  = 15 // Width for the action
	detailsWidth = 15 // Width for details text
)

// 🎯 FileOperation represents a change exman made (or skipped) on one file
type FileOperation struct {
	Path       string // File path, relative to the exercise
	Action     string // What was done (stubbed/toggled/renamed)
	Details    string // Short human detail, e.g. "2 functions"
	IsNew      bool   // Whether the file was created
	IsModified bool   // Whether the file content changed
	IsDryRun   bool   // Whether the change was only previewed
	Count      int    // Number of items changed (stubs, replacements)
}

// 📦 ExerciseOperation represents an exercise being worked on
type ExerciseOperation struct {
	Track    string // Track slug
	Exercise string // Exercise slug
	User     string // Mentee, empty for own solutions
	Path     string // Exercise directory
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *ExerciseOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// NewWithZerolog creates a logger mirroring console lines to an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsDryRun:
		symbol = '?'
		symbolColor = color.FgMagenta
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	actionColor := color.FgYellow
	if op.IsModified || op.IsNew {
		actionColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(actionColor).Sprint(fmt.Sprintf("%-*s", actionWidth, op.Action)),
		fmt.Sprintf("%-*s", detailsWidth, op.Details))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("action", op.Action).
		Str("details", op.Details).
		Bool("is_new", op.IsNew).
		Bool("is_modified", op.IsModified).
		Bool("is_dry_run", op.IsDryRun).
		Int("count", op.Count).
		Msg("file operation")
}

// 📝 StartExerciseOperation starts work on an exercise
func (l *Logger) StartExerciseOperation(ctx context.Context, op ExerciseOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[%s]\n",
		color.New(color.FgCyan).Sprint(op.Path))

	owner := op.User
	if owner == "" {
		owner = "me"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Track+"/"+op.Exercise),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(owner))

	l.zlog.Info().
		Str("track", op.Track).
		Str("exercise", op.Exercise).
		Str("user", op.User).
		Str("path", op.Path).
		Msg("starting exercise operation")
}

// 📝 EndExerciseOperation ends the current exercise operation
func (l *Logger) EndExerciseOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	modified := 0
	for _, op := range l.operations {
		if op.IsModified || op.IsNew {
			modified++
		}
	}

	l.zlog.Info().
		Str("exercise", l.currentOp.Exercise).
		Int("files", len(l.operations)).
		Int("modified", modified).
		Msg("exercise operation complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 Raw writes text to the console as is
func (l *Logger) Raw(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, text)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	exmanText := color.New(color.Bold, color.FgCyan).Sprint("exman")
	fmt.Fprintf(l.console, "\n%s %s\n\n", exmanText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
