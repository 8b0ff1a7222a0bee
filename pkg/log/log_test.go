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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:       "hello_world.c",
					Action:     "stubbed",
					Details:    "2 functions",
					IsModified: true,
					Count:      2,
				})
			},
			wantLogs: []string{
				"⟳ hello_world.c                       stubbed         2 functions",
			},
		},
		{
			name: "log_exercise_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartExerciseOperation(context.Background(), ExerciseOperation{
					Track:    "c",
					Exercise: "hello-world",
					Path:     "/tmp/exercism/c/hello-world",
				})
			},
			wantLogs: []string{
				"[/tmp/exercism/c/hello-world]",
				"◆ c/hello-world • me",
			},
		},
		{
			name: "log_mentee_exercise_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartExerciseOperation(context.Background(), ExerciseOperation{
					Track:    "rust",
					Exercise: "bob",
					User:     "alice",
					Path:     "/tmp/exercism/users/alice/rust/bob",
				})
			},
			wantLogs: []string{
				"[/tmp/exercism/users/alice/rust/bob]",
				"◆ rust/bob • alice",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("initializing exercise")
			},
			wantLogs: []string{
				"exman • initializing exercise",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "new_file",
			op: FileOperation{
				Path:    "Cargo.toml",
				Action:  "created",
				Details: "workspace",
				IsNew:   true,
			},
			want: "    ✓ Cargo.toml                          created         workspace      ",
		},
		{
			name: "modified_file",
			op: FileOperation{
				Path:       "test_bob.c",
				Action:     "toggled",
				Details:    "12 skips",
				IsModified: true,
			},
			want: "    ⟳ test_bob.c                          toggled         12 skips       ",
		},
		{
			name: "dry_run_file",
			op: FileOperation{
				Path:       "bob.c",
				Action:     "would stub",
				Details:    "1 function",
				IsModified: true,
				IsDryRun:   true,
			},
			want: "    ? bob.c                               would stub      1 function     ",
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:   "bob.c",
				Action: "unchanged",
			},
			want: "    • bob.c                               unchanged                      ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(io.Discard, zerolog.InfoLevel).formatFileOperation(tt.op), "formatted output should match")
		})
	}
}

func TestLoggerOperations(t *testing.T) {
	logger := New(io.Discard, zerolog.Disabled)
	ctx := context.Background()

	logger.StartExerciseOperation(ctx, ExerciseOperation{Track: "c", Exercise: "bob"})
	logger.LogFileOperation(ctx, FileOperation{Path: "bob.c", Action: "stubbed", IsModified: true})
	logger.LogFileOperation(ctx, FileOperation{Path: "test_bob.c", Action: "unchanged"})

	require.Len(t, logger.operations, 2)
	assert.Equal(t, "bob.c", logger.operations[0].Path)

	logger.EndExerciseOperation(ctx)
	assert.Empty(t, logger.operations)
	assert.Nil(t, logger.currentOp)
}
