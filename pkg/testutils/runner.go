// Package testutils holds test doubles shared across exman packages.
package testutils

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/walteh/exman/pkg/log"
	"github.com/walteh/exman/pkg/runner"
)

var _ runner.Runner = (*MockRunner)(nil)

// 🔧 MockRunner is a mock implementation of the runner.Runner interface
type MockRunner struct {
	mock.Mock
}

// NewMockRunner creates a MockRunner whose expectations are asserted on cleanup
func NewMockRunner(t *testing.T) *MockRunner {
	m := &MockRunner{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	result := m.Called(ctx, dir, name, args)
	return result.Error(0)
}

func (m *MockRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	result := m.Called(ctx, name, args)
	return result.String(0), result.Error(1)
}

// Context returns a context carrying a zerolog test logger and a console
// logger writing to console.
func Context(t *testing.T, console io.Writer) context.Context {
	zlog := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	ctx := zlog.WithContext(context.Background())
	return log.NewContext(ctx, log.NewWithZerolog(console, zlog))
}
