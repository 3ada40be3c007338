package gitcmd

import (
	"context"
	"errors"
	"testing"
)

// setupMockRunner swaps the package Runner for mockFunc and returns a
// teardown function restoring the original.
func setupMockRunner(t *testing.T, mockFunc func(ctx context.Context, args ...string) (string, error)) func() {
	t.Helper()
	original := Runner
	Runner = func(ctx context.Context, args ...string) (string, error) {
		if mockFunc == nil {
			return "", errors.New("mock runner not implemented")
		}
		return mockFunc(ctx, args...)
	}
	return func() {
		Runner = original
	}
}

// gitError builds an error shaped like the real runner's, with the
// given stderr text.
func gitError(args []string, stderr string) error {
	return errors.New("git command failed: exit status 1\nargs: " +
		joinArgs(args) + "\nstderr: " + stderr)
}

func joinArgs(args []string) string {
	out := "["
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out + "]"
}
