package cleanup

import (
	"context"
	"strings"
	"testing"

	"github.com/bral/git-tidy/internal/gitcmd"
)

// fakeGit installs a scripted gitcmd.Runner for the duration of a test
// and records every command issued, joined as a single string.
type fakeGit struct {
	calls   []string
	handler func(cmd string) (string, error)
}

func installFakeGit(t *testing.T, handler func(cmd string) (string, error)) *fakeGit {
	t.Helper()
	f := &fakeGit{handler: handler}
	original := gitcmd.Runner
	gitcmd.Runner = func(_ context.Context, args ...string) (string, error) {
		cmd := strings.Join(args, " ")
		f.calls = append(f.calls, cmd)
		return f.handler(cmd)
	}
	t.Cleanup(func() {
		gitcmd.Runner = original
	})
	return f
}

// countPrefix returns how many recorded commands start with prefix.
func (f *fakeGit) countPrefix(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// called reports whether the exact command was issued.
func (f *fakeGit) called(cmd string) bool {
	for _, c := range f.calls {
		if c == cmd {
			return true
		}
	}
	return false
}
