package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitRunner is the function signature for executing git commands. It
// exists so tests can substitute a fake instead of shelling out.
type GitRunner func(ctx context.Context, args ...string) (stdout string, err error)

// Runner is the package-level variable holding the function used to
// run git commands. It defaults to the real implementation and is
// swapped out in tests.
var Runner GitRunner = runGitCommandReal

// defaultTimeout bounds git commands whose context has no deadline.
// Interactive prompts are unbounded; subprocess calls are not.
const defaultTimeout = 30 * time.Second

func runGitCommandReal(ctx context.Context, args ...string) (string, error) {
	if _, deadlineSet := ctx.Deadline(); !deadlineSet {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout := strings.TrimSpace(stdoutBuf.String())
	stderr := strings.TrimSpace(stderrBuf.String())

	if err != nil {
		// Keep stderr in the error; callers classify failures by it.
		return stdout, fmt.Errorf("git command failed: %w\nargs: %v\nstderr: %s", err, args, stderr)
	}

	return stdout, nil
}

// RunGitCommand executes a git command through the package Runner.
// Everything in this package goes through here.
func RunGitCommand(ctx context.Context, args ...string) (string, error) {
	if Runner == nil {
		return "", fmt.Errorf("GitRunner is not initialized")
	}
	return Runner(ctx, args...)
}
