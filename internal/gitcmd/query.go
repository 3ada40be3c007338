// Package gitcmd provides functions for interacting with the git
// command-line tool. Every repository read and mutation the program
// performs goes through this package; nothing else shells out.
package gitcmd

import (
	"context"
	"fmt"
	"strings"
)

// IsInGitRepo checks whether the working directory is inside a git
// working tree. A failing command is treated as "not a repo" rather
// than an error, since that is how git signals the condition.
func IsInGitRepo(ctx context.Context) bool {
	output, err := RunGitCommand(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return output == "true"
}

// CurrentBranch returns the name of the checked-out branch. On a
// detached HEAD git prints nothing and the result is the empty string.
// A failure here is an environment problem and is fatal to the caller.
func CurrentBranch(ctx context.Context) (string, error) {
	output, err := RunGitCommand(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// BranchExists reports whether a local branch with the given name
// exists. A failed check counts as "does not exist": callers use this
// for classification only, never to authorize a deletion.
func BranchExists(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	_, err := RunGitCommand(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// ListBranchLines returns the raw output of 'git branch -vv'. The
// analyze package owns the parsing, so a format change in git stays a
// one-package fix.
func ListBranchLines(ctx context.Context) (string, error) {
	output, err := RunGitCommand(ctx, "branch", "-vv")
	if err != nil {
		return "", fmt.Errorf("failed to list branches: %w", err)
	}
	return output, nil
}

// Checkout switches the working tree to the named branch.
func Checkout(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty for checkout")
	}
	if _, err := RunGitCommand(ctx, "checkout", name); err != nil {
		return fmt.Errorf("failed to check out %q: %w", name, err)
	}
	return nil
}
