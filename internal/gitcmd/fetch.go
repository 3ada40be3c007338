package gitcmd

import (
	"context"
	"fmt"
)

// FetchAndPrune runs 'git fetch <remote> --prune' so that tracking
// state is fresh before branches are classified. Callers treat a
// failure as a warning, not a fatal error: classification then runs
// against whatever state the repository already has.
func FetchAndPrune(ctx context.Context, remoteName string) error {
	if remoteName == "" {
		return fmt.Errorf("remote name cannot be empty for fetch --prune")
	}

	if _, err := RunGitCommand(ctx, "fetch", remoteName, "--prune"); err != nil {
		return fmt.Errorf("failed to fetch and prune remote %q: %w", remoteName, err)
	}

	return nil
}
