package gitcmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bral/git-tidy/internal/types"
)

// unmergedMarker is the fragment git prints on stderr when a safe
// delete is refused because the branch has unmerged commits.
const unmergedMarker = "not fully merged"

// DeleteBranches deletes the named local branches strictly in the
// order given, one subprocess at a time, and returns one outcome per
// name. Individual failures never abort the batch; they are recorded
// and the next branch is attempted. The only fatal condition is a
// failure to resolve the current branch, which means the repository
// state itself cannot be trusted — the partial outcomes accumulated so
// far are returned alongside the error.
func DeleteBranches(ctx context.Context, names []string, mode types.DeletionMode) ([]types.DeletionOutcome, error) {
	outcomes := make([]types.DeletionOutcome, 0, len(names))

	flag := "-d"
	if mode == types.ModeForced {
		flag = "-D"
	}

	for _, name := range names {
		// The checked-out branch may have changed since the plan was
		// built (the guard can switch branches), so re-check before
		// every attempt. A checked-out branch is never deleted,
		// whatever the mode.
		current, err := CurrentBranch(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("aborting deletions: %w", err)
		}

		outcome := types.DeletionOutcome{
			BranchName: name,
			Cmd:        fmt.Sprintf("git branch %s %s", flag, name),
		}

		if name == current {
			outcome.Result = types.ResultSkippedCurrent
			outcome.Message = "Skipped: branch is currently checked out"
			outcome.Cmd = ""
			outcomes = append(outcomes, outcome)
			continue
		}

		_, err = RunGitCommand(ctx, "branch", flag, name)
		switch {
		case err == nil:
			outcome.Result = types.ResultDeleted
			outcome.Message = "Deleted"
		case mode == types.ModeSafe && strings.Contains(err.Error(), unmergedMarker):
			outcome.Result = types.ResultFailedUnmerged
			outcome.Message = "Failed: " + cleanGitError(err)
		default:
			outcome.Result = types.ResultFailedOther
			outcome.Message = "Failed: " + cleanGitError(err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// cleanGitError extracts the stderr portion of a runner error when one
// is present; the wrapped form repeats the command args, which is
// noise in a per-branch report.
func cleanGitError(err error) string {
	msg := err.Error()
	if parts := strings.SplitN(msg, "stderr:", 2); len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[1])
	}
	return msg
}
