// Package types defines the value types shared between the gitcmd,
// analyze and cleanup packages.
package types

// TrackingStatus describes the relationship between a local branch and
// its configured upstream, as reported by 'git branch -vv'.
type TrackingStatus string

const (
	// TrackingNone means the branch has no upstream configured.
	TrackingNone TrackingStatus = "None"
	// TrackingActive means an upstream is configured and still exists.
	TrackingActive TrackingStatus = "Active"
	// TrackingGone means an upstream is configured but the remote
	// reports it as removed.
	TrackingGone TrackingStatus = "Gone"
)

// Branch holds the parsed state of one local branch. It is recomputed
// from the listing on every run, never persisted.
type Branch struct {
	Name      string
	Hash      string // abbreviated commit id from the listing
	Tracking  TrackingStatus
	IsCurrent bool // line carried the current-branch marker
}

// IsStale reports whether the branch is a cleanup candidate: it either
// never had an upstream, or its upstream is gone.
func (b Branch) IsStale() bool {
	return b.Tracking == TrackingNone || b.Tracking == TrackingGone
}

// DeletionMode selects the git flag used when deleting a branch.
type DeletionMode string

const (
	// ModeSafe uses 'git branch -d', which refuses unmerged branches.
	ModeSafe DeletionMode = "Safe"
	// ModeForced uses 'git branch -D', discarding unmerged work.
	ModeForced DeletionMode = "Forced"
)

// CleanupPlan is the ordered set of branches to delete and the mode to
// delete them with. It is built once per run and not modified after
// deletion starts.
type CleanupPlan struct {
	Branches []string
	Mode     DeletionMode
}

// OutcomeResult classifies what happened to a single branch.
type OutcomeResult string

const (
	// ResultDeleted means the branch was removed.
	ResultDeleted OutcomeResult = "Deleted"
	// ResultSkippedCurrent means the branch was checked out at
	// deletion time and therefore left alone.
	ResultSkippedCurrent OutcomeResult = "SkippedCurrent"
	// ResultFailedUnmerged means a safe delete was refused because the
	// branch has unmerged commits. Eligible for a forced retry.
	ResultFailedUnmerged OutcomeResult = "FailedUnmerged"
	// ResultFailedOther covers every other per-branch failure.
	ResultFailedOther OutcomeResult = "FailedOther"
)

// DeletionOutcome holds the outcome of one delete attempt.
type DeletionOutcome struct {
	BranchName string
	Result     OutcomeResult
	Message    string // success message or error details
	Cmd        string // the command attempted, for display
}

// UnmergedFailures returns the branch names that failed safe deletion
// because of unmerged commits, in outcome order. These are the
// candidates offered for a forced retry.
func UnmergedFailures(outcomes []DeletionOutcome) []string {
	var names []string
	for _, o := range outcomes {
		if o.Result == ResultFailedUnmerged {
			names = append(names, o.BranchName)
		}
	}
	return names
}
