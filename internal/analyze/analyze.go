// Package analyze parses 'git branch -vv' output and classifies each
// branch's tracking status. The listing is a human-readable format
// with no machine-readable alternative, so it is treated as a
// versioned contract: all knowledge of its shape lives here.
package analyze

import (
	"regexp"
	"strings"

	"github.com/bral/git-tidy/internal/types"
)

// staleMarker is the token git puts inside the tracking block when the
// upstream has been deleted, e.g. "[origin/foo: gone]". Case-sensitive.
const staleMarker = "gone"

// branchLineRe matches one listing line:
//
//	[marker] name hash [tracking-block] subject...
//
// marker is '*' (checked out here) or '+' (checked out in a linked
// worktree); name is any non-whitespace run; hash is the abbreviated
// hex commit id, at least four characters so prose words never pass
// for one; the bracketed tracking block, when present, sits directly
// after the hash. Lines that do not follow this grammar — blank lines,
// the detached-HEAD marker line, locale oddities — are skipped rather
// than guessed at.
var branchLineRe = regexp.MustCompile(`^([*+])?\s+(\S+)\s+([0-9a-f]{4,})(?:\s+(?:\[([^\]]+)\])?)?`)

// ParseBranchLine parses a single line of 'git branch -vv' output.
// ok is false for lines that do not follow the branch grammar.
func ParseBranchLine(line string) (types.Branch, bool) {
	m := branchLineRe.FindStringSubmatch(line)
	if m == nil {
		return types.Branch{}, false
	}

	b := types.Branch{
		Name:      m[2],
		Hash:      m[3],
		IsCurrent: m[1] == "*",
	}

	tracking := m[4]
	switch {
	case tracking == "":
		b.Tracking = types.TrackingNone
	case strings.Contains(tracking, staleMarker):
		b.Tracking = types.TrackingGone
	default:
		b.Tracking = types.TrackingActive
	}

	return b, true
}

// StaleBranches extracts the stale branches from raw 'git branch -vv'
// output, preserving listing order. A branch is stale when it has no
// upstream configured or its upstream is reported gone. The result is
// a pure function of the input: the same listing always yields the
// same set.
func StaleBranches(raw string) []types.Branch {
	var stale []types.Branch
	for _, line := range strings.Split(raw, "\n") {
		b, ok := ParseBranchLine(line)
		if !ok {
			continue
		}
		if b.IsStale() {
			stale = append(stale, b)
		}
	}
	return stale
}
