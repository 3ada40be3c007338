package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bral/git-tidy/internal/gitcmd"
	"github.com/bral/git-tidy/internal/prompt"
)

const (
	answerSwitch = "switch"
	answerStay   = "stay"
)

// Guard makes sure cleanup cannot delete the branch the user is
// standing on. With no default branch resolved, or with the default
// already checked out, the plan passes through unchanged. Otherwise
// the user either switches to the default branch (so the working
// branch is no longer at risk) or stays, in which case the current
// branch is dropped from the plan. A failed switch aborts the run
// before any deletion. Runs exactly once, before the disclaimer.
func Guard(ctx context.Context, p prompt.Prompter, out io.Writer, branches []string, defaultBranch string) ([]string, error) {
	if defaultBranch == "" {
		return branches, nil
	}

	current, err := gitcmd.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	// Detached HEAD: no working branch at risk.
	if current == "" || current == defaultBranch {
		return branches, nil
	}

	question := fmt.Sprintf(
		"You are on %q. Switch to %q before cleaning, or stay and keep %q? (switch/stay): ",
		current, defaultBranch, current)
	var answer string
	for {
		answer, err = p.Word(question, answerSwitch, answerStay)
		if errors.Is(err, prompt.ErrInvalidAnswer) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("guard prompt failed: %w", err)
		}
		break
	}

	if answer == answerSwitch {
		if err := gitcmd.Checkout(ctx, defaultBranch); err != nil {
			return nil, fmt.Errorf("cannot switch to %q: %w", defaultBranch, err)
		}
		_, _ = fmt.Fprintf(out, "Switched to %q.\n", defaultBranch)
		return branches, nil
	}

	// Staying: the working branch must not be deleted underneath us.
	kept := make([]string, 0, len(branches))
	for _, name := range branches {
		if strings.EqualFold(name, current) {
			continue
		}
		kept = append(kept, name)
	}
	return kept, nil
}
