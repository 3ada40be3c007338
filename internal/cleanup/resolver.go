// Package cleanup implements the interactive stale-branch removal
// flow: resolving the protected default branch, guarding the
// checked-out branch, and driving the deletion engine.
package cleanup

import (
	"context"
	"errors"
	"fmt"

	"github.com/bral/git-tidy/internal/gitcmd"
	"github.com/bral/git-tidy/internal/prompt"
)

// ResolveDefaultBranch determines which local branch, if any, is the
// protected default. candidates holds the two conventional names to
// probe (normally "main" and "master"). When both exist locally the
// user picks one; when neither exists there is no protection for this
// run and the empty string is returned. Existence is probed directly
// per name rather than by scanning the listing, so the resolver does
// not depend on the lister's output shape.
func ResolveDefaultBranch(ctx context.Context, p prompt.Prompter, candidates [2]string) (string, error) {
	mainName, masterName := candidates[0], candidates[1]
	mainExists := gitcmd.BranchExists(ctx, mainName)
	masterExists := gitcmd.BranchExists(ctx, masterName)

	switch {
	case mainExists && masterExists:
		question := fmt.Sprintf("Both %q and %q exist. Which is your default branch? (%s/%s): ",
			mainName, masterName, mainName, masterName)
		for {
			answer, err := p.Word(question, mainName, masterName)
			if errors.Is(err, prompt.ErrInvalidAnswer) {
				continue
			}
			if err != nil {
				return "", fmt.Errorf("default branch prompt failed: %w", err)
			}
			return answer, nil
		}
	case mainExists:
		return mainName, nil
	case masterExists:
		return masterName, nil
	default:
		return "", nil
	}
}
