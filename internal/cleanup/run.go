package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/bral/git-tidy/internal/analyze"
	"github.com/bral/git-tidy/internal/gitcmd"
	"github.com/bral/git-tidy/internal/prompt"
	"github.com/bral/git-tidy/internal/types"
)

// ErrNotGitRepo is returned when the working directory is not inside a
// git working tree.
var ErrNotGitRepo = errors.New("not inside a git repository")

// --- Styles ---
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true)
	summaryStyle = lipgloss.NewStyle().Bold(true)
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))

	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// Options carries the per-invocation settings, populated from flags.
type Options struct {
	Remote     string    // remote used for the pre-listing fetch
	NoFetch    bool      // skip the fetch --prune step
	DryRun     bool      // print the plan instead of deleting
	Candidates [2]string // protected default-branch names to probe
	Debug      bool
}

// Menu choices, in display order.
const (
	choiceDeleteAllSafe = iota + 1
	choiceDeleteAllForced
	choiceDeleteExceptDefault
	choiceCancel
)

// runner holds the state for a single invocation. None of it survives
// the run; in particular the disclaimer flag starts false every time.
type runner struct {
	opts            Options
	prompt          prompt.Prompter
	out             io.Writer
	disclaimerShown bool
	defaultBranch   string
}

// Run executes the whole cleanup flow: precondition check, optional
// fetch, listing, default-branch resolution, the options menu, the
// guard, the disclaimer, deletion, and the forced-retry offer. A nil
// return covers completed, nothing-to-do and user-cancelled runs;
// errors are reserved for unrecoverable environment or plumbing
// failures.
func Run(ctx context.Context, opts Options, p prompt.Prompter, out io.Writer) error {
	r := &runner{opts: opts, prompt: p, out: out}
	return r.run(ctx)
}

func (r *runner) run(ctx context.Context) error {
	if !gitcmd.IsInGitRepo(ctx) {
		return ErrNotGitRepo
	}

	if !r.opts.NoFetch {
		r.fetch(ctx)
	}

	raw, err := gitcmd.ListBranchLines(ctx)
	if err != nil {
		return err
	}
	stale := analyze.StaleBranches(raw)
	if len(stale) == 0 {
		fmt.Fprintln(r.out, "No stale branches found. Nothing to do.")
		return nil
	}

	// Resolved once; cached on the runner for the rest of the run.
	r.defaultBranch, err = ResolveDefaultBranch(ctx, r.prompt, r.opts.Candidates)
	if err != nil {
		return err
	}
	r.debugf("default branch resolved to %q\n", r.defaultBranch)

	r.printStale(stale)

	choice, err := r.askChoice()
	if err != nil {
		return err
	}
	if choice == choiceCancel {
		fmt.Fprintln(r.out, "Cancelled. No branches were deleted.")
		return nil
	}

	plan := r.buildPlan(stale, choice)

	plan.Branches, err = Guard(ctx, r.prompt, r.out, plan.Branches, r.defaultBranch)
	if err != nil {
		return err
	}
	if len(plan.Branches) == 0 {
		fmt.Fprintln(r.out, "Nothing left to delete after exclusions.")
		return nil
	}

	if r.opts.DryRun {
		r.printDryRun(plan)
		return nil
	}

	ok, err := r.confirmDisclaimer()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(r.out, "Cancelled. No branches were deleted.")
		return nil
	}

	outcomes, err := r.deleteAndReport(ctx, plan.Branches, plan.Mode)
	if err != nil {
		return err
	}

	if plan.Mode == types.ModeSafe {
		retried, err := r.offerForceRetry(ctx, outcomes)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, retried...)
	}

	r.printSummary(outcomes)
	return nil
}

// buildPlan maps the menu choice to a deletion plan over the stale
// set, preserving listing order. Choice 3 excludes the resolved
// default name; with no default resolved it degrades to
// delete-all-safe (the guard still applies either way).
func (r *runner) buildPlan(stale []types.Branch, choice int) types.CleanupPlan {
	plan := types.CleanupPlan{Mode: types.ModeSafe}
	if choice == choiceDeleteAllForced {
		plan.Mode = types.ModeForced
	}
	for _, b := range stale {
		if choice == choiceDeleteExceptDefault && r.defaultBranch != "" && b.Name == r.defaultBranch {
			continue
		}
		plan.Branches = append(plan.Branches, b.Name)
	}
	return plan
}

func (r *runner) printStale(stale []types.Branch) {
	fmt.Fprintln(r.out, headingStyle.Render(fmt.Sprintf("Found %d stale branch(es):", len(stale))))
	for _, b := range stale {
		note := "no upstream"
		if b.Tracking == types.TrackingGone {
			note = "upstream gone"
		}
		marker := " "
		if b.IsCurrent {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %s (%s)\n", marker, branchStyle.Render(b.Name), note)
	}
	fmt.Fprintln(r.out)
}

// askChoice presents the four-option menu and keeps asking until the
// answer is in range. Only a broken prompt channel aborts.
func (r *runner) askChoice() (int, error) {
	exceptLabel := "the default branch"
	if r.defaultBranch != "" {
		exceptLabel = fmt.Sprintf("%q", r.defaultBranch)
	}
	fmt.Fprintln(r.out, headingStyle.Render("What should happen to these branches?"))
	fmt.Fprintln(r.out, "  1) Delete all (safe, keeps unmerged work)")
	fmt.Fprintln(r.out, "  2) Delete all (forced, discards unmerged work)")
	fmt.Fprintf(r.out, "  3) Delete all except %s (safe)\n", exceptLabel)
	fmt.Fprintln(r.out, "  4) Cancel")

	for {
		n, err := r.prompt.Choose("Choose an option [1-4]: ", choiceCancel)
		if errors.Is(err, prompt.ErrInvalidAnswer) {
			fmt.Fprintln(r.out, "Please enter a number between 1 and 4.")
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("options prompt failed: %w", err)
		}
		return n, nil
	}
}

// confirmDisclaimer shows the irreversible-action warning and requires
// an explicit yes before the first deletion. The affirmation is
// remembered for the rest of the run, so the forced retry never shows
// it again.
func (r *runner) confirmDisclaimer() (bool, error) {
	if r.disclaimerShown {
		return true, nil
	}
	fmt.Fprintln(r.out, warningStyle.Render(
		"Warning: branch deletion is irreversible. Unmerged commits on deleted branches are lost."))
	ok, err := r.prompt.Confirm("Proceed? (y/N): ")
	if err != nil {
		return false, fmt.Errorf("disclaimer prompt failed: %w", err)
	}
	if ok {
		r.disclaimerShown = true
	}
	return ok, nil
}

// deleteAndReport runs the deletion engine and prints one attributed
// line per branch as outcomes arrive. Partial outcomes are still
// reported when the engine aborts on an environment failure.
func (r *runner) deleteAndReport(ctx context.Context, names []string, mode types.DeletionMode) ([]types.DeletionOutcome, error) {
	outcomes, err := gitcmd.DeleteBranches(ctx, names, mode)
	for _, o := range outcomes {
		switch o.Result {
		case types.ResultDeleted:
			green.Fprintf(r.out, "  deleted %s\n", o.BranchName)
		case types.ResultSkippedCurrent:
			yellow.Fprintf(r.out, "  skipped %s (currently checked out)\n", o.BranchName)
		default:
			red.Fprintf(r.out, "  %s: %s\n", o.BranchName, o.Message)
		}
	}
	return outcomes, err
}

// offerForceRetry presents the branches a safe pass refused because of
// unmerged commits and, on an explicit yes, runs a forced pass over
// exactly that subset. Declining leaves them untouched.
func (r *runner) offerForceRetry(ctx context.Context, outcomes []types.DeletionOutcome) ([]types.DeletionOutcome, error) {
	failed := types.UnmergedFailures(outcomes)
	if len(failed) == 0 {
		return nil, nil
	}

	fmt.Fprintln(r.out, warningStyle.Render("These branches have unmerged commits and were not deleted:"))
	for _, name := range failed {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
	ok, err := r.prompt.Confirm("Force-delete them, discarding their commits? (y/N): ")
	if err != nil {
		return nil, fmt.Errorf("force-retry prompt failed: %w", err)
	}
	if !ok {
		fmt.Fprintln(r.out, "Keeping unmerged branches. Safe deletions are complete.")
		return nil, nil
	}

	return r.deleteAndReport(ctx, failed, types.ModeForced)
}

func (r *runner) printDryRun(plan types.CleanupPlan) {
	flag := "-d"
	if plan.Mode == types.ModeForced {
		flag = "-D"
	}
	fmt.Fprintln(r.out, "[Dry Run] Proposed actions:")
	for _, name := range plan.Branches {
		fmt.Fprintf(r.out, "  git branch %s %s\n", flag, name)
	}
	fmt.Fprintln(r.out, "(Dry run complete, no changes made)")
}

// printSummary reports each branch's final state: a forced retry may
// have re-processed a branch that first failed the safe pass, and the
// later outcome wins.
func (r *runner) printSummary(outcomes []types.DeletionOutcome) {
	final := make(map[string]types.OutcomeResult, len(outcomes))
	for _, o := range outcomes {
		final[o.BranchName] = o.Result
	}
	var deleted, skipped, failed int
	for _, result := range final {
		switch result {
		case types.ResultDeleted:
			deleted++
		case types.ResultSkippedCurrent:
			skipped++
		default:
			failed++
		}
	}
	fmt.Fprintln(r.out, summaryStyle.Render(
		fmt.Sprintf("Done: %d deleted, %d skipped, %d failed.", deleted, skipped, failed)))
}

// fetch refreshes tracking state so "gone" annotations are current.
func (r *runner) fetch(ctx context.Context) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.out))
	s.Suffix = fmt.Sprintf(" Fetching %s (--prune)...", r.opts.Remote)
	s.Start()
	err := gitcmd.FetchAndPrune(ctx, r.opts.Remote)
	s.Stop()
	if err != nil {
		fmt.Fprintf(r.out, "Warning: %v\n", err)
	}
}

func (r *runner) debugf(format string, a ...any) {
	if r.opts.Debug {
		fmt.Fprintf(r.out, format, a...)
	}
}
