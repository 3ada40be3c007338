package gitcmd

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestIsInGitRepo(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		output   string
		err      error
		expected bool
	}{
		{name: "inside work tree", output: "true", expected: true},
		{name: "outside work tree", output: "false", expected: false},
		{name: "command failure means not a repo", err: errors.New("fatal: not a git repository"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
				got := strings.Join(args, " ")
				if got != "rev-parse --is-inside-work-tree" {
					t.Errorf("unexpected command: %q", got)
				}
				return tc.output, tc.err
			})
			defer teardown()

			if got := IsInGitRepo(ctx); got != tc.expected {
				t.Errorf("IsInGitRepo() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCurrentBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns branch name", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
			got := strings.Join(args, " ")
			if got != "branch --show-current" {
				t.Errorf("unexpected command: %q", got)
			}
			return "main", nil
		})
		defer teardown()

		name, err := CurrentBranch(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "main" {
			t.Errorf("CurrentBranch() = %q, want %q", name, "main")
		}
	})

	t.Run("detached HEAD yields empty name", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, _ ...string) (string, error) {
			return "", nil
		})
		defer teardown()

		name, err := CurrentBranch(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "" {
			t.Errorf("CurrentBranch() = %q, want empty", name)
		}
	})

	t.Run("failure is propagated", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, _ ...string) (string, error) {
			return "", errors.New("simulated git error")
		})
		defer teardown()

		if _, err := CurrentBranch(ctx); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestBranchExists(t *testing.T) {
	ctx := context.Background()

	t.Run("existing branch", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
			got := strings.Join(args, " ")
			if got != "show-ref --verify --quiet refs/heads/main" {
				t.Errorf("unexpected command: %q", got)
			}
			return "", nil
		})
		defer teardown()

		if !BranchExists(ctx, "main") {
			t.Error("BranchExists(main) = false, want true")
		}
	})

	t.Run("missing branch", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, _ ...string) (string, error) {
			return "", errors.New("exit status 1")
		})
		defer teardown()

		if BranchExists(ctx, "master") {
			t.Error("BranchExists(master) = true, want false")
		}
	})

	t.Run("empty name never hits git", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
			t.Errorf("runner should not be called, got: %v", args)
			return "", nil
		})
		defer teardown()

		if BranchExists(ctx, "") {
			t.Error("BranchExists(\"\") = true, want false")
		}
	})
}

func TestListBranchLines(t *testing.T) {
	ctx := context.Background()

	t.Run("raw output passthrough", func(t *testing.T) {
		listing := "* main 1a2b3c4 [origin/main] msg\n  old 5d6e7f8 msg"
		teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
			got := strings.Join(args, " ")
			if got != "branch -vv" {
				t.Errorf("unexpected command: %q", got)
			}
			return listing, nil
		})
		defer teardown()

		raw, err := ListBranchLines(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if raw != listing {
			t.Errorf("ListBranchLines() = %q, want %q", raw, listing)
		}
	})

	t.Run("failure is fatal", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, _ ...string) (string, error) {
			return "", errors.New("simulated branch error")
		})
		defer teardown()

		if _, err := ListBranchLines(ctx); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("issues checkout", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
			got := strings.Join(args, " ")
			if got != "checkout main" {
				t.Errorf("unexpected command: %q", got)
			}
			return "Switched to branch 'main'", nil
		})
		defer teardown()

		if err := Checkout(ctx, "main"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("failure is propagated", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
			return "", gitError(args, "error: Your local changes would be overwritten")
		})
		defer teardown()

		if err := Checkout(ctx, "main"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("empty name never hits git", func(t *testing.T) {
		teardown := setupMockRunner(t, func(_ context.Context, args ...string) (string, error) {
			t.Errorf("runner should not be called, got: %v", args)
			return "", nil
		})
		defer teardown()

		if err := Checkout(ctx, ""); err == nil {
			t.Fatal("expected an error for empty name")
		}
	})
}
