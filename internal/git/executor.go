package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ChangeKind classifies a pending change reported by git status
type ChangeKind string

const (
	KindModified  ChangeKind = "modified"
	KindAdded     ChangeKind = "added"
	KindDeleted   ChangeKind = "deleted"
	KindRenamed   ChangeKind = "renamed"
	KindUntracked ChangeKind = "untracked"
)

// FileChange is a single pending change (path plus classification)
type FileChange struct {
	Path string
	Kind ChangeKind
}

// Branch describes the current HEAD state. An unborn branch (repository
// with no commits yet) is a valid, non-fatal state.
type Branch struct {
	Name     string
	Unborn   bool
	Detached bool
}

// LogOptions represents options for the git log command
type LogOptions struct {
	Count  int
	Author string
	Since  string
	Until  string
	Grep   string
	Format string
}

// Executor defines the interface for git command execution
type Executor interface {
	// IsRepository reports whether workDir is inside a git work tree
	IsRepository(ctx context.Context) bool

	// Status returns the pending changes (staged, unstaged and untracked)
	Status(ctx context.Context) ([]FileChange, error)

	// CombinedDiff returns staged and unstaged changes as one diff text
	CombinedDiff(ctx context.Context) (string, error)

	// DiffCached returns the diff of staged changes only
	DiffCached(ctx context.Context) (string, error)

	// CurrentBranch returns the current branch state
	CurrentBranch(ctx context.Context) (Branch, error)

	// HasUnstagedChanges reports whether the work tree has changes
	// not yet in the index
	HasUnstagedChanges(ctx context.Context) (bool, error)

	// StageAll stages all changes (git add -A)
	StageAll(ctx context.Context) error

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error

	// Log returns the commit log
	Log(ctx context.Context, opts LogOptions) (string, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepository reports whether workDir is inside a git work tree
func (e *DefaultExecutor) IsRepository(ctx context.Context) bool {
	out, err := e.runGit(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Status returns the pending changes parsed from porcelain output
func (e *DefaultExecutor) Status(ctx context.Context) ([]FileChange, error) {
	out, err := e.runGit(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// parsePorcelain parses `git status --porcelain` output into file changes.
// Each line is "XY path" where X is the index state and Y the work tree state.
func parsePorcelain(out string) []FileChange {
	var changes []FileChange
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		code := line[:2]
		path := strings.TrimSpace(line[3:])

		var kind ChangeKind
		switch {
		case code == "??":
			kind = KindUntracked
		case strings.ContainsAny(code, "R"):
			kind = KindRenamed
			// Renames are reported as "old -> new"; keep the new path.
			if idx := strings.Index(path, " -> "); idx >= 0 {
				path = path[idx+4:]
			}
		case strings.ContainsAny(code, "D"):
			kind = KindDeleted
		case strings.ContainsAny(code, "A"):
			kind = KindAdded
		default:
			kind = KindModified
		}

		changes = append(changes, FileChange{Path: path, Kind: kind})
	}
	return changes
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// diffWorkTree returns the diff of unstaged changes
func (e *DefaultExecutor) diffWorkTree(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff")
}

// CombinedDiff returns staged and unstaged changes as one annotated diff text
func (e *DefaultExecutor) CombinedDiff(ctx context.Context) (string, error) {
	staged, err := e.DiffCached(ctx)
	if err != nil {
		return "", err
	}
	unstaged, err := e.diffWorkTree(ctx)
	if err != nil {
		return "", err
	}

	var combined strings.Builder
	if staged != "" {
		combined.WriteString("=== STAGED CHANGES ===\n\n")
		combined.WriteString(staged)
	}
	if unstaged != "" {
		if combined.Len() > 0 {
			combined.WriteString("\n\n")
		}
		combined.WriteString("=== UNSTAGED CHANGES ===\n\n")
		combined.WriteString(unstaged)
	}
	return combined.String(), nil
}

// CurrentBranch returns the current branch state. A repository with no
// commits yet yields Branch{Unborn: true} rather than an error.
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (Branch, error) {
	name, err := e.runGit(ctx, "branch", "--show-current")
	if err != nil {
		return Branch{}, err
	}
	if name == "" {
		// Either detached HEAD or an unborn branch. HEAD resolves only
		// in the detached case.
		if _, err := e.runGit(ctx, "rev-parse", "--verify", "HEAD"); err != nil {
			ref, refErr := e.runGit(ctx, "symbolic-ref", "--short", "HEAD")
			if refErr != nil {
				ref = "unborn"
			}
			return Branch{Name: ref, Unborn: true}, nil
		}
		return Branch{Detached: true}, nil
	}
	// A named branch with no commits is still unborn.
	if _, err := e.runGit(ctx, "rev-parse", "--verify", "HEAD"); err != nil {
		return Branch{Name: name, Unborn: true}, nil
	}
	return Branch{Name: name}, nil
}

// HasUnstagedChanges reports whether the work tree has changes not in the index
func (e *DefaultExecutor) HasUnstagedChanges(ctx context.Context) (bool, error) {
	out, err := e.runGit(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 2 {
			continue
		}
		// Work tree column set, or an untracked file.
		if line[:2] == "??" || line[1] != ' ' {
			return true, nil
		}
	}
	return false, nil
}

// StageAll stages all changes (git add -A)
func (e *DefaultExecutor) StageAll(ctx context.Context) error {
	_, err := e.runGit(ctx, "add", "-A")
	return err
}

// Commit executes a git commit with the given message. Common failure
// causes are rewritten into actionable messages.
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	_, err := e.runGit(ctx, "commit", "-m", message)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "nothing to commit"):
			return fmt.Errorf("nothing to commit: all changes may already be committed")
		case strings.Contains(msg, "Please tell me who you are"):
			return fmt.Errorf("git user not configured; run:\n  git config --global user.email \"you@example.com\"\n  git config --global user.name \"Your Name\"")
		}
		return err
	}
	return nil
}

// Log returns the commit log
func (e *DefaultExecutor) Log(ctx context.Context, opts LogOptions) (string, error) {
	args := []string{"log"}

	if opts.Count > 0 {
		args = append(args, "-n", strconv.Itoa(opts.Count))
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.Since != "" {
		args = append(args, "--since="+opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until="+opts.Until)
	}
	if opts.Grep != "" {
		args = append(args, "--grep="+opts.Grep)
	}
	if opts.Format != "" {
		args = append(args, "--format="+opts.Format)
	}

	output, err := e.runGit(ctx, args...)
	if err != nil {
		// Empty repo returns error, return empty string instead
		if strings.Contains(err.Error(), "does not have any commits") {
			return "", nil
		}
		return "", err
	}
	return output, nil
}
