package commit

import (
	"strings"
	"unicode/utf8"

	"github.com/nealxu/bicommit/internal/git"
)

// ChangeContext is an immutable snapshot of pending repository changes,
// bounded for inclusion in a generation prompt. Built once per generation
// attempt and discarded after the prompt is derived.
type ChangeContext struct {
	Branch        string
	AddedFiles    int
	ModifiedFiles int
	DeletedFiles  int
	AddedLines    int
	RemovedLines  int
	Diff          string
	Truncated     bool
}

// FileCount returns the total number of changed files
func (c ChangeContext) FileCount() int {
	return c.AddedFiles + c.ModifiedFiles + c.DeletedFiles
}

// BuildChangeContext assembles a ChangeContext from repository state.
// Diff text longer than maxDiffSize bytes is truncated at a rune boundary
// and flagged; the excess is never dropped without indication.
func BuildChangeContext(branch git.Branch, changes []git.FileChange, diff string, maxDiffSize int) ChangeContext {
	ctx := ChangeContext{Branch: branchLabel(branch)}

	for _, change := range changes {
		switch change.Kind {
		case git.KindAdded, git.KindUntracked:
			ctx.AddedFiles++
		case git.KindDeleted:
			ctx.DeletedFiles++
		default:
			ctx.ModifiedFiles++
		}
	}

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// file headers, not content lines
		case strings.HasPrefix(line, "+"):
			ctx.AddedLines++
		case strings.HasPrefix(line, "-"):
			ctx.RemovedLines++
		}
	}

	ctx.Diff, ctx.Truncated = truncateDiff(diff, maxDiffSize)
	return ctx
}

// branchLabel renders a branch state as a prompt-friendly name
func branchLabel(b git.Branch) string {
	switch {
	case b.Unborn:
		if b.Name != "" {
			return b.Name + " (no commits yet)"
		}
		return "unborn"
	case b.Detached:
		return "detached HEAD"
	case b.Name == "":
		return "unknown"
	default:
		return b.Name
	}
}

// truncateDiff cuts the diff to at most maxSize bytes without splitting a
// multibyte character. Returns the (possibly shortened) diff and whether
// truncation happened.
func truncateDiff(diff string, maxSize int) (string, bool) {
	if maxSize <= 0 || len(diff) <= maxSize {
		return diff, false
	}
	boundary := maxSize
	for boundary > 0 && !utf8.RuneStart(diff[boundary]) {
		boundary--
	}
	return diff[:boundary], true
}
