package commit

import (
	"context"
	"fmt"

	"github.com/nealxu/bicommit/internal/git"
)

// Executor turns an approved Message into a real commit. Staging and
// committing are delegated to the git collaborator; failures surface
// verbatim and are never retried (they are environment problems, not
// content problems).
type Executor struct {
	Git git.Executor
}

// Commit formats the message and creates the commit, staging all changes
// first when stageAll is set.
func (e *Executor) Commit(ctx context.Context, msg *Message, stageAll bool) error {
	if stageAll {
		if err := e.Git.StageAll(ctx); err != nil {
			return fmt.Errorf("failed to stage changes: %w", err)
		}
	}
	if err := e.Git.Commit(ctx, msg.Format()); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
