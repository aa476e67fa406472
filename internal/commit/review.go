package commit

import (
	"context"
	"fmt"
	"io"

	"github.com/nealxu/bicommit/internal/git"
	"github.com/nealxu/bicommit/internal/ui"
)

// State identifies a step of the interactive review loop
type State string

const (
	StateGenerating State = "generating"
	StateReviewing  State = "reviewing"
	StateEditing    State = "editing"
	StateStaging    State = "staging"
	StateCommitting State = "committing"
	StateCancelled  State = "cancelled"
	StateDone       State = "done"
)

// GenerateFunc produces a candidate Message. The review loop invokes it
// once per Generating pass; each invocation is independent (no caching of
// prior attempts).
type GenerateFunc func(ctx context.Context) (*Message, error)

// ReviewLoop drives the blocking accept/edit/regenerate/cancel cycle as
// an explicit state machine. Input and Output are injected so the loop is
// testable with a scripted reader.
type ReviewLoop struct {
	Generate GenerateFunc
	Git      git.Executor
	Input    io.Reader
	Output   io.Writer

	// AutoAccept skips the review prompt and accepts the first
	// successful generation.
	AutoAccept bool
}

var (
	reviewChoices  = []string{"Accept", "Edit", "Regenerate", "Cancel"}
	failureChoices = []string{"Try again", "Cancel"}
)

// Run executes the loop until a terminal state. It returns StateDone after
// a successful commit and StateCancelled otherwise. A commit failure is
// terminal and reported through the returned error; generation and
// normalization failures are recoverable and offered back to the user.
func (l *ReviewLoop) Run(ctx context.Context) (State, error) {
	state := StateGenerating
	var msg *Message
	stageAll := false

	for {
		switch state {
		case StateGenerating:
			generated, err := l.Generate(ctx)
			if err != nil {
				ui.ShowError(fmt.Sprintf("Generation failed: %v", err), l.Output)
				choice, selErr := ui.SelectOption("What would you like to do?", failureChoices, 0, l.Input, l.Output)
				if selErr != nil {
					return StateCancelled, selErr
				}
				if choice == 0 {
					continue // stay at Generating
				}
				return StateCancelled, nil
			}
			msg = generated
			state = StateReviewing

		case StateReviewing:
			if err := ui.ShowCommitMessage(msg.Format(), l.Output); err != nil {
				return StateCancelled, err
			}
			if l.AutoAccept {
				state = StateStaging
				continue
			}
			choice, err := ui.SelectOption("What would you like to do?", reviewChoices, 0, l.Input, l.Output)
			if err != nil {
				return StateCancelled, err
			}
			switch choice {
			case 0:
				state = StateStaging
			case 1:
				state = StateEditing
			case 2:
				state = StateGenerating
			default:
				ui.ShowInfo("Commit cancelled", l.Output)
				return StateCancelled, nil
			}

		case StateEditing:
			edited, err := ui.EditMessage(msg.Format(), l.Input, l.Output)
			if err != nil {
				return StateCancelled, err
			}
			if edited != msg.Format() {
				msg = RawMessage(edited)
			}
			state = StateStaging

		case StateStaging:
			unstaged, err := l.Git.HasUnstagedChanges(ctx)
			if err != nil {
				return StateCancelled, fmt.Errorf("failed to check repository state: %w", err)
			}
			if unstaged {
				confirmed, err := ui.ConfirmWithDefault("Stage all changes (git add -A)?", true, l.Input, l.Output)
				if err != nil {
					return StateCancelled, err
				}
				if !confirmed {
					// Never commit a partial staged set silently.
					ui.ShowInfo("Staging declined, commit cancelled", l.Output)
					return StateCancelled, nil
				}
				stageAll = true
			}
			state = StateCommitting

		case StateCommitting:
			executor := &Executor{Git: l.Git}
			if err := executor.Commit(ctx, msg, stageAll); err != nil {
				// Environment problem, not a content problem: terminal.
				return StateCancelled, err
			}
			return StateDone, nil
		}
	}
}
