package commit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_ContainsContextFields(t *testing.T) {
	ctx := ChangeContext{
		Branch:        "feature/login",
		AddedFiles:    1,
		ModifiedFiles: 2,
		AddedLines:    10,
		RemovedLines:  3,
		Diff:          "+added line",
	}

	prompt := BuildPrompt(ctx)
	assert.Contains(t, prompt, "Branch: feature/login")
	assert.Contains(t, prompt, "Files changed: 3")
	assert.Contains(t, prompt, "Lines added: 10")
	assert.Contains(t, prompt, "Lines removed: 3")
	assert.Contains(t, prompt, "+added line")
	assert.Contains(t, prompt, strings.Join(CommitTypes(), ", "))
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	ctx := ChangeContext{Branch: "main", Diff: "+x"}
	assert.Equal(t, BuildPrompt(ctx), BuildPrompt(ctx))
}

func TestBuildPrompt_TruncationMarker(t *testing.T) {
	ctx := ChangeContext{Branch: "main", Diff: "+x", Truncated: true}
	prompt := BuildPrompt(ctx)
	assert.Contains(t, prompt, truncationMarker)
	// marker sits inside the fenced diff block
	assert.Contains(t, prompt, "+x\n"+truncationMarker+"\n```")
}

func TestBuildPrompt_NoMarkerWithoutTruncation(t *testing.T) {
	ctx := ChangeContext{Branch: "main", Diff: "+x"}
	assert.NotContains(t, BuildPrompt(ctx), truncationMarker)
}
