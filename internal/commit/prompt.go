package commit

import (
	"fmt"
	"strings"
)

// truncationMarker tells the model the diff is partial
const truncationMarker = "... (diff truncated)"

const promptTemplate = `You are a Git commit message generator. Based on the following git diff, generate a bilingual (Chinese and English) structured commit message.

Context:
- Branch: %s
- Files changed: %d
- Lines added: %d
- Lines removed: %d

Git Diff:
` + "```" + `
%s
` + "```" + `

Generate a commit message following the Conventional Commits specification with bilingual format:
- type: %s
- scope: optional, the component or area affected
- description: 中文简要描述（50字符以内）
- description_en: English brief description (50 chars or less)
- body: 中文详细说明数组，每个元素是一条说明（如："添加了用户认证功能"、"优化了数据库查询性能"）
- body_en: English detailed explanation array, each element corresponds to Chinese version
- breaking_change: optional, if there are breaking changes

Important requirements:
1. description should be in Chinese, description_en should be its English translation
2. body and body_en should be arrays of strings, each element is one point
3. Each Chinese point in body should have a corresponding English translation in body_en
4. Keep descriptions concise and clear

Respond with a JSON object containing these fields. Example:
{
    "type": "feat",
    "scope": "auth",
    "description": "添加用户认证功能",
    "description_en": "Add user authentication feature",
    "body": ["实现了JWT令牌验证", "添加了用户登录接口"],
    "body_en": ["Implement JWT token validation", "Add user login endpoint"],
    "breaking_change": null
}
`

// BuildPrompt derives the generation prompt from a ChangeContext.
// Deterministic: the same context always yields the same prompt, so a
// Regenerate re-sends identical input and relies on model randomness for
// a different result.
func BuildPrompt(ctx ChangeContext) string {
	diff := ctx.Diff
	if ctx.Truncated {
		diff += "\n" + truncationMarker
	}
	return fmt.Sprintf(promptTemplate,
		ctx.Branch,
		ctx.FileCount(),
		ctx.AddedLines,
		ctx.RemovedLines,
		diff,
		strings.Join(CommitTypes(), ", "),
	)
}
