package commit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nealxu/bicommit/internal/llm"
)

func normalizeText(t *testing.T, content string) (*Message, error) {
	t.Helper()
	return Normalize(&llm.RawResponse{Content: content, StatusCode: 200})
}

func TestNormalize_ValidObject(t *testing.T) {
	content := `{"commit_type":"feat","scope":"auth","description":"添加登录","description_en":"Add login","body":["实现JWT"],"body_en":["Implement JWT"]}`

	msg, err := normalizeText(t, content)
	require.NoError(t, err)
	assert.Equal(t, "feat", msg.Type)
	assert.Equal(t, "auth", msg.Scope)
	assert.Equal(t, "添加登录", msg.Description)
	assert.Equal(t, "Add login", msg.DescriptionEn)
	assert.Equal(t, []string{"实现JWT"}, msg.Body)
	assert.Equal(t, []string{"Implement JWT"}, msg.BodyEn)
	assert.Nil(t, msg.BreakingNote)
}

func TestNormalize_TypeAlias(t *testing.T) {
	// Older responses use "type" instead of "commit_type"
	content := `{"type":"fix","description":"修复崩溃","description_en":"Fix crash"}`

	msg, err := normalizeText(t, content)
	require.NoError(t, err)
	assert.Equal(t, "fix", msg.Type)
	assert.Empty(t, msg.Body)
	assert.Empty(t, msg.BodyEn)
}

func TestNormalize_RoundTripAllFields(t *testing.T) {
	content := `{
		"commit_type": "refactor",
		"scope": "parser",
		"description": "重构解析器",
		"description_en": "Refactor the parser",
		"body": ["拆分词法分析", "简化状态机"],
		"body_en": ["Split out lexing", "Simplify the state machine"],
		"breaking_change": "Parser API changed"
	}`

	msg, err := normalizeText(t, content)
	require.NoError(t, err)
	assert.Equal(t, "refactor", msg.Type)
	assert.Equal(t, "parser", msg.Scope)
	assert.Equal(t, "重构解析器", msg.Description)
	assert.Equal(t, "Refactor the parser", msg.DescriptionEn)
	assert.Equal(t, []string{"拆分词法分析", "简化状态机"}, msg.Body)
	assert.Equal(t, []string{"Split out lexing", "Simplify the state machine"}, msg.BodyEn)
	require.NotNil(t, msg.BreakingNote)
	assert.Equal(t, "Parser API changed", *msg.BreakingNote)
}

func TestNormalize_BodyAsSingleString(t *testing.T) {
	// Legacy shape: body fields as one string instead of an array
	content := `{"commit_type":"chore","description":"更新依赖","description_en":"Update deps","body":"升级了viper","body_en":"Upgrade viper"}`

	msg, err := normalizeText(t, content)
	require.NoError(t, err)
	assert.Equal(t, []string{"升级了viper"}, msg.Body)
	assert.Equal(t, []string{"Upgrade viper"}, msg.BodyEn)
}

func TestNormalize_BodyMismatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "different non-zero lengths",
			content: `{"commit_type":"feat","description":"中文","description_en":"English","body":["一","二"],"body_en":["one"]}`,
		},
		{
			name:    "one side empty",
			content: `{"commit_type":"feat","description":"中文","description_en":"English","body":["一"],"body_en":[]}`,
		},
		{
			name:    "one side missing",
			content: `{"commit_type":"feat","description":"中文","description_en":"English","body":["一"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := normalizeText(t, tt.content)
			assert.Nil(t, msg)
			var normErr *NormalizeError
			require.ErrorAs(t, err, &normErr)
			assert.Equal(t, NormalizeBodyMismatch, normErr.Kind)
		})
	}
}

func TestNormalize_BreakingChangeEncodings(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		present  bool
		note     string
	}{
		{"absent via null", "null", false, ""},
		{"boolean false", "false", false, ""},
		{"boolean true", "true", true, ""},
		{"string note", `"drops v1 endpoints"`, true, "drops v1 endpoints"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `{"commit_type":"feat","description":"中文","description_en":"English","breaking_change":` + tt.encoding + `}`
			msg, err := normalizeText(t, content)
			require.NoError(t, err)
			if tt.present {
				require.NotNil(t, msg.BreakingNote)
				assert.Equal(t, tt.note, *msg.BreakingNote)
			} else {
				assert.Nil(t, msg.BreakingNote)
			}
		})
	}
}

func TestNormalize_UnknownType(t *testing.T) {
	content := `{"commit_type":"feature","description":"中文","description_en":"English"}`

	msg, err := normalizeText(t, content)
	assert.Nil(t, msg)
	var normErr *NormalizeError
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, NormalizeUnknownType, normErr.Kind)
	assert.Contains(t, err.Error(), "feature")
}

func TestNormalize_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing type", `{"description":"中文","description_en":"English"}`},
		{"missing description", `{"commit_type":"feat","description_en":"English"}`},
		{"missing description_en", `{"commit_type":"feat","description":"中文"}`},
		{"whitespace description", `{"commit_type":"feat","description":"  ","description_en":"English"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := normalizeText(t, tt.content)
			assert.Nil(t, msg)
			var normErr *NormalizeError
			require.ErrorAs(t, err, &normErr)
			assert.Equal(t, NormalizeMalformed, normErr.Kind)
		})
	}
}

func TestNormalize_SurroundingProse(t *testing.T) {
	content := `Sure! Here is the commit message you asked for:

{"commit_type":"docs","description":"更新文档","description_en":"Update docs"}

Let me know if you need anything else.`

	msg, err := normalizeText(t, content)
	require.NoError(t, err)
	assert.Equal(t, "docs", msg.Type)
}

func TestNormalize_MarkdownFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "json fence",
			content: "```json\n{\"commit_type\":\"test\",\"description\":\"补充测试\",\"description_en\":\"Add tests\"}\n```",
		},
		{
			name:    "bare fence",
			content: "```\n{\"commit_type\":\"test\",\"description\":\"补充测试\",\"description_en\":\"Add tests\"}\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := normalizeText(t, tt.content)
			require.NoError(t, err)
			assert.Equal(t, "test", msg.Type)
		})
	}
}

func TestNormalize_NonJSONProse(t *testing.T) {
	msg, err := normalizeText(t, "I cannot generate a commit message for this diff.")
	assert.Nil(t, msg)
	var normErr *NormalizeError
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, NormalizeMalformed, normErr.Kind)
	assert.Contains(t, normErr.Raw, "I cannot generate")
}

func TestNormalize_RepairsAlmostJSON(t *testing.T) {
	// Trailing comma: invalid JSON that the repair pass should recover
	content := `{"commit_type":"fix","description":"修复","description_en":"Fix it",}`

	msg, err := normalizeText(t, content)
	require.NoError(t, err)
	assert.Equal(t, "fix", msg.Type)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
			ok:    true,
		},
		{
			name:  "object in prose",
			input: `prefix {"a":{"b":2}} suffix`,
			want:  `{"a":{"b":2}}`,
			ok:    true,
		},
		{
			name:  "braces inside strings ignored",
			input: `{"a":"value with } and { inside"}`,
			want:  `{"a":"value with } and { inside"}`,
			ok:    true,
		},
		{
			name:  "escaped quote inside string",
			input: `{"a":"say \"hi\" {now}"}`,
			want:  `{"a":"say \"hi\" {now}"}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: `just some text`,
			ok:    false,
		},
		{
			name:  "unbalanced object",
			input: `{"a": {"b": 1}`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
