package commit

import "strings"

// Commit type vocabulary per Conventional Commits
var commitTypes = map[string]bool{
	"feat":     true,
	"fix":      true,
	"docs":     true,
	"style":    true,
	"refactor": true,
	"test":     true,
	"chore":    true,
	"perf":     true,
}

// CommitTypes returns the accepted commit type vocabulary
func CommitTypes() []string {
	return []string{"feat", "fix", "docs", "style", "refactor", "test", "chore", "perf"}
}

// IsValidType reports whether t is in the commit type vocabulary
func IsValidType(t string) bool {
	return commitTypes[t]
}

// Message is a validated bilingual commit message. Body and BodyEn are
// point-for-point translations of the same length; both may be empty.
// BreakingNote is nil when the change is not breaking.
type Message struct {
	Type          string
	Scope         string
	Description   string
	DescriptionEn string
	Body          []string
	BodyEn        []string
	BreakingNote  *string

	// raw holds user-edited text that replaces the structured message
	// verbatim. Set only by RawMessage.
	raw string
}

// RawMessage wraps user-supplied text as a Message that formats verbatim.
// Used for the edit flow, which bypasses normalization.
func RawMessage(text string) *Message {
	return &Message{raw: text}
}

// IsEdited reports whether the message carries user-edited raw text
func (m *Message) IsEdited() bool {
	return m.raw != ""
}

// Format renders the commit message in the conventional layout:
// a "type(scope): description" header, the English description on the
// next line, interleaved bilingual body pairs, and an optional
// BREAKING CHANGE trailer.
func (m *Message) Format() string {
	if m.raw != "" {
		return m.raw
	}

	var b strings.Builder
	b.WriteString(m.Type)
	if m.Scope != "" {
		b.WriteString("(")
		b.WriteString(m.Scope)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(m.Description)
	b.WriteString("\n")
	b.WriteString(m.DescriptionEn)

	if len(m.Body) > 0 {
		b.WriteString("\n\n")
		for i := range m.Body {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.Body[i])
			b.WriteString("\n")
			b.WriteString(m.BodyEn[i])
		}
	}

	if m.BreakingNote != nil {
		b.WriteString("\n\nBREAKING CHANGE: ")
		b.WriteString(*m.BreakingNote)
	}

	return b.String()
}
