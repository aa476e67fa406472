package commit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/nealxu/bicommit/internal/llm"
	"github.com/nealxu/bicommit/internal/log"
)

// NormalizeErrorKind classifies normalization failures
type NormalizeErrorKind string

const (
	// NormalizeMalformed covers JSON-syntax failures, bracket-matching
	// failures and missing required fields
	NormalizeMalformed NormalizeErrorKind = "malformed"
	// NormalizeUnknownType means commit type is outside the vocabulary
	NormalizeUnknownType NormalizeErrorKind = "unknown_type"
	// NormalizeBodyMismatch means body and body_en differ in length
	NormalizeBodyMismatch NormalizeErrorKind = "body_mismatch"
)

// NormalizeError describes a failed normalization. Raw carries the
// original response text so debug mode can show it verbatim.
type NormalizeError struct {
	Kind NormalizeErrorKind
	Raw  string
	Err  error
}

func (e *NormalizeError) Error() string {
	switch e.Kind {
	case NormalizeUnknownType:
		return fmt.Sprintf("unknown commit type: %v", e.Err)
	case NormalizeBodyMismatch:
		return fmt.Sprintf("bilingual body mismatch: %v", e.Err)
	default:
		return fmt.Sprintf("malformed response: %v", e.Err)
	}
}

func (e *NormalizeError) Unwrap() error {
	return e.Err
}

// looseMessage is the permissive intermediate representation. Tolerance
// lives here; invariant enforcement happens in the conversion to Message.
type looseMessage struct {
	Type          string       `json:"type"`
	CommitType    string       `json:"commit_type"`
	Scope         string       `json:"scope"`
	Description   string       `json:"description"`
	DescriptionEn string       `json:"description_en"`
	Body          stringOrList `json:"body"`
	BodyEn        stringOrList `json:"body_en"`
	Breaking      breakingNote `json:"breaking_change"`
}

// stringOrList accepts both the legacy single-string body shape and the
// current array shape. A single string becomes a one-element list.
type stringOrList []string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var null interface{}
	if err := json.Unmarshal(data, &null); err == nil && null == nil {
		*s = nil
		return nil
	}
	return fmt.Errorf("expected string or array of strings, got %s", string(data))
}

// breakingNote accepts boolean and string encodings of breaking_change.
// false/null mean absent; true means present with an empty note; a string
// is present with that note.
type breakingNote struct {
	Present bool
	Note    string
	// FromBool flags the ambiguous boolean-true encoding so callers can warn
	FromBool bool
}

func (b *breakingNote) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*b = breakingNote{Present: flag, FromBool: flag}
		return nil
	}
	var note string
	if err := json.Unmarshal(data, &note); err == nil {
		*b = breakingNote{Present: true, Note: note}
		return nil
	}
	var null interface{}
	if err := json.Unmarshal(data, &null); err == nil && null == nil {
		*b = breakingNote{}
		return nil
	}
	return fmt.Errorf("expected boolean or string, got %s", string(data))
}

// Normalize parses a raw provider payload into a validated Message.
// The payload is expected to carry a JSON object but may be wrapped in
// markdown fences or surrounded by prose; both are tolerated.
func Normalize(raw *llm.RawResponse) (*Message, error) {
	text := stripFences(raw.Content)
	log.DebugRaw("normalizer input", text)

	jsonStr, ok := extractJSONObject(text)
	if !ok {
		return nil, &NormalizeError{Kind: NormalizeMalformed, Raw: raw.Content,
			Err: fmt.Errorf("no JSON object found in response")}
	}

	var loose looseMessage
	if err := json.Unmarshal([]byte(jsonStr), &loose); err != nil {
		// Models occasionally emit almost-JSON (trailing commas, single
		// quotes). Attempt a repair pass before giving up.
		repaired, repairErr := jsonrepair.JSONRepair(jsonStr)
		if repairErr != nil {
			return nil, &NormalizeError{Kind: NormalizeMalformed, Raw: raw.Content, Err: err}
		}
		log.DebugRaw("repaired json", repaired)
		if err := json.Unmarshal([]byte(repaired), &loose); err != nil {
			return nil, &NormalizeError{Kind: NormalizeMalformed, Raw: raw.Content, Err: err}
		}
	}

	return validate(loose, raw.Content)
}

// validate converts the loose representation into a strict Message
func validate(loose looseMessage, rawText string) (*Message, error) {
	commitType := strings.TrimSpace(loose.CommitType)
	if commitType == "" {
		commitType = strings.TrimSpace(loose.Type)
	}
	if commitType == "" {
		return nil, &NormalizeError{Kind: NormalizeMalformed, Raw: rawText,
			Err: fmt.Errorf("missing commit type")}
	}
	if !IsValidType(commitType) {
		return nil, &NormalizeError{Kind: NormalizeUnknownType, Raw: rawText,
			Err: fmt.Errorf("%q is not in the accepted vocabulary", commitType)}
	}

	description := strings.TrimSpace(loose.Description)
	descriptionEn := strings.TrimSpace(loose.DescriptionEn)
	if description == "" {
		return nil, &NormalizeError{Kind: NormalizeMalformed, Raw: rawText,
			Err: fmt.Errorf("missing description")}
	}
	if descriptionEn == "" {
		return nil, &NormalizeError{Kind: NormalizeMalformed, Raw: rawText,
			Err: fmt.Errorf("missing description_en")}
	}

	if len(loose.Body) != len(loose.BodyEn) {
		return nil, &NormalizeError{Kind: NormalizeBodyMismatch, Raw: rawText,
			Err: fmt.Errorf("body has %d entries, body_en has %d", len(loose.Body), len(loose.BodyEn))}
	}

	msg := &Message{
		Type:          commitType,
		Scope:         strings.TrimSpace(loose.Scope),
		Description:   description,
		DescriptionEn: descriptionEn,
		Body:          []string(loose.Body),
		BodyEn:        []string(loose.BodyEn),
	}

	if loose.Breaking.Present {
		note := loose.Breaking.Note
		msg.BreakingNote = &note
		if loose.Breaking.FromBool {
			log.Warn("breaking_change was boolean true with no note text; marking breaking with an empty note")
		}
	}

	return msg, nil
}

// stripFences removes a markdown code fence wrapper if present
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, fence := range []string{"```json", "```"} {
		if strings.HasPrefix(trimmed, fence) && strings.HasSuffix(trimmed, "```") && len(trimmed) > len(fence)+3 {
			return strings.TrimSpace(trimmed[len(fence) : len(trimmed)-3])
		}
	}
	return trimmed
}

// extractJSONObject isolates the first balanced JSON object in s by
// bracket-depth counting. Braces inside string literals are ignored, so
// prose or values containing '{' do not confuse the scan.
func extractJSONObject(s string) (string, bool) {
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, ch := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 && start < 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return s[start : i+len(string(ch))], true
				}
			}
		}
	}
	return "", false
}
