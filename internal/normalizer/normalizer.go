// Package normalizer coerces loosely formatted language-model output into a
// well-formed care note. The model is asked for bare JSON but may wrap it in
// prose or code fences; recovery here is deliberately limited to stripping
// fence markers. Anything less than a structurally complete note is rejected
// rather than patched, because a clinical note with silently missing
// structure is worse than an explicit failure.
package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shamsaravaiah/LYSYN/internal/models"
)

// sectionKeys is the required shape of the "sections" object.
var sectionKeys = []string{
	"patient_profile",
	"complaints",
	"observations",
	"actions",
	"risks",
	"follow_up",
}

// MalformedResponseError reports model output that could not be recovered
// into a care note. Raw keeps the original text for post-hoc auditing; it is
// never shown to the user.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

// Normalize parses raw model output into a CareNote. It tries the text as-is
// first, then once more with code-fence wrapping stripped. There is no third
// attempt and no substring extraction.
func Normalize(raw string) (*models.CareNote, error) {
	note, err := decode(raw)
	if err == nil {
		return note, nil
	}

	note, err2 := decode(stripFences(raw))
	if err2 == nil {
		return note, nil
	}

	return nil, &MalformedResponseError{Reason: err2.Error(), Raw: raw}
}

// decode enforces the structural contract: a "summary" string and a
// "sections" object holding all six keys as strings. Unknown keys in the
// model output are dropped; missing or non-string required keys fail.
func decode(text string) (*models.CareNote, error) {
	var envelope struct {
		Summary  *string                    `json:"summary"`
		Sections map[string]json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, err
	}
	if envelope.Summary == nil {
		return nil, fmt.Errorf("missing key %q", "summary")
	}
	if envelope.Sections == nil {
		return nil, fmt.Errorf("missing key %q", "sections")
	}

	values := make(map[string]string, len(sectionKeys))
	for _, key := range sectionKeys {
		rawVal, ok := envelope.Sections[key]
		if !ok {
			return nil, fmt.Errorf("missing section %q", key)
		}
		var s string
		if err := json.Unmarshal(rawVal, &s); err != nil {
			return nil, fmt.Errorf("section %q is not a string", key)
		}
		values[key] = s
	}

	return &models.CareNote{
		Summary: *envelope.Summary,
		Sections: models.Sections{
			PatientProfile: values["patient_profile"],
			Complaints:     values["complaints"],
			Observations:   values["observations"],
			Actions:        values["actions"],
			Risks:          values["risks"],
			FollowUp:       values["follow_up"],
		},
	}, nil
}

// stripFences removes markdown code-fence delimiters and an optional
// language tag, mirroring the wrapping models commonly add.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// drop a language tag like "json" on the opening fence line
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if first != "" && !strings.ContainsAny(first, "{}[]") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
