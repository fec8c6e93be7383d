package normalizer

import (
	"errors"
	"testing"

	"github.com/shamsaravaiah/LYSYN/internal/models"
)

const validJSON = `{
  "summary": "Kort besök, patienten mår bra.",
  "sections": {
    "patient_profile": "Äldre man, boende på avdelning 2.",
    "complaints": "Lite ont i knät.",
    "observations": "Gott humör, åt frukost.",
    "actions": "Gav ordinerad medicin.",
    "risks": "Inte diskuterat under detta besök",
    "follow_up": "Uppföljning nästa vecka."
  }
}`

func TestNormalizeDirectJSON(t *testing.T) {
	note, err := Normalize(validJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Summary != "Kort besök, patienten mår bra." {
		t.Fatalf("unexpected summary: %q", note.Summary)
	}
	if note.Sections.Complaints != "Lite ont i knät." {
		t.Fatalf("unexpected complaints: %q", note.Sections.Complaints)
	}
	if note.Sections.Risks != models.SentinelNotDiscussed {
		t.Fatalf("expected sentinel in risks, got %q", note.Sections.Risks)
	}
}

func TestNormalizeFencedIdempotence(t *testing.T) {
	direct, err := Normalize(validJSON)
	if err != nil {
		t.Fatalf("direct parse failed: %v", err)
	}

	for _, wrapped := range []string{
		"```json\n" + validJSON + "\n```",
		"```\n" + validJSON + "\n```",
		"  \n```json\n" + validJSON + "\n```  \n",
	} {
		fenced, err := Normalize(wrapped)
		if err != nil {
			t.Fatalf("fenced parse failed: %v", err)
		}
		if *fenced != *direct {
			t.Fatalf("fenced result differs from direct result:\n%+v\n%+v", fenced, direct)
		}
	}
}

func TestNormalizeMissingSectionKey(t *testing.T) {
	raw := `{
  "summary": "Sammanfattning.",
  "sections": {
    "patient_profile": "a", "complaints": "b", "observations": "c",
    "actions": "d", "risks": "e"
  }
}`
	_, err := Normalize(raw)
	if err == nil {
		t.Fatal("expected error for missing follow_up")
	}
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T", err)
	}
	if malformed.Raw != raw {
		t.Fatal("raw text not preserved on malformed error")
	}
}

func TestNormalizeNonStringSection(t *testing.T) {
	raw := `{
  "summary": "Sammanfattning.",
  "sections": {
    "patient_profile": "a", "complaints": ["b"], "observations": "c",
    "actions": "d", "risks": "e", "follow_up": "f"
  }
}`
	if _, err := Normalize(raw); err == nil {
		t.Fatal("expected error for non-string section")
	}
}

func TestNormalizeExtraKeysDropped(t *testing.T) {
	raw := `{
  "summary": "Sammanfattning.",
  "mood": "positiv",
  "sections": {
    "patient_profile": "a", "complaints": "b", "observations": "c",
    "actions": "d", "risks": "e", "follow_up": "f",
    "extra": "ignored"
  }
}`
	note, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Sections.FollowUp != "f" {
		t.Fatalf("unexpected follow_up: %q", note.Sections.FollowUp)
	}
}

func TestNormalizeMissingSummary(t *testing.T) {
	raw := `{
  "sections": {
    "patient_profile": "a", "complaints": "b", "observations": "c",
    "actions": "d", "risks": "e", "follow_up": "f"
  }
}`
	if _, err := Normalize(raw); err == nil {
		t.Fatal("expected error for missing summary")
	}
}

func TestNormalizePlainProse(t *testing.T) {
	_, err := Normalize("Här kommer en sammanfattning av besöket. Patienten mår bra.")
	if err == nil {
		t.Fatal("expected error for prose response")
	}
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T", err)
	}
}

func TestStripFencesSingleLine(t *testing.T) {
	got := stripFences("```{\"a\":1}```")
	if got != `{"a":1}` {
		t.Fatalf("unexpected strip result: %q", got)
	}
}
