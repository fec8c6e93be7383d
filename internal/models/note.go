package models

// SentinelNotDiscussed marks a care-note section that the conversation did
// not cover. The summarization prompt instructs the model to emit this exact
// phrase, so a filled section and an undiscussed one stay distinguishable.
const SentinelNotDiscussed = "Inte diskuterat under detta besök"

// Sections is the fixed six-part body of a care note. Every field is always
// present; undiscussed fields carry SentinelNotDiscussed rather than "".
type Sections struct {
	PatientProfile string `json:"patient_profile"`
	Complaints     string `json:"complaints"`
	Observations   string `json:"observations"`
	Actions        string `json:"actions"`
	Risks          string `json:"risks"`
	FollowUp       string `json:"follow_up"`
}

// CareNote is the structured record produced from one visit transcript.
type CareNote struct {
	Summary  string   `json:"summary"`
	Sections Sections `json:"sections"`
}
