// internal/models/profile.go
package models

// CandidateProfile is the read-only projection of a user that the matching
// engine scores. The profile subsystem owns and mutates the record; the
// engine only sees a point-in-time snapshot per call.
type CandidateProfile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Qualification  string  `json:"qualification"`
	Stream         string  `json:"stream"`
	GraduationYear int     `json:"graduationYear"`
	GPA            float64 `json:"gpaOrPercentage"`
}

// ProfileField names a profile column that can be aggregated into
// top-frequency lists.
type ProfileField string

const (
	ProfileFieldQualification ProfileField = "qualification"
	ProfileFieldStream        ProfileField = "stream"
)

// FieldFrequency is one row of a grouped frequency query.
type FieldFrequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}
