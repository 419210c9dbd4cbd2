// internal/models/job.go
package models

import "time"

type JobType string

const (
	JobTypeJob        JobType = "job"
	JobTypeInternship JobType = "internship"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
)

// JobEligibility is the rule block embedded in a posting. All three set
// fields are non-empty for any postable job; a nil MinGPA means no GPA floor.
type JobEligibility struct {
	Qualifications  []string `json:"qualifications"`
	Streams         []string `json:"streams"`
	GraduationYears []int    `json:"graduationYears"`
	MinGPA          *float64 `json:"minGpa,omitempty"`
}

type JobListing struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Organization        string         `json:"organization"`
	Type                JobType        `json:"type"`
	WorkMode            WorkMode       `json:"workMode"`
	Eligibility         JobEligibility `json:"eligibility"`
	PostedAt            time.Time      `json:"postedAt"`
	ApplicationDeadline time.Time      `json:"applicationDeadline"`
	Salary              string         `json:"salary,omitempty"`       // display string, e.g. "6-8 LPA"
	SalaryAmount        float64        `json:"salaryAmount,omitempty"` // parsed numeric amount, 0 when unknown
	Active              bool           `json:"active"`
}

// JobQuery is the filter record every JobStore implementation accepts for
// QueryActive. Empty slices mean "no restriction" for that dimension; filter
// dimensions are ANDed. Limit/Offset page the store query itself.
type JobQuery struct {
	Types          []JobType  `json:"types,omitempty"`
	WorkModes      []WorkMode `json:"workModes,omitempty"`
	Qualifications []string   `json:"qualifications,omitempty"`
	Streams        []string   `json:"streams,omitempty"`
	SalaryMin      float64    `json:"salaryMin,omitempty"`
	SalaryMax      float64    `json:"salaryMax,omitempty"`
	DeadlineAfter  time.Time  `json:"deadlineAfter,omitempty"`
	Limit          int        `json:"limit,omitempty"`
	Offset         int        `json:"offset,omitempty"`
}
