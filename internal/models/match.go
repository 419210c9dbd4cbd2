// internal/models/match.go
package models

import "time"

// MatchPreferences narrows the candidate pool for forward matching. Zero
// values mean "no restriction"; the engine applies its defaults to MinScore
// and MaxResults.
type MatchPreferences struct {
	JobTypes   []JobType  `json:"jobTypes,omitempty"`
	WorkModes  []WorkMode `json:"workModes,omitempty"`
	MinScore   int        `json:"minScore,omitempty"`
	MaxResults int        `json:"maxResults,omitempty"`
}

// JobMatch is one ranked entry of a forward match, enriched with the listing
// summary fields the caller renders.
type JobMatch struct {
	JobID        string    `json:"jobId"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Type         JobType   `json:"type"`
	WorkMode     WorkMode  `json:"workMode"`
	PostedAt     time.Time `json:"postedAt"`
	Score        int       `json:"score"`
	Reasons      []string  `json:"reasons"`
}

// CandidateMatch is one ranked entry of a reverse match.
type CandidateMatch struct {
	ProfileID      string   `json:"profileId"`
	Name           string   `json:"name,omitempty"`
	Qualification  string   `json:"qualification"`
	Stream         string   `json:"stream"`
	GraduationYear int      `json:"graduationYear"`
	Score          int      `json:"score"`
	Reasons        []string `json:"reasons"`
}

type SortMode string

const (
	SortByRelevance SortMode = "relevance"
	SortByDate      SortMode = "date"
	SortBySalary    SortMode = "salary"
)

// AdvancedMatchRequest is the caller-supplied filter set for advanced
// matching. ExperienceLevel is accepted and carried through untouched; no
// scoring factor consumes it yet.
type AdvancedMatchRequest struct {
	JobTypes        []JobType  `json:"jobTypes,omitempty"`
	WorkModes       []WorkMode `json:"workModes,omitempty"`
	Qualifications  []string   `json:"qualifications,omitempty"`
	Streams         []string   `json:"streams,omitempty"`
	SalaryMin       float64    `json:"salaryMin,omitempty"`
	SalaryMax       float64    `json:"salaryMax,omitempty"`
	ExperienceLevel string     `json:"experienceLevel,omitempty"`
	Limit           int        `json:"limit,omitempty"`
	Offset          int        `json:"offset,omitempty"`
	SortBy          SortMode   `json:"sortBy,omitempty"`
}

// ReasonKind classifies a detailed reason entry for UI breakdowns.
type ReasonKind string

const (
	ReasonQualification ReasonKind = "qualification"
	ReasonStream        ReasonKind = "stream"
	ReasonExperience    ReasonKind = "experience"
	ReasonLocation      ReasonKind = "location"
)

// DetailedMatchReason carries a per-factor score contribution, distinct from
// the primitive's plain reason strings.
type DetailedMatchReason struct {
	Kind         ReasonKind `json:"kind"`
	Description  string     `json:"description"`
	Contribution int        `json:"contribution"`
}

// AdvancedJobMatch extends a JobMatch with salary fields and the typed
// reason breakdown produced by the bonus pass.
type AdvancedJobMatch struct {
	JobMatch
	Salary          string                `json:"salary,omitempty"`
	SalaryAmount    float64               `json:"salaryAmount,omitempty"`
	DetailedReasons []DetailedMatchReason `json:"detailedReasons"`
}

// MatchingStatistics aggregates population-level counts, independent of any
// specific match. Ephemeral; recomputed per call.
type MatchingStatistics struct {
	TotalUsers         int              `json:"totalUsers"`
	TotalJobs          int              `json:"totalJobs"`
	TopQualifications  []FieldFrequency `json:"topQualifications"`
	TopStreams         []FieldFrequency `json:"topStreams"`
	AverageMatchScore  float64          `json:"averageMatchScore"`
	MatchingEfficiency string           `json:"matchingEfficiency"`
	GeneratedAt        time.Time        `json:"generatedAt"`
}
