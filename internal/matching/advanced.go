// internal/matching/advanced.go
package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"placement-matching/internal/common/metrics"
	"placement-matching/internal/models"
)

// Bonus weights of the advanced pass, applied on top of the base score.
const (
	BonusQualificationAsk = 10 // profile qualification also in the caller's filter
	BonusWorkModeAsk      = 5  // listing work mode in the caller's filter
	BonusRecentPosting    = 3  // posted within the last week

	MaxAdvancedScore = 100

	recentPostingWindow = 7 * 24 * time.Hour
)

// AdvancedMatch is forward matching with caller-supplied filters, a bonus
// scoring pass and a selectable sort order. Pagination is applied by the
// store query before scoring, so a page boundary follows query order rather
// than global score order.
func (e *Engine) AdvancedMatch(ctx context.Context, profileID string, req models.AdvancedMatchRequest) ([]models.AdvancedJobMatch, error) {
	start := e.now()
	metrics.MatchRequests.WithLabelValues(opAdvanced).Inc()

	profile, err := e.getProfile(ctx, profileID)
	if err != nil {
		e.recordFailure(opAdvanced, err)
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultAdvancedLimit
	}

	listings, err := e.jobs.QueryActive(ctx, models.JobQuery{
		Types:          req.JobTypes,
		WorkModes:      req.WorkModes,
		Qualifications: req.Qualifications,
		Streams:        req.Streams,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		DeadlineAfter:  e.now(),
		Limit:          limit,
		Offset:         req.Offset,
	})
	if err != nil {
		e.recordFailure(opAdvanced, err)
		return nil, err
	}

	now := e.now()
	results := make([]models.AdvancedJobMatch, 0, len(listings))
	for _, job := range listings {
		base, reasons := ComputeMatchScore(*profile, job.Eligibility)
		score := base
		detailed := baseReasonBreakdown(*profile, job.Eligibility)

		if containsString(req.Qualifications, profile.Qualification) {
			score += BonusQualificationAsk
			detailed = append(detailed, models.DetailedMatchReason{
				Kind:         models.ReasonQualification,
				Description:  fmt.Sprintf("Qualification %q was explicitly requested in the search", profile.Qualification),
				Contribution: BonusQualificationAsk,
			})
		}
		if containsWorkMode(req.WorkModes, job.WorkMode) {
			score += BonusWorkModeAsk
			detailed = append(detailed, models.DetailedMatchReason{
				Kind:         models.ReasonLocation,
				Description:  fmt.Sprintf("Work mode %s matches the requested set", job.WorkMode),
				Contribution: BonusWorkModeAsk,
			})
		}
		if now.Sub(job.PostedAt) <= recentPostingWindow {
			score += BonusRecentPosting
			detailed = append(detailed, models.DetailedMatchReason{
				Kind:         models.ReasonLocation,
				Description:  "Posted within the last 7 days",
				Contribution: BonusRecentPosting,
			})
		}

		// Advanced scores are clamped to 0..100; the base primitive is not.
		if score > MaxAdvancedScore {
			score = MaxAdvancedScore
		}
		if score < 0 {
			score = 0
		}

		results = append(results, models.AdvancedJobMatch{
			JobMatch: models.JobMatch{
				JobID:        job.ID,
				Title:        job.Title,
				Organization: job.Organization,
				Type:         job.Type,
				WorkMode:     job.WorkMode,
				PostedAt:     job.PostedAt,
				Score:        score,
				Reasons:      reasons,
			},
			Salary:          job.Salary,
			SalaryAmount:    salaryAmountOf(job),
			DetailedReasons: detailed,
		})
	}
	metrics.CandidatesScored.WithLabelValues(opAdvanced).Add(float64(len(listings)))

	sortAdvancedMatches(results, req.SortBy)

	metrics.MatchDuration.WithLabelValues(opAdvanced).Observe(e.now().Sub(start).Seconds())
	e.logger.Info("advanced match completed", map[string]interface{}{
		"profileId": profileID,
		"page":      len(listings),
		"offset":    req.Offset,
		"sortBy":    req.SortBy,
	})

	return results, nil
}

// baseReasonBreakdown converts the primitive's factors into typed entries
// with their score contributions, for UI breakdowns. Graduation year and GPA
// roll up under the experience axis.
func baseReasonBreakdown(profile models.CandidateProfile, elig models.JobEligibility) []models.DetailedMatchReason {
	detailed := make([]models.DetailedMatchReason, 0, 4)

	qualContribution := 0
	if containsString(elig.Qualifications, profile.Qualification) {
		qualContribution = WeightQualification
	}
	detailed = append(detailed, models.DetailedMatchReason{
		Kind:         models.ReasonQualification,
		Description:  fmt.Sprintf("Qualification %q against accepted set", profile.Qualification),
		Contribution: qualContribution,
	})

	streamContribution := 0
	if containsString(elig.Streams, profile.Stream) {
		streamContribution = WeightStream
	}
	detailed = append(detailed, models.DetailedMatchReason{
		Kind:         models.ReasonStream,
		Description:  fmt.Sprintf("Stream %q against accepted set", profile.Stream),
		Contribution: streamContribution,
	})

	yearContribution := 0
	switch {
	case containsInt(elig.GraduationYears, profile.GraduationYear):
		yearContribution = WeightYear
	case withinOneYearOfEarliest(elig.GraduationYears, profile.GraduationYear):
		yearContribution = WeightYearAdjacent
	}
	gpaContribution := 0
	if elig.MinGPA == nil || profile.GPA >= *elig.MinGPA {
		gpaContribution = WeightGPA
	}
	detailed = append(detailed, models.DetailedMatchReason{
		Kind:         models.ReasonExperience,
		Description:  fmt.Sprintf("Graduation year %d and GPA %.2f against requirements", profile.GraduationYear, profile.GPA),
		Contribution: yearContribution + gpaContribution,
	})

	return detailed
}

func sortAdvancedMatches(results []models.AdvancedJobMatch, mode models.SortMode) {
	switch mode {
	case models.SortByDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].PostedAt.After(results[j].PostedAt)
		})
	case models.SortBySalary:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].SalaryAmount > results[j].SalaryAmount
		})
	default: // relevance
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			return results[i].PostedAt.After(results[j].PostedAt)
		})
	}
}

func salaryAmountOf(job models.JobListing) float64 {
	if job.SalaryAmount > 0 {
		return job.SalaryAmount
	}
	return ParseSalaryAmount(job.Salary)
}

func containsWorkMode(set []models.WorkMode, v models.WorkMode) bool {
	for _, m := range set {
		if m == v {
			return true
		}
	}
	return false
}
