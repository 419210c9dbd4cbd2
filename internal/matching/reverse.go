// internal/matching/reverse.go
package matching

import (
	"context"
	"sort"

	apperrors "placement-matching/internal/common/errors"
	"placement-matching/internal/common/metrics"
	"placement-matching/internal/models"
)

// MatchUsersForJob ranks candidates for a posting. The profile store is
// pre-filtered on qualification/stream/year to bound the scoring workload,
// and the GPA floor is a hard exclusion here: a recruiter asking "who
// qualifies" never sees a profile below the floor, unlike forward matching
// where a GPA shortfall only lowers the score.
func (e *Engine) MatchUsersForJob(ctx context.Context, jobID string, maxResults int) ([]models.CandidateMatch, error) {
	start := e.now()
	metrics.MatchRequests.WithLabelValues(opReverse).Inc()

	if maxResults <= 0 {
		maxResults = DefaultReverseResults
	}

	job, err := e.jobs.GetByID(ctx, jobID)
	if err != nil {
		e.recordFailure(opReverse, err)
		return nil, err
	}
	if job == nil {
		err := apperrors.NewJobNotFoundError(jobID)
		e.recordFailure(opReverse, err)
		return nil, err
	}
	elig := job.Eligibility

	// Fetch twice the requested count; the GPA gate below thins the pool.
	candidates, err := e.profiles.QueryByEligibility(ctx, elig.Qualifications, elig.Streams, elig.GraduationYears, 2*maxResults)
	if err != nil {
		e.recordFailure(opReverse, err)
		return nil, err
	}

	matches := make([]models.CandidateMatch, 0, len(candidates))
	scored := 0
	for _, candidate := range candidates {
		if elig.MinGPA != nil && candidate.GPA < *elig.MinGPA {
			continue
		}
		score, reasons := ComputeMatchScore(candidate, elig)
		scored++
		matches = append(matches, models.CandidateMatch{
			ProfileID:      candidate.ID,
			Name:           candidate.Name,
			Qualification:  candidate.Qualification,
			Stream:         candidate.Stream,
			GraduationYear: candidate.GraduationYear,
			Score:          score,
			Reasons:        reasons,
		})
	}
	metrics.CandidatesScored.WithLabelValues(opReverse).Add(float64(scored))

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	metrics.MatchDuration.WithLabelValues(opReverse).Observe(e.now().Sub(start).Seconds())
	e.logger.Info("reverse match completed", map[string]interface{}{
		"jobId":      jobID,
		"candidates": len(candidates),
		"gated":      len(candidates) - scored,
		"results":    len(matches),
	})

	return matches, nil
}
