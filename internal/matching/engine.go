// Package matching implements the candidate-job matching engine: a pure
// scoring primitive plus forward, reverse and advanced matchers and a
// statistics reporter over two read-only stores. The engine holds no state
// across calls; every result is recomputed over the current snapshot.
package matching

import (
	"context"
	"sort"
	"time"

	apperrors "placement-matching/internal/common/errors"
	"placement-matching/internal/common/logger"
	"placement-matching/internal/common/metrics"
	"placement-matching/internal/models"
)

// Defaults applied when the caller leaves preference fields at zero.
const (
	DefaultMinScore       = 40
	DefaultMaxResults     = 15
	DefaultReverseResults = 50
	DefaultAdvancedLimit  = 20
	StatisticsTopK        = 5
)

// Operation labels for metrics.
const (
	opForward    = "forward"
	opReverse    = "reverse"
	opAdvanced   = "advanced"
	opStatistics = "statistics"
)

// ProfileStore is the read path into the user-profile subsystem.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.CandidateProfile, error)
	QueryByEligibility(ctx context.Context, qualifications, streams []string, years []int, limit int) ([]models.CandidateProfile, error)
	CountAll(ctx context.Context) (int, error)
	TopFieldFrequencies(ctx context.Context, field models.ProfileField, k int) ([]models.FieldFrequency, error)
}

// JobStore is the read path into the job-posting subsystem.
type JobStore interface {
	GetByID(ctx context.Context, id string) (*models.JobListing, error)
	QueryActive(ctx context.Context, q models.JobQuery) ([]models.JobListing, error)
	CountActive(ctx context.Context) (int, error)
}

// Engine wires the two stores to the scoring primitive. Safe for concurrent
// use; it has no mutable state.
type Engine struct {
	profiles ProfileStore
	jobs     JobStore
	logger   logger.Logger
	now      func() time.Time
}

func NewEngine(profiles ProfileStore, jobs JobStore, log logger.Logger) *Engine {
	return &Engine{
		profiles: profiles,
		jobs:     jobs,
		logger:   log.WithFields(map[string]interface{}{"component": "matching-engine"}),
		now:      time.Now,
	}
}

// RecommendJobsForUser ranks active, non-expired listings for a candidate.
// GPA shortfall lowers the score but never excludes a listing; only
// PROFILE_NOT_FOUND is a failure, an empty pool yields an empty result.
func (e *Engine) RecommendJobsForUser(ctx context.Context, profileID string, prefs *models.MatchPreferences) ([]models.JobMatch, error) {
	start := e.now()
	metrics.MatchRequests.WithLabelValues(opForward).Inc()

	profile, err := e.getProfile(ctx, profileID)
	if err != nil {
		e.recordFailure(opForward, err)
		return nil, err
	}

	p := normalizePreferences(prefs)

	listings, err := e.jobs.QueryActive(ctx, models.JobQuery{
		Types:         p.JobTypes,
		WorkModes:     p.WorkModes,
		DeadlineAfter: e.now(),
	})
	if err != nil {
		e.recordFailure(opForward, err)
		return nil, err
	}

	matches := make([]models.JobMatch, 0, len(listings))
	for _, job := range listings {
		score, reasons := ComputeMatchScore(*profile, job.Eligibility)
		if score < p.MinScore {
			continue
		}
		matches = append(matches, models.JobMatch{
			JobID:        job.ID,
			Title:        job.Title,
			Organization: job.Organization,
			Type:         job.Type,
			WorkMode:     job.WorkMode,
			PostedAt:     job.PostedAt,
			Score:        score,
			Reasons:      reasons,
		})
	}
	metrics.CandidatesScored.WithLabelValues(opForward).Add(float64(len(listings)))

	sortJobMatches(matches)
	if len(matches) > p.MaxResults {
		matches = matches[:p.MaxResults]
	}

	metrics.MatchDuration.WithLabelValues(opForward).Observe(e.now().Sub(start).Seconds())
	e.logger.Info("forward match completed", map[string]interface{}{
		"profileId": profileID,
		"poolSize":  len(listings),
		"results":   len(matches),
	})

	return matches, nil
}

// getProfile resolves a profile id or fails with PROFILE_NOT_FOUND.
func (e *Engine) getProfile(ctx context.Context, profileID string) (*models.CandidateProfile, error) {
	profile, err := e.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewProfileNotFoundError(profileID)
	}
	return profile, nil
}

func (e *Engine) recordFailure(operation string, err error) {
	metrics.MatchFailures.WithLabelValues(operation, string(apperrors.CodeOf(err))).Inc()
}

func normalizePreferences(prefs *models.MatchPreferences) models.MatchPreferences {
	var p models.MatchPreferences
	if prefs != nil {
		p = *prefs
	}
	if p.MinScore <= 0 {
		p.MinScore = DefaultMinScore
	}
	if p.MaxResults <= 0 {
		p.MaxResults = DefaultMaxResults
	}
	return p
}

// sortJobMatches orders by score descending, ties broken by the most recent
// posting. Stable so equal entries keep their query order.
func sortJobMatches(matches []models.JobMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].PostedAt.After(matches[j].PostedAt)
	})
}
