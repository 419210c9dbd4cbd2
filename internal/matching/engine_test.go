// internal/matching/engine_test.go
package matching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "placement-matching/internal/common/errors"
	"placement-matching/internal/common/logger"
	"placement-matching/internal/models"
)

// ==========================
// Fake Stores
// ==========================

type fakeProfileStore struct {
	profiles    map[string]models.CandidateProfile
	eligPool    []models.CandidateProfile
	eligLimit   int
	total       int
	frequencies map[models.ProfileField][]models.FieldFrequency
	err         error
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*models.CandidateProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperrors.NewProfileNotFoundError(id)
	}
	return &p, nil
}

func (f *fakeProfileStore) QueryByEligibility(_ context.Context, _, _ []string, _ []int, limit int) ([]models.CandidateProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.eligLimit = limit
	if len(f.eligPool) > limit {
		return f.eligPool[:limit], nil
	}
	return f.eligPool, nil
}

func (f *fakeProfileStore) CountAll(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

func (f *fakeProfileStore) TopFieldFrequencies(_ context.Context, field models.ProfileField, _ int) ([]models.FieldFrequency, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.frequencies[field], nil
}

type fakeJobStore struct {
	jobs      map[string]models.JobListing
	active    []models.JobListing
	lastQuery models.JobQuery
	err       error
}

func (f *fakeJobStore) GetByID(_ context.Context, id string) (*models.JobListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.NewJobNotFoundError(id)
	}
	return &j, nil
}

func (f *fakeJobStore) QueryActive(_ context.Context, q models.JobQuery) ([]models.JobListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastQuery = q
	return f.active, nil
}

func (f *fakeJobStore) CountActive(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.active), nil
}

// ==========================
// Test Helper Functions
// ==========================

var testBaseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, profiles ProfileStore, jobs JobStore) *Engine {
	e := NewEngine(profiles, jobs, logger.NewTestLogger(t))
	e.now = func() time.Time { return testBaseTime }
	return e
}

func listingFor(id string, elig models.JobEligibility, postedAgo time.Duration) models.JobListing {
	return models.JobListing{
		ID:                  id,
		Title:               "Software Engineer",
		Organization:        "Acme Corp",
		Type:                models.JobTypeJob,
		WorkMode:            models.WorkModeOnsite,
		Eligibility:         elig,
		PostedAt:            testBaseTime.Add(-postedAgo),
		ApplicationDeadline: testBaseTime.Add(30 * 24 * time.Hour),
		Active:              true,
	}
}

// ==========================
// Forward Matcher Tests
// ==========================

func TestRecommendJobsForUser_ProfileNotFound(t *testing.T) {
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{}},
		&fakeJobStore{},
	)

	matches, err := engine.RecommendJobsForUser(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, apperrors.ErrCodeProfileNotFound, apperrors.CodeOf(err))
	assert.Nil(t, matches)
}

func TestRecommendJobsForUser_EmptyPoolIsNotAnError(t *testing.T) {
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{active: nil},
	)

	matches, err := engine.RecommendJobsForUser(context.Background(), "p1", nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRecommendJobsForUser_DiscardsBelowMinScore(t *testing.T) {
	good := listingFor("job-good", btechEligibility(), 24*time.Hour)
	bad := listingFor("job-bad", models.JobEligibility{
		Qualifications:  []string{"MBA"},
		Streams:         []string{"Finance"},
		GraduationYears: []int{2018},
		MinGPA:          floatPtr(9.5),
	}, 24*time.Hour)

	jobs := &fakeJobStore{active: []models.JobListing{bad, good}}
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		jobs,
	)

	matches, err := engine.RecommendJobsForUser(context.Background(), "p1", nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "job-good", matches[0].JobID)
	assert.Equal(t, 105, matches[0].Score)
	assert.Len(t, matches[0].Reasons, 5)
}

func TestRecommendJobsForUser_PassesPreferencesToStore(t *testing.T) {
	jobs := &fakeJobStore{}
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		jobs,
	)

	prefs := &models.MatchPreferences{
		JobTypes:  []models.JobType{models.JobTypeInternship},
		WorkModes: []models.WorkMode{models.WorkModeRemote},
	}
	_, err := engine.RecommendJobsForUser(context.Background(), "p1", prefs)
	require.NoError(t, err)

	assert.Equal(t, prefs.JobTypes, jobs.lastQuery.Types)
	assert.Equal(t, prefs.WorkModes, jobs.lastQuery.WorkModes)
	assert.Equal(t, testBaseTime, jobs.lastQuery.DeadlineAfter)
}

func TestRecommendJobsForUser_TiesBreakByRecency(t *testing.T) {
	older := listingFor("job-older", btechEligibility(), 72*time.Hour)
	newer := listingFor("job-newer", btechEligibility(), 2*time.Hour)

	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{active: []models.JobListing{older, newer}},
	)

	matches, err := engine.RecommendJobsForUser(context.Background(), "p1", nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "job-newer", matches[0].JobID)
	assert.Equal(t, "job-older", matches[1].JobID)
}

func TestRecommendJobsForUser_TruncatesToMaxResults(t *testing.T) {
	var pool []models.JobListing
	for i := 0; i < 25; i++ {
		pool = append(pool, listingFor("job", btechEligibility(), time.Duration(i)*time.Hour))
	}

	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{active: pool},
	)

	matches, err := engine.RecommendJobsForUser(context.Background(), "p1", nil)
	require.NoError(t, err)
	assert.Len(t, matches, DefaultMaxResults)

	matches, err = engine.RecommendJobsForUser(context.Background(), "p1", &models.MatchPreferences{MaxResults: 3})
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

// A GPA shortfall lowers the forward score but does not exclude the listing,
// unlike the reverse matcher's hard gate.
func TestRecommendJobsForUser_GPAShortfallStillRecommends(t *testing.T) {
	elig := btechEligibility()
	elig.MinGPA = floatPtr(9.0) // profile has 8.0

	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{active: []models.JobListing{listingFor("job-strict", elig, time.Hour)}},
	)

	matches, err := engine.RecommendJobsForUser(context.Background(), "p1", nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 95, matches[0].Score) // everything but the gpa factor
}

func TestRecommendJobsForUser_StoreErrorPropagates(t *testing.T) {
	storeErr := apperrors.NewQueryExecutionFailedError("listings", assert.AnError)
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{err: storeErr},
	)

	_, err := engine.RecommendJobsForUser(context.Background(), "p1", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.CodeOf(err))
}
