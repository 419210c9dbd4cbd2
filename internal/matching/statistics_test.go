// internal/matching/statistics_test.go
package matching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "placement-matching/internal/common/errors"
	"placement-matching/internal/models"
)

func TestStatistics(t *testing.T) {
	profiles := &fakeProfileStore{
		total: 120,
		frequencies: map[models.ProfileField][]models.FieldFrequency{
			models.ProfileFieldQualification: {
				{Value: "B.Tech", Count: 80},
				{Value: "MCA", Count: 25},
			},
			models.ProfileFieldStream: {
				{Value: "CSE", Count: 60},
				{Value: "ECE", Count: 30},
			},
		},
	}
	jobs := &fakeJobStore{active: []models.JobListing{
		listingFor("j1", btechEligibility(), time.Hour),
		listingFor("j2", btechEligibility(), 2*time.Hour),
	}}

	engine := newTestEngine(t, profiles, jobs)

	stats, err := engine.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalJobs)
	assert.Equal(t, "B.Tech", stats.TopQualifications[0].Value)
	assert.Equal(t, "CSE", stats.TopStreams[0].Value)
	assert.Equal(t, testBaseTime, stats.GeneratedAt)
	assert.NotZero(t, stats.AverageMatchScore)
	assert.NotEmpty(t, stats.MatchingEfficiency)
}

func TestStatistics_EmptyPopulation(t *testing.T) {
	engine := newTestEngine(t, &fakeProfileStore{}, &fakeJobStore{})

	stats, err := engine.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalUsers)
	assert.Equal(t, 0, stats.TotalJobs)
	assert.NotNil(t, stats.TopQualifications)
	assert.Empty(t, stats.TopQualifications)
	assert.NotNil(t, stats.TopStreams)
	assert.Empty(t, stats.TopStreams)
}

func TestStatistics_StoreErrorPropagates(t *testing.T) {
	engine := newTestEngine(t,
		&fakeProfileStore{err: apperrors.NewQueryExecutionFailedError("profiles", assert.AnError)},
		&fakeJobStore{},
	)

	_, err := engine.Statistics(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.CodeOf(err))
}
