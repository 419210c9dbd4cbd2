// internal/matching/advanced_test.go
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

func TestAdvancedMatch_RequesterNotFound(t *testing.T) {
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{}},
		&fakeJobStore{},
	)

	_, err := engine.AdvancedMatch(context.Background(), "missing", models.AdvancedMatchRequest{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeProfileNotFound, apperrors.CodeOf(err))
}

func TestAdvancedMatch_BonusPassAndClamp(t *testing.T) {
	// Perfect base match (105 unclamped) posted yesterday, with both filter
	// bonuses applicable: the advanced score must still cap at 100.
	listing := listingFor("job-1", btechEligibility(), 24*time.Hour)
	listing.WorkMode = models.WorkModeRemote

	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{active: []models.JobListing{listing}},
	)

	results, err := engine.AdvancedMatch(context.Background(), "p1", models.AdvancedMatchRequest{
		Qualifications: []string{"B.Tech"},
		WorkModes:      []models.WorkMode{models.WorkModeRemote},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, MaxAdvancedScore, results[0].Score)

	// The typed breakdown carries the bonus entries alongside the base factors.
	kinds := map[models.ReasonKind]bool{}
	total := 0
	for _, r := range results[0].DetailedReasons {
		kinds[r.Kind] = true
		total += r.Contribution
	}
	assert.True(t, kinds[models.ReasonQualification])
	assert.True(t, kinds[models.ReasonStream])
	assert.True(t, kinds[models.ReasonExperience])
	assert.True(t, kinds[models.ReasonLocation])
	// 40+30+30 base factors plus 10+5+3 bonuses, before the clamp.
	assert.Equal(t, 118, total)
}

func TestAdvancedMatch_BonusesRequireTheFilter(t *testing.T) {
	listing := listingFor("job-1", btechEligibility(), 30*24*time.Hour) // not recent

	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{active: []models.JobListing{listing}},
	)

	results, err := engine.AdvancedMatch(context.Background(), "p1", models.AdvancedMatchRequest{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	// Base 105 with no bonuses, clamped down to 100.
	assert.Equal(t, 100, results[0].Score)
}

func TestAdvancedMatch_RecentPostingBonus(t *testing.T) {
	// Weak base match so the clamp does not mask the bonus.
	elig := models.JobEligibility{
		Qualifications:  []string{"MBA"},
		Streams:         []string{"CSE"},
		GraduationYears: []int{2023},
		MinGPA:          floatPtr(7.5),
	}
	recent := listingFor("job-recent", elig, 2*24*time.Hour)
	stale := listingFor("job-stale", elig, 10*24*time.Hour)

	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		&fakeJobStore{active: []models.JobListing{recent, stale}},
	)

	results, err := engine.AdvancedMatch(context.Background(), "p1", models.AdvancedMatchRequest{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	// Base: 30+20+10+5? qualification misses: 30(stream)+20(year)+10(gpa)=60, no bonus.
	assert.Equal(t, "job-recent", results[0].JobID)
	assert.Equal(t, 63, results[0].Score)
	assert.Equal(t, 60, results[1].Score)
}

func TestAdvancedMatch_SortModes(t *testing.T) {
	strong := listingFor("job-strong", btechEligibility(), 20*24*time.Hour)
	strong.Salary = "25,000/month"
	weak := listingFor("job-weak", models.JobEligibility{
		Qualifications:  []string{"MBA"},
		Streams:         []string{"CSE"},
		GraduationYears: []int{2023},
	}, 10*24*time.Hour)
	weak.Salary = "40,000/month"
	unsalaried := listingFor("job-unpaid", btechEligibility(), 15*24*time.Hour)
	unsalaried.Salary = "Competitive"

	pool := []models.JobListing{strong, weak, unsalaried}

	tests := []struct {
		name     string
		sortBy   models.SortMode
		expected []string
	}{
		{
			name:     "relevance sorts by advanced score with recency tie-break",
			sortBy:   models.SortByRelevance,
			expected: []string{"job-unpaid", "job-strong", "job-weak"},
		},
		{
			name:     "date sorts by posting recency",
			sortBy:   models.SortByDate,
			expected: []string{"job-weak", "job-unpaid", "job-strong"},
		},
		{
			name:     "salary sorts numerically with non-numeric last",
			sortBy:   models.SortBySalary,
			expected: []string{"job-weak", "job-strong", "job-unpaid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t,
				&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
				&fakeJobStore{active: pool},
			)

			results, err := engine.AdvancedMatch(context.Background(), "p1", models.AdvancedMatchRequest{SortBy: tt.sortBy})
			require.NoError(t, err)
			require.Len(t, results, len(tt.expected))
			for i, id := range tt.expected {
				assert.Equal(t, id, results[i].JobID)
			}
		})
	}
}

// Pagination is handed to the store before any scoring happens, so a page
// boundary follows query order, not global score order. Documented behavior;
// do not "fix" silently.
func TestAdvancedMatch_PaginationAppliedBeforeScoring(t *testing.T) {
	jobs := &fakeJobStore{}
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		jobs,
	)

	_, err := engine.AdvancedMatch(context.Background(), "p1", models.AdvancedMatchRequest{
		Limit:  10,
		Offset: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, jobs.lastQuery.Limit)
	assert.Equal(t, 30, jobs.lastQuery.Offset)
}

func TestAdvancedMatch_FiltersReachTheStore(t *testing.T) {
	jobs := &fakeJobStore{}
	engine := newTestEngine(t,
		&fakeProfileStore{profiles: map[string]models.CandidateProfile{"p1": btechProfile()}},
		jobs,
	)

	req := models.AdvancedMatchRequest{
		JobTypes:        []models.JobType{models.JobTypeJob},
		WorkModes:       []models.WorkMode{models.WorkModeHybrid},
		Qualifications:  []string{"B.Tech", "M.Tech"},
		Streams:         []string{"CSE"},
		SalaryMin:       20000,
		SalaryMax:       80000,
		ExperienceLevel: "entry", // pass-through, nothing consumes it
	}
	_, err := engine.AdvancedMatch(context.Background(), "p1", req)
	require.NoError(t, err)

	assert.Equal(t, req.JobTypes, jobs.lastQuery.Types)
	assert.Equal(t, req.WorkModes, jobs.lastQuery.WorkModes)
	assert.Equal(t, req.Qualifications, jobs.lastQuery.Qualifications)
	assert.Equal(t, req.Streams, jobs.lastQuery.Streams)
	assert.Equal(t, req.SalaryMin, jobs.lastQuery.SalaryMin)
	assert.Equal(t, req.SalaryMax, jobs.lastQuery.SalaryMax)
}

func TestParseSalaryAmount(t *testing.T) {
	tests := []struct {
		display  string
		expected float64
	}{
		{"25,000/month", 25000},
		{"40000", 40000},
		{"6.5 LPA", 6.5},
		{"Competitive", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseSalaryAmount(tt.display), tt.display)
	}
}
