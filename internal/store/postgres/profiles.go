// Package postgres provides the SQL-backed stores consumed by the matching
// engine: candidate profiles (with a Redis read-through cache) and job
// listings.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	apperrors "placement-matching/internal/common/errors"
	"placement-matching/internal/common/logger"
	"placement-matching/internal/models"
)

// ProfileStore reads candidate profiles from PostgreSQL. A non-nil Redis
// client turns GetByID into a read-through cache; cache failures fall back
// to the database silently.
type ProfileStore struct {
	db       *sql.DB
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewProfileStore(db *sql.DB, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"store": "profiles"}),
	}
}

func profileCacheKey(id string) string {
	return "profile:match:" + id
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*models.CandidateProfile, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, profileCacheKey(id)).Result(); err == nil {
			var profile models.CandidateProfile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, qualification, stream, graduation_year, gpa
		FROM profiles WHERE id = $1`, id)

	var profile models.CandidateProfile
	err := row.Scan(&profile.ID, &profile.Name, &profile.Qualification, &profile.Stream, &profile.GraduationYear, &profile.GPA)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewProfileNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("profile_by_id", err)
	}

	if s.cache != nil {
		data, _ := json.Marshal(profile)
		if err := s.cache.Set(ctx, profileCacheKey(id), data, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("profile cache write failed", map[string]interface{}{
				"profileId": id,
				"error":     err,
			})
		}
	}

	return &profile, nil
}

// QueryByEligibility is the cheap pre-filter of reverse matching: membership
// checks on the indexed columns, bounded by limit.
func (s *ProfileStore) QueryByEligibility(ctx context.Context, qualifications, streams []string, years []int, limit int) ([]models.CandidateProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, qualification, stream, graduation_year, gpa
		FROM profiles
		WHERE qualification = ANY($1) AND stream = ANY($2) AND graduation_year = ANY($3)
		ORDER BY gpa DESC
		LIMIT $4`,
		pq.Array(qualifications), pq.Array(streams), pq.Array(years), limit)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("profiles_by_eligibility", err)
	}
	defer rows.Close()

	var profiles []models.CandidateProfile
	for rows.Next() {
		var p models.CandidateProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Qualification, &p.Stream, &p.GraduationYear, &p.GPA); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("profiles_by_eligibility", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("profiles_by_eligibility", err)
	}

	return profiles, nil
}

func (s *ProfileStore) CountAll(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("profiles_count", err)
	}
	return count, nil
}

// profileColumns whitelists the groupable fields; the field name is spliced
// into SQL and must never come from user input unchecked.
var profileColumns = map[models.ProfileField]string{
	models.ProfileFieldQualification: "qualification",
	models.ProfileFieldStream:        "stream",
}

func (s *ProfileStore) TopFieldFrequencies(ctx context.Context, field models.ProfileField, k int) ([]models.FieldFrequency, error) {
	column, ok := profileColumns[field]
	if !ok {
		return nil, apperrors.NewQueryExecutionFailedError("profile_frequencies", fmt.Errorf("unsupported field %q", field))
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS freq
		FROM profiles
		WHERE %s <> ''
		GROUP BY %s
		ORDER BY freq DESC
		LIMIT $1`, column, column, column)

	rows, err := s.db.QueryContext(ctx, query, k)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("profile_frequencies", err)
	}
	defer rows.Close()

	var freqs []models.FieldFrequency
	for rows.Next() {
		var f models.FieldFrequency
		if err := rows.Scan(&f.Value, &f.Count); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("profile_frequencies", err)
		}
		freqs = append(freqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("profile_frequencies", err)
	}

	return freqs, nil
}
