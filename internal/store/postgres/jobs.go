// internal/store/postgres/jobs.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	apperrors "placement-matching/internal/common/errors"
	"placement-matching/internal/common/logger"
	"placement-matching/internal/common/validation"
	"placement-matching/internal/models"
)

const jobColumns = `id, title, organization, type, work_mode, eligibility, salary, salary_amount, posted_at, application_deadline, active`

// JobStore reads job listings from PostgreSQL. Eligibility lives in a JSONB
// column and is schema-validated on every scan; listings carrying a broken
// payload never reach the scorer.
type JobStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewJobStore(db *sql.DB, log logger.Logger) *JobStore {
	return &JobStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "jobs"}),
	}
}

func (s *JobStore) GetByID(ctx context.Context, id string) (*models.JobListing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM job_listings WHERE id = $1`, id)

	listing, err := scanJobListing(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewJobNotFoundError(id)
	}
	if err != nil {
		if _, ok := err.(*apperrors.StandardError); ok {
			return nil, err
		}
		return nil, apperrors.NewQueryExecutionFailedError("job_by_id", err)
	}
	return listing, nil
}

// QueryActive builds the WHERE clause from whichever filters the query
// carries. Results come back newest first; LIMIT and OFFSET apply at the
// database, before any scoring happens upstream.
func (s *JobStore) QueryActive(ctx context.Context, q models.JobQuery) ([]models.JobListing, error) {
	conds := []string{"active = TRUE"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !q.DeadlineAfter.IsZero() {
		conds = append(conds, "application_deadline > "+arg(q.DeadlineAfter))
	}
	if len(q.Types) > 0 {
		conds = append(conds, "type = ANY("+arg(pq.Array(jobTypeStrings(q.Types)))+")")
	}
	if len(q.WorkModes) > 0 {
		conds = append(conds, "work_mode = ANY("+arg(pq.Array(workModeStrings(q.WorkModes)))+")")
	}
	if len(q.Qualifications) > 0 {
		conds = append(conds, "eligibility->'qualifications' ?| "+arg(pq.Array(q.Qualifications)))
	}
	if len(q.Streams) > 0 {
		conds = append(conds, "eligibility->'streams' ?| "+arg(pq.Array(q.Streams)))
	}
	if q.SalaryMin > 0 {
		conds = append(conds, "salary_amount >= "+arg(q.SalaryMin))
	}
	if q.SalaryMax > 0 {
		conds = append(conds, "salary_amount <= "+arg(q.SalaryMax))
	}

	query := `SELECT ` + jobColumns + `
		FROM job_listings
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY posted_at DESC`
	if q.Limit > 0 {
		query += " LIMIT " + arg(q.Limit)
	}
	if q.Offset > 0 {
		query += " OFFSET " + arg(q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("jobs_active", err)
	}
	defer rows.Close()

	var listings []models.JobListing
	for rows.Next() {
		listing, err := scanJobListing(rows)
		if err != nil {
			if stdErr, ok := err.(*apperrors.StandardError); ok && stdErr.Code == apperrors.ErrCodeEligibilityInvalid {
				// Skip the broken row instead of failing the whole query.
				s.logger.Warn("skipping listing with invalid eligibility", map[string]interface{}{
					"error": stdErr.Message,
				})
				continue
			}
			return nil, apperrors.NewQueryExecutionFailedError("jobs_active", err)
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("jobs_active", err)
	}

	return listings, nil
}

func (s *JobStore) CountActive(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_listings WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("jobs_count", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJobListing(row rowScanner) (*models.JobListing, error) {
	var listing models.JobListing
	var rawEligibility []byte

	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Organization,
		&listing.Type,
		&listing.WorkMode,
		&rawEligibility,
		&listing.Salary,
		&listing.SalaryAmount,
		&listing.PostedAt,
		&listing.ApplicationDeadline,
		&listing.Active,
	)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateEligibilityJSON(rawEligibility); err != nil {
		return nil, apperrors.NewEligibilityInvalidError(listing.ID, err.Error())
	}
	if err := json.Unmarshal(rawEligibility, &listing.Eligibility); err != nil {
		return nil, apperrors.NewEligibilityInvalidError(listing.ID, err.Error())
	}

	return &listing, nil
}

func jobTypeStrings(types []models.JobType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func workModeStrings(modes []models.WorkMode) []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}
