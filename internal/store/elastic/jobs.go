// Package elastic implements the search-path job store on top of the
// go-elasticsearch client, for deployments where listings are indexed
// rather than read from PostgreSQL.
package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "placement-matching/internal/common/errors"
	"placement-matching/internal/common/logger"
	"placement-matching/internal/common/validation"
	"placement-matching/internal/models"
)

type JobStore struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewJobStore(client *elasticsearch.Client, index string, log logger.Logger) *JobStore {
	return &JobStore{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"store": "jobs-elastic", "index": index}),
	}
}

func (s *JobStore) GetByID(ctx context.Context, id string) (*models.JobListing, error) {
	req := esapi.GetRequest{
		Index:      s.index,
		DocumentID: id,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewJobNotFoundError(id)
	}
	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(s.index, errorFromResponse(res))
	}

	var out getResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(s.index, err)
	}
	if !out.Found {
		return nil, apperrors.NewJobNotFoundError(id)
	}

	return documentToListing(out.Source)
}

func (s *JobStore) QueryActive(ctx context.Context, q models.JobQuery) ([]models.JobListing, error) {
	body, _ := json.Marshal(buildJobSearchQuery(q))

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
	}
	if q.Limit > 0 {
		size := q.Limit
		req.Size = &size
	}
	if q.Offset > 0 {
		from := q.Offset
		req.From = &from
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(s.index, errorFromResponse(res))
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(s.index, err)
	}

	var listings []models.JobListing
	for _, hit := range out.Hits.Hits {
		listing, err := documentToListing(hit.Source)
		if err != nil {
			if stdErr, ok := err.(*apperrors.StandardError); ok && stdErr.Code == apperrors.ErrCodeEligibilityInvalid {
				s.logger.Warn("skipping indexed listing with invalid eligibility", map[string]interface{}{
					"error": stdErr.Message,
				})
				continue
			}
			return nil, err
		}
		listings = append(listings, *listing)
	}

	return listings, nil
}

func (s *JobStore) CountActive(ctx context.Context) (int, error) {
	body := `{"query":{"term":{"active":true}}}`
	req := esapi.CountRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return 0, apperrors.NewSearchQueryFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, apperrors.NewSearchQueryFailedError(s.index, errorFromResponse(res))
	}

	var out countResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, apperrors.NewSearchQueryFailedError(s.index, err)
	}

	return out.Count, nil
}

func documentToListing(doc jobDocument) (*models.JobListing, error) {
	if err := validation.ValidateEligibilityJSON(doc.Eligibility); err != nil {
		return nil, apperrors.NewEligibilityInvalidError(doc.ID, err.Error())
	}

	var eligibility models.JobEligibility
	if err := json.Unmarshal(doc.Eligibility, &eligibility); err != nil {
		return nil, apperrors.NewEligibilityInvalidError(doc.ID, err.Error())
	}

	return &models.JobListing{
		ID:                  doc.ID,
		Title:               doc.Title,
		Organization:        doc.Organization,
		Type:                models.JobType(doc.Type),
		WorkMode:            models.WorkMode(doc.WorkMode),
		Eligibility:         eligibility,
		Salary:              doc.Salary,
		SalaryAmount:        doc.SalaryAmount,
		PostedAt:            doc.PostedAt,
		ApplicationDeadline: doc.ApplicationDeadline,
		Active:              doc.Active,
	}, nil
}

func errorFromResponse(res *esapi.Response) error {
	return fmt.Errorf("elasticsearch responded %s", res.Status())
}
