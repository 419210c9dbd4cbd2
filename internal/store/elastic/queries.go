// internal/store/elastic/queries.go
package elastic

import (
	"encoding/json"
	"time"

	"placement-matching/internal/models"
)

// jobDocument mirrors the job-listings index mapping.
type jobDocument struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Organization        string          `json:"organization"`
	Type                string          `json:"type"`
	WorkMode            string          `json:"work_mode"`
	Eligibility         json.RawMessage `json:"eligibility"`
	Salary              string          `json:"salary"`
	SalaryAmount        float64         `json:"salary_amount"`
	PostedAt            time.Time       `json:"posted_at"`
	ApplicationDeadline time.Time       `json:"application_deadline"`
	Active              bool            `json:"active"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source jobDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type getResponse struct {
	Found  bool        `json:"found"`
	Source jobDocument `json:"_source"`
}

type countResponse struct {
	Count int `json:"count"`
}

// buildJobSearchQuery assembles the bool query for active listings. Every
// filter the caller left empty stays out of the clause list.
func buildJobSearchQuery(q models.JobQuery) map[string]interface{} {
	filterClauses := []interface{}{
		map[string]interface{}{
			"term": map[string]interface{}{"active": true},
		},
	}

	if !q.DeadlineAfter.IsZero() {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"application_deadline": map[string]interface{}{"gt": q.DeadlineAfter.Format(time.RFC3339)},
			},
		})
	}
	if len(q.Types) > 0 {
		terms := make([]string, 0, len(q.Types))
		for _, t := range q.Types {
			terms = append(terms, string(t))
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"type": terms},
		})
	}
	if len(q.WorkModes) > 0 {
		terms := make([]string, 0, len(q.WorkModes))
		for _, m := range q.WorkModes {
			terms = append(terms, string(m))
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"work_mode": terms},
		})
	}
	if len(q.Qualifications) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"eligibility.qualifications": q.Qualifications},
		})
	}
	if len(q.Streams) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"eligibility.streams": q.Streams},
		})
	}
	if q.SalaryMin > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"salary_amount": map[string]interface{}{"gte": q.SalaryMin},
			},
		})
	}
	if q.SalaryMax > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"salary_amount": map[string]interface{}{"lte": q.SalaryMax},
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   []interface{}{map[string]interface{}{"match_all": map[string]interface{}{}}},
				"filter": filterClauses,
			},
		},
		"sort": []map[string]interface{}{{"posted_at": "desc"}},
	}
}
