// internal/store/search.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pathway-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// SearchStore reads the pathway catalog from an Elasticsearch index whose
// documents use the catalog's snake_case field names.
type SearchStore struct {
	client  *elasticsearch.Client
	index   string
	maxHits int
}

func NewSearchStore(client *elasticsearch.Client, index string, maxHits int) *SearchStore {
	if maxHits <= 0 {
		maxHits = 1000
	}
	return &SearchStore{client: client, index: index, maxHits: maxHits}
}

type pathwayDoc struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	RequiredSkills          []string `json:"required_skills"`
	RequiredExperienceYears float64  `json:"required_experience_years"`
	PreferredLocations      []string `json:"preferred_locations"`
	PRPointsThreshold       float64  `json:"pr_points_threshold"`
	RecommendedCourses      []string `json:"recommended_courses"`
	DifficultyLevel         *int     `json:"difficulty_level"`
	SuccessRate             *float64 `json:"success_rate"`
	EstimatedCost           *float64 `json:"estimated_cost"`
	EstimatedDuration       *float64 `json:"estimated_duration"`
}

func (d pathwayDoc) toModel(id string) models.Pathway {
	if d.ID == "" {
		d.ID = id
	}
	return models.Pathway{
		ID:                      d.ID,
		Name:                    d.Name,
		RequiredSkills:          d.RequiredSkills,
		RequiredExperienceYears: d.RequiredExperienceYears,
		PreferredLocations:      d.PreferredLocations,
		PRPointsThreshold:       d.PRPointsThreshold,
		RecommendedCourses:      d.RecommendedCourses,
		DifficultyLevel:         d.DifficultyLevel,
		SuccessRate:             d.SuccessRate,
		EstimatedCost:           d.EstimatedCost,
		EstimatedDuration:       d.EstimatedDuration,
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string     `json:"_id"`
			Source pathwayDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ListPathways returns catalog documents sorted by id. The result is capped
// at the store's maxHits or limit, whichever is smaller.
func (s *SearchStore) ListPathways(ctx context.Context, limit int) ([]models.Pathway, error) {
	size := s.maxHits
	if limit > 0 && limit < size {
		size = limit
	}

	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"active": false}},
				},
			},
		},
		"sort": []interface{}{map[string]interface{}{"id": "asc"}},
	})

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", s.index, readError(res.Body, res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	catalog := make([]models.Pathway, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		catalog = append(catalog, hit.Source.toModel(hit.ID))
	}
	return catalog, nil
}

func (s *SearchStore) GetPathway(ctx context.Context, pathwayID string) (*models.Pathway, error) {
	req := esapi.GetRequest{Index: s.index, DocumentID: pathwayID}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", s.index, pathwayID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrPathwayNotFound, pathwayID)
	}
	if res.IsError() {
		return nil, fmt.Errorf("get %s/%s: %s", s.index, pathwayID, readError(res.Body, res.Status()))
	}

	var doc struct {
		ID     string     `json:"_id"`
		Found  bool       `json:"found"`
		Source pathwayDoc `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if !doc.Found {
		return nil, fmt.Errorf("%w: %s", ErrPathwayNotFound, pathwayID)
	}
	p := doc.Source.toModel(doc.ID)
	return &p, nil
}

func readError(body io.Reader, status string) string {
	var e struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&e); err != nil || e.Error.Type == "" {
		return status
	}
	return fmt.Sprintf("%s: %s: %s", status, e.Error.Type, e.Error.Reason)
}
