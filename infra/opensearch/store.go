package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/andeslabs/culqi-gateway/culqi"
)

// Store indexes gateway audit records into OpenSearch for search and
// dashboarding. It implements culqi.LogStore alongside the SQLite store.
type Store struct {
	client *Client
}

// NewStore creates the audit indexer.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Create indexes one audit record.
func (s *Store) Create(ctx context.Context, entry *culqi.Log) error {
	if !s.client.IsEnabled() {
		return nil
	}

	if entry.ID == "" {
		entry.ID = "culqilog_" + uuid.NewString()
	}

	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      auditIndex,
		DocumentID: entry.ID,
		Body:       bytes.NewReader(doc),
	}

	res, err := req.Do(ctx, s.client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index audit record: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch error: %s", res.String())
	}

	return nil
}

// SearchByOperation returns recent audit records for one operation.
func (s *Store) SearchByOperation(ctx context.Context, operation string, hours int) ([]culqi.Log, error) {
	query := map[string]any{
		"bool": map[string]any{
			"must": []map[string]any{
				{"term": map[string]any{"operation": operation}},
				{
					"range": map[string]any{
						"start_date_utc": map[string]any{
							"gte": fmt.Sprintf("now-%dh", hours),
						},
					},
				},
			},
		},
	}
	return s.search(ctx, query)
}

// SearchByTrackingID returns the audit records carrying a tracking id.
func (s *Store) SearchByTrackingID(ctx context.Context, trackingID string) ([]culqi.Log, error) {
	query := map[string]any{
		"term": map[string]any{"tracking_id": trackingID},
	}
	return s.search(ctx, query)
}

// FailureStats aggregates call counts and failures per operation over the
// last given hours.
func (s *Store) FailureStats(ctx context.Context, hours int) (map[string]any, error) {
	if !s.client.IsEnabled() {
		return nil, fmt.Errorf("indexing is disabled")
	}

	aggQuery := map[string]any{
		"query": map[string]any{
			"range": map[string]any{
				"start_date_utc": map[string]any{
					"gte": fmt.Sprintf("now-%dh", hours),
				},
			},
		},
		"aggs": map[string]any{
			"by_operation": map[string]any{
				"terms": map[string]any{
					"field": "operation",
					"size":  50,
				},
				"aggs": map[string]any{
					"failures": map[string]any{
						"filter": map[string]any{
							"bool": map[string]any{
								"must_not": []map[string]any{
									{
										"range": map[string]any{
											"http_code": map[string]any{
												"gte": 200,
												"lt":  300,
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
		"size": 0,
	}

	queryJSON, err := json.Marshal(aggQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aggregation query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{auditIndex},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, s.client.GetClient())
	if err != nil {
		return nil, fmt.Errorf("aggregation search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("opensearch aggregation error: %s", res.String())
	}

	var result map[string]any
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation results: %w", err)
	}

	return result, nil
}

func (s *Store) search(ctx context.Context, query map[string]any) ([]culqi.Log, error) {
	if !s.client.IsEnabled() {
		return nil, fmt.Errorf("indexing is disabled")
	}

	searchQuery := map[string]any{
		"query": query,
		"sort": []map[string]any{
			{"start_date_utc": map[string]string{"order": "desc"}},
		},
		"size": 100,
	}

	queryJSON, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{auditIndex},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, s.client.GetClient())
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("opensearch search error: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source culqi.Log `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	logs := make([]culqi.Log, len(searchResult.Hits.Hits))
	for i, hit := range searchResult.Hits.Hits {
		logs[i] = hit.Source
	}

	return logs, nil
}

var _ culqi.LogStore = (*Store)(nil)
