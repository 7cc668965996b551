package opensearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/andeslabs/culqi-gateway/infra/config"
	"github.com/andeslabs/culqi-gateway/infra/logger"
)

// auditIndex holds the gateway audit records.
const auditIndex = "culqi-audit-logs"

// Client wraps the OpenSearch client
type Client struct {
	client *opensearch.Client
	config *config.AppConfig
}

// NewClient creates a new OpenSearch client
func NewClient(cfg *config.AppConfig) (*Client, error) {
	opensearchConfig := opensearch.Config{
		Addresses:     []string{cfg.OpenSearchURL},
		Transport:     http.DefaultTransport,
		MaxRetries:    3,
		RetryOnStatus: []int{502, 503, 504, 429},
		RetryBackoff: func(i int) time.Duration {
			return time.Duration(i) * 100 * time.Millisecond
		},
	}

	if cfg.OpenSearchUser != "" && cfg.OpenSearchPass != "" {
		opensearchConfig.Username = cfg.OpenSearchUser
		opensearchConfig.Password = cfg.OpenSearchPass
	}

	client, err := opensearch.NewClient(opensearchConfig)
	if err != nil {
		return nil, err
	}

	osClient := &Client{
		client: client,
		config: cfg,
	}

	if err := osClient.setupIndex(context.Background()); err != nil {
		logger.Warn("opensearch: audit index setup failed", logger.LogContext{
			Fields: map[string]any{"error": err.Error()},
		})
	}

	return osClient, nil
}

// GetClient returns the underlying OpenSearch client
func (c *Client) GetClient() *opensearch.Client {
	return c.client
}

// setupIndex creates the audit index if it does not exist yet.
func (c *Client) setupIndex(ctx context.Context) error {
	exists, err := c.indexExists(ctx, auditIndex)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.createAuditIndex(ctx)
}

// indexExists checks if an index exists
func (c *Client) indexExists(ctx context.Context, indexName string) (bool, error) {
	req := opensearchapi.IndicesExistsRequest{
		Index: []string{indexName},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	return res.StatusCode == 200, nil
}

// createAuditIndex creates the audit index with a mapping matching the
// audit record shape.
func (c *Client) createAuditIndex(ctx context.Context) error {
	mapping := `{
		"mappings": {
			"properties": {
				"id": {
					"type": "keyword"
				},
				"tracking_id": {
					"type": "keyword"
				},
				"culqi_version": {
					"type": "keyword"
				},
				"operation": {
					"type": "keyword"
				},
				"url": {
					"type": "keyword"
				},
				"http_code": {
					"type": "integer"
				},
				"start_date_utc": {
					"type": "date",
					"format": "strict_date_optional_time||epoch_millis"
				},
				"end_date_utc": {
					"type": "date",
					"format": "strict_date_optional_time||epoch_millis"
				},
				"request": {
					"type": "object",
					"enabled": false
				},
				"response": {
					"type": "object",
					"enabled": false
				}
			}
		},
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		}
	}`

	req := opensearchapi.IndicesCreateRequest{
		Index: auditIndex,
		Body:  strings.NewReader(mapping),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index creation error: %s", res.String())
	}

	return nil
}

// IsEnabled returns whether OpenSearch indexing is enabled
func (c *Client) IsEnabled() bool {
	return c.config.EnableIndexing
}
