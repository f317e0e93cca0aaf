// internal/services/rfp/rfp-management/search.go
package rfpmanagement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/models"
)

// ElasticIndex stores knowledge base entries in one Elasticsearch index.
type ElasticIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticIndex(client *elasticsearch.Client, index string) *ElasticIndex {
	return &ElasticIndex{client: client, index: index}
}

func (e *ElasticIndex) Index(ctx context.Context, entry *models.KnowledgeBaseEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal knowledge base entry: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: entry.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return errors.NewSearchQueryFailedError(e.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchQueryFailedError(e.index, fmt.Errorf("index failed: %s", res.String()))
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.KnowledgeBaseEntry `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a multi_match over title and content, boosting title matches.
func (e *ElasticIndex) Search(ctx context.Context, query string, size int) ([]models.KnowledgeBaseEntry, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "content", "category"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{e.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(e.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(e.index, fmt.Errorf("search failed: %s", res.String()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(e.index, err)
	}

	entries := make([]models.KnowledgeBaseEntry, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		entries = append(entries, hit.Source)
	}
	return entries, nil
}
