// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"rfp-dashboard/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// knowledgeBaseMapping indexes title and content for full-text search and
// keeps category filterable.
const knowledgeBaseMapping = `{
  "mappings": {
    "properties": {
      "id":       {"type": "keyword"},
      "title":    {"type": "text"},
      "content":  {"type": "text"},
      "category": {"type": "keyword"},
      "fileUrl":  {"type": "keyword", "index": false}
    }
  }
}`

// Elasticsearch is the optional knowledge base search cluster.
type Elasticsearch struct {
	Client *elasticsearch.Client
	Index  string
}

// OpenElasticsearch connects, pings and makes sure the knowledge base index
// exists with its mapping.
func OpenElasticsearch(ctx context.Context, cfg config.ElasticsearchConfig) (*Elasticsearch, error) {
	esCfg := elasticsearch.Config{Addresses: cfg.Addresses}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	es := &Elasticsearch{Client: client, Index: cfg.Index}
	if err := es.Ping(ctx); err != nil {
		return nil, err
	}
	if err := es.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return es, nil
}

func (e *Elasticsearch) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	res, err := e.Client.Ping(e.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// EnsureIndex creates the index when HEAD reports it missing.
func (e *Elasticsearch) EnsureIndex(ctx context.Context) error {
	res, err := e.Client.Indices.Exists([]string{e.Index}, e.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", e.Index, err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index %s: %s", e.Index, res.Status())
	}

	res, err = e.Client.Indices.Create(e.Index,
		e.Client.Indices.Create.WithContext(ctx),
		e.Client.Indices.Create.WithBody(strings.NewReader(knowledgeBaseMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", e.Index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", e.Index, res.Status())
	}
	return nil
}
