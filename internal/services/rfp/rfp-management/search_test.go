package rfpmanagement

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/models"
)

func newTestElasticIndex(t *testing.T, handler http.HandlerFunc) *ElasticIndex {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return NewElasticIndex(client, "knowledge-base")
}

func TestElasticIndex_Index(t *testing.T) {
	var gotPath string
	var gotDoc models.KnowledgeBaseEntry
	idx := newTestElasticIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotDoc)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"result":"created"}`)
	})

	err := idx.Index(context.Background(), &models.KnowledgeBaseEntry{ID: "kb-1", Title: "Rate card", Category: "pricing"})
	require.NoError(t, err)
	assert.Equal(t, "/knowledge-base/_doc/kb-1", gotPath)
	assert.Equal(t, "Rate card", gotDoc.Title)
}

func TestElasticIndex_Search(t *testing.T) {
	var query map[string]interface{}
	idx := newTestElasticIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/knowledge-base/_search", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &query)
		fmt.Fprint(w, `{"hits":{"hits":[
			{"_source":{"id":"kb-1","title":"Audience 2025","category":"audience_data"}},
			{"_source":{"id":"kb-2","title":"Video formats","category":"ad_formats"}}
		]}}`)
	})

	entries, err := idx.Search(context.Background(), "audience", 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "kb-1", entries[0].ID)
	assert.Equal(t, float64(5), query["size"])
}

func TestElasticIndex_SearchError(t *testing.T) {
	idx := newTestElasticIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"type":"parsing_exception"}}`)
	})

	_, err := idx.Search(context.Background(), "x", 5)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSearchQueryFailed))
}
