// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"estate-match-backend/internal/common/database"
	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"
)

// SearchIndex mirrors the catalog snapshot into Elasticsearch for
// free-text lookups over title, city, area and description. The in-memory
// repository stays the source of truth; the index is rebuilt on every
// refresh.
type SearchIndex struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewSearchIndex(es *database.ElasticsearchClient, index string, log logger.Logger) *SearchIndex {
	return &SearchIndex{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-search"}),
	}
}

// Reindex bulk-writes the snapshot, replacing documents by property id.
func (s *SearchIndex) Reindex(ctx context.Context, properties []models.Property) error {
	var buf bytes.Buffer
	for _, p := range properties {
		meta := fmt.Sprintf(`{"index":{"_index":%q,"_id":%q}}`, s.index, p.ID)
		buf.WriteString(meta)
		buf.WriteByte('\n')

		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal property %s: %w", p.ID, err)
		}
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	if buf.Len() == 0 {
		return nil
	}

	res, err := s.es.Client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.es.Client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk index error: %s", res.Status())
	}

	s.logger.Debug("catalog reindexed", map[string]interface{}{
		"index":      s.index,
		"properties": len(properties),
	})
	return nil
}

// Search runs a multi-field match query and returns the stored documents
// in relevance order.
func (s *SearchIndex) Search(ctx context.Context, query string, limit int) ([]models.Property, error) {
	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^2", "city", "area", "description"},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, commonerrors.NewSearchQueryFailedError(err)
	}

	res, err := s.es.Client.Search(
		s.es.Client.Search.WithContext(ctx),
		s.es.Client.Search.WithIndex(s.index),
		s.es.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, commonerrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, commonerrors.NewSearchQueryFailedError(fmt.Errorf("search error: %s", res.Status()))
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source models.Property `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, commonerrors.NewSearchQueryFailedError(err)
	}

	properties := make([]models.Property, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		properties = append(properties, hit.Source)
	}
	return properties, nil
}
