package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"techplug_back_end/internal/models"
	"techplug_back_end/internal/storefront"
)

const indexQueueSize = 256

// SearchIndex mirrors the catalog into Elasticsearch. Product events are
// applied one at a time, in the order they were published.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan storefront.Event
	done   chan struct{}
}

// NewSearchIndex starts the worker that applies product events. Close stops it.
func NewSearchIndex(client *elasticsearch.Client, index string, logger *zap.Logger) *SearchIndex {
	s := &SearchIndex{
		client: client,
		index:  index,
		logger: logger,
		queue:  make(chan storefront.Event, indexQueueSize),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Observe is a storefront.Observer keeping the index in step with product events.
func (s *SearchIndex) Observe(e storefront.Event) {
	if e.Topic != storefront.TopicProducts {
		return
	}
	if e.Product != nil {
		product := e.Product.Clone()
		e.Product = &product
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	s.queue <- e
}

// Close applies the events already queued and stops the worker.
func (s *SearchIndex) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()
	<-s.done
}

func (s *SearchIndex) run() {
	defer close(s.done)
	for e := range s.queue {
		s.apply(e)
	}
}

func (s *SearchIndex) apply(e storefront.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	switch e.Action {
	case storefront.ActionCreated, storefront.ActionUpdated:
		if e.Product != nil {
			err = s.Index(ctx, *e.Product)
		}
	case storefront.ActionDeleted:
		err = s.Delete(ctx, e.ID)
	}
	if err != nil {
		s.logger.Warn("search index sync failed", zap.String("product_id", e.ID), zap.Error(err))
	}
}

// Sync indexes every product, used once at startup.
func (s *SearchIndex) Sync(ctx context.Context, products []models.Product) error {
	var errs []error
	for _, p := range products {
		errs = append(errs, s.Index(ctx, p))
	}
	return errors.Join(errs...)
}

func (s *SearchIndex) Index(ctx context.Context, p models.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("index product %s: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.Status())
	}
	return nil
}

func (s *SearchIndex) Delete(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: s.index, DocumentID: id, Refresh: "true"}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete product %s: %s", id, res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				ID string `json:"id"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search returns the ids of matching products, best match first.
func (s *SearchIndex) Search(ctx context.Context, query string) ([]string, error) {
	var buf bytes.Buffer
	q := map[string]any{
		"size": 50,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "brand^2", "category", "type", "description", "specs.cpu", "specs.ram", "specs.storage"},
				"fuzziness": "AUTO",
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{Index: []string{s.index}, Body: &buf}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search %q: %s", query, res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]string, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id := hit.Source.ID
		if id == "" {
			id = hit.ID
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// MatchProducts is the in-memory search used when no index is available: a
// case-insensitive substring match on name, brand, category, type and description.
func MatchProducts(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Product{}
	for _, p := range products {
		if q == "" || containsAny(q, p.Name, string(p.Brand), p.Category, string(p.Type), p.Description) {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
