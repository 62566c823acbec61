package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techplug_back_end/internal/config"
	"techplug_back_end/internal/models"
	"techplug_back_end/internal/seed"
	"techplug_back_end/internal/storefront"
)

type esRequest struct {
	method string
	path   string
	body   string
}

func newElastic(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*elasticsearch.Client, *[]esRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []esRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, esRequest{r.Method, r.URL.Path, string(body)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client, &seen
}

func TestSearchIndex_IndexAndDelete(t *testing.T) {
	client, seen := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	idx := NewSearchIndex(client, "products", zap.NewNop())
	t.Cleanup(idx.Close)
	ctx := context.Background()

	p := seed.Products()[0]
	require.NoError(t, idx.Index(ctx, p))
	require.NoError(t, idx.Delete(ctx, "gone"))

	require.Len(t, *seen, 2)
	assert.Equal(t, "/products/_doc/p1", (*seen)[0].path)
	assert.Contains(t, (*seen)[0].body, `"name":"Kingston 8GB DDR4 2666MHz"`)
	assert.Equal(t, http.MethodDelete, (*seen)[1].method)
	assert.Equal(t, "/products/_doc/gone", (*seen)[1].path)
}

func TestSearchIndex_ObserveAppliesEventsInOrder(t *testing.T) {
	client, seen := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			// A slow first write must not let the later delete overtake it.
			time.Sleep(10 * time.Millisecond)
		}
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})
	idx := NewSearchIndex(client, "products", zap.NewNop())

	p := seed.Products()[0]
	updated := p.Clone()
	updated.Stock = 1
	idx.Observe(storefront.Event{Topic: storefront.TopicProducts, Action: storefront.ActionCreated, ID: p.ID, Product: &p})
	idx.Observe(storefront.Event{Topic: storefront.TopicCart, Action: storefront.ActionCreated, ID: p.ID})
	idx.Observe(storefront.Event{Topic: storefront.TopicProducts, Action: storefront.ActionUpdated, ID: p.ID, Product: &updated})
	idx.Observe(storefront.Event{Topic: storefront.TopicProducts, Action: storefront.ActionDeleted, ID: p.ID})
	idx.Close()

	idx.Observe(storefront.Event{Topic: storefront.TopicProducts, Action: storefront.ActionDeleted, ID: "late"})

	require.Len(t, *seen, 3)
	assert.Equal(t, http.MethodPut, (*seen)[0].method)
	assert.Equal(t, http.MethodPut, (*seen)[1].method)
	assert.Contains(t, (*seen)[1].body, `"stock":1`)
	assert.Equal(t, http.MethodDelete, (*seen)[2].method)
	assert.Equal(t, "/products/_doc/p1", (*seen)[2].path)
}

func TestSearchIndex_Search(t *testing.T) {
	client, seen := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"p3","_source":{"id":"p3"}},
			{"_id":"p6","_source":{}}
		]}}`))
	})
	idx := NewSearchIndex(client, "products", zap.NewNop())
	t.Cleanup(idx.Close)

	ids, err := idx.Search(context.Background(), "thinkpad")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p6"}, ids)

	require.Len(t, *seen, 1)
	assert.Equal(t, "/products/_search", (*seen)[0].path)
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte((*seen)[0].body), &q))
	assert.Equal(t, "thinkpad", q["query"].(map[string]any)["multi_match"].(map[string]any)["query"])
}

func TestSearchIndex_SearchError(t *testing.T) {
	client, _ := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})
	_, err := NewSearchIndex(client, "products", zap.NewNop()).Search(context.Background(), "x")
	assert.Error(t, err)
}

func TestMatchProducts(t *testing.T) {
	products := seed.Products()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}},
		{"thinkpad", []string{"p6"}},
		{"LAPTOPS", []string{"p1", "p3", "p5", "p6"}},
		{"kingston", []string{"p1"}},
		{"nothing-like-this", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := MatchProducts(products, tt.query)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestObjectNameAndURL(t *testing.T) {
	name := ObjectName("p1", "Photo.JPG")
	assert.True(t, strings.HasPrefix(name, "products/p1/"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotEqual(t, name, ObjectName("p1", "Photo.JPG"))

	s := NewImageStore(nil, "product-images", "https://cdn.techplug.co.za/")
	assert.Equal(t, "https://cdn.techplug.co.za/product-images/products/p1/a.png", s.URL("products/p1/a.png"))
}

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
	sent chan struct{}
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.msgs = append(f.msgs, msgs...)
	f.mu.Unlock()
	if f.sent != nil {
		f.sent <- struct{}{}
	}
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func placedOrder() models.Order {
	return models.Order{
		ID: "ORD-1000", CustomerName: "Thandi", Email: "thandi@example.com",
		Items: []models.CartItem{{
			Product:  models.Product{ID: "p1", Name: "RAM", Price: decimal.NewFromInt(450)},
			Quantity: 2,
		}},
		Total: decimal.NewFromInt(900), Status: models.OrderStatusPending,
		PaymentMethod: models.PaymentPayPal, Date: time.Unix(1, 0).UTC(),
	}
}

func TestOrderEventProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &OrderEventProducer{writer: w, logger: zap.NewNop()}

	require.NoError(t, p.PublishOrderCreated(context.Background(), placedOrder()))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "ORD-1000", string(w.msgs[0].Key))
	var event OrderCreatedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, EventOrderCreated, event.Type)
	assert.Equal(t, "ORD-1000", event.OrderID)
	assert.True(t, event.Total.Equal(decimal.NewFromInt(900)))
	require.Len(t, event.Items, 1)
	assert.Equal(t, 2, event.Items[0].Quantity)
	assert.NotEmpty(t, event.EventID)
}

func TestOrderEventProducer_PublishError(t *testing.T) {
	p := &OrderEventProducer{writer: &fakeWriter{err: errors.New("broker down")}, logger: zap.NewNop()}
	assert.Error(t, p.PublishOrderCreated(context.Background(), placedOrder()))
}

func TestOrderEventProducer_ObserveOnlyOrders(t *testing.T) {
	w := &fakeWriter{sent: make(chan struct{}, 1)}
	p := &OrderEventProducer{writer: w, logger: zap.NewNop()}

	p.Observe(storefront.Event{Topic: storefront.TopicCart, Action: storefront.ActionCleared})
	o := placedOrder()
	p.Observe(storefront.Event{Topic: storefront.TopicOrders, Action: storefront.ActionCreated, Order: &o})

	select {
	case <-w.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("order event not written")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Len(t, w.msgs, 1)
}

func TestNewOrderEventProducer_Disabled(t *testing.T) {
	assert.Nil(t, NewOrderEventProducer(nil, "order-events", zap.NewNop()))
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestTicketAnalyzer(t *testing.T) {
	ctx := context.Background()

	noKey := NewTicketAnalyzer(ctx, config.GeminiConfig{}, zap.NewNop())
	assert.Equal(t, AnalysisUnavailable, noKey.GenerateAnalysis(ctx, "blue screen", "Blue Screen Fix"))

	tests := []struct {
		name string
		gen  *stubGenerator
		want string
	}{
		{"text", &stubGenerator{text: "1. Faulty RAM"}, "1. Faulty RAM"},
		{"transport error", &stubGenerator{err: errors.New("503")}, AnalysisFailed},
		{"empty text", &stubGenerator{text: "  \n"}, AnalysisEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewTicketAnalyzerWith(tt.gen, zap.NewNop())
			assert.Equal(t, tt.want, a.GenerateAnalysis(ctx, "Laptop showing blue screen", "Blue Screen Fix"))
			assert.Contains(t, tt.gen.prompt, "Service Type: Blue Screen Fix")
			assert.Contains(t, tt.gen.prompt, `Description: "Laptop showing blue screen"`)
		})
	}
}
