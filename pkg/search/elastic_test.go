package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			io.WriteString(w, `{"version":{"number":"8.19.0"}}`)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestSearchDecodesHits(t *testing.T) {
	var gotBody map[string]any
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/products/_search") {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_id":"p1","_source":{"name":"Zinger Burger"}}]}}`)
	})

	res, err := c.Search(context.Background(), "products", map[string]any{
		"query": map[string]any{"match": map[string]any{"name": "zinger"}},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Hits.Total.Value != 1 || len(res.Hits.Hits) != 1 || res.Hits.Hits[0].ID != "p1" {
		t.Fatalf("unexpected result %+v", res.Hits)
	}
	if _, ok := gotBody["query"]; !ok {
		t.Errorf("query body not sent: %v", gotBody)
	}
}

func TestDeleteIgnoresMissingDocument(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"result":"not_found"}`)
	})
	if err := c.Delete(context.Background(), "products", "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestIndexReportsServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"boom"}`)
	})
	if err := c.Index(context.Background(), "products", "p1", map[string]string{"name": "x"}); err == nil {
		t.Fatal("expected error on 500")
	}
}
