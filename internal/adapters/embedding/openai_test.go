package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

func TestOpenAIAdapter_EmbedBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2}},
				{"object": "embedding", "index": 1, "embedding": []float32{0.3, 0.4}},
			},
			"model": "text-embedding-3-small",
		})
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(server.URL+"/v1", "text-embedding-3-small", "key")
	results, err := adapter.EmbedBatch(context.Background(), []string{"a", "b"}, ports.TaskDocument)

	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 2 || len(results[0]) != 2 {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestOpenAIAdapter_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float32{0.5}},
			},
		})
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(server.URL+"/v1", "", "key")
	emb, err := adapter.Embed(context.Background(), "hello", ports.TaskQuery)

	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(emb) != 1 {
		t.Errorf("expected 1 dim, got %d", len(emb))
	}
}
