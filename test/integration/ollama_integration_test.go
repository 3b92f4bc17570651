// FILE: test/integration/ollama_integration_test.go
// PURPOSE: Verifies the local Ollama embedding path end to end.
// NOTE: Needs a running Ollama with the embedding model pulled:
//       ollama pull nomic-embed-text

package integration

import (
	"context"
	"math"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/Tarunsai01/ARIA/pkg/embedding"

	"github.com/joho/godotenv"
)

func ollamaBaseURL() string {
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:11434"
}

func requireOllama(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ollamaBaseURL(), nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Skipf("Skipping: Ollama not running at %s: %v", ollamaBaseURL(), err)
	}
	res.Body.Close()
}

func TestOllamaEmbeddingGenerate(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("No .env file found, using system env")
	}
	requireOllama(t)

	provider := embedding.NewOllamaProvider(ollamaBaseURL(), os.Getenv("OLLAMA_EMBEDDING_MODEL"))

	res, err := provider.Generate("Translation: Good morning\nGloss: GOOD MORNING", "RETRIEVAL_DOCUMENT")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	values := res.Embedding.Values
	if len(values) == 0 {
		t.Fatal("embedding is empty")
	}
	t.Logf("✅ Got %d-dimensional embedding", len(values))

	// pgvector cosine search assumes unit vectors; the provider must
	// normalize whatever the model returns.
	var magnitude float64
	for _, v := range values {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if math.Abs(magnitude-1.0) > 0.001 {
		t.Errorf("embedding not normalized: |v| = %f", magnitude)
	}
}

func TestOllamaEmbeddingSimilarityOrdering(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("No .env file found, using system env")
	}
	requireOllama(t)

	provider := embedding.NewOllamaProvider(ollamaBaseURL(), os.Getenv("OLLAMA_EMBEDDING_MODEL"))

	query, err := provider.Generate("greeting in the morning", "RETRIEVAL_QUERY")
	if err != nil {
		t.Fatalf("Generate query failed: %v", err)
	}

	docs := []struct {
		name string
		text string
	}{
		{"related", "Translation: Good morning\nGloss: GOOD MORNING\nCategory: greetings"},
		{"unrelated", "Translation: The car needs fuel\nGloss: CAR FUEL NEED"},
	}

	scores := make(map[string]float64, len(docs))
	for _, doc := range docs {
		res, err := provider.Generate(doc.text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			t.Fatalf("Generate doc failed: %v", err)
		}
		scores[doc.name] = cosine(query.Embedding.Values, res.Embedding.Values)
		t.Logf("similarity(%s) = %.4f", doc.name, scores[doc.name])
	}

	if scores["related"] <= scores["unrelated"] {
		t.Errorf("⚠️ expected the greeting doc to score higher: related=%.4f unrelated=%.4f",
			scores["related"], scores["unrelated"])
	}
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	// Vectors are already normalized, so the dot product is the cosine.
	return dot
}
