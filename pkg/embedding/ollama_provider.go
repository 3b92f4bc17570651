package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// OllamaProvider generates embeddings against a local Ollama instance.
// The default model is nomic-embed-text (768 dimensions, same as the
// knowledge_embeddings column).
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaProvider(baseURL string, model string) EmbeddingProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate embeds text. taskType is accepted for interface parity but
// Ollama models have no document/query distinction.
func (p *OllamaProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"model":  p.model,
		"prompt": text,
	})
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Post(p.baseURL+"/api/embeddings", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embedding error: %s", string(body))
	}

	var parsed struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	// pgvector's cosine distance assumes unit vectors; Ollama does not
	// normalize its output, so do it here.
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: unitVector(parsed.Embedding),
		},
	}, nil
}

func unitVector(vec []float64) []float32 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	magnitude := math.Sqrt(sum)

	out := make([]float32, len(vec))
	if magnitude == 0 {
		for i, v := range vec {
			out[i] = float32(v)
		}
		return out
	}
	for i, v := range vec {
		out[i] = float32(v / magnitude)
	}
	return out
}
