package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultGeminiModel produces 768-dimension vectors, the width of the
// knowledge_embeddings column.
const defaultGeminiModel = "text-embedding-004"

// GeminiProvider generates embeddings through the Generative Language API.
type GeminiProvider struct {
	apiKey string
	model  string
	client *http.Client
}

// NewGeminiProvider builds a provider for the given model. An empty model
// selects text-embedding-004.
func NewGeminiProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *GeminiProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	body, err := json.Marshal(EmbeddingRequest{
		Model: p.model,
		Content: EmbeddingRequestContent{
			Parts: []EmbeddingRequestContentPart{{Text: text}},
		},
		TaskType: taskType,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("https://generativelanguage.googleapis.com/v1/models/%s:embedContent", p.model)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(resBody))
	}

	var parsed EmbeddingResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return nil, err
	}

	return &parsed, nil
}
