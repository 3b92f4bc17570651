//go:build ignore

package main

import (
	"fmt"
	"log"
	"math"

	"github.com/Tarunsai01/ARIA/internal/config"
	"github.com/Tarunsai01/ARIA/pkg/embedding"
	"github.com/Tarunsai01/ARIA/pkg/embedding/jina"
)

// CosineSimilarity calculates similarity between two vectors
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func main() {
	cfg := config.Load()

	// 1. Initialize Providers
	fmt.Println("--- Initializing Providers ---")
	providers := map[string]embedding.EmbeddingProvider{
		"GEMINI": embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.EmbeddingModel),
		"NOMIC":  embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel),
	}
	if cfg.Ai.JinaAPIKey != "" {
		providers["JINA"] = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
	}

	// 2. Define Test Cases - knowledge-base documents as the embed worker
	// would compose them, plus one unrelated control.
	text1 := "Translation: Good morning\nGloss: GOOD MORNING\nCategory: greetings" // Original
	text2 := "Translation: Hello, nice to see you\nGloss: HELLO\nCategory: greetings"
	text3 := "Translation: The car needs fuel\nGloss: CAR FUEL NEED\nCategory: errands"

	fmt.Println("\n--- Generating Embeddings ---")

	for name, p := range providers {
		fmt.Printf("\n[%s] Generating...\n", name)

		v1, err := p.Generate(text1, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("Error %s (Text 1): %v", name, err)
			continue
		}
		v2, err := p.Generate(text2, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("Error %s (Text 2): %v", name, err)
			continue
		}
		v3, err := p.Generate(text3, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("Error %s (Text 3): %v", name, err)
			continue
		}

		fmt.Printf("[%s] Dimensions: %d\n", name, len(v1.Embedding.Values))
		fmt.Printf("Similarity (greeting vs greeting - Similar): %.4f\n",
			CosineSimilarity(v1.Embedding.Values, v2.Embedding.Values))
		fmt.Printf("Similarity (greeting vs errand - Different): %.4f\n",
			CosineSimilarity(v1.Embedding.Values, v3.Embedding.Values))
	}

	fmt.Println("\n--- Conclusion ---")
	fmt.Println("A usable provider scores the two greetings well above the errand pair.")
}
