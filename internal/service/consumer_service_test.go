package service

import (
	"testing"

	"github.com/Tarunsai01/ARIA/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingDocument(t *testing.T) {
	gloss := "GOOD MORNING"
	desc := "Open palm from chin moving outward"
	category := "greetings"

	t.Run("all fields", func(t *testing.T) {
		entry := &entity.KnowledgeBaseEntry{
			Translation:     "Good morning",
			Gloss:           &gloss,
			SignDescription: &desc,
			Category:        &category,
		}
		doc := embeddingDocument(entry)
		assert.Equal(t,
			"Translation: Good morning\nGloss: GOOD MORNING\nSign description: Open palm from chin moving outward\nCategory: greetings",
			doc)
	})

	t.Run("translation only", func(t *testing.T) {
		entry := &entity.KnowledgeBaseEntry{Translation: "Good morning"}
		assert.Equal(t, "Translation: Good morning", embeddingDocument(entry))
	})

	t.Run("empty optionals skipped", func(t *testing.T) {
		empty := ""
		entry := &entity.KnowledgeBaseEntry{
			Translation: "Good morning",
			Gloss:       &empty,
			Category:    &category,
		}
		assert.Equal(t, "Translation: Good morning\nCategory: greetings", embeddingDocument(entry))
	})
}
