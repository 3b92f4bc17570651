// FILE: internal/entity/knowledge_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeBaseEntry is a user-curated sign translation, matched by the
// content hash of the submitted media. VideoHash and ImageHash are
// separate columns so the two media kinds never collide in one hash
// space.
type KnowledgeBaseEntry struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	SignDescription *string
	VideoHash       *string
	ImageHash       *string
	Translation     string
	Gloss           *string
	Category        *string
	Confidence      int
	UsageCount      int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}

// KnowledgeEmbedding carries the vector for semantic search over a
// user's knowledge base, one embedding per entry.
type KnowledgeEmbedding struct {
	Id             uuid.UUID
	EntryId        uuid.UUID
	UserId         uuid.UUID
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// KnowledgeSearchResult pairs an entry with its semantic distance to
// the query embedding. Lower distance is a closer match.
type KnowledgeSearchResult struct {
	Entry    *KnowledgeBaseEntry
	Distance float64
}
