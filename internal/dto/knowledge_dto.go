// FILE: internal/dto/knowledge_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Knowledge Base DTOs ---

// AddKnowledgeEntryRequest is the non-file part of the multipart form. The
// sign itself arrives as an uploaded "file" part or as base64 video_data /
// image_data, same convention as the sign-to-speech route.
type AddKnowledgeEntryRequest struct {
	Translation     string `json:"translation" form:"translation" validate:"required"`
	VideoData       string `json:"video_data" form:"video_data"`
	ImageData       string `json:"image_data" form:"image_data"`
	SignDescription string `json:"sign_description" form:"sign_description"`
	Gloss           string `json:"gloss" form:"gloss"`
	Category        string `json:"category" form:"category"`
	Confidence      int    `json:"confidence" form:"confidence" validate:"omitempty,min=0,max=100"`
}

type AddKnowledgeEntryResponse struct {
	EntryId     uuid.UUID `json:"entry_id"`
	Translation string    `json:"translation"`
}

type KnowledgeEntryResponse struct {
	Id              uuid.UUID `json:"id"`
	Translation     string    `json:"translation"`
	Gloss           string    `json:"gloss,omitempty"`
	SignDescription string    `json:"sign_description,omitempty"`
	Category        string    `json:"category,omitempty"`
	Confidence      int       `json:"confidence"`
	UsageCount      int       `json:"usage_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type KnowledgeEntryListResponse struct {
	Entries []KnowledgeEntryResponse `json:"entries"`
	Total   int                      `json:"total"`
}

// BulkImportEntry is one row of a pre-hashed import payload. Hashes are
// hex-encoded sha256, produced by the client or the kbimport tool.
type BulkImportEntry struct {
	Translation     string `json:"translation" validate:"required"`
	Gloss           string `json:"gloss"`
	SignDescription string `json:"sign_description"`
	Category        string `json:"category"`
	VideoHash       string `json:"video_hash" validate:"omitempty,len=64,hexadecimal"`
	ImageHash       string `json:"image_hash" validate:"omitempty,len=64,hexadecimal"`
	Confidence      int    `json:"confidence" validate:"omitempty,min=0,max=100"`
}

type BulkImportRequest struct {
	Entries []BulkImportEntry `json:"entries" validate:"required,min=1,dive"`
}

type BulkImportResponse struct {
	Count int `json:"count"`
}

// PublishEmbedKnowledgeMessage is the internal queue payload that asks the
// embedding worker to (re)index one entry.
type PublishEmbedKnowledgeMessage struct {
	EntryId uuid.UUID `json:"entry_id"`
}

// --- Semantic search DTOs ---

type KnowledgeSearchResult struct {
	Entry      KnowledgeEntryResponse `json:"entry"`
	Similarity float64                `json:"similarity"`
}

type KnowledgeSearchResponse struct {
	Results []KnowledgeSearchResult `json:"results"`
	Query   string                  `json:"query"`
}
