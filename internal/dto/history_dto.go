// FILE: internal/dto/history_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEntryResponse struct {
	Id               uuid.UUID  `json:"id"`
	OperationType    string     `json:"operation_type"`
	InputText        string     `json:"input_text,omitempty"`
	OutputText       string     `json:"output_text,omitempty"`
	OutputGloss      []string   `json:"output_gloss,omitempty"`
	Provider         string     `json:"provider"`
	Source           string     `json:"source"`
	ProcessingTimeMs int        `json:"processing_time_ms"`
	FileId           *uuid.UUID `json:"file_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type HistoryListResponse struct {
	History []HistoryEntryResponse `json:"history"`
	Total   int                    `json:"total"`
}
