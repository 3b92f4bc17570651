// FILE: internal/dto/file_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileResponse struct {
	Id        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	Url       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type FileListResponse struct {
	Files []FileResponse `json:"files"`
}
