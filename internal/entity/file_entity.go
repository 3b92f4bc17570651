// FILE: internal/entity/file_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeAudio FileType = "audio"
	FileTypeVideo FileType = "video"
)

// UserFile is an uploaded media file kept on disk, referenced from
// history records so a translation can be replayed later.
type UserFile struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	FileType  FileType
	FileName  string
	FilePath  string
	FileSize  int64
	MimeType  string
	CreatedAt time.Time
}
