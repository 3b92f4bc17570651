package service

import (
	"testing"

	"github.com/Tarunsai01/ARIA/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFileTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		fileName string
		want     entity.FileType
		wantErr  bool
	}{
		{"audio mime wins", "audio/webm", "chunk.bin", entity.FileTypeAudio, false},
		{"video mime wins", "video/mp4", "clip.bin", entity.FileTypeVideo, false},
		{"mp3 extension", "", "recording.mp3", entity.FileTypeAudio, false},
		{"uppercase extension", "", "RECORDING.WAV", entity.FileTypeAudio, false},
		{"mov extension", "application/octet-stream", "clip.mov", entity.FileTypeVideo, false},
		{"webm extension is audio by default", "", "chunk.webm", entity.FileTypeAudio, false},
		{"unknown", "application/pdf", "doc.pdf", "", true},
		{"no hints at all", "", "payload", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileTypeFor(tt.mimeType, tt.fileName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultExtension(t *testing.T) {
	assert.Equal(t, ".mp3", defaultExtension("audio/mpeg"))
	assert.Equal(t, ".mp4", defaultExtension("video/mp4"))
	assert.Equal(t, ".mov", defaultExtension("video/quicktime"))
	assert.Equal(t, ".webm", defaultExtension("audio/webm"))
	assert.Equal(t, ".webm", defaultExtension(""))
}
