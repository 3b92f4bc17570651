// FILE: internal/service/file_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const maxUploadBytes = 50 * 1024 * 1024

type IFileService interface {
	Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.FileResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.FileListResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	// SaveBytes persists an in-flight translation payload so history
	// records can reference it. Returns the stored file row.
	SaveBytes(ctx context.Context, userId uuid.UUID, fileType entity.FileType, fileName, mimeType string, data []byte) (*entity.UserFile, error)
}

type fileService struct {
	uowFactory unitofwork.RepositoryFactory
	uploadDir  string
	baseURL    string
}

func NewFileService(uowFactory unitofwork.RepositoryFactory, uploadDir, baseURL string) IFileService {
	return &fileService{
		uowFactory: uowFactory,
		uploadDir:  uploadDir,
		baseURL:    baseURL,
	}
}

// fileTypeFor classifies an upload by MIME first, extension second.
func fileTypeFor(mimeType, fileName string) (entity.FileType, error) {
	switch {
	case strings.HasPrefix(mimeType, "audio/"):
		return entity.FileTypeAudio, nil
	case strings.HasPrefix(mimeType, "video/"):
		return entity.FileTypeVideo, nil
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".mp3", ".wav", ".webm", ".m4a", ".ogg", ".flac", ".aac":
		return entity.FileTypeAudio, nil
	case ".mp4", ".mov", ".avi", ".mkv":
		return entity.FileTypeVideo, nil
	}
	return "", fmt.Errorf("unsupported file type: %s", fileName)
}

func (s *fileService) Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.FileResponse, error) {
	if file.Size > maxUploadBytes {
		return nil, errors.New("file too large (max 50MB)")
	}

	mimeType := file.Header.Get("Content-Type")
	fileType, err := fileTypeFor(mimeType, file.Filename)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	stored, err := s.SaveBytes(ctx, userId, fileType, file.Filename, mimeType, data)
	if err != nil {
		return nil, err
	}

	res := s.toFileResponse(stored)
	return &res, nil
}

func (s *fileService) SaveBytes(ctx context.Context, userId uuid.UUID, fileType entity.FileType, fileName, mimeType string, data []byte) (*entity.UserFile, error) {
	dir := filepath.Join(s.uploadDir, string(fileType))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = defaultExtension(mimeType)
	}
	storedName := fmt.Sprintf("%s_%d%s", userId.String(), time.Now().UnixNano(), ext)
	dstPath := filepath.Join(dir, storedName)

	if err := os.WriteFile(dstPath, data, 0644); err != nil {
		return nil, err
	}

	stored := &entity.UserFile{
		Id:        uuid.New(),
		UserId:    userId,
		FileType:  fileType,
		FileName:  fileName,
		FilePath:  dstPath,
		FileSize:  int64(len(data)),
		MimeType:  mimeType,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FileRepository().Create(ctx, stored); err != nil {
		// Keep disk and database consistent on failure.
		_ = os.Remove(dstPath)
		return nil, err
	}

	return stored, nil
}

func defaultExtension(mimeType string) string {
	switch mimeType {
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav":
		return ".wav"
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	}
	// MediaRecorder uploads arrive as webm for both audio and video.
	return ".webm"
}

func (s *fileService) List(ctx context.Context, userId uuid.UUID) (*dto.FileListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.FileRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.FileListResponse{Files: make([]dto.FileResponse, 0, len(files))}
	for _, f := range files {
		res.Files = append(res.Files, s.toFileResponse(f))
	}
	return res, nil
}

func (s *fileService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if file == nil {
		return errors.New("file not found")
	}

	if err := uow.FileRepository().Delete(ctx, file.Id); err != nil {
		return err
	}

	if err := os.Remove(file.FilePath); err != nil && !os.IsNotExist(err) {
		fmt.Printf("[WARN] Failed to remove file from disk %s: %v\n", file.FilePath, err)
	}
	return nil
}

func (s *fileService) toFileResponse(f *entity.UserFile) dto.FileResponse {
	rel := filepath.ToSlash(f.FilePath)
	rel = strings.TrimPrefix(rel, "./")
	return dto.FileResponse{
		Id:        f.Id,
		FileName:  f.FileName,
		FileType:  string(f.FileType),
		FileSize:  f.FileSize,
		MimeType:  f.MimeType,
		Url:       fmt.Sprintf("%s/%s", s.baseURL, rel),
		CreatedAt: f.CreatedAt,
	}
}
