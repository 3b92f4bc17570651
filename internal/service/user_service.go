package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"

	"github.com/Tarunsai01/ARIA/pkg/events"
	pktNats "github.com/Tarunsai01/ARIA/pkg/nats"

	"github.com/google/uuid"
)

// Avatars are stored on local disk and served by the /uploads static route.
const (
	avatarDir      = "./uploads/avatars"
	maxAvatarBytes = 2 << 20
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
	UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	profile := &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
	if user.AvatarURL != nil {
		profile.AvatarURL = *user.AvatarURL
	}
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	user.FullName = req.FullName
	return repo.Update(ctx, user)
}

// DeleteAccount soft-deletes the user and wipes their translation history
// in the same transaction.
func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.HistoryRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return err
	}
	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.New("USER_DELETED", map[string]interface{}{
			"user_id": userId,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_DELETED event: %v\n", err)
		}
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error) {
	if file.Size > maxAvatarBytes {
		return "", fmt.Errorf("file too large (max 2MB)")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(avatarDir, 0755); err != nil {
		return "", err
	}

	// The timestamp suffix gives every upload a distinct URL, so a
	// replaced avatar is never served from a stale cache entry.
	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", userId.String(), time.Now().Unix(), ext)
	dstPath := filepath.Join(avatarDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	publicURL := fmt.Sprintf("%s/uploads/avatars/%s", baseURL, filename)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateAvatar(ctx, userId, publicURL); err != nil {
		return "", err
	}
	return publicURL, nil
}
