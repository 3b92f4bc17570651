// FILE: internal/service/credential_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/pkg/secretbox"
	"github.com/Tarunsai01/ARIA/internal/repository/memory"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"
	"github.com/Tarunsai01/ARIA/pkg/provider"

	"github.com/google/uuid"
)

type ICredentialService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveCredentialRequest) (*dto.CredentialResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.CredentialListResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, providerName string) error

	// GetDecryptedKey hands the plaintext key to the translation service.
	// It never crosses the HTTP boundary.
	GetDecryptedKey(ctx context.Context, userId uuid.UUID, providerName string) (string, error)
}

type credentialService struct {
	uowFactory unitofwork.RepositoryFactory
	sealer     *secretbox.Sealer
	cache      *memory.CredentialCache
}

func NewCredentialService(uowFactory unitofwork.RepositoryFactory, sealer *secretbox.Sealer, cache *memory.CredentialCache) ICredentialService {
	return &credentialService{
		uowFactory: uowFactory,
		sealer:     sealer,
		cache:      cache,
	}
}

// Save upserts the key for one provider. A user holds at most one key
// per provider; saving again replaces the old ciphertext.
func (s *credentialService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveCredentialRequest) (*dto.CredentialResponse, error) {
	sealed, err := s.sealer.Seal(req.ApiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt credential: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CredentialRepository()

	existing, err := repo.FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProvider{Provider: req.Provider},
	)
	if err != nil {
		return nil, err
	}

	var credential *entity.UserCredential
	if existing != nil {
		existing.EncryptedKey = sealed
		existing.IsActive = true
		existing.UpdatedAt = time.Now()
		if err := repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		credential = existing
	} else {
		credential = &entity.UserCredential{
			Id:           uuid.New(),
			UserId:       userId,
			Provider:     req.Provider,
			EncryptedKey: sealed,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := repo.Create(ctx, credential); err != nil {
			return nil, err
		}
	}

	// Refresh the hot cache so the next translation call skips the DB.
	s.cache.Save(userId, req.Provider, req.ApiKey)

	return &dto.CredentialResponse{
		Id:        credential.Id,
		Provider:  credential.Provider,
		IsActive:  credential.IsActive,
		CreatedAt: credential.CreatedAt,
	}, nil
}

func (s *credentialService) List(ctx context.Context, userId uuid.UUID) (*dto.CredentialListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	credentials, err := uow.CredentialRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.CredentialListResponse{Credentials: make([]dto.CredentialResponse, 0, len(credentials))}
	for _, c := range credentials {
		res.Credentials = append(res.Credentials, dto.CredentialResponse{
			Id:        c.Id,
			Provider:  c.Provider,
			IsActive:  c.IsActive,
			CreatedAt: c.CreatedAt,
		})
	}
	return res, nil
}

func (s *credentialService) Delete(ctx context.Context, userId uuid.UUID, providerName string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CredentialRepository()

	credential, err := repo.FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProvider{Provider: providerName},
	)
	if err != nil {
		return err
	}
	if credential == nil {
		return fmt.Errorf("no credential stored for provider %s", providerName)
	}

	if err := repo.Delete(ctx, credential.Id); err != nil {
		return err
	}

	s.cache.Delete(userId, providerName)
	return nil
}

func (s *credentialService) GetDecryptedKey(ctx context.Context, userId uuid.UUID, providerName string) (string, error) {
	if key, found := s.cache.Get(userId, providerName); found {
		return key, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	credential, err := uow.CredentialRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProvider{Provider: providerName},
	)
	if err != nil {
		return "", err
	}
	if credential == nil || !credential.IsActive {
		return "", fmt.Errorf("%w: %s", provider.ErrCredentialMissing, providerName)
	}

	key, err := s.sealer.Open(credential.EncryptedKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential for %s: %w", providerName, err)
	}

	s.cache.Save(userId, providerName, key)
	return key, nil
}
