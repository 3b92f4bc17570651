package unitofwork

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CredentialRepository() contract.CredentialRepository
	KnowledgeRepository() contract.KnowledgeRepository
	KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository
	HistoryRepository() contract.HistoryRepository
	FileRepository() contract.FileRepository
}
