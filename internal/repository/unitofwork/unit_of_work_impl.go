package unitofwork

import (
	"context"
	"fmt"

	"github.com/Tarunsai01/ARIA/internal/repository/contract"
	"github.com/Tarunsai01/ARIA/internal/repository/implementation"

	"gorm.io/gorm"
)

// UnitOfWorkImpl hands out repositories bound to either the shared
// pool or, between Begin and Commit/Rollback, one shared transaction.
type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Accessors construct on demand; repositories are stateless wrappers
// around whichever handle getDB returns.

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CredentialRepository() contract.CredentialRepository {
	return implementation.NewCredentialRepository(u.getDB())
}

func (u *UnitOfWorkImpl) KnowledgeRepository() contract.KnowledgeRepository {
	return implementation.NewKnowledgeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository {
	return implementation.NewKnowledgeEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) HistoryRepository() contract.HistoryRepository {
	return implementation.NewHistoryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FileRepository() contract.FileRepository {
	return implementation.NewFileRepository(u.getDB())
}
