// FILE: internal/service/history_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IHistoryService interface {
	List(ctx context.Context, userId uuid.UUID, operationType string, limit, offset int) (*dto.HistoryListResponse, error)
	Recent(ctx context.Context, userId uuid.UUID, days int) (*dto.HistoryListResponse, error)
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.HistoryEntryResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory) IHistoryService {
	return &historyService{uowFactory: uowFactory}
}

func (s *historyService) List(ctx context.Context, userId uuid.UUID, operationType string, limit, offset int) (*dto.HistoryListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	countSpecs := specs
	if operationType != "" {
		specs = append(specs, specification.ByOperationType{OperationType: operationType})
		countSpecs = specs
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.HistoryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.HistoryRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	return buildHistoryList(records, int(total)), nil
}

func (s *historyService) Recent(ctx context.Context, userId uuid.UUID, days int) (*dto.HistoryListResponse, error) {
	if days <= 0 || days > 90 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.HistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedSince{Since: since},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	return buildHistoryList(records, len(records)), nil
}

func (s *historyService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.HistoryEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.HistoryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("history entry not found")
	}

	res := toHistoryResponse(record)
	return &res, nil
}

func (s *historyService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.HistoryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if record == nil {
		return errors.New("history entry not found")
	}
	return uow.HistoryRepository().Delete(ctx, record.Id)
}

func buildHistoryList(records []*entity.TranslationHistory, total int) *dto.HistoryListResponse {
	res := &dto.HistoryListResponse{
		History: make([]dto.HistoryEntryResponse, 0, len(records)),
		Total:   total,
	}
	for _, r := range records {
		res.History = append(res.History, toHistoryResponse(r))
	}
	return res
}

func toHistoryResponse(r *entity.TranslationHistory) dto.HistoryEntryResponse {
	res := dto.HistoryEntryResponse{
		Id:               r.Id,
		OperationType:    string(r.OperationType),
		OutputGloss:      r.OutputGloss,
		Provider:         r.Provider,
		Source:           r.Source,
		ProcessingTimeMs: r.ProcessingTimeMs,
		FileId:           r.FileId,
		CreatedAt:        r.CreatedAt,
	}
	if r.InputText != nil {
		res.InputText = *r.InputText
	}
	if r.OutputText != nil {
		res.OutputText = *r.OutputText
	}
	return res
}
