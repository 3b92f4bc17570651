// FILE: internal/service/knowledge_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"
	"github.com/Tarunsai01/ARIA/pkg/embedding"
	"github.com/Tarunsai01/ARIA/pkg/events"
	pktNats "github.com/Tarunsai01/ARIA/pkg/nats"
	"github.com/Tarunsai01/ARIA/pkg/provider"
	"github.com/Tarunsai01/ARIA/pkg/translation"
	"github.com/Tarunsai01/ARIA/pkg/translation/knowledge"

	"github.com/google/uuid"
)

// MediaInput is one incoming media payload after the controller has
// normalized the multipart and base64 submission forms to raw bytes.
type MediaInput struct {
	Kind provider.Capability // CapabilityVideo or CapabilityImage
	Data []byte
	// MimeType and FileName are set for multipart uploads; base64
	// submissions leave them empty and backends sniff the type.
	MimeType string
	FileName string
}

// IKnowledgeService manages the user-curated sign cache. It also backs
// the resolver's first tier through the translation.KnowledgeStore
// interface.
type IKnowledgeService interface {
	translation.KnowledgeStore

	Add(ctx context.Context, userId uuid.UUID, req *dto.AddKnowledgeEntryRequest, media *MediaInput) (*dto.AddKnowledgeEntryResponse, error)
	List(ctx context.Context, userId uuid.UUID, category string) (*dto.KnowledgeEntryListResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, entryId uuid.UUID) error
	BulkImport(ctx context.Context, userId uuid.UUID, req *dto.BulkImportRequest) (*dto.BulkImportResponse, error)
	Search(ctx context.Context, userId uuid.UUID, query string, limit int) (*dto.KnowledgeSearchResponse, error)
}

type knowledgeService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

// Lookup is the resolver's exact-match tier: owner-scoped, active-only.
// A hit bumps the entry's usage counter; a miss is nil without error.
func (s *knowledgeService) Lookup(ctx context.Context, userID uuid.UUID, videoHash, imageHash string) (*translation.Hit, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userID},
		specification.ActiveEntries{},
	}
	switch {
	case videoHash != "":
		specs = append(specs, specification.ByVideoHash{Hash: videoHash})
	case imageHash != "":
		specs = append(specs, specification.ByImageHash{Hash: imageHash})
	default:
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.KnowledgeRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	if err := uow.KnowledgeRepository().IncrementUsage(ctx, entry.Id); err != nil {
		// The answer is still good; losing one usage tick is not.
		fmt.Printf("[WARN] Failed to increment usage for entry %s: %v\n", entry.Id, err)
	}

	gloss := ""
	if entry.Gloss != nil {
		gloss = *entry.Gloss
	}

	return &translation.Hit{
		Translation: entry.Translation,
		Gloss:       gloss,
		Confidence:  entry.Confidence,
	}, nil
}

func (s *knowledgeService) Add(ctx context.Context, userId uuid.UUID, req *dto.AddKnowledgeEntryRequest, media *MediaInput) (*dto.AddKnowledgeEntryResponse, error) {
	var videoHash, imageHash string
	switch {
	case media != nil && media.Kind == provider.CapabilityVideo:
		videoHash = knowledge.HashBytes(media.Data)
	case media != nil && media.Kind == provider.CapabilityImage:
		imageHash = knowledge.HashBytes(media.Data)
	case req.VideoData != "":
		videoHash = knowledge.ContentHash(req.VideoData)
	case req.ImageData != "":
		imageHash = knowledge.ContentHash(req.ImageData)
	default:
		return nil, errors.New("sign media is required (file upload or video_data/image_data)")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entryId, err := s.upsertEntry(ctx, uow, userId, upsertFields{
		Translation:     req.Translation,
		Gloss:           req.Gloss,
		SignDescription: req.SignDescription,
		Category:        req.Category,
		Confidence:      req.Confidence,
		VideoHash:       videoHash,
		ImageHash:       imageHash,
	})
	if err != nil {
		return nil, err
	}

	s.publishEmbed(ctx, entryId)

	return &dto.AddKnowledgeEntryResponse{
		EntryId:     entryId,
		Translation: req.Translation,
	}, nil
}

// upsertFields carries the writable columns of one entry through the
// upsert path shared by Add and BulkImport.
type upsertFields struct {
	Translation     string
	Gloss           string
	SignDescription string
	Category        string
	Confidence      int
	VideoHash       string
	ImageHash       string
}

// upsertEntry enforces the idempotency rule: same owner + same media
// kind + same hash overwrites the existing row, anything else inserts.
// A previously deactivated entry resurfaces on overwrite.
func (s *knowledgeService) upsertEntry(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, fields upsertFields) (uuid.UUID, error) {
	specs := []specification.Specification{specification.UserOwnedBy{UserID: userId}}
	switch {
	case fields.VideoHash != "":
		specs = append(specs, specification.ByVideoHash{Hash: fields.VideoHash})
	case fields.ImageHash != "":
		specs = append(specs, specification.ByImageHash{Hash: fields.ImageHash})
	default:
		return uuid.Nil, errors.New("entry needs a video_hash or image_hash")
	}

	repo := uow.KnowledgeRepository()
	existing, err := repo.FindOne(ctx, specs...)
	if err != nil {
		return uuid.Nil, err
	}

	confidence := fields.Confidence
	if confidence == 0 {
		confidence = 100
	}

	now := time.Now()
	if existing != nil {
		existing.Translation = fields.Translation
		existing.Gloss = optional(fields.Gloss)
		existing.SignDescription = optional(fields.SignDescription)
		existing.Category = optional(fields.Category)
		existing.Confidence = confidence
		existing.IsActive = true
		existing.UpdatedAt = &now
		if err := repo.Update(ctx, existing); err != nil {
			return uuid.Nil, err
		}
		return existing.Id, nil
	}

	entry := &entity.KnowledgeBaseEntry{
		Id:              uuid.New(),
		UserId:          userId,
		Translation:     fields.Translation,
		Gloss:           optional(fields.Gloss),
		SignDescription: optional(fields.SignDescription),
		Category:        optional(fields.Category),
		Confidence:      confidence,
		UsageCount:      0,
		IsActive:        true,
		VideoHash:       optional(fields.VideoHash),
		ImageHash:       optional(fields.ImageHash),
		CreatedAt:       now,
	}
	if err := repo.Create(ctx, entry); err != nil {
		return uuid.Nil, err
	}
	return entry.Id, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func (s *knowledgeService) publishEmbed(ctx context.Context, entryId uuid.UUID) {
	payload := dto.PublishEmbedKnowledgeMessage{EntryId: entryId}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("[WARN] Failed to marshal embed message for %s: %v\n", entryId, err)
		return
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		fmt.Printf("[WARN] Failed to queue embedding for %s: %v\n", entryId, err)
	}
}

func (s *knowledgeService) List(ctx context.Context, userId uuid.UUID, category string) (*dto.KnowledgeEntryListResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveEntries{},
		specification.OrderBy{Field: "usage_count", Desc: true},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.KnowledgeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.KnowledgeEntryListResponse{
		Entries: make([]dto.KnowledgeEntryResponse, 0, len(entries)),
		Total:   len(entries),
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, toKnowledgeEntryResponse(e))
	}
	return res, nil
}

func toKnowledgeEntryResponse(e *entity.KnowledgeBaseEntry) dto.KnowledgeEntryResponse {
	r := dto.KnowledgeEntryResponse{
		Id:          e.Id,
		Translation: e.Translation,
		Confidence:  e.Confidence,
		UsageCount:  e.UsageCount,
		CreatedAt:   e.CreatedAt,
	}
	if e.Gloss != nil {
		r.Gloss = *e.Gloss
	}
	if e.SignDescription != nil {
		r.SignDescription = *e.SignDescription
	}
	if e.Category != nil {
		r.Category = *e.Category
	}
	return r
}

// Delete deactivates an entry rather than erasing it: usage history
// stays intact and a later upsert with the same hash revives it.
func (s *knowledgeService) Delete(ctx context.Context, userId uuid.UUID, entryId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeRepository()

	entry, err := repo.FindOne(ctx,
		specification.ByID{ID: entryId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if entry == nil {
		return errors.New("knowledge entry not found")
	}

	now := time.Now()
	entry.IsActive = false
	entry.UpdatedAt = &now
	if err := repo.Update(ctx, entry); err != nil {
		return err
	}

	// The worker sees the inactive entry and prunes its embedding.
	s.publishEmbed(ctx, entry.Id)
	return nil
}

func (s *knowledgeService) BulkImport(ctx context.Context, userId uuid.UUID, req *dto.BulkImportRequest) (*dto.BulkImportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	imported := make([]uuid.UUID, 0, len(req.Entries))
	for i, item := range req.Entries {
		if item.VideoHash == "" && item.ImageHash == "" {
			return nil, fmt.Errorf("entry %d (%s): video_hash or image_hash required", i, item.Translation)
		}
		entryId, err := s.upsertEntry(ctx, uow, userId, upsertFields{
			Translation:     item.Translation,
			Gloss:           item.Gloss,
			SignDescription: item.SignDescription,
			Category:        item.Category,
			Confidence:      item.Confidence,
			VideoHash:       item.VideoHash,
			ImageHash:       item.ImageHash,
		})
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, item.Translation, err)
		}
		imported = append(imported, entryId)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Queue embeddings only after the rows are committed.
	for _, entryId := range imported {
		s.publishEmbed(ctx, entryId)
	}

	if s.eventPublisher != nil {
		evt := events.New("KNOWLEDGE_IMPORTED", map[string]interface{}{
			"user_id": userId,
			"count":   len(imported),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish KNOWLEDGE_IMPORTED event: %v\n", err)
		}
	}

	return &dto.BulkImportResponse{Count: len(imported)}, nil
}

func (s *knowledgeService) Search(ctx context.Context, userId uuid.UUID, query string, limit int) (*dto.KnowledgeSearchResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	res, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeEmbeddingRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, limit, userId, 0.3)
	if err != nil {
		return nil, err
	}

	out := &dto.KnowledgeSearchResponse{
		Query:   query,
		Results: make([]dto.KnowledgeSearchResult, 0, len(scored)),
	}
	for _, hit := range scored {
		entry, err := uow.KnowledgeRepository().FindOne(ctx,
			specification.ByID{ID: hit.Embedding.EntryId},
			specification.ActiveEntries{},
		)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			continue // embedding outlived its entry
		}
		out.Results = append(out.Results, dto.KnowledgeSearchResult{
			Entry:      toKnowledgeEntryResponse(entry),
			Similarity: hit.Similarity,
		})
	}
	return out, nil
}
