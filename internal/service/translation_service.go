// FILE: internal/service/translation_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"
	"github.com/Tarunsai01/ARIA/pkg/events"
	pktNats "github.com/Tarunsai01/ARIA/pkg/nats"
	"github.com/Tarunsai01/ARIA/pkg/provider"
	"github.com/Tarunsai01/ARIA/pkg/provider/factory"
	"github.com/Tarunsai01/ARIA/pkg/translation"

	"github.com/google/uuid"
)

// ITranslationService fronts the tiered sign-to-text resolver and the
// reverse speech/text-to-gloss flows. Every successful call writes
// exactly one history record; failures write none.
type ITranslationService interface {
	SignToSpeech(ctx context.Context, userId uuid.UUID, req *dto.SignToSpeechRequest, media MediaInput) (*dto.SignToSpeechResponse, error)
	SpeechToSign(ctx context.Context, userId uuid.UUID, providerName string, audio []byte, mimeType, fileName string) (*dto.SpeechToSignResponse, error)
	TextToGloss(ctx context.Context, userId uuid.UUID, req *dto.TextToGlossRequest) (*dto.TextToGlossResponse, error)
	TextToSummary(ctx context.Context, userId uuid.UUID, req *dto.TextToSummaryRequest) (*dto.TextToSummaryResponse, error)
}

type translationService struct {
	uowFactory        unitofwork.RepositoryFactory
	credentialService ICredentialService
	fileService       IFileService
	resolver          *translation.Resolver
	eventPublisher    *pktNats.Publisher
}

func NewTranslationService(
	uowFactory unitofwork.RepositoryFactory,
	credentialService ICredentialService,
	fileService IFileService,
	resolver *translation.Resolver,
	eventPublisher *pktNats.Publisher,
) ITranslationService {
	return &translationService{
		uowFactory:        uowFactory,
		credentialService: credentialService,
		fileService:       fileService,
		resolver:          resolver,
		eventPublisher:    eventPublisher,
	}
}

// clientFor builds the backend client with the caller's own API key.
func (s *translationService) clientFor(ctx context.Context, userId uuid.UUID, providerName string) (provider.Client, error) {
	apiKey, err := s.credentialService.GetDecryptedKey(ctx, userId, providerName)
	if err != nil {
		return nil, err
	}
	return factory.NewProviderClient(providerName, apiKey)
}

func (s *translationService) SignToSpeech(ctx context.Context, userId uuid.UUID, req *dto.SignToSpeechRequest, media MediaInput) (*dto.SignToSpeechResponse, error) {
	if len(media.Data) == 0 {
		return nil, errors.New("sign media is required (file upload or video_data/image_data)")
	}

	client, err := s.clientFor(ctx, userId, req.Provider)
	if err != nil {
		return nil, err
	}

	resolution, err := s.resolver.Resolve(ctx, client,
		provider.Media{Kind: media.Kind, Data: media.Data, MimeType: media.MimeType},
		translation.Request{
			UserID:  userId,
			Context: s.recentContext(ctx, userId, entity.OperationSignToSpeech),
		},
	)
	if err != nil {
		return nil, err
	}

	// Images are single ephemeral frames; only video payloads are kept
	// on disk for later replay.
	var fileId *uuid.UUID
	if media.Kind == provider.CapabilityVideo {
		fileId = s.saveMedia(ctx, userId, entity.FileTypeVideo, media)
	}

	elapsedMs := int(resolution.Elapsed.Milliseconds())
	record := &entity.TranslationHistory{
		Id:               uuid.New(),
		UserId:           userId,
		FileId:           fileId,
		OperationType:    entity.OperationSignToSpeech,
		OutputText:       &resolution.Translation,
		Provider:         req.Provider,
		Source:           string(resolution.Source),
		ProcessingTimeMs: elapsedMs,
		CreatedAt:        time.Now(),
	}
	if err := s.recordHistory(ctx, record); err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, userId, entity.OperationSignToSpeech, req.Provider, string(resolution.Source))

	return &dto.SignToSpeechResponse{
		Translation:      resolution.Translation,
		AudioBase64:      resolution.AudioBase64,
		Provider:         req.Provider,
		HistoryId:        record.Id,
		ProcessingTimeMs: elapsedMs,
		Source:           string(resolution.Source),
		Confidence:       resolution.Confidence,
		Sign:             resolution.Sign,
	}, nil
}

func (s *translationService) SpeechToSign(ctx context.Context, userId uuid.UUID, providerName string, audio []byte, mimeType, fileName string) (*dto.SpeechToSignResponse, error) {
	if len(audio) == 0 {
		return nil, errors.New("audio file is required")
	}

	client, err := s.clientFor(ctx, userId, providerName)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	transcript, err := client.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, err
	}

	gloss, err := client.GenerateGloss(ctx, transcript)
	if err != nil {
		return nil, err
	}

	fileId := s.saveMedia(ctx, userId, entity.FileTypeAudio, MediaInput{
		Kind:     provider.CapabilityAudio,
		Data:     audio,
		MimeType: mimeType,
		FileName: fileName,
	})

	elapsedMs := int(time.Since(start).Milliseconds())
	record := &entity.TranslationHistory{
		Id:               uuid.New(),
		UserId:           userId,
		FileId:           fileId,
		OperationType:    entity.OperationSpeechToSign,
		InputText:        &transcript,
		OutputGloss:      gloss,
		Provider:         providerName,
		Source:           string(translation.SourceAPI),
		ProcessingTimeMs: elapsedMs,
		CreatedAt:        time.Now(),
	}
	if err := s.recordHistory(ctx, record); err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, userId, entity.OperationSpeechToSign, providerName, string(translation.SourceAPI))

	return &dto.SpeechToSignResponse{
		Transcription:    transcript,
		Gloss:            gloss,
		HistoryId:        record.Id,
		ProcessingTimeMs: elapsedMs,
	}, nil
}

func (s *translationService) TextToGloss(ctx context.Context, userId uuid.UUID, req *dto.TextToGlossRequest) (*dto.TextToGlossResponse, error) {
	client, err := s.clientFor(ctx, userId, req.Provider)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	gloss, err := client.GenerateGloss(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	elapsedMs := int(time.Since(start).Milliseconds())
	record := &entity.TranslationHistory{
		Id:               uuid.New(),
		UserId:           userId,
		OperationType:    entity.OperationSpeechToSign,
		InputText:        &req.Text,
		OutputGloss:      gloss,
		Provider:         req.Provider,
		Source:           string(translation.SourceAPI),
		ProcessingTimeMs: elapsedMs,
		CreatedAt:        time.Now(),
	}
	if err := s.recordHistory(ctx, record); err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, userId, entity.OperationSpeechToSign, req.Provider, string(translation.SourceAPI))

	return &dto.TextToGlossResponse{
		Transcription:    req.Text,
		Gloss:            gloss,
		HistoryId:        record.Id,
		ProcessingTimeMs: elapsedMs,
	}, nil
}

func (s *translationService) TextToSummary(ctx context.Context, userId uuid.UUID, req *dto.TextToSummaryRequest) (*dto.TextToSummaryResponse, error) {
	client, err := s.clientFor(ctx, userId, req.Provider)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	summary, err := client.Summarize(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	elapsedMs := int(time.Since(start).Milliseconds())
	record := &entity.TranslationHistory{
		Id:               uuid.New(),
		UserId:           userId,
		OperationType:    entity.OperationSpeechToSign,
		InputText:        &req.Text,
		OutputText:       &summary,
		Provider:         req.Provider,
		Source:           string(translation.SourceAPI),
		ProcessingTimeMs: elapsedMs,
		CreatedAt:        time.Now(),
	}
	if err := s.recordHistory(ctx, record); err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, userId, entity.OperationSpeechToSign, req.Provider, string(translation.SourceAPI))

	return &dto.TextToSummaryResponse{
		Transcription:    req.Text,
		Summary:          summary,
		HistoryId:        record.Id,
		ProcessingTimeMs: elapsedMs,
	}, nil
}

// recentContext gathers up to five previous outputs of the same
// operation so the backend prompt knows what was said before.
func (s *translationService) recentContext(ctx context.Context, userId uuid.UUID, op entity.OperationType) string {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.HistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByOperationType{OperationType: string(op)},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 5},
	)
	if err != nil {
		fmt.Printf("[WARN] Failed to load conversation context: %v\n", err)
		return ""
	}

	recent := make([]string, 0, len(records))
	for _, r := range records {
		if r.OutputText != nil {
			recent = append(recent, *r.OutputText)
		}
	}
	return translation.FormatContext(recent)
}

// saveMedia persists a submitted payload so the history row can link
// back to it. Persistence failure never fails the translation.
func (s *translationService) saveMedia(ctx context.Context, userId uuid.UUID, fileType entity.FileType, media MediaInput) *uuid.UUID {
	fileName := media.FileName
	if fileName == "" {
		fileName = string(fileType)
	}
	stored, err := s.fileService.SaveBytes(ctx, userId, fileType, fileName, media.MimeType, media.Data)
	if err != nil {
		fmt.Printf("[WARN] Failed to persist %s payload: %v\n", fileType, err)
		return nil
	}
	return &stored.Id
}

func (s *translationService) recordHistory(ctx context.Context, record *entity.TranslationHistory) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.HistoryRepository().Create(ctx, record)
}

func (s *translationService) publishCompleted(ctx context.Context, userId uuid.UUID, op entity.OperationType, providerName, source string) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.New("TRANSLATION_COMPLETED", map[string]interface{}{
		"user_id":        userId,
		"operation_type": string(op),
		"provider":       providerName,
		"source":         source,
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish TRANSLATION_COMPLETED event: %v\n", err)
	}
}
