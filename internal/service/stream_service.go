// FILE: internal/service/stream_service.go
package service

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/pkg/provider"
	"github.com/Tarunsai01/ARIA/pkg/provider/factory"
	"github.com/Tarunsai01/ARIA/pkg/translation/stream"

	"github.com/google/uuid"
)

// IStreamService folds live audio or transcript chunks into a running
// summary. Chunk-level failures are reported in the response body, not
// as errors: the stream must keep its context either way.
type IStreamService interface {
	AudioChunkSummary(ctx context.Context, userId uuid.UUID, providerName string, chunk []byte, mimeType, previousContext string) (*dto.ChunkSummaryResponse, error)
	TranscriptionChunkSummary(ctx context.Context, userId uuid.UUID, req *dto.TranscriptionChunkSummaryRequest) (*dto.ChunkSummaryResponse, error)
}

type streamService struct {
	credentialService ICredentialService
	accumulator       *stream.Accumulator
}

func NewStreamService(credentialService ICredentialService, accumulator *stream.Accumulator) IStreamService {
	return &streamService{
		credentialService: credentialService,
		accumulator:       accumulator,
	}
}

func (s *streamService) clientFor(ctx context.Context, userId uuid.UUID, providerName string) (provider.Client, error) {
	apiKey, err := s.credentialService.GetDecryptedKey(ctx, userId, providerName)
	if err != nil {
		return nil, err
	}
	return factory.NewProviderClient(providerName, apiKey)
}

func (s *streamService) AudioChunkSummary(ctx context.Context, userId uuid.UUID, providerName string, chunk []byte, mimeType, previousContext string) (*dto.ChunkSummaryResponse, error) {
	client, err := s.clientFor(ctx, userId, providerName)
	if err != nil {
		return nil, err
	}

	update := s.accumulator.UpdateFromAudio(ctx, client, chunk, mimeType, previousContext)
	return toChunkSummaryResponse(update), nil
}

func (s *streamService) TranscriptionChunkSummary(ctx context.Context, userId uuid.UUID, req *dto.TranscriptionChunkSummaryRequest) (*dto.ChunkSummaryResponse, error) {
	client, err := s.clientFor(ctx, userId, req.Provider)
	if err != nil {
		return nil, err
	}

	update := s.accumulator.UpdateFromTranscript(ctx, client, req.Transcription, req.PreviousContext)
	return toChunkSummaryResponse(update), nil
}

func toChunkSummaryResponse(update stream.Update) *dto.ChunkSummaryResponse {
	return &dto.ChunkSummaryResponse{
		Success:          update.Success,
		Transcription:    update.Transcription,
		Summary:          update.Summary,
		ProcessingTimeMs: int(update.Elapsed.Milliseconds()),
		Message:          update.Message,
	}
}
