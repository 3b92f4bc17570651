// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"
	"github.com/Tarunsai01/ARIA/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// embeddingDocument flattens an entry into the text that gets embedded.
// Every searchable field rides along so a query can match on any of them.
func embeddingDocument(entry *entity.KnowledgeBaseEntry) string {
	parts := []string{"Translation: " + entry.Translation}
	if entry.Gloss != nil && *entry.Gloss != "" {
		parts = append(parts, "Gloss: "+*entry.Gloss)
	}
	if entry.SignDescription != nil && *entry.SignDescription != "" {
		parts = append(parts, "Sign description: "+*entry.SignDescription)
	}
	if entry.Category != nil && *entry.Category != "" {
		parts = append(parts, "Category: "+*entry.Category)
	}
	return strings.Join(parts, "\n")
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedKnowledgeMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing knowledge embedding for EntryId: %s", payload.EntryId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: payload.EntryId})
	if err != nil {
		log.Printf("[ERROR] Failed to get knowledge entry %s: %v", payload.EntryId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if entry == nil || !entry.IsActive {
		// Entry deleted or deactivated between publish and consume.
		// Drop its embedding so stale rows never surface in search.
		if err := uow.KnowledgeEmbeddingRepository().DeleteByEntryId(ctx, payload.EntryId); err != nil {
			log.Printf("[ERROR] Failed to prune embedding for %s: %v", payload.EntryId, err)
			msg.Nack()
			return
		}
		log.Printf("[INFO] Entry %s gone, embedding pruned", payload.EntryId)
		msg.Ack()
		return
	}

	document := embeddingDocument(entry)
	log.Printf("[INFO] Generating embedding for entry %s (document length: %d)", payload.EntryId, len(document))

	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for entry %s: %v", payload.EntryId, err)
		msg.Nack()
		return
	}

	newEmbedding := &entity.KnowledgeEmbedding{
		Id:             uuid.New(),
		EntryId:        entry.Id,
		UserId:         entry.UserId,
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Delete-then-create keeps exactly one embedding per entry even when
	// the same entry is re-published twice in quick succession.
	if err := uow.KnowledgeEmbeddingRepository().DeleteByEntryId(ctx, entry.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.KnowledgeEmbeddingRepository().Create(ctx, newEmbedding); err != nil {
		log.Printf("[ERROR] Failed to create embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Knowledge entry indexed: %s (%d dims)", payload.EntryId, len(res.Embedding.Values))
	msg.Ack()
}
