package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/repository/specification"
	"ai-advising-be/internal/repository/unitofwork"
	"ai-advising-be/pkg/embedding"
	"ai-advising-be/pkg/utils"

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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedAlumniMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for alumni record %s", payload.RecordId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.AlumniRecordRepository().FindOne(ctx, specification.ByID{ID: payload.RecordId})
	if err != nil {
		log.Printf("[ERROR] Failed to get alumni record %s: %v", payload.RecordId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if record == nil {
		log.Printf("[WARN] Alumni record not found: %s", payload.RecordId)
		msg.Ack() // Record deleted? Ack.
		return
	}

	// Chunk long profiles so each embedding stays within model context.
	// 1500 chars with 200 overlap; most alumni records fit in one chunk.
	chunks := utils.SplitText(record.Content, 1500, 200)
	log.Printf("[INFO] Record %s split into %d chunks", payload.RecordId, len(chunks))

	var newEmbeddings []*entity.AlumniEmbedding
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of record %s: %v", i, payload.RecordId, err)
			msg.Nack()
			return
		}
		newEmbeddings = append(newEmbeddings, &entity.AlumniEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			AlumniRecordId: record.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.AlumniEmbeddingRepository().DeleteByRecordId(ctx, record.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.AlumniEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Alumni record embedded: %d chunks for %s", len(newEmbeddings), payload.RecordId)
	msg.Ack()
}
