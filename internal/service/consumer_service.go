package service

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/sihanyu03/LawTriposChatbot/internal/dto"
	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
	"github.com/sihanyu03/LawTriposChatbot/pkg/embedding"
)

type IConsumerService interface {
	Consume(ctx context.Context) error

	// Processed reports how many chunk messages reached a terminal state,
	// stored or discarded. Ingest polls it to know when the queue drained.
	Processed() int64
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider

	processed atomic.Int64
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

func (cs *consumerService) Processed() int64 {
	return cs.processed.Load()
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EmbedChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal chunk message: %v", err)
		cs.processed.Add(1)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Embedding chunk %s page %d", payload.Source, payload.Page)

	vector, err := cs.embeddingProvider.Generate(ctx, payload.Content)
	if err != nil {
		log.Printf("[ERROR] Failed to embed chunk %s page %d: %v", payload.Source, payload.Page, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	chunk := &entity.DocumentChunk{
		Id:        uuid.New(),
		Source:    payload.Source,
		Page:      payload.Page,
		Content:   payload.Content,
		Embedding: vector,
		CreatedAt: time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChunkRepository().Create(ctx, chunk); err != nil {
		log.Printf("[ERROR] Failed to store chunk %s page %d: %v", payload.Source, payload.Page, err)
		msg.Nack()
		return
	}

	cs.processed.Add(1)
	msg.Ack()
}
