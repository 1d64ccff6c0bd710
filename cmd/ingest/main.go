package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/ledongthuc/pdf"

	"github.com/sihanyu03/LawTriposChatbot/internal/config"
	"github.com/sihanyu03/LawTriposChatbot/internal/dto"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
	"github.com/sihanyu03/LawTriposChatbot/internal/service"
	"github.com/sihanyu03/LawTriposChatbot/pkg/database"
	"github.com/sihanyu03/LawTriposChatbot/pkg/embedding"
)

// Ingest reads every PDF in the corpus directory, publishes one message per
// page onto the chunk topic, and waits for the consumer to embed and store
// them all before exiting.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	embeddingProvider := embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisher := service.NewPublisherService(cfg.Ingest.ChunkTopic, pubSub)
	consumer := service.NewConsumerService(pubSub, cfg.Ingest.ChunkTopic, uowFactory, embeddingProvider)

	ctx := context.Background()
	if err := consumer.Consume(ctx); err != nil {
		log.Fatalf("Error: Failed to start consumer: %v", err)
	}

	entries, err := os.ReadDir(cfg.Ingest.CorpusDir)
	if err != nil {
		log.Fatalf("Error: Failed to read corpus dir %s: %v", cfg.Ingest.CorpusDir, err)
	}

	var published int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		source := entry.Name()
		path := filepath.Join(cfg.Ingest.CorpusDir, source)

		pages, err := extractPages(path)
		if err != nil {
			log.Printf("[ERROR] Skipping %s: %v", source, err)
			continue
		}

		// Re-ingesting a document replaces its chunks wholesale.
		uow := uowFactory.NewUnitOfWork(ctx)
		if err := uow.ChunkRepository().DeleteBySource(ctx, source); err != nil {
			log.Fatalf("Error: Failed to clear old chunks for %s: %v", source, err)
		}

		for pageIdx, content := range pages {
			if strings.TrimSpace(content) == "" {
				continue
			}
			payload, _ := json.Marshal(dto.EmbedChunkMessage{
				Source:  source,
				Page:    pageIdx,
				Content: content,
			})
			if err := publisher.Publish(ctx, payload); err != nil {
				log.Fatalf("Error: Failed to publish chunk for %s page %d: %v", source, pageIdx, err)
			}
			published++
		}
		log.Printf("[INFO] Published %d pages from %s", len(pages), source)
	}

	for consumer.Processed() < published {
		time.Sleep(200 * time.Millisecond)
	}

	total, err := uowFactory.NewUnitOfWork(ctx).ChunkRepository().Count(ctx)
	if err != nil {
		log.Printf("Ingest complete: %d chunks processed", published)
		return
	}
	log.Printf("Ingest complete: %d chunks processed, %d chunks in store", published, total)
}

// extractPages returns the plain text of each page, zero-indexed. Pages the
// library cannot decode come back empty rather than aborting the document.
func extractPages(path string) ([]string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	totalPages := reader.NumPage()
	pages := make([]string, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
