package search

import (
	"context"
	"fmt"
	"log"

	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
	"github.com/sihanyu03/LawTriposChatbot/pkg/embedding"
	"github.com/sihanyu03/LawTriposChatbot/pkg/store"
)

// Retriever embeds a query and runs cosine-similarity search over the chunk
// table. An empty result is a valid outcome; only transport failures to the
// embedding service or the database are errors.
type Retriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

func NewRetriever(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider, logger *log.Logger) *Retriever {
	return &Retriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (r *Retriever) Search(ctx context.Context, query string, k int) ([]store.RetrievedChunk, error) {
	queryEmbedding, err := r.embeddingProvider.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ChunkRepository().SearchSimilarWithScore(ctx, queryEmbedding, k)
	if err != nil {
		r.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	r.logger.Printf("[DEBUG] Retrieved %d chunks for query: %s", len(scored), truncate(query, 50))

	chunks := make([]store.RetrievedChunk, len(scored))
	for i, s := range scored {
		chunks[i] = store.RetrievedChunk{
			Source:  s.Chunk.Source,
			Page:    s.Chunk.Page,
			Content: s.Chunk.Content,
			Score:   s.Similarity,
		}
	}
	return chunks, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
