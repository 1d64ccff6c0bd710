package contract

import (
	"context"

	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/specification"
)

// ScoredDocumentChunk pairs a chunk with its cosine similarity to a query.
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteBySource(ctx context.Context, source string) error

	// SearchSimilarWithScore returns up to limit chunks ordered by cosine
	// similarity to the query embedding, most similar first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredDocumentChunk, error)
}
