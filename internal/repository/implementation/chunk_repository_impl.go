package implementation

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/mapper"
	"github.com/sihanyu03/LawTriposChatbot/internal/model"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/contract"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/specification"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.DocumentChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

func (r *ChunkRepositoryImpl) DeleteBySource(ctx context.Context, source string) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.BySource{Source: source})
	return query.Delete(&model.DocumentChunk{}).Error
}

// scoredChunkRow carries the chunk columns plus the computed similarity.
type scoredChunkRow struct {
	model.DocumentChunk
	Similarity float64
}

func (r *ChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	var rows []scoredChunkRow

	// pgvector cosine distance: embedding <=> query. Similarity = 1 - distance.
	vec := pgvector.NewVector(embedding)
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Select("document_chunks.*, 1 - (embedding <=> ?) AS similarity", vec).
		Order(gorm.Expr("embedding <=> ?", vec)).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentChunk, len(rows))
	for i := range rows {
		scored[i] = &contract.ScoredDocumentChunk{
			Chunk:      r.mapper.ToEntity(&rows[i].DocumentChunk),
			Similarity: rows[i].Similarity,
		}
	}
	return scored, nil
}
