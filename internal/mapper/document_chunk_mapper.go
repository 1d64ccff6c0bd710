package mapper

import (
	"github.com/pgvector/pgvector-go"

	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/model"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	return &model.DocumentChunk{
		Id:        e.Id,
		Source:    e.Source,
		Page:      e.Page,
		Content:   e.Content,
		Embedding: pgvector.NewVector(e.Embedding),
		CreatedAt: e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntity(mod *model.DocumentChunk) *entity.DocumentChunk {
	return &entity.DocumentChunk{
		Id:        mod.Id,
		Source:    mod.Source,
		Page:      mod.Page,
		Content:   mod.Content,
		Embedding: mod.Embedding.Slice(),
		CreatedAt: mod.CreatedAt,
	}
}
